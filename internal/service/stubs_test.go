package service

import (
	"context"
	"errors"
	"testing"

	"ottify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subjectRepoStub is a stub for repository.SubjectRepository.
type subjectRepoStub struct {
	createFn     func(context.Context, *models.Subject) error
	getByIDFn    func(context.Context, uint) (*models.Subject, error)
	listFn       func(context.Context, int, int, *uint) ([]*models.Subject, int64, error)
	listByUserFn func(context.Context, uint, int, int) ([]*models.Subject, error)
	listByIDsFn  func(context.Context, []uint) ([]*models.Subject, error)
	updateFn     func(context.Context, *models.Subject) error
	deleteFn     func(context.Context, uint) error
}

func (s *subjectRepoStub) Create(ctx context.Context, subject *models.Subject) error {
	return s.createFn(ctx, subject)
}
func (s *subjectRepoStub) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	return s.getByIDFn(ctx, id)
}
func (s *subjectRepoStub) List(ctx context.Context, limit, offset int, programID *uint) ([]*models.Subject, int64, error) {
	return s.listFn(ctx, limit, offset, programID)
}
func (s *subjectRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Subject, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *subjectRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]*models.Subject, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *subjectRepoStub) Update(ctx context.Context, subject *models.Subject) error {
	return s.updateFn(ctx, subject)
}
func (s *subjectRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopSubjectRepo() *subjectRepoStub {
	return &subjectRepoStub{
		createFn:  func(_ context.Context, _ *models.Subject) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Subject, error) { return &models.Subject{ID: id}, nil },
		listFn: func(_ context.Context, _, _ int, _ *uint) ([]*models.Subject, int64, error) {
			return nil, 0, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Subject, error) { return nil, nil },
		listByIDsFn:  func(_ context.Context, _ []uint) ([]*models.Subject, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Subject) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// programRepoStub is a stub for repository.ProgramRepository.
type programRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.Program, error)
	getOrCreateFn        func(context.Context, *models.Program) (*models.Program, error)
	likedByUserFn        func(context.Context, uint, int, int) ([]*models.Program, error)
	uninterestedByUserFn func(context.Context, uint, int, int) ([]*models.Program, error)
	markLikedFn          func(context.Context, uint, uint) error
	unmarkLikedFn        func(context.Context, uint, uint) error
	markUninterestedFn   func(context.Context, uint, uint) error
	unmarkUninterestedFn func(context.Context, uint, uint) error
}

func (s *programRepoStub) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	return s.getByIDFn(ctx, id)
}
func (s *programRepoStub) GetOrCreate(ctx context.Context, program *models.Program) (*models.Program, error) {
	return s.getOrCreateFn(ctx, program)
}
func (s *programRepoStub) LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Program, error) {
	return s.likedByUserFn(ctx, userID, limit, offset)
}
func (s *programRepoStub) UninterestedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Program, error) {
	return s.uninterestedByUserFn(ctx, userID, limit, offset)
}
func (s *programRepoStub) MarkLiked(ctx context.Context, userID, programID uint) error {
	return s.markLikedFn(ctx, userID, programID)
}
func (s *programRepoStub) UnmarkLiked(ctx context.Context, userID, programID uint) error {
	return s.unmarkLikedFn(ctx, userID, programID)
}
func (s *programRepoStub) MarkUninterested(ctx context.Context, userID, programID uint) error {
	return s.markUninterestedFn(ctx, userID, programID)
}
func (s *programRepoStub) UnmarkUninterested(ctx context.Context, userID, programID uint) error {
	return s.unmarkUninterestedFn(ctx, userID, programID)
}

func noopProgramRepo() *programRepoStub {
	return &programRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Program, error) { return &models.Program{ID: id}, nil },
		getOrCreateFn: func(_ context.Context, p *models.Program) (*models.Program, error) {
			return &models.Program{ID: p.ID, Title: p.Title, PosterPath: p.PosterPath}, nil
		},
		likedByUserFn:        func(_ context.Context, _ uint, _, _ int) ([]*models.Program, error) { return nil, nil },
		uninterestedByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Program, error) { return nil, nil },
		markLikedFn:          func(_ context.Context, _, _ uint) error { return nil },
		unmarkLikedFn:        func(_ context.Context, _, _ uint) error { return nil },
		markUninterestedFn:   func(_ context.Context, _, _ uint) error { return nil },
		unmarkUninterestedFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn                func(context.Context, *models.Comment) error
	getByIDFn               func(context.Context, uint) (*models.Comment, error)
	getTopLevelFn           func(context.Context, uint) (*models.Comment, error)
	getReplyFn              func(context.Context, uint) (*models.Comment, error)
	getInSubjectFn          func(context.Context, uint, uint) (*models.Comment, error)
	listTopLevelFn          func(context.Context, uint) ([]*models.Comment, error)
	listRepliesFn           func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn                func(context.Context, *models.Comment) error
	deleteCascadeFn         func(context.Context, uint) error
	countBySubjectFn        func(context.Context, uint) (int64, error)
	countAllBySubjectFn     func(context.Context, uint) (int64, error)
	subjectIDsByCommenterFn func(context.Context, uint, int, int) ([]uint, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetTopLevel(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getTopLevelFn(ctx, id)
}
func (s *commentRepoStub) GetReply(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getReplyFn(ctx, id)
}
func (s *commentRepoStub) GetInSubject(ctx context.Context, subjectID, id uint) (*models.Comment, error) {
	return s.getInSubjectFn(ctx, subjectID, id)
}
func (s *commentRepoStub) ListTopLevel(ctx context.Context, subjectID uint) ([]*models.Comment, error) {
	return s.listTopLevelFn(ctx, subjectID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, subjectID, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, subjectID, parentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *commentRepoStub) CountBySubject(ctx context.Context, subjectID uint) (int64, error) {
	return s.countBySubjectFn(ctx, subjectID)
}
func (s *commentRepoStub) CountAllBySubject(ctx context.Context, subjectID uint) (int64, error) {
	return s.countAllBySubjectFn(ctx, subjectID)
}
func (s *commentRepoStub) SubjectIDsByCommenter(ctx context.Context, userID uint, limit, offset int) ([]uint, error) {
	return s.subjectIDsByCommenterFn(ctx, userID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getTopLevelFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		getReplyFn: func(_ context.Context, id uint) (*models.Comment, error) {
			parent := uint(1)
			return &models.Comment{ID: id, ParentID: &parent}, nil
		},
		getInSubjectFn: func(_ context.Context, subjectID, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, SubjectID: subjectID}, nil
		},
		listTopLevelFn:          func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn:           func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:                func(_ context.Context, _ *models.Comment) error { return nil },
		deleteCascadeFn:         func(_ context.Context, _ uint) error { return nil },
		countBySubjectFn:        func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countAllBySubjectFn:     func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		subjectIDsByCommenterFn: func(_ context.Context, _ uint, _, _ int) ([]uint, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	subjectLikeExistsFn func(context.Context, uint, uint) (bool, error)
	insertSubjectLikeFn func(context.Context, uint, uint) error
	deleteSubjectLikeFn func(context.Context, uint, uint) error
	countSubjectLikesFn func(context.Context, uint) (int64, error)
	commentLikeExistsFn func(context.Context, uint, uint) (bool, error)
	insertCommentLikeFn func(context.Context, uint, uint, uint, bool) error
	deleteCommentLikeFn func(context.Context, uint, uint) error
	countCommentLikesFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) SubjectLikeExists(ctx context.Context, userID, subjectID uint) (bool, error) {
	return s.subjectLikeExistsFn(ctx, userID, subjectID)
}
func (s *likeRepoStub) InsertSubjectLike(ctx context.Context, userID, subjectID uint) error {
	return s.insertSubjectLikeFn(ctx, userID, subjectID)
}
func (s *likeRepoStub) DeleteSubjectLike(ctx context.Context, userID, subjectID uint) error {
	return s.deleteSubjectLikeFn(ctx, userID, subjectID)
}
func (s *likeRepoStub) CountSubjectLikes(ctx context.Context, subjectID uint) (int64, error) {
	return s.countSubjectLikesFn(ctx, subjectID)
}
func (s *likeRepoStub) CommentLikeExists(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.commentLikeExistsFn(ctx, userID, commentID)
}
func (s *likeRepoStub) InsertCommentLike(ctx context.Context, userID, subjectID, commentID uint, isReply bool) error {
	return s.insertCommentLikeFn(ctx, userID, subjectID, commentID, isReply)
}
func (s *likeRepoStub) DeleteCommentLike(ctx context.Context, userID, commentID uint) error {
	return s.deleteCommentLikeFn(ctx, userID, commentID)
}
func (s *likeRepoStub) CountCommentLikes(ctx context.Context, commentID uint) (int64, error) {
	return s.countCommentLikesFn(ctx, commentID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		subjectLikeExistsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		insertSubjectLikeFn: func(_ context.Context, _, _ uint) error { return nil },
		deleteSubjectLikeFn: func(_ context.Context, _, _ uint) error { return nil },
		countSubjectLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		commentLikeExistsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		insertCommentLikeFn: func(_ context.Context, _, _, _ uint, _ bool) error { return nil },
		deleteCommentLikeFn: func(_ context.Context, _, _ uint) error { return nil },
		countCommentLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	nicknameTakenFn func(context.Context, string, uint) (bool, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) NicknameTaken(ctx context.Context, nickname string, excludeUserID uint) (bool, error) {
	return s.nicknameTakenFn(ctx, nickname, excludeUserID)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		nicknameTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	createFn          func(context.Context, *models.Review) error
	getByIDFn         func(context.Context, uint) (*models.Review, error)
	listByUserFn      func(context.Context, uint, int, int) ([]*models.Review, error)
	listLatestFn      func(context.Context, int, int) ([]*models.Review, error)
	listLikedByUserFn func(context.Context, uint, int, int) ([]*models.Review, error)
	likeFn            func(context.Context, uint, uint) (bool, error)
	unlikeFn          func(context.Context, uint, uint) (bool, error)
	ratingsByUserFn   func(context.Context, uint) ([]float64, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *reviewRepoStub) ListLatest(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	return s.listLatestFn(ctx, limit, offset)
}
func (s *reviewRepoStub) ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.listLikedByUserFn(ctx, userID, limit, offset)
}
func (s *reviewRepoStub) Like(ctx context.Context, userID, reviewID uint) (bool, error) {
	return s.likeFn(ctx, userID, reviewID)
}
func (s *reviewRepoStub) Unlike(ctx context.Context, userID, reviewID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, reviewID)
}
func (s *reviewRepoStub) RatingsByUser(ctx context.Context, userID uint) ([]float64, error) {
	return s.ratingsByUserFn(ctx, userID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:          func(_ context.Context, _ *models.Review) error { return nil },
		getByIDFn:         func(_ context.Context, id uint) (*models.Review, error) { return &models.Review{ID: id}, nil },
		listByUserFn:      func(_ context.Context, _ uint, _, _ int) ([]*models.Review, error) { return nil, nil },
		listLatestFn:      func(_ context.Context, _, _ int) ([]*models.Review, error) { return nil, nil },
		listLikedByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Review, error) { return nil, nil },
		likeFn:            func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		ratingsByUserFn:   func(_ context.Context, _ uint) ([]float64, error) { return nil, nil },
	}
}

// genreRepoStub is a stub for repository.GenreRepository.
type genreRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.Genre, error)
	firstByUserFn     func(context.Context, uint) (*models.UserGenre, error)
	secondByUserFn    func(context.Context, uint) ([]*models.UserGenre, error)
	findSecondFn      func(context.Context, uint, uint) (*models.UserGenre, error)
	createUserGenreFn func(context.Context, *models.UserGenre) error
	updateUserGenreFn func(context.Context, *models.UserGenre) error
	deleteUserGenreFn func(context.Context, uint) error
}

func (s *genreRepoStub) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	return s.getByIDFn(ctx, id)
}
func (s *genreRepoStub) FirstByUser(ctx context.Context, userID uint) (*models.UserGenre, error) {
	return s.firstByUserFn(ctx, userID)
}
func (s *genreRepoStub) SecondByUser(ctx context.Context, userID uint) ([]*models.UserGenre, error) {
	return s.secondByUserFn(ctx, userID)
}
func (s *genreRepoStub) FindSecond(ctx context.Context, userID, genreID uint) (*models.UserGenre, error) {
	return s.findSecondFn(ctx, userID, genreID)
}
func (s *genreRepoStub) CreateUserGenre(ctx context.Context, ug *models.UserGenre) error {
	return s.createUserGenreFn(ctx, ug)
}
func (s *genreRepoStub) UpdateUserGenre(ctx context.Context, ug *models.UserGenre) error {
	return s.updateUserGenreFn(ctx, ug)
}
func (s *genreRepoStub) DeleteUserGenre(ctx context.Context, id uint) error {
	return s.deleteUserGenreFn(ctx, id)
}

func noopGenreRepo() *genreRepoStub {
	return &genreRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Genre, error) { return &models.Genre{ID: id}, nil },
		firstByUserFn: func(_ context.Context, userID uint) (*models.UserGenre, error) {
			return &models.UserGenre{UserID: userID, GenreID: 1, IsFirst: true, Genre: models.Genre{ID: 1, Name: "Drama"}}, nil
		},
		secondByUserFn:    func(_ context.Context, _ uint) ([]*models.UserGenre, error) { return nil, nil },
		findSecondFn:      func(_ context.Context, _, _ uint) (*models.UserGenre, error) { return nil, nil },
		createUserGenreFn: func(_ context.Context, _ *models.UserGenre) error { return nil },
		updateUserGenreFn: func(_ context.Context, _ *models.UserGenre) error { return nil },
		deleteUserGenreFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// ottRepoStub is a stub for repository.OttRepository.
type ottRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.Ott, error)
	listByUserFn     func(context.Context, uint) ([]*models.UserOtt, error)
	replaceForUserFn func(context.Context, uint, []uint) error
}

func (s *ottRepoStub) GetByID(ctx context.Context, id uint) (*models.Ott, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ottRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.UserOtt, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *ottRepoStub) ReplaceForUser(ctx context.Context, userID uint, ottIDs []uint) error {
	return s.replaceForUserFn(ctx, userID, ottIDs)
}

func noopOttRepo() *ottRepoStub {
	return &ottRepoStub{
		getByIDFn:        func(_ context.Context, id uint) (*models.Ott, error) { return &models.Ott{ID: id}, nil },
		listByUserFn:     func(_ context.Context, _ uint) ([]*models.UserOtt, error) { return nil, nil },
		replaceForUserFn: func(_ context.Context, _ uint, _ []uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError carrying the code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertDuplicateError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeDuplicate)
}
