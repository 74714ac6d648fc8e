package service

import (
	"context"
	"fmt"

	"ottify/internal/models"
	"ottify/internal/repository"
)

// ProfileService aggregates a user's activity into profile views: the
// summary card and the slice-paginated activity listings.
type ProfileService struct {
	userRepo    repository.UserRepository
	genreRepo   repository.GenreRepository
	ottRepo     repository.OttRepository
	subjectRepo repository.SubjectRepository
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	programRepo repository.ProgramRepository
}

// Profile is the summary card: account info, genre preferences, OTT
// subscriptions, and the rating histogram.
type Profile struct {
	User         *models.User    `json:"user"`
	FirstGenre   *models.Genre   `json:"first_genre"`
	SecondGenres []*models.Genre `json:"second_genres"`
	Otts         []*models.Ott   `json:"otts"`
	Ratings      []RatingBucket  `json:"ratings"`
	ReviewCount  int             `json:"review_count"`
}

// RatingBucket is one histogram bar. Every step from 0.5 to 5.0 is
// present even when its count is zero.
type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// SubjectItem is a subject row in a profile listing, decorated with its
// total comment activity (both levels).
type SubjectItem struct {
	*models.Subject
	ReplyCount int64 `json:"reply_count"`
}

// SubjectSlice is a slice-paginated subject listing. IsLast reports
// that no further page exists; there is no total count.
type SubjectSlice struct {
	Subjects []*SubjectItem `json:"subjects"`
	IsLast   bool           `json:"is_last"`
}

type ReviewSlice struct {
	Reviews []*models.Review `json:"reviews"`
	IsLast  bool             `json:"is_last"`
}

type ProgramSlice struct {
	Programs []*models.Program `json:"programs"`
	IsLast   bool              `json:"is_last"`
}

type ProfileListInput struct {
	UserID uint
	Size   int
	Page   int
}

func NewProfileService(
	userRepo repository.UserRepository,
	genreRepo repository.GenreRepository,
	ottRepo repository.OttRepository,
	subjectRepo repository.SubjectRepository,
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	programRepo repository.ProgramRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		genreRepo:   genreRepo,
		ottRepo:     ottRepo,
		subjectRepo: subjectRepo,
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		programRepo: programRepo,
	}
}

// GetProfile assembles the summary card. A user without a first-choice
// genre has not finished onboarding; that is surfaced as NotFound
// rather than a partial profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	first, err := s.genreRepo.FirstByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seconds, err := s.genreRepo.SecondByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	secondGenres := make([]*models.Genre, 0, len(seconds))
	for _, ug := range seconds {
		g := ug.Genre
		secondGenres = append(secondGenres, &g)
	}

	userOtts, err := s.ottRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	otts := make([]*models.Ott, 0, len(userOtts))
	for _, uo := range userOtts {
		o := uo.Ott
		otts = append(otts, &o)
	}

	ratings, err := s.reviewRepo.RatingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	firstGenre := first.Genre
	return &Profile{
		User:         user,
		FirstGenre:   &firstGenre,
		SecondGenres: secondGenres,
		Otts:         otts,
		Ratings:      buildRatingHistogram(ratings),
		ReviewCount:  len(ratings),
	}, nil
}

// buildRatingHistogram buckets ratings into the fixed 0.5-step scale.
// Every bucket appears in the result, zero counts included.
func buildRatingHistogram(ratings []float64) []RatingBucket {
	counts := make(map[string]int, len(ratings))
	for _, r := range ratings {
		counts[ratingKey(r)]++
	}

	var buckets []RatingBucket
	for r := models.RatingMin; r <= models.RatingMax+models.RatingStep/2; r += models.RatingStep {
		buckets = append(buckets, RatingBucket{
			Rating: r,
			Count:  counts[ratingKey(r)],
		})
	}
	return buckets
}

// ratingKey formats a rating for map lookup; float accumulation drift
// must not split a bucket.
func ratingKey(r float64) string {
	return fmt.Sprintf("%.1f", r)
}

// MySubjects lists subjects the user created, newest first.
func (s *ProfileService) MySubjects(ctx context.Context, in ProfileListInput) (*SubjectSlice, error) {
	size, offset := slicePage(in.Size, in.Page)
	subjects, err := s.subjectRepo.ListByUser(ctx, in.UserID, size+1, offset)
	if err != nil {
		return nil, err
	}
	return s.subjectSlice(ctx, subjects, size)
}

// CommentedSubjects lists subjects the user commented in, ordered by
// the user's most recent comment.
func (s *ProfileService) CommentedSubjects(ctx context.Context, in ProfileListInput) (*SubjectSlice, error) {
	size, offset := slicePage(in.Size, in.Page)
	ids, err := s.commentRepo.SubjectIDsByCommenter(ctx, in.UserID, size+1, offset)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjectRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.subjectSlice(ctx, subjects, size)
}

func (s *ProfileService) subjectSlice(ctx context.Context, subjects []*models.Subject, size int) (*SubjectSlice, error) {
	isLast := len(subjects) <= size
	if !isLast {
		subjects = subjects[:size]
	}

	items := make([]*SubjectItem, 0, len(subjects))
	for _, sub := range subjects {
		replyCount, err := s.commentRepo.CountAllBySubject(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &SubjectItem{Subject: sub, ReplyCount: replyCount})
	}
	return &SubjectSlice{Subjects: items, IsLast: isLast}, nil
}

// MyReviews lists reviews the user wrote, newest first.
func (s *ProfileService) MyReviews(ctx context.Context, in ProfileListInput) (*ReviewSlice, error) {
	size, offset := slicePage(in.Size, in.Page)
	reviews, err := s.reviewRepo.ListByUser(ctx, in.UserID, size+1, offset)
	if err != nil {
		return nil, err
	}
	return reviewSlice(reviews, size), nil
}

// LikedReviews lists reviews the user liked, most recently liked first.
func (s *ProfileService) LikedReviews(ctx context.Context, in ProfileListInput) (*ReviewSlice, error) {
	size, offset := slicePage(in.Size, in.Page)
	reviews, err := s.reviewRepo.ListLikedByUser(ctx, in.UserID, size+1, offset)
	if err != nil {
		return nil, err
	}
	return reviewSlice(reviews, size), nil
}

func reviewSlice(reviews []*models.Review, size int) *ReviewSlice {
	isLast := len(reviews) <= size
	if !isLast {
		reviews = reviews[:size]
	}
	return &ReviewSlice{Reviews: reviews, IsLast: isLast}
}

// LikedPrograms lists programs the user marked as wanting to watch.
func (s *ProfileService) LikedPrograms(ctx context.Context, in ProfileListInput) (*ProgramSlice, error) {
	size, offset := slicePage(in.Size, in.Page)
	programs, err := s.programRepo.LikedByUser(ctx, in.UserID, size+1, offset)
	if err != nil {
		return nil, err
	}
	return programSlice(programs, size), nil
}

// UninterestedPrograms lists programs the user asked to hide.
func (s *ProfileService) UninterestedPrograms(ctx context.Context, in ProfileListInput) (*ProgramSlice, error) {
	size, offset := slicePage(in.Size, in.Page)
	programs, err := s.programRepo.UninterestedByUser(ctx, in.UserID, size+1, offset)
	if err != nil {
		return nil, err
	}
	return programSlice(programs, size), nil
}

func programSlice(programs []*models.Program, size int) *ProgramSlice {
	isLast := len(programs) <= size
	if !isLast {
		programs = programs[:size]
	}
	return &ProgramSlice{Programs: programs, IsLast: isLast}
}

// slicePage normalizes a size/page pair into a limit and offset. Slice
// listings fetch one extra row to detect the last page.
func slicePage(size, page int) (int, int) {
	if size <= 0 || size > 50 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	return size, size * page
}
