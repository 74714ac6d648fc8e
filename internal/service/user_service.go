package service

import (
	"context"
	"errors"
	"strings"

	"ottify/internal/models"
	"ottify/internal/repository"
	"ottify/internal/storage"
)

// UserService manages accounts and profile settings: social sign-in,
// nickname and photo changes, genre preferences, OTT subscriptions, and
// program interest marks.
type UserService struct {
	userRepo    repository.UserRepository
	genreRepo   repository.GenreRepository
	ottRepo     repository.OttRepository
	programRepo repository.ProgramRepository
	avatars     storage.AvatarStorage
}

type SocialLoginInput struct {
	Email      string
	Nickname   string
	SocialType models.SocialType
}

type UpdateProfileInput struct {
	UserID   uint
	Nickname string
	// AvatarKey references a previously presigned upload to confirm as
	// the new profile photo.
	AvatarKey string
}

type AvatarUploadInput struct {
	UserID        uint
	ContentType   string
	ContentLength int64
}

type UpdateFirstGenreInput struct {
	UserID  uint
	GenreID uint
}

type ToggleSecondGenreInput struct {
	UserID  uint
	GenreID uint
}

type UpdateOttsInput struct {
	UserID uint
	OttIDs []uint
}

type ProgramMarkInput struct {
	UserID    uint
	ProgramID uint
}

func NewUserService(
	userRepo repository.UserRepository,
	genreRepo repository.GenreRepository,
	ottRepo repository.OttRepository,
	programRepo repository.ProgramRepository,
	avatars storage.AvatarStorage,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		genreRepo:   genreRepo,
		ottRepo:     ottRepo,
		programRepo: programRepo,
		avatars:     avatars,
	}
}

// EnsureUser signs a social account in, creating it on first login. The
// provider's email is the account key; the nickname is only used at
// sign-up and must then be unique.
func (s *UserService) EnsureUser(ctx context.Context, in SocialLoginInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, models.NewValidationError("Email is required")
	}
	switch in.SocialType {
	case models.SocialGoogle, models.SocialNaver:
	default:
		return nil, models.NewValidationError("Unsupported social type")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	nickname := strings.TrimSpace(in.Nickname)
	if nickname == "" {
		return nil, models.NewValidationError("Nickname is required for sign-up")
	}
	taken, err := s.userRepo.NicknameTaken(ctx, nickname, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewDuplicateError("Nickname is already in use")
	}

	user = &models.User{
		Email:      email,
		Nickname:   nickname,
		Grade:      models.GradeGeneral,
		SocialType: in.SocialType,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// AvatarUploadURL hands out a presigned upload slot for a new profile
// photo.
func (s *UserService) AvatarUploadURL(ctx context.Context, in AvatarUploadInput) (*storage.UploadInfo, error) {
	if s.avatars == nil {
		return nil, models.NewValidationError("Avatar uploads are not available")
	}
	info, err := s.avatars.AvatarUploadURL(ctx, in.UserID, in.ContentType, in.ContentLength)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidUpload) {
			return nil, models.NewValidationError("Invalid avatar content type or size")
		}
		return nil, err
	}
	return info, nil
}

// UpdateProfile changes the nickname and, when an avatar key is given,
// confirms the upload and stores its public URL.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if nickname := strings.TrimSpace(in.Nickname); nickname != "" && nickname != user.Nickname {
		taken, err := s.userRepo.NicknameTaken(ctx, nickname, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewDuplicateError("Nickname is already in use")
		}
		user.Nickname = nickname
	}

	if in.AvatarKey != "" {
		if s.avatars == nil {
			return nil, models.NewValidationError("Avatar uploads are not available")
		}
		publicURL, err := s.avatars.CheckAvatarUpload(ctx, user.ID, in.AvatarKey)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrAvatarNotFound):
				return nil, models.NewNotFoundError("Avatar", in.AvatarKey)
			case errors.Is(err, storage.ErrInvalidUpload):
				return nil, models.NewValidationError("Uploaded avatar does not satisfy limits")
			default:
				return nil, err
			}
		}
		user.ProfilePhoto = publicURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstGenre sets the user's first-choice genre, replacing the
// current one if present.
func (s *UserService) UpdateFirstGenre(ctx context.Context, in UpdateFirstGenreInput) (*models.UserGenre, error) {
	genre, err := s.genreRepo.GetByID(ctx, in.GenreID)
	if err != nil {
		return nil, err
	}

	current, err := s.genreRepo.FirstByUser(ctx, in.UserID)
	if err != nil && !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}

	if current != nil {
		current.GenreID = genre.ID
		if err := s.genreRepo.UpdateUserGenre(ctx, current); err != nil {
			return nil, err
		}
		return s.genreRepo.FirstByUser(ctx, in.UserID)
	}

	ug := &models.UserGenre{UserID: in.UserID, GenreID: genre.ID, IsFirst: true}
	if err := s.genreRepo.CreateUserGenre(ctx, ug); err != nil {
		return nil, err
	}
	return s.genreRepo.FirstByUser(ctx, in.UserID)
}

// ToggleSecondGenre adds the genre to the user's second-choice set, or
// removes it if already present. Returns true when the genre is in the
// set after the toggle.
func (s *UserService) ToggleSecondGenre(ctx context.Context, in ToggleSecondGenreInput) (bool, error) {
	if _, err := s.genreRepo.GetByID(ctx, in.GenreID); err != nil {
		return false, err
	}

	existing, err := s.genreRepo.FindSecond(ctx, in.UserID, in.GenreID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.genreRepo.DeleteUserGenre(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	ug := &models.UserGenre{UserID: in.UserID, GenreID: in.GenreID, IsFirst: false}
	if err := s.genreRepo.CreateUserGenre(ctx, ug); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateSubscribedOtts replaces the user's OTT subscription set with the
// given ids. Every id must reference a known service.
func (s *UserService) UpdateSubscribedOtts(ctx context.Context, in UpdateOttsInput) ([]*models.UserOtt, error) {
	seen := make(map[uint]bool, len(in.OttIDs))
	ids := make([]uint, 0, len(in.OttIDs))
	for _, id := range in.OttIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.ottRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := s.ottRepo.ReplaceForUser(ctx, in.UserID, ids); err != nil {
		return nil, err
	}
	return s.ottRepo.ListByUser(ctx, in.UserID)
}

// MarkProgramLiked flags a program as one the user wants to watch.
func (s *UserService) MarkProgramLiked(ctx context.Context, in ProgramMarkInput) error {
	if _, err := s.programRepo.GetByID(ctx, in.ProgramID); err != nil {
		return err
	}
	return s.programRepo.MarkLiked(ctx, in.UserID, in.ProgramID)
}

func (s *UserService) UnmarkProgramLiked(ctx context.Context, in ProgramMarkInput) error {
	return s.programRepo.UnmarkLiked(ctx, in.UserID, in.ProgramID)
}

// MarkProgramUninterested hides a program from the user's feeds.
func (s *UserService) MarkProgramUninterested(ctx context.Context, in ProgramMarkInput) error {
	if _, err := s.programRepo.GetByID(ctx, in.ProgramID); err != nil {
		return err
	}
	return s.programRepo.MarkUninterested(ctx, in.UserID, in.ProgramID)
}

func (s *UserService) UnmarkProgramUninterested(ctx context.Context, in ProgramMarkInput) error {
	return s.programRepo.UnmarkUninterested(ctx, in.UserID, in.ProgramID)
}
