package service

import (
	"context"
	"strings"

	"ottify/internal/models"
	"ottify/internal/repository"
)

// ReviewService manages program reviews and their like counters.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	programRepo repository.ProgramRepository
	userRepo    repository.UserRepository
}

type CreateReviewInput struct {
	UserID       uint
	ProgramID    uint
	ProgramTitle string
	PosterPath   string
	Content      string
	Rating       float64
}

type ReviewLikeInput struct {
	UserID   uint
	ReviewID uint
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	programRepo repository.ProgramRepository,
	userRepo repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
	}
}

const maxReviewLen = 2000

// CreateReview posts a rating and write-up for a program, caching the
// program row on first reference, and refreshes the author's average
// rating.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxReviewLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}
	if !models.ValidRating(in.Rating) {
		return nil, models.NewValidationError("Rating must be between 0.5 and 5.0 in 0.5 steps")
	}
	if in.ProgramID == 0 {
		return nil, models.NewValidationError("program_id is required")
	}
	if strings.TrimSpace(in.ProgramTitle) == "" {
		return nil, models.NewValidationError("Program title is required")
	}

	program, err := s.programRepo.GetOrCreate(ctx, &models.Program{
		ID:         in.ProgramID,
		Title:      in.ProgramTitle,
		PosterPath: in.PosterPath,
	})
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    in.UserID,
		ProgramID: program.ID,
		Content:   in.Content,
		Rating:    in.Rating,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshAverageRating(ctx, in.UserID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// LatestReviews lists recent reviews across all programs, newest first.
func (s *ReviewService) LatestReviews(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.ListLatest(ctx, limit, offset)
}

// LikeReview records the user's like. Liking an already liked review is
// a no-op, so the denormalized counter never double-counts.
func (s *ReviewService) LikeReview(ctx context.Context, in ReviewLikeInput) (*models.Review, error) {
	if _, err := s.reviewRepo.GetByID(ctx, in.ReviewID); err != nil {
		return nil, err
	}
	if _, err := s.reviewRepo.Like(ctx, in.UserID, in.ReviewID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, in.ReviewID)
}

// UnlikeReview removes the user's like; removing a missing like is a
// no-op.
func (s *ReviewService) UnlikeReview(ctx context.Context, in ReviewLikeInput) (*models.Review, error) {
	if _, err := s.reviewRepo.GetByID(ctx, in.ReviewID); err != nil {
		return nil, err
	}
	if _, err := s.reviewRepo.Unlike(ctx, in.UserID, in.ReviewID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, in.ReviewID)
}

func (s *ReviewService) refreshAverageRating(ctx context.Context, userID uint) error {
	ratings, err := s.reviewRepo.RatingsByUser(ctx, userID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	var sum float64
	for _, r := range ratings {
		sum += r
	}
	if len(ratings) > 0 {
		user.AverageRating = sum / float64(len(ratings))
	} else {
		user.AverageRating = 0
	}
	return s.userRepo.Update(ctx, user)
}
