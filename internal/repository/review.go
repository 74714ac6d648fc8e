package repository

import (
	"context"
	"errors"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations.
// Review like counts are denormalized on the review row and adjusted
// inside the same transaction as the like-row change.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	ListLatest(ctx context.Context, limit, offset int) ([]*models.Review, error)
	ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	Like(ctx context.Context, userID, reviewID uint) (bool, error)
	Unlike(ctx context.Context, userID, reviewID uint) (bool, error)
	RatingsByUser(ctx context.Context, userID uint) ([]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Program").
		First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Program").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListLatest(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Program").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Program").
		Joins("JOIN review_likes ON review_likes.review_id = reviews.id").
		Where("review_likes.user_id = ?", userID).
		Order("review_likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// Like inserts the like row and bumps the denormalized counter in one
// transaction. Returns false when the user had already liked the review.
func (r *reviewRepository) Like(ctx context.Context, userID, reviewID uint) (bool, error) {
	var inserted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO review_likes (user_id, review_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (user_id, review_id) DO NOTHING`,
			userID, reviewID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("like_counts", gorm.Expr("like_counts + 1")).Error
	})
	return inserted, err
}

// Unlike removes the like row and decrements the counter only when a
// row was actually deleted.
func (r *reviewRepository) Unlike(ctx context.Context, userID, reviewID uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).
			Delete(&models.ReviewLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&models.Review{}).
			Where("id = ? AND like_counts > 0", reviewID).
			UpdateColumn("like_counts", gorm.Expr("like_counts - 1")).Error
	})
	return deleted, err
}

// RatingsByUser returns every rating the user has given, for the profile
// rating histogram.
func (r *reviewRepository) RatingsByUser(ctx context.Context, userID uint) ([]float64, error) {
	var ratings []float64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Pluck("rating", &ratings).Error
	return ratings, err
}
