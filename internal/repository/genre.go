package repository

import (
	"context"
	"errors"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// GenreRepository defines the interface for genre preference operations.
// Every user has at most one first-choice genre; second-choice genres
// are an open set toggled on and off.
type GenreRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
	FirstByUser(ctx context.Context, userID uint) (*models.UserGenre, error)
	SecondByUser(ctx context.Context, userID uint) ([]*models.UserGenre, error)
	FindSecond(ctx context.Context, userID, genreID uint) (*models.UserGenre, error)
	CreateUserGenre(ctx context.Context, ug *models.UserGenre) error
	UpdateUserGenre(ctx context.Context, ug *models.UserGenre) error
	DeleteUserGenre(ctx context.Context, id uint) error
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new GenreRepository
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Genre", id)
		}
		return nil, err
	}
	return &genre, nil
}

// FirstByUser returns the user's first-choice genre row. A missing row
// is a NotFound; profile aggregation treats it as a hard failure.
func (r *genreRepository) FirstByUser(ctx context.Context, userID uint) (*models.UserGenre, error) {
	var ug models.UserGenre
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Where("user_id = ? AND is_first = true", userID).
		First(&ug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("UserGenre", userID)
		}
		return nil, err
	}
	return &ug, nil
}

func (r *genreRepository) SecondByUser(ctx context.Context, userID uint) ([]*models.UserGenre, error) {
	var ugs []*models.UserGenre
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Where("user_id = ? AND is_first = false", userID).
		Order("created_at ASC").
		Find(&ugs).Error
	return ugs, err
}

// FindSecond returns nil without error when the user has no
// second-choice row for the genre, so the toggle can branch.
func (r *genreRepository) FindSecond(ctx context.Context, userID, genreID uint) (*models.UserGenre, error) {
	var ug models.UserGenre
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND genre_id = ? AND is_first = false", userID, genreID).
		First(&ug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ug, nil
}

func (r *genreRepository) CreateUserGenre(ctx context.Context, ug *models.UserGenre) error {
	return r.db.WithContext(ctx).Create(ug).Error
}

func (r *genreRepository) UpdateUserGenre(ctx context.Context, ug *models.UserGenre) error {
	return r.db.WithContext(ctx).Save(ug).Error
}

func (r *genreRepository) DeleteUserGenre(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.UserGenre{}, id).Error
}
