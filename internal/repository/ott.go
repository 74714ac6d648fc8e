package repository

import (
	"context"
	"errors"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// OttRepository defines the interface for OTT subscription operations.
type OttRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Ott, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.UserOtt, error)
	ReplaceForUser(ctx context.Context, userID uint, ottIDs []uint) error
}

type ottRepository struct {
	db *gorm.DB
}

// NewOttRepository creates a new OttRepository
func NewOttRepository(db *gorm.DB) OttRepository {
	return &ottRepository{db: db}
}

func (r *ottRepository) GetByID(ctx context.Context, id uint) (*models.Ott, error) {
	var ott models.Ott
	err := r.db.WithContext(ctx).First(&ott, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ott", id)
		}
		return nil, err
	}
	return &ott, nil
}

func (r *ottRepository) ListByUser(ctx context.Context, userID uint) ([]*models.UserOtt, error) {
	var uos []*models.UserOtt
	err := r.db.WithContext(ctx).
		Preload("Ott").
		Where("user_id = ?", userID).
		Order("ott_id ASC").
		Find(&uos).Error
	return uos, err
}

// ReplaceForUser diffs the stored subscription set against the desired
// one and only touches rows that changed, inside a transaction.
func (r *ottRepository) ReplaceForUser(ctx context.Context, userID uint, ottIDs []uint) error {
	desired := make(map[uint]bool, len(ottIDs))
	for _, id := range ottIDs {
		desired[id] = true
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []*models.UserOtt
		if err := tx.Where("user_id = ?", userID).Find(&current).Error; err != nil {
			return err
		}

		existing := make(map[uint]bool, len(current))
		for _, uo := range current {
			existing[uo.OttID] = true
			if !desired[uo.OttID] {
				if err := tx.Delete(&models.UserOtt{}, uo.ID).Error; err != nil {
					return err
				}
			}
		}

		for _, id := range ottIDs {
			if existing[id] {
				continue
			}
			uo := &models.UserOtt{UserID: userID, OttID: id}
			if err := tx.Create(uo).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
