package repository

import (
	"context"
	"errors"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// ProgramRepository defines the interface for program catalogue rows.
// Program ids come from the external catalogue, so creation is always an
// idempotent upsert keyed on that id.
type ProgramRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Program, error)
	GetOrCreate(ctx context.Context, program *models.Program) (*models.Program, error)
	LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Program, error)
	UninterestedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Program, error)
	MarkLiked(ctx context.Context, userID, programID uint) error
	UnmarkLiked(ctx context.Context, userID, programID uint) error
	MarkUninterested(ctx context.Context, userID, programID uint) error
	UnmarkUninterested(ctx context.Context, userID, programID uint) error
}

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	var program models.Program
	err := r.db.WithContext(ctx).First(&program, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Program", id)
		}
		return nil, err
	}
	return &program, nil
}

// GetOrCreate inserts the program if it is not yet cached locally.
// Concurrent callers race on the same external id; ON CONFLICT DO
// NOTHING lets exactly one insert win and everyone read the same row.
func (r *programRepository) GetOrCreate(ctx context.Context, program *models.Program) (*models.Program, error) {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO programs (id, title, poster_path, created_at)
		 VALUES (?, ?, ?, NOW())
		 ON CONFLICT (id) DO NOTHING`,
		program.ID, program.Title, program.PosterPath,
	).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, program.ID)
}

func (r *programRepository) LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Program, error) {
	return r.markedByUser(ctx, "liked_programs", userID, limit, offset)
}

func (r *programRepository) UninterestedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Program, error) {
	return r.markedByUser(ctx, "uninterested_programs", userID, limit, offset)
}

// Marks are idempotent: re-marking an already marked program is a no-op
// via ON CONFLICT DO NOTHING, unmarking a missing mark deletes zero rows.
func (r *programRepository) MarkLiked(ctx context.Context, userID, programID uint) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO liked_programs (user_id, program_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, program_id) DO NOTHING`,
		userID, programID,
	).Error
}

func (r *programRepository) UnmarkLiked(ctx context.Context, userID, programID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Delete(&models.LikedProgram{}).Error
}

func (r *programRepository) MarkUninterested(ctx context.Context, userID, programID uint) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO uninterested_programs (user_id, program_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, program_id) DO NOTHING`,
		userID, programID,
	).Error
}

func (r *programRepository) UnmarkUninterested(ctx context.Context, userID, programID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Delete(&models.UninterestedProgram{}).Error
}

func (r *programRepository) markedByUser(ctx context.Context, table string, userID uint, limit, offset int) ([]*models.Program, error) {
	var programs []*models.Program
	err := r.db.WithContext(ctx).
		Model(&models.Program{}).
		Joins("JOIN "+table+" ON "+table+".program_id = programs.id").
		Where(table+".user_id = ?", userID).
		Order(table + ".created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&programs).Error
	return programs, err
}
