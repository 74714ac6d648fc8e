package repository

import (
	"context"
	"errors"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// SubjectRepository defines the interface for discussion subject data operations
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context, limit, offset int, programID *uint) ([]*models.Subject, int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Subject, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id uint) error
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	err := r.applySubjectDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Program").
		Where("subjects.id = ?", id).
		First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Subject", id)
		}
		return nil, err
	}
	return &subject, nil
}

// applySubjectDetails adds a subquery to fetch the live like count in the
// same query.
func (r *subjectRepository) applySubjectDetails(db *gorm.DB) *gorm.DB {
	return db.Select("subjects.*, " +
		"(SELECT COUNT(*) FROM subject_likes WHERE subject_likes.subject_id = subjects.id) as likes_count")
}

func (r *subjectRepository) List(ctx context.Context, limit, offset int, programID *uint) ([]*models.Subject, int64, error) {
	var subjects []*models.Subject
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Subject{})
	if programID != nil {
		query = query.Where("program_id = ?", *programID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.applySubjectDetails(query).
		Preload("User").
		Preload("Program").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subjects).Error
	return subjects, total, err
}

func (r *subjectRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Subject, error) {
	var subjects []*models.Subject
	err := r.applySubjectDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Program").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subjects).Error
	return subjects, err
}

// ListByIDs fetches subjects in the caller's id order, for the
// commented-subjects profile listing.
func (r *subjectRepository) ListByIDs(ctx context.Context, ids []uint) ([]*models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subjects []*models.Subject
	err := r.applySubjectDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Program").
		Where("subjects.id IN ?", ids).
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Subject, len(subjects))
	for _, s := range subjects {
		byID[s.ID] = s
	}
	ordered := make([]*models.Subject, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

// Delete removes the subject together with its comments and every like
// row pointing at the subject or its comments, in one transaction.
func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.SubjectLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Subject{}, id).Error
	})
}
