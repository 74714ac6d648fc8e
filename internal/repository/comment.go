package repository

import (
	"context"
	"errors"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment and reply data
// operations. Top-level comments and replies live in one table; the
// level-specific lookups are distinct so the depth-2 invariant can be
// checked at the query boundary.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetTopLevel(ctx context.Context, id uint) (*models.Comment, error)
	GetReply(ctx context.Context, id uint) (*models.Comment, error)
	GetInSubject(ctx context.Context, subjectID, id uint) (*models.Comment, error)
	ListTopLevel(ctx context.Context, subjectID uint) ([]*models.Comment, error)
	ListReplies(ctx context.Context, subjectID, parentID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	DeleteCascade(ctx context.Context, id uint) error
	CountBySubject(ctx context.Context, subjectID uint) (int64, error)
	CountAllBySubject(ctx context.Context, subjectID uint) (int64, error)
	SubjectIDsByCommenter(ctx context.Context, userID uint, limit, offset int) ([]uint, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetTopLevel resolves id only when the row is a top-level comment.
func (r *commentRepository) GetTopLevel(ctx context.Context, id uint) (*models.Comment, error) {
	return r.first(r.db.WithContext(ctx).Where("parent_id IS NULL"), id)
}

// GetReply resolves id only when the row is a second-level reply.
func (r *commentRepository) GetReply(ctx context.Context, id uint) (*models.Comment, error) {
	return r.first(r.db.WithContext(ctx).Where("parent_id IS NOT NULL"), id)
}

// GetInSubject resolves id only when the comment belongs to the given
// subject, for composite-path deletes.
func (r *commentRepository) GetInSubject(ctx context.Context, subjectID, id uint) (*models.Comment, error) {
	return r.first(r.db.WithContext(ctx).Where("subject_id = ?", subjectID), id)
}

func (r *commentRepository) first(query *gorm.DB, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := query.Preload("User").Where("comments.id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, subjectID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("subject_id = ? AND parent_id IS NULL", subjectID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListReplies(ctx context.Context, subjectID, parentID uint) ([]*models.Comment, error) {
	var replies []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("subject_id = ? AND parent_id = ?", subjectID, parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// applyCommentDetails adds a subquery to fetch the live like count in the
// same query.
func (r *commentRepository) applyCommentDetails(db *gorm.DB) *gorm.DB {
	return db.Select("comments.*, " +
		"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) as likes_count")
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteCascade removes a comment, its direct replies, and all like rows
// referencing either, in one transaction so no orphaned rows survive.
func (r *commentRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replyIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("parent_id = ?", id).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		targets := append(replyIDs, id)
		if err := tx.Where("comment_id IN ?", targets).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// CountBySubject counts top-level comments only; replies are excluded
// from the thread's comment total.
func (r *commentRepository) CountBySubject(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("subject_id = ? AND parent_id IS NULL", subjectID).
		Count(&count).Error
	return count, err
}

// CountAllBySubject counts both levels, used to decorate discussion
// lists with a reply total.
func (r *commentRepository) CountAllBySubject(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error
	return count, err
}

// SubjectIDsByCommenter returns the distinct subjects a user has written
// comments or replies in, newest participation first.
func (r *commentRepository) SubjectIDsByCommenter(ctx context.Context, userID uint, limit, offset int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("subject_id").
		Where("user_id = ?", userID).
		Group("subject_id").
		Order("MAX(created_at) DESC").
		Limit(limit).
		Offset(offset).
		Pluck("subject_id", &ids).Error
	return ids, err
}
