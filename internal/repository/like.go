package repository

import (
	"context"

	"ottify/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like-record operations over
// both like families (subject likes and comment likes). A like is the
// existence of a row; uniqueness is enforced by the storage layer.
type LikeRepository interface {
	SubjectLikeExists(ctx context.Context, userID, subjectID uint) (bool, error)
	InsertSubjectLike(ctx context.Context, userID, subjectID uint) error
	DeleteSubjectLike(ctx context.Context, userID, subjectID uint) error
	CountSubjectLikes(ctx context.Context, subjectID uint) (int64, error)

	CommentLikeExists(ctx context.Context, userID, commentID uint) (bool, error)
	InsertCommentLike(ctx context.Context, userID, subjectID, commentID uint, isReply bool) error
	DeleteCommentLike(ctx context.Context, userID, commentID uint) error
	CountCommentLikes(ctx context.Context, commentID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) SubjectLikeExists(ctx context.Context, userID, subjectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubjectLike{}).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertSubjectLike uses INSERT ... ON CONFLICT DO NOTHING so a
// concurrent toggle that already inserted the pair resolves idempotently
// instead of surfacing a uniqueness violation.
func (r *likeRepository) InsertSubjectLike(ctx context.Context, userID, subjectID uint) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO subject_likes (user_id, subject_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, subject_id) DO NOTHING`,
		userID, subjectID,
	).Error
}

func (r *likeRepository) DeleteSubjectLike(ctx context.Context, userID, subjectID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Delete(&models.SubjectLike{}).Error
}

func (r *likeRepository) CountSubjectLikes(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubjectLike{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CommentLikeExists(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) InsertCommentLike(ctx context.Context, userID, subjectID, commentID uint, isReply bool) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO comment_likes (user_id, comment_id, subject_id, is_reply, created_at)
		 VALUES (?, ?, ?, ?, NOW())
		 ON CONFLICT (user_id, comment_id) DO NOTHING`,
		userID, commentID, subjectID, isReply,
	).Error
}

func (r *likeRepository) DeleteCommentLike(ctx context.Context, userID, commentID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error
}

func (r *likeRepository) CountCommentLikes(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}
