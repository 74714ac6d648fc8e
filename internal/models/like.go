package models

import "time"

// SubjectLike marks that a user liked a subject. The combination of
// UserID and SubjectID must be unique; existence of the row is the like.
type SubjectLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_subject" json:"user_id"`
	SubjectID uint      `gorm:"not null;uniqueIndex:idx_user_subject" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike marks that a user liked a comment or reply. Both levels
// share one table; IsReply tags which level the target is, and SubjectID
// scopes the like to its thread so lookups cannot leak across subjects.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"comment_id"`
	SubjectID uint      `gorm:"not null;index" json:"subject_id"`
	IsReply   bool      `gorm:"not null" json:"is_reply"`
	CreatedAt time.Time `json:"created_at"`
}
