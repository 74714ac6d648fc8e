package models

import "time"

// Comment is a reply to a subject. ParentID nil means top-level; non-nil
// means second-level reply. The thread is at most two levels deep: a
// reply's parent must itself be top-level, enforced by the services.
type Comment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SubjectID uint   `gorm:"not null;index" json:"subject_id"`
	ParentID  *uint  `gorm:"index" json:"parent_id,omitempty"`
	Content   string `gorm:"not null" json:"content"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int       `gorm:"-" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsReply reports whether the comment is a second-level reply.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
