package models

import "time"

// Subject is a discussion topic tied to one program. The creator is
// immutable after creation; ownership checks live in the service layer.
type Subject struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"not null" json:"content"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	ProgramID uint   `gorm:"not null;index" json:"program_id"`
	Program   Program `gorm:"foreignKey:ProgramID" json:"program"`
	// LikesCount is not persisted; computed at query time
	LikesCount int       `gorm:"-" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
