package models

import "time"

// LikedProgram marks a program the user wants to watch.
type LikedProgram struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_liked_program" json:"user_id"`
	ProgramID uint      `gorm:"not null;uniqueIndex:idx_user_liked_program" json:"program_id"`
	Program   Program   `gorm:"foreignKey:ProgramID" json:"program"`
	CreatedAt time.Time `json:"created_at"`
}

// UninterestedProgram marks a program the user asked to hide.
type UninterestedProgram struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_unint_program" json:"user_id"`
	ProgramID uint      `gorm:"not null;uniqueIndex:idx_user_unint_program" json:"program_id"`
	Program   Program   `gorm:"foreignKey:ProgramID" json:"program"`
	CreatedAt time.Time `json:"created_at"`
}
