package models

import "time"

// Genre is a program genre users rank as preferences.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// UserGenre links a user to a preferred genre. Exactly one row per user
// carries IsFirst=true; profile aggregation fails if it is missing.
type UserGenre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	GenreID   uint      `gorm:"not null" json:"genre_id"`
	Genre     Genre     `gorm:"foreignKey:GenreID" json:"genre"`
	IsFirst   bool      `gorm:"not null;default:false" json:"is_first"`
	CreatedAt time.Time `json:"created_at"`
}
