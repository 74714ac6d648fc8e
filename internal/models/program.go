package models

import "time"

// Program is the OTT title a subject or review is about. The ID is the
// external catalogue id supplied by the client, not a generated key, so
// find-or-create must never produce two rows for the same id.
type Program struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	PosterPath string    `json:"poster_path"`
	CreatedAt  time.Time `json:"created_at"`
}
