package models

import (
	"time"
)

// SocialType identifies the OAuth provider a user signed up with.
type SocialType string

const (
	SocialGoogle SocialType = "google"
	SocialNaver  SocialType = "naver"
)

// GradeType is the user's community grade tier.
type GradeType string

const (
	GradeGeneral GradeType = "general"
	GradeExpert  GradeType = "expert"
)

// User is an authenticated account. Accounts are created on first social
// login; there is no password credential.
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Nickname      string     `gorm:"uniqueIndex;not null" json:"nickname"`
	ProfilePhoto  string     `json:"profile_photo"`
	AverageRating float64    `json:"average_rating"`
	Grade         GradeType  `gorm:"default:general" json:"grade"`
	SocialType    SocialType `json:"social_type"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
