package models

import "time"

// Rating bounds for reviews. Ratings move in 0.5 steps.
const (
	RatingMin  = 0.5
	RatingMax  = 5.0
	RatingStep = 0.5
)

// Review is a user's rating and write-up for a program. LikeCounts is a
// denormalized counter kept in sync by the review like/unlike operations.
type Review struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;index" json:"user_id"`
	User       User    `gorm:"foreignKey:UserID" json:"user"`
	ProgramID  uint    `gorm:"not null;index" json:"program_id"`
	Program    Program `gorm:"foreignKey:ProgramID" json:"program"`
	Content    string  `gorm:"not null" json:"content"`
	Rating     float64 `gorm:"not null" json:"rating"`
	LikeCounts int     `gorm:"not null;default:0" json:"like_counts"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReviewLike marks that a user liked a review; (user, review) is unique.
type ReviewLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_review" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_user_review" json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRating reports whether r is one of the allowed 0.5-step values.
func ValidRating(r float64) bool {
	if r < RatingMin || r > RatingMax {
		return false
	}
	scaled := r / RatingStep
	return scaled == float64(int(scaled))
}
