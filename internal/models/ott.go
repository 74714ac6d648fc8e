package models

import "time"

// Ott is a streaming service a user can subscribe to.
type Ott struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// UserOtt links a user to a subscribed OTT service.
type UserOtt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_ott" json:"user_id"`
	OttID     uint      `gorm:"not null;uniqueIndex:idx_user_ott" json:"ott_id"`
	Ott       Ott       `gorm:"foreignKey:OttID" json:"ott"`
	CreatedAt time.Time `json:"created_at"`
}
