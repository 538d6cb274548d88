package models

import "time"

// RevokedToken stores logged-out token ids when no redis is configured
type RevokedToken struct {
	Model
	JTI       string    `json:"jti" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}
