package models

import (
	"time"
)

// OTP is a one-time code mailed to a user, currently used for password resets
type OTP struct {
	Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Email     string    `json:"email" gorm:"size:191;index"`
	CodeHash  string    `json:"-" gorm:"size:64;not null"`
	Purpose   string    `json:"purpose" gorm:"size:32;default:'PASSWORD_RESET'"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
	Attempts  int       `json:"attempts" gorm:"default:0"`
}

const OTPPasswordReset = "PASSWORD_RESET"
