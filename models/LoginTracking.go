package models

import (
	"time"
)

type LoginTracking struct {
	Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}
