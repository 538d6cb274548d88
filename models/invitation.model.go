package models

import (
	"time"
)

type Invitation struct {
	Model
	Email       string    `json:"email" gorm:"size:191;index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Course      *Course   `json:"course,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Token       string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index"`
	InvitedByID uint      `json:"invited_by_id"`
}
