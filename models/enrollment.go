package models

import (
	"time"
)

// Enrollment is unique per (user, course)
type Enrollment struct {
	Model
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CourseID   uint      `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Course     *Course   `json:"course,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
