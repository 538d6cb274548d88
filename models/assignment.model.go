package models

import (
	"time"
)

type Assignment struct {
	Model
	LessonID    uint                   `json:"lesson_id" gorm:"index;not null"`
	Title       string                 `json:"title"`
	Description string                 `json:"description" gorm:"type:text"`
	Submissions []AssignmentSubmission `json:"submissions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type AssignmentSubmission struct {
	Model
	UserID       uint        `json:"user_id" gorm:"index;not null"`
	User         *User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AssignmentID uint        `json:"assignment_id" gorm:"index;not null"`
	Assignment   *Assignment `json:"assignment,omitempty"`
	Content      string      `json:"content" gorm:"type:text"`
	Status       string      `json:"status" gorm:"size:16;default:'PENDING';index"`
	Grade        string      `json:"grade" gorm:"default:''"`
	Feedback     string      `json:"feedback" gorm:"type:text"`
	SubmittedAt  time.Time   `json:"submitted_at"`
}
