package models

import (
	"time"
)

type Meeting struct {
	Model
	Title       string    `json:"title"`
	Description string    `json:"description" gorm:"type:text"`
	StartTime   time.Time `json:"start_time" gorm:"index"`
	Link        string    `json:"link" gorm:"default:''"`
	Status      string    `json:"status" gorm:"size:16;default:'SCHEDULED';index"`
	CourseID    *uint     `json:"course_id" gorm:"index"`
	Course      *Course   `json:"course,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	MentorID    uint      `json:"mentor_id" gorm:"index;not null"`
	Mentor      *User     `json:"mentor,omitempty" gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE"`
	MenteeID    *uint     `json:"mentee_id" gorm:"index"`
	Mentee      *User     `json:"mentee,omitempty" gorm:"foreignKey:MenteeID;constraint:OnDelete:SET NULL"`
}
