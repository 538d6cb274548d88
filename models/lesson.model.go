package models

import (
	"time"
)

type Lesson struct {
	Model
	ModuleID     uint             `json:"module_id" gorm:"index;not null"`
	Title        string           `json:"title"`
	Description  string           `json:"description" gorm:"type:text"`
	VideoURL     string           `json:"video_url" gorm:"default:''"`
	IsFree       bool             `json:"is_free" gorm:"default:false"`
	Duration     int              `json:"duration" gorm:"default:0"` // minutes
	Position     int              `json:"position" gorm:"default:0"`
	Quizzes      []Quiz           `json:"quizzes,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Assignments  []Assignment     `json:"assignments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	UserProgress []LessonProgress `json:"user_progress,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// LessonProgress is unique per (user, lesson)
type LessonProgress struct {
	Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	User        *User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LessonID    uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}
