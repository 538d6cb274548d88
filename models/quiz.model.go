package models

import (
	"gorm.io/datatypes"
)

type Quiz struct {
	Model
	LessonID  uint          `json:"lesson_id" gorm:"index;not null"`
	Title     string        `json:"title"`
	Questions []Question    `json:"questions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Attempts  []QuizAttempt `json:"attempts,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type Question struct {
	Model
	QuizID        uint             `json:"quiz_id" gorm:"index;not null"`
	Text          string           `json:"text" gorm:"type:text"`
	CorrectAnswer string           `json:"correct_answer"`
	Options       []QuestionOption `json:"options,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type QuestionOption struct {
	Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
}

// QuizAttempt keeps every attempt; grades use the best one
type QuizAttempt struct {
	Model
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	User           *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	QuizID         uint           `json:"quiz_id" gorm:"index;not null"`
	Quiz           *Quiz          `json:"quiz,omitempty"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Answers        datatypes.JSON `json:"answers,omitempty"`
}

// Percentage is the attempt score scaled to 0..100
func (a QuizAttempt) Percentage() float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions) * 100
}
