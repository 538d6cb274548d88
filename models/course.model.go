package models

import (
	"gorm.io/datatypes"
)

// Course is the root of the authoring tree: Course > Module > Lesson > Quiz/Assignment
type Course struct {
	Model
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Image        string         `json:"image" gorm:"default:''"`
	Price        *float64       `json:"price"`
	Category     string         `json:"category" gorm:"default:'';index"`
	Status       string         `json:"status" gorm:"size:16;default:'DRAFT';index"`
	InstructorID uint           `json:"instructor_id" gorm:"index;not null"`
	Instructor   *User          `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE"`
	AIOutline    datatypes.JSON `json:"-"`
	Modules      []Module       `json:"modules,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Enrollments  []Enrollment   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type Module struct {
	Model
	CourseID uint     `json:"course_id" gorm:"index;not null"`
	Title    string   `json:"title"`
	Position int      `json:"position" gorm:"default:0"`
	Lessons  []Lesson `json:"lessons,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
