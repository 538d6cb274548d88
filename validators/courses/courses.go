package courseValidator

import (
	"encoding/json"
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (r *CreateCourseRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
}

type GenerateCourseRequest struct {
	Topic string `json:"topic" validate:"required,max=200"`
	Level string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
}

func (r *GenerateCourseRequest) Trim() {
	r.Topic = strings.TrimSpace(r.Topic)
}

// UpdateCourseRequest leaves a field untouched when its key is absent.
// Price stays raw so "absent" and "null" can be told apart.
type UpdateCourseRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Price       json.RawMessage `json:"price"`
	Category    *string         `json:"category" validate:"omitempty,max=100"`
}

type GradeRequest struct {
	Grade    string `json:"grade" validate:"required,max=20"`
	Feedback string `json:"feedback" validate:"max=5000"`
}

func (r *GradeRequest) Trim() {
	r.Grade = strings.TrimSpace(r.Grade)
	r.Feedback = strings.TrimSpace(r.Feedback)
}

func CreateCourse() fiber.Handler {
	return validators.Body[CreateCourseRequest]("validatedCourse")
}

func GenerateCourse() fiber.Handler {
	return validators.Body[GenerateCourseRequest]("validatedGenerateCourse")
}

func UpdateCourse() fiber.Handler {
	return validators.Body[UpdateCourseRequest]("validatedCourseUpdate")
}

func GradeSubmission() fiber.Handler {
	return validators.Body[GradeRequest]("validatedGrade")
}
