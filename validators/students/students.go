package studentValidator

import (
	"encoding/json"
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CompleteLessonRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required,gt=0"`
}

type QuizSubmitRequest struct {
	Score          int             `json:"score" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int             `json:"total_questions" validate:"required,gt=0"`
	Answers        json.RawMessage `json:"answers"`
}

type AssignmentSubmitRequest struct {
	Content string `json:"content" validate:"required"`
}

func (r *AssignmentSubmitRequest) Trim() { r.Content = strings.TrimSpace(r.Content) }

func CompleteLesson() fiber.Handler {
	return validators.Body[CompleteLessonRequest]("validatedComplete")
}

func Enroll() fiber.Handler {
	return validators.Body[EnrollRequest]("validatedEnroll")
}

func SubmitQuiz() fiber.Handler {
	return validators.Body[QuizSubmitRequest]("validatedQuizSubmit")
}

func SubmitAssignment() fiber.Handler {
	return validators.Body[AssignmentSubmitRequest]("validatedAssignmentSubmit")
}
