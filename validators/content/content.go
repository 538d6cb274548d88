package contentValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateModuleRequest struct {
	CourseID uint   `json:"course_id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required,max=200"`
}

func (r *CreateModuleRequest) Trim() { r.Title = strings.TrimSpace(r.Title) }

type UpdateModuleRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (r *UpdateModuleRequest) Trim() { r.Title = strings.TrimSpace(r.Title) }

type CreateLessonRequest struct {
	ModuleID uint   `json:"module_id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required,max=200"`
}

func (r *CreateLessonRequest) Trim() { r.Title = strings.TrimSpace(r.Title) }

type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	IsFree      *bool   `json:"is_free"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
}

type ReorderRequest struct {
	Type string `json:"type" validate:"required,oneof=module lesson"`
	IDs  []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type QuizData struct {
	ID    *uint  `json:"id"`
	Title string `json:"title" validate:"required,max=200"`
}

type QuizUpsertRequest struct {
	LessonID uint     `json:"lesson_id" validate:"required,gt=0"`
	Data     QuizData `json:"data"`
}

type GenerateQuizRequest struct {
	LessonID uint `json:"lesson_id" validate:"required,gt=0"`
}

type QuestionData struct {
	Text          string   `json:"text" validate:"required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
}

type QuestionRequest struct {
	QuizID uint         `json:"quiz_id" validate:"required,gt=0"`
	Data   QuestionData `json:"data"`
}

type AssignmentData struct {
	ID          *uint  `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}

type AssignmentUpsertRequest struct {
	LessonID uint           `json:"lesson_id" validate:"required,gt=0"`
	Data     AssignmentData `json:"data"`
}

func CreateModule() fiber.Handler {
	return validators.Body[CreateModuleRequest]("validatedModule")
}

func UpdateModule() fiber.Handler {
	return validators.Body[UpdateModuleRequest]("validatedModuleUpdate")
}

func CreateLesson() fiber.Handler {
	return validators.Body[CreateLessonRequest]("validatedLesson")
}

func UpdateLesson() fiber.Handler {
	return validators.Body[UpdateLessonRequest]("validatedLessonUpdate")
}

func Reorder() fiber.Handler {
	return validators.Body[ReorderRequest]("validatedReorder")
}

func UpsertQuiz() fiber.Handler {
	return validators.Body[QuizUpsertRequest]("validatedQuiz")
}

func GenerateQuiz() fiber.Handler {
	return validators.Body[GenerateQuizRequest]("validatedGenerateQuiz")
}

func CreateQuestion() fiber.Handler {
	return validators.Body[QuestionRequest]("validatedQuestion")
}

func UpsertAssignment() fiber.Handler {
	return validators.Body[AssignmentUpsertRequest]("validatedAssignment")
}
