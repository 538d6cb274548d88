package meetingValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateMeetingRequest struct {
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description"`
	StartTime   *validators.Timestamp `json:"start_time" validate:"required,filled"`
	Link        string                `json:"link"`
	CourseID    *uint                 `json:"course_id" validate:"omitempty,gt=0"`
	IsRecurring bool                  `json:"is_recurring"`
	EndDate     *validators.Timestamp `json:"end_date" validate:"required_if=IsRecurring true"`
	DaysOfWeek  []int                 `json:"days_of_week" validate:"required_if=IsRecurring true,dive,gte=0,lte=6"`
}

func (r *CreateMeetingRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Link = strings.TrimSpace(r.Link)
}

type RequestMeetingRequest struct {
	CourseID    uint                  `json:"course_id" validate:"required,gt=0"`
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description"`
	StartTime   *validators.Timestamp `json:"start_time" validate:"required,filled"`
}

func (r *RequestMeetingRequest) Trim() { r.Title = strings.TrimSpace(r.Title) }

type ApproveRequest struct {
	Link string `json:"link" validate:"required"`
}

func (r *ApproveRequest) Trim() { r.Link = strings.TrimSpace(r.Link) }

func CreateMeeting() fiber.Handler {
	return validators.Body[CreateMeetingRequest]("validatedMeeting")
}

func RequestMeeting() fiber.Handler {
	return validators.Body[RequestMeetingRequest]("validatedMeetingRequest")
}

func Approve() fiber.Handler {
	return validators.Body[ApproveRequest]("validatedApprove")
}
