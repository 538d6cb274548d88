package eventValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateEventRequest struct {
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description"`
	Date        *validators.Timestamp `json:"date" validate:"required,filled"`
	Location    string                `json:"location" validate:"max=200"`
	IsVirtual   bool                  `json:"is_virtual"`
	Image       string                `json:"image"`
}

func (r *CreateEventRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
}

type UpdateEventRequest struct {
	Title       *string               `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string               `json:"description"`
	Date        *validators.Timestamp `json:"date" validate:"omitempty,filled"`
	Location    *string               `json:"location" validate:"omitempty,max=200"`
	IsVirtual   *bool                 `json:"is_virtual"`
	Image       *string               `json:"image"`
}

func CreateEvent() fiber.Handler {
	return validators.Body[CreateEventRequest]("validatedEvent")
}

func UpdateEvent() fiber.Handler {
	return validators.Body[UpdateEventRequest]("validatedEventUpdate")
}
