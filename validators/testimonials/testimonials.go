package testimonialValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateTestimonialRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Role    string `json:"role" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
	Company string `json:"company" validate:"max=100"`
	Rating  *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func (r *CreateTestimonialRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.Content = strings.TrimSpace(r.Content)
	r.Company = strings.TrimSpace(r.Company)
}

type UpdateTestimonialRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role    *string `json:"role" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Image   *string `json:"image"`
	Company *string `json:"company" validate:"omitempty,max=100"`
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func CreateTestimonial() fiber.Handler {
	return validators.Body[CreateTestimonialRequest]("validatedTestimonial")
}

func UpdateTestimonial() fiber.Handler {
	return validators.Body[UpdateTestimonialRequest]("validatedTestimonialUpdate")
}
