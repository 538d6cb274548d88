package sponsorValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateSponsorRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	LogoURL    string `json:"logo_url" validate:"required"`
	WebsiteURL string `json:"website_url" validate:"omitempty,url"`
	Order      int    `json:"order"`
}

func (r *CreateSponsorRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.LogoURL = strings.TrimSpace(r.LogoURL)
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
}

type UpdateSponsorRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	LogoURL    *string `json:"logo_url" validate:"omitempty,min=1"`
	WebsiteURL *string `json:"website_url" validate:"omitempty,url"`
	Order      *int    `json:"order"`
}

func CreateSponsor() fiber.Handler {
	return validators.Body[CreateSponsorRequest]("validatedSponsor")
}

func UpdateSponsor() fiber.Handler {
	return validators.Body[UpdateSponsorRequest]("validatedSponsorUpdate")
}
