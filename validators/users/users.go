package userValidator

import (
	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

// ProfileRequest updates only the fields present in the body
type ProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Image       *string `json:"image"`
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
	LinkedinURL *string `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL   *string `json:"github_url" validate:"omitempty,url"`
	TwitterURL  *string `json:"twitter_url" validate:"omitempty,url"`
}

func UpdateProfile() fiber.Handler {
	return validators.Body[ProfileRequest]("validatedProfile")
}
