package galleryValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateImageRequest struct {
	URL         string `json:"url" validate:"required"`
	Title       string `json:"title" validate:"max=200"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description"`
}

func (r *CreateImageRequest) Trim() {
	r.URL = strings.TrimSpace(r.URL)
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
}

type ListQuery struct {
	Category string `query:"category"`
}

func (r *ListQuery) Trim() { r.Category = strings.TrimSpace(r.Category) }

func CreateImage() fiber.Handler {
	return validators.Body[CreateImageRequest]("validatedGalleryImage")
}

func List() fiber.Handler {
	return validators.Query[ListQuery]("validatedGalleryQuery")
}
