package publicValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseQuery struct {
	Category string `query:"category"`
	Search   string `query:"search" validate:"max=100"`
}

func (r *CourseQuery) Trim() {
	r.Category = strings.TrimSpace(r.Category)
	r.Search = strings.TrimSpace(r.Search)
}

func Courses() fiber.Handler {
	return validators.Query[CourseQuery]("validatedCourseQuery")
}
