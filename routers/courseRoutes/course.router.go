package courseRoutes

import (
	courseController "techstorm/controllers/courses"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	courseValidator "techstorm/validators/courses"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	authors := middleware.RequireRoles(models.RoleMentor, models.RoleAdmin)

	courseGroup := app.Group("/courses", middleware.JWTMiddleware)

	courseGroup.Get("/", middleware.LoadUser, courseController.ListCourses)
	courseGroup.Post("/", authors, courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Post("/generate-ai", authors, courseValidator.GenerateCourse(), courseController.GenerateCourse)
	courseGroup.Get("/mentor/students", authors, courseController.MentorStudents)
	courseGroup.Post("/submissions/:id/grade", authors, validators.ID(), courseValidator.GradeSubmission(), courseController.GradeSubmission)

	courseGroup.Get("/:id/edit", middleware.LoadUser, validators.ID(), courseController.GetCourseForEdit)
	courseGroup.Patch("/:id", authors, validators.ID(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Post("/:id/toggle-status", authors, validators.ID(), courseController.ToggleStatus)
	courseGroup.Post("/:id/submit-review", authors, validators.ID(), courseController.SubmitForReview)
	courseGroup.Delete("/:id", authors, validators.ID(), courseController.DeleteCourse)
	courseGroup.Get("/:id/submissions", authors, validators.ID(), courseController.ListSubmissions)
}
