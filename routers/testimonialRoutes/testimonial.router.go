package testimonialRoutes

import (
	testimonialController "techstorm/controllers/testimonials"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	testimonialValidator "techstorm/validators/testimonials"

	"github.com/gofiber/fiber/v2"
)

func SetupTestimonialRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	testimonialGroup := app.Group("/testimonials")

	testimonialGroup.Get("/", testimonialController.ListTestimonials)
	testimonialGroup.Get("/:id", validators.ID(), testimonialController.GetTestimonial)
	testimonialGroup.Post("/", middleware.JWTMiddleware, adminOnly, testimonialValidator.CreateTestimonial(), testimonialController.CreateTestimonial)
	testimonialGroup.Patch("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), testimonialValidator.UpdateTestimonial(), testimonialController.UpdateTestimonial)
	testimonialGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), testimonialController.DeleteTestimonial)
}
