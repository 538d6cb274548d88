package publicRoutes

import (
	adminController "techstorm/controllers/admin"
	eventController "techstorm/controllers/events"
	galleryController "techstorm/controllers/gallery"
	publicController "techstorm/controllers/public"
	sponsorController "techstorm/controllers/sponsors"
	testimonialController "techstorm/controllers/testimonials"
	"techstorm/middleware"
	"techstorm/validators"
	galleryValidator "techstorm/validators/gallery"
	publicValidator "techstorm/validators/public"

	"github.com/gofiber/fiber/v2"
)

func SetupPublicRoutes(app *fiber.App) {
	publicGroup := app.Group("/public")

	publicGroup.Get("/home", publicController.Home)
	publicGroup.Get("/courses", publicValidator.Courses(), publicController.Courses)
	publicGroup.Get("/courses/:id", middleware.OptionalJWT, validators.ID(), publicController.CourseDetail)
	publicGroup.Get("/maintenance", publicController.Maintenance)
	publicGroup.Get("/settings", publicController.Settings)

	publicGroup.Get("/team", adminController.ListTeam)
	publicGroup.Get("/testimonials", testimonialController.ListTestimonials)
	publicGroup.Get("/sponsors", sponsorController.ListSponsors)
	publicGroup.Get("/events", eventController.ListEvents)
	publicGroup.Get("/gallery", galleryValidator.List(), galleryController.ListImages)
}
