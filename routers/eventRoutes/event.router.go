package eventRoutes

import (
	eventController "techstorm/controllers/events"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	eventValidator "techstorm/validators/events"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	eventGroup := app.Group("/events")

	eventGroup.Get("/", eventController.ListEvents)
	eventGroup.Get("/upcoming", eventController.UpcomingEvents)

	eventGroup.Post("/", middleware.JWTMiddleware, adminOnly, eventValidator.CreateEvent(), eventController.CreateEvent)
	eventGroup.Patch("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), eventValidator.UpdateEvent(), eventController.UpdateEvent)
	eventGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), eventController.DeleteEvent)
}
