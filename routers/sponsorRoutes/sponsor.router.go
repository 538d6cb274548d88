package sponsorRoutes

import (
	sponsorController "techstorm/controllers/sponsors"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	sponsorValidator "techstorm/validators/sponsors"

	"github.com/gofiber/fiber/v2"
)

func SetupSponsorRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	sponsorGroup := app.Group("/sponsors")

	sponsorGroup.Get("/", sponsorController.ListSponsors)
	sponsorGroup.Get("/:id", validators.ID(), sponsorController.GetSponsor)
	sponsorGroup.Post("/", middleware.JWTMiddleware, adminOnly, sponsorValidator.CreateSponsor(), sponsorController.CreateSponsor)
	sponsorGroup.Patch("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), sponsorValidator.UpdateSponsor(), sponsorController.UpdateSponsor)
	sponsorGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), sponsorController.DeleteSponsor)
}
