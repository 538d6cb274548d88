package galleryRoutes

import (
	galleryController "techstorm/controllers/gallery"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	galleryValidator "techstorm/validators/gallery"

	"github.com/gofiber/fiber/v2"
)

func SetupGalleryRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	galleryGroup := app.Group("/gallery")

	galleryGroup.Get("/", galleryValidator.List(), galleryController.ListImages)
	galleryGroup.Post("/", middleware.JWTMiddleware, adminOnly, galleryValidator.CreateImage(), galleryController.CreateImage)
	galleryGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.ID(), galleryController.DeleteImage)
}
