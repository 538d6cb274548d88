package uploadRoutes

import (
	uploadController "techstorm/controllers/uploads"
	"techstorm/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	app.Post("/uploads", middleware.JWTMiddleware, middleware.LoadUser, uploadController.Upload)
}
