package usersRoutes

import (
	userController "techstorm/controllers/users"
	"techstorm/middleware"
	userValidator "techstorm/validators/users"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/mentors", userController.ListMentors)
	userGroup.Get("/profile", middleware.JWTMiddleware, middleware.LoadUser, userController.GetProfile)
	userGroup.Patch("/profile", middleware.JWTMiddleware, middleware.LoadUser, userValidator.UpdateProfile(), userController.UpdateProfile)
}
