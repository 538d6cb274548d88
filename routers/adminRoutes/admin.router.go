package adminRoutes

import (
	adminController "techstorm/controllers/admin"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	adminValidator "techstorm/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	// readable by every signed-in user
	adminGroup.Get("/settings", middleware.LoadUser, adminController.GetSettings)
	adminGroup.Post("/settings", adminOnly, adminValidator.Settings(), adminController.UpdateSettings)

	adminGroup.Get("/users", adminOnly, adminValidator.ListUsers(), adminController.ListUsers)
	adminGroup.Post("/users", adminOnly, adminValidator.CreateUser(), adminController.CreateUser)
	adminGroup.Post("/users/import", adminOnly, adminController.ImportUsers)
	adminGroup.Patch("/users/:id", adminOnly, validators.ID(), adminValidator.UpdateUser(), adminController.UpdateUser)
	adminGroup.Delete("/users/:id", adminOnly, validators.ID(), adminController.DeleteUser)

	adminGroup.Get("/team", adminOnly, adminController.ListTeam)
	adminGroup.Post("/team", adminOnly, adminValidator.CreateTeamMember(), adminController.CreateTeamMember)
	adminGroup.Patch("/team/:id", adminOnly, validators.ID(), adminValidator.UpdateTeamMember(), adminController.UpdateTeamMember)
	adminGroup.Delete("/team/:id", adminOnly, validators.ID(), adminController.DeleteTeamMember)
}
