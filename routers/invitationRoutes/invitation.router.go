package invitationRoutes

import (
	invitationController "techstorm/controllers/invitations"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	invitationValidator "techstorm/validators/invitations"

	"github.com/gofiber/fiber/v2"
)

func SetupInvitationRoutes(app *fiber.App) {
	mentors := middleware.RequireRoles(models.RoleMentor, models.RoleAdmin)

	invitationGroup := app.Group("/invitations", middleware.JWTMiddleware)

	invitationGroup.Post("/invite", mentors, invitationValidator.Invite(), invitationController.Invite)
	invitationGroup.Post("/accept", middleware.LoadUser, invitationValidator.Accept(), invitationController.Accept)
	invitationGroup.Get("/course/:id", mentors, validators.ID(), invitationController.ListForCourse)
}
