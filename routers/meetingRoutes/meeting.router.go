package meetingRoutes

import (
	meetingController "techstorm/controllers/meetings"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	meetingValidator "techstorm/validators/meetings"

	"github.com/gofiber/fiber/v2"
)

func SetupMeetingRoutes(app *fiber.App) {
	mentors := middleware.RequireRoles(models.RoleMentor, models.RoleAdmin)

	meetingGroup := app.Group("/meetings", middleware.JWTMiddleware)

	meetingGroup.Post("/", mentors, meetingValidator.CreateMeeting(), meetingController.CreateMeeting)
	meetingGroup.Get("/mentor", mentors, meetingController.MentorMeetings)
	meetingGroup.Get("/mentee", middleware.LoadUser, meetingController.MenteeMeetings)
	meetingGroup.Post("/request", middleware.LoadUser, meetingValidator.RequestMeeting(), meetingController.RequestMeeting)
	meetingGroup.Patch("/:id/approve", mentors, validators.ID(), meetingValidator.Approve(), meetingController.ApproveMeeting)
	meetingGroup.Patch("/:id/reject", mentors, validators.ID(), meetingController.RejectMeeting)
	meetingGroup.Delete("/:id", middleware.LoadUser, validators.ID(), meetingController.DeleteMeeting)
}
