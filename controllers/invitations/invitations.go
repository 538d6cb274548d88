package invitationController

import (
	"log"
	"net/url"
	"time"

	"techstorm/config"
	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	invitationValidator "techstorm/validators/invitations"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const invitationTTL = 7 * 24 * time.Hour

// canInvite reports whether the caller teaches the course or is an admin
func canInvite(user models.User, course models.Course) bool {
	return user.Role == models.RoleAdmin || course.InstructorID == user.ID
}

func Invite(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedInvite").(*invitationValidator.InviteRequest)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}
	if !canInvite(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	token, err := utils.RandomHex(32)
	if err != nil {
		utils.ReportError(err, "generating invitation token")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invitation!", nil)
	}

	invitation := models.Invitation{
		Email:       reqData.Email,
		CourseID:    course.ID,
		Token:       token,
		ExpiresAt:   time.Now().Add(invitationTTL),
		InvitedByID: user.ID,
	}
	if err := db.Create(&invitation).Error; err != nil {
		log.Printf("Error creating invitation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invitation!", nil)
	}

	inviteLink := config.AppConfig.AppURL + "/invite/accept?token=" + url.QueryEscape(token)

	if err := utils.SendInvitationEmail(reqData.Email, course.Title, inviteLink); err != nil {
		log.Printf("[MAIL] invitation to %s failed: %v", reqData.Email, err)
		utils.ReportError(err, "sending invitation email")
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Invitation created but the email could not be sent.", fiber.Map{
			"success":    false,
			"error":      "Failed to send email",
			"invitation": invitation,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invitation sent successfully!", fiber.Map{
		"success":    true,
		"invitation": invitation,
	})
}

func Accept(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedAccept").(*invitationValidator.AcceptRequest)
	db := database.Database.Db

	var invitation models.Invitation
	if err := db.Where("token = ?", reqData.Token).First(&invitation).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid invitation link.", nil)
	}
	if invitation.ExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invitation has expired.", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		enrollment := models.Enrollment{UserID: user.ID, CourseID: invitation.CourseID, EnrolledAt: time.Now()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Delete(&invitation).Error
	})
	if err != nil {
		log.Printf("Error accepting invitation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to accept invitation!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invitation accepted.", fiber.Map{
		"success":   true,
		"course_id": invitation.CourseID,
	})
}

func ListForCourse(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}
	if !canInvite(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	invitations := make([]models.Invitation, 0)
	if err := db.Where("course_id = ? AND expires_at > ?", course.ID, time.Now()).
		Order("created_at desc").
		Find(&invitations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch invitations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending invitations.", invitations)
}
