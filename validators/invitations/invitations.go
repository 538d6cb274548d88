package invitationValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type InviteRequest struct {
	CourseID uint   `json:"course_id" validate:"required,gt=0"`
	Email    string `json:"email" validate:"required,email"`
}

func (r *InviteRequest) Trim() { r.Email = strings.ToLower(strings.TrimSpace(r.Email)) }

type AcceptRequest struct {
	Token string `json:"token" validate:"required"`
}

func (r *AcceptRequest) Trim() { r.Token = strings.TrimSpace(r.Token) }

func Invite() fiber.Handler {
	return validators.Body[InviteRequest]("validatedInvite")
}

func Accept() fiber.Handler {
	return validators.Body[AcceptRequest]("validatedAccept")
}
