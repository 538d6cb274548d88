package adminValidator

import (
	"strings"

	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
)

type UserListQuery struct {
	Role string `query:"role" validate:"omitempty,oneof=ADMIN MENTOR MENTEE"`
}

func (r *UserListQuery) Trim() { r.Role = strings.ToUpper(strings.TrimSpace(r.Role)) }

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MENTOR MENTEE"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (r *CreateUserRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email  *string `json:"email" validate:"omitempty,email,max=191"`
	Role   *string `json:"role" validate:"omitempty,oneof=ADMIN MENTOR MENTEE"`
	Status *string `json:"status" validate:"omitempty,oneof=ACTIVE SUSPENDED"`
	Image  *string `json:"image"`
	Title  *string `json:"title" validate:"omitempty,max=120"`
	Bio    *string `json:"bio"`
}

func (r *UpdateUserRequest) Trim() {
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &e
	}
}

type SettingsRequest struct {
	MaintenanceMode *bool   `json:"maintenance_mode"`
	PlatformName    *string `json:"platform_name" validate:"omitempty,min=1,max=100"`
	SupportEmail    *string `json:"support_email" validate:"omitempty,email"`
}

type CreateTeamMemberRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Role        string `json:"role" validate:"required,max=100"`
	Bio         string `json:"bio"`
	Image       string `json:"image"`
	LinkedinURL string `json:"linkedin_url" validate:"omitempty,url"`
	TwitterURL  string `json:"twitter_url" validate:"omitempty,url"`
	YoutubeURL  string `json:"youtube_url" validate:"omitempty,url"`
	Order       int    `json:"order"`
}

func (r *CreateTeamMemberRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
}

type UpdateTeamMemberRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role        *string `json:"role" validate:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio"`
	Image       *string `json:"image"`
	LinkedinURL *string `json:"linkedin_url" validate:"omitempty,url"`
	TwitterURL  *string `json:"twitter_url" validate:"omitempty,url"`
	YoutubeURL  *string `json:"youtube_url" validate:"omitempty,url"`
	Order       *int    `json:"order"`
}

func ListUsers() fiber.Handler {
	return validators.Query[UserListQuery]("validatedUserQuery")
}

func CreateUser() fiber.Handler {
	return validators.Body[CreateUserRequest]("validatedAdminUser")
}

func UpdateUser() fiber.Handler {
	return validators.Body[UpdateUserRequest]("validatedAdminUserUpdate")
}

func Settings() fiber.Handler {
	return validators.Body[SettingsRequest]("validatedSettings")
}

func CreateTeamMember() fiber.Handler {
	return validators.Body[CreateTeamMemberRequest]("validatedTeamMember")
}

func UpdateTeamMember() fiber.Handler {
	return validators.Body[UpdateTeamMemberRequest]("validatedTeamMemberUpdate")
}
