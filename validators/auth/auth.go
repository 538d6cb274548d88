package authValidator

import (
	"strings"

	"techstorm/middleware"
	"techstorm/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/pmezard/go-difflib/difflib"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r *RegisterRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Trim() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UpdateProfileRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Image *string `json:"image"`
}

func (r *UpdateProfileRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
}

type ChangePasswordRequest struct {
	Current string `json:"current" validate:"required"`
	New     string `json:"new" validate:"required,min=6,max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Trim() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r *ResetPasswordRequest) Trim() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Code = strings.TrimSpace(r.Code)
}

type LoginHistoryQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// maxPasswordSimilarity is the difflib ratio above which a password counts as a copy of the name/email
const maxPasswordSimilarity = 0.7

// passwordTooSimilar compares the password with the name and the email local part
func passwordTooSimilar(password string, attrs ...string) bool {
	pw := strings.ToLower(password)
	for _, attr := range attrs {
		attr = strings.ToLower(attr)
		if at := strings.Index(attr, "@"); at > 0 {
			attr = attr[:at]
		}
		if attr == "" {
			continue
		}
		matcher := difflib.NewMatcher(strings.Split(pw, ""), strings.Split(attr, ""))
		if matcher.QuickRatio() >= maxPasswordSimilarity && matcher.Ratio() >= maxPasswordSimilarity {
			return true
		}
	}
	return false
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Trim()

		errors := validators.Check(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}

		if _, bad := errors["password"]; !bad && passwordTooSimilar(reqData.Password, reqData.Name, reqData.Email) {
			errors["password"] = "Password is too similar to your name or email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return validators.Body[LoginRequest]("validatedLogin")
}

func UpdateProfile() fiber.Handler {
	return validators.Body[UpdateProfileRequest]("validatedAuthProfile")
}

func ChangePassword() fiber.Handler {
	return validators.Body[ChangePasswordRequest]("validatedChangePassword")
}

func ForgotPassword() fiber.Handler {
	return validators.Body[ForgotPasswordRequest]("validatedForgotPassword")
}

func ResetPassword() fiber.Handler {
	return validators.Body[ResetPasswordRequest]("validatedResetPassword")
}

func LoginHistoryList() fiber.Handler {
	return validators.Query[LoginHistoryQuery]("validatedLoginHistory")
}
