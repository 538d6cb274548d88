package userController

import (
	"log"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	userValidator "techstorm/validators/users"

	"github.com/gofiber/fiber/v2"
)

type profileResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Image       string    `json:"image"`
	Role        string    `json:"role"`
	Title       string    `json:"title"`
	Bio         string    `json:"bio"`
	LinkedinURL string    `json:"linkedin_url"`
	GithubURL   string    `json:"github_url"`
	TwitterURL  string    `json:"twitter_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProfile(u models.User) profileResponse {
	return profileResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Image:       u.Image,
		Role:        u.Role,
		Title:       u.Title,
		Bio:         u.Bio,
		LinkedinURL: u.LinkedinURL,
		GithubURL:   u.GithubURL,
		TwitterURL:  u.TwitterURL,
		CreatedAt:   u.CreatedAt,
	}
}

func GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile details.", toProfile(user))
}

func UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedProfile").(*userValidator.ProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var columns []string
	set := func(dst *string, src *string, column string) {
		if src != nil {
			*dst = *src
			columns = append(columns, column)
		}
	}
	set(&user.Name, reqData.Name, "Name")
	set(&user.Image, reqData.Image, "Image")
	set(&user.Title, reqData.Title, "Title")
	set(&user.Bio, reqData.Bio, "Bio")
	set(&user.LinkedinURL, reqData.LinkedinURL, "LinkedinURL")
	set(&user.GithubURL, reqData.GithubURL, "GithubURL")
	set(&user.TwitterURL, reqData.TwitterURL, "TwitterURL")

	if len(columns) > 0 {
		if err := database.Database.Db.Model(&user).Select(columns).Updates(&user).Error; err != nil {
			log.Printf("Error updating profile: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", toProfile(user))
}

type mentorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Bio         string `json:"bio"`
	LinkedinURL string `json:"linkedin_url"`
	GithubURL   string `json:"github_url"`
	TwitterURL  string `json:"twitter_url"`
}

func ListMentors(c *fiber.Ctx) error {
	mentors := make([]mentorResponse, 0)
	err := database.Database.Db.Model(&models.User{}).
		Where("role = ?", models.RoleMentor).
		Order("created_at asc").
		Find(&mentors).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch mentors!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentors list.", mentors)
}
