package adminController

import (
	"log"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	adminValidator "techstorm/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func ListTeam(c *fiber.Ctx) error {
	members := make([]models.TeamMember, 0)
	if err := database.Database.Db.Order("sort_order asc").Order("id asc").Find(&members).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team members.", members)
}

func CreateTeamMember(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTeamMember").(*adminValidator.CreateTeamMemberRequest)

	member := models.TeamMember{
		Name:        reqData.Name,
		Role:        reqData.Role,
		Bio:         reqData.Bio,
		Image:       reqData.Image,
		LinkedinURL: reqData.LinkedinURL,
		TwitterURL:  reqData.TwitterURL,
		YoutubeURL:  reqData.YoutubeURL,
		Order:       reqData.Order,
	}
	if err := database.Database.Db.Create(&member).Error; err != nil {
		log.Printf("Error creating team member: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create team member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Team member created successfully!", member)
}

func UpdateTeamMember(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTeamMemberUpdate").(*adminValidator.UpdateTeamMemberRequest)
	db := database.Database.Db

	var member models.TeamMember
	if err := db.First(&member, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team member not found!", nil)
	}

	var columns []string
	set := func(dst *string, src *string, column string) {
		if src != nil {
			*dst = *src
			columns = append(columns, column)
		}
	}
	set(&member.Name, reqData.Name, "Name")
	set(&member.Role, reqData.Role, "Role")
	set(&member.Bio, reqData.Bio, "Bio")
	set(&member.Image, reqData.Image, "Image")
	set(&member.LinkedinURL, reqData.LinkedinURL, "LinkedinURL")
	set(&member.TwitterURL, reqData.TwitterURL, "TwitterURL")
	set(&member.YoutubeURL, reqData.YoutubeURL, "YoutubeURL")
	if reqData.Order != nil {
		member.Order = *reqData.Order
		columns = append(columns, "Order")
	}

	if len(columns) > 0 {
		if err := db.Model(&member).Select(columns).Updates(&member).Error; err != nil {
			log.Printf("Error updating team member: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update team member!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team member updated successfully!", member)
}

func DeleteTeamMember(c *fiber.Ctx) error {
	result := database.Database.Db.Delete(&models.TeamMember{}, c.Locals("id").(uint))
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete team member!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team member not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team member deleted successfully!", nil)
}
