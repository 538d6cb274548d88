package sponsorController

import (
	"log"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	sponsorValidator "techstorm/validators/sponsors"

	"github.com/gofiber/fiber/v2"
)

func ListSponsors(c *fiber.Ctx) error {
	sponsors := make([]models.Sponsor, 0)
	if err := database.Database.Db.Order("sort_order asc").Order("id asc").Find(&sponsors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sponsors!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sponsors list.", sponsors)
}

func GetSponsor(c *fiber.Ctx) error {
	var sponsor models.Sponsor
	if err := database.Database.Db.First(&sponsor, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sponsor not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sponsor details.", sponsor)
}

func CreateSponsor(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSponsor").(*sponsorValidator.CreateSponsorRequest)

	sponsor := models.Sponsor{
		Name:       reqData.Name,
		LogoURL:    reqData.LogoURL,
		WebsiteURL: reqData.WebsiteURL,
		Order:      reqData.Order,
	}
	if err := database.Database.Db.Create(&sponsor).Error; err != nil {
		log.Printf("Error creating sponsor: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create sponsor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Sponsor created successfully!", sponsor)
}

func UpdateSponsor(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSponsorUpdate").(*sponsorValidator.UpdateSponsorRequest)
	db := database.Database.Db

	var sponsor models.Sponsor
	if err := db.First(&sponsor, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sponsor not found!", nil)
	}

	var columns []string
	if reqData.Name != nil {
		sponsor.Name = *reqData.Name
		columns = append(columns, "Name")
	}
	if reqData.LogoURL != nil {
		sponsor.LogoURL = *reqData.LogoURL
		columns = append(columns, "LogoURL")
	}
	if reqData.WebsiteURL != nil {
		sponsor.WebsiteURL = *reqData.WebsiteURL
		columns = append(columns, "WebsiteURL")
	}
	if reqData.Order != nil {
		sponsor.Order = *reqData.Order
		columns = append(columns, "Order")
	}

	if len(columns) > 0 {
		if err := db.Model(&sponsor).Select(columns).Updates(&sponsor).Error; err != nil {
			log.Printf("Error updating sponsor: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update sponsor!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sponsor updated successfully!", sponsor)
}

func DeleteSponsor(c *fiber.Ctx) error {
	result := database.Database.Db.Delete(&models.Sponsor{}, c.Locals("id").(uint))
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete sponsor!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sponsor not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sponsor deleted successfully!", nil)
}
