package adminController

import (
	"log"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	adminValidator "techstorm/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

func GetSettings(c *fiber.Ctx) error {
	settings, err := database.LoadSettings(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform settings.", settings)
}

func UpdateSettings(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSettings").(*adminValidator.SettingsRequest)
	db := database.Database.Db

	settings, err := database.LoadSettings(db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}

	if reqData.MaintenanceMode != nil {
		settings.MaintenanceMode = *reqData.MaintenanceMode
	}
	if reqData.PlatformName != nil {
		settings.PlatformName = *reqData.PlatformName
	}
	if reqData.SupportEmail != nil {
		settings.SupportEmail = *reqData.SupportEmail
	}
	settings.UpdatedAt = time.Now()

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"maintenance_mode", "platform_name", "support_email", "updated_at"}),
	}).Create(&settings).Error
	if err != nil {
		log.Printf("Error saving settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings saved successfully!", settings)
}
