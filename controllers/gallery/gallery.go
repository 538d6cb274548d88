package galleryController

import (
	"log"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	galleryValidator "techstorm/validators/gallery"

	"github.com/gofiber/fiber/v2"
)

func ListImages(c *fiber.Ctx) error {
	query := database.Database.Db.Order("created_at desc")
	if reqData, ok := c.Locals("validatedGalleryQuery").(*galleryValidator.ListQuery); ok && reqData.Category != "" {
		query = query.Where("category = ?", reqData.Category)
	}

	images := make([]models.GalleryImage, 0)
	if err := query.Find(&images).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch gallery!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Gallery images.", images)
}

func CreateImage(c *fiber.Ctx) error {
	reqData := c.Locals("validatedGalleryImage").(*galleryValidator.CreateImageRequest)

	image := models.GalleryImage{
		URL:         reqData.URL,
		Title:       reqData.Title,
		Category:    reqData.Category,
		Description: reqData.Description,
	}
	if err := database.Database.Db.Create(&image).Error; err != nil {
		log.Printf("Error creating gallery image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Image added successfully!", image)
}

func DeleteImage(c *fiber.Ctx) error {
	result := database.Database.Db.Delete(&models.GalleryImage{}, c.Locals("id").(uint))
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete image!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Image not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image deleted successfully!", nil)
}
