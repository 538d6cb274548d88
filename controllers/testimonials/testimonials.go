package testimonialController

import (
	"log"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	testimonialValidator "techstorm/validators/testimonials"

	"github.com/gofiber/fiber/v2"
)

const defaultRating = 5

func ListTestimonials(c *fiber.Ctx) error {
	testimonials := make([]models.Testimonial, 0)
	if err := database.Database.Db.Order("created_at desc").Find(&testimonials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch testimonials!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonials list.", testimonials)
}

func GetTestimonial(c *fiber.Ctx) error {
	var testimonial models.Testimonial
	if err := database.Database.Db.First(&testimonial, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Testimonial not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonial details.", testimonial)
}

func CreateTestimonial(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTestimonial").(*testimonialValidator.CreateTestimonialRequest)

	testimonial := models.Testimonial{
		Name:    reqData.Name,
		Role:    reqData.Role,
		Content: reqData.Content,
		Image:   reqData.Image,
		Company: reqData.Company,
		Rating:  defaultRating,
	}
	if reqData.Rating != nil {
		testimonial.Rating = *reqData.Rating
	}

	if err := database.Database.Db.Create(&testimonial).Error; err != nil {
		log.Printf("Error creating testimonial: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create testimonial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Testimonial created successfully!", testimonial)
}

func UpdateTestimonial(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTestimonialUpdate").(*testimonialValidator.UpdateTestimonialRequest)
	db := database.Database.Db

	var testimonial models.Testimonial
	if err := db.First(&testimonial, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Testimonial not found!", nil)
	}

	var columns []string
	set := func(dst *string, src *string, column string) {
		if src != nil {
			*dst = *src
			columns = append(columns, column)
		}
	}
	set(&testimonial.Name, reqData.Name, "Name")
	set(&testimonial.Role, reqData.Role, "Role")
	set(&testimonial.Content, reqData.Content, "Content")
	set(&testimonial.Image, reqData.Image, "Image")
	set(&testimonial.Company, reqData.Company, "Company")
	if reqData.Rating != nil {
		testimonial.Rating = *reqData.Rating
		columns = append(columns, "Rating")
	}

	if len(columns) > 0 {
		if err := db.Model(&testimonial).Select(columns).Updates(&testimonial).Error; err != nil {
			log.Printf("Error updating testimonial: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update testimonial!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonial updated successfully!", testimonial)
}

func DeleteTestimonial(c *fiber.Ctx) error {
	result := database.Database.Db.Delete(&models.Testimonial{}, c.Locals("id").(uint))
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete testimonial!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Testimonial not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonial deleted successfully!", nil)
}
