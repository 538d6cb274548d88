package eventController

import (
	"log"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	eventValidator "techstorm/validators/events"

	"github.com/gofiber/fiber/v2"
)

func ListEvents(c *fiber.Ctx) error {
	events := make([]models.Event, 0)
	if err := database.Database.Db.Order("date asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events list.", events)
}

func UpcomingEvents(c *fiber.Ctx) error {
	events := make([]models.Event, 0)
	if err := database.Database.Db.Where("date >= ?", time.Now()).Order("date asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upcoming events.", events)
}

func CreateEvent(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEvent").(*eventValidator.CreateEventRequest)

	event := models.Event{
		Title:       reqData.Title,
		Description: reqData.Description,
		Date:        reqData.Date.Value(),
		Location:    reqData.Location,
		IsVirtual:   reqData.IsVirtual,
		Image:       reqData.Image,
	}
	if err := database.Database.Db.Create(&event).Error; err != nil {
		log.Printf("Error creating event: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully!", event)
}

func UpdateEvent(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEventUpdate").(*eventValidator.UpdateEventRequest)
	db := database.Database.Db

	var event models.Event
	if err := db.First(&event, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var columns []string
	if reqData.Title != nil {
		event.Title = *reqData.Title
		columns = append(columns, "Title")
	}
	if reqData.Description != nil {
		event.Description = *reqData.Description
		columns = append(columns, "Description")
	}
	if reqData.Date != nil {
		event.Date = reqData.Date.Value()
		columns = append(columns, "Date")
	}
	if reqData.Location != nil {
		event.Location = *reqData.Location
		columns = append(columns, "Location")
	}
	if reqData.IsVirtual != nil {
		event.IsVirtual = *reqData.IsVirtual
		columns = append(columns, "IsVirtual")
	}
	if reqData.Image != nil {
		event.Image = *reqData.Image
		columns = append(columns, "Image")
	}

	if len(columns) > 0 {
		if err := db.Model(&event).Select(columns).Updates(&event).Error; err != nil {
			log.Printf("Error updating event: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update event!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event updated successfully!", event)
}

func DeleteEvent(c *fiber.Ctx) error {
	result := database.Database.Db.Delete(&models.Event{}, c.Locals("id").(uint))
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete event!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event deleted successfully!", nil)
}
