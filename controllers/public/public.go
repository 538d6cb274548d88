package publicController

import (
	"strings"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	publicValidator "techstorm/validators/public"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type courseCard struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       *float64  `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	Instructor  fiber.Map `json:"instructor"`
	ModuleCount int64     `json:"module_count"`
}

func courseCards(db *gorm.DB, courses []models.Course) []courseCard {
	ids := make([]uint, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}
	modules := database.CountGrouped(db, "modules", "course_id", ids)

	cards := make([]courseCard, 0, len(courses))
	for _, course := range courses {
		card := courseCard{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Image:       course.Image,
			Price:       course.Price,
			Category:    course.Category,
			CreatedAt:   course.CreatedAt,
			ModuleCount: modules[course.ID],
		}
		if course.Instructor != nil {
			card.Instructor = fiber.Map{"name": course.Instructor.Name}
		}
		cards = append(cards, card)
	}
	return cards
}

func Home(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("status = ?", models.CoursePublished).
		Preload("Instructor").
		Order("created_at desc").
		Limit(3).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch home data!", nil)
	}

	events := make([]models.Event, 0)
	db.Where("date >= ?", time.Now()).Order("date asc").Limit(3).Find(&events)

	var totalMentees, totalCourses, totalMentors int64
	db.Model(&models.User{}).Where("role = ?", models.RoleMentee).Count(&totalMentees)
	db.Model(&models.Course{}).Where("status = ?", models.CoursePublished).Count(&totalCourses)
	db.Model(&models.User{}).Where("role = ?", models.RoleMentor).Count(&totalMentors)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Home data.", fiber.Map{
		"courses": courseCards(db, courses),
		"events":  events,
		"stats": fiber.Map{
			"total_mentees": totalMentees,
			"total_courses": totalCourses,
			"total_mentors": totalMentors,
		},
	})
}

func Courses(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("status = ?", models.CoursePublished)
	if reqData, ok := c.Locals("validatedCourseQuery").(*publicValidator.CourseQuery); ok {
		if reqData.Category != "" {
			query = query.Where("category = ?", reqData.Category)
		}
		if reqData.Search != "" {
			like := "%" + strings.ToLower(reqData.Search) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	var courses []models.Course
	if err := query.Preload("Instructor").Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Published courses.", courseCards(db, courses))
}

type lessonOutline struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	IsFree   bool   `json:"is_free"`
	Position int    `json:"position"`
}

type moduleOutline struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	Position int             `json:"position"`
	Lessons  []lessonOutline `json:"lessons"`
}

func CourseDetail(c *fiber.Ctx) error {
	db := database.Database.Db

	var course models.Course
	err := db.Where("id = ? AND status = ?", c.Locals("id").(uint), models.CoursePublished).
		Preload("Instructor").
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	var enrollments int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)

	// Signed-in visitors also learn whether they are already enrolled
	enrolled := false
	if userID, ok := c.Locals("userId").(uint); ok {
		var mine int64
		db.Model(&models.Enrollment{}).Where("course_id = ? AND user_id = ?", course.ID, userID).Count(&mine)
		enrolled = mine > 0
	}

	modules := make([]moduleOutline, 0, len(course.Modules))
	for _, m := range course.Modules {
		lessons := make([]lessonOutline, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			lessons = append(lessons, lessonOutline{ID: l.ID, Title: l.Title, Duration: l.Duration, IsFree: l.IsFree, Position: l.Position})
		}
		modules = append(modules, moduleOutline{ID: m.ID, Title: m.Title, Position: m.Position, Lessons: lessons})
	}

	var instructor fiber.Map
	if course.Instructor != nil {
		instructor = fiber.Map{"name": course.Instructor.Name, "image": course.Instructor.Image, "email": course.Instructor.Email}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details.", fiber.Map{
		"id":               course.ID,
		"title":            course.Title,
		"description":      course.Description,
		"image":            course.Image,
		"price":            course.Price,
		"category":         course.Category,
		"status":           course.Status,
		"created_at":       course.CreatedAt,
		"instructor":       instructor,
		"modules":          modules,
		"enrollment_count": enrollments,
		"enrolled":         enrolled,
	})
}

func Maintenance(c *fiber.Ctx) error {
	settings, err := database.LoadSettings(database.Database.Db)
	if err != nil {
		// Treat an unreadable settings row as "not in maintenance"
		settings.MaintenanceMode = false
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Maintenance status.", fiber.Map{
		"maintenance_mode": settings.MaintenanceMode,
	})
}

func Settings(c *fiber.Ctx) error {
	settings, err := database.LoadSettings(database.Database.Db)
	if err != nil {
		settings = models.DefaultSettings()
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform settings.", fiber.Map{
		"platform_name": settings.PlatformName,
		"support_email": settings.SupportEmail,
	})
}
