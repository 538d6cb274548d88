package reportController

import (
	"fmt"
	"log"
	"math"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type platformStats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalCourses     int64   `json:"total_courses"`
	TotalEnrollments int64   `json:"total_enrollments"`
	CompletionRate   float64 `json:"completion_rate"`
	Revenue          float64 `json:"revenue"`
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func collectPlatformStats(db *gorm.DB) (platformStats, []categoryCount, error) {
	var stats platformStats
	var completedLessons, totalLessons int64

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.Course{}).Count(&stats.TotalCourses)
	db.Model(&models.Enrollment{}).Count(&stats.TotalEnrollments)
	db.Model(&models.LessonProgress{}).Where("is_completed = ?", true).Count(&completedLessons)
	db.Model(&models.Lesson{}).Count(&totalLessons)
	if totalLessons > 0 {
		stats.CompletionRate = math.Round(float64(completedLessons) / float64(totalLessons) * 100)
	}

	var categories []categoryCount
	err := db.Model(&models.Course{}).
		Select("category AS name, COUNT(*) AS count").
		Group("category").
		Order("count desc").
		Scan(&categories).Error
	if err != nil {
		return stats, nil, err
	}
	for i := range categories {
		if categories[i].Name == "" {
			categories[i].Name = "Uncategorized"
		}
	}
	return stats, categories, nil
}

func PlatformReport(c *fiber.Ctx) error {
	db := database.Database.Db

	stats, categories, err := collectPlatformStats(db)
	if err != nil {
		log.Printf("Error building platform report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	top := make([]map[string]interface{}, 0, len(categories))
	for _, cat := range categories {
		top = append(top, map[string]interface{}{"name": cat.Name, "count": cat.Count})
	}
	insights := utils.AI().PlatformInsights(c.UserContext(), utils.PlatformStats{
		TotalUsers:       stats.TotalUsers,
		TotalCourses:     stats.TotalCourses,
		TotalEnrollments: stats.TotalEnrollments,
		CompletionRate:   stats.CompletionRate,
		TopCategories:    top,
	})

	var enrollments []models.Enrollment
	db.Preload("User").Preload("Course").Order("enrolled_at desc").Limit(recentLimit).Find(&enrollments)
	completions := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		item := fiber.Map{"id": e.ID, "enrolled_at": e.EnrolledAt, "user": nil, "course": nil}
		if e.User != nil {
			item["user"] = fiber.Map{"name": e.User.Name}
		}
		if e.Course != nil {
			item["course"] = fiber.Map{"title": e.Course.Title}
		}
		completions = append(completions, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform report.", fiber.Map{
		"stats":              stats,
		"top_categories":     categories,
		"ai_insights":        insights,
		"recent_completions": completions,
	})
}

func ExportPlatformReport(c *fiber.Ctx) error {
	db := database.Database.Db

	stats, categories, err := collectPlatformStats(db)
	if err != nil {
		log.Printf("Error building platform export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	var courses []models.Course
	db.Preload("Instructor").Order("created_at asc").Find(&courses)
	ids := make([]uint, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.ID)
	}
	enrolled := database.CountGrouped(db, "enrollments", "course_id", ids)

	summary := utils.Sheet{
		Name:   "Summary",
		Header: []string{"Metric", "Value"},
		Rows: [][]interface{}{
			{"Total users", stats.TotalUsers},
			{"Total courses", stats.TotalCourses},
			{"Total enrollments", stats.TotalEnrollments},
			{"Completion rate (%)", stats.CompletionRate},
			{"Revenue", stats.Revenue},
		},
	}

	categorySheet := utils.Sheet{Name: "Categories", Header: []string{"Category", "Courses"}}
	for _, cat := range categories {
		categorySheet.Rows = append(categorySheet.Rows, []interface{}{cat.Name, cat.Count})
	}

	courseSheet := utils.Sheet{
		Name:   "Courses",
		Header: []string{"ID", "Title", "Category", "Status", "Price", "Instructor", "Enrollments", "Created"},
	}
	for _, course := range courses {
		var price interface{} = ""
		if course.Price != nil {
			price = *course.Price
		}
		instructor := ""
		if course.Instructor != nil {
			instructor = course.Instructor.Name
		}
		courseSheet.Rows = append(courseSheet.Rows, []interface{}{
			course.ID, course.Title, course.Category, course.Status, price,
			instructor, enrolled[course.ID], course.CreatedAt.Format("2006-01-02"),
		})
	}

	buf, err := utils.WriteWorkbook([]utils.Sheet{summary, categorySheet, courseSheet})
	if err != nil {
		utils.ReportError(err, "platform export")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export report!", nil)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="platform-report-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}
