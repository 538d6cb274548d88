package reportController

import (
	"math"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
)

func MentorDashboard(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	owned := db.Model(&models.Course{}).Select("id").Where("instructor_id = ?", user.ID)

	var coursesCount, studentCount int64
	db.Model(&models.Course{}).Where("instructor_id = ?", user.ID).Count(&coursesCount)
	db.Model(&models.Enrollment{}).Where("course_id IN (?)", owned).Distinct("user_id").Count(&studentCount)

	var enrollments []models.Enrollment
	if err := db.Where("course_id IN (?)", owned).
		Preload("User").
		Preload("Course").
		Order("enrolled_at desc").
		Limit(recentLimit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build dashboard!", nil)
	}
	recent := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		item := fiber.Map{"id": e.ID, "enrolled_at": e.EnrolledAt, "user": nil, "course": nil}
		if e.User != nil {
			item["user"] = fiber.Map{"name": e.User.Name, "email": e.User.Email}
		}
		if e.Course != nil {
			item["course"] = fiber.Map{"title": e.Course.Title}
		}
		recent = append(recent, item)
	}

	var attempts []models.QuizAttempt
	db.Select("score", "total_questions").
		Where("quiz_id IN (?)", database.QuizIDsOfCourse(db, owned)).
		Find(&attempts)
	var ratioSum float64
	for _, a := range attempts {
		ratioSum += a.Percentage()
	}
	avgScore := 0.0
	if len(attempts) > 0 {
		avgScore = ratioSum / float64(len(attempts))
	}

	var tracked, completed int64
	lessons := database.LessonIDsOfCourse(db, owned)
	db.Model(&models.LessonProgress{}).Where("lesson_id IN (?)", lessons).Count(&tracked)
	db.Model(&models.LessonProgress{}).Where("lesson_id IN (?) AND is_completed = ?", database.LessonIDsOfCourse(db, owned), true).Count(&completed)
	completionRate := 0.0
	if tracked > 0 {
		completionRate = float64(completed) / float64(tracked) * 100
	}

	avg, rate := math.Round(avgScore), math.Round(completionRate)
	insights := utils.AI().MentorInsights(c.UserContext(), utils.MentorStats{
		CourseTitle:    "Your Published Portfolio",
		StudentCount:   studentCount,
		AvgQuizScore:   avg,
		CompletionRate: rate,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor dashboard.", fiber.Map{
		"courses_count":      coursesCount,
		"student_count":      studentCount,
		"recent_enrollments": recent,
		"avg_score":          avg,
		"completion_rate":    rate,
		"ai_insights":        insights,
	})
}
