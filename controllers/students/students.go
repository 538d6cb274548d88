package studentController

import (
	"bytes"
	"errors"
	"log"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	studentValidator "techstorm/validators/students"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

type courseContent struct {
	models.Course
	Progress         int   `json:"progress"`
	TotalLessons     int64 `json:"total_lessons"`
	CompletedLessons int64 `json:"completed_lessons"`
}

func CourseContent(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var course models.Course
	err := db.
		Preload("Modules", byPosition).
		Preload("Modules.Lessons", byPosition).
		Preload("Modules.Lessons.UserProgress", "user_id = ?", user.ID).
		Preload("Modules.Lessons.Quizzes.Questions.Options").
		Preload("Modules.Lessons.Assignments.Submissions", "user_id = ?", user.ID).
		First(&course, c.Locals("id").(uint)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Course not found.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	var total, completed int64
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			total++
			if len(l.UserProgress) > 0 && l.UserProgress[0].IsCompleted {
				completed++
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content.", courseContent{
		Course:           course,
		Progress:         utils.Percent(completed, total),
		TotalLessons:     total,
		CompletedLessons: completed,
	})
}

func CompleteLesson(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedComplete").(*studentValidator.CompleteLessonRequest)
	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Select("id").First(&lesson, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	progress := models.LessonProgress{
		UserID:      user.ID,
		LessonID:    lesson.ID,
		IsCompleted: *reqData.Completed,
	}
	if progress.IsCompleted {
		now := time.Now()
		progress.CompletedAt = &now
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_completed", "completed_at", "updated_at"}),
	}).Create(&progress).Error
	if err != nil {
		log.Printf("Error saving lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&progress)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated.", progress)
}

func Enroll(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedEnroll").(*studentValidator.EnrollRequest)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND status = ?", reqData.CourseID, models.CoursePublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled.", enrollment)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	enrollment = models.Enrollment{UserID: user.ID, CourseID: course.ID, EnrolledAt: time.Now()}
	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment)
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled.", enrollment)
		}
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

func Unenroll(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	result := database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, c.Locals("courseId").(uint)).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled successfully!", nil)
}

func SubmitQuiz(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedQuizSubmit").(*studentValidator.QuizSubmitRequest)
	db := database.Database.Db

	var quiz models.Quiz
	if err := db.Select("id").First(&quiz, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	attempt := models.QuizAttempt{
		UserID:         user.ID,
		QuizID:         quiz.ID,
		Score:          reqData.Score,
		TotalQuestions: reqData.TotalQuestions,
	}
	if answers := bytes.TrimSpace(reqData.Answers); len(answers) > 0 && !bytes.Equal(answers, []byte("null")) {
		attempt.Answers = datatypes.JSON(answers)
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz submitted successfully!", attempt)
}

func SubmitAssignment(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedAssignmentSubmit").(*studentValidator.AssignmentSubmitRequest)
	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Select("id").First(&assignment, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	now := time.Now()

	var submission models.AssignmentSubmission
	err := db.Where("user_id = ? AND assignment_id = ? AND status = ?", user.ID, assignment.ID, models.SubmissionPending).
		First(&submission).Error
	if err == nil {
		submission.Content = reqData.Content
		submission.SubmittedAt = now
		if err := db.Model(&submission).Select("Content", "SubmittedAt").Updates(&submission).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment resubmitted successfully!", submission)
	}

	submission = models.AssignmentSubmission{
		UserID:       user.ID,
		AssignmentID: assignment.ID,
		Content:      reqData.Content,
		Status:       models.SubmissionPending,
		SubmittedAt:  now,
	}
	if err := db.Create(&submission).Error; err != nil {
		log.Printf("Error saving submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

func CheckEnrollment(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, c.Locals("id").(uint)).
		Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status.", count > 0)
}

func EnrolledCourses(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ?", user.ID).
		Preload("Course").
		Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		item := fiber.Map{
			"id":          e.ID,
			"user_id":     e.UserID,
			"course_id":   e.CourseID,
			"enrolled_at": e.EnrolledAt,
			"course":      nil,
		}
		if e.Course != nil {
			item["course"] = fiber.Map{"id": e.Course.ID, "title": e.Course.Title}
		}
		response = append(response, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses.", response)
}

// enrolledWithProgress loads the caller's enrollments with their courses and lesson progress
func enrolledWithProgress(db *gorm.DB, userID uint) ([]models.Enrollment, map[uint][2]int64, error) {
	var enrollments []models.Enrollment
	err := db.Where("user_id = ?", userID).
		Preload("Course.Instructor").
		Order("enrolled_at asc").
		Find(&enrollments).Error
	if err != nil {
		return nil, nil, err
	}

	progress := make(map[uint][2]int64, len(enrollments))
	for _, e := range enrollments {
		total, completed := database.CourseProgress(db, userID, e.CourseID)
		progress[e.CourseID] = [2]int64{total, completed}
	}
	return enrollments, progress, nil
}

func MyCourses(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	enrollments, progress, err := enrolledWithProgress(database.Database.Db, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		p := progress[e.CourseID]
		var instructor fiber.Map
		if e.Course.Instructor != nil {
			instructor = fiber.Map{"name": e.Course.Instructor.Name}
		}
		response = append(response, fiber.Map{
			"id":                e.Course.ID,
			"title":             e.Course.Title,
			"image":             e.Course.Image,
			"instructor":        instructor,
			"progress":          utils.Percent(p[1], p[0]),
			"total_lessons":     p[0],
			"completed_lessons": p[1],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "My courses.", response)
}

func Dashboard(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	enrollments, progress, err := enrolledWithProgress(database.Database.Db, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	var totalLessons, completedLessons int64
	courses := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		p := progress[e.CourseID]
		totalLessons += p[0]
		completedLessons += p[1]
		courses = append(courses, fiber.Map{
			"id":       e.Course.ID,
			"title":    e.Course.Title,
			"progress": utils.Percent(p[1], p[0]),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard data.", fiber.Map{
		"total_courses":     len(enrollments),
		"total_lessons":     totalLessons,
		"completed_lessons": completedLessons,
		"overall_progress":  utils.Percent(completedLessons, totalLessons),
		"courses":           courses,
	})
}
