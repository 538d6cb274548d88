package courseController

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	courseValidator "techstorm/validators/courses"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type personBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func briefOf(u *models.User) *personBrief {
	if u == nil {
		return nil
	}
	return &personBrief{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

type courseSummary struct {
	models.Course
	Instructor      *personBrief `json:"instructor"`
	ModuleCount     int64        `json:"module_count"`
	EnrollmentCount int64        `json:"enrollment_count"`
}

// ownedCourse loads a course the caller may author. Admins may author any course.
func ownedCourse(c *fiber.Ctx, db *gorm.DB, courseID uint) (*models.Course, error) {
	user, _ := middleware.CurrentUser(c)

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if user.Role != models.RoleAdmin && course.InstructorID != user.ID {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You are not the instructor of this course!", nil)
	}
	return &course, nil
}

// ownerScope limits a course query to the caller unless the caller is an admin
func ownerScope(user models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user.Role == models.RoleAdmin {
			return db
		}
		return db.Where("instructor_id = ?", user.ID)
	}
}

func ListCourses(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var courses []models.Course
	if err := db.Scopes(ownerScope(user)).
		Preload("Instructor").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	ids := make([]uint, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}
	modules := database.CountGrouped(db, "modules", "course_id", ids)
	enrollments := database.CountGrouped(db, "enrollments", "course_id", ids)

	response := make([]courseSummary, 0, len(courses))
	for _, course := range courses {
		response = append(response, courseSummary{
			Course:          course,
			Instructor:      briefOf(course.Instructor),
			ModuleCount:     modules[course.ID],
			EnrollmentCount: enrollments[course.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses list.", response)
}

func GetCourseForEdit(c *fiber.Ctx) error {
	courseID := c.Locals("id").(uint)
	db := database.Database.Db

	course, err := ownedCourse(c, db, courseID)
	if course == nil {
		return err
	}

	if err := db.Scopes(database.CourseTree).First(course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details.", course)
}

func CreateCourse(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		InstructorID: user.ID,
		Status:       models.CourseDraft,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// buildCourseTree maps a generated outline onto new rows, keeping outline order as position
func buildCourseTree(outline *utils.CourseOutline, instructorID uint) models.Course {
	course := models.Course{
		Title:        outline.Title,
		Description:  outline.Description,
		InstructorID: instructorID,
		Status:       models.CourseDraft,
	}

	for mi, mod := range outline.Modules {
		module := models.Module{Title: mod.Title, Position: mi}
		for li, l := range mod.Lessons {
			lesson := models.Lesson{
				Title:       l.Title,
				Description: l.Description,
				Position:    li,
			}
			if l.VideoURL != nil {
				lesson.VideoURL = *l.VideoURL
			}
			if l.Quiz != nil {
				quiz := models.Quiz{Title: l.Quiz.Title}
				for _, q := range l.Quiz.Questions {
					question := models.Question{Text: q.Text, CorrectAnswer: q.CorrectAnswer}
					for _, opt := range q.Options {
						question.Options = append(question.Options, models.QuestionOption{Text: opt})
					}
					quiz.Questions = append(quiz.Questions, question)
				}
				lesson.Quizzes = []models.Quiz{quiz}
			}
			if l.Assignment != nil {
				lesson.Assignments = []models.Assignment{{
					Title:       l.Assignment.Title,
					Description: l.Assignment.Description,
				}}
			}
			module.Lessons = append(module.Lessons, lesson)
		}
		course.Modules = append(course.Modules, module)
	}
	return course
}

func GenerateCourse(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData, ok := c.Locals("validatedGenerateCourse").(*courseValidator.GenerateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	outline, err := utils.AI().GenerateCourseOutline(c.UserContext(), reqData.Topic, reqData.Level)
	if err != nil {
		utils.ReportError(err, "generating course outline")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "AI Engine failed to generate outline", nil)
	}

	course := buildCourseTree(outline, user.ID)
	if raw, err := sonic.Marshal(outline); err == nil {
		course.AIOutline = datatypes.JSON(raw)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&course).Error
	})
	if err != nil {
		log.Printf("Error saving generated course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save generated course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course generated successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	courseID := c.Locals("id").(uint)
	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Scopes(ownerScope(user)).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	var columns []string
	if reqData.Title != nil {
		course.Title = *reqData.Title
		columns = append(columns, "Title")
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
		columns = append(columns, "Description")
	}
	if reqData.Image != nil {
		course.Image = *reqData.Image
		columns = append(columns, "Image")
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
		columns = append(columns, "Category")
	}
	if len(reqData.Price) > 0 {
		var raw interface{}
		if err := json.Unmarshal(reqData.Price, &raw); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"price": "Price must be a number!"})
		}
		course.Price = utils.ParsePrice(raw)
		columns = append(columns, "Price")
	}

	if len(columns) > 0 {
		if err := db.Model(&course).Select(columns).Updates(&course).Error; err != nil {
			log.Printf("Error updating course: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func ToggleStatus(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	courseID := c.Locals("id").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Scopes(ownerScope(user)).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	newStatus := models.CoursePublished
	if course.Status == models.CoursePublished {
		newStatus = models.CourseDraft
	}

	if err := db.Model(&course).Update("status", newStatus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated to "+newStatus+".", course)
}

func SubmitForReview(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	courseID := c.Locals("id").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Scopes(ownerScope(user)).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.Status != models.CourseDraft {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only draft courses can be submitted for review!", nil)
	}

	if err := db.Model(&course).Update("status", models.CourseReview).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course submitted for review.", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	courseID := c.Locals("id").(uint)

	result := database.Database.Db.Scopes(ownerScope(user)).Delete(&models.Course{}, courseID)
	if result.Error != nil {
		log.Printf("Error deleting course: %v", result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func ListSubmissions(c *fiber.Ctx) error {
	courseID := c.Locals("id").(uint)
	db := database.Database.Db

	if course, err := ownedCourse(c, db, courseID); course == nil {
		return err
	}

	var submissions []models.AssignmentSubmission
	if err := db.Where("assignment_id IN (?)", database.AssignmentIDsOfCourse(db, courseID)).
		Preload("User").
		Preload("Assignment").
		Order("submitted_at desc").
		Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	response := make([]fiber.Map, 0, len(submissions))
	for _, s := range submissions {
		item := fiber.Map{
			"id":            s.ID,
			"user_id":       s.UserID,
			"assignment_id": s.AssignmentID,
			"content":       s.Content,
			"status":        s.Status,
			"grade":         s.Grade,
			"feedback":      s.Feedback,
			"submitted_at":  s.SubmittedAt,
			"user":          nil,
			"assignment":    nil,
		}
		if s.User != nil {
			item["user"] = fiber.Map{"name": s.User.Name, "email": s.User.Email}
		}
		if s.Assignment != nil {
			item["assignment"] = fiber.Map{"title": s.Assignment.Title}
		}
		response = append(response, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions list.", response)
}

func GradeSubmission(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	submissionID := c.Locals("id").(uint)
	reqData, ok := c.Locals("validatedGrade").(*courseValidator.GradeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var submission models.AssignmentSubmission
	if err := db.Preload("User").Preload("Assignment").First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if user.Role != models.RoleAdmin {
		var owned int64
		db.Model(&models.Assignment{}).
			Joins("JOIN lessons ON lessons.id = assignments.lesson_id").
			Joins("JOIN modules ON modules.id = lessons.module_id").
			Joins("JOIN courses ON courses.id = modules.course_id").
			Where("assignments.id = ? AND courses.instructor_id = ?", submission.AssignmentID, user.ID).
			Count(&owned)
		if owned == 0 {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "You are not the instructor of this course!", nil)
		}
	}

	submission.Grade = reqData.Grade
	submission.Feedback = reqData.Feedback
	submission.Status = models.SubmissionGraded
	if err := db.Model(&submission).Select("Grade", "Feedback", "Status").Updates(&submission).Error; err != nil {
		log.Printf("Error grading submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	if submission.User != nil && submission.Assignment != nil {
		utils.SendSubmissionGradedEmail(submission.User.Email, submission.User.Name, submission.Assignment.Title, submission.Grade, submission.Feedback)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}

type enrolledCourse struct {
	ID           uint                          `json:"id"`
	Title        string                        `json:"title"`
	EnrolledAt   time.Time                     `json:"enrolled_at"`
	Progress     int                           `json:"progress"`
	QuizAttempts []models.QuizAttempt          `json:"quiz_attempts"`
	Submissions  []models.AssignmentSubmission `json:"submissions"`
}

type mentorStudent struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Image           string           `json:"image"`
	CreatedAt       time.Time        `json:"created_at"`
	EnrolledCourses []enrolledCourse `json:"enrolled_courses"`
}

func MentorStudents(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.status = ?", user.ID, models.CoursePublished).
		Preload("User").
		Preload("Course").
		Order("enrollments.enrolled_at asc").
		Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching mentor students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	students := make([]*mentorStudent, 0)
	byID := make(map[uint]*mentorStudent)

	for _, e := range enrollments {
		if e.User == nil || e.Course == nil {
			continue
		}
		student, seen := byID[e.UserID]
		if !seen {
			student = &mentorStudent{
				ID:              e.User.ID,
				Name:            e.User.Name,
				Email:           e.User.Email,
				Image:           e.User.Image,
				CreatedAt:       e.User.CreatedAt,
				EnrolledCourses: []enrolledCourse{},
			}
			byID[e.UserID] = student
			students = append(students, student)
		}

		total, completed := database.CourseProgress(db, e.UserID, e.CourseID)

		attempts := make([]models.QuizAttempt, 0)
		db.Where("user_id = ? AND quiz_id IN (?)", e.UserID, database.QuizIDsOfCourse(db, e.CourseID)).
			Preload("Quiz").
			Find(&attempts)

		submissions := make([]models.AssignmentSubmission, 0)
		db.Where("user_id = ? AND assignment_id IN (?)", e.UserID, database.AssignmentIDsOfCourse(db, e.CourseID)).
			Preload("Assignment").
			Find(&submissions)

		student.EnrolledCourses = append(student.EnrolledCourses, enrolledCourse{
			ID:           e.Course.ID,
			Title:        e.Course.Title,
			EnrolledAt:   e.EnrolledAt,
			Progress:     utils.Percent(completed, total),
			QuizAttempts: attempts,
			Submissions:  submissions,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students list.", students)
}
