package contentController

import (
	"errors"
	"log"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	contentValidator "techstorm/validators/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// authorize checks that the caller may author the course, 0 when allowed
func authorize(c *fiber.Ctx, db *gorm.DB, courseID uint) (int, string) {
	user, _ := middleware.CurrentUser(c)

	var course models.Course
	if err := db.Select("id", "instructor_id").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.StatusNotFound, "Course not found"
		}
		return fiber.StatusInternalServerError, "Failed to fetch course!"
	}
	if user.Role != models.RoleAdmin && course.InstructorID != user.ID {
		return fiber.StatusUnauthorized, "You are not the instructor of this course!"
	}
	return 0, ""
}

func authorizeLesson(c *fiber.Ctx, db *gorm.DB, lessonID uint) (int, string) {
	courseID, err := database.CourseIDOfLesson(db, lessonID)
	if err != nil {
		return fiber.StatusNotFound, "Lesson not found!"
	}
	return authorize(c, db, courseID)
}

func authorizeQuiz(c *fiber.Ctx, db *gorm.DB, quizID uint) (int, string) {
	var quiz models.Quiz
	if err := db.Select("id", "lesson_id").First(&quiz, quizID).Error; err != nil {
		return fiber.StatusNotFound, "Quiz not found!"
	}
	return authorizeLesson(c, db, quiz.LessonID)
}

func nextPosition(db *gorm.DB, model interface{}, column string, parentID uint) int {
	var last struct{ Position *int }
	db.Model(model).Select("MAX(position) AS position").Where(column+" = ?", parentID).Scan(&last)
	if last.Position == nil {
		return 0
	}
	return *last.Position + 1
}

// Modules

func CreateModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedModule").(*contentValidator.CreateModuleRequest)
	db := database.Database.Db

	if status, msg := authorize(c, db, reqData.CourseID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	module := models.Module{
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Position: nextPosition(db, &models.Module{}, "course_id", reqData.CourseID),
	}
	if err := db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

func loadModule(c *fiber.Ctx, db *gorm.DB) (*models.Module, error) {
	var module models.Module
	if err := db.First(&module, c.Locals("id").(uint)).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	if status, msg := authorize(c, db, module.CourseID); status != 0 {
		return nil, middleware.JsonResponse(c, status, false, msg, nil)
	}
	return &module, nil
}

func UpdateModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedModuleUpdate").(*contentValidator.UpdateModuleRequest)
	db := database.Database.Db

	module, err := loadModule(c, db)
	if module == nil {
		return err
	}

	module.Title = reqData.Title
	if err := db.Model(module).Update("title", module.Title).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

func DeleteModule(c *fiber.Ctx) error {
	db := database.Database.Db

	module, err := loadModule(c, db)
	if module == nil {
		return err
	}

	if err := db.Delete(module).Error; err != nil {
		log.Printf("Error deleting module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// Lessons

func CreateLesson(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLesson").(*contentValidator.CreateLessonRequest)
	db := database.Database.Db

	var module models.Module
	if err := db.First(&module, reqData.ModuleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	if status, msg := authorize(c, db, module.CourseID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	lesson := models.Lesson{
		ModuleID: module.ID,
		Title:    reqData.Title,
		IsFree:   false,
		Position: nextPosition(db, &models.Lesson{}, "module_id", module.ID),
	}
	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func loadLesson(c *fiber.Ctx, db *gorm.DB) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := db.First(&lesson, c.Locals("id").(uint)).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if status, msg := authorizeLesson(c, db, lesson.ID); status != 0 {
		return nil, middleware.JsonResponse(c, status, false, msg, nil)
	}
	return &lesson, nil
}

func UpdateLesson(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLessonUpdate").(*contentValidator.UpdateLessonRequest)
	db := database.Database.Db

	lesson, err := loadLesson(c, db)
	if lesson == nil {
		return err
	}

	var columns []string
	if reqData.Title != nil {
		lesson.Title = *reqData.Title
		columns = append(columns, "Title")
	}
	if reqData.Description != nil {
		lesson.Description = *reqData.Description
		columns = append(columns, "Description")
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
		columns = append(columns, "VideoURL")
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
		columns = append(columns, "IsFree")
	}
	if reqData.Duration != nil {
		lesson.Duration = *reqData.Duration
		columns = append(columns, "Duration")
	}

	if len(columns) > 0 {
		if err := db.Model(lesson).Select(columns).Updates(lesson).Error; err != nil {
			log.Printf("Error updating lesson: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	db := database.Database.Db

	lesson, err := loadLesson(c, db)
	if lesson == nil {
		return err
	}

	if err := db.Delete(lesson).Error; err != nil {
		log.Printf("Error deleting lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// Reorder rewrites positions of sibling modules or lessons in the order given
func Reorder(c *fiber.Ctx) error {
	reqData := c.Locals("validatedReorder").(*contentValidator.ReorderRequest)
	db := database.Database.Db

	var parents []uint
	var model interface{}
	if reqData.Type == "module" {
		model = &models.Module{}
		db.Model(&models.Module{}).Where("id IN ?", reqData.IDs).Distinct().Pluck("course_id", &parents)
	} else {
		model = &models.Lesson{}
		db.Model(&models.Lesson{}).Where("id IN ?", reqData.IDs).Distinct().Pluck("module_id", &parents)
	}

	var found int64
	db.Model(model).Where("id IN ?", reqData.IDs).Count(&found)
	if int(found) != len(reqData.IDs) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Some items were not found!", nil)
	}
	if len(parents) != 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Items must share the same parent!", nil)
	}

	courseID := parents[0]
	if reqData.Type == "lesson" {
		var module models.Module
		if err := db.Select("id", "course_id").First(&module, parents[0]).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		courseID = module.CourseID
	}
	if status, msg := authorize(c, db, courseID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for position, id := range reqData.IDs {
			if err := tx.Model(model).Where("id = ?", id).Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error reordering %ss: %v", reqData.Type, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order updated successfully!", reqData.IDs)
}

// Quizzes

func UpsertQuiz(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuiz").(*contentValidator.QuizUpsertRequest)
	db := database.Database.Db

	if status, msg := authorizeLesson(c, db, reqData.LessonID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	var quiz models.Quiz
	if reqData.Data.ID != nil {
		if err := db.Where("id = ? AND lesson_id = ?", *reqData.Data.ID, reqData.LessonID).First(&quiz).Error; err == nil {
			quiz.Title = reqData.Data.Title
			if err := db.Model(&quiz).Update("title", quiz.Title).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully!", quiz)
		}
	}

	quiz = models.Quiz{LessonID: reqData.LessonID, Title: reqData.Data.Title}
	if err := db.Create(&quiz).Error; err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz saved successfully!", quiz)
}

func GenerateQuiz(c *fiber.Ctx) error {
	reqData := c.Locals("validatedGenerateQuiz").(*contentValidator.GenerateQuizRequest)
	db := database.Database.Db

	if status, msg := authorizeLesson(c, db, reqData.LessonID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	var lesson models.Lesson
	if err := db.First(&lesson, reqData.LessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	generated, err := utils.AI().GenerateQuiz(c.UserContext(), lesson.Title, "Intermediate")
	if err != nil {
		utils.ReportError(err, "generating quiz")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "AI Engine failed to generate quiz", nil)
	}

	var quiz models.Quiz
	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("lesson_id = ?", lesson.ID).Order("id asc").First(&quiz).Error
		switch {
		case err == nil:
			if err := tx.Model(&quiz).Update("title", generated.Title).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			quiz = models.Quiz{LessonID: lesson.ID, Title: generated.Title}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}
		default:
			return err
		}

		for _, q := range generated.Questions {
			question := models.Question{QuizID: quiz.ID, Text: q.Text, CorrectAnswer: q.CorrectAnswer}
			for _, opt := range q.Options {
				question.Options = append(question.Options, models.QuestionOption{Text: opt})
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error saving generated quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save generated quiz!", nil)
	}

	db.Preload("Questions.Options").First(&quiz, quiz.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz generated successfully!", quiz)
}

// Questions

func CreateQuestion(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuestion").(*contentValidator.QuestionRequest)
	db := database.Database.Db

	if status, msg := authorizeQuiz(c, db, reqData.QuizID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	question := models.Question{
		QuizID:        reqData.QuizID,
		Text:          reqData.Data.Text,
		CorrectAnswer: reqData.Data.CorrectAnswer,
	}
	for _, opt := range reqData.Data.Options {
		question.Options = append(question.Options, models.QuestionOption{Text: opt})
	}

	if err := db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	db := database.Database.Db

	var question models.Question
	if err := db.First(&question, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}
	if status, msg := authorizeQuiz(c, db, question.QuizID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	if err := db.Delete(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// Assignments

func UpsertAssignment(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAssignment").(*contentValidator.AssignmentUpsertRequest)
	db := database.Database.Db

	if status, msg := authorizeLesson(c, db, reqData.LessonID); status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	var assignment models.Assignment
	if reqData.Data.ID != nil {
		if err := db.Where("id = ? AND lesson_id = ?", *reqData.Data.ID, reqData.LessonID).First(&assignment).Error; err == nil {
			assignment.Title = reqData.Data.Title
			assignment.Description = reqData.Data.Description
			if err := db.Model(&assignment).Select("Title", "Description").Updates(&assignment).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assignment!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment saved successfully!", assignment)
		}
	}

	assignment = models.Assignment{
		LessonID:    reqData.LessonID,
		Title:       reqData.Data.Title,
		Description: reqData.Data.Description,
	}
	if err := db.Create(&assignment).Error; err != nil {
		log.Printf("Error creating assignment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment saved successfully!", assignment)
}
