package studentController

import (
	"math"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"

	"github.com/gofiber/fiber/v2"
)

type achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Color       string
	metric      func(learnerStats) int64
	target      int64
}

type learnerStats struct {
	completedLessons int64
	attemptedQuizzes int64
	completedCourses int64
	totalEnrollments int64
}

var achievements = []achievement{
	{ID: "first-step", Title: "First Step", Description: "Complete your first lesson.", Icon: "fa-shoe-prints", Color: "bg-blue-500",
		metric: func(s learnerStats) int64 { return s.completedLessons }, target: 1},
	{ID: "quiz-taker", Title: "Quiz Taker", Description: "Complete 3 quizzes.", Icon: "fa-pencil-alt", Color: "bg-purple-500",
		metric: func(s learnerStats) int64 { return s.attemptedQuizzes }, target: 3},
	{ID: "course-champ", Title: "Course Champion", Description: "Complete your first full course.", Icon: "fa-trophy", Color: "bg-amber-500",
		metric: func(s learnerStats) int64 { return s.completedCourses }, target: 1},
	{ID: "dedicated", Title: "Dedicated Learner", Description: "Enroll in 3 courses.", Icon: "fa-book-open", Color: "bg-teal-500",
		metric: func(s learnerStats) int64 { return s.totalEnrollments }, target: 3},
	{ID: "scholar", Title: "Tech Scholar", Description: "Complete 10 lessons.", Icon: "fa-graduation-cap", Color: "bg-indigo-600",
		metric: func(s learnerStats) int64 { return s.completedLessons }, target: 10},
}

func Achievements(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var courseIDs []uint
	if err := db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Pluck("course_id", &courseIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}

	stats := learnerStats{totalEnrollments: int64(len(courseIDs))}
	for _, courseID := range courseIDs {
		total, completed := database.CourseProgress(db, user.ID, courseID)
		stats.completedLessons += completed
		if total > 0 && total == completed {
			stats.completedCourses++
		}
	}
	if len(courseIDs) > 0 {
		db.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND quiz_id IN (?)", user.ID, database.QuizIDsOfCourse(db, courseIDs)).
			Distinct("quiz_id").
			Count(&stats.attemptedQuizzes)
	}

	now := time.Now()
	response := make([]fiber.Map, 0, len(achievements))
	for _, a := range achievements {
		value := a.metric(stats)
		var unlockedAt *time.Time
		if value >= a.target {
			unlockedAt = &now
		}
		response = append(response, fiber.Map{
			"id":          a.ID,
			"title":       a.Title,
			"description": a.Description,
			"icon":        a.Icon,
			"color":       a.Color,
			"unlocked_at": unlockedAt,
			"progress":    math.Min(float64(value)/float64(a.target)*100, 100),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements.", response)
}

type quizGrade struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	LessonID       uint       `json:"lesson_id"`
	LessonTitle    string     `json:"lesson_title"`
	Score          *int       `json:"score"`
	TotalQuestions *int       `json:"total_questions"`
	Percentage     *int       `json:"percentage"`
	Status         string     `json:"status"`
	Date           *time.Time `json:"date"`
}

type assignmentGrade struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	LessonID    uint       `json:"lesson_id"`
	LessonTitle string     `json:"lesson_title"`
	Status      string     `json:"status"`
	Grade       *string    `json:"grade"`
	Feedback    *string    `json:"feedback"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Grades(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var enrollments []models.Enrollment
	err := db.Where("user_id = ?", user.ID).
		Preload("Course.Modules", byPosition).
		Preload("Course.Modules.Lessons", byPosition).
		Preload("Course.Modules.Lessons.Quizzes").
		Preload("Course.Modules.Lessons.Assignments").
		Order("enrolled_at asc").
		Find(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grades!", nil)
	}

	var attempts []models.QuizAttempt
	db.Where("user_id = ?", user.ID).Order("score desc, created_at asc").Find(&attempts)
	best := make(map[uint]models.QuizAttempt, len(attempts))
	for _, a := range attempts {
		if _, ok := best[a.QuizID]; !ok {
			best[a.QuizID] = a
		}
	}

	var submissions []models.AssignmentSubmission
	db.Where("user_id = ?", user.ID).Order("created_at asc").Find(&submissions)
	first := make(map[uint]models.AssignmentSubmission, len(submissions))
	for _, s := range submissions {
		if _, ok := first[s.AssignmentID]; !ok {
			first[s.AssignmentID] = s
		}
	}

	response := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		quizzes := []quizGrade{}
		assignments := []assignmentGrade{}
		var percentSum, completedQuizzes, submitted int

		for _, m := range e.Course.Modules {
			for _, l := range m.Lessons {
				for _, q := range l.Quizzes {
					g := quizGrade{ID: q.ID, Title: q.Title, LessonID: l.ID, LessonTitle: l.Title, Status: "Not Started"}
					if a, ok := best[q.ID]; ok {
						score, total := a.Score, a.TotalQuestions
						pct := int(math.Round(a.Percentage()))
						date := a.CreatedAt
						g.Score, g.TotalQuestions, g.Percentage, g.Date = &score, &total, &pct, &date
						g.Status = "Completed"
						percentSum += pct
						completedQuizzes++
					}
					quizzes = append(quizzes, g)
				}
				for _, a := range l.Assignments {
					g := assignmentGrade{ID: a.ID, Title: a.Title, LessonID: l.ID, LessonTitle: l.Title, Status: "Not Submitted"}
					if s, ok := first[a.ID]; ok {
						at := s.SubmittedAt
						g.Status, g.Grade, g.Feedback, g.SubmittedAt = s.Status, nonEmpty(s.Grade), nonEmpty(s.Feedback), &at
						submitted++
					}
					assignments = append(assignments, g)
				}
			}
		}

		avg := 0
		if completedQuizzes > 0 {
			avg = int(math.Round(float64(percentSum) / float64(completedQuizzes)))
		}

		response = append(response, fiber.Map{
			"course_id":    e.Course.ID,
			"course_title": e.Course.Title,
			"course_image": e.Course.Image,
			"stats": fiber.Map{
				"avg_quiz_score":        avg,
				"quizzes_completed":     completedQuizzes,
				"total_quizzes":         len(quizzes),
				"assignments_submitted": submitted,
				"total_assignments":     len(assignments),
			},
			"quizzes":     quizzes,
			"assignments": assignments,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grades.", response)
}
