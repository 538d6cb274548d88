package reportController

import (
	"sort"
	"strings"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

const (
	trendDays    = 7
	recentLimit  = 5
	activityKeep = 8
)

type dayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type activityUser struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type activity struct {
	Type  string       `json:"type"`
	User  activityUser `json:"user"`
	Title string       `json:"title"`
	Date  time.Time    `json:"date"`
}

// dayBuckets counts timestamps per UTC day over the last trendDays days, oldest first
func dayBuckets(at time.Time, stamps []time.Time) []dayCount {
	today := now.With(at.UTC()).BeginningOfDay()

	buckets := make([]dayCount, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := today.AddDate(0, 0, i-(trendDays-1)).Format("2006-01-02")
		buckets[i] = dayCount{Date: day}
		index[day] = i
	}

	for _, ts := range stamps {
		if i, ok := index[ts.UTC().Format("2006-01-02")]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

func trendStart(at time.Time) time.Time {
	return now.With(at.UTC()).BeginningOfDay().AddDate(0, 0, -(trendDays - 1))
}

func countRole(db *gorm.DB, role string) int64 {
	var n int64
	db.Model(&models.User{}).Where("role = ?", role).Count(&n)
	return n
}

func activityFeed(db *gorm.DB) []activity {
	feed := make([]activity, 0, recentLimit*3)

	var enrollments []models.Enrollment
	db.Preload("User").Preload("Course").Order("enrolled_at desc").Limit(recentLimit).Find(&enrollments)
	for _, e := range enrollments {
		item := activity{Type: "enrollment", Date: e.EnrolledAt}
		if e.User != nil {
			item.User = activityUser{Name: e.User.Name, Image: e.User.Image}
		}
		if e.Course != nil {
			item.Title = "Enrolled in " + e.Course.Title
		}
		feed = append(feed, item)
	}

	var submissions []models.AssignmentSubmission
	db.Preload("User").Preload("Assignment").Order("submitted_at desc").Limit(recentLimit).Find(&submissions)
	for _, s := range submissions {
		item := activity{Type: "submission", Date: s.SubmittedAt}
		if s.User != nil {
			item.User = activityUser{Name: s.User.Name, Image: s.User.Image}
		}
		if s.Assignment != nil {
			item.Title = "Submitted " + s.Assignment.Title
		}
		feed = append(feed, item)
	}

	var users []models.User
	db.Select("name", "image", "role", "created_at").Order("created_at desc").Limit(recentLimit).Find(&users)
	for _, u := range users {
		feed = append(feed, activity{
			Type:  "registration",
			User:  activityUser{Name: u.Name, Image: u.Image},
			Title: "New " + strings.ToLower(u.Role) + " registered",
			Date:  u.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Date.After(feed[j].Date) })
	if len(feed) > activityKeep {
		feed = feed[:activityKeep]
	}
	return feed
}

func AdminDashboard(c *fiber.Ctx) error {
	db := database.Database.Db
	at := time.Now()

	var coursesCount, pendingReviews, pendingGrading int64
	db.Model(&models.Course{}).Count(&coursesCount)
	db.Model(&models.Course{}).Where("status = ?", models.CourseReview).Count(&pendingReviews)
	db.Model(&models.AssignmentSubmission{}).Where("status = ?", models.SubmissionPending).Count(&pendingGrading)

	mentors := countRole(db, models.RoleMentor)
	mentees := countRole(db, models.RoleMentee)
	admins := countRole(db, models.RoleAdmin)

	var recent []models.Course
	if err := db.Preload("Instructor").Order("created_at desc").Limit(recentLimit).Find(&recent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build dashboard!", nil)
	}
	recentCourses := make([]fiber.Map, 0, len(recent))
	for _, course := range recent {
		var instructor fiber.Map
		if course.Instructor != nil {
			instructor = fiber.Map{"name": course.Instructor.Name}
		}
		recentCourses = append(recentCourses, fiber.Map{
			"id":         course.ID,
			"title":      course.Title,
			"status":     course.Status,
			"category":   course.Category,
			"price":      course.Price,
			"created_at": course.CreatedAt,
			"instructor": instructor,
		})
	}

	since := trendStart(at)
	var userStamps, enrollStamps []time.Time
	db.Model(&models.User{}).Where("created_at >= ?", since).Pluck("created_at", &userStamps)
	db.Model(&models.Enrollment{}).Where("enrolled_at >= ?", since).Pluck("enrolled_at", &enrollStamps)

	var courses []models.Course
	db.Select("id", "title", "price").Order("id asc").Find(&courses)
	ids := make([]uint, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.ID)
	}
	enrolled := database.CountGrouped(db, "enrollments", "course_id", ids)

	var revenue float64
	top := fiber.Map{"title": "No Courses Yet", "enrollments": int64(0)}
	var topCount int64
	for _, course := range courses {
		n := enrolled[course.ID]
		if course.Price != nil {
			revenue += *course.Price * float64(n)
		}
		if n > topCount {
			topCount = n
			top = fiber.Map{"title": course.Title, "enrollments": n}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin dashboard.", fiber.Map{
		"courses_count":     coursesCount,
		"mentors_count":     mentors,
		"mentees_count":     mentees,
		"admins_count":      admins,
		"recent_courses":    recentCourses,
		"user_growth":       dayBuckets(at, userStamps),
		"enrollment_trends": dayBuckets(at, enrollStamps),
		"role_distribution": []fiber.Map{
			{"name": "Admins", "value": admins},
			{"name": "Mentors", "value": mentors},
			{"name": "Mentees", "value": mentees},
		},
		"pending_tasks": fiber.Map{
			"reviews": pendingReviews,
			"grading": pendingGrading,
			"total":   pendingReviews + pendingGrading,
		},
		"activity_feed": activityFeed(db),
		"revenue":       utils.Round2(revenue),
		"top_course":    top,
	})
}
