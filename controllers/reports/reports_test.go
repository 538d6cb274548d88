package reportController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"techstorm/database"
	"techstorm/models"
	"techstorm/testutil"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAdminDashboard(t *testing.T) {
	env := testutil.Setup(t)
	db := database.Database.Db
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	a := testutil.CreateUser(t, models.RoleMentee, "a@example.com")
	b := testutil.CreateUser(t, models.RoleMentee, "b@example.com")

	popular := testutil.Course(t, mentor.ID, models.CoursePublished, 1)
	require.NoError(t, db.Model(&popular).Updates(map[string]interface{}{"title": "Popular", "price": 10.0}).Error)
	testutil.Course(t, mentor.ID, models.CourseReview, 0)
	testutil.Enroll(t, a.ID, popular.ID)
	testutil.Enroll(t, b.ID, popular.ID)

	assignment := models.Assignment{LessonID: popular.Modules[0].Lessons[0].ID, Title: "Homework"}
	require.NoError(t, db.Create(&assignment).Error)
	require.NoError(t, db.Create(&models.AssignmentSubmission{
		UserID: a.ID, AssignmentID: assignment.ID, Content: "done", Status: models.SubmissionPending, SubmittedAt: time.Now(),
	}).Error)

	code, _ := env.Do(t, http.MethodGet, "/reports/admin-dashboard", testutil.Token(t, mentor), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, res := env.Do(t, http.MethodGet, "/reports/admin-dashboard", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code, res.Message)

	var dash struct {
		CoursesCount int64 `json:"courses_count"`
		MentorsCount int64 `json:"mentors_count"`
		MenteesCount int64 `json:"mentees_count"`
		AdminsCount  int64 `json:"admins_count"`
		UserGrowth   []struct {
			Date  string `json:"date"`
			Count int    `json:"count"`
		} `json:"user_growth"`
		EnrollmentTrends []struct {
			Count int `json:"count"`
		} `json:"enrollment_trends"`
		PendingTasks struct {
			Reviews int64 `json:"reviews"`
			Grading int64 `json:"grading"`
			Total   int64 `json:"total"`
		} `json:"pending_tasks"`
		ActivityFeed []struct {
			Type  string `json:"type"`
			Title string `json:"title"`
		} `json:"activity_feed"`
		Revenue   float64 `json:"revenue"`
		TopCourse struct {
			Title       string `json:"title"`
			Enrollments int64  `json:"enrollments"`
		} `json:"top_course"`
		RecentCourses []map[string]interface{} `json:"recent_courses"`
	}
	res.Decode(t, &dash)

	assert.EqualValues(t, 2, dash.CoursesCount)
	assert.EqualValues(t, 1, dash.MentorsCount)
	assert.EqualValues(t, 2, dash.MenteesCount)
	assert.EqualValues(t, 1, dash.AdminsCount)
	assert.Len(t, dash.RecentCourses, 2)

	require.Len(t, dash.UserGrowth, 7)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), dash.UserGrowth[6].Date)
	assert.Equal(t, 4, dash.UserGrowth[6].Count)
	require.Len(t, dash.EnrollmentTrends, 7)
	assert.Equal(t, 2, dash.EnrollmentTrends[6].Count)

	assert.EqualValues(t, 1, dash.PendingTasks.Reviews)
	assert.EqualValues(t, 1, dash.PendingTasks.Grading)
	assert.EqualValues(t, 2, dash.PendingTasks.Total)

	assert.InDelta(t, 20.0, dash.Revenue, 0.001)
	assert.Equal(t, "Popular", dash.TopCourse.Title)
	assert.EqualValues(t, 2, dash.TopCourse.Enrollments)

	assert.Len(t, dash.ActivityFeed, 7)
	types := map[string]int{}
	for _, item := range dash.ActivityFeed {
		types[item.Type]++
	}
	assert.Equal(t, map[string]int{"enrollment": 2, "submission": 1, "registration": 4}, types)
}

func TestAdminDashboardEmpty(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")

	code, res := env.Do(t, http.MethodGet, "/reports/admin-dashboard", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		TopCourse struct {
			Title string `json:"title"`
		} `json:"top_course"`
		Revenue float64 `json:"revenue"`
	}
	res.Decode(t, &dash)
	assert.Equal(t, "No Courses Yet", dash.TopCourse.Title)
	assert.Zero(t, dash.Revenue)
}

func seedMentorActivity(t *testing.T) (mentor models.User) {
	t.Helper()
	db := database.Database.Db
	mentor = testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	a := testutil.CreateUser(t, models.RoleMentee, "a@example.com")
	b := testutil.CreateUser(t, models.RoleMentee, "b@example.com")

	course := testutil.Course(t, mentor.ID, models.CoursePublished, 2)
	second := testutil.Course(t, mentor.ID, models.CoursePublished, 0)
	testutil.Enroll(t, a.ID, course.ID)
	testutil.Enroll(t, b.ID, course.ID)
	testutil.Enroll(t, a.ID, second.ID)

	lessons := course.Modules[0].Lessons
	quiz := models.Quiz{LessonID: lessons[0].ID, Title: "Check"}
	require.NoError(t, db.Create(&quiz).Error)
	require.NoError(t, db.Create(&[]models.QuizAttempt{
		{UserID: a.ID, QuizID: quiz.ID, Score: 3, TotalQuestions: 4},
		{UserID: b.ID, QuizID: quiz.ID, Score: 1, TotalQuestions: 4},
	}).Error)
	require.NoError(t, db.Create(&[]models.LessonProgress{
		{UserID: a.ID, LessonID: lessons[0].ID, IsCompleted: true},
		{UserID: a.ID, LessonID: lessons[1].ID, IsCompleted: true},
		{UserID: b.ID, LessonID: lessons[0].ID, IsCompleted: false},
	}).Error)

	// someone else's course stays out of the numbers
	other := testutil.CreateUser(t, models.RoleMentor, "other@example.com")
	foreign := testutil.Course(t, other.ID, models.CoursePublished, 0)
	testutil.Enroll(t, b.ID, foreign.ID)
	return mentor
}

func TestAdminDashboardRevenueIsRounded(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CoursePublished, 0)
	require.NoError(t, database.Database.Db.Model(&course).Update("price", 0.1).Error)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		testutil.Enroll(t, testutil.CreateUser(t, models.RoleMentee, email).ID, course.ID)
	}

	code, res := env.Do(t, http.MethodGet, "/reports/admin-dashboard", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code, res.Message)
	var dash struct {
		Revenue float64 `json:"revenue"`
	}
	res.Decode(t, &dash)
	// 0.1 * 3 is 0.30000000000000004 in float64
	assert.Equal(t, 0.3, dash.Revenue)
}

func TestMentorDashboard(t *testing.T) {
	env := testutil.Setup(t)
	mentor := seedMentorActivity(t)

	testutil.FakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reports/generate-mentor-insights", r.URL.Path)
		var stats utils.MentorStats
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&stats))
		assert.EqualValues(t, 2, stats.StudentCount)
		assert.Equal(t, 50.0, stats.AvgQuizScore)
		assert.Equal(t, 67.0, stats.CompletionRate)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"summary": "Going well", "insights": ["a"], "recommendation": "Keep going"}`)
	})

	code, res := env.Do(t, http.MethodGet, "/reports/mentor-dashboard", testutil.Token(t, mentor), nil)
	require.Equal(t, http.StatusOK, code, res.Message)

	var dash struct {
		CoursesCount      int64            `json:"courses_count"`
		StudentCount      int64            `json:"student_count"`
		RecentEnrollments []map[string]any `json:"recent_enrollments"`
		AvgScore          float64          `json:"avg_score"`
		CompletionRate    float64          `json:"completion_rate"`
		AIInsights        utils.Insights   `json:"ai_insights"`
	}
	res.Decode(t, &dash)
	assert.EqualValues(t, 2, dash.CoursesCount)
	assert.EqualValues(t, 2, dash.StudentCount)
	assert.Len(t, dash.RecentEnrollments, 3)
	assert.Equal(t, 50.0, dash.AvgScore)
	assert.Equal(t, 67.0, dash.CompletionRate)
	assert.Equal(t, "Going well", dash.AIInsights.Summary)
}

func TestMentorDashboardInsightsFallback(t *testing.T) {
	env := testutil.Setup(t)
	mentor := seedMentorActivity(t)

	code, res := env.Do(t, http.MethodGet, "/reports/mentor-dashboard", testutil.Token(t, mentor), nil)
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		AIInsights utils.Insights `json:"ai_insights"`
	}
	res.Decode(t, &dash)
	assert.Equal(t, utils.MentorInsightsFallback, dash.AIInsights)

	mentee := testutil.CreateUser(t, models.RoleMentee, "late@example.com")
	code, _ = env.Do(t, http.MethodGet, "/reports/mentor-dashboard", testutil.Token(t, mentee), nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestPlatformReport(t *testing.T) {
	env := testutil.Setup(t)
	db := database.Database.Db
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	mentee := testutil.CreateUser(t, models.RoleMentee, "mentee@example.com")

	course := testutil.Course(t, mentor.ID, models.CoursePublished, 4)
	uncategorized := testutil.Course(t, mentor.ID, models.CourseDraft, 0)
	require.NoError(t, db.Model(&uncategorized).Update("category", "").Error)
	testutil.Enroll(t, mentee.ID, course.ID)
	require.NoError(t, db.Create(&models.LessonProgress{UserID: mentee.ID, LessonID: course.Modules[0].Lessons[0].ID, IsCompleted: true}).Error)

	code, res := env.Do(t, http.MethodGet, "/reports/platform", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code, res.Message)

	var report struct {
		Stats struct {
			TotalUsers       int64   `json:"total_users"`
			TotalCourses     int64   `json:"total_courses"`
			TotalEnrollments int64   `json:"total_enrollments"`
			CompletionRate   float64 `json:"completion_rate"`
			Revenue          float64 `json:"revenue"`
		} `json:"stats"`
		TopCategories []struct {
			Name  string `json:"name"`
			Count int64  `json:"count"`
		} `json:"top_categories"`
		AIInsights        utils.Insights   `json:"ai_insights"`
		RecentCompletions []map[string]any `json:"recent_completions"`
	}
	res.Decode(t, &report)
	assert.EqualValues(t, 3, report.Stats.TotalUsers)
	assert.EqualValues(t, 2, report.Stats.TotalCourses)
	assert.EqualValues(t, 1, report.Stats.TotalEnrollments)
	assert.Equal(t, 25.0, report.Stats.CompletionRate)
	assert.Zero(t, report.Stats.Revenue)
	names := []string{}
	for _, c := range report.TopCategories {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Programming", "Uncategorized"}, names)
	assert.Equal(t, utils.PlatformInsightsFallback, report.AIInsights)
	assert.Len(t, report.RecentCompletions, 1)
}

func TestExportPlatformReport(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	mentee := testutil.CreateUser(t, models.RoleMentee, "mentee@example.com")
	course := testutil.Course(t, mentor.ID, models.CoursePublished, 1)
	testutil.Enroll(t, mentee.ID, course.ID)

	req := httptest.NewRequest(http.MethodGet, "/reports/platform/export", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testutil.Token(t, admin))
	resp, err := env.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="platform-report-`)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	book, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Summary", "Categories", "Courses"}, book.GetSheetList())
	rows, err := book.GetRows("Courses")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Go Basics", rows[1][1])
	assert.Equal(t, mentor.Name, rows[1][5])
	assert.Equal(t, "1", rows[1][6])
}
