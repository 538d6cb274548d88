package publicController_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"techstorm/database"
	"techstorm/models"
	"techstorm/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	testutil.CreateUser(t, models.RoleMentee, "a@example.com")
	testutil.CreateUser(t, models.RoleMentee, "b@example.com")
	for i := 0; i < 4; i++ {
		testutil.Course(t, mentor.ID, models.CoursePublished, 1)
	}
	testutil.Course(t, mentor.ID, models.CourseDraft, 1)

	db := database.Database.Db
	require.NoError(t, db.Create(&[]models.Event{
		{Title: "Past", Date: time.Now().Add(-48 * time.Hour)},
		{Title: "Next", Date: time.Now().Add(48 * time.Hour)},
	}).Error)

	code, res := env.Do(t, http.MethodGet, "/public/home", "", nil)
	require.Equal(t, http.StatusOK, code)

	var home struct {
		Courses []struct {
			ModuleCount int64 `json:"module_count"`
			Instructor  struct {
				Name string `json:"name"`
			} `json:"instructor"`
		} `json:"courses"`
		Events []models.Event `json:"events"`
		Stats  struct {
			TotalMentees int64 `json:"total_mentees"`
			TotalCourses int64 `json:"total_courses"`
			TotalMentors int64 `json:"total_mentors"`
		} `json:"stats"`
	}
	res.Decode(t, &home)
	require.Len(t, home.Courses, 3)
	assert.EqualValues(t, 1, home.Courses[0].ModuleCount)
	assert.Equal(t, mentor.Name, home.Courses[0].Instructor.Name)
	require.Len(t, home.Events, 1)
	assert.Equal(t, "Next", home.Events[0].Title)
	assert.EqualValues(t, 2, home.Stats.TotalMentees)
	assert.EqualValues(t, 4, home.Stats.TotalCourses)
	assert.EqualValues(t, 1, home.Stats.TotalMentors)
}

func TestPublishedCoursesFilter(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	db := database.Database.Db

	courses := []models.Course{
		{Title: "Go Concurrency", Category: "Programming", Status: models.CoursePublished, InstructorID: mentor.ID},
		{Title: "Watercolor", Description: "Painting with GO-to techniques", Category: "Art", Status: models.CoursePublished, InstructorID: mentor.ID},
		{Title: "Go Draft", Category: "Programming", Status: models.CourseDraft, InstructorID: mentor.ID},
	}
	require.NoError(t, db.Create(&courses).Error)

	titles := func(path string) []string {
		code, res := env.Do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, code)
		var cards []struct {
			Title string `json:"title"`
		}
		res.Decode(t, &cards)
		out := make([]string, 0, len(cards))
		for _, c := range cards {
			out = append(out, c.Title)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Go Concurrency", "Watercolor"}, titles("/public/courses"))
	assert.ElementsMatch(t, []string{"Go Concurrency"}, titles("/public/courses?category=Programming"))
	assert.ElementsMatch(t, []string{"Go Concurrency", "Watercolor"}, titles("/public/courses?search=go"))
	assert.ElementsMatch(t, []string{"Watercolor"}, titles("/public/courses?search=paint"))
}

func TestCourseDetail(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	student := testutil.CreateUser(t, models.RoleMentee, "student@example.com")
	course := testutil.Course(t, mentor.ID, models.CoursePublished, 2)
	draft := testutil.Course(t, mentor.ID, models.CourseDraft, 1)
	testutil.Enroll(t, student.ID, course.ID)

	code, res := env.Do(t, http.MethodGet, fmt.Sprintf("/public/courses/%d", course.ID), "", nil)
	require.Equal(t, http.StatusOK, code)

	var detail struct {
		EnrollmentCount int64 `json:"enrollment_count"`
		Enrolled        bool  `json:"enrolled"`
		Modules         []struct {
			Lessons []map[string]interface{} `json:"lessons"`
		} `json:"modules"`
	}
	res.Decode(t, &detail)
	assert.EqualValues(t, 1, detail.EnrollmentCount)
	require.Len(t, detail.Modules, 1)
	require.Len(t, detail.Modules[0].Lessons, 2)
	assert.NotContains(t, detail.Modules[0].Lessons[0], "video_url")
	assert.False(t, detail.Enrolled)

	path := fmt.Sprintf("/public/courses/%d", course.ID)
	code, res = env.Do(t, http.MethodGet, path, testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &detail)
	assert.True(t, detail.Enrolled)

	code, res = env.Do(t, http.MethodGet, path, testutil.Token(t, mentor), nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &detail)
	assert.False(t, detail.Enrolled)

	// a broken token falls back to the anonymous view
	code, res = env.Do(t, http.MethodGet, path, "not-a-jwt", nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &detail)
	assert.False(t, detail.Enrolled)

	code, _ = env.Do(t, http.MethodGet, fmt.Sprintf("/public/courses/%d", draft.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMaintenanceAndSettings(t *testing.T) {
	env := testutil.Setup(t)

	code, res := env.Do(t, http.MethodGet, "/public/maintenance", "", nil)
	require.Equal(t, http.StatusOK, code)
	var status struct {
		MaintenanceMode bool `json:"maintenance_mode"`
	}
	res.Decode(t, &status)
	assert.False(t, status.MaintenanceMode)

	settings := models.DefaultSettings()
	settings.MaintenanceMode = true
	settings.PlatformName = "Storm Academy"
	require.NoError(t, database.Database.Db.Create(&settings).Error)

	code, res = env.Do(t, http.MethodGet, "/public/maintenance", "", nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &status)
	assert.True(t, status.MaintenanceMode)

	code, res = env.Do(t, http.MethodGet, "/public/settings", "", nil)
	require.Equal(t, http.StatusOK, code)
	var public map[string]interface{}
	res.Decode(t, &public)
	assert.Equal(t, "Storm Academy", public["platform_name"])
	assert.NotContains(t, public, "maintenance_mode")
}
