package adminController_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"techstorm/database"
	"techstorm/models"
	"techstorm/testutil"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnly(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")

	code, res := env.Do(t, http.MethodGet, "/admin/users", testutil.Token(t, mentor), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied! Admin only.", res.Message)

	code, _ = env.Do(t, http.MethodGet, "/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestListUsersWithCounts(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	mentee := testutil.CreateUser(t, models.RoleMentee, "mentee@example.com")
	course := testutil.Course(t, mentor.ID, models.CoursePublished, 0)
	testutil.Course(t, mentor.ID, models.CourseDraft, 0)
	testutil.Enroll(t, mentee.ID, course.ID)
	token := testutil.Token(t, admin)

	code, res := env.Do(t, http.MethodGet, "/admin/users", token, nil)
	require.Equal(t, http.StatusOK, code)
	var users []struct {
		Email           string `json:"email"`
		CoursesTeaching int64  `json:"courses_teaching"`
		Enrollments     int64  `json:"enrollments"`
	}
	res.Decode(t, &users)
	require.Len(t, users, 3)
	for _, u := range users {
		switch u.Email {
		case mentor.Email:
			assert.EqualValues(t, 2, u.CoursesTeaching)
		case mentee.Email:
			assert.EqualValues(t, 1, u.Enrollments)
		}
	}

	code, res = env.Do(t, http.MethodGet, "/admin/users?role=mentor", token, nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &users)
	require.Len(t, users, 1)
	assert.Equal(t, mentor.Email, users[0].Email)

	code, _ = env.Do(t, http.MethodGet, "/admin/users?role=OWNER", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestCreateUpdateDeleteUser(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	token := testutil.Token(t, admin)

	code, res := env.Do(t, http.MethodPost, "/admin/users", token, map[string]string{
		"name":  "New Mentor",
		"email": "New.Mentor@Example.com",
		"role":  "mentor",
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var user models.User
	res.Decode(t, &user)
	assert.Equal(t, "new.mentor@example.com", user.Email)
	assert.Equal(t, models.RoleMentor, user.Role)

	// the default password lets the account sign in
	code, _ = env.Do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "new.mentor@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, code)

	code, _ = env.Do(t, http.MethodPost, "/admin/users", token, map[string]string{
		"name": "Dup", "email": "new.mentor@example.com", "role": "MENTEE",
	})
	assert.Equal(t, http.StatusConflict, code)

	path := fmt.Sprintf("/admin/users/%d", user.ID)
	code, _ = env.Do(t, http.MethodPatch, path, token, map[string]string{"status": models.UserSuspended, "title": "Staff Engineer"})
	require.Equal(t, http.StatusOK, code)
	var stored models.User
	database.Database.Db.First(&stored, user.ID)
	assert.Equal(t, models.UserSuspended, stored.Status)
	assert.Equal(t, "Staff Engineer", stored.Title)
	assert.Equal(t, "New Mentor", stored.Name)

	code, _ = env.Do(t, http.MethodPatch, path, token, map[string]string{"email": admin.Email})
	assert.Equal(t, http.StatusConflict, code)

	code, res = env.Do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You cannot delete your own account!", res.Message)

	code, _ = env.Do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.Do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestImportUsers(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	testutil.CreateUser(t, models.RoleMentee, "taken@example.com")

	workbook, err := utils.WriteWorkbook([]utils.Sheet{{
		Name:   "Users",
		Header: []string{"Name", "Email", "Role"},
		Rows: [][]interface{}{
			{"Ann", "ann@example.com", "mentor"},
			{"Ben", "BEN@example.com", ""},
			{"Ben again", "ben@example.com", "MENTEE"},
			{"Taken", "taken@example.com", "MENTEE"},
			{"Broken", "not-an-email", "MENTEE"},
			{"Wizard", "wiz@example.com", "WIZARD"},
		},
	}})
	require.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "users.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/users/import", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testutil.Token(t, admin))

	code, res := env.Send(t, req)
	require.Equal(t, http.StatusOK, code, res.Message)

	var result struct {
		Created int `json:"created"`
		Skipped []struct {
			Line   int    `json:"line"`
			Email  string `json:"email"`
			Reason string `json:"reason"`
		} `json:"skipped"`
	}
	res.Decode(t, &result)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Skipped, 4)
	assert.Equal(t, 4, result.Skipped[0].Line)
	assert.Equal(t, "Duplicate row", result.Skipped[0].Reason)
	assert.Equal(t, "Email already exists", result.Skipped[1].Reason)

	var ben models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "ben@example.com").First(&ben).Error)
	assert.Equal(t, models.RoleMentee, ben.Role)
}

func TestImportUsersRejectsGarbage(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "users.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("definitely not a zip"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/users/import", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testutil.Token(t, admin))

	code, res := env.Send(t, req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid spreadsheet!", res.Message)
}

func TestSettings(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentee := testutil.CreateUser(t, models.RoleMentee, "mentee@example.com")

	code, res := env.Do(t, http.MethodGet, "/admin/settings", testutil.Token(t, mentee), nil)
	require.Equal(t, http.StatusOK, code)
	var settings models.GlobalSetting
	res.Decode(t, &settings)
	assert.Equal(t, "TechStorm Global", settings.PlatformName)
	assert.False(t, settings.MaintenanceMode)

	code, _ = env.Do(t, http.MethodPost, "/admin/settings", testutil.Token(t, mentee), map[string]bool{"maintenance_mode": true})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = env.Do(t, http.MethodPost, "/admin/settings", testutil.Token(t, admin), map[string]interface{}{
		"maintenance_mode": true,
		"platform_name":    "Storm",
	})
	require.Equal(t, http.StatusOK, code)

	code, res = env.Do(t, http.MethodGet, "/admin/settings", testutil.Token(t, mentee), nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &settings)
	assert.True(t, settings.MaintenanceMode)
	assert.Equal(t, "Storm", settings.PlatformName)
	assert.Equal(t, "hello@techstormglobal.com", settings.SupportEmail)

	var rows int64
	database.Database.Db.Model(&models.GlobalSetting{}).Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestTeamMembers(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	token := testutil.Token(t, admin)

	code, res := env.Do(t, http.MethodPost, "/admin/team", token, map[string]interface{}{
		"name":         "Grace",
		"role":         "CTO",
		"linkedin_url": "https://linkedin.com/in/grace",
		"order":        2,
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var member models.TeamMember
	res.Decode(t, &member)

	code, _ = env.Do(t, http.MethodPost, "/admin/team", token, map[string]interface{}{"name": "Linus", "role": "CEO", "order": 1})
	require.Equal(t, http.StatusCreated, code)

	code, _ = env.Do(t, http.MethodPost, "/admin/team", token, map[string]interface{}{"name": "Bad", "role": "X", "twitter_url": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, res = env.Do(t, http.MethodGet, "/public/team", "", nil)
	require.Equal(t, http.StatusOK, code)
	var team []models.TeamMember
	res.Decode(t, &team)
	require.Len(t, team, 2)
	assert.Equal(t, "Linus", team[0].Name)

	code, _ = env.Do(t, http.MethodPatch, fmt.Sprintf("/admin/team/%d", member.ID), token, map[string]interface{}{"bio": "Compilers"})
	require.Equal(t, http.StatusOK, code)
	var stored models.TeamMember
	database.Database.Db.First(&stored, member.ID)
	assert.Equal(t, "Compilers", stored.Bio)
	assert.Equal(t, "CTO", stored.Role)

	code, _ = env.Do(t, http.MethodDelete, fmt.Sprintf("/admin/team/%d", member.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.Do(t, http.MethodDelete, fmt.Sprintf("/admin/team/%d", member.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
