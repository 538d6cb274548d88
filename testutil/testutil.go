// Package testutil wires an in-memory app for HTTP-level tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"techstorm/config"
	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/routers"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

// Password is the plain password of every fixture user
const Password = "secret123"

// Env is one isolated app with its database and fakes
type Env struct {
	App    *fiber.App
	Mailer *utils.ConsoleMailer
}

// Envelope is the decoded response body
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals Data into out
func (e Envelope) Decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, out), "data: %s", string(e.Data))
}

// Setup points the globals at a fresh in-memory database and returns the app
func Setup(t *testing.T) *Env {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:           "0",
		AppEnv:         "test",
		DBDriver:       "sqlite",
		JWTKey:         "test-secret",
		SaltRound:      bcrypt.MinCost,
		FrontendURL:    "*",
		AppURL:         "http://localhost:3000",
		AIEngineURL:    "http://127.0.0.1:1",
		AITimeout:      2 * time.Second,
		MailFrom:       "TechStorm Test <test@techstorm.com>",
		UploadDir:      t.TempDir(),
		UploadMaxWidth: 1600,
		UploadMaxBytes: 1 << 20,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	mailer := utils.NewConsoleMailer()
	utils.SetMailer(mailer)
	utils.SetTokenStore(utils.DBTokenStore{})
	utils.SetStorage(utils.NewLocalStorage(config.AppConfig.UploadDir, "/uploads"))
	utils.SetAIEngine(utils.NewAIEngine(config.AppConfig.AIEngineURL, config.AppConfig.AITimeout))

	return &Env{App: routers.NewApp(false), Mailer: mailer}
}

// FakeAI serves handler as the AI engine until the test ends
func FakeAI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	utils.SetAIEngine(utils.NewAIEngine(srv.URL, 5*time.Second))
}

// CreateUser inserts an active user with Password
func CreateUser(t *testing.T, role, email string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     "User " + email,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Status:   models.UserActive,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

// Token signs a bearer token for user
func Token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user)
	require.NoError(t, err)
	return token
}

// Course inserts a course with one module holding the given number of lessons
func Course(t *testing.T, instructorID uint, status string, lessons int) models.Course {
	t.Helper()
	db := database.Database.Db

	course := models.Course{Title: "Go Basics", Category: "Programming", Status: status, InstructorID: instructorID}
	require.NoError(t, db.Create(&course).Error)

	module := models.Module{CourseID: course.ID, Title: "Intro", Position: 0}
	require.NoError(t, db.Create(&module).Error)

	for i := 0; i < lessons; i++ {
		lesson := models.Lesson{ModuleID: module.ID, Title: fmt.Sprintf("Lesson %d", i+1), Position: i}
		require.NoError(t, db.Create(&lesson).Error)
		module.Lessons = append(module.Lessons, lesson)
	}
	course.Modules = []models.Module{module}
	return course
}

// Enroll inserts an enrollment
func Enroll(t *testing.T, userID, courseID uint) models.Enrollment {
	t.Helper()
	e := models.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: time.Now()}
	require.NoError(t, database.Database.Db.Create(&e).Error)
	return e
}

// Do sends a JSON request and decodes the envelope
func (e *Env) Do(t *testing.T, method, path, token string, body interface{}) (int, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	return e.Send(t, req)
}

// Send runs a prepared request and decodes the envelope
func (e *Env) Send(t *testing.T, req *http.Request) (int, Envelope) {
	t.Helper()

	res, err := e.App.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", string(raw))
	}
	return res.StatusCode, env
}
