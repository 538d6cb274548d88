package validators

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"min=3"`
	Tags  []string `json:"tags" validate:"min=1,dive,max=3"`
	Age   int      `json:"age" validate:"gte=18"`
	Role  string   `json:"role" validate:"oneof=A B"`
	Code  string   `json:"code" validate:"len=6"`
	Site  string   `json:"site_url" validate:"omitempty,url"`
}

func (s *sample) Trim() { s.Name = strings.TrimSpace(s.Name) }

func TestCheckMessages(t *testing.T) {
	errs := Check(&sample{Email: "x", Name: "ab", Tags: []string{}, Age: 10, Role: "C", Code: "12", Site: "nope"})
	assert.Equal(t, map[string]string{
		"email":    "Invalid email address!",
		"name":     "Name must be at least 3 characters long!",
		"tags":     "Tags must contain at least 1 item(s)!",
		"age":      "Age must be greater than or equal to 18!",
		"role":     "Role must be one of: A B!",
		"code":     "Code must be exactly 6 characters long!",
		"site_url": "Site url must be a valid URL!",
	}, errs)

	errs = Check(&sample{Email: "a@b.co", Name: "Ann", Tags: []string{"ok", "long"}, Age: 20, Role: "A", Code: "123456"})
	assert.Equal(t, map[string]string{"tags[1]": "Tags[1] must be at most 3 characters long!"}, errs)

	assert.Nil(t, Check(&sample{Email: "a@b.co", Name: "Ann", Tags: []string{"ok"}, Age: 20, Role: "B", Code: "123456"}))
}

func TestBodyMiddleware(t *testing.T) {
	app := fiber.New()
	app.Post("/", Body[sample]("validated"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("validated").(*sample).Name)
	})

	send := func(body string) (int, string) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		defer res.Body.Close()
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, res.Body)
		return res.StatusCode, buf.String()
	}

	code, body := send(`{"email": "a@b.co", "name": "  Ann  ", "tags": ["x"], "age": 30, "role": "A", "code": "abcdef"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ann", body)

	// trimming happens before validation
	code, body = send(`{"email": "a@b.co", "name": "  A  ", "tags": ["x"], "age": 30, "role": "A", "code": "abcdef"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, "Name must be at least 3 characters long!")

	code, body = send(`{"email": `)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "Invalid request body!")
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/courses/:courseId", ParamID("courseId", "cid"), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("cid"))
	})

	for path, want := range map[string]int{
		"/courses/12":  http.StatusOK,
		"/courses/0":   http.StatusBadRequest,
		"/courses/-4":  http.StatusBadRequest,
		"/courses/abc": http.StatusBadRequest,
	} {
		res, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, want, res.StatusCode, path)
	}
}

func TestTimestamp(t *testing.T) {
	cases := map[string]time.Time{
		`"2030-01-07T10:00:00+01:00"`: time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC),
		`"2030-01-07T10:00:00Z"`:      time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC),
		`"2030-01-07T10:00"`:          time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC),
		`"2030-01-07 10:00:30"`:       time.Date(2030, 1, 7, 10, 0, 30, 0, time.UTC),
		`"2030-01-07"`:                time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, ts.Equal(want), "%s parsed as %s", raw, ts.Time)
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	var missing *Timestamp
	assert.True(t, missing.Value().IsZero())
	assert.True(t, missing.EndOfDayIn(time.UTC).IsZero())
}

func TestTimestampEndOfDay(t *testing.T) {
	pacific := time.FixedZone("UTC-8", -8*60*60)

	var date Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2030-01-11"`), &date))
	assert.True(t, date.DateOnly)
	assert.True(t, date.EndOfDayIn(pacific).Equal(time.Date(2030, 1, 11, 23, 59, 59, 0, pacific)))

	var instant Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2030-01-11T08:00:00Z"`), &instant))
	assert.False(t, instant.DateOnly)
	assert.True(t, instant.EndOfDayIn(pacific).Equal(instant.Time))
}

type schedule struct {
	Start *Timestamp `json:"start" validate:"required,filled"`
	Moved *Timestamp `json:"moved" validate:"omitempty,filled"`
}

func TestFilledTimestamp(t *testing.T) {
	assert.Equal(t, map[string]string{"start": "Start is required!"}, Check(&schedule{}))
	assert.Equal(t, map[string]string{"start": "Start is required!"}, Check(&schedule{Start: &Timestamp{}}))
	assert.Equal(t, map[string]string{"moved": "Moved is required!"},
		Check(&schedule{Start: &Timestamp{Time: time.Now()}, Moved: &Timestamp{}}))
	assert.Nil(t, Check(&schedule{Start: &Timestamp{Time: time.Now()}}))
}
