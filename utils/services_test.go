package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendMailer(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got["subject"] == "fail" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"message": "bad"}`)
			return
		}
		io.WriteString(w, `{"id": "1"}`)
	}))
	defer srv.Close()

	m := NewResendMailerWithBaseURL(srv.URL, "re_key", "TechStorm <hi@techstorm.com>")
	require.NoError(t, m.Send(EmailMessage{To: []string{"a@example.com"}, Subject: "Hello", HTML: "<p>x</p>"}))
	assert.Equal(t, "TechStorm <hi@techstorm.com>", got["from"])
	assert.Equal(t, []interface{}{"a@example.com"}, got["to"])
	assert.Equal(t, "<p>x</p>", got["html"])

	err := m.Send(EmailMessage{To: []string{"a@example.com"}, Subject: "fail"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSendgridMailer(t *testing.T) {
	var got struct {
		From struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"from"`
		Personalizations []struct {
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
			Subject string `json:"subject"`
		} `json:"personalizations"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg_key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendgridMailer("sg_key", "TechStorm <hi@techstorm.com>")
	m.host = srv.URL
	require.NoError(t, m.Send(EmailMessage{To: []string{"a@example.com", "b@example.com"}, Subject: "Hello", HTML: "<p>x</p>"}))

	assert.Equal(t, "hi@techstorm.com", got.From.Email)
	assert.Equal(t, "TechStorm", got.From.Name)
	require.Len(t, got.Personalizations, 1)
	assert.Len(t, got.Personalizations[0].To, 2)
	assert.Equal(t, "Hello", got.Personalizations[0].Subject)
}

func TestInvitationEmailEscapesCourseTitle(t *testing.T) {
	console := NewConsoleMailer()
	SetMailer(console)
	t.Cleanup(func() { SetMailer(nil) })

	require.NoError(t, SendInvitationEmail("a@example.com", "<script>Go</script>", "https://app.example.com/invite/accept?token=abc&x=1"))
	sent := console.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Invitation to join <script>Go</script>", sent[0].Subject)
	assert.NotContains(t, sent[0].HTML, "<script>")
	assert.Contains(t, sent[0].HTML, "token=abc&amp;x=1")
}

func TestAIEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/course/generate":
			assert.Equal(t, "Beginner", body["level"])
			if body["topic"] == "empty" {
				io.WriteString(w, `{"modules": []}`)
				return
			}
			io.WriteString(w, `{"title": "Go", "modules": [{"title": "M1", "lessons": [{"title": "L1"}]}]}`)
		case "/api/v1/quiz/generate":
			assert.Equal(t, "Intermediate", body["difficulty"])
			io.WriteString(w, `{"title": "Quiz", "questions": [{"text": "Q", "options": ["a", "b"], "correct_answer": "a"}]}`)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	ai := NewAIEngine(srv.URL, 2*time.Second)
	ctx := context.Background()

	outline, err := ai.GenerateCourseOutline(ctx, "Go", "")
	require.NoError(t, err)
	assert.Equal(t, "Go", outline.Title)
	require.Len(t, outline.Modules, 1)
	assert.Equal(t, "L1", outline.Modules[0].Lessons[0].Title)

	_, err = ai.GenerateCourseOutline(ctx, "empty", "")
	assert.Error(t, err)

	quiz, err := ai.GenerateQuiz(ctx, "Go", "")
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 1)

	assert.Equal(t, PlatformInsightsFallback, ai.PlatformInsights(ctx, PlatformStats{}))
	assert.Equal(t, MentorInsightsFallback, ai.MentorInsights(ctx, MentorStats{}))
}
