package utils

import (
	"context"
	"log"
	"sync"
	"time"

	"techstorm/config"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// OutlineQuestion is one generated multiple-choice question
type OutlineQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type OutlineQuiz struct {
	Title     string            `json:"title"`
	Questions []OutlineQuestion `json:"questions"`
}

type OutlineAssignment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type OutlineLesson struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	VideoURL    *string            `json:"video_url"`
	Quiz        *OutlineQuiz       `json:"quiz"`
	Assignment  *OutlineAssignment `json:"assignment"`
}

type OutlineModule struct {
	Title   string          `json:"title"`
	Lessons []OutlineLesson `json:"lessons"`
}

// CourseOutline is what the AI engine returns for a generated course
type CourseOutline struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Modules     []OutlineModule `json:"modules"`
}

// Insights is the shape of both report insight endpoints
type Insights struct {
	Summary        string   `json:"summary"`
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
}

// PlatformStats is posted to /reports/generate-insights
type PlatformStats struct {
	TotalUsers       int64                    `json:"total_users"`
	TotalCourses     int64                    `json:"total_courses"`
	TotalEnrollments int64                    `json:"total_enrollments"`
	CompletionRate   float64                  `json:"completion_rate"`
	TopCategories    []map[string]interface{} `json:"top_categories"`
}

// MentorStats is posted to /reports/generate-mentor-insights
type MentorStats struct {
	CourseTitle    string  `json:"course_title"`
	StudentCount   int64   `json:"student_count"`
	AvgQuizScore   float64 `json:"avg_quiz_score"`
	CompletionRate float64 `json:"completion_rate"`
	RecentFeedback *string `json:"recent_feedback,omitempty"`
}

var (
	PlatformInsightsFallback = Insights{
		Summary:        "AI insights are temporarily unavailable.",
		Insights:       []string{"Maintain student engagement.", "Review quiz performance."},
		Recommendation: "Try again later.",
	}
	MentorInsightsFallback = Insights{
		Summary:        "Mentor insights are temporarily unavailable.",
		Insights:       []string{"Check student progress manually.", "Focus on active modules."},
		Recommendation: "Try again later.",
	}
)

// AIEngine is the HTTP client for the content generation service
type AIEngine struct {
	client *resty.Client
}

var (
	aiOnce   sync.Once
	aiEngine *AIEngine
)

// AI returns the process-wide client built from config
func AI() *AIEngine {
	aiOnce.Do(func() {
		if aiEngine == nil {
			aiEngine = NewAIEngine(config.AppConfig.AIEngineURL, config.AppConfig.AITimeout)
		}
	})
	return aiEngine
}

// SetAIEngine swaps the process-wide client
func SetAIEngine(e *AIEngine) {
	aiOnce.Do(func() {})
	aiEngine = e
}

func NewAIEngine(baseURL string, timeout time.Duration) *AIEngine {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &AIEngine{client: client}
}

func (a *AIEngine) post(ctx context.Context, path string, body, out interface{}) error {
	res, err := a.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		Post(path)
	if err != nil {
		return errors.Wrapf(err, "ai engine %s", path)
	}
	if res.IsError() {
		return errors.Errorf("ai engine %s: status %d", path, res.StatusCode())
	}
	return nil
}

// GenerateCourseOutline asks for a full course tree
func (a *AIEngine) GenerateCourseOutline(ctx context.Context, topic, level string) (*CourseOutline, error) {
	if level == "" {
		level = "Beginner"
	}
	var outline CourseOutline
	err := a.post(ctx, "/api/v1/course/generate", map[string]string{"topic": topic, "level": level}, &outline)
	if err != nil {
		return nil, err
	}
	if outline.Title == "" {
		return nil, errors.New("ai engine returned an outline without a title")
	}
	return &outline, nil
}

// GenerateQuiz asks for multiple-choice questions about topic
func (a *AIEngine) GenerateQuiz(ctx context.Context, topic, difficulty string) (*OutlineQuiz, error) {
	if difficulty == "" {
		difficulty = "Intermediate"
	}
	var quiz OutlineQuiz
	err := a.post(ctx, "/api/v1/quiz/generate", map[string]string{"topic": topic, "difficulty": difficulty}, &quiz)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// PlatformInsights never fails; errors turn into PlatformInsightsFallback
func (a *AIEngine) PlatformInsights(ctx context.Context, stats PlatformStats) Insights {
	var out Insights
	if err := a.post(ctx, "/api/v1/reports/generate-insights", stats, &out); err != nil {
		log.Printf("[AI] platform insights unavailable: %v", err)
		return PlatformInsightsFallback
	}
	return out
}

// MentorInsights never fails; errors turn into MentorInsightsFallback
func (a *AIEngine) MentorInsights(ctx context.Context, stats MentorStats) Insights {
	var out Insights
	if err := a.post(ctx, "/api/v1/reports/generate-mentor-insights", stats, &out); err != nil {
		log.Printf("[AI] mentor insights unavailable: %v", err)
		return MentorInsightsFallback
	}
	return out
}
