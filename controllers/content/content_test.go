package contentController_test

import (
	"fmt"
	"net/http"
	"testing"

	"techstorm/database"
	"techstorm/models"
	"techstorm/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateModuleAndLessonPositions(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 2)
	token := testutil.Token(t, mentor)

	code, res := env.Do(t, http.MethodPost, "/content/modules", token, map[string]interface{}{
		"course_id": course.ID,
		"title":     "Advanced",
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	assert.Equal(t, "Module created successfully!", res.Message)
	var module models.Module
	res.Decode(t, &module)
	assert.Equal(t, 1, module.Position)

	code, res = env.Do(t, http.MethodPost, "/content/lessons", token, map[string]interface{}{
		"module_id": course.Modules[0].ID,
		"title":     "Lesson 3",
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var lesson models.Lesson
	res.Decode(t, &lesson)
	assert.Equal(t, 2, lesson.Position)

	code, res = env.Do(t, http.MethodPost, "/content/lessons", token, map[string]interface{}{
		"module_id": module.ID,
		"title":     "First of many",
	})
	require.Equal(t, http.StatusCreated, code)
	res.Decode(t, &lesson)
	assert.Equal(t, 0, lesson.Position)
}

func TestContentRequiresCourseOwner(t *testing.T) {
	env := testutil.Setup(t)
	owner := testutil.CreateUser(t, models.RoleMentor, "owner@example.com")
	other := testutil.CreateUser(t, models.RoleMentor, "other@example.com")
	mentee := testutil.CreateUser(t, models.RoleMentee, "mentee@example.com")
	course := testutil.Course(t, owner.ID, models.CourseDraft, 1)
	body := map[string]interface{}{"course_id": course.ID, "title": "Sneaky"}

	code, res := env.Do(t, http.MethodPost, "/content/modules", testutil.Token(t, other), body)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "You are not the instructor of this course!", res.Message)

	code, _ = env.Do(t, http.MethodPost, "/content/modules", testutil.Token(t, mentee), body)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = env.Do(t, http.MethodPost, "/content/modules", testutil.Token(t, owner), map[string]interface{}{"course_id": 9999, "title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdateAndDeleteLesson(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 1)
	token := testutil.Token(t, mentor)
	lessonID := course.Modules[0].Lessons[0].ID
	path := fmt.Sprintf("/content/lessons/%d", lessonID)

	code, res := env.Do(t, http.MethodPatch, path, token, map[string]interface{}{
		"video_url": "https://video.example.com/1",
		"is_free":   true,
		"duration":  12,
	})
	require.Equal(t, http.StatusOK, code, res.Message)

	var stored models.Lesson
	database.Database.Db.First(&stored, lessonID)
	assert.Equal(t, "Lesson 1", stored.Title)
	assert.Equal(t, "https://video.example.com/1", stored.VideoURL)
	assert.True(t, stored.IsFree)
	assert.Equal(t, 12, stored.Duration)

	code, _ = env.Do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, code)
	var count int64
	database.Database.Db.Model(&models.Lesson{}).Count(&count)
	assert.Zero(t, count)
}

func TestReorder(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 3)
	other := testutil.Course(t, mentor.ID, models.CourseDraft, 1)
	token := testutil.Token(t, mentor)
	lessons := course.Modules[0].Lessons

	ids := []uint{lessons[2].ID, lessons[0].ID, lessons[1].ID}
	code, res := env.Do(t, http.MethodPost, "/content/reorder", token, map[string]interface{}{"type": "lesson", "ids": ids})
	require.Equal(t, http.StatusOK, code, res.Message)
	assert.Equal(t, "Order updated successfully!", res.Message)

	for want, id := range ids {
		var l models.Lesson
		database.Database.Db.First(&l, id)
		assert.Equal(t, want, l.Position, "lesson %d", id)
	}

	mixed := []uint{lessons[0].ID, other.Modules[0].Lessons[0].ID}
	code, res = env.Do(t, http.MethodPost, "/content/reorder", token, map[string]interface{}{"type": "lesson", "ids": mixed})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Items must share the same parent!", res.Message)

	code, res = env.Do(t, http.MethodPost, "/content/reorder", token, map[string]interface{}{"type": "module", "ids": []uint{9999}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Some items were not found!", res.Message)

	code, _ = env.Do(t, http.MethodPost, "/content/reorder", token, map[string]interface{}{"type": "chapter", "ids": ids})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestUpsertQuizAndQuestions(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 2)
	token := testutil.Token(t, mentor)
	lessonID := course.Modules[0].Lessons[0].ID

	code, res := env.Do(t, http.MethodPost, "/content/quizzes", token, map[string]interface{}{
		"lesson_id": lessonID,
		"data":      map[string]interface{}{"title": "Checkpoint"},
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var quiz models.Quiz
	res.Decode(t, &quiz)

	code, res = env.Do(t, http.MethodPost, "/content/quizzes", token, map[string]interface{}{
		"lesson_id": lessonID,
		"data":      map[string]interface{}{"id": quiz.ID, "title": "Checkpoint v2"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Quiz saved successfully!", res.Message)

	// an id from another lesson creates a new quiz instead of moving it
	code, _ = env.Do(t, http.MethodPost, "/content/quizzes", token, map[string]interface{}{
		"lesson_id": course.Modules[0].Lessons[1].ID,
		"data":      map[string]interface{}{"id": quiz.ID, "title": "Elsewhere"},
	})
	require.Equal(t, http.StatusCreated, code)
	var stored models.Quiz
	database.Database.Db.First(&stored, quiz.ID)
	assert.Equal(t, "Checkpoint v2", stored.Title)
	assert.Equal(t, lessonID, stored.LessonID)

	code, res = env.Do(t, http.MethodPost, "/content/questions", token, map[string]interface{}{
		"quiz_id": quiz.ID,
		"data": map[string]interface{}{
			"text":           "2 + 2?",
			"correct_answer": "4",
			"options":        []string{"3", "4", "5"},
		},
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var question models.Question
	res.Decode(t, &question)
	assert.Len(t, question.Options, 3)

	code, _ = env.Do(t, http.MethodPost, "/content/questions", token, map[string]interface{}{
		"quiz_id": quiz.ID,
		"data":    map[string]interface{}{"text": "Lonely", "correct_answer": "a", "options": []string{"a"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = env.Do(t, http.MethodDelete, fmt.Sprintf("/content/questions/%d", question.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	var options int64
	database.Database.Db.Model(&models.QuestionOption{}).Count(&options)
	assert.Zero(t, options)
}

func TestGenerateQuiz(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 1)
	lessonID := course.Modules[0].Lessons[0].ID

	testutil.FakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/quiz/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title": "Generated", "questions": [
			{"text": "Q1", "options": ["a", "b"], "correct_answer": "a"},
			{"text": "Q2", "options": ["c", "d"], "correct_answer": "d"}
		]}`)
	})

	code, res := env.Do(t, http.MethodPost, "/content/quizzes/generate-ai", testutil.Token(t, mentor), map[string]interface{}{"lesson_id": lessonID})
	require.Equal(t, http.StatusCreated, code, res.Message)

	var quiz models.Quiz
	res.Decode(t, &quiz)
	assert.Equal(t, "Generated", quiz.Title)
	require.Len(t, quiz.Questions, 2)
	assert.Len(t, quiz.Questions[1].Options, 2)

	// a second run appends to the same quiz
	code, _ = env.Do(t, http.MethodPost, "/content/quizzes/generate-ai", testutil.Token(t, mentor), map[string]interface{}{"lesson_id": lessonID})
	require.Equal(t, http.StatusCreated, code)
	var quizzes, questions int64
	database.Database.Db.Model(&models.Quiz{}).Count(&quizzes)
	database.Database.Db.Model(&models.Question{}).Count(&questions)
	assert.EqualValues(t, 1, quizzes)
	assert.EqualValues(t, 4, questions)
}

func TestGenerateQuizAIFailure(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 1)

	code, res := env.Do(t, http.MethodPost, "/content/quizzes/generate-ai", testutil.Token(t, mentor), map[string]interface{}{
		"lesson_id": course.Modules[0].Lessons[0].ID,
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "AI Engine failed to generate quiz", res.Message)
}

func TestUpsertAssignment(t *testing.T) {
	env := testutil.Setup(t)
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	course := testutil.Course(t, mentor.ID, models.CourseDraft, 1)
	token := testutil.Token(t, mentor)
	lessonID := course.Modules[0].Lessons[0].ID

	code, res := env.Do(t, http.MethodPost, "/content/assignments", token, map[string]interface{}{
		"lesson_id": lessonID,
		"data":      map[string]interface{}{"title": "Build it", "description": "Ship a binary"},
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var assignment models.Assignment
	res.Decode(t, &assignment)

	code, _ = env.Do(t, http.MethodPost, "/content/assignments", token, map[string]interface{}{
		"lesson_id": lessonID,
		"data":      map[string]interface{}{"id": assignment.ID, "title": "Build it better", "description": ""},
	})
	require.Equal(t, http.StatusOK, code)

	var stored models.Assignment
	database.Database.Db.First(&stored, assignment.ID)
	assert.Equal(t, "Build it better", stored.Title)
	assert.Empty(t, stored.Description)
}
