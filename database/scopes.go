package database

import (
	"gorm.io/gorm"
)

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// CourseTree preloads modules and lessons by position with quizzes, questions, options and assignments
func CourseTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Modules", byPosition).
		Preload("Modules.Lessons", byPosition).
		Preload("Modules.Lessons.Quizzes").
		Preload("Modules.Lessons.Quizzes.Questions").
		Preload("Modules.Lessons.Quizzes.Questions.Options").
		Preload("Modules.Lessons.Assignments")
}

// LessonIDsOfCourse is a subquery selecting the lesson ids of a course
func LessonIDsOfCourse(db *gorm.DB, courseID interface{}) *gorm.DB {
	return db.Table("lessons").
		Select("lessons.id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id IN (?)", courseID)
}

// QuizIDsOfCourse is a subquery selecting the quiz ids of a course
func QuizIDsOfCourse(db *gorm.DB, courseID interface{}) *gorm.DB {
	return db.Table("quizzes").
		Select("quizzes.id").
		Where("quizzes.lesson_id IN (?)", LessonIDsOfCourse(db, courseID))
}

// AssignmentIDsOfCourse is a subquery selecting the assignment ids of a course
func AssignmentIDsOfCourse(db *gorm.DB, courseID interface{}) *gorm.DB {
	return db.Table("assignments").
		Select("assignments.id").
		Where("assignments.lesson_id IN (?)", LessonIDsOfCourse(db, courseID))
}

// CourseIDOfLesson resolves the course owning a lesson
func CourseIDOfLesson(db *gorm.DB, lessonID uint) (uint, error) {
	var courseID uint
	err := db.Table("lessons").
		Select("modules.course_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lessons.id = ?", lessonID).
		Row().Scan(&courseID)
	return courseID, err
}

type groupCount struct {
	GroupKey uint
	Total    int64
}

// CountGrouped counts rows of table grouped by column for the given keys
func CountGrouped(db *gorm.DB, table, column string, keys []uint) map[uint]int64 {
	out := make(map[uint]int64, len(keys))
	if len(keys) == 0 {
		return out
	}

	var rows []groupCount
	db.Table(table).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows)

	for _, r := range rows {
		out[r.GroupKey] = r.Total
	}
	return out
}

// CourseProgress returns the lesson count of a course and how many of them the user completed
func CourseProgress(db *gorm.DB, userID, courseID uint) (total, completed int64) {
	lessonIDs := LessonIDsOfCourse(db, courseID)
	db.Table("lessons").Where("id IN (?)", lessonIDs).Count(&total)
	if total == 0 {
		return 0, 0
	}
	db.Table("lesson_progresses").
		Where("user_id = ? AND is_completed = ? AND lesson_id IN (?)", userID, true, LessonIDsOfCourse(db, courseID)).
		Count(&completed)
	return total, completed
}
