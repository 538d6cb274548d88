package models

import "time"

// Model is the common primary key and timestamps block for every table.
// Deletes are hard deletes; child rows go away through ON DELETE CASCADE.
type Model struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Roles
const (
	RoleAdmin  = "ADMIN"
	RoleMentor = "MENTOR"
	RoleMentee = "MENTEE"
)

// User status
const (
	UserActive    = "ACTIVE"
	UserSuspended = "SUSPENDED"
)

// Course status
const (
	CourseDraft     = "DRAFT"
	CoursePublished = "PUBLISHED"
	CourseReview    = "REVIEW"
)

// Meeting status
const (
	MeetingRequested = "REQUESTED"
	MeetingScheduled = "SCHEDULED"
	MeetingCancelled = "CANCELLED"
)

// Submission status
const (
	SubmissionPending = "PENDING"
	SubmissionGraded  = "GRADED"
)

// IsValidRole reports whether role is one of the platform roles
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMentor || role == RoleMentee
}
