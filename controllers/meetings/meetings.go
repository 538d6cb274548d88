package meetingController

import (
	"log"
	"time"

	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	meetingValidator "techstorm/validators/meetings"

	"github.com/gofiber/fiber/v2"
)

const (
	mentorLookback = 24 * time.Hour
	menteeLookback = time.Hour
)

func meetingView(m models.Meeting, withMentee, withMentor bool) fiber.Map {
	view := fiber.Map{
		"id":          m.ID,
		"title":       m.Title,
		"description": m.Description,
		"start_time":  m.StartTime,
		"link":        m.Link,
		"status":      m.Status,
		"course_id":   m.CourseID,
		"mentor_id":   m.MentorID,
		"mentee_id":   m.MenteeID,
		"created_at":  m.CreatedAt,
		"course":      nil,
	}
	if m.Course != nil {
		view["course"] = fiber.Map{"title": m.Course.Title}
	}
	if withMentee {
		view["mentee"] = nil
		if m.Mentee != nil {
			view["mentee"] = fiber.Map{"name": m.Mentee.Name, "image": m.Mentee.Image, "email": m.Mentee.Email}
		}
	}
	if withMentor {
		view["mentor"] = nil
		if m.Mentor != nil {
			view["mentor"] = fiber.Map{"name": m.Mentor.Name}
		}
	}
	return view
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func CreateMeeting(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedMeeting").(*meetingValidator.CreateMeetingRequest)
	db := database.Database.Db

	if reqData.CourseID != nil {
		var count int64
		db.Model(&models.Course{}).Where("id = ?", *reqData.CourseID).Count(&count)
		if count == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
	}

	base := models.Meeting{
		Title:       reqData.Title,
		Description: reqData.Description,
		StartTime:   reqData.StartTime.Value(),
		Link:        reqData.Link,
		Status:      models.MeetingScheduled,
		CourseID:    reqData.CourseID,
		MentorID:    user.ID,
	}

	if !reqData.IsRecurring {
		if err := db.Create(&base).Error; err != nil {
			log.Printf("Error creating meeting: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create meeting!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Meeting scheduled successfully!", base)
	}

	start := reqData.StartTime.Value()
	end := reqData.EndDate.EndOfDayIn(start.Location())
	firstDay, lastDay := calendarDay(start, start.Location()), calendarDay(end, start.Location())
	if end.IsZero() || lastDay.Before(firstDay) {
		return middleware.ValidationErrorResponse(c, map[string]string{"end_date": "End date must not be before the start date!"})
	}
	if lastDay.After(firstDay.AddDate(0, 0, utils.MaxRecurrenceDays)) {
		return middleware.ValidationErrorResponse(c, map[string]string{"end_date": "A recurring series may span at most 366 days!"})
	}

	occurrences := utils.ExpandWeekly(start, end, reqData.DaysOfWeek)
	if len(occurrences) == 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"days_of_week": "No meeting day falls inside the selected range!"})
	}

	meetings := make([]models.Meeting, 0, len(occurrences))
	for _, at := range occurrences {
		m := base
		m.StartTime = at
		meetings = append(meetings, m)
	}

	if err := db.CreateInBatches(&meetings, 100).Error; err != nil {
		log.Printf("Error creating recurring meetings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create meetings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Recurring meetings scheduled successfully!", fiber.Map{
		"count":    len(meetings),
		"meetings": meetings,
	})
}

func MentorMeetings(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var meetings []models.Meeting
	if err := database.Database.Db.
		Where("mentor_id = ? AND start_time >= ?", user.ID, time.Now().Add(-mentorLookback)).
		Preload("Course").
		Preload("Mentee").
		Order("start_time asc").
		Find(&meetings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch meetings!", nil)
	}

	response := make([]fiber.Map, 0, len(meetings))
	for _, m := range meetings {
		response = append(response, meetingView(m, true, false))
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor meetings.", response)
}

func MenteeMeetings(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	enrolled := db.Model(&models.Enrollment{}).Select("course_id").Where("user_id = ?", user.ID)

	var meetings []models.Meeting
	if err := db.
		Where("(course_id IN (?) AND mentee_id IS NULL) OR mentee_id = ?", enrolled, user.ID).
		Where("start_time >= ?", time.Now().Add(-menteeLookback)).
		Preload("Course").
		Preload("Mentor").
		Order("start_time asc").
		Find(&meetings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch meetings!", nil)
	}

	response := make([]fiber.Map, 0, len(meetings))
	for _, m := range meetings {
		response = append(response, meetingView(m, false, true))
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentee meetings.", response)
}

func RequestMeeting(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	reqData := c.Locals("validatedMeetingRequest").(*meetingValidator.RequestMeetingRequest)
	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Instructor").First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	menteeID := user.ID
	courseID := course.ID
	meeting := models.Meeting{
		Title:       reqData.Title,
		Description: reqData.Description,
		StartTime:   reqData.StartTime.Value(),
		CourseID:    &courseID,
		MentorID:    course.InstructorID,
		MenteeID:    &menteeID,
		Status:      models.MeetingRequested,
		Link:        "",
	}
	if err := db.Create(&meeting).Error; err != nil {
		log.Printf("Error creating meeting request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request session!", nil)
	}

	if course.Instructor != nil {
		utils.SendMeetingRequestEmail(course.Instructor.Email, course.Instructor.Name, user.Name, meeting.Title, meeting.StartTime)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session requested successfully!", meeting)
}

func decide(c *fiber.Ctx, status, link string) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var meeting models.Meeting
	if err := db.Where("id = ? AND mentor_id = ?", c.Locals("id").(uint), user.ID).
		Preload("Mentee").
		First(&meeting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Meeting not found!", nil)
	}

	meeting.Status = status
	columns := []string{"Status"}
	if status == models.MeetingScheduled {
		meeting.Link = link
		columns = append(columns, "Link")
	}

	if err := db.Model(&meeting).Select(columns).Updates(&meeting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update meeting!", nil)
	}

	if meeting.Mentee != nil {
		utils.SendMeetingDecisionEmail(meeting.Mentee.Email, meeting.Mentee.Name, meeting.Title, status, meeting.Link, meeting.StartTime)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Meeting "+status+".", meeting)
}

func ApproveMeeting(c *fiber.Ctx) error {
	reqData := c.Locals("validatedApprove").(*meetingValidator.ApproveRequest)
	return decide(c, models.MeetingScheduled, reqData.Link)
}

func RejectMeeting(c *fiber.Ctx) error {
	return decide(c, models.MeetingCancelled, "")
}

func DeleteMeeting(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	var meeting models.Meeting
	if err := db.First(&meeting, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Meeting not found!", nil)
	}

	if meeting.MentorID != user.ID && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if err := db.Delete(&meeting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete meeting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Meeting deleted successfully!", nil)
}
