package utils

import (
	"context"
	"log"
	"time"

	"techstorm/database"
	"techstorm/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

func logScheduler(format string, args ...interface{}) {
	log.Printf("[SCHEDULER] "+format, args...)
}

// InitializeScheduler registers the housekeeping jobs and starts the cron runner
func InitializeScheduler() *cron.Cron {
	logScheduler("Initializing scheduler...")

	c := cron.New()

	jobs := []struct {
		spec string
		name string
		fn   func()
	}{
		{"@hourly", "purge expired records", func() { PurgeExpiredRecords(time.Now()) }},
		{"*/15 * * * *", "cancel stale meeting requests", func() { CancelStaleMeetingRequests(time.Now()) }},
		{"0 8 * * *", "mentor digest", func() { SendMentorDigests(time.Now()) }},
	}

	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.spec, func() {
			logScheduler("Running %s...", job.name)
			job.fn()
		}); err != nil {
			logScheduler("Failed to register %s: %v", job.name, err)
		}
	}

	c.Start()
	logScheduler("Scheduler started with %d jobs", len(c.Entries()))
	return c
}

// PurgeResult counts rows removed by PurgeExpiredRecords
type PurgeResult struct {
	Invitations   int64
	OTPs          int64
	RevokedTokens int64
}

// PurgeExpiredRecords deletes expired invitations, used or expired codes and stale revocations
func PurgeExpiredRecords(at time.Time) PurgeResult {
	db := database.Database.Db
	var result PurgeResult

	res := db.Where("expires_at < ?", at).Delete(&models.Invitation{})
	if res.Error != nil {
		logScheduler("Error purging invitations: %v", res.Error)
	}
	result.Invitations = res.RowsAffected

	res = db.Where("expires_at < ? OR is_used = ?", at, true).Delete(&models.OTP{})
	if res.Error != nil {
		logScheduler("Error purging codes: %v", res.Error)
	}
	result.OTPs = res.RowsAffected

	n, err := Revocations().PurgeExpired(context.Background())
	if err != nil {
		logScheduler("Error purging revoked tokens: %v", err)
	}
	result.RevokedTokens = n

	logScheduler("Purged %d invitations, %d codes, %d revoked tokens", result.Invitations, result.OTPs, result.RevokedTokens)
	return result
}

// CancelStaleMeetingRequests cancels requests nobody answered before their start time
func CancelStaleMeetingRequests(at time.Time) int64 {
	res := database.Database.Db.Model(&models.Meeting{}).
		Where("status = ? AND start_time < ?", models.MeetingRequested, at).
		Update("status", models.MeetingCancelled)
	if res.Error != nil {
		logScheduler("Error cancelling stale requests: %v", res.Error)
		return 0
	}
	if res.RowsAffected > 0 {
		logScheduler("Cancelled %d unanswered meeting requests", res.RowsAffected)
	}
	return res.RowsAffected
}

// SendMentorDigests mails every mentor the sessions scheduled for the day of at.
// Returns how many digests went out.
func SendMentorDigests(at time.Time) int {
	db := database.Database.Db
	day := now.With(at)

	var meetings []models.Meeting
	if err := db.Preload("Mentor").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.MeetingScheduled, day.BeginningOfDay(), day.EndOfDay()).
		Order("start_time asc").
		Find(&meetings).Error; err != nil {
		logScheduler("Error fetching today's meetings: %v", err)
		return 0
	}

	byMentor := make(map[uint][]models.Meeting)
	order := make([]uint, 0)
	for _, m := range meetings {
		if m.Mentor == nil {
			continue
		}
		if _, seen := byMentor[m.MentorID]; !seen {
			order = append(order, m.MentorID)
		}
		byMentor[m.MentorID] = append(byMentor[m.MentorID], m)
	}

	sent := 0
	for _, mentorID := range order {
		list := byMentor[mentorID]
		items := make([]DigestItem, 0, len(list))
		for _, m := range list {
			items = append(items, DigestItem{Title: m.Title, StartTime: m.StartTime, Link: m.Link})
		}
		mentor := list[0].Mentor
		if err := SendMentorDigestEmail(mentor.Email, mentor.Name, items); err != nil {
			continue
		}
		sent++
	}

	logScheduler("Sent %d mentor digests for %s", sent, at.Format("2006-01-02"))
	return sent
}
