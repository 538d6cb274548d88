package utils

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"

	"techstorm/config"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailMessage is a single outgoing HTML email
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers EmailMessages through one provider
type Mailer interface {
	Send(msg EmailMessage) error
}

var (
	mailerMu sync.RWMutex
	mailer   Mailer
)

// InitMailer picks Resend, then SendGrid, then the console simulation
func InitMailer() {
	cfg := config.AppConfig
	switch {
	case cfg.ResendApiKey != "":
		SetMailer(NewResendMailer(cfg.ResendApiKey, cfg.MailFrom))
		log.Println("[MAIL] using Resend")
	case cfg.SendgridApiKey != "":
		SetMailer(NewSendgridMailer(cfg.SendgridApiKey, cfg.MailFrom))
		log.Println("[MAIL] using SendGrid")
	default:
		SetMailer(NewConsoleMailer())
		log.Println("[MAIL] no provider key set, emails will be simulated")
	}
}

// SetMailer replaces the active mailer
func SetMailer(m Mailer) {
	mailerMu.Lock()
	defer mailerMu.Unlock()
	mailer = m
}

// GetMailer returns the active mailer, defaulting to the console one
func GetMailer() Mailer {
	mailerMu.RLock()
	m := mailer
	mailerMu.RUnlock()
	if m == nil {
		m = NewConsoleMailer()
		SetMailer(m)
	}
	return m
}

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	err := GetMailer().Send(EmailMessage{To: to, Subject: subject, HTML: htmlBody})
	if err != nil {
		ReportError(err, fmt.Sprintf("sending %q to %v", subject, to))
	}
	return err
}

// --- Console ---

// ConsoleMailer only logs; it keeps what it "sent" for inspection
type ConsoleMailer struct {
	mu   sync.Mutex
	Sent []EmailMessage
}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) Send(msg EmailMessage) error {
	log.Printf("[MAIL] Simulation: sending %q to %s", msg.Subject, strings.Join(msg.To, ", "))
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	return nil
}

// Messages returns a copy of everything sent so far
func (m *ConsoleMailer) Messages() []EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailMessage, len(m.Sent))
	copy(out, m.Sent)
	return out
}

// --- Resend ---

type ResendMailer struct {
	client *resty.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return NewResendMailerWithBaseURL("https://api.resend.com", apiKey, from)
}

func NewResendMailerWithBaseURL(baseURL, apiKey, from string) *ResendMailer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(15 * time.Second)
	return &ResendMailer{client: client, from: from}
}

func (m *ResendMailer) Send(msg EmailMessage) error {
	res, err := m.client.R().
		SetBody(map[string]interface{}{
			"from":    m.from,
			"to":      msg.To,
			"subject": msg.Subject,
			"html":    msg.HTML,
		}).
		Post("/emails")
	if err != nil {
		return errors.Wrap(err, "resend request")
	}
	if res.IsError() {
		return errors.Errorf("resend status %d: %s", res.StatusCode(), res.String())
	}
	return nil
}

// --- SendGrid ---

type SendgridMailer struct {
	key  string
	host string
	from *sgmail.Email
}

func NewSendgridMailer(apiKey, from string) *SendgridMailer {
	name, address := "", from
	if addr, err := mail.ParseAddress(from); err == nil {
		name, address = addr.Name, addr.Address
	}
	return &SendgridMailer{
		key:  apiKey,
		host: "https://api.sendgrid.com",
		from: sgmail.NewEmail(name, address),
	}
}

func (m *SendgridMailer) Send(msg EmailMessage) error {
	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	p.Subject = msg.Subject

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/html", msg.HTML))

	req := sendgrid.GetRequest(m.key, "/v3/mail/send", m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.API(req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// --- Templates ---

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px;">
		<h2 style="color: #007C85;">%s</h2>
		%s
		<p style="margin-top: 30px; font-size: 12px; color: #64748b;">TechStorm Global. If you didn't expect this email, you can safely ignore it.</p>
	</div>
	`, html.EscapeString(title), bodyContent)
}

func button(link, label string) string {
	return fmt.Sprintf(`<a href="%s" style="display: inline-block; background-color: #007C85; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: bold; margin-top: 20px;">%s</a>`,
		html.EscapeString(link), html.EscapeString(label))
}

// --- Triggers ---

// SendInvitationEmail is synchronous; the caller reports failures to the inviter
func SendInvitationEmail(email, courseTitle, inviteLink string) error {
	subject := "Invitation to join " + courseTitle
	body := fmt.Sprintf(`
		<p>You have been invited to enroll in the course: <strong>%s</strong>.</p>
		<p>Click the button below to accept your invitation and start learning:</p>
		%s
	`, html.EscapeString(courseTitle), button(inviteLink, "Accept Invitation"))

	return SendEmail([]string{email}, subject, getEmailTemplate("Welcome to TechStorm Global", body))
}

func SendPasswordResetEmail(email, name, code string) {
	subject := "Your TechStorm password reset code"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Use the code below to reset your password. It expires in 15 minutes.</p>
		<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
	`, html.EscapeString(name), code)

	go SendEmail([]string{email}, subject, getEmailTemplate("Reset your password", body))
}

func SendMeetingRequestEmail(mentorEmail, mentorName, menteeName, title string, start time.Time) {
	subject := "New session request: " + title
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p><strong>%s</strong> requested a session <strong>%s</strong> on %s.</p>
		<p>Approve or reject it from your schedule.</p>
	`, html.EscapeString(mentorName), html.EscapeString(menteeName), html.EscapeString(title), start.Format("Mon, 02 Jan 2006 15:04 MST"))

	go SendEmail([]string{mentorEmail}, subject, getEmailTemplate("Session request", body))
}

func SendMeetingDecisionEmail(email, name, title, status, link string, start time.Time) {
	subject := fmt.Sprintf("Session %s: %s", strings.ToLower(status), title)
	detail := "<p>Your mentor could not take this session. Feel free to request another time.</p>"
	if link != "" {
		detail = "<p>Join using the link below when it starts.</p>" + button(link, "Join Session")
	}
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your session <strong>%s</strong> on %s is now <strong>%s</strong>.</p>
		%s
	`, html.EscapeString(name), html.EscapeString(title), start.Format("Mon, 02 Jan 2006 15:04 MST"), status, detail)

	go SendEmail([]string{email}, subject, getEmailTemplate("Session update", body))
}

func SendSubmissionGradedEmail(email, name, assignmentTitle, grade, feedback string) {
	subject := "Your assignment has been graded: " + assignmentTitle
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your submission for <strong>%s</strong> received the grade <strong>%s</strong>.</p>
		<p>%s</p>
	`, html.EscapeString(name), html.EscapeString(assignmentTitle), html.EscapeString(grade), html.EscapeString(feedback))

	go SendEmail([]string{email}, subject, getEmailTemplate("Assignment graded", body))
}

// DigestItem is one line of the mentor daily digest
type DigestItem struct {
	Title     string
	StartTime time.Time
	Link      string
}

func SendMentorDigestEmail(email, name string, items []DigestItem) error {
	var rows strings.Builder
	for _, it := range items {
		fmt.Fprintf(&rows, "<li>%s <strong>%s</strong>", it.StartTime.Format("15:04"), html.EscapeString(it.Title))
		if it.Link != "" {
			fmt.Fprintf(&rows, ` (<a href="%s">link</a>)`, html.EscapeString(it.Link))
		}
		rows.WriteString("</li>")
	}
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have %d session(s) today:</p>
		<ul>%s</ul>
	`, html.EscapeString(name), len(items), rows.String())

	return SendEmail([]string{email}, "Your sessions for today", getEmailTemplate("Today's schedule", body))
}

func SendEnrollmentEmail(email, userName, courseName string) {
	subject := "Enrollment confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>. Head to your dashboard to start learning.</p>
	`, html.EscapeString(userName), html.EscapeString(courseName))

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment successful", body))
}
