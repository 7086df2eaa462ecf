package mailer

import (
	"fmt"
	"html"
	"time"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text,omitempty"`
	HTML     string    `json:"html,omitempty"`
	Kind     string    `json:"kind,omitempty"`
	QueuedAt time.Time `json:"queued_at"`
}

const KindSignupOTP = "signup_otp"

// NewSignupOTPJob builds the verification email sent after registration.
func NewSignupOTPJob(company, to, name, code string, ttl time.Duration) EmailJob {
	minutes := int(ttl.Minutes())
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	return EmailJob{
		To:       to,
		Subject:  fmt.Sprintf("%s: verify your email", company),
		Text:     fmt.Sprintf("%s,\n\nYour OTP is: %s. It expires in %d minutes.\n", greeting, code, minutes),
		HTML:     fmt.Sprintf("<p>%s,</p><p>Your OTP is: <b>%s</b>. It expires in %d minutes.</p>", html.EscapeString(greeting), code, minutes),
		Kind:     KindSignupOTP,
		QueuedAt: time.Now().UTC(),
	}
}

// Validate checks the job is deliverable.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return fmt.Errorf("email job: missing recipient")
	}
	if j.Subject == "" || (j.Text == "" && j.HTML == "") {
		return fmt.Errorf("email job: subject with text or html is required")
	}
	return nil
}
