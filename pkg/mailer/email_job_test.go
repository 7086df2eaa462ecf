package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSignupOTPJob(t *testing.T) {
	job := NewSignupOTPJob("Shop", "jane@example.com", "Jane", "042917", 10*time.Minute)

	assert.Equal(t, "jane@example.com", job.To)
	assert.Equal(t, KindSignupOTP, job.Kind)
	assert.Contains(t, job.Text, "042917")
	assert.Contains(t, job.HTML, "<b>042917</b>")
	assert.Contains(t, job.Text, "10 minutes")
	assert.NoError(t, job.Validate())
}

func TestEmailJob_Validate(t *testing.T) {
	assert.Error(t, EmailJob{Subject: "s", Text: "t"}.Validate())
	assert.Error(t, EmailJob{To: "a@b.c", Subject: "s"}.Validate())
	assert.NoError(t, EmailJob{To: "a@b.c", Subject: "s", HTML: "<p>x</p>"}.Validate())
}
