package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/urex-bootcamp/pkg/mailer"
	mailtpl "github.com/oksasatya/urex-bootcamp/pkg/mailer/templates"
)

// SubjectFor returns the subject line for a templated job.
func SubjectFor(job mailer.EmailJob) string {
	switch strings.ToLower(job.Template) {
	case mailtpl.RegistrationNotification:
		return strings.TrimSpace(fmt.Sprintf("New bootcamp registration: %v %v", job.Data["FullName"], job.Data["LastName"]))
	default:
		return "Notification"
	}
}

// EnsureRecipient copies the job recipient into the template data.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
