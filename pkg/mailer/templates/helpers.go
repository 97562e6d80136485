package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

// Option pattern
type Option func(*RegistrationData)

func WithIP(ip string) Option        { return func(d *RegistrationData) { d.IP = strings.TrimSpace(ip) } }
func WithUserAgent(ua string) Option { return func(d *RegistrationData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *RegistrationData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}
func WithRule(rule string) Option { return func(d *RegistrationData) { d.Rule = rule } }

// NewRegistrationNotificationData builds the job data announcing a new registration.
func NewRegistrationNotificationData(appName, recipient string, reg *entity.Registration, recommendation string, opts ...Option) map[string]any {
	d := RegistrationData{
		AppName:              appName,
		RecipientEmail:       recipient,
		RegistrationID:       reg.ID,
		FullName:             reg.FullName,
		LastName:             reg.LastName,
		DateOfBirth:          reg.DateOfBirth,
		Major:                reg.Major,
		Department:           reg.Department,
		Campus:               reg.Campus,
		ProgrammingKnowledge: reg.ProgrammingKnowledge,
		ProgrammingGoals:     reg.ProgrammingGoals,
		Recommendation:       recommendation,
	}
	WithTime(reg.CreatedAt)(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
