package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	repo "github.com/oksasatya/urex-bootcamp/internal/domain/repository"
	"github.com/oksasatya/urex-bootcamp/internal/metrics"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
	"github.com/oksasatya/urex-bootcamp/pkg/mailer"
	mailtpl "github.com/oksasatya/urex-bootcamp/pkg/mailer/templates"
	"github.com/oksasatya/urex-bootcamp/pkg/validation"
)

var (
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrSubmitFailed        = errors.New("failed to submit registration")
)

// SubmitFailedMessage is shown to students whenever the store rejects a submission.
const SubmitFailedMessage = "Failed to submit registration. Please try again."

// JobPublisher puts a job on the async queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RegistrationIndexer mirrors registrations into the search index.
type RegistrationIndexer interface {
	Index(ctx context.Context, r *entity.Registration) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// SubmitInput carries the nine registration fields as entered.
type SubmitInput struct {
	FullName             string `json:"full_name" form:"full_name" validate:"required"`
	LastName             string `json:"last_name" form:"last_name" validate:"required"`
	DateOfBirth          string `json:"date_of_birth" form:"date_of_birth" validate:"required,isodate"`
	Major                string `json:"major" form:"major" validate:"required"`
	Department           string `json:"department" form:"department" validate:"required"`
	Campus               string `json:"campus" form:"campus" validate:"required"`
	ProgrammingKnowledge string `json:"programming_knowledge" form:"programming_knowledge" validate:"required"`
	ProgrammingGoals     string `json:"programming_goals" form:"programming_goals" validate:"required"`

	// request metadata for the notification
	IP        string `json:"-" form:"-"`
	UserAgent string `json:"-" form:"-"`
}

type SubmitResult struct {
	Registration   *entity.Registration `json:"registration"`
	Recommendation string               `json:"recommendation"`
	Rule           Rule                 `json:"rule"`
}

// ValidationError wraps ErrInvalidRegistration with per-field messages.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalidRegistration.Error() }
func (e *ValidationError) Unwrap() error { return ErrInvalidRegistration }

type RegistrationService struct {
	Repo      repo.RegistrationRepository
	Indexer   RegistrationIndexer
	Publisher JobPublisher
	Metrics   *metrics.Metrics
	Logger    *logrus.Logger

	AppName     string
	NotifyEmail string
	MailEnabled bool

	validate *validator.Validate
}

func NewRegistrationService(r repo.RegistrationRepository, idx RegistrationIndexer, pub JobPublisher, m *metrics.Metrics, logger *logrus.Logger, appName, notifyEmail string, mailEnabled bool) *RegistrationService {
	return &RegistrationService{
		Repo:        r,
		Indexer:     idx,
		Publisher:   pub,
		Metrics:     m,
		Logger:      logger,
		AppName:     appName,
		NotifyEmail: notifyEmail,
		MailEnabled: mailEnabled,
		validate:    validation.New(),
	}
}

// Submit validates and stores one registration, then returns the recommendation for it.
// Values are stored exactly as entered.
func (s *RegistrationService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, &ValidationError{Details: validation.ToDetails(err)}
	}

	reg := &entity.Registration{
		FullName:             in.FullName,
		LastName:             in.LastName,
		DateOfBirth:          in.DateOfBirth,
		Major:                in.Major,
		Department:           in.Department,
		Campus:               in.Campus,
		ProgrammingKnowledge: in.ProgrammingKnowledge,
		ProgrammingGoals:     in.ProgrammingGoals,
	}
	if err := s.Repo.Create(ctx, reg); err != nil {
		s.Metrics.IncrementFailed()
		helpers.LogError(s.Logger, "registration insert failed", err, nil)
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	s.Metrics.IncrementSubmitted()

	rule := MatchRule(reg.ProgrammingKnowledge, reg.ProgrammingGoals)
	res := &SubmitResult{Registration: reg, Recommendation: recommendations[rule], Rule: rule}

	s.index(ctx, reg)
	s.notify(ctx, res, in)
	return res, nil
}

func (s *RegistrationService) index(ctx context.Context, reg *entity.Registration) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, reg); err != nil {
		helpers.LogWarn(s.Logger, "registration index failed", err, logrus.Fields{"registration_id": reg.ID})
	}
}

func (s *RegistrationService) notify(ctx context.Context, res *SubmitResult, in SubmitInput) {
	if !s.MailEnabled || s.Publisher == nil || s.NotifyEmail == "" {
		return
	}
	job := mailer.EmailJob{
		To:       s.NotifyEmail,
		Template: mailtpl.RegistrationNotification,
		Data: mailtpl.NewRegistrationNotificationData(s.AppName, s.NotifyEmail, res.Registration, res.Recommendation,
			mailtpl.WithRule(string(res.Rule)),
			mailtpl.WithIP(in.IP),
			mailtpl.WithUserAgent(in.UserAgent),
		),
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "publish registration notification failed", err, logrus.Fields{"registration_id": res.Registration.ID})
	}
}
