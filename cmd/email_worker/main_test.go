package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	"github.com/oksasatya/urex-bootcamp/pkg/mailer"
	mailtpl "github.com/oksasatya/urex-bootcamp/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func newWorker(s *fakeSender) *worker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &worker{Sender: s, Logger: l}
}

func notificationJob(t *testing.T) []byte {
	reg := &entity.Registration{
		ID: "r-9", FullName: "Jane", LastName: "Doe", DateOfBirth: "2001-05-06",
		Major: "CS", Department: "Eng", Campus: "North",
		ProgrammingKnowledge: "zero", ProgrammingGoals: "web",
		CreatedAt: time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC),
	}
	body, err := json.Marshal(mailer.EmailJob{
		To:       "admin@example.com",
		Template: mailtpl.RegistrationNotification,
		Data:     mailtpl.NewRegistrationNotificationData("urex", "admin@example.com", reg, "Start with HTML"),
	})
	require.NoError(t, err)
	return body
}

func TestHandleSendsRenderedNotification(t *testing.T) {
	s := &fakeSender{}
	assert.Equal(t, outcomeAck, newWorker(s).handle(context.Background(), notificationJob(t)))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "admin@example.com", s.sent[0].to)
	assert.Equal(t, "New bootcamp registration: Jane Doe", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "Start with HTML")
	assert.Contains(t, s.sent[0].html, "North")
}

func TestHandleOutcomes(t *testing.T) {
	s := &fakeSender{}
	w := newWorker(s)

	assert.Equal(t, outcomeDrop, w.handle(context.Background(), []byte("{")))
	assert.Equal(t, outcomeDrop, w.handle(context.Background(), []byte(`{"to":"a@b.c","template":"missing"}`)))
	assert.Equal(t, outcomeDrop, w.handle(context.Background(), []byte(`{"subject":"hi","text":"x"}`)))

	s.err = errors.New("mailgun 503")
	assert.Equal(t, outcomeRequeue, w.handle(context.Background(), notificationJob(t)))
	assert.Empty(t, s.sent)
}

func TestHandlePlainMessage(t *testing.T) {
	s := &fakeSender{}
	out := newWorker(s).handle(context.Background(), []byte(`{"to":"a@b.c","subject":"hi","text":"plain"}`))
	assert.Equal(t, outcomeAck, out)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "hi", s.sent[0].subject)
	assert.Equal(t, "plain", s.sent[0].text)
}
