package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/config"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
	"github.com/oksasatya/urex-bootcamp/pkg/mailer"
	mailtpl "github.com/oksasatya/urex-bootcamp/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// fair dispatch between workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if _, err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	w := &worker{Sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), Logger: logger}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			switch w.handle(context.Background(), msg.Body) {
			case outcomeAck:
				_ = msg.Ack(false)
			case outcomeRequeue:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRequeue
	outcomeDrop
)

type worker struct {
	Sender mailer.Sender
	Logger *logrus.Logger
}

// handle renders and sends one job. Undecodable or unrenderable jobs are dropped;
// send failures are retried through the queue.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(w.Logger, "bad message", err, nil)
		return outcomeDrop
	}
	helpers.EnsureRecipient(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			helpers.LogError(w.Logger, "render failed", err, logrus.Fields{"template": job.Template})
			return outcomeDrop
		}
		text, html = t, h
		if subject == "" {
			subject = helpers.SubjectFor(job)
		}
	}
	if job.To == "" {
		helpers.LogError(w.Logger, "job has no recipient", nil, logrus.Fields{"template": job.Template})
		return outcomeDrop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.Logger, "send failed", err, logrus.Fields{"to": job.To})
		return outcomeRequeue
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return outcomeAck
}
