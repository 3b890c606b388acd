// Package digest sends a scheduled summary email of recent submissions
// with an XLSX listing attached.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"luvix/onboarding/onboarding-backend/internal/mail"
	"luvix/onboarding/onboarding-backend/internal/submissions"
	"luvix/onboarding/onboarding-backend/internal/submissions/export"
)

// Scheduler runs the digest on a cron schedule.
type Scheduler struct {
	service   *submissions.Service
	mailer    mail.Mailer
	recipient string
	schedule  string
	logger    *zap.Logger
	cron      *cron.Cron
}

// NewScheduler builds a stopped scheduler; Start arms it.
func NewScheduler(service *submissions.Service, mailer mail.Mailer, recipient, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:   service,
		mailer:    mailer,
		recipient: recipient,
		schedule:  schedule,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start registers the cron entry and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.logger.Error("Digest run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Digest scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Run sends one digest covering the previous 24 hours. Nothing is sent
// when there were no submissions.
func (s *Scheduler) Run(ctx context.Context) error {
	since := time.Now().Add(-24 * time.Hour)
	subs, err := s.service.ListSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to collect digest submissions: %w", err)
	}
	if len(subs) == 0 {
		s.logger.Info("No submissions in digest window, skipping")
		return nil
	}

	workbook, err := export.Workbook(submissions.WorkbookRows(subs))
	if err != nil {
		return fmt.Errorf("failed to build digest workbook: %w", err)
	}

	day := time.Now().Format("2006-01-02")
	msg := mail.Message{
		To:      []string{s.recipient},
		Subject: fmt.Sprintf("Onboarding Digest %s: %d new submissions", day, len(subs)),
		Body:    digestBody(subs),
		Attachments: []mail.Attachment{
			{
				Filename:    fmt.Sprintf("onboarding-digest-%s.xlsx", day),
				ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				Data:        workbook,
			},
		},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Info("Digest sent", zap.Int("submissions", len(subs)))
	return nil
}

func digestBody(subs []submissions.Submission) string {
	body := fmt.Sprintf("%d onboarding submissions in the last 24 hours:\r\n\r\n", len(subs))
	for _, sub := range subs {
		body += fmt.Sprintf("- %s (%s, %s plan)\r\n", sub.BusinessName, sub.ContactName, sub.SelectedPlan)
	}
	body += "\r\nThe full listing is attached."
	return body
}
