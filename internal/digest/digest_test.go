package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"luvix/onboarding/onboarding-backend/internal/config"
	"luvix/onboarding/onboarding-backend/internal/mail"
	"luvix/onboarding/onboarding-backend/internal/submissions"
)

type stubRepo struct {
	subs []submissions.Submission
	err  error
}

func (s *stubRepo) Create(context.Context, *submissions.Submission) error { return nil }
func (s *stubRepo) GetByID(context.Context, uuid.UUID) (*submissions.Submission, error) {
	return nil, submissions.ErrNotFound
}
func (s *stubRepo) List(context.Context) ([]submissions.Submission, error) { return s.subs, s.err }
func (s *stubRepo) ListSince(context.Context, time.Time) ([]submissions.Submission, error) {
	return s.subs, s.err
}
func (s *stubRepo) MarkOnboarded(context.Context, uuid.UUID) error { return nil }

type stubMailer struct {
	sent []mail.Message
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func newScheduler(repo *stubRepo, mailer *stubMailer) *Scheduler {
	svc := submissions.NewService(repo, nil, mailer, nil, config.MailConfig{}, zap.NewNop())
	return NewScheduler(svc, mailer, "ops@luvix.example", "0 8 * * *", zap.NewNop())
}

func TestRunSendsWorkbook(t *testing.T) {
	repo := &stubRepo{subs: []submissions.Submission{
		{ID: uuid.New(), BusinessName: "Acme Retail", ContactName: "Jordan", SelectedPlan: "Starter", CreatedAt: time.Now()},
		{ID: uuid.New(), BusinessName: "Beta Co", ContactName: "Sam", SelectedPlan: "Professional", CreatedAt: time.Now()},
	}}
	mailer := &stubMailer{}

	require.NoError(t, newScheduler(repo, mailer).Run(context.Background()))
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, []string{"ops@luvix.example"}, msg.To)
	assert.Contains(t, msg.Subject, "2 new submissions")
	assert.Contains(t, msg.Body, "Acme Retail")
	require.Len(t, msg.Attachments, 1)
	assert.Contains(t, msg.Attachments[0].Filename, "onboarding-digest-")
}

func TestRunSkipsEmptyWindow(t *testing.T) {
	mailer := &stubMailer{}
	require.NoError(t, newScheduler(&stubRepo{}, mailer).Run(context.Background()))
	assert.Empty(t, mailer.sent)
}

func TestRunPropagatesListError(t *testing.T) {
	repo := &stubRepo{err: errors.New("database down")}
	err := newScheduler(repo, &stubMailer{}).Run(context.Background())
	assert.Error(t, err)
}

func TestRunPropagatesSendError(t *testing.T) {
	repo := &stubRepo{subs: []submissions.Submission{{ID: uuid.New(), BusinessName: "Acme"}}}
	mailer := &stubMailer{err: errors.New("smtp down")}
	assert.Error(t, newScheduler(repo, mailer).Run(context.Background()))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := submissions.NewService(&stubRepo{}, nil, &stubMailer{}, nil, config.MailConfig{}, zap.NewNop())
	s := NewScheduler(svc, &stubMailer{}, "ops@luvix.example", "not a schedule", zap.NewNop())
	assert.Error(t, s.Start())
}
