package submissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"luvix/onboarding/onboarding-backend/internal/config"
	"luvix/onboarding/onboarding-backend/internal/form"
	"luvix/onboarding/onboarding-backend/internal/mail"
	"luvix/onboarding/onboarding-backend/internal/submissions/export"
)

// DocumentRenderer turns an aggregate into the PDF document.
type DocumentRenderer interface {
	Render(f form.FormData) ([]byte, error)
}

// Archiver stores a copy of the rendered document. Optional.
type Archiver interface {
	Archive(ctx context.Context, key, contentType string, data []byte) error
}

// ValidationFailure carries the per-field messages of a rejected
// submission. It matches ErrValidation under errors.Is.
type ValidationFailure struct {
	Fields form.ValidationErrors
}

func (v *ValidationFailure) Error() string {
	return fmt.Sprintf("submission failed validation on %d fields", len(v.Fields))
}

func (v *ValidationFailure) Unwrap() error { return ErrValidation }

// Service runs the submission pipeline and serves the admin read side.
type Service struct {
	repo     Repository
	renderer DocumentRenderer
	mailer   mail.Mailer
	archiver Archiver
	mailCfg  config.MailConfig
	logger   *zap.Logger
	timeout  time.Duration
}

// NewService wires the pipeline. archiver may be nil.
func NewService(repo Repository, renderer DocumentRenderer, mailer mail.Mailer, archiver Archiver, mailCfg config.MailConfig, logger *zap.Logger) *Service {
	timeout := mailCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		repo:     repo,
		renderer: renderer,
		mailer:   mailer,
		archiver: archiver,
		mailCfg:  mailCfg,
		logger:   logger,
		timeout:  timeout,
	}
}

// Submit runs the full pipeline for one aggregate. The notification email
// is mandatory; persistence and archival are best effort. A submission
// succeeds as soon as the email is delivered, even if the record could
// not be stored.
func (s *Service) Submit(ctx context.Context, f form.FormData) (*Submission, error) {
	if err := s.mailCfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	f = f.Normalize()
	if errs := form.ValidateAll(f); len(errs) > 0 {
		return nil, &ValidationFailure{Fields: errs}
	}

	pdf, err := s.renderer.Render(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	sub, err := NewSubmission(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	mailErrs := make(chan error, 1)
	storeErrs := make(chan error, 1)

	go func() {
		mailErrs <- s.mailer.Send(ctx, s.notification(sub, pdf))
	}()
	go func() {
		storeErrs <- s.repo.Create(ctx, &sub)
	}()

	var mailErr error
	for mailErrs != nil || storeErrs != nil {
		select {
		case err := <-mailErrs:
			mailErr = err
			mailErrs = nil
		case err := <-storeErrs:
			if err != nil {
				// Persistence is best effort; the email already carries
				// the full submission.
				s.logger.Warn("Submission not persisted, continuing",
					zap.String("submissionId", sub.ID.String()),
					zap.Error(err))
			}
			storeErrs = nil
		}
	}

	if mailErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotification, mailErr)
	}

	if s.archiver != nil {
		key := sub.ID.String() + "/" + sub.DocumentFilename()
		if err := s.archiver.Archive(ctx, key, "application/pdf", pdf); err != nil {
			s.logger.Warn("Document archive failed", zap.Error(err))
		}
	}

	s.logger.Info("Submission processed",
		zap.String("submissionId", sub.ID.String()),
		zap.String("businessName", sub.BusinessName))
	return &sub, nil
}

func (s *Service) notification(sub Submission, pdf []byte) mail.Message {
	body := fmt.Sprintf(
		"A new onboarding form has been submitted.\r\n\r\n"+
			"Business: %s\r\nContact: %s <%s>\r\nPlan: %s\r\n\r\n"+
			"The full submission is attached as a PDF.",
		sub.BusinessName, sub.ContactName, sub.ContactEmail, sub.SelectedPlan)

	return mail.Message{
		To:      []string{s.mailCfg.Recipient},
		Subject: "New Onboarding Form Submission: " + sub.BusinessName,
		Body:    body,
		Attachments: []mail.Attachment{
			{Filename: sub.DocumentFilename(), ContentType: "application/pdf", Data: pdf},
		},
	}
}

// List returns every submission, newest first.
func (s *Service) List(ctx context.Context) ([]Submission, error) {
	return s.repo.List(ctx)
}

// ListSince returns submissions created at or after the given time.
func (s *Service) ListSince(ctx context.Context, since time.Time) ([]Submission, error) {
	return s.repo.ListSince(ctx, since)
}

// Export re-renders the stored aggregate and returns the document with
// its download filename.
func (s *Service) Export(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	f, err := sub.Form()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	pdf, err := s.renderer.Render(f)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return sub.DocumentFilename(), pdf, nil
}

// MarkOnboarded flips the onboarded flag. Repeated calls succeed.
func (s *Service) MarkOnboarded(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkOnboarded(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Submission marked onboarded", zap.String("submissionId", id.String()))
	return nil
}

// ExportWorkbook renders all submissions into an XLSX workbook.
func (s *Service) ExportWorkbook(ctx context.Context) ([]byte, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return export.Workbook(WorkbookRows(subs))
}

// WorkbookRows maps submissions into workbook rows.
func WorkbookRows(subs []Submission) []export.Row {
	rows := make([]export.Row, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, export.Row{
			ID:           sub.ID.String(),
			BusinessName: sub.BusinessName,
			ContactName:  sub.ContactName,
			ContactEmail: sub.ContactEmail,
			SelectedPlan: sub.SelectedPlan,
			Onboarded:    sub.Onboarded,
			CreatedAt:    sub.CreatedAt,
		})
	}
	return rows
}
