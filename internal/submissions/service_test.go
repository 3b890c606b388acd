package submissions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"luvix/onboarding/onboarding-backend/internal/config"
	"luvix/onboarding/onboarding-backend/internal/form"
	"luvix/onboarding/onboarding-backend/internal/mail"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, s *Submission) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Submission), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Submission), args.Error(1)
}

func (m *mockRepository) ListSince(ctx context.Context, since time.Time) ([]Submission, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Submission), args.Error(1)
}

func (m *mockRepository) MarkOnboarded(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(f form.FormData) ([]byte, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Archive(ctx context.Context, key, contentType string, data []byte) error {
	return m.Called(ctx, key, contentType, data).Error(0)
}

func validMailConfig() config.MailConfig {
	return config.MailConfig{
		Provider:  "smtp",
		SMTPHost:  "smtp.luvix.example",
		SMTPPort:  587,
		Username:  "noreply@luvix.example",
		Password:  "secret",
		FromName:  "LUVIX Onboarding",
		Recipient: "ops@luvix.example",
		Timeout:   5 * time.Second,
	}
}

// completeForm builds an aggregate that passes full validation.
func completeForm() form.FormData {
	f := form.New()
	f.BusinessName = "Acme Retail"
	f.Industry = "retail"
	f.ContactName = "Jordan Baker"
	f.ContactEmail = "jordan@acme.example"
	f.ContactPhone = "+34600111222"
	f.WhatsappNumber = "+34600111333"
	f.WhatsappStatus = "business"
	f.MetaBusinessManager = "have"
	f.BusinessHoursStart = "09:00"
	f.BusinessHoursEnd = "18:00"
	f.Timezone = "Europe/Madrid"
	f.MessageVolume = "50-100"
	f.TopQuestions[0] = "Where is my order?"
	f.TopQuestions[1] = "What are your opening hours?"
	f.TopQuestions[2] = "Do you ship internationally?"
	f.BusinessDescription = "Online retail store."
	f.CommunicationStyle = "friendly"
	f.SharePricing = "no"
	f.LeadInfo = []string{"name", "email"}
	f.AppointmentBooking = "no"
	f.EscalationRules = []string{"Customer asks for a human"}
	f.EscalationType = "email"
	f.EscalationContact = "support@acme.example"
	f.CurrentCRM = "none"
	f.Compliance = []string{"none"}
	f.Language = "english"
	f.DataStorage = "eu"
	f.GoLiveDate = "2026-10-01"
	f.SelectedPlan = "Starter"
	f.SuccessLooks = "Fewer repetitive support tickets."
	f.AgreementAuthority = true
	f.AgreementTerms = true
	f.AgreementWhatsApp = true
	f.AgreementAccuracy = true
	f.FullName = "Jordan Baker"
	f.SignatureDate = "2026-08-30"
	return f
}

func newTestService(repo Repository, renderer DocumentRenderer, mailer mail.Mailer, archiver Archiver) *Service {
	return NewService(repo, renderer, mailer, archiver, validMailConfig(), zap.NewNop())
}

func TestSubmitHappyPath(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)

	pdf := []byte("%PDF fake")
	renderer.On("Render", mock.Anything).Return(pdf, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*submissions.Submission")).Return(nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg mail.Message) bool {
		return msg.Subject == "New Onboarding Form Submission: Acme Retail" &&
			msg.To[0] == "ops@luvix.example" &&
			len(msg.Attachments) == 1 &&
			msg.Attachments[0].Filename == "Acme_Retail.pdf"
	})).Return(nil)

	svc := newTestService(repo, renderer, mailer, nil)
	sub, err := svc.Submit(context.Background(), completeForm())
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "Acme Retail", sub.BusinessName)
	assert.NotEqual(t, uuid.Nil, sub.ID)

	repo.AssertExpectations(t)
	renderer.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSubmitSucceedsWhenPersistenceFails(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)

	renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database down"))
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo, renderer, mailer, nil)
	sub, err := svc.Submit(context.Background(), completeForm())
	require.NoError(t, err)
	assert.NotNil(t, sub)
}

func TestSubmitFailsWhenNotificationFails(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)

	renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newTestService(repo, renderer, mailer, nil)
	sub, err := svc.Submit(context.Background(), completeForm())
	assert.ErrorIs(t, err, ErrNotification)
	assert.Nil(t, sub)
	repo.AssertExpectations(t)
}

func TestSubmitConfigCheckedBeforeAnythingElse(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)

	cfg := validMailConfig()
	cfg.SMTPHost = ""
	svc := NewService(repo, renderer, mailer, nil, cfg, zap.NewNop())

	sub, err := svc.Submit(context.Background(), completeForm())
	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, sub)
	renderer.AssertNotCalled(t, "Render", mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitRejectsInvalidAggregate(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)

	f := completeForm()
	f.BusinessName = ""
	f.AgreementTerms = false

	svc := newTestService(repo, renderer, mailer, nil)
	sub, err := svc.Submit(context.Background(), f)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, sub)

	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.True(t, vf.Fields.Has("businessName"))
	assert.True(t, vf.Fields.Has("agreements"))
	renderer.AssertNotCalled(t, "Render", mock.Anything)
}

func TestSubmitRenderErrorAbortsPipeline(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)

	renderer.On("Render", mock.Anything).Return(nil, errors.New("font missing"))

	svc := newTestService(repo, renderer, mailer, nil)
	sub, err := svc.Submit(context.Background(), completeForm())
	assert.ErrorIs(t, err, ErrRender)
	assert.Nil(t, sub)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitArchiveFailureIsIgnored(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)
	mailer := new(mockMailer)
	archiver := new(mockArchiver)

	renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)
	archiver.On("Archive", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, "/Acme_Retail.pdf")
	}), "application/pdf", mock.Anything).Return(errors.New("access denied"))

	svc := newTestService(repo, renderer, mailer, archiver)
	_, err := svc.Submit(context.Background(), completeForm())
	require.NoError(t, err)
	archiver.AssertExpectations(t)
}

func TestExportRoundTrip(t *testing.T) {
	repo := new(mockRepository)
	renderer := new(mockRenderer)

	stored, err := NewSubmission(completeForm())
	require.NoError(t, err)
	repo.On("GetByID", mock.Anything, stored.ID).Return(&stored, nil)
	renderer.On("Render", mock.MatchedBy(func(f form.FormData) bool {
		return f.BusinessName == "Acme Retail" && len(f.TeamMembers) == 4
	})).Return([]byte("%PDF export"), nil)

	svc := newTestService(repo, renderer, new(mockMailer), nil)
	filename, pdf, err := svc.Export(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme_Retail.pdf", filename)
	assert.Equal(t, []byte("%PDF export"), pdf)
}

func TestExportUnknownID(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, ErrNotFound)

	svc := newTestService(repo, new(mockRenderer), new(mockMailer), nil)
	_, _, err := svc.Export(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkOnboarded(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("MarkOnboarded", mock.Anything, id).Return(nil).Twice()

	svc := newTestService(repo, new(mockRenderer), new(mockMailer), nil)
	require.NoError(t, svc.MarkOnboarded(context.Background(), id))
	// Repeating the call is still a success
	require.NoError(t, svc.MarkOnboarded(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestMarkOnboardedUnknownID(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("MarkOnboarded", mock.Anything, id).Return(ErrNotFound)

	svc := newTestService(repo, new(mockRenderer), new(mockMailer), nil)
	assert.ErrorIs(t, svc.MarkOnboarded(context.Background(), id), ErrNotFound)
}

func TestListPassesThrough(t *testing.T) {
	repo := new(mockRepository)
	subs := []Submission{{ID: uuid.New(), BusinessName: "Acme"}}
	repo.On("List", mock.Anything).Return(subs, nil)

	svc := newTestService(repo, new(mockRenderer), new(mockMailer), nil)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, subs, got)
}

func TestDocumentFilename(t *testing.T) {
	sub := Submission{BusinessName: "Acme Retail  Ltd"}
	assert.Equal(t, "Acme_Retail_Ltd.pdf", sub.DocumentFilename())

	sub = Submission{ID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")}
	assert.Equal(t, "submission_6ba7b810-9dad-11d1-80b4-00c04fd430c8.pdf", sub.DocumentFilename())
}
