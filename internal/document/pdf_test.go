package document

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luvix/onboarding/onboarding-backend/internal/form"
)

func sampleForm() form.FormData {
	f := form.New()
	f.BusinessName = "Acme Retail"
	f.ContactName = "Jordan Baker"
	f.ContactEmail = "jordan@acme.example"
	f.ContactPhone = "+34600111222"
	f.SelectedPlan = "Professional"
	f.Industry = "other"
	f.IndustryOther = "Logistics"
	f.BusinessDescription = "Parcel delivery across Spain."
	f.CommunicationStyle = "professional"
	f.SharePricing = "yes-full"
	f.PricingDetails = "Starter 49 EUR, Pro 99 EUR"
	f.WhatsappNumber = "+34600111333"
	f.WhatsappStatus = "business"
	f.MetaBusinessManager = "have"
	f.MetaBusinessManagerID = "1234567890"
	f.TeamMembers[0] = form.TeamMember{Name: "Sam Ops", Email: "sam@acme.example"}
	f.TopQuestions[0] = "Where is my parcel?"
	f.TopQuestions[1] = "How much does shipping cost?"
	f.TopQuestions[2] = "Do you deliver on weekends?"
	f.LeadInfo = []string{"name", "email"}
	f.AppointmentBooking = "yes"
	f.CalendarEmail = "calendar@acme.example"
	f.EscalationRules = []string{"Angry customer"}
	f.EscalationMessages = "5"
	f.EscalationType = "both"
	f.EscalationContact = "ops@acme.example"
	f.CurrentCRM = "hubspot"
	f.Language = "multi"
	f.LanguageOther = "Catalan"
	f.DataStorage = "eu"
	f.AgreementAuthority = true
	f.AgreementTerms = true
	f.AgreementWhatsApp = true
	f.AgreementAccuracy = true
	f.FullName = "Jordan Baker"
	f.SignatureDate = "2026-08-30"
	return f
}

func collectRows(secs []section) map[string]string {
	rows := make(map[string]string)
	for _, s := range secs {
		for _, r := range s.Rows {
			rows[r.Label] = r.Value
		}
	}
	return rows
}

func TestSectionsCoverEveryField(t *testing.T) {
	rows := collectRows(sections(sampleForm()))

	assert.Equal(t, "Acme Retail", rows["Business Name"])
	assert.Equal(t, "Professional", rows["Plan"])
	assert.Equal(t, "other (Logistics)", rows["Industry"])
	assert.Equal(t, "other (Catalan)", rows["Language Support"])
	assert.Equal(t, "1234567890", rows["Business Manager ID"])
	assert.Equal(t, "calendar@acme.example", rows["Calendar Email"])
	assert.Equal(t, "Yes", rows["Authority to Sign"])
	assert.Equal(t, "Yes", rows["Information Accuracy"])
	assert.Equal(t, "Jordan Baker", rows["Full Name"])
	assert.Equal(t, "2026-08-30", rows["Date"])
}

func TestSectionsPlaceholderForEmptyFields(t *testing.T) {
	secs := sections(form.New())
	rows := collectRows(secs)

	assert.Equal(t, notProvided, rows["Business Name"])
	assert.Equal(t, notProvided, rows["Website"])
	assert.Equal(t, notProvided, rows["Training Date"])
	assert.Equal(t, "No", rows["Terms of Service"])

	for _, s := range secs {
		if s.Title == "Top Customer Questions" || s.Title == "Integrations" {
			assert.Equal(t, []string{notProvided}, s.Bullets, s.Title)
		}
	}
}

func TestSectionsBullets(t *testing.T) {
	secs := sections(sampleForm())
	for _, s := range secs {
		switch s.Title {
		case "Business Operations":
			assert.Contains(t, s.Bullets, "Sam Ops <sam@acme.example>")
		case "Top Customer Questions":
			assert.Len(t, s.Bullets, 3)
		case "Escalation":
			assert.Contains(t, s.Bullets, "Angry customer")
			assert.Contains(t, s.Bullets, "After 5 messages")
		}
	}
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := NewRenderer().Render(sampleForm())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 1000)
}

func TestRenderEmptyForm(t *testing.T) {
	data, err := NewRenderer().Render(form.New())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
