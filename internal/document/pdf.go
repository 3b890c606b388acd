// Package document renders a submitted onboarding form into the branded
// PDF that travels with the notification email and backs the admin export.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"luvix/onboarding/onboarding-backend/internal/form"
)

const notProvided = "Not Provided"

// row is one label/value line inside a section.
type row struct {
	Label string
	Value string
	Long  bool // long-form values wrap across the page
}

// section is one titled block of the document. A section carries rows,
// bullets, or both.
type section struct {
	Title   string
	Rows    []row
	Bullets []string
}

// Renderer generates submission PDFs.
type Renderer struct {
	brand     [3]int
	dark      [3]int
	stripe    [3]int
	marginL   float64
	marginTop float64
}

// NewRenderer creates a renderer with the LUVIX brand palette.
func NewRenderer() *Renderer {
	return &Renderer{
		brand:     [3]int{21, 135, 63},
		dark:      [3]int{45, 45, 45},
		stripe:    [3]int{245, 245, 245},
		marginL:   15,
		marginTop: 15,
	}
}

func value(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

func valueWithOther(s, other string) string {
	if s == "other" && strings.TrimSpace(other) != "" {
		return fmt.Sprintf("other (%s)", other)
	}
	return value(s)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func bullets(items []string, extra ...string) []string {
	var out []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	for _, it := range extra {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return []string{notProvided}
	}
	return out
}

// sections lays out every aggregate field into the document structure.
// Empty optional fields render the "Not Provided" placeholder rather than
// being omitted, so an export always mirrors the submitted field set.
func sections(f form.FormData) []section {
	f = f.Normalize()

	var team []string
	for _, m := range f.TeamMembers {
		if strings.TrimSpace(m.Name) != "" || strings.TrimSpace(m.Email) != "" {
			team = append(team, strings.TrimSpace(fmt.Sprintf("%s <%s>", value(m.Name), value(m.Email))))
		}
	}

	var escalation []string
	escalation = append(escalation, f.EscalationRules...)
	if strings.TrimSpace(f.EscalationMessages) != "" {
		escalation = append(escalation, fmt.Sprintf("After %s messages", f.EscalationMessages))
	}

	var referrals []string
	referrals = append(referrals, f.ReferralSource...)
	if strings.TrimSpace(f.ReferralName) != "" {
		referrals = append(referrals, fmt.Sprintf("Referral from %s", f.ReferralName))
	}

	return []section{
		{
			Title: "Contact Information",
			Rows: []row{
				{Label: "Business Name", Value: value(f.BusinessName)},
				{Label: "Contact Name", Value: value(f.ContactName)},
				{Label: "Email Address", Value: value(f.ContactEmail)},
				{Label: "Phone Number", Value: value(f.ContactPhone)},
				{Label: "WhatsApp Number", Value: value(f.ContactWhatsApp)},
			},
		},
		{
			Title: "Selected Plan",
			Rows: []row{
				{Label: "Plan", Value: value(f.SelectedPlan)},
			},
		},
		{
			Title: "Business Information",
			Rows: []row{
				{Label: "Industry", Value: valueWithOther(f.Industry, f.IndustryOther)},
				{Label: "Website", Value: value(f.Website)},
				{Label: "Communication Style", Value: value(f.CommunicationStyle)},
				{Label: "Business Description", Value: value(f.BusinessDescription), Long: true},
				{Label: "AI Shares Pricing", Value: value(f.SharePricing)},
				{Label: "Pricing Details", Value: value(f.PricingDetails), Long: true},
			},
		},
		{
			Title: "WhatsApp Setup",
			Rows: []row{
				{Label: "WhatsApp Number", Value: value(f.WhatsappNumber)},
				{Label: "Current Status", Value: value(f.WhatsappStatus)},
				{Label: "Meta Business Manager", Value: value(f.MetaBusinessManager)},
				{Label: "Business Manager ID", Value: value(f.MetaBusinessManagerID)},
			},
		},
		{
			Title: "Business Operations",
			Rows: []row{
				{Label: "Opening Time", Value: value(f.BusinessHoursStart)},
				{Label: "Closing Time", Value: value(f.BusinessHoursEnd)},
				{Label: "Timezone", Value: value(f.Timezone)},
				{Label: "Daily Message Volume", Value: value(f.MessageVolume)},
			},
			Bullets: bullets(team),
		},
		{
			Title:   "Top Customer Questions",
			Bullets: bullets(f.TopQuestions),
		},
		{
			Title:   "Lead Information",
			Bullets: bullets(f.LeadInfo, f.LeadInfoCustom),
			Rows: []row{
				{Label: "Appointment Booking", Value: value(f.AppointmentBooking)},
				{Label: "Calendar Email", Value: value(f.CalendarEmail)},
			},
		},
		{
			Title:   "High Priority Lead Indicators",
			Bullets: bullets(f.PriorityLeads),
		},
		{
			Title:   "Escalation",
			Bullets: bullets(escalation),
			Rows: []row{
				{Label: "Notification Channel", Value: value(f.EscalationType)},
				{Label: "Escalation Contact", Value: value(f.EscalationContact)},
			},
		},
		{
			Title:   "Integrations",
			Bullets: bullets(f.Integrations, f.IntegrationsOther),
			Rows: []row{
				{Label: "Current CRM", Value: valueWithOther(f.CurrentCRM, f.CRMOther)},
			},
		},
		{
			Title:   "Compliance Requirements",
			Bullets: bullets(f.Compliance, f.ComplianceOther),
			Rows: []row{
				{Label: "Language Support", Value: valueWithOther(f.Language, f.LanguageOther)},
				{Label: "Data Storage", Value: value(f.DataStorage)},
			},
		},
		{
			Title: "Project Timeline",
			Rows: []row{
				{Label: "Training Date", Value: value(f.TrainingDate)},
				{Label: "Go Live Date", Value: value(f.GoLiveDate)},
				{Label: "Training Attendees", Value: value(f.TrainingAttendees)},
			},
		},
		{
			Title: "Goals & Requirements",
			Rows: []row{
				{Label: "What Success Looks Like", Value: value(f.SuccessLooks), Long: true},
				{Label: "Current Challenges", Value: value(f.Challenges), Long: true},
				{Label: "Special Requirements", Value: value(f.SpecialRequirements), Long: true},
			},
		},
		{
			Title:   "Referral Source",
			Bullets: bullets(referrals, f.ReferralOther),
		},
		{
			Title: "Agreement",
			Rows: []row{
				{Label: "Authority to Sign", Value: yesNo(f.AgreementAuthority)},
				{Label: "Terms of Service", Value: yesNo(f.AgreementTerms)},
				{Label: "WhatsApp API Policies", Value: yesNo(f.AgreementWhatsApp)},
				{Label: "Information Accuracy", Value: yesNo(f.AgreementAccuracy)},
			},
		},
		{
			Title: "Signature",
			Rows: []row{
				{Label: "Full Name", Value: value(f.FullName)},
				{Label: "Date", Value: value(f.SignatureDate)},
			},
		},
	}
}

// Render generates the submission PDF.
func (r *Renderer) Render(f form.FormData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(r.marginL, r.marginTop, r.marginL)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*r.marginL

	// Brand header band
	pdf.SetFillColor(r.brand[0], r.brand[1], r.brand[2])
	pdf.Rect(0, 0, pageW, 32, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(r.marginL, 8)
	pdf.CellFormat(0, 10, "LUVIX", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(r.marginL)
	pdf.CellFormat(0, 6, "Client Onboarding System", "", 1, "L", false, 0, "")
	pdf.SetY(40)

	// Document title
	pdf.SetTextColor(r.brand[0], r.brand[1], r.brand[2])
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Onboarding Form Submission", "", 1, "C", false, 0, "")
	pdf.SetTextColor(r.dark[0], r.dark[1], r.dark[2])
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Submitted: %s", value(f.SignatureDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, sec := range sections(f) {
		r.sectionHeader(pdf, contentW, sec.Title)
		for i, rw := range sec.Rows {
			r.keyRow(pdf, contentW, rw, i%2 == 0)
		}
		for _, b := range sec.Bullets {
			r.bullet(pdf, b)
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render submission pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) sectionHeader(pdf *gofpdf.Fpdf, width float64, title string) {
	if pdf.GetY() > 250 {
		pdf.AddPage()
	}
	pdf.SetFillColor(r.brand[0], r.brand[1], r.brand[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 9, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func (r *Renderer) keyRow(pdf *gofpdf.Fpdf, width float64, rw row, striped bool) {
	pdf.SetTextColor(r.dark[0], r.dark[1], r.dark[2])
	if rw.Long {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(width, 7, rw.Label+":", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(width, 5, rw.Value, "", "L", false)
		pdf.Ln(1)
		return
	}
	if striped {
		pdf.SetFillColor(r.stripe[0], r.stripe[1], r.stripe[2])
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, rw.Label+":", "", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(width-55, 7, rw.Value, "", 1, "L", true, 0, "")
}

func (r *Renderer) bullet(pdf *gofpdf.Fpdf, text string) {
	pdf.SetTextColor(r.dark[0], r.dark[1], r.dark[2])
	pdf.SetFont("Helvetica", "", 10)
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.SetFillColor(r.brand[0], r.brand[1], r.brand[2])
	pdf.Circle(x+2, y+3, 1, "F")
	pdf.SetX(x + 6)
	pdf.MultiCell(0, 6, text, "", "L", false)
}
