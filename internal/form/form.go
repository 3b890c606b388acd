// Package form implements the onboarding wizard core: the form data
// aggregate collected across ten steps, the per-step validation rules,
// and the step state machine that drives navigation and submission.
package form

// TotalSteps is the number of data-entry steps. Step index TotalSteps is
// the terminal thank-you state.
const TotalSteps = 10

// TeamMember is one of up to four teammates who get platform access.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FormData is the aggregate built up across the wizard. Fields are grouped
// by the step that owns them; later steps never touch earlier fields.
type FormData struct {
	// Step 0: business identity
	BusinessName    string `json:"businessName"`
	Industry        string `json:"industry"`
	IndustryOther   string `json:"industryOther"`
	Website         string `json:"website"`
	ContactName     string `json:"contactName"`
	ContactEmail    string `json:"contactEmail"`
	ContactPhone    string `json:"contactPhone"`
	ContactWhatsApp string `json:"contactWhatsApp"`

	// Step 1: WhatsApp setup
	WhatsappNumber      string `json:"whatsappNumber"`
	WhatsappStatus      string `json:"whatsappStatus"`
	MetaBusinessManager string `json:"metaBusinessManager"`
	MetaBusinessManagerID string `json:"metaBusinessManagerId"`

	// Step 2: operating hours and team
	BusinessHoursStart string       `json:"businessHoursStart"`
	BusinessHoursEnd   string       `json:"businessHoursEnd"`
	Timezone           string       `json:"timezone"`
	MessageVolume      string       `json:"messageVolume"`
	TeamMembers        []TeamMember `json:"teamMembers"`

	// Step 3: AI training inputs
	TopQuestions        []string `json:"topQuestions"`
	BusinessDescription string   `json:"businessDescription"`
	CommunicationStyle  string   `json:"communicationStyle"`
	SharePricing        string   `json:"sharePricing"`
	PricingDetails      string   `json:"pricingDetails"`

	// Step 4: lead management
	LeadInfo           []string `json:"leadInfo"`
	LeadInfoCustom     string   `json:"leadInfoCustom"`
	PriorityLeads      []string `json:"priorityLeads"`
	AppointmentBooking string   `json:"appointmentBooking"`
	CalendarEmail      string   `json:"calendarEmail"`

	// Step 5: escalation rules
	EscalationRules    []string `json:"escalationRules"`
	EscalationMessages string   `json:"escalationMessages"`
	EscalationContact  string   `json:"escalationContact"`
	EscalationType     string   `json:"escalationType"`

	// Step 6: integrations
	CurrentCRM        string   `json:"currentCRM"`
	CRMOther          string   `json:"crmOther"`
	Integrations      []string `json:"integrations"`
	IntegrationsOther string   `json:"integrationsOther"`

	// Step 7: compliance and localization
	Compliance      []string `json:"compliance"`
	ComplianceOther string   `json:"complianceOther"`
	Language        string   `json:"language"`
	LanguageOther   string   `json:"languageOther"`
	DataStorage     string   `json:"dataStorage"`

	// Step 8: launch planning
	GoLiveDate        string `json:"goLiveDate"`
	TrainingDate      string `json:"trainingDate"`
	TrainingAttendees string `json:"trainingAttendees"`
	SelectedPlan      string `json:"selectedPlan"`

	// Step 9: final details and agreement
	SuccessLooks        string   `json:"successLooks"`
	Challenges          string   `json:"challenges"`
	SpecialRequirements string   `json:"specialRequirements"`
	ReferralSource      []string `json:"referralSource"`
	ReferralName        string   `json:"referralName"`
	ReferralOther       string   `json:"referralOther"`
	AgreementAuthority  bool     `json:"agreementAuthority"`
	AgreementTerms      bool     `json:"agreementTerms"`
	AgreementWhatsApp   bool     `json:"agreementWhatsApp"`
	AgreementAccuracy   bool     `json:"agreementAccuracy"`
	FullName            string   `json:"fullName"`
	SignatureDate       string   `json:"signatureDate"`
}

// New returns the all-defaults aggregate: every container initialized
// empty (never nil), four team member slots, five question slots, all
// agreement flags false.
func New() FormData {
	return FormData{
		TeamMembers:    make([]TeamMember, 4),
		TopQuestions:   make([]string, 5),
		LeadInfo:       []string{},
		PriorityLeads:  []string{},
		EscalationRules: []string{},
		Integrations:   []string{},
		Compliance:     []string{},
		ReferralSource: []string{},
	}
}

// Normalize restores container defaults on an aggregate that arrived over
// the wire, so validators and renderers never see nil slices.
func (f FormData) Normalize() FormData {
	if f.TeamMembers == nil {
		f.TeamMembers = make([]TeamMember, 4)
	}
	if f.TopQuestions == nil {
		f.TopQuestions = make([]string, 5)
	}
	if f.LeadInfo == nil {
		f.LeadInfo = []string{}
	}
	if f.PriorityLeads == nil {
		f.PriorityLeads = []string{}
	}
	if f.EscalationRules == nil {
		f.EscalationRules = []string{}
	}
	if f.Integrations == nil {
		f.Integrations = []string{}
	}
	if f.Compliance == nil {
		f.Compliance = []string{}
	}
	if f.ReferralSource == nil {
		f.ReferralSource = []string{}
	}
	return f
}
