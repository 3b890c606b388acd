package form

// Patch is a partial update to the aggregate. Nil fields are untouched;
// the wizard applies a patch through a single merge entry point so each
// step's handlers never mutate the aggregate directly.
type Patch struct {
	BusinessName    *string `json:"businessName,omitempty"`
	Industry        *string `json:"industry,omitempty"`
	IndustryOther   *string `json:"industryOther,omitempty"`
	Website         *string `json:"website,omitempty"`
	ContactName     *string `json:"contactName,omitempty"`
	ContactEmail    *string `json:"contactEmail,omitempty"`
	ContactPhone    *string `json:"contactPhone,omitempty"`
	ContactWhatsApp *string `json:"contactWhatsApp,omitempty"`

	WhatsappNumber        *string `json:"whatsappNumber,omitempty"`
	WhatsappStatus        *string `json:"whatsappStatus,omitempty"`
	MetaBusinessManager   *string `json:"metaBusinessManager,omitempty"`
	MetaBusinessManagerID *string `json:"metaBusinessManagerId,omitempty"`

	BusinessHoursStart *string      `json:"businessHoursStart,omitempty"`
	BusinessHoursEnd   *string      `json:"businessHoursEnd,omitempty"`
	Timezone           *string      `json:"timezone,omitempty"`
	MessageVolume      *string      `json:"messageVolume,omitempty"`
	TeamMembers        []TeamMember `json:"teamMembers,omitempty"`

	TopQuestions        []string `json:"topQuestions,omitempty"`
	BusinessDescription *string  `json:"businessDescription,omitempty"`
	CommunicationStyle  *string  `json:"communicationStyle,omitempty"`
	SharePricing        *string  `json:"sharePricing,omitempty"`
	PricingDetails      *string  `json:"pricingDetails,omitempty"`

	LeadInfo           []string `json:"leadInfo,omitempty"`
	LeadInfoCustom     *string  `json:"leadInfoCustom,omitempty"`
	PriorityLeads      []string `json:"priorityLeads,omitempty"`
	AppointmentBooking *string  `json:"appointmentBooking,omitempty"`
	CalendarEmail      *string  `json:"calendarEmail,omitempty"`

	EscalationRules    []string `json:"escalationRules,omitempty"`
	EscalationMessages *string  `json:"escalationMessages,omitempty"`
	EscalationContact  *string  `json:"escalationContact,omitempty"`
	EscalationType     *string  `json:"escalationType,omitempty"`

	CurrentCRM        *string  `json:"currentCRM,omitempty"`
	CRMOther          *string  `json:"crmOther,omitempty"`
	Integrations      []string `json:"integrations,omitempty"`
	IntegrationsOther *string  `json:"integrationsOther,omitempty"`

	Compliance      []string `json:"compliance,omitempty"`
	ComplianceOther *string  `json:"complianceOther,omitempty"`
	Language        *string  `json:"language,omitempty"`
	LanguageOther   *string  `json:"languageOther,omitempty"`
	DataStorage     *string  `json:"dataStorage,omitempty"`

	GoLiveDate        *string `json:"goLiveDate,omitempty"`
	TrainingDate      *string `json:"trainingDate,omitempty"`
	TrainingAttendees *string `json:"trainingAttendees,omitempty"`
	SelectedPlan      *string `json:"selectedPlan,omitempty"`

	SuccessLooks        *string  `json:"successLooks,omitempty"`
	Challenges          *string  `json:"challenges,omitempty"`
	SpecialRequirements *string  `json:"specialRequirements,omitempty"`
	ReferralSource      []string `json:"referralSource,omitempty"`
	ReferralName        *string  `json:"referralName,omitempty"`
	ReferralOther       *string  `json:"referralOther,omitempty"`
	AgreementAuthority  *bool    `json:"agreementAuthority,omitempty"`
	AgreementTerms      *bool    `json:"agreementTerms,omitempty"`
	AgreementWhatsApp   *bool    `json:"agreementWhatsApp,omitempty"`
	AgreementAccuracy   *bool    `json:"agreementAccuracy,omitempty"`
	FullName            *string  `json:"fullName,omitempty"`
	SignatureDate       *string  `json:"signatureDate,omitempty"`
}

// Apply shallow-merges the patch into a copy of the aggregate and returns
// the merged copy along with the names of the fields the patch touched.
func (f FormData) Apply(p Patch) (FormData, []string) {
	var touched []string
	set := func(dst *string, src *string, name string) {
		if src != nil {
			*dst = *src
			touched = append(touched, name)
		}
	}
	setBool := func(dst *bool, src *bool, name string) {
		if src != nil {
			*dst = *src
			touched = append(touched, name)
		}
	}

	set(&f.BusinessName, p.BusinessName, "businessName")
	set(&f.Industry, p.Industry, "industry")
	set(&f.IndustryOther, p.IndustryOther, "industryOther")
	set(&f.Website, p.Website, "website")
	set(&f.ContactName, p.ContactName, "contactName")
	set(&f.ContactEmail, p.ContactEmail, "contactEmail")
	set(&f.ContactPhone, p.ContactPhone, "contactPhone")
	set(&f.ContactWhatsApp, p.ContactWhatsApp, "contactWhatsApp")

	set(&f.WhatsappNumber, p.WhatsappNumber, "whatsappNumber")
	set(&f.WhatsappStatus, p.WhatsappStatus, "whatsappStatus")
	set(&f.MetaBusinessManager, p.MetaBusinessManager, "metaBusinessManager")
	set(&f.MetaBusinessManagerID, p.MetaBusinessManagerID, "metaBusinessManagerId")

	set(&f.BusinessHoursStart, p.BusinessHoursStart, "businessHoursStart")
	set(&f.BusinessHoursEnd, p.BusinessHoursEnd, "businessHoursEnd")
	set(&f.Timezone, p.Timezone, "timezone")
	set(&f.MessageVolume, p.MessageVolume, "messageVolume")
	if p.TeamMembers != nil {
		f.TeamMembers = p.TeamMembers
		touched = append(touched, "teamMembers")
	}

	if p.TopQuestions != nil {
		f.TopQuestions = p.TopQuestions
		touched = append(touched, "topQuestions")
	}
	set(&f.BusinessDescription, p.BusinessDescription, "businessDescription")
	set(&f.CommunicationStyle, p.CommunicationStyle, "communicationStyle")
	set(&f.SharePricing, p.SharePricing, "sharePricing")
	set(&f.PricingDetails, p.PricingDetails, "pricingDetails")

	if p.LeadInfo != nil {
		f.LeadInfo = p.LeadInfo
		touched = append(touched, "leadInfo")
	}
	set(&f.LeadInfoCustom, p.LeadInfoCustom, "leadInfoCustom")
	if p.PriorityLeads != nil {
		f.PriorityLeads = p.PriorityLeads
		touched = append(touched, "priorityLeads")
	}
	set(&f.AppointmentBooking, p.AppointmentBooking, "appointmentBooking")
	set(&f.CalendarEmail, p.CalendarEmail, "calendarEmail")

	if p.EscalationRules != nil {
		f.EscalationRules = p.EscalationRules
		touched = append(touched, "escalationRules")
	}
	set(&f.EscalationMessages, p.EscalationMessages, "escalationMessages")
	set(&f.EscalationContact, p.EscalationContact, "escalationContact")
	set(&f.EscalationType, p.EscalationType, "escalationType")

	set(&f.CurrentCRM, p.CurrentCRM, "currentCRM")
	set(&f.CRMOther, p.CRMOther, "crmOther")
	if p.Integrations != nil {
		f.Integrations = p.Integrations
		touched = append(touched, "integrations")
	}
	set(&f.IntegrationsOther, p.IntegrationsOther, "integrationsOther")

	if p.Compliance != nil {
		f.Compliance = p.Compliance
		touched = append(touched, "compliance")
	}
	set(&f.ComplianceOther, p.ComplianceOther, "complianceOther")
	set(&f.Language, p.Language, "language")
	set(&f.LanguageOther, p.LanguageOther, "languageOther")
	set(&f.DataStorage, p.DataStorage, "dataStorage")

	set(&f.GoLiveDate, p.GoLiveDate, "goLiveDate")
	set(&f.TrainingDate, p.TrainingDate, "trainingDate")
	set(&f.TrainingAttendees, p.TrainingAttendees, "trainingAttendees")
	set(&f.SelectedPlan, p.SelectedPlan, "selectedPlan")

	set(&f.SuccessLooks, p.SuccessLooks, "successLooks")
	set(&f.Challenges, p.Challenges, "challenges")
	set(&f.SpecialRequirements, p.SpecialRequirements, "specialRequirements")
	if p.ReferralSource != nil {
		f.ReferralSource = p.ReferralSource
		touched = append(touched, "referralSource")
	}
	set(&f.ReferralName, p.ReferralName, "referralName")
	set(&f.ReferralOther, p.ReferralOther, "referralOther")
	setBool(&f.AgreementAuthority, p.AgreementAuthority, "agreementAuthority")
	setBool(&f.AgreementTerms, p.AgreementTerms, "agreementTerms")
	setBool(&f.AgreementWhatsApp, p.AgreementWhatsApp, "agreementWhatsApp")
	setBool(&f.AgreementAccuracy, p.AgreementAccuracy, "agreementAccuracy")
	set(&f.FullName, p.FullName, "fullName")
	set(&f.SignatureDate, p.SignatureDate, "signatureDate")

	return f, touched
}
