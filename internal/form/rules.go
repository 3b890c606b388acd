package form

import (
	"regexp"
	"strings"
)

// ValidationErrors maps a field name to a human-readable message. A step's
// validation fully replaces the previous set; it never merges.
type ValidationErrors map[string]string

// Has reports whether a field currently carries an error.
func (e ValidationErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Rule is one declarative validation check. When is an optional
// applicability predicate (nil means the rule always applies); Valid
// reports whether the aggregate satisfies the rule.
type Rule struct {
	Field   string
	Message string
	When    func(FormData) bool
	Valid   func(FormData) bool
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

func required(field, label string, get func(FormData) string) Rule {
	return Rule{
		Field:   field,
		Message: label + " is required",
		Valid:   func(f FormData) bool { return notBlank(get(f)) },
	}
}

// stepRules holds the checklist for each data-entry step. Step 9's rules
// run at submit time; submit is the only way off the final step.
var stepRules = [TotalSteps][]Rule{
	0: {
		required("businessName", "Business name", func(f FormData) string { return f.BusinessName }),
		required("industry", "Industry", func(f FormData) string { return f.Industry }),
		{
			Field:   "industryOther",
			Message: "Please specify your industry",
			When:    func(f FormData) bool { return f.Industry == "other" },
			Valid:   func(f FormData) bool { return notBlank(f.IndustryOther) },
		},
		required("contactName", "Contact name", func(f FormData) string { return f.ContactName }),
		{
			Field:   "contactEmail",
			Message: "A valid contact email is required",
			Valid:   func(f FormData) bool { return emailRe.MatchString(strings.TrimSpace(f.ContactEmail)) },
		},
		required("contactPhone", "Contact phone", func(f FormData) string { return f.ContactPhone }),
	},
	1: {
		required("whatsappNumber", "WhatsApp number", func(f FormData) string { return f.WhatsappNumber }),
		required("whatsappStatus", "WhatsApp status", func(f FormData) string { return f.WhatsappStatus }),
		required("metaBusinessManager", "Meta Business Manager selection", func(f FormData) string { return f.MetaBusinessManager }),
	},
	2: {
		required("businessHoursStart", "Opening time", func(f FormData) string { return f.BusinessHoursStart }),
		required("businessHoursEnd", "Closing time", func(f FormData) string { return f.BusinessHoursEnd }),
		required("timezone", "Timezone", func(f FormData) string { return f.Timezone }),
		required("messageVolume", "Message volume", func(f FormData) string { return f.MessageVolume }),
		{
			Field:   "teamMembers",
			Message: "Each listed team member needs a valid email",
			Valid: func(f FormData) bool {
				for _, m := range f.TeamMembers {
					if notBlank(m.Name) && !emailRe.MatchString(strings.TrimSpace(m.Email)) {
						return false
					}
				}
				return true
			},
		},
	},
	3: {
		{
			Field:   "topQuestions",
			Message: "Provide at least 3 common customer questions",
			Valid: func(f FormData) bool {
				filled := 0
				for _, q := range f.TopQuestions {
					if notBlank(q) {
						filled++
					}
				}
				return filled >= 3
			},
		},
		required("businessDescription", "Business description", func(f FormData) string { return f.BusinessDescription }),
		required("communicationStyle", "Communication style", func(f FormData) string { return f.CommunicationStyle }),
		required("sharePricing", "Pricing preference", func(f FormData) string { return f.SharePricing }),
		{
			Field:   "pricingDetails",
			Message: "Pricing details are required when the AI shares pricing",
			When:    func(f FormData) bool { return strings.HasPrefix(f.SharePricing, "yes") },
			Valid:   func(f FormData) bool { return notBlank(f.PricingDetails) },
		},
	},
	4: {
		{
			Field:   "leadInfo",
			Message: "Select at least one piece of lead information to collect",
			Valid:   func(f FormData) bool { return len(f.LeadInfo) > 0 || notBlank(f.LeadInfoCustom) },
		},
		required("appointmentBooking", "Appointment booking preference", func(f FormData) string { return f.AppointmentBooking }),
		{
			Field:   "calendarEmail",
			Message: "Calendar email is required for appointment booking",
			When:    func(f FormData) bool { return f.AppointmentBooking == "yes" },
			Valid:   func(f FormData) bool { return emailRe.MatchString(strings.TrimSpace(f.CalendarEmail)) },
		},
	},
	5: {
		{
			Field:   "escalationRules",
			Message: "Select at least one escalation trigger",
			Valid:   func(f FormData) bool { return len(f.EscalationRules) > 0 || notBlank(f.EscalationMessages) },
		},
		required("escalationType", "Notification preference", func(f FormData) string { return f.EscalationType }),
		required("escalationContact", "Escalation contact", func(f FormData) string { return f.EscalationContact }),
	},
	6: {
		required("currentCRM", "Current CRM", func(f FormData) string { return f.CurrentCRM }),
		{
			Field:   "crmOther",
			Message: "Please specify your CRM",
			When:    func(f FormData) bool { return f.CurrentCRM == "other" },
			Valid:   func(f FormData) bool { return notBlank(f.CRMOther) },
		},
	},
	7: {
		{
			Field:   "compliance",
			Message: "Select applicable compliance requirements (or None)",
			Valid:   func(f FormData) bool { return len(f.Compliance) > 0 || notBlank(f.ComplianceOther) },
		},
		required("language", "Language support", func(f FormData) string { return f.Language }),
		{
			Field:   "languageOther",
			Message: "List the languages you need",
			When:    func(f FormData) bool { return f.Language == "multi" },
			Valid:   func(f FormData) bool { return notBlank(f.LanguageOther) },
		},
		required("dataStorage", "Data storage preference", func(f FormData) string { return f.DataStorage }),
	},
	8: {
		required("goLiveDate", "Target go-live date", func(f FormData) string { return f.GoLiveDate }),
		required("selectedPlan", "Plan selection", func(f FormData) string { return f.SelectedPlan }),
	},
	9: {
		required("successLooks", "Success description", func(f FormData) string { return f.SuccessLooks }),
		{
			Field:   "agreements",
			Message: "All agreements must be accepted before submitting",
			Valid: func(f FormData) bool {
				return f.AgreementAuthority && f.AgreementTerms && f.AgreementWhatsApp && f.AgreementAccuracy
			},
		},
		required("fullName", "Signature name", func(f FormData) string { return f.FullName }),
		required("signatureDate", "Signature date", func(f FormData) string { return f.SignatureDate }),
	},
}

// Validate runs the rule checklist for one step. It reads only that step's
// slice of the aggregate and returns an empty set when the step is valid.
func Validate(step int, f FormData) ValidationErrors {
	errs := ValidationErrors{}
	if step < 0 || step >= TotalSteps {
		return errs
	}
	for _, r := range stepRules[step] {
		if r.When != nil && !r.When(f) {
			continue
		}
		if !r.Valid(f) {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

// ValidateAll runs every step's checklist, as the server does on a
// submitted aggregate. The client enforces steps one at a time; the server
// trusts nothing.
func ValidateAll(f FormData) ValidationErrors {
	errs := ValidationErrors{}
	for step := 0; step < TotalSteps; step++ {
		for field, msg := range Validate(step, f) {
			errs[field] = msg
		}
	}
	return errs
}
