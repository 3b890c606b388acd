// Package submissions owns the onboarding submission lifecycle: the
// processing pipeline behind the public submit endpoint and the admin
// read side on top of the persisted records.
package submissions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"luvix/onboarding/onboarding-backend/internal/form"
)

// Submission is one persisted onboarding form. Frequently queried fields
// are lifted into columns; the full aggregate rides along as JSON so no
// submitted answer is ever lost to schema drift.
type Submission struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessName string         `gorm:"index" json:"businessName"`
	ContactName  string         `json:"contactName"`
	ContactEmail string         `json:"contactEmail"`
	SelectedPlan string         `json:"selectedPlan"`
	FormData     datatypes.JSON `json:"formData"`
	Onboarded    bool           `gorm:"default:false" json:"onboarded"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// NewSubmission freezes an aggregate into a record ready to persist.
func NewSubmission(f form.FormData) (Submission, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return Submission{}, fmt.Errorf("failed to encode form data: %w", err)
	}
	return Submission{
		ID:           uuid.New(),
		BusinessName: f.BusinessName,
		ContactName:  f.ContactName,
		ContactEmail: f.ContactEmail,
		SelectedPlan: f.SelectedPlan,
		FormData:     datatypes.JSON(raw),
	}, nil
}

// Form decodes the stored aggregate.
func (s Submission) Form() (form.FormData, error) {
	var f form.FormData
	if err := json.Unmarshal(s.FormData, &f); err != nil {
		return form.FormData{}, fmt.Errorf("failed to decode form data for submission %s: %w", s.ID, err)
	}
	return f.Normalize(), nil
}

// DocumentFilename derives the export filename from the business name,
// e.g. "Acme Retail Ltd" becomes "Acme_Retail_Ltd.pdf".
func (s Submission) DocumentFilename() string {
	name := strings.Join(strings.Fields(s.BusinessName), "_")
	if name == "" {
		name = "submission_" + s.ID.String()
	}
	return name + ".pdf"
}
