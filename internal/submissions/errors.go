package submissions

import "errors"

var (
	// ErrConfig means the notification channel is not configured; the
	// pipeline refuses to start rather than lose a submission.
	ErrConfig = errors.New("notification channel is not configured")
	// ErrValidation means the submitted aggregate failed server-side
	// validation.
	ErrValidation = errors.New("submission failed validation")
	// ErrRender means the PDF could not be generated.
	ErrRender = errors.New("failed to render submission document")
	// ErrNotification means the notification email could not be sent.
	// This fails the whole submission.
	ErrNotification = errors.New("failed to send notification email")
	// ErrNotFound means no submission exists with the given id.
	ErrNotFound = errors.New("submission not found")
)
