package form

import (
	"context"
	"errors"
	"strings"
)

// Direction records which way the last transition moved.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

var (
	// ErrStepInvalid is returned by Next when the current step fails
	// validation; the error set is published on the wizard.
	ErrStepInvalid = errors.New("current step has validation errors")
	// ErrCompleted is returned for any mutation attempted after a
	// successful submission.
	ErrCompleted = errors.New("wizard already completed")
)

// SubmitFunc hands the frozen aggregate to the submission pipeline.
type SubmitFunc func(context.Context, FormData) error

// Wizard is the step state machine. It owns the aggregate, the current
// step index, the last transition direction, and the current error set.
// It is an explicitly passed value, not a singleton.
type Wizard struct {
	step      int
	direction Direction
	data      FormData
	errors    ValidationErrors

	// onTransition fires after every completed step change, e.g. to
	// reset scroll position. Optional.
	onTransition func(step int)
}

// NewWizard returns a wizard at step 0, direction forward, all-defaults
// aggregate, empty error set.
func NewWizard() *Wizard {
	return &Wizard{
		direction: Forward,
		data:      New(),
		errors:    ValidationErrors{},
	}
}

// Step returns the current step index; TotalSteps means completed.
func (w *Wizard) Step() int { return w.step }

// Direction returns the direction of the last transition.
func (w *Wizard) Direction() Direction { return w.direction }

// Data returns the current aggregate snapshot.
func (w *Wizard) Data() FormData { return w.data }

// Errors returns the current validation error set.
func (w *Wizard) Errors() ValidationErrors { return w.errors }

// Completed reports whether the wizard reached the terminal state.
func (w *Wizard) Completed() bool { return w.step >= TotalSteps }

// OnTransition registers a hook fired after each completed transition.
func (w *Wizard) OnTransition(fn func(step int)) { w.onTransition = fn }

// Update merges a patch into the aggregate and clears errors only for the
// fields the patch touched. Other fields' errors stay put.
func (w *Wizard) Update(p Patch) error {
	if w.Completed() {
		return ErrCompleted
	}
	data, touched := w.data.Apply(p)
	w.data = data
	for _, field := range touched {
		delete(w.errors, field)
		// The four agreement flags share one error entry
		if strings.HasPrefix(field, "agreement") {
			delete(w.errors, "agreements")
		}
	}
	return nil
}

// Next validates the current step. On errors it publishes them and stays.
// On the last data step a clean validation triggers the submit callback;
// the terminal state is reached only when submit succeeds. Otherwise the
// wizard advances one step.
func (w *Wizard) Next(ctx context.Context, submit SubmitFunc) error {
	if w.Completed() {
		return ErrCompleted
	}

	errs := Validate(w.step, w.data)
	if len(errs) > 0 {
		w.errors = errs
		return ErrStepInvalid
	}
	w.errors = ValidationErrors{}

	if w.step == TotalSteps-1 {
		if err := submit(ctx, w.data); err != nil {
			// Stay on the final step so the user can retry
			return err
		}
	}

	w.step++
	w.direction = Forward
	if w.onTransition != nil {
		w.onTransition(w.step)
	}
	return nil
}

// Back moves one step backward without validating. It is a no-op at step
// 0 and after completion.
func (w *Wizard) Back() {
	if w.step == 0 || w.Completed() {
		return
	}
	w.step--
	w.direction = Backward
	if w.onTransition != nil {
		w.onTransition(w.step)
	}
}
