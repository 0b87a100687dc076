package consultation

import (
	"context"
	"sync"
	"time"

	"github.com/juaenergy/solar-platform/pkg/logging"
)

// State is the wizard's lifecycle phase.
type State int

const (
	// StateEditing means the user is filling in a step of the form.
	StateEditing State = iota
	// StateSubmitting means a submission is in flight; a second submit
	// attempt during this phase is rejected.
	StateSubmitting
	// StateSucceeded is terminal for a submission: the frozen request and
	// receipt are available and the draft has been reset.
	StateSucceeded
)

const (
	minStep = 1
	maxStep = 6
)

// Submitter delivers a finished draft to the server boundary.
type Submitter interface {
	Submit(ctx context.Context, req *ConsultationRequest) (*Receipt, error)
}

// Wizard owns the consultation draft and the current step pointer. Steps run
// 1..6; single-choice steps auto-advance on selection, the multi-choice
// motivation step does not. Validation is a submit-time gate only; movement
// between steps is never blocked on missing data.
type Wizard struct {
	mu         sync.Mutex
	step       int
	state      State
	draft      ConsultationRequest
	submitter  Submitter
	logger     *logging.Logger
	generation uint64
	lastError  string
	submitted  *ConsultationRequest
	receipt    *Receipt
}

// NewWizard creates a wizard at step 1 with an empty draft.
func NewWizard(submitter Submitter, logger *logging.Logger) *Wizard {
	if logger == nil {
		logger = logging.Default()
	}
	return &Wizard{
		step:      minStep,
		state:     StateEditing,
		submitter: submitter,
		logger:    logger,
	}
}

// Step returns the current step pointer (1..6).
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// State returns the wizard's lifecycle phase.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the in-progress request.
func (w *Wizard) Draft() ConsultationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyRequest(w.draft)
}

// LastError returns the message from the most recent failed submit attempt.
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// Receipt returns the dispatch receipt after a successful submission.
func (w *Wizard) Receipt() *Receipt {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.receipt
}

// Submitted returns the frozen request after a successful submission, for the
// read-only confirmation view.
func (w *Wizard) Submitted() *ConsultationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted == nil {
		return nil
	}
	frozen := copyRequest(*w.submitted)
	return &frozen
}

// SelectSolutionType sets the solution type and auto-advances.
func (w *Wizard) SelectSolutionType(code string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SolutionType = code
	w.advanceLocked()
}

// SelectMonthlyCost sets the cost bracket and auto-advances.
func (w *Wizard) SelectMonthlyCost(code string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.MonthlyCost = code
	w.advanceLocked()
}

// SetCustomAmount records the free-form amount for the "custom" bracket.
func (w *Wizard) SetCustomAmount(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.CustomAmount = v
}

// ToggleMotivation adds or removes a motivation. No auto-advance: the
// motivation step is multi-choice.
func (w *Wizard) ToggleMotivation(code string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.ToggleMotivation(code)
}

// SetLocation records the customer's region.
func (w *Wizard) SetLocation(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Location = v
}

// SetTimeline records how soon the customer wants to proceed.
func (w *Wizard) SetTimeline(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Timeline = v
}

// SetCompanyName records the optional company name.
func (w *Wizard) SetCompanyName(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.CompanyName = v
}

// SetContact records the customer's contact details.
func (w *Wizard) SetContact(name, email, phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Name = name
	w.draft.Email = email
	w.draft.Phone = phone
}

// SetScheduleConsultation toggles the scheduling sub-form. Disabling it
// clears the meeting fields.
func (w *Wizard) SetScheduleConsultation(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.ScheduleConsultation = enabled
	if !enabled {
		w.draft.MeetingType = ""
		w.draft.SetSelectedDateTime(nil)
	}
}

// SetMeetingType records how the scheduled consultation is held.
func (w *Wizard) SetMeetingType(code string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.MeetingType = code
}

// SetMeetingDateTime records the combined instant from the scheduling picker
// (nil clears it). Wire this as the picker's OnChange callback.
func (w *Wizard) SetMeetingDateTime(t *time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SetSelectedDateTime(t)
}

// Advance moves forward one step, capped at the final step.
func (w *Wizard) Advance() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.advanceLocked()
}

// Retreat moves back one step, floored at the first step.
func (w *Wizard) Retreat() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > minStep {
		w.step--
	}
}

func (w *Wizard) advanceLocked() {
	if w.step < maxStep {
		w.step++
	}
}

// Submit validates the draft and, when clean, delivers it through the
// Submitter. Validation failures return a *ValidationError listing every
// violated rule and leave the draft intact. A submission already in flight
// makes Submit a no-op returning ErrSubmissionInFlight. A response arriving
// after Reset has been called is discarded.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}

	draft := copyRequest(w.draft)
	if err := draft.Validate(); err != nil {
		w.lastError = err.Error()
		w.state = StateEditing
		w.step = maxStep
		w.mu.Unlock()
		return err
	}

	w.state = StateSubmitting
	w.lastError = ""
	gen := w.generation
	w.mu.Unlock()

	receipt, err := w.submitter.Submit(ctx, &draft)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generation != gen {
		// The wizard was reset while the call was in flight; the response
		// belongs to a draft that no longer exists.
		w.logger.Warn("discarding stale submission response")
		return nil
	}

	if err != nil {
		w.state = StateEditing
		w.step = maxStep
		w.lastError = err.Error()
		return err
	}

	w.submitted = &draft
	w.receipt = receipt
	w.state = StateSucceeded
	w.draft = ConsultationRequest{}
	w.step = minStep
	w.logger.Info("consultation submitted", "name", draft.Name, "scheduled", draft.ScheduleConsultation)
	return nil
}

// Reset clears the wizard back to an empty draft at step 1 and invalidates
// any in-flight submission.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generation++
	w.draft = ConsultationRequest{}
	w.step = minStep
	w.state = StateEditing
	w.lastError = ""
	w.submitted = nil
	w.receipt = nil
}

func copyRequest(r ConsultationRequest) ConsultationRequest {
	out := r
	if r.Motivations != nil {
		out.Motivations = append([]string(nil), r.Motivations...)
	}
	if r.SelectedDateTime != nil {
		t := *r.SelectedDateTime
		out.SelectedDateTime = &t
	}
	return out
}
