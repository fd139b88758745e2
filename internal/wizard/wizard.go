// Package wizard models the four-step public booking flow: pick a service,
// pick a date, pick a time, confirm. The state here is the per-visit
// session the widget page drives; everything authoritative lives in the
// booking backend.
package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Step is one of the four sequential wizard panels.
type Step int

const (
	StepService Step = iota + 1
	StepCalendar
	StepSlot
	StepConfirm
)

const stepCount = 4

// Service is the subset of a catalog service the wizard needs for its
// summary panel.
type Service struct {
	ID          int
	Name        string
	DurationMin int
}

// Summary is the confirmation panel's view of the current selection.
type Summary struct {
	ServiceName string
	Duration    string
	SlotDisplay string
}

// ValidationError blocks a submission and carries the message surfaced to
// the visitor.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: %s: %s", e.Field, e.Message)
}

// State is one visitor's progress through the wizard. It is created on
// page load and discarded on navigation; nothing here survives a reload.
type State struct {
	step        Step
	service     *Service
	date        string
	slot        string
	slotDisplay string
	confirmed   bool
	intakeKey   string
}

// New starts a fresh wizard at the service step. The intake key makes the
// eventual submission idempotent on the backend.
func New() *State {
	return &State{
		step:      StepService,
		intakeKey: uuid.NewString(),
	}
}

// Step returns the currently visible panel.
func (s *State) Step() Step {
	return s.step
}

// Progress returns the progress-bar fraction for the current step.
func (s *State) Progress() float64 {
	return float64(s.step) / stepCount
}

// IntakeKey returns the idempotency key attached to the submission.
func (s *State) IntakeKey() string {
	return s.intakeKey
}

// GoToStep switches the visible panel. Out-of-range targets are rejected,
// and the confirm panel stays locked until a time has been chosen.
func (s *State) GoToStep(n Step) error {
	if n < StepService || n > StepConfirm {
		return fmt.Errorf("wizard: no such step %d", n)
	}
	if n == StepConfirm && s.slot == "" {
		return &ValidationError{Field: "slot", Message: "escolha um horário antes de confirmar"}
	}
	s.step = n
	return nil
}

// Next advances to the following panel.
func (s *State) Next() error {
	return s.GoToStep(s.step + 1)
}

// Prev returns to the previous panel, never below the first.
func (s *State) Prev() {
	if s.step > StepService {
		s.step--
	}
}

// SelectService records the chosen service and clears any previously
// chosen slot, since slot availability depends on the service duration.
func (s *State) SelectService(svc Service) {
	s.service = &svc
	s.slot = ""
	s.slotDisplay = ""
}

// SelectDate records the chosen calendar date (YYYY-MM-DD) and clears the
// slot chosen for any earlier date.
func (s *State) SelectDate(date string) {
	s.date = date
	s.slot = ""
	s.slotDisplay = ""
}

// SelectSlot records the chosen start time for the current date and
// unlocks the confirm step. The display string is locale formatted, with a
// raw "date hour" fallback when the date cannot be parsed.
func (s *State) SelectSlot(hhmm string) error {
	if s.date == "" {
		return &ValidationError{Field: "date", Message: "escolha uma data antes do horário"}
	}
	s.slot = hhmm
	s.slotDisplay = formatSlotDisplay(s.date, hhmm)
	return nil
}

func formatSlotDisplay(date, hhmm string) string {
	t, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		return date + " " + hhmm
	}
	return t.Format("02/01/2006") + " às " + t.Format("15:04")
}

// StartTimestamp combines the chosen date and time into the value posted
// to the backend. Empty until a slot is chosen.
func (s *State) StartTimestamp() string {
	if s.date == "" || s.slot == "" {
		return ""
	}
	return s.date + " " + s.slot
}

// Confirm handles the confirm key. Before the final step it is a no-op and
// reports false, preventing premature submission.
func (s *State) Confirm() bool {
	return s.step == StepConfirm
}

// Submit validates the contact and service before the underlying form post
// is allowed to proceed. On failure the wizard returns to step 1 and the
// error message is surfaced; on success the hidden confirmation flag is
// set.
func (s *State) Submit(contact string) error {
	if contact == "" {
		s.step = StepService
		return &ValidationError{Field: "contact", Message: "informe um telefone ou e-mail para contato"}
	}
	if s.service == nil {
		s.step = StepService
		return &ValidationError{Field: "service", Message: "escolha um serviço antes de enviar"}
	}
	s.confirmed = true
	return nil
}

// Confirmed reports whether a valid submission has been made.
func (s *State) Confirmed() bool {
	return s.confirmed
}

// Summary returns the confirmation panel contents for the current
// selection.
func (s *State) Summary() Summary {
	out := Summary{SlotDisplay: s.slotDisplay}
	if s.service != nil {
		out.ServiceName = s.service.Name
		out.Duration = fmt.Sprintf("%d min", s.service.DurationMin)
	}
	return out
}
