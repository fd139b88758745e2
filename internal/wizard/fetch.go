package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/dmcruz/barberbook/internal/availability"
	"github.com/dmcruz/barberbook/internal/slots"
)

// Phase is the per-date fetch state: idle → loading → {error|empty|ready}.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseEmpty
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}

// SlotSession owns the mutable per-day slot state for one wizard. Every
// fetch resets the session synchronously before the response arrives, and
// each fetch carries a sequence number so a slow response from an
// abandoned date cannot overwrite a newer one.
type SlotSession struct {
	seq       uint64
	phase     Phase
	date      string
	day       slots.Day
	active    slots.Bucket
	errDetail string

	now func() time.Time
}

// NewSlotSession creates an idle session.
func NewSlotSession() *SlotSession {
	return &SlotSession{now: time.Now}
}

// Begin starts a fetch for a date: the previous day's slots are dropped
// and the session enters loading. The returned sequence must be handed to
// Complete.
func (s *SlotSession) Begin(date string) uint64 {
	s.seq++
	s.phase = PhaseLoading
	s.date = date
	s.day = slots.Day{}
	s.errDetail = ""
	return s.seq
}

// Complete applies a fetch result. A result whose sequence is not the
// latest issued one belongs to an abandoned fetch and is discarded;
// Complete reports whether the result was applied.
func (s *SlotSession) Complete(seq uint64, raw []string, err error) bool {
	if seq != s.seq {
		return false
	}

	if err != nil {
		s.phase = PhaseError
		var httpErr *availability.HTTPError
		if errors.As(err, &httpErr) {
			s.errDetail = httpErr.Body
		} else {
			s.errDetail = err.Error()
		}
		return true
	}

	day := slots.BuildDay(s.date, raw)
	if day.Empty() {
		s.phase = PhaseEmpty
		s.day = day
		return true
	}

	s.phase = PhaseReady
	s.day = day
	s.active, _ = slots.DefaultBucket(s.now(), day)
	return true
}

// Fetch runs one begin/complete cycle against the authoritative slot
// source and returns the resulting view.
func (s *SlotSession) Fetch(ctx context.Context, src availability.SlotSource, q availability.DayQuery) slots.DayView {
	seq := s.Begin(q.Date)
	raw, err := src.DaySlots(ctx, q)
	s.Complete(seq, raw, err)
	return s.View()
}

// SwitchBucket changes the active bucket without refetching. Only valid in
// the ready phase; reports whether the switch happened.
func (s *SlotSession) SwitchBucket(b slots.Bucket) bool {
	if s.phase != PhaseReady {
		return false
	}
	s.active = b
	return true
}

// Phase returns the current fetch phase.
func (s *SlotSession) Phase() Phase {
	return s.phase
}

// ActiveBucket returns the bucket currently shown.
func (s *SlotSession) ActiveBucket() slots.Bucket {
	return s.active
}

// View renders the session as a pure function of its state.
func (s *SlotSession) View() slots.DayView {
	switch s.phase {
	case PhaseError:
		return slots.RenderError(s.date, s.errDetail)
	case PhaseEmpty, PhaseReady:
		return slots.RenderDay(s.day, s.active)
	default:
		return slots.DayView{Date: s.date, State: s.phase.String()}
	}
}
