package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/dmcruz/barberbook/internal/availability"
)

type stubPrechecker struct {
	days []int
	err  error
}

func (s stubPrechecker) MonthDays(context.Context, availability.MonthQuery) ([]int, error) {
	return s.days, s.err
}

func septemberQuery() availability.MonthQuery {
	return availability.MonthQuery{Shop: "navalha-central", ServiceID: 3, Year: 2026, Month: 9}
}

func TestBuildCalendarDisablesDaysWithoutAvailability(t *testing.T) {
	c := BuildCalendar(context.Background(), stubPrechecker{days: []int{1, 15}}, septemberQuery(), nil)

	if !c.Enabled[1] || !c.Enabled[15] {
		t.Error("expected listed days enabled")
	}
	if c.Enabled[2] || c.Enabled[30] {
		t.Error("expected unlisted days disabled")
	}
}

func TestBuildCalendarFailsOpen(t *testing.T) {
	c := BuildCalendar(context.Background(), stubPrechecker{err: errors.New("timeout")}, septemberQuery(), nil)

	for d := 1; d <= 30; d++ {
		if !c.Enabled[d] {
			t.Fatalf("expected day %d enabled after precheck failure", d)
		}
	}
}

func TestBuildCalendarIgnoresOutOfRangeDays(t *testing.T) {
	c := BuildCalendar(context.Background(), stubPrechecker{days: []int{0, 31, 40, 5}}, septemberQuery(), nil)

	if !c.Enabled[5] {
		t.Error("expected valid day enabled")
	}
	if c.Enabled[0] || c.Enabled[31] || c.Enabled[40] {
		t.Error("expected out-of-range days ignored for September")
	}
}
