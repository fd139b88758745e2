package wizard

import (
	"context"
	"time"

	"github.com/dmcruz/barberbook/internal/availability"
	"github.com/dmcruz/barberbook/pkg/logging"
)

// Calendar is the month grid of the calendar step. Days absent from the
// precheck result render disabled.
type Calendar struct {
	Year    int
	Month   int
	Enabled map[int]bool
}

// daysIn returns the number of days in the month.
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// allEnabled builds a calendar with every day of the month enabled.
func allEnabled(year, month int) Calendar {
	c := Calendar{Year: year, Month: month, Enabled: map[int]bool{}}
	for d := 1; d <= daysIn(year, month); d++ {
		c.Enabled[d] = true
	}
	return c
}

// BuildCalendar narrows the month grid with the advisory precheck. The
// precheck is best effort: on any error the failure is logged and every
// day stays enabled, over-showing availability rather than blocking the
// visitor.
func BuildCalendar(ctx context.Context, p availability.Prechecker, q availability.MonthQuery, logger *logging.Logger) Calendar {
	if logger == nil {
		logger = logging.Default()
	}

	days, err := p.MonthDays(ctx, q)
	if err != nil {
		logger.Warn("month precheck failed, leaving all days enabled",
			"shop", q.Shop,
			"service_id", q.ServiceID,
			"year", q.Year,
			"month", q.Month,
			"error", err,
		)
		return allEnabled(q.Year, q.Month)
	}

	c := Calendar{Year: q.Year, Month: q.Month, Enabled: map[int]bool{}}
	for _, d := range days {
		if d >= 1 && d <= daysIn(q.Year, q.Month) {
			c.Enabled[d] = true
		}
	}
	return c
}
