package slots

import "fmt"

// Day view states surfaced to the widget page.
const (
	StateReady = "ready"
	StateEmpty = "empty"
	StateError = "error"
)

// NoAvailabilityMessage is shown when a day has no bookable times. This is
// deliberately distinct from the error panel.
const NoAvailabilityMessage = "Sem horários disponíveis para esta data."

// errorDetailLimit bounds the diagnostic text shown in the error panel.
const errorDetailLimit = 140

// TabView is one bucket tab. Switching tabs re-renders only the sections,
// never the tabs themselves.
type TabView struct {
	Bucket string `json:"bucket"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// SectionView is one collapsible hour group inside the active bucket.
type SectionView struct {
	Hour  string   `json:"hour"`
	Open  bool     `json:"open"`
	Times []string `json:"times"`
}

// DayView is the complete render model for one fetched date. It is a pure
// function of (Day, active bucket), so the widget can re-render on bucket
// switches without refetching.
type DayView struct {
	Date         string        `json:"date"`
	State        string        `json:"state"`
	ActiveBucket string        `json:"active_bucket,omitempty"`
	Tabs         []TabView     `json:"tabs,omitempty"`
	Sections     []SectionView `json:"sections,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// RenderDay builds the view model for a day with the given active bucket.
// The first section is open, the rest start collapsed.
func RenderDay(d Day, active Bucket) DayView {
	if d.Empty() {
		return DayView{Date: d.Date, State: StateEmpty, Message: NoAvailabilityMessage}
	}

	view := DayView{
		Date:         d.Date,
		State:        StateReady,
		ActiveBucket: active.String(),
	}
	for _, b := range Order {
		view.Tabs = append(view.Tabs, TabView{
			Bucket: b.String(),
			Label:  fmt.Sprintf("%s (%d)", b.Label(), d.Count(b)),
			Count:  d.Count(b),
			Active: b == active,
		})
	}
	for i, g := range d.Groups(active) {
		view.Sections = append(view.Sections, SectionView{
			Hour:  fmt.Sprintf("%02dh", g.Hour),
			Open:  i == 0,
			Times: g.Times,
		})
	}
	return view
}

// RenderError builds the error-panel view for a failed day fetch. detail is
// raw diagnostic text (typically the response body) and is truncated for
// display; callers log the full error separately.
func RenderError(date, detail string) DayView {
	return DayView{
		Date:    date,
		State:   StateError,
		Message: TruncateDetail(detail),
	}
}

// TruncateDetail caps diagnostic text at the panel limit.
func TruncateDetail(detail string) string {
	if len(detail) > errorDetailLimit {
		return detail[:errorDetailLimit]
	}
	return detail
}
