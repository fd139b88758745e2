// Package slots turns the raw list of bookable start times returned by the
// booking backend into the day-period buckets shown by the widget. All of
// the logic here is pure: fetching lives in the availability package and
// selection state lives in the wizard package.
package slots

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Bucket is one of the three fixed day periods used to group times.
type Bucket int

const (
	Morning Bucket = iota
	Afternoon
	Evening
)

// Order is the fixed display and fallback order of buckets.
var Order = [3]Bucket{Morning, Afternoon, Evening}

func (b Bucket) String() string {
	switch b {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	}
	return "unknown"
}

// Label returns the customer-facing name of the bucket.
func (b Bucket) Label() string {
	switch b {
	case Morning:
		return "Manhã"
	case Afternoon:
		return "Tarde"
	case Evening:
		return "Noite"
	}
	return ""
}

// BucketForHour maps an hour of day onto a bucket: 05-11 morning,
// 12-17 afternoon, 18-23 and the small hours 00-04 evening.
func BucketForHour(hour int) Bucket {
	switch {
	case hour >= 5 && hour <= 11:
		return Morning
	case hour >= 12 && hour <= 17:
		return Afternoon
	default:
		return Evening
	}
}

// timePattern accepts zero-padded 24-hour HH:MM strings only.
var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Normalize validates, deduplicates and sorts a raw slot list. Entries not
// matching HH:MM are dropped. Lexicographic order equals chronological
// order for zero-padded 24-hour strings.
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if !timePattern.MatchString(s) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HourGroup holds the exact times available within a single hour.
// Times share the hour and are sorted ascending.
type HourGroup struct {
	Hour  int
	Times []string
}

// Day is the fully bucketed view of one date's availability. It is
// recomputed from scratch on every fetch, never patched incrementally.
type Day struct {
	Date   string
	groups [3][]HourGroup
	total  int
}

// BuildDay normalizes raw times and partitions them into buckets and
// hour groups.
func BuildDay(date string, raw []string) Day {
	d := Day{Date: date}
	byHour := make(map[int][]string)
	hours := make([]int, 0, 8)
	for _, s := range Normalize(raw) {
		h, _ := strconv.Atoi(s[:2])
		if _, ok := byHour[h]; !ok {
			hours = append(hours, h)
		}
		byHour[h] = append(byHour[h], s)
		d.total++
	}
	sort.Ints(hours)
	for _, h := range hours {
		b := BucketForHour(h)
		d.groups[b] = append(d.groups[b], HourGroup{Hour: h, Times: byHour[h]})
	}
	return d
}

// Groups returns the hour groups of a bucket, sorted by hour ascending.
func (d Day) Groups(b Bucket) []HourGroup {
	return d.groups[b]
}

// Count returns the number of bookable times in a bucket.
func (d Day) Count(b Bucket) int {
	n := 0
	for _, g := range d.groups[b] {
		n += len(g.Times)
	}
	return n
}

// Total returns the number of bookable times across all buckets.
func (d Day) Total() int {
	return d.total
}

// Empty reports whether the day has no bookable times at all.
func (d Day) Empty() bool {
	return d.total == 0
}

// GuessBucket maps the current wall-clock hour to the bucket a visitor is
// most likely looking for.
func GuessBucket(now time.Time) Bucket {
	switch {
	case now.Hour() < 12:
		return Morning
	case now.Hour() < 18:
		return Afternoon
	default:
		return Evening
	}
}

// DefaultBucket picks the initial bucket for a freshly fetched day: the
// wall-clock guess when it has entries, otherwise the first non-empty
// bucket in display order. ok is false when the day is empty.
func DefaultBucket(now time.Time, d Day) (Bucket, bool) {
	if g := GuessBucket(now); d.Count(g) > 0 {
		return g, true
	}
	for _, b := range Order {
		if d.Count(b) > 0 {
			return b, true
		}
	}
	return Morning, false
}
