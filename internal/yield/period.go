package yield

import (
	"fmt"
	"strings"
	"time"
)

// Period maps timestamps onto aggregation buckets.
type Period interface {
	Name() string
	// Start returns the start of the bucket containing t.
	Start(t time.Time) time.Time
	// Label is a human-readable name for the bucket starting at start.
	Label(start time.Time) string
}

type calendarPeriod string

const (
	Day   calendarPeriod = "day"
	Month calendarPeriod = "month"
	Year  calendarPeriod = "year"
)

func (p calendarPeriod) Name() string { return string(p) }

// Calendar buckets are computed in the timestamp's own location.
func (p calendarPeriod) Start(t time.Time) time.Time {
	switch p {
	case Day:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

func (p calendarPeriod) Label(start time.Time) string {
	switch p {
	case Day:
		return start.Format("2006-01-02")
	case Year:
		return start.Format("2006")
	default:
		return start.Format("2006-01")
	}
}

// FixedPeriod buckets by a constant duration. AggregatePeriod anchors the
// buckets at the first sample; used on its own, Start aligns to the zero time.
type FixedPeriod time.Duration

func (p FixedPeriod) Name() string { return time.Duration(p).String() }

func (p FixedPeriod) Start(t time.Time) time.Time {
	return t.Truncate(time.Duration(p)).In(t.Location())
}

func (p FixedPeriod) Label(start time.Time) string {
	return start.Format(time.RFC3339)
}

// AnchoredAt returns the same buckets starting at origin.
func (p FixedPeriod) AnchoredAt(origin time.Time) Period {
	return anchoredPeriod{d: time.Duration(p), origin: origin}
}

// anchorer is implemented by periods whose buckets follow the series start.
type anchorer interface {
	AnchoredAt(origin time.Time) Period
}

type anchoredPeriod struct {
	d      time.Duration
	origin time.Time
}

func (a anchoredPeriod) Name() string { return a.d.String() }

// Start is origin + floor((t-origin)/d)*d.
func (a anchoredPeriod) Start(t time.Time) time.Time {
	off := t.Sub(a.origin)
	n := off / a.d
	if off < 0 && off%a.d != 0 {
		n--
	}
	return a.origin.Add(n * a.d)
}

func (a anchoredPeriod) Label(start time.Time) string {
	return start.Format(time.RFC3339)
}

// ParsePeriod accepts day/month/year (and their pandas-style aliases) or a Go duration.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "month", "monthly", "m":
		return Month, nil
	case "day", "daily", "d":
		return Day, nil
	case "year", "yearly", "annual", "y":
		return Year, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("unsupported period %q", s)
	}
	if d <= 0 {
		return nil, fmt.Errorf("period %q must be positive", s)
	}
	return FixedPeriod(d), nil
}
