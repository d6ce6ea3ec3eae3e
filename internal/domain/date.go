package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a local calendar day with no time or offset component.
// Trip dates are stored this way, so all day arithmetic happens on the
// triple and never on UTC-shifted instants.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate reads a "YYYY-MM-DD" string. A trailing time part
// ("2026-02-05T10:00:00") is ignored.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("parse date: %q is not YYYY-MM-DD", s)
	}

	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("parse date: year of %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("parse date: month of %q: %w", s, err)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("parse date: day of %q: %w", s, err)
	}

	date := NewDate(y, time.Month(m), d)
	if date.Year != y || int(date.Month) != m || date.Day != d {
		return Date{}, fmt.Errorf("parse date: %q is not a calendar day", s)
	}
	return date, nil
}

// NewDate normalizes out-of-range components (e.g. day 0 rolls back to
// the last day of the previous month).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf takes the wall-clock day of t in its own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// Between reports whether d lies in [from, to]. A zero bound is open.
func (d Date) Between(from, to Date) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && to.Before(d) {
		return false
	}
	return true
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
