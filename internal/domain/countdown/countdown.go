package countdown

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date layout used by every static record.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string is neither an ISO date nor RFC 3339.
var ErrInvalidDate = errors.New("date must be ISO 8601 (YYYY-MM-DD or RFC 3339)")

// monthsPtBR are the pt-BR abbreviated month names.
var monthsPtBR = [12]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// Countdown is the remaining time until an event starts.
type Countdown struct {
	Days    int
	Hours   int // 0-23
	Minutes int // 0-59
}

// IsZero reports whether the event has already started.
func (c Countdown) IsZero() bool {
	return c.Days == 0 && c.Hours == 0 && c.Minutes == 0
}

// ParseDate parses an ISO date. Bare calendar dates are taken as UTC midnight.
// PRE: none
// POST: Returns the parsed instant or ErrInvalidDate
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
}

// TimeUntil breaks the duration between now and eventDate into days, hours and minutes.
// Each unit is truncated independently; a date at or before now yields all zeros.
// PRE: none
// POST: Hours in [0,23], Minutes in [0,59]
func TimeUntil(eventDate, now time.Time) Countdown {
	diff := eventDate.Sub(now)
	if diff <= 0 {
		return Countdown{}
	}
	const day = 24 * time.Hour
	return Countdown{
		Days:    int(diff / day),
		Hours:   int((diff % day) / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}
}

// TimeUntilDate is TimeUntil for an ISO date string. Unparseable dates count as past.
func TimeUntilDate(dateISO string, now time.Time) Countdown {
	t, err := ParseDate(dateISO)
	if err != nil {
		return Countdown{}
	}
	return TimeUntil(t, now)
}

// FormatDate renders an ISO date as "DD mmm. YYYY" in pt-BR, e.g. "15 fev. 2025".
// Components are read in UTC so the output does not depend on the host timezone.
// Unparseable input is returned unchanged.
func FormatDate(dateISO string) string {
	t, err := ParseDate(dateISO)
	if err != nil {
		return dateISO
	}
	return Format(t)
}

// Format renders t using the same convention as FormatDate.
func Format(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%02d %s %d", t.Day(), monthsPtBR[t.Month()-1], t.Year())
}
