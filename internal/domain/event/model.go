package event

import (
	"errors"
	"time"
)

// Filter constants for the event list tabs.
const (
	FilterAll    = "all"
	FilterOpen   = "open"
	FilterClosed = "closed"
)

// ValidFilters contains all valid filter values, in tab order.
var ValidFilters = []string{FilterAll, FilterOpen, FilterClosed}

// Registration status constants
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
)

// Domain errors
var (
	ErrDistanceRequired   = errors.New("a distance must be selected")
	ErrDistanceNotOffered = errors.New("distance is not offered by this event")
	ErrRegistrationClosed = errors.New("registration for this event is closed")
	ErrEventFull          = errors.New("event has reached its participant limit")
)

// Event is a race on the calendar. Static; never mutated at runtime.
type Event struct {
	ID                string
	Name              string
	Date              string // ISO calendar date
	Location          string
	Description       string // markdown
	Distances         []string
	ImageURL          string
	RegistrationOpen  bool
	ParticipantsCount int
	MaxParticipants   int
}

// Registration links a runner to an event distance.
// It is produced for the confirmation view only and is never stored.
type Registration struct {
	ID        string
	EventID   string
	UserID    string
	Distance  string
	Status    string
	QRCode    string
	CreatedAt time.Time
}

// Offers reports whether the event has the given distance.
// INVARIANT: Event fields are not mutated
func (e *Event) Offers(distance string) bool {
	for _, d := range e.Distances {
		if d == distance {
			return true
		}
	}
	return false
}

// SpotsLeft returns the remaining capacity, never negative.
// INVARIANT: Event fields are not mutated
func (e *Event) SpotsLeft() int {
	left := e.MaxParticipants - e.ParticipantsCount
	if left < 0 {
		return 0
	}
	return left
}

// FillPercent returns how full the event is, 0-100.
// INVARIANT: Event fields are not mutated
func (e *Event) FillPercent() int {
	if e.MaxParticipants <= 0 {
		return 0
	}
	pct := e.ParticipantsCount * 100 / e.MaxParticipants
	if pct > 100 {
		return 100
	}
	return pct
}

// CanRegister checks whether a runner may sign up for the given distance.
// PRE: none
// POST: Returns nil if the registration would be accepted
func (e *Event) CanRegister(distance string) error {
	if !e.RegistrationOpen {
		return ErrRegistrationClosed
	}
	if distance == "" {
		return ErrDistanceRequired
	}
	if !e.Offers(distance) {
		return ErrDistanceNotOffered
	}
	if e.MaxParticipants > 0 && e.SpotsLeft() == 0 {
		return ErrEventFull
	}
	return nil
}

// Matches reports whether the event belongs in the list for the given filter.
// Unknown filters behave like FilterAll.
func (e *Event) Matches(filter string) bool {
	switch filter {
	case FilterOpen:
		return e.RegistrationOpen
	case FilterClosed:
		return !e.RegistrationOpen
	default:
		return true
	}
}

// NormalizeFilter maps unknown filter values to FilterAll.
func NormalizeFilter(filter string) string {
	for _, f := range ValidFilters {
		if f == filter {
			return f
		}
	}
	return FilterAll
}
