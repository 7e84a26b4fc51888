package event_test

import (
	"errors"
	"testing"

	"kingrun/internal/domain/event"
)

func openEvent() event.Event {
	return event.Event{
		ID:                "1",
		Name:              "KING RUN São Paulo",
		Date:              "2025-02-15",
		Distances:         []string{"5km", "10km", "21km"},
		RegistrationOpen:  true,
		ParticipantsCount: 2500,
		MaxParticipants:   5000,
	}
}

// TestEvent_CanRegister tests registration rules.
func TestEvent_CanRegister(t *testing.T) {
	full := openEvent()
	full.ParticipantsCount = full.MaxParticipants
	closed := openEvent()
	closed.RegistrationOpen = false

	tests := []struct {
		name     string
		event    event.Event
		distance string
		wantErr  error
	}{
		{"valid distance", openEvent(), "10km", nil},
		{"empty distance", openEvent(), "", event.ErrDistanceRequired},
		{"distance not offered", openEvent(), "42km", event.ErrDistanceNotOffered},
		{"registration closed", closed, "5km", event.ErrRegistrationClosed},
		{"event full", full, "5km", event.ErrEventFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.CanRegister(tt.distance)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanRegister(%q) error = %v, want %v", tt.distance, err, tt.wantErr)
			}
		})
	}
}

// TestEvent_Matches tests the list filter.
func TestEvent_Matches(t *testing.T) {
	open := openEvent()
	closed := openEvent()
	closed.RegistrationOpen = false

	tests := []struct {
		filter     string
		wantOpen   bool
		wantClosed bool
	}{
		{event.FilterAll, true, true},
		{event.FilterOpen, true, false},
		{event.FilterClosed, false, true},
		{"bogus", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			if got := open.Matches(tt.filter); got != tt.wantOpen {
				t.Errorf("open.Matches(%q) = %v, want %v", tt.filter, got, tt.wantOpen)
			}
			if got := closed.Matches(tt.filter); got != tt.wantClosed {
				t.Errorf("closed.Matches(%q) = %v, want %v", tt.filter, got, tt.wantClosed)
			}
		})
	}
}

// TestEvent_Capacity tests SpotsLeft and FillPercent.
func TestEvent_Capacity(t *testing.T) {
	e := openEvent()
	if got := e.SpotsLeft(); got != 2500 {
		t.Errorf("SpotsLeft() = %d, want 2500", got)
	}
	if got := e.FillPercent(); got != 50 {
		t.Errorf("FillPercent() = %d, want 50", got)
	}

	e.ParticipantsCount = 6000
	if got := e.SpotsLeft(); got != 0 {
		t.Errorf("SpotsLeft() over capacity = %d, want 0", got)
	}
	if got := e.FillPercent(); got != 100 {
		t.Errorf("FillPercent() over capacity = %d, want 100", got)
	}

	e.MaxParticipants = 0
	if got := e.FillPercent(); got != 0 {
		t.Errorf("FillPercent() without limit = %d, want 0", got)
	}
}

// TestNormalizeFilter tests that unknown filters fall back to all.
func TestNormalizeFilter(t *testing.T) {
	if got := event.NormalizeFilter("open"); got != event.FilterOpen {
		t.Errorf("NormalizeFilter(open) = %q", got)
	}
	if got := event.NormalizeFilter(""); got != event.FilterAll {
		t.Errorf("NormalizeFilter(\"\") = %q, want all", got)
	}
}
