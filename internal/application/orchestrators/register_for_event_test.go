package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kingrun/internal/adapters/storage/catalog"
	domainEvent "kingrun/internal/domain/event"
)

type mockEventStore struct {
	events map[string]domainEvent.Event
}

// GetEvent returns the seeded event or catalog.ErrNotFound.
// PRE: none
// POST: Returns the event keyed by id
func (m *mockEventStore) GetEvent(_ context.Context, id string) (domainEvent.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return domainEvent.Event{}, catalog.ErrNotFound
	}
	return e, nil
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: map[string]domainEvent.Event{
		"open":   {ID: "open", Name: "KING RUN Teste", Distances: []string{"5km", "10km"}, RegistrationOpen: true, ParticipantsCount: 10, MaxParticipants: 100},
		"closed": {ID: "closed", Distances: []string{"5km"}, RegistrationOpen: false},
		"full":   {ID: "full", Distances: []string{"5km"}, RegistrationOpen: true, ParticipantsCount: 50, MaxParticipants: 50},
	}}
}

// TestExecuteRegisterForEvent tests confirmation and rejection paths.
func TestExecuteRegisterForEvent(t *testing.T) {
	fixed := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	deps := RegisterForEventDeps{EventStore: newMockEventStore(), Now: func() time.Time { return fixed }}

	tests := []struct {
		name    string
		input   RegisterForEventInput
		wantErr error
	}{
		{"confirmed", RegisterForEventInput{EventID: "open", UserID: "1", Distance: "10km"}, nil},
		{"no distance", RegisterForEventInput{EventID: "open", UserID: "1"}, domainEvent.ErrDistanceRequired},
		{"distance not offered", RegisterForEventInput{EventID: "open", UserID: "1", Distance: "42km"}, domainEvent.ErrDistanceNotOffered},
		{"closed", RegisterForEventInput{EventID: "closed", UserID: "1", Distance: "5km"}, domainEvent.ErrRegistrationClosed},
		{"full", RegisterForEventInput{EventID: "full", UserID: "1", Distance: "5km"}, domainEvent.ErrEventFull},
		{"unknown event", RegisterForEventInput{EventID: "nope", UserID: "1", Distance: "5km"}, catalog.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExecuteRegisterForEvent(context.Background(), tt.input, deps)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExecuteRegisterForEvent() error = %v", err)
			}
			reg := got.Registration
			if reg.Status != domainEvent.StatusConfirmed || reg.Distance != "10km" || reg.UserID != "1" {
				t.Errorf("Registration = %+v", reg)
			}
			if reg.ID == "" || !strings.HasPrefix(reg.QRCode, "KINGRUN:open:10km:") {
				t.Errorf("ID/QRCode = %q/%q", reg.ID, reg.QRCode)
			}
			if !reg.CreatedAt.Equal(fixed) {
				t.Errorf("CreatedAt = %v, want %v", reg.CreatedAt, fixed)
			}
			if got.Event.Name != "KING RUN Teste" {
				t.Errorf("Event = %+v", got.Event)
			}
		})
	}
}

// TestExecuteRegisterForEvent_MissingUser tests that anonymous input is rejected.
func TestExecuteRegisterForEvent_MissingUser(t *testing.T) {
	deps := RegisterForEventDeps{EventStore: newMockEventStore()}
	_, err := ExecuteRegisterForEvent(context.Background(), RegisterForEventInput{EventID: "open", Distance: "5km"}, deps)
	if err == nil {
		t.Fatal("ExecuteRegisterForEvent() error = nil for missing user")
	}
	if errors.Is(err, domainEvent.ErrDistanceRequired) {
		t.Errorf("missing user reported as missing distance")
	}
}
