package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainEvent "kingrun/internal/domain/event"
)

var validate = validator.New()

// EventStore defines the interface for event lookups.
type EventStore interface {
	GetEvent(ctx context.Context, id string) (domainEvent.Event, error)
}

// RegisterForEventInput carries input for the orchestrator.
type RegisterForEventInput struct {
	EventID  string `validate:"required"`
	UserID   string `validate:"required"`
	Distance string `validate:"required"`
}

// RegisterForEventDeps holds dependencies for RegisterForEvent.
type RegisterForEventDeps struct {
	EventStore EventStore
	Now        func() time.Time // optional, defaults to time.Now
}

// RegisterForEventResult carries the confirmed registration and its event.
type RegisterForEventResult struct {
	Event        domainEvent.Event
	Registration domainEvent.Registration
}

// ExecuteRegisterForEvent confirms a runner's registration for one distance.
// The registration is returned for display only and is not stored.
// PRE: EventID and UserID are non-empty
// POST: Registration has Status=confirmed, a fresh ID and a QR payload
// POST: Unknown events return the store's not-found error
func ExecuteRegisterForEvent(ctx context.Context, input RegisterForEventInput, deps RegisterForEventDeps) (RegisterForEventResult, error) {
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Distance" {
			return RegisterForEventResult{}, domainEvent.ErrDistanceRequired
		}
		return RegisterForEventResult{}, err
	}

	e, err := deps.EventStore.GetEvent(ctx, input.EventID)
	if err != nil {
		return RegisterForEventResult{}, err
	}
	if err := e.CanRegister(input.Distance); err != nil {
		return RegisterForEventResult{}, err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	id := uuid.New().String()
	reg := domainEvent.Registration{
		ID:        id,
		EventID:   e.ID,
		UserID:    input.UserID,
		Distance:  input.Distance,
		Status:    domainEvent.StatusConfirmed,
		QRCode:    fmt.Sprintf("KINGRUN:%s:%s:%s", e.ID, input.Distance, id[:8]),
		CreatedAt: now().UTC(),
	}
	return RegisterForEventResult{Event: e, Registration: reg}, nil
}
