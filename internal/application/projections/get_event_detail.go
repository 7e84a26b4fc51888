package projections

import (
	"context"
	"errors"
	"time"

	"kingrun/internal/adapters/storage/catalog"
	"kingrun/internal/domain/countdown"
	domainEvent "kingrun/internal/domain/event"
)

// GetEventDetailQuery carries query parameters.
type GetEventDetailQuery struct {
	EventID string
	Now     time.Time
}

// GetEventDetailResult carries the query result.
type GetEventDetailResult struct {
	Found     bool
	Event     domainEvent.Event
	Countdown countdown.Countdown
}

// GetEventDetailDeps holds dependencies for GetEventDetail.
type GetEventDetailDeps struct {
	EventStore EventStore
}

// QueryGetEventDetail loads one event with its countdown.
// PRE: none
// POST: An unknown id yields Found=false and a nil error
func QueryGetEventDetail(ctx context.Context, query GetEventDetailQuery, deps GetEventDetailDeps) (GetEventDetailResult, error) {
	e, err := deps.EventStore.GetEvent(ctx, query.EventID)
	if errors.Is(err, catalog.ErrNotFound) {
		return GetEventDetailResult{}, nil
	}
	if err != nil {
		return GetEventDetailResult{}, err
	}
	return GetEventDetailResult{
		Found:     true,
		Event:     e,
		Countdown: countdown.TimeUntilDate(e.Date, query.Now),
	}, nil
}
