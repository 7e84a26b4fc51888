package projections

import (
	"context"

	domainEvent "kingrun/internal/domain/event"
)

var filterLabels = map[string]string{
	domainEvent.FilterAll:    "Todos",
	domainEvent.FilterOpen:   "Abertos",
	domainEvent.FilterClosed: "Em breve",
}

// FilterTab is one tab of the event list filter.
type FilterTab struct {
	Value  string
	Label  string
	Active bool
}

// GetEventListQuery carries query parameters.
type GetEventListQuery struct {
	Filter string // all, open or closed; anything else is treated as all
}

// GetEventListResult carries the query result.
type GetEventListResult struct {
	Filter string
	Tabs   []FilterTab
	Events []domainEvent.Event
}

// GetEventListDeps holds dependencies for GetEventList.
type GetEventListDeps struct {
	EventStore EventStore
}

// QueryGetEventList lists events matching the selected filter tab.
// PRE: none
// POST: Events preserve catalog order; an empty list is not an error
func QueryGetEventList(ctx context.Context, query GetEventListQuery, deps GetEventListDeps) (GetEventListResult, error) {
	filter := domainEvent.NormalizeFilter(query.Filter)

	events, err := deps.EventStore.ListEvents(ctx)
	if err != nil {
		return GetEventListResult{}, err
	}

	result := GetEventListResult{Filter: filter}
	for _, f := range domainEvent.ValidFilters {
		result.Tabs = append(result.Tabs, FilterTab{Value: f, Label: filterLabels[f], Active: f == filter})
	}
	for _, e := range events {
		if e.Matches(filter) {
			result.Events = append(result.Events, e)
		}
	}
	return result, nil
}
