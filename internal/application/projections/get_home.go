package projections

import (
	"context"
	"time"

	domainAnnouncement "kingrun/internal/domain/announcement"
	"kingrun/internal/domain/countdown"
	domainEvent "kingrun/internal/domain/event"
	domainUser "kingrun/internal/domain/user"
)

// HomeAnnouncementLimit is how many announcements the home screen shows.
const HomeAnnouncementLimit = 3

// GetHomeQuery carries query parameters.
type GetHomeQuery struct {
	User domainUser.User
	Now  time.Time
}

// GetHomeResult carries the query result.
type GetHomeResult struct {
	User          domainUser.User
	NextEvent     *domainEvent.Event // nil when no event is open for registration
	Countdown     countdown.Countdown
	Announcements []domainAnnouncement.Announcement
}

// GetHomeDeps holds dependencies for GetHome.
type GetHomeDeps struct {
	EventStore        EventStore
	AnnouncementStore AnnouncementStore
}

// QueryGetHome assembles the home screen.
// PRE: query.User is the authenticated user
// POST: NextEvent is the first event in catalog order with registration open
func QueryGetHome(ctx context.Context, query GetHomeQuery, deps GetHomeDeps) (GetHomeResult, error) {
	result := GetHomeResult{User: query.User}

	events, err := deps.EventStore.ListEvents(ctx)
	if err != nil {
		return GetHomeResult{}, err
	}
	for i := range events {
		if events[i].RegistrationOpen {
			next := events[i]
			result.NextEvent = &next
			result.Countdown = countdown.TimeUntilDate(next.Date, query.Now)
			break
		}
	}

	result.Announcements, err = deps.AnnouncementStore.ListAnnouncements(ctx, HomeAnnouncementLimit)
	if err != nil {
		return GetHomeResult{}, err
	}
	return result, nil
}
