package catalog

import (
	"context"
	"errors"

	announcementDomain "kingrun/internal/domain/announcement"
	challengeDomain "kingrun/internal/domain/challenge"
	eventDomain "kingrun/internal/domain/event"
	rankingDomain "kingrun/internal/domain/ranking"
	resultDomain "kingrun/internal/domain/result"
	userDomain "kingrun/internal/domain/user"
)

// ErrNotFound is returned by lookups for identifiers that are not in the catalog.
var ErrNotFound = errors.New("not found")

// Store exposes the read-only race catalog.
type Store interface {
	ListEvents(ctx context.Context) ([]eventDomain.Event, error)
	GetEvent(ctx context.Context, id string) (eventDomain.Event, error)
	ListRanking(ctx context.Context, category string) ([]rankingDomain.Entry, error)
	ListChallenges(ctx context.Context) ([]challengeDomain.Challenge, error)
	GetChallenge(ctx context.Context, id string) (challengeDomain.Challenge, error)
	GetUserChallenge(ctx context.Context, challengeID, userID string) (challengeDomain.UserChallenge, error)
	ListResultsByUser(ctx context.Context, userID string) ([]resultDomain.Result, error)
	GetResult(ctx context.Context, id string) (resultDomain.Result, error)
	ListAnnouncements(ctx context.Context, limit int) ([]announcementDomain.Announcement, error)
	DemoUser(ctx context.Context) userDomain.User
}
