package projections

import (
	"context"

	domainAnnouncement "kingrun/internal/domain/announcement"
	domainChallenge "kingrun/internal/domain/challenge"
	domainEvent "kingrun/internal/domain/event"
	domainRanking "kingrun/internal/domain/ranking"
	domainResult "kingrun/internal/domain/result"
)

// EventStore interface for event queries.
type EventStore interface {
	ListEvents(ctx context.Context) ([]domainEvent.Event, error)
	GetEvent(ctx context.Context, id string) (domainEvent.Event, error)
}

// AnnouncementStore interface for announcement queries.
type AnnouncementStore interface {
	ListAnnouncements(ctx context.Context, limit int) ([]domainAnnouncement.Announcement, error)
}

// RankingStore interface for ranking queries.
type RankingStore interface {
	ListRanking(ctx context.Context, category string) ([]domainRanking.Entry, error)
}

// ChallengeStore interface for challenge and progress queries.
type ChallengeStore interface {
	ListChallenges(ctx context.Context) ([]domainChallenge.Challenge, error)
	GetUserChallenge(ctx context.Context, challengeID, userID string) (domainChallenge.UserChallenge, error)
}

// ResultStore interface for race history queries.
type ResultStore interface {
	ListResultsByUser(ctx context.Context, userID string) ([]domainResult.Result, error)
}
