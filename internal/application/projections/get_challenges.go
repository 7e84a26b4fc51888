package projections

import (
	"context"
	"errors"
	"time"

	"kingrun/internal/adapters/storage/catalog"
	domainChallenge "kingrun/internal/domain/challenge"
)

// Challenge status badges.
const (
	ChallengeCompleted = "Completo"
	ChallengeExpired   = "Encerrado"
	ChallengeActive    = "Ativo"
)

// ChallengeCard is a challenge with the current runner's progress.
type ChallengeCard struct {
	domainChallenge.Challenge
	Progress  int
	Percent   int
	Completed bool
	Expired   bool
	Status    string
}

// GetChallengesQuery carries query parameters.
type GetChallengesQuery struct {
	UserID string
	Now    time.Time
}

// GetChallengesResult carries the query result.
type GetChallengesResult struct {
	Challenges []ChallengeCard
}

// GetChallengesDeps holds dependencies for GetChallenges.
type GetChallengesDeps struct {
	ChallengeStore ChallengeStore
}

// QueryGetChallenges lists every challenge with the runner's progress.
// PRE: none
// POST: Missing progress counts as zero; completion is derived from progress and goal
func QueryGetChallenges(ctx context.Context, query GetChallengesQuery, deps GetChallengesDeps) (GetChallengesResult, error) {
	challenges, err := deps.ChallengeStore.ListChallenges(ctx)
	if err != nil {
		return GetChallengesResult{}, err
	}

	var result GetChallengesResult
	for _, c := range challenges {
		card := ChallengeCard{Challenge: c}

		uc, err := deps.ChallengeStore.GetUserChallenge(ctx, c.ID, query.UserID)
		switch {
		case err == nil:
			card.Progress = uc.Progress
			card.Completed = c.IsCompletedBy(uc)
		case errors.Is(err, catalog.ErrNotFound):
		default:
			return GetChallengesResult{}, err
		}

		card.Percent = domainChallenge.ProgressPercent(card.Progress, c.Goal)
		card.Expired = c.IsExpired(query.Now)
		switch {
		case card.Completed:
			card.Status = ChallengeCompleted
		case card.Expired:
			card.Status = ChallengeExpired
		default:
			card.Status = ChallengeActive
		}
		result.Challenges = append(result.Challenges, card)
	}
	return result, nil
}
