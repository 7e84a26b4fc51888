package challenge

import (
	"time"

	"kingrun/internal/domain/countdown"
)

// Challenge is a sponsored goal runners work towards. Static.
type Challenge struct {
	ID            string
	Name          string
	Description   string
	Sponsor       string
	SponsorLogo   string
	StartDate     string // ISO calendar date
	EndDate       string // ISO calendar date
	Goal          int
	Unit          string
	BadgeImageURL string
}

// UserChallenge is a runner's progress on a challenge.
// Completion is derived from Progress and the challenge goal, see Completed.
type UserChallenge struct {
	ChallengeID string
	UserID      string
	Progress    int
}

// Completed reports whether progress has reached the goal.
func Completed(progress, goal int) bool {
	return progress >= goal
}

// ProgressPercent returns progress as a percentage of goal, capped at 100.
func ProgressPercent(progress, goal int) int {
	if goal <= 0 {
		return 100
	}
	if progress <= 0 {
		return 0
	}
	pct := progress * 100 / goal
	if pct > 100 {
		return 100
	}
	return pct
}

// IsExpired reports whether the challenge ended before now.
// An unparseable end date is treated as still running.
// INVARIANT: Challenge fields are not mutated
func (c *Challenge) IsExpired(now time.Time) bool {
	end, err := countdown.ParseDate(c.EndDate)
	if err != nil {
		return false
	}
	return end.Before(now)
}

// IsCompletedBy reports whether uc satisfies this challenge's goal.
func (c *Challenge) IsCompletedBy(uc UserChallenge) bool {
	return uc.ChallengeID == c.ID && Completed(uc.Progress, c.Goal)
}
