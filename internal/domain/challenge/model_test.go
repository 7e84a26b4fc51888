package challenge_test

import (
	"testing"
	"time"

	"kingrun/internal/domain/challenge"
)

// TestCompleted tests the derived completion flag.
func TestCompleted(t *testing.T) {
	tests := []struct {
		progress, goal int
		want           bool
	}{
		{0, 100, false},
		{99, 100, false},
		{100, 100, true},
		{120, 100, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		if got := challenge.Completed(tt.progress, tt.goal); got != tt.want {
			t.Errorf("Completed(%d, %d) = %v, want %v", tt.progress, tt.goal, got, tt.want)
		}
	}
}

// TestProgressPercent tests the capped percentage.
func TestProgressPercent(t *testing.T) {
	tests := []struct {
		progress, goal int
		want           int
	}{
		{67, 100, 67},
		{3, 5, 60},
		{8, 20, 40},
		{30, 20, 100},
		{-1, 20, 0},
		{5, 0, 100},
	}

	for _, tt := range tests {
		if got := challenge.ProgressPercent(tt.progress, tt.goal); got != tt.want {
			t.Errorf("ProgressPercent(%d, %d) = %d, want %d", tt.progress, tt.goal, got, tt.want)
		}
	}
}

// TestChallenge_IsExpired tests expiry against an explicit clock.
func TestChallenge_IsExpired(t *testing.T) {
	c := challenge.Challenge{ID: "1", EndDate: "2025-01-31"}

	if c.IsExpired(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("IsExpired() = true before end date")
	}
	if !c.IsExpired(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("IsExpired() = false after end date")
	}

	bad := challenge.Challenge{EndDate: "soon"}
	if bad.IsExpired(time.Now()) {
		t.Error("IsExpired() = true for unparseable end date")
	}
}

// TestChallenge_IsCompletedBy tests matching progress to the right challenge.
func TestChallenge_IsCompletedBy(t *testing.T) {
	c := challenge.Challenge{ID: "2", Goal: 5}
	if !c.IsCompletedBy(challenge.UserChallenge{ChallengeID: "2", Progress: 5}) {
		t.Error("IsCompletedBy() = false at goal")
	}
	if c.IsCompletedBy(challenge.UserChallenge{ChallengeID: "3", Progress: 50}) {
		t.Error("IsCompletedBy() = true for another challenge")
	}
}
