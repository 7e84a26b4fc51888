package ranking

import (
	"fmt"
)

// CategoryOverall is the overall ranking, distinct from the age/sex brackets.
const CategoryOverall = "Geral"

// Categories lists the ranking partitions in display order.
var Categories = []string{CategoryOverall, "M18-24", "M25-29", "M30-34", "M35-39", "F18-24", "F25-29"}

// Entry is one runner's line in a category ranking.
type Entry struct {
	Position   int // 1-based, unique within Category
	UserID     string
	UserName   string
	UserAvatar string
	Points     int
	TotalRaces int
	Category   string
}

// IsPodium reports whether the entry is in the top three.
// INVARIANT: Entry fields are not mutated
func (e *Entry) IsPodium() bool {
	return e.Position >= 1 && e.Position <= 3
}

// Medal returns the podium medal for positions 1-3, empty otherwise.
func (e *Entry) Medal() string {
	switch e.Position {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	}
	return ""
}

// IsCategory reports whether name is a known ranking category.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ValidateOrdering checks that the entries of one category are sorted by position
// and that positions are contiguous starting at 1.
// PRE: entries all belong to the same category
// POST: Returns nil if the invariant holds, a descriptive error otherwise
func ValidateOrdering(entries []Entry) error {
	for i, e := range entries {
		if e.Category != entries[0].Category {
			return fmt.Errorf("entry %d: category %q differs from %q", i, e.Category, entries[0].Category)
		}
		if e.Position != i+1 {
			return fmt.Errorf("entry %d (%s): position %d, want %d", i, e.UserID, e.Position, i+1)
		}
	}
	return nil
}

// FindUser returns the entry for the given user, if ranked.
func FindUser(entries []Entry, userID string) (Entry, bool) {
	for _, e := range entries {
		if e.UserID == userID {
			return e, true
		}
	}
	return Entry{}, false
}
