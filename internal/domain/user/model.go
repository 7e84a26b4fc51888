package user

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password the sign-in forms accept.
const MinPasswordLength = 6

// AvatarBaseURL is the avatar generator used for freshly registered runners.
const AvatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

// Domain errors
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRegistration = errors.New("name, email and a password of at least 6 characters are required")
	ErrMalformedRecord     = errors.New("stored user record is malformed")
)

// User is the authenticated runner held by the session.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar,omitempty"`
	TotalRaces      int       `json:"totalRaces"`
	TotalMedals     int       `json:"totalMedals"`
	AveragePosition int       `json:"averagePosition"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Validate checks that a restored record has the shape the session relies on.
// PRE: none
// POST: Returns nil if ID and Email are present, ErrMalformedRecord otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Email) == "" {
		return ErrMalformedRecord
	}
	if u.TotalRaces < 0 || u.TotalMedals < 0 || u.AveragePosition < 0 {
		return ErrMalformedRecord
	}
	return nil
}

// FirstName returns the first word of the display name, used in greetings.
// INVARIANT: User fields are not mutated
func (u *User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return u.Email
	}
	return fields[0]
}

// Initials returns up to two upper-case initials for avatar placeholders.
// INVARIANT: User fields are not mutated
func (u *User) Initials() string {
	var initials []rune
	for _, f := range strings.Fields(u.Name) {
		initials = append(initials, []rune(strings.ToUpper(f))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// AvatarFor derives a deterministic avatar URI from a display name.
func AvatarFor(name string) string {
	return AvatarBaseURL + "?seed=" + url.QueryEscape(name)
}
