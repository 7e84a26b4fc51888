package result

import (
	"fmt"
	"strings"
	"time"
)

// Result is a completed race for a runner.
type Result struct {
	ID               string
	EventID          string
	EventName        string
	UserID           string
	Time             string // elapsed, HH:MM:SS
	GeneralPosition  int
	CategoryPosition int
	Category         string
	Distance         string
	Date             string // ISO calendar date
	CertificateURL   string
}

// HasCertificate reports whether a completion certificate can be downloaded.
func (r *Result) HasCertificate() bool {
	return r.CertificateURL != ""
}

// Elapsed parses the HH:MM:SS race time.
// PRE: none
// POST: Returns the duration or an error if Time is not HH:MM:SS
func (r *Result) Elapsed() (time.Duration, error) {
	parts := strings.Split(r.Time, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("race time %q: want HH:MM:SS", r.Time)
	}
	return time.ParseDuration(parts[0] + "h" + parts[1] + "m" + parts[2] + "s")
}
