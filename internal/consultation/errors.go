package consultation

import (
	"errors"
	"strings"
)

var (
	// ErrEmailUnavailable signals a rejected upstream email credential.
	ErrEmailUnavailable = errors.New("email service unavailable")

	// ErrEmailMisconfigured signals missing email configuration.
	ErrEmailMisconfigured = errors.New("email service misconfigured")

	// ErrSubmissionInFlight is returned when Submit is called while a previous
	// submission is still outstanding.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// ValidationError aggregates every rule a draft violated. All rules are
// checked; the user sees the full list at once rather than one at a time.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
