package exam

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to the transport layer. Handlers map these to
// HTTP statuses; everything else is treated as a storage failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("attempt is not in progress")
	ErrInvalidQuestion = errors.New("question or option does not belong to exam")
)

// IneligibleError reports why a student may not start an exam. It carries a
// machine-readable reason and causes no state change.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string {
	return "ineligible: " + e.Reason
}

// Eligibility reasons.
const (
	ReasonNotAvailable       = "not available"
	ReasonMaxAttemptsReached = "max attempts reached"
)

// notFound wraps ErrNotFound with the missing entity for log context.
func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
