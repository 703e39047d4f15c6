package wizard

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates an unknown or expired wizard session.
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("wizard session not found: %s", e.SessionID)
}

// ErrSubmissionInFlight indicates a submission is already running for the
// session; duplicate triggers are blocked until it settles.
type ErrSubmissionInFlight struct{}

func (e *ErrSubmissionInFlight) Error() string {
	return "submission already in progress"
}

// ErrUnknownFlow indicates a flow name with no registered definition.
type ErrUnknownFlow struct {
	Name string
}

func (e *ErrUnknownFlow) Error() string {
	return fmt.Sprintf("unknown wizard flow: %s", e.Name)
}

// SubmissionError wraps a failed sub-resource write during fan-out. Any
// failed write fails the submission as a whole; there is no partial-success
// silent continuation.
type SubmissionError struct {
	Resource string
	Cause    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Resource, e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
