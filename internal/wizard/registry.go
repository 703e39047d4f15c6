// Package wizard drives multi-step onboarding and profile-edit flows: an
// ordered step registry with validation gates, a merge-only accumulator,
// URL-derived step navigation, and a single fan-out submission on the final
// step.
package wizard

import (
	"strconv"
)

// StepDefinition defines metadata and the delta contract for one wizard step.
type StepDefinition struct {
	Number      int    // 1-based ordinal, defines sequence order
	Name        string
	Title       string
	Description string
	// NewDelta returns a fresh pointer to the step's validator-tagged delta
	// struct. The handler decodes the request body into it before merging.
	NewDelta func() any
}

// Flow is a fixed, ordered set of steps ending in one submission.
type Flow struct {
	Name        string
	Role        string // user type string written on submission
	Destination string // where the client is sent after a successful submit
	Steps       []StepDefinition
	Submitter   Submitter
}

// StepCount returns the number of steps in the flow.
func (f *Flow) StepCount() int {
	return len(f.Steps)
}

// Step returns the definition for a 1-based step number.
// ok is false when the number is out of range.
func (f *Flow) Step(number int) (StepDefinition, bool) {
	if number < 1 || number > len(f.Steps) {
		return StepDefinition{}, false
	}
	return f.Steps[number-1], true
}

// IsFinal reports whether number is the last step of the flow.
func (f *Flow) IsFinal(number int) bool {
	return number == len(f.Steps)
}

// StepFromQuery derives the current step from the raw URL query value.
// Absence defaults to step 1; non-numeric or out-of-range values are
// treated leniently and clamped rather than rejected.
func StepFromQuery(raw string, max int) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return ClampStep(n, max)
}

// ClampStep clamps a step number into [1, max].
func ClampStep(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// Advance returns the step after n, clamped to the last step.
// Advancing past the last step is a no-op on the pointer.
func Advance(n, max int) int {
	return ClampStep(n+1, max)
}

// Retreat returns the step before n, clamped to step 1.
func Retreat(n, max int) int {
	return ClampStep(n-1, max)
}
