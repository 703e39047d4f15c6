package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session is one live wizard run: the accumulator for a single user working
// through a flow. Sessions are memory-only; navigating away without
// submitting discards them (there is no draft persistence).
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Flow   *Flow

	mu       sync.Mutex
	acc      Accumulator
	inFlight bool
	done     bool
}

// Result reports the outcome of a Proceed call.
type Result struct {
	// Submitted is true when the final step triggered the submission.
	Submitted bool
	// NextStep is the step number the client should navigate to. Meaningless
	// when Submitted is true.
	NextStep int
	// Destination is the post-submit redirect target, set when Submitted.
	Destination string
}

// Snapshot returns a copy of the current accumulator for rendering.
func (s *Session) Snapshot() Accumulator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acc.Clone()
}

// Submitting reports whether a submission is currently in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Done reports whether the session has completed its submission.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Proceed merges the validated step delta and advances. On any step but the
// last it returns the next step number. On the final step it builds the
// combined payload (accumulator plus the final delta), runs the flow's
// submitter, and reports the redirect destination.
//
// While a submission is in flight, further Proceed calls fail with
// ErrSubmissionInFlight. A failed submission keeps the merged accumulator
// so the user can retry, and releases the guard.
func (s *Session) Proceed(ctx context.Context, step int, delta map[string]any) (Result, error) {
	step = ClampStep(step, s.Flow.StepCount())

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Result{}, &ErrSubmissionInFlight{}
	}
	s.acc.Merge(delta)
	if !s.Flow.IsFinal(step) {
		next := Advance(step, s.Flow.StepCount())
		s.mu.Unlock()
		return Result{NextStep: next}, nil
	}

	// Final step: submit the combined payload under the single-flight guard.
	s.inFlight = true
	payload := s.acc.Clone()
	s.mu.Unlock()

	err := s.Flow.Submitter.Submit(ctx, s.UserID, payload)

	s.mu.Lock()
	s.inFlight = false
	if err == nil {
		s.done = true
	}
	s.mu.Unlock()

	if err != nil {
		return Result{}, err
	}
	return Result{Submitted: true, Destination: s.Flow.Destination}, nil
}

// Store holds live wizard sessions in process memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	flows    map[string]*Flow
}

// NewStore creates a session store over the given flows.
func NewStore(flows ...*Flow) *Store {
	byName := make(map[string]*Flow, len(flows))
	for _, f := range flows {
		byName[f.Name] = f
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		flows:    byName,
	}
}

// Flow returns a registered flow by name.
func (st *Store) Flow(name string) (*Flow, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	f, ok := st.flows[name]
	if !ok {
		return nil, &ErrUnknownFlow{Name: name}
	}
	return f, nil
}

// Create starts a new session for userID on the named flow. seed is merged
// into the fresh accumulator (edit flows seed from the existing profile;
// new onboarding passes nil).
func (st *Store) Create(flowName string, userID uuid.UUID, seed map[string]any) (*Session, error) {
	flow, err := st.Flow(flowName)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:     uuid.New(),
		UserID: userID,
		Flow:   flow,
		acc:    NewAccumulator(),
	}
	if seed != nil {
		sess.acc.Merge(seed)
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess, nil
}

// Get returns a live session by ID.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	return sess, nil
}

// Delete discards a session and its accumulator.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
