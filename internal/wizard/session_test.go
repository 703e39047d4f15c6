package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter records fan-out calls and can fail or block on demand.
type fakeWriter struct {
	saved         []JobseekerPayload
	skillCalls    [][]string
	languageCalls [][]Language
	positionCalls [][]string
	locationCalls [][]string
	salaryCalls   []SalaryRange
	failSkills    bool
	blockUntil    chan struct{}
}

func (f *fakeWriter) SaveProfile(_ context.Context, _ uuid.UUID, p JobseekerPayload) error {
	if f.blockUntil != nil {
		<-f.blockUntil
	}
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeWriter) ReplaceSkills(_ context.Context, _ uuid.UUID, skills []string) error {
	if f.failSkills {
		return errors.New("connection reset")
	}
	f.skillCalls = append(f.skillCalls, skills)
	return nil
}

func (f *fakeWriter) ReplaceLanguages(_ context.Context, _ uuid.UUID, langs []Language) error {
	f.languageCalls = append(f.languageCalls, langs)
	return nil
}

func (f *fakeWriter) ReplaceDesiredPositions(_ context.Context, _ uuid.UUID, ps []string) error {
	f.positionCalls = append(f.positionCalls, ps)
	return nil
}

func (f *fakeWriter) ReplacePreferredLocations(_ context.Context, _ uuid.UUID, ls []string) error {
	f.locationCalls = append(f.locationCalls, ls)
	return nil
}

func (f *fakeWriter) SaveSalaryRange(_ context.Context, _ uuid.UUID, r SalaryRange) error {
	f.salaryCalls = append(f.salaryCalls, r)
	return nil
}

func newTestSession(t *testing.T, writer ProfileWriter) (*Store, *Session) {
	t.Helper()
	store := NewStore(JobseekerOnboardingFlow(writer, ""))
	sess, err := store.Create(FlowJobseekerOnboarding, uuid.New(), nil)
	require.NoError(t, err)
	return store, sess
}

// TestSession_ProceedAdvances verifies non-final steps merge and advance.
func TestSession_ProceedAdvances(t *testing.T) {
	_, sess := newTestSession(t, &fakeWriter{})

	res, err := sess.Proceed(context.Background(), 1, map[string]any{"fullName": "Kim"})
	require.NoError(t, err)
	assert.False(t, res.Submitted)
	assert.Equal(t, 2, res.NextStep)

	acc := sess.Snapshot()
	v, _ := acc.Get("fullName")
	assert.Equal(t, "Kim", v)
}

// TestSession_FinalStepSubmission covers the end-to-end scenario: fields
// accumulated at earlier steps reach the final payload together with the
// final delta, stamped with onboardingCompleted and the role string.
func TestSession_FinalStepSubmission(t *testing.T) {
	writer := &fakeWriter{}
	_, sess := newTestSession(t, writer)
	ctx := context.Background()

	_, err := sess.Proceed(ctx, 1, map[string]any{"fullName": "Kim", "skills": []string{}})
	require.NoError(t, err)
	_, err = sess.Proceed(ctx, 2, nil)
	require.NoError(t, err)
	_, err = sess.Proceed(ctx, 3, nil)
	require.NoError(t, err)

	res, err := sess.Proceed(ctx, 4, map[string]any{
		"salaryRange": map[string]any{"min": 3000, "max": 5000},
	})
	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, "/dashboard/jobseeker", res.Destination)
	assert.True(t, sess.Done())

	require.Len(t, writer.saved, 1)
	p := writer.saved[0]
	assert.Equal(t, "Kim", p.FullName)
	assert.NotNil(t, p.Skills)
	assert.Empty(t, p.Skills)
	require.NotNil(t, p.SalaryRange)
	assert.Equal(t, 3000, p.SalaryRange.Min)
	assert.Equal(t, 5000, p.SalaryRange.Max)
	assert.True(t, p.OnboardingCompleted)
	assert.Equal(t, RoleJobseeker, p.UserType)

	// Empty skills must not trigger the skills write; the salary range must.
	assert.Empty(t, writer.skillCalls)
	require.Len(t, writer.salaryCalls, 1)
}

// TestSession_NonEmptySkillsInvokeWrite verifies the no-empty-write property
// in the positive direction.
func TestSession_NonEmptySkillsInvokeWrite(t *testing.T) {
	writer := &fakeWriter{}
	_, sess := newTestSession(t, writer)
	ctx := context.Background()

	_, err := sess.Proceed(ctx, 2, map[string]any{"skills": []string{"Go", "Korean"}})
	require.NoError(t, err)
	_, err = sess.Proceed(ctx, 4, map[string]any{
		"salaryRange": map[string]any{"min": 2800, "max": 4000},
	})
	require.NoError(t, err)

	require.Len(t, writer.skillCalls, 1)
	assert.Equal(t, []string{"Go", "Korean"}, writer.skillCalls[0])
}

// TestSession_FailedSubmissionReleasesGuard verifies a failed write fails
// the submission as a whole, keeps the accumulator, and allows a retry.
func TestSession_FailedSubmissionReleasesGuard(t *testing.T) {
	writer := &fakeWriter{failSkills: true}
	_, sess := newTestSession(t, writer)
	ctx := context.Background()

	_, err := sess.Proceed(ctx, 2, map[string]any{"skills": []string{"Go"}})
	require.NoError(t, err)

	_, err = sess.Proceed(ctx, 4, map[string]any{
		"salaryRange": map[string]any{"min": 3000, "max": 5000},
	})
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "skills", subErr.Resource)
	assert.False(t, sess.Submitting())
	assert.False(t, sess.Done())

	// Retry succeeds once the backend recovers.
	writer.failSkills = false
	res, err := sess.Proceed(ctx, 4, nil)
	require.NoError(t, err)
	assert.True(t, res.Submitted)
}

// TestSession_InFlightGuardBlocksDuplicates verifies overlapping submissions
// are refused while one is running.
func TestSession_InFlightGuardBlocksDuplicates(t *testing.T) {
	writer := &fakeWriter{blockUntil: make(chan struct{})}
	_, sess := newTestSession(t, writer)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := sess.Proceed(ctx, 4, map[string]any{
			"salaryRange": map[string]any{"min": 1, "max": 2},
		})
		firstDone <- err
	}()

	// Wait for the first submission to take the guard.
	require.Eventually(t, sess.Submitting, time.Second, time.Millisecond)

	_, err := sess.Proceed(ctx, 4, nil)
	require.Error(t, err)
	assert.IsType(t, &ErrSubmissionInFlight{}, err)

	close(writer.blockUntil)
	require.NoError(t, <-firstDone)
}

// TestStore_SessionLifecycle verifies create, lookup, seed, and delete.
func TestStore_SessionLifecycle(t *testing.T) {
	store := NewStore(JobseekerOnboardingFlow(&fakeWriter{}, ""))
	userID := uuid.New()

	sess, err := store.Create(FlowJobseekerOnboarding, userID, map[string]any{"fullName": "Lee"})
	require.NoError(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	v, _ := got.Snapshot().Get("fullName")
	assert.Equal(t, "Lee", v)

	store.Delete(sess.ID)
	_, err = store.Get(sess.ID)
	require.Error(t, err)
	assert.IsType(t, &ErrSessionNotFound{}, err)
}

// TestStore_UnknownFlow verifies unregistered flow names are rejected.
func TestStore_UnknownFlow(t *testing.T) {
	store := NewStore()

	_, err := store.Create("talent-import", uuid.New(), nil)
	require.Error(t, err)
	assert.IsType(t, &ErrUnknownFlow{}, err)
}
