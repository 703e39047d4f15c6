package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae/jobbridge/internal/wizard"
)

// startWizard runs the start handler and returns the decoded response
func startWizard(t *testing.T, s *testServer, flow string, userID uuid.UUID, userType string) StartWizardResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/wizard/"+flow, nil)
	req.SetPathValue("flow", flow)
	req = authedRequest(req, userID, userType)
	w := httptest.NewRecorder()

	s.handleStartWizard(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp StartWizardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// postStep submits one step body and returns the recorder
func postStep(s *testServer, flow, sessionID string, userID uuid.UUID, userType string, step int, body string) *httptest.ResponseRecorder {
	url := fmt.Sprintf("/wizard/%s/%s?step=%d", flow, sessionID, step)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.SetPathValue("flow", flow)
	req.SetPathValue("session_id", sessionID)
	req = authedRequest(req, userID, userType)
	w := httptest.NewRecorder()

	s.handleWizardStep(w, req)
	return w
}

// TestHandleStartWizard_UnknownFlow tests starting a flow that is not registered
func TestHandleStartWizard_UnknownFlow(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/wizard/moving-abroad", nil)
	req.SetPathValue("flow", "moving-abroad")
	req = authedRequest(req, uuid.New(), "jobseeker")
	w := httptest.NewRecorder()

	s.handleStartWizard(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandleStartWizard_Unauthenticated tests starting without an identity
func TestHandleStartWizard_Unauthenticated(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/wizard/"+wizard.FlowJobseekerOnboarding, nil)
	req.SetPathValue("flow", wizard.FlowJobseekerOnboarding)
	w := httptest.NewRecorder()

	s.handleStartWizard(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestHandleStartWizard_ReportsSteps tests the step listing in the start response
func TestHandleStartWizard_ReportsSteps(t *testing.T) {
	s := newTestServer()

	resp := startWizard(t, s, wizard.FlowJobseekerOnboarding, uuid.New(), "jobseeker")

	assert.Equal(t, wizard.FlowJobseekerOnboarding, resp.Flow)
	assert.Equal(t, 1, resp.Step)
	assert.Equal(t, 4, resp.StepCount)
	require.Len(t, resp.Steps, 4)
	assert.Equal(t, "basic-info", resp.Steps[0].Name)
	assert.Equal(t, "salary", resp.Steps[3].Name)
	assert.Empty(t, resp.State)
}

// TestWizardFlow_JobseekerOnboarding walks all four steps and checks the
// submission lands on the profile writer with the role stamped
func TestWizardFlow_JobseekerOnboarding(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()

	start := startWizard(t, s, wizard.FlowJobseekerOnboarding, userID, "jobseeker")
	flow := wizard.FlowJobseekerOnboarding

	w := postStep(s, flow, start.SessionID, userID, "jobseeker", 1,
		`{"fullName": "Nguyen Thi Mai", "nationality": "VN", "visaStatus": "E-9"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var step1 WizardStepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step1))
	assert.False(t, step1.Submitted)
	assert.Equal(t, 2, step1.NextStep)

	w = postStep(s, flow, start.SessionID, userID, "jobseeker", 2,
		`{"bio": "Line cook turned developer", "skills": ["Go", "PostgreSQL"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postStep(s, flow, start.SessionID, userID, "jobseeker", 3,
		`{"desiredPositions": ["Backend Engineer"], "preferredLocations": ["Seoul"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postStep(s, flow, start.SessionID, userID, "jobseeker", 4,
		`{"salaryRange": {"min": 40000000, "max": 55000000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var final WizardStepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &final))
	assert.True(t, final.Submitted)
	assert.Equal(t, "/dashboard/jobseeker", final.Destination)

	require.Len(t, s.profiles.saved, 1)
	saved := s.profiles.saved[0]
	assert.Equal(t, "Nguyen Thi Mai", saved.FullName)
	assert.True(t, saved.OnboardingCompleted)
	assert.Equal(t, "jobseeker", saved.UserType)

	// The session is gone once submitted
	req := httptest.NewRequest(http.MethodGet, "/wizard/"+flow+"/"+start.SessionID, nil)
	req.SetPathValue("flow", flow)
	req.SetPathValue("session_id", start.SessionID)
	req = authedRequest(req, userID, "jobseeker")
	w = httptest.NewRecorder()
	s.handleWizardState(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestWizardFlow_CompanySignup walks the three company steps
func TestWizardFlow_CompanySignup(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()
	flow := wizard.FlowCompanySignup

	start := startWizard(t, s, flow, userID, "company")

	w := postStep(s, flow, start.SessionID, userID, "company", 1,
		`{"nameKo": "한빛테크", "nameEn": "Hanbit Tech", "registrationNumber": "123-45-67890"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postStep(s, flow, start.SessionID, userID, "company", 2,
		`{"industry": "software", "size": "small"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postStep(s, flow, start.SessionID, userID, "company", 3,
		`{"contactName": "Park Jiyoung", "contactPhone": "010-1234-5678"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var final WizardStepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &final))
	assert.True(t, final.Submitted)
	assert.Equal(t, "/dashboard/company", final.Destination)

	require.Len(t, s.companies.saved, 1)
	assert.Equal(t, "한빛테크", s.companies.saved[0].NameKo)
	assert.Equal(t, "company", s.companies.saved[0].UserType)
}

// TestHandleWizardStep_AllViolationsReported tests that one bad step surfaces
// every failed rule together
func TestHandleWizardStep_AllViolationsReported(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()

	start := startWizard(t, s, wizard.FlowJobseekerOnboarding, userID, "jobseeker")

	// Name, nationality, and visa status all missing
	w := postStep(s, wizard.FlowJobseekerOnboarding, start.SessionID, userID, "jobseeker", 1, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Violations []wizard.Violation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Violations, 3)
}

// TestHandleWizardStep_MergeKeepsEarlierAnswers tests that a later step does
// not wipe fields merged by an earlier one
func TestHandleWizardStep_MergeKeepsEarlierAnswers(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()
	flow := wizard.FlowJobseekerOnboarding

	start := startWizard(t, s, flow, userID, "jobseeker")

	w := postStep(s, flow, start.SessionID, userID, "jobseeker", 1,
		`{"fullName": "Aisha Rahman", "nationality": "BD", "visaStatus": "D-10"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postStep(s, flow, start.SessionID, userID, "jobseeker", 2, `{"bio": "Short bio"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/wizard/"+flow+"/"+start.SessionID+"?step=3", nil)
	req.SetPathValue("flow", flow)
	req.SetPathValue("session_id", start.SessionID)
	req = authedRequest(req, userID, "jobseeker")
	rec := httptest.NewRecorder()
	s.handleWizardState(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state WizardStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 3, state.Step)
	assert.Equal(t, "Aisha Rahman", state.State["fullName"])
	assert.Equal(t, "Short bio", state.State["bio"])
}

// TestHandleWizardState_ClampsStepParam tests lenient ?step= handling
func TestHandleWizardState_ClampsStepParam(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()
	flow := wizard.FlowJobseekerOnboarding

	start := startWizard(t, s, flow, userID, "jobseeker")

	tests := []struct {
		query string
		want  int
	}{
		{"?step=99", 4},
		{"?step=0", 1},
		{"?step=-3", 1},
		{"?step=abc", 1},
		{"", 1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/wizard/"+flow+"/"+start.SessionID+tt.query, nil)
		req.SetPathValue("flow", flow)
		req.SetPathValue("session_id", start.SessionID)
		req = authedRequest(req, userID, "jobseeker")
		w := httptest.NewRecorder()

		s.handleWizardState(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var state WizardStateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, tt.want, state.Step, "query %q", tt.query)
	}
}

// TestHandleWizardBack_KeepsData tests back navigation leaves the accumulator alone
func TestHandleWizardBack_KeepsData(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()
	flow := wizard.FlowJobseekerOnboarding

	start := startWizard(t, s, flow, userID, "jobseeker")
	w := postStep(s, flow, start.SessionID, userID, "jobseeker", 1,
		`{"fullName": "Chen Wei", "nationality": "CN", "visaStatus": "F-2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/wizard/"+flow+"/"+start.SessionID+"/back?step=2", nil)
	req.SetPathValue("flow", flow)
	req.SetPathValue("session_id", start.SessionID)
	req = authedRequest(req, userID, "jobseeker")
	rec := httptest.NewRecorder()
	s.handleWizardBack(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp WizardStepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.NextStep)

	// Step 1's answers are still in the accumulator
	stateReq := httptest.NewRequest(http.MethodGet, "/wizard/"+flow+"/"+start.SessionID, nil)
	stateReq.SetPathValue("flow", flow)
	stateReq.SetPathValue("session_id", start.SessionID)
	stateReq = authedRequest(stateReq, userID, "jobseeker")
	stateRec := httptest.NewRecorder()
	s.handleWizardState(stateRec, stateReq)

	var state WizardStateResponse
	require.NoError(t, json.Unmarshal(stateRec.Body.Bytes(), &state))
	assert.Equal(t, "Chen Wei", state.State["fullName"])
}

// TestHandleWizardState_WrongUser tests that sessions are private to their owner
func TestHandleWizardState_WrongUser(t *testing.T) {
	s := newTestServer()
	owner := uuid.New()
	flow := wizard.FlowJobseekerOnboarding

	start := startWizard(t, s, flow, owner, "jobseeker")

	req := httptest.NewRequest(http.MethodGet, "/wizard/"+flow+"/"+start.SessionID, nil)
	req.SetPathValue("flow", flow)
	req.SetPathValue("session_id", start.SessionID)
	req = authedRequest(req, uuid.New(), "jobseeker")
	w := httptest.NewRecorder()

	s.handleWizardState(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestHandleWizardState_WrongFlow tests a session fetched through another flow's path
func TestHandleWizardState_WrongFlow(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()

	start := startWizard(t, s, wizard.FlowJobseekerOnboarding, userID, "jobseeker")

	req := httptest.NewRequest(http.MethodGet, "/wizard/"+wizard.FlowCompanySignup+"/"+start.SessionID, nil)
	req.SetPathValue("flow", wizard.FlowCompanySignup)
	req.SetPathValue("session_id", start.SessionID)
	req = authedRequest(req, userID, "jobseeker")
	w := httptest.NewRecorder()

	s.handleWizardState(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandleWizardState_InvalidSessionID tests a malformed session ID
func TestHandleWizardState_InvalidSessionID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/wizard/"+wizard.FlowJobseekerOnboarding+"/not-a-uuid", nil)
	req.SetPathValue("flow", wizard.FlowJobseekerOnboarding)
	req.SetPathValue("session_id", "not-a-uuid")
	req = authedRequest(req, uuid.New(), "jobseeker")
	w := httptest.NewRecorder()

	s.handleWizardState(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestHandleDiscardWizard tests that discarding drops the session
func TestHandleDiscardWizard(t *testing.T) {
	s := newTestServer()
	userID := uuid.New()
	flow := wizard.FlowJobseekerOnboarding

	start := startWizard(t, s, flow, userID, "jobseeker")

	req := httptest.NewRequest(http.MethodDelete, "/wizard/"+flow+"/"+start.SessionID, nil)
	req.SetPathValue("flow", flow)
	req.SetPathValue("session_id", start.SessionID)
	req = authedRequest(req, userID, "jobseeker")
	w := httptest.NewRecorder()
	s.handleDiscardWizard(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	stateReq := httptest.NewRequest(http.MethodGet, "/wizard/"+flow+"/"+start.SessionID, nil)
	stateReq.SetPathValue("flow", flow)
	stateReq.SetPathValue("session_id", start.SessionID)
	stateReq = authedRequest(stateReq, userID, "jobseeker")
	stateRec := httptest.NewRecorder()
	s.handleWizardState(stateRec, stateReq)
	assert.Equal(t, http.StatusNotFound, stateRec.Code)
}
