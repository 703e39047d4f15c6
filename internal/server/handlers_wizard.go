package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/minjae/jobbridge/internal/server/middleware"
	"github.com/minjae/jobbridge/internal/wizard"
)

// StartWizardResponse is returned when a wizard session is created
type StartWizardResponse struct {
	SessionID string           `json:"session_id"`
	Flow      string           `json:"flow"`
	Step      int              `json:"step"`
	StepCount int              `json:"step_count"`
	State     map[string]any   `json:"state"`
	Steps     []WizardStepInfo `json:"steps"`
}

// WizardStepInfo describes one step for the client's progress display
type WizardStepInfo struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WizardStateResponse reports a session's current accumulator and step
type WizardStateResponse struct {
	SessionID string         `json:"session_id"`
	Flow      string         `json:"flow"`
	Step      int            `json:"step"`
	StepCount int            `json:"step_count"`
	State     map[string]any `json:"state"`
}

// WizardStepResponse is returned after a step submission
type WizardStepResponse struct {
	SessionID   string `json:"session_id"`
	Submitted   bool   `json:"submitted"`
	NextStep    int    `json:"next_step,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// stepInfos converts flow steps into the response shape
func stepInfos(flow *wizard.Flow) []WizardStepInfo {
	infos := make([]WizardStepInfo, 0, flow.StepCount())
	for _, def := range flow.Steps {
		infos = append(infos, WizardStepInfo{
			Number:      def.Number,
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
		})
	}
	return infos
}

// handleStartWizard creates a session on the named flow. The edit flow seeds
// the accumulator from the stored profile; starting it without a profile
// redirects the client to onboarding instead.
func (s *Server) handleStartWizard(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	flowName := r.PathValue("flow")
	flow, err := s.wizards.Flow(flowName)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var seed map[string]any
	if flowName == wizard.FlowJobseekerEdit {
		seed, err = s.profileSeed(r, userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if seed == nil {
			s.jsonResponse(w, http.StatusConflict, map[string]string{
				"error":    "no profile to edit",
				"redirect": "/wizard/" + wizard.FlowJobseekerOnboarding,
			})
			return
		}
	}

	sess, err := s.wizards.Create(flowName, userID, seed)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, StartWizardResponse{
		SessionID: sess.ID.String(),
		Flow:      flow.Name,
		Step:      1,
		StepCount: flow.StepCount(),
		State:     sess.Snapshot(),
		Steps:     stepInfos(flow),
	})
}

// profileSeed builds the edit-flow seed from the stored profile. Returns nil
// when the user has no profile yet.
func (s *Server) profileSeed(r *http.Request, userID uuid.UUID) (map[string]any, error) {
	profile, err := s.db.GetFullProfile(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	seed := map[string]any{
		"fullName":    profile.FullName,
		"nationality": profile.Nationality,
		"visaStatus":  profile.VisaStatus,
		"phone":       profile.Phone,
		"bio":         profile.Bio,
	}
	if len(profile.Skills) > 0 {
		seed["skills"] = profile.Skills
	}
	if len(profile.Languages) > 0 {
		seed["languages"] = profile.Languages
	}
	if len(profile.DesiredPositions) > 0 {
		seed["desiredPositions"] = profile.DesiredPositions
	}
	if len(profile.PreferredLocations) > 0 {
		seed["preferredLocations"] = profile.PreferredLocations
	}
	if profile.DesiredSalaryMin != nil && profile.DesiredSalaryMax != nil {
		seed["salaryRange"] = map[string]any{
			"min": *profile.DesiredSalaryMin,
			"max": *profile.DesiredSalaryMax,
		}
	}
	return seed, nil
}

// wizardSession resolves the session from the path and checks it belongs to
// the caller. Writes the error response and returns nil on failure.
func (s *Server) wizardSession(w http.ResponseWriter, r *http.Request) *wizard.Session {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}

	sessionID, err := uuid.Parse(r.PathValue("session_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil
	}

	sess, err := s.wizards.Get(sessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil
	}
	if sess.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "Session belongs to another user")
		return nil
	}
	if sess.Flow.Name != r.PathValue("flow") {
		s.errorResponse(w, http.StatusNotFound, "Session does not belong to this flow")
		return nil
	}
	return sess
}

// handleWizardState returns the session accumulator and the current step
// derived from the step query parameter.
func (s *Server) handleWizardState(w http.ResponseWriter, r *http.Request) {
	sess := s.wizardSession(w, r)
	if sess == nil {
		return
	}

	step := wizard.StepFromQuery(r.URL.Query().Get("step"), sess.Flow.StepCount())
	s.jsonResponse(w, http.StatusOK, WizardStateResponse{
		SessionID: sess.ID.String(),
		Flow:      sess.Flow.Name,
		Step:      step,
		StepCount: sess.Flow.StepCount(),
		State:     sess.Snapshot(),
	})
}

// handleWizardStep validates and merges one step's delta. The final step
// triggers the submission; its response carries the redirect destination.
func (s *Server) handleWizardStep(w http.ResponseWriter, r *http.Request) {
	sess := s.wizardSession(w, r)
	if sess == nil {
		return
	}

	step := wizard.StepFromQuery(r.URL.Query().Get("step"), sess.Flow.StepCount())
	def, ok := sess.Flow.Step(step)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Unknown step")
		return
	}

	body, err := readBody(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Decode into the typed delta for validation, then merge the raw keys so
	// only fields the client actually sent overwrite the accumulator.
	delta := def.NewDelta()
	if err := json.Unmarshal(body, delta); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	violations, err := wizard.ValidateDelta(delta)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Validation failed")
		return
	}
	if !violations.Empty() {
		writeViolations(w, violations)
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := sess.Proceed(r.Context(), step, raw)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := WizardStepResponse{SessionID: sess.ID.String(), Submitted: result.Submitted}
	if result.Submitted {
		resp.Destination = result.Destination
		s.wizards.Delete(sess.ID)
	} else {
		resp.NextStep = result.NextStep
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleWizardBack reports the step before the current one. Stored answers
// are untouched; going back never discards merged data.
func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	sess := s.wizardSession(w, r)
	if sess == nil {
		return
	}

	step := wizard.StepFromQuery(r.URL.Query().Get("step"), sess.Flow.StepCount())
	s.jsonResponse(w, http.StatusOK, WizardStepResponse{
		SessionID: sess.ID.String(),
		NextStep:  wizard.Retreat(step, sess.Flow.StepCount()),
	})
}

// handleDiscardWizard drops a session and everything merged into it
func (s *Server) handleDiscardWizard(w http.ResponseWriter, r *http.Request) {
	sess := s.wizardSession(w, r)
	if sess == nil {
		return
	}

	s.wizards.Delete(sess.ID)
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Session discarded"})
}
