package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHandleAssignPlacement_InvalidID tests assignment with invalid UUID
func TestHandleAssignPlacement_InvalidID(t *testing.T) {
	s := newTestServer()

	body := `{"position": "top", "priority": 1}`
	req := httptest.NewRequest(http.MethodPost, "/job-postings/not-a-uuid/placement", bytes.NewBufferString(body))
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleAssignPlacement(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Contains(t, resp["error"], "Invalid job posting ID")
}

// TestHandleAssignPlacement_InvalidBody tests assignment with malformed JSON
func TestHandleAssignPlacement_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/job-postings/11111111-1111-1111-1111-111111111111/placement", bytes.NewBufferString("{not json"))
	req.SetPathValue("id", "11111111-1111-1111-1111-111111111111")
	w := httptest.NewRecorder()

	s.handleAssignPlacement(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestHandleAssignPlacement_UnknownTier tests assignment to a tier outside the grid
func TestHandleAssignPlacement_UnknownTier(t *testing.T) {
	s := newTestServer()

	body := `{"position": "sideways", "priority": 1}`
	req := httptest.NewRequest(http.MethodPost, "/job-postings/11111111-1111-1111-1111-111111111111/placement", bytes.NewBufferString(body))
	req.SetPathValue("id", "11111111-1111-1111-1111-111111111111")
	w := httptest.NewRecorder()

	s.handleAssignPlacement(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Violations []map[string]any `json:"violations"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "Position", resp.Violations[0]["field"])
}

// TestHandleAssignPlacement_ZeroPriority tests that the 1-based priority floor holds
func TestHandleAssignPlacement_ZeroPriority(t *testing.T) {
	s := newTestServer()

	body := `{"position": "top", "priority": 0}`
	req := httptest.NewRequest(http.MethodPost, "/job-postings/11111111-1111-1111-1111-111111111111/placement", bytes.NewBufferString(body))
	req.SetPathValue("id", "11111111-1111-1111-1111-111111111111")
	w := httptest.NewRecorder()

	s.handleAssignPlacement(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// TestHandleClearPlacement_InvalidID tests clearing with invalid UUID
func TestHandleClearPlacement_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/job-postings/not-a-uuid/placement", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleClearPlacement(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
