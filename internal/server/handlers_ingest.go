package server

import (
	"encoding/json"
	"net/http"
)

// IngestPreviewRequest is the body for POST /ingest/preview
type IngestPreviewRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// handleIngestPreview fetches an external posting page and extracts a draft
// the company can review before creating the posting
func (s *Server) handleIngestPreview(w http.ResponseWriter, r *http.Request) {
	var req IngestPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !s.validateRequest(w, req) {
		return
	}

	preview, err := s.ingest.Preview(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to fetch posting: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, preview)
}
