package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/minjae/jobbridge/internal/placement"
)

// AssignPlacementRequest is the body for POST /job-postings/{id}/placement.
// Priority is the 1-based slot address within the tier.
type AssignPlacementRequest struct {
	Position string `json:"position" validate:"required,oneof=top middle bottom"`
	Priority int    `json:"priority" validate:"required,gte=1"`
}

// AssignPlacementResponse reports the confirmed assignment
type AssignPlacementResponse struct {
	JobID      string               `json:"job_id"`
	Assignment placement.Assignment `json:"assignment"`
}

// currentGrid derives slot occupancy from the placed postings in storage
func (s *Server) currentGrid(ctx context.Context) (placement.Grid, error) {
	placed, err := s.db.ListPlacedJobPostings(ctx)
	if err != nil {
		return placement.Grid{}, err
	}

	postings := make([]placement.Posting, 0, len(placed))
	for _, p := range placed {
		posting := placement.Posting{
			ID:          p.ID,
			Title:       p.TitleKo,
			CompanyName: p.CompanyName,
		}
		if p.DisplayPosition != nil {
			posting.Position = placement.Tier(*p.DisplayPosition)
		}
		if p.DisplayPriority != nil {
			posting.Priority = *p.DisplayPriority
		}
		postings = append(postings, posting)
	}
	return placement.ComputeOccupancy(postings, s.layouts), nil
}

// handlePlacementGrid returns the occupancy of all three display tiers
func (s *Server) handlePlacementGrid(w http.ResponseWriter, r *http.Request) {
	grid, err := s.currentGrid(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, grid)
}

// handleAssignPlacement places a posting into a display slot. The selection
// protocol runs over freshly derived occupancy, and the persisting write
// refuses slots taken by a concurrent assignment.
func (s *Server) handleAssignPlacement(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	var req AssignPlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !s.validateRequest(w, req) {
		return
	}

	if !s.authorizePostingOwner(w, r, postingID) {
		return
	}

	tier := placement.Tier(req.Position)
	layout, ok := s.layouts[tier]
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Unknown tier")
		return
	}
	if req.Priority > layout.Capacity() {
		s.errorResponse(w, http.StatusBadRequest, "Priority exceeds tier capacity")
		return
	}

	grid, err := s.currentGrid(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	selector := placement.NewSelector(grid)
	selected, err := selector.Select(tier, req.Priority-1)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !selected {
		s.errorResponse(w, http.StatusConflict, "Slot is already occupied")
		return
	}

	assignment, err := selector.Confirm()
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.db.AssignDisplaySlot(r.Context(), postingID, string(assignment.Position), assignment.Priority)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, AssignPlacementResponse{
		JobID:      postingID.String(),
		Assignment: assignment,
	})
}

// handleClearPlacement removes a posting from its display slot
func (s *Server) handleClearPlacement(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	if !s.authorizePostingOwner(w, r, postingID) {
		return
	}

	if err := s.db.ClearDisplaySlot(r.Context(), postingID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Placement cleared"})
}

// tierSummary is one row of the placement summary endpoint
type tierSummary struct {
	Tier     placement.Tier `json:"tier"`
	Capacity int            `json:"capacity"`
	Occupied int            `json:"occupied"`
	Free     int            `json:"free"`
}

// handlePlacementSummary reports per-tier occupancy counts
func (s *Server) handlePlacementSummary(w http.ResponseWriter, r *http.Request) {
	grid, err := s.currentGrid(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	summaries := make([]tierSummary, 0, len(grid.Tiers))
	for _, tier := range placement.Tiers() {
		tg := grid.Tiers[tier]
		summaries = append(summaries, tierSummary{
			Tier:     tier,
			Capacity: tg.Layout.Capacity(),
			Occupied: tg.OccupiedCount(),
			Free:     tg.FreeCount(),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"tiers": summaries})
}
