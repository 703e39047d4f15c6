package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/minjae/jobbridge/internal/server/middleware"
)

// handleGetMyCompany returns the company owned by the caller
func (s *Server) handleGetMyCompany(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	company, err := s.db.GetCompanyByOwner(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

// handleGetCompany returns a company by ID
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	company, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}
