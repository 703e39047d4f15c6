package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/minjae/jobbridge/internal/db"
	"github.com/minjae/jobbridge/internal/server/middleware"
)

// CreateJobPostingRequest is the body for POST /job-postings
type CreateJobPostingRequest struct {
	TitleKo        string `json:"title_ko" validate:"required,min=1,max=200"`
	TitleEn        string `json:"title_en" validate:"omitempty,max=200"`
	Description    string `json:"description" validate:"max=10000"`
	Location       string `json:"location" validate:"max=200"`
	EmploymentType string `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract intern"`
	SalaryMin      *int   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *int   `json:"salary_max" validate:"omitempty,gte=0"`
	VisaSponsored  bool   `json:"visa_sponsored"`
	SourceURL      string `json:"source_url" validate:"omitempty,url"`
}

// UpdateJobPostingRequest is the body for PUT /job-postings/{id}; nil fields
// are left untouched
type UpdateJobPostingRequest struct {
	TitleKo        *string `json:"title_ko"`
	TitleEn        *string `json:"title_en"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	EmploymentType *string `json:"employment_type"`
	SalaryMin      *int    `json:"salary_min"`
	SalaryMax      *int    `json:"salary_max"`
	VisaSponsored  *bool   `json:"visa_sponsored"`
	Active         *bool   `json:"active"`
}

// ListJobPostingsResponse represents the response for listing job postings
type ListJobPostingsResponse struct {
	Postings []db.JobPosting `json:"postings"`
	Count    int             `json:"count"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// handleListJobPostings lists job postings with optional filters and pagination
func (s *Server) handleListJobPostings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	opts := db.ListJobPostingsOptions{
		Limit:  limit,
		Offset: offset,
	}

	if tier := r.URL.Query().Get("tier"); tier != "" {
		if !db.ValidDisplayPosition(tier) {
			s.errorResponse(w, http.StatusBadRequest, "Invalid tier")
			return
		}
		opts.Tier = &tier
	}

	if companyIDStr := r.URL.Query().Get("company_id"); companyIDStr != "" {
		companyID, err := uuid.Parse(companyIDStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid company_id")
			return
		}
		opts.CompanyID = &companyID
	}

	if r.URL.Query().Get("active") == "true" {
		opts.ActiveOnly = true
	}

	postings, total, err := s.db.ListJobPostings(ctx, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobPostingsResponse{
		Postings: postings,
		Count:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// handleGetJobPosting retrieves a job posting by its ID
func (s *Server) handleGetJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), postingID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, posting)
}

// handleCreateJobPosting creates a posting owned by the caller's company
func (s *Server) handleCreateJobPosting(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateJobPostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !s.validateRequest(w, req) {
		return
	}

	company, err := s.db.GetCompanyByOwner(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusConflict, "Complete company signup before posting jobs")
		return
	}

	id, err := s.db.CreateJobPosting(r.Context(), db.JobPostingCreateInput{
		CompanyID:      company.ID,
		TitleKo:        req.TitleKo,
		TitleEn:        req.TitleEn,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		VisaSponsored:  req.VisaSponsored,
		SourceURL:      req.SourceURL,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleUpdateJobPosting updates fields of a posting owned by the caller
func (s *Server) handleUpdateJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	var req UpdateJobPostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !s.authorizePostingOwner(w, r, postingID) {
		return
	}

	err = s.db.UpdateJobPosting(r.Context(), postingID, db.JobPostingUpdateInput{
		TitleKo:        req.TitleKo,
		TitleEn:        req.TitleEn,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		VisaSponsored:  req.VisaSponsored,
		Active:         req.Active,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Job posting updated"})
}

// handleDeleteJobPosting removes a posting owned by the caller
func (s *Server) handleDeleteJobPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID")
		return
	}

	if !s.authorizePostingOwner(w, r, postingID) {
		return
	}

	if err := s.db.DeleteJobPosting(r.Context(), postingID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Job posting deleted"})
}

// authorizePostingOwner verifies the posting belongs to the caller's company.
// Writes the error response and returns false when it does not.
func (s *Server) authorizePostingOwner(w http.ResponseWriter, r *http.Request, postingID uuid.UUID) bool {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}

	posting, err := s.db.GetJobPosting(r.Context(), postingID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return false
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return false
	}

	company, err := s.db.GetCompanyByOwner(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return false
	}
	if company == nil || company.ID != posting.CompanyID {
		s.errorResponse(w, http.StatusForbidden, "Posting belongs to another company")
		return false
	}
	return true
}
