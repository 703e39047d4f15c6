package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/minjae/jobbridge/internal/db"
	"github.com/minjae/jobbridge/internal/server/middleware"
)

// JobseekerDashboardResponse aggregates everything the job-seeker landing
// page needs in one request
type JobseekerDashboardResponse struct {
	Profile        *db.FullProfile `json:"profile"`
	FeaturedTop    []db.JobPosting `json:"featured_top"`
	RecentPostings []db.JobPosting `json:"recent_postings"`
}

// CompanyDashboardResponse aggregates the company landing page data
type CompanyDashboardResponse struct {
	Company      *db.Company     `json:"company"`
	Postings     []db.JobPosting `json:"postings"`
	PostingCount int             `json:"posting_count"`
	PlacedCount  int             `json:"placed_count"`
}

// handleJobseekerDashboard loads the profile, the placed postings, and the
// latest postings concurrently
func (s *Server) handleJobseekerDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var resp JobseekerDashboardResponse
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		profile, err := s.db.GetFullProfile(ctx, userID)
		if err != nil {
			return err
		}
		resp.Profile = profile
		return nil
	})
	g.Go(func() error {
		placed, err := s.db.ListPlacedJobPostings(ctx)
		if err != nil {
			return err
		}
		for _, p := range placed {
			if p.DisplayPosition != nil && *p.DisplayPosition == db.DisplayPositionTop {
				resp.FeaturedTop = append(resp.FeaturedTop, p)
			}
		}
		return nil
	})
	g.Go(func() error {
		recent, _, err := s.db.ListJobPostings(ctx, db.ListJobPostingsOptions{
			ActiveOnly: true,
			Limit:      10,
		})
		if err != nil {
			return err
		}
		resp.RecentPostings = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// A missing profile sends the user to onboarding rather than an error
	if resp.Profile == nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"redirect": "/wizard/jobseeker-onboarding",
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCompanyDashboard loads the company and its postings concurrently
func (s *Server) handleCompanyDashboard(w http.ResponseWriter, r *http.Request) {
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
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"redirect": "/wizard/company-signup",
		})
		return
	}

	resp := CompanyDashboardResponse{Company: company}
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		postings, total, err := s.db.ListJobPostings(ctx, db.ListJobPostingsOptions{
			CompanyID: &company.ID,
			Limit:     100,
		})
		if err != nil {
			return err
		}
		resp.Postings = postings
		resp.PostingCount = total
		return nil
	})
	g.Go(func() error {
		placed, err := s.db.ListPlacedJobPostings(ctx)
		if err != nil {
			return err
		}
		for _, p := range placed {
			if p.CompanyID == company.ID {
				resp.PlacedCount++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
