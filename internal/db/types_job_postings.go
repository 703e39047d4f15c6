package db

import (
	"time"

	"github.com/google/uuid"
)

// Display position constants for the three board tiers
const (
	DisplayPositionTop    = "top"
	DisplayPositionMiddle = "middle"
	DisplayPositionBottom = "bottom"
)

// EmploymentType constants
const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"
)

// JobPosting represents a job listing on the board. Display position and
// priority are set only for postings placed into a sponsored grid slot.
type JobPosting struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"` // joined

	TitleKo        string  `json:"title_ko"`
	TitleEn        string  `json:"title_en,omitempty"`
	Description    string  `json:"description,omitempty"`
	Location       string  `json:"location,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	SalaryMin      *int    `json:"salary_min,omitempty"`
	SalaryMax      *int    `json:"salary_max,omitempty"`
	VisaSponsored  bool    `json:"visa_sponsored"`
	Active         bool    `json:"active"`
	SourceURL      *string `json:"source_url,omitempty"`

	DisplayPosition *string `json:"display_position,omitempty"`
	DisplayPriority *int    `json:"display_priority,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Placed reports whether the posting currently occupies a display slot
func (p *JobPosting) Placed() bool {
	return p.DisplayPosition != nil && p.DisplayPriority != nil && *p.DisplayPriority >= 1
}

// JobPostingCreateInput is used when creating a new job posting
type JobPostingCreateInput struct {
	CompanyID      uuid.UUID
	TitleKo        string
	TitleEn        string
	Description    string
	Location       string
	EmploymentType string
	SalaryMin      *int
	SalaryMax      *int
	VisaSponsored  bool
	SourceURL      string
}

// JobPostingUpdateInput holds optional field updates; nil fields are untouched
type JobPostingUpdateInput struct {
	TitleKo        *string
	TitleEn        *string
	Description    *string
	Location       *string
	EmploymentType *string
	SalaryMin      *int
	SalaryMax      *int
	VisaSponsored  *bool
	Active         *bool
}

// ListJobPostingsOptions holds filters and pagination for listing postings
type ListJobPostingsOptions struct {
	CompanyID  *uuid.UUID
	Tier       *string // display position filter
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ValidDisplayPosition reports whether p names a known tier
func ValidDisplayPosition(p string) bool {
	switch p {
	case DisplayPositionTop, DisplayPositionMiddle, DisplayPositionBottom:
		return true
	}
	return false
}
