package db

import (
	"time"

	"github.com/google/uuid"
)

// JobseekerProfile is the core job-seeker profile row. Sub-resources
// (skills, languages, desired positions, preferred locations) live in
// their own tables and are loaded alongside.
type JobseekerProfile struct {
	UserID              uuid.UUID `json:"user_id"`
	FullName            string    `json:"full_name"`
	Nationality         string    `json:"nationality,omitempty"`
	VisaStatus          string    `json:"visa_status,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	DesiredSalaryMin    *int      `json:"desired_salary_min,omitempty"`
	DesiredSalaryMax    *int      `json:"desired_salary_max,omitempty"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	UserType            string    `json:"user_type"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ProfileLanguage is one spoken-language row on a profile
type ProfileLanguage struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// FullProfile bundles the profile row with its sub-resources for reads
type FullProfile struct {
	JobseekerProfile
	Skills             []string          `json:"skills"`
	Languages          []ProfileLanguage `json:"languages"`
	DesiredPositions   []string          `json:"desired_positions"`
	PreferredLocations []string          `json:"preferred_locations"`
}
