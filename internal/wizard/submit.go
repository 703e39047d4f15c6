package wizard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/minjae/jobbridge/internal/schemas"
)

// Submitter turns the combined accumulator payload into persistence calls.
// Each flow carries its own submitter.
type Submitter interface {
	Submit(ctx context.Context, userID uuid.UUID, payload Accumulator) error
}

// Language is one spoken-language entry on a job seeker profile.
type Language struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level" validate:"required,oneof=basic conversational business native"`
}

// SalaryRange is the desired annual salary band, in units of 10,000 KRW.
type SalaryRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// JobseekerPayload is the combined submission shape of the job-seeker
// onboarding and profile-edit flows. Field presence is optional throughout;
// absent sub-resources simply skip their write.
type JobseekerPayload struct {
	FullName           string       `json:"fullName"`
	Nationality        string       `json:"nationality"`
	VisaStatus         string       `json:"visaStatus"`
	Phone              string       `json:"phone"`
	Bio                string       `json:"bio"`
	Skills             []string     `json:"skills"`
	Languages          []Language   `json:"languages"`
	DesiredPositions   []string     `json:"desiredPositions"`
	PreferredLocations []string     `json:"preferredLocations"`
	SalaryRange        *SalaryRange `json:"salaryRange"`

	// Stamped by the submitter, not by any step.
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	UserType            string `json:"userType"`
}

// ProfileWriter is the persistence boundary for job-seeker submissions.
// The wizard treats storage as a single abstract interface; it never talks
// to more than one backend for the same entity.
type ProfileWriter interface {
	SaveProfile(ctx context.Context, userID uuid.UUID, p JobseekerPayload) error
	ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) error
	ReplaceLanguages(ctx context.Context, userID uuid.UUID, languages []Language) error
	ReplaceDesiredPositions(ctx context.Context, userID uuid.UUID, positions []string) error
	ReplacePreferredLocations(ctx context.Context, userID uuid.UUID, locations []string) error
	SaveSalaryRange(ctx context.Context, userID uuid.UUID, r SalaryRange) error
}

// JobseekerSubmitter fans the combined payload out into sub-resource writes
// in a fixed order. A sub-resource call only fires when its data is
// non-empty; the core profile write always fires.
type JobseekerSubmitter struct {
	Writer ProfileWriter
	Role   string
	// SchemaJSON, when set, is a JSON Schema the combined payload must
	// satisfy before any write is attempted.
	SchemaJSON string
}

// Submit persists the payload. The first failed write aborts the fan-out
// and is reported with the sub-resource that failed.
func (s *JobseekerSubmitter) Submit(ctx context.Context, userID uuid.UUID, payload Accumulator) error {
	p, err := decodePayload(payload)
	if err != nil {
		return err
	}
	p.OnboardingCompleted = true
	p.UserType = s.Role

	if s.SchemaJSON != "" {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode submission payload: %w", err)
		}
		if err := schemas.ValidateJSONString(s.SchemaJSON, string(doc)); err != nil {
			return &SubmissionError{Resource: "profile", Cause: err}
		}
	}

	if err := s.Writer.SaveProfile(ctx, userID, p); err != nil {
		return &SubmissionError{Resource: "profile", Cause: err}
	}
	if len(p.Skills) > 0 {
		if err := s.Writer.ReplaceSkills(ctx, userID, p.Skills); err != nil {
			return &SubmissionError{Resource: "skills", Cause: err}
		}
	}
	if len(p.Languages) > 0 {
		if err := s.Writer.ReplaceLanguages(ctx, userID, p.Languages); err != nil {
			return &SubmissionError{Resource: "languages", Cause: err}
		}
	}
	if len(p.DesiredPositions) > 0 {
		if err := s.Writer.ReplaceDesiredPositions(ctx, userID, p.DesiredPositions); err != nil {
			return &SubmissionError{Resource: "desired positions", Cause: err}
		}
	}
	if len(p.PreferredLocations) > 0 {
		if err := s.Writer.ReplacePreferredLocations(ctx, userID, p.PreferredLocations); err != nil {
			return &SubmissionError{Resource: "preferred locations", Cause: err}
		}
	}
	if p.SalaryRange != nil {
		if err := s.Writer.SaveSalaryRange(ctx, userID, *p.SalaryRange); err != nil {
			return &SubmissionError{Resource: "salary range", Cause: err}
		}
	}
	return nil
}

// decodePayload converts the merged accumulator into the typed payload via
// a JSON round-trip, so step deltas and the payload share one field naming.
func decodePayload(acc Accumulator) (JobseekerPayload, error) {
	var p JobseekerPayload
	raw, err := json.Marshal(acc)
	if err != nil {
		return p, fmt.Errorf("failed to encode accumulator: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("failed to decode submission payload: %w", err)
	}
	return p, nil
}

// CompanyPayload is the combined submission shape of the company signup flow.
type CompanyPayload struct {
	NameKo             string `json:"nameKo"`
	NameEn             string `json:"nameEn"`
	RegistrationNumber string `json:"registrationNumber"`
	Industry           string `json:"industry"`
	Size               string `json:"size"`
	Website            string `json:"website"`
	Description        string `json:"description"`
	ContactName        string `json:"contactName"`
	ContactPhone       string `json:"contactPhone"`
	UserType           string `json:"userType"`
}

// CompanyWriter is the persistence boundary for company signups.
type CompanyWriter interface {
	SaveCompany(ctx context.Context, ownerID uuid.UUID, p CompanyPayload) error
}

// CompanySubmitter persists a company signup in one write.
type CompanySubmitter struct {
	Writer CompanyWriter
	Role   string
}

// Submit persists the company payload.
func (s *CompanySubmitter) Submit(ctx context.Context, userID uuid.UUID, payload Accumulator) error {
	var p CompanyPayload
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode accumulator: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode submission payload: %w", err)
	}
	p.UserType = s.Role

	if err := s.Writer.SaveCompany(ctx, userID, p); err != nil {
		return &SubmissionError{Resource: "company", Cause: err}
	}
	return nil
}
