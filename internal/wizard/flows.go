package wizard

// Flow names, also used as the {flow} path segment in the HTTP API.
const (
	FlowJobseekerOnboarding = "jobseeker-onboarding"
	FlowJobseekerEdit       = "jobseeker-edit"
	FlowCompanySignup       = "company-signup"
)

// User type role strings stamped on submission.
const (
	RoleJobseeker = "jobseeker"
	RoleCompany   = "company"
)

// BasicInfoDelta is step 1 of the job-seeker flows.
type BasicInfoDelta struct {
	FullName    string `json:"fullName" validate:"required,min=1,max=100"`
	Nationality string `json:"nationality" validate:"required"`
	VisaStatus  string `json:"visaStatus" validate:"required"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// BackgroundDelta is step 2: bio, skills, and languages.
type BackgroundDelta struct {
	Bio       string     `json:"bio" validate:"max=2000"`
	Skills    []string   `json:"skills" validate:"omitempty,dive,min=1"`
	Languages []Language `json:"languages" validate:"omitempty,dive"`
}

// PreferencesDelta is step 3: desired positions and locations.
type PreferencesDelta struct {
	DesiredPositions   []string `json:"desiredPositions" validate:"omitempty,dive,min=1"`
	PreferredLocations []string `json:"preferredLocations" validate:"omitempty,dive,min=1"`
}

// SalaryDelta is the final job-seeker step.
type SalaryDelta struct {
	SalaryRange *SalaryRange `json:"salaryRange" validate:"required"`
}

// jobseekerSteps is shared by the onboarding and edit flows; the edit flow
// only differs by seeding the accumulator from the stored profile.
func jobseekerSteps() []StepDefinition {
	return []StepDefinition{
		{
			Number:      1,
			Name:        "basic-info",
			Title:       "Basic information",
			Description: "Your name, nationality, and visa status",
			NewDelta:    func() any { return &BasicInfoDelta{} },
		},
		{
			Number:      2,
			Name:        "background",
			Title:       "Background",
			Description: "A short bio, your skills, and the languages you speak",
			NewDelta:    func() any { return &BackgroundDelta{} },
		},
		{
			Number:      3,
			Name:        "preferences",
			Title:       "Job preferences",
			Description: "Positions and locations you are looking for",
			NewDelta:    func() any { return &PreferencesDelta{} },
		},
		{
			Number:      4,
			Name:        "salary",
			Title:       "Salary expectations",
			Description: "Your desired salary range",
			NewDelta:    func() any { return &SalaryDelta{} },
		},
	}
}

// JobseekerOnboardingFlow builds the four-step onboarding flow.
func JobseekerOnboardingFlow(writer ProfileWriter, schemaJSON string) *Flow {
	return &Flow{
		Name:        FlowJobseekerOnboarding,
		Role:        RoleJobseeker,
		Destination: "/dashboard/jobseeker",
		Steps:       jobseekerSteps(),
		Submitter:   &JobseekerSubmitter{Writer: writer, Role: RoleJobseeker, SchemaJSON: schemaJSON},
	}
}

// JobseekerEditFlow builds the profile-edit flow over the same steps.
func JobseekerEditFlow(writer ProfileWriter, schemaJSON string) *Flow {
	return &Flow{
		Name:        FlowJobseekerEdit,
		Role:        RoleJobseeker,
		Destination: "/dashboard/jobseeker",
		Steps:       jobseekerSteps(),
		Submitter:   &JobseekerSubmitter{Writer: writer, Role: RoleJobseeker, SchemaJSON: schemaJSON},
	}
}

// CompanyInfoDelta is step 1 of the company signup flow.
type CompanyInfoDelta struct {
	NameKo             string `json:"nameKo" validate:"required,min=1,max=100"`
	NameEn             string `json:"nameEn" validate:"omitempty,max=100"`
	RegistrationNumber string `json:"registrationNumber" validate:"required,min=10,max=12"`
}

// CompanyDetailDelta is step 2: what the company does.
type CompanyDetailDelta struct {
	Industry    string `json:"industry" validate:"required"`
	Size        string `json:"size" validate:"omitempty,oneof=startup small medium large enterprise"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=4000"`
}

// CompanyContactDelta is the final company step.
type CompanyContactDelta struct {
	ContactName  string `json:"contactName" validate:"required"`
	ContactPhone string `json:"contactPhone" validate:"required,min=7,max=20"`
}

// CompanySignupFlow builds the three-step company signup flow.
func CompanySignupFlow(writer CompanyWriter) *Flow {
	return &Flow{
		Name:        FlowCompanySignup,
		Role:        RoleCompany,
		Destination: "/dashboard/company",
		Steps: []StepDefinition{
			{
				Number:      1,
				Name:        "company-info",
				Title:       "Company information",
				Description: "Company name and business registration number",
				NewDelta:    func() any { return &CompanyInfoDelta{} },
			},
			{
				Number:      2,
				Name:        "company-detail",
				Title:       "Company details",
				Description: "Industry, size, and a short introduction",
				NewDelta:    func() any { return &CompanyDetailDelta{} },
			},
			{
				Number:      3,
				Name:        "contact",
				Title:       "Contact person",
				Description: "Who we should reach out to",
				NewDelta:    func() any { return &CompanyContactDelta{} },
			},
		},
		Submitter: &CompanySubmitter{Writer: writer, Role: RoleCompany},
	}
}
