package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStepFromQuery covers lenient parsing of the step query parameter.
func TestStepFromQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		max  int
		want int
	}{
		{"absent defaults to 1", "", 4, 1},
		{"non-numeric defaults to 1", "banana", 4, 1},
		{"zero clamps to 1", "0", 4, 1},
		{"negative clamps to 1", "-3", 4, 1},
		{"above max clamps to max", "99", 4, 4},
		{"valid value", "3", 4, 3},
		{"last step", "4", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StepFromQuery(tt.raw, tt.max))
		})
	}
}

// TestAdvanceRetreat_Clamping verifies the pointer never leaves [1, max].
func TestAdvanceRetreat_Clamping(t *testing.T) {
	assert.Equal(t, 2, Advance(1, 4))
	assert.Equal(t, 4, Advance(4, 4), "advancing past the last step is a no-op")
	assert.Equal(t, 1, Retreat(2, 4))
	assert.Equal(t, 1, Retreat(1, 4), "retreating past step 1 is a no-op")
}

// TestFlow_Step verifies 1-based lookup bounds.
func TestFlow_Step(t *testing.T) {
	flow := JobseekerOnboardingFlow(nil, "")

	def, ok := flow.Step(1)
	assert.True(t, ok)
	assert.Equal(t, "basic-info", def.Name)

	def, ok = flow.Step(4)
	assert.True(t, ok)
	assert.Equal(t, "salary", def.Name)
	assert.True(t, flow.IsFinal(4))
	assert.False(t, flow.IsFinal(3))

	_, ok = flow.Step(0)
	assert.False(t, ok)
	_, ok = flow.Step(5)
	assert.False(t, ok)
}

// TestAccumulator_MergePreservesEarlierKeys verifies the round-trip
// property: a field set at step 1 survives later merges unless explicitly
// overwritten.
func TestAccumulator_MergePreservesEarlierKeys(t *testing.T) {
	acc := NewAccumulator()
	acc.Merge(map[string]any{"fullName": "Kim", "nationality": "Vietnam"})
	acc.Merge(map[string]any{"skills": []string{"Go", "SQL"}})
	acc.Merge(map[string]any{"desiredPositions": []string{"backend"}})

	v, ok := acc.Get("fullName")
	assert.True(t, ok)
	assert.Equal(t, "Kim", v)

	// Explicit overwrite by a later step wins.
	acc.Merge(map[string]any{"fullName": "Kim Minh"})
	v, _ = acc.Get("fullName")
	assert.Equal(t, "Kim Minh", v)

	// Clone is independent of the original.
	clone := acc.Clone()
	clone.Merge(map[string]any{"fullName": "other"})
	v, _ = acc.Get("fullName")
	assert.Equal(t, "Kim Minh", v)
}

// TestValidateDelta_AllViolationsSurfaced verifies every violated rule is
// reported at once, not just the first.
func TestValidateDelta_AllViolationsSurfaced(t *testing.T) {
	delta := &BasicInfoDelta{} // fullName, nationality, visaStatus all missing

	violations, err := ValidateDelta(delta)
	assert.NoError(t, err)
	assert.Len(t, violations.Violations, 3)

	fields := make(map[string]bool)
	for _, v := range violations.Violations {
		fields[v.Field] = true
		assert.Equal(t, "required", v.Rule)
		assert.NotEmpty(t, v.Message)
	}
	assert.True(t, fields["FullName"])
	assert.True(t, fields["Nationality"])
	assert.True(t, fields["VisaStatus"])
}

// TestValidateDelta_Valid verifies a clean delta passes.
func TestValidateDelta_Valid(t *testing.T) {
	delta := &BasicInfoDelta{
		FullName:    "Nguyen Thi Lan",
		Nationality: "Vietnam",
		VisaStatus:  "E-7",
	}

	violations, err := ValidateDelta(delta)
	assert.NoError(t, err)
	assert.True(t, violations.Empty())
}

// TestValidateDelta_SalaryRangeOrdering verifies cross-field rules.
func TestValidateDelta_SalaryRangeOrdering(t *testing.T) {
	delta := &SalaryDelta{SalaryRange: &SalaryRange{Min: 5000, Max: 3000}}

	violations, err := ValidateDelta(delta)
	assert.NoError(t, err)
	assert.Len(t, violations.Violations, 1)
	assert.Equal(t, "gtefield", violations.Violations[0].Rule)
}
