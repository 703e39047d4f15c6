package wizard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyWriter struct {
	saved []CompanyPayload
}

func (f *fakeCompanyWriter) SaveCompany(_ context.Context, _ uuid.UUID, p CompanyPayload) error {
	f.saved = append(f.saved, p)
	return nil
}

// TestCompanySubmitter_StampsRole verifies the role string is set by the
// submitter, not by any step.
func TestCompanySubmitter_StampsRole(t *testing.T) {
	writer := &fakeCompanyWriter{}
	sub := &CompanySubmitter{Writer: writer, Role: RoleCompany}

	payload := Accumulator{
		"nameKo":             "한빛소프트",
		"registrationNumber": "123-45-67890",
		"contactName":        "Park Jiwon",
	}
	err := sub.Submit(context.Background(), uuid.New(), payload)
	require.NoError(t, err)

	require.Len(t, writer.saved, 1)
	assert.Equal(t, "한빛소프트", writer.saved[0].NameKo)
	assert.Equal(t, RoleCompany, writer.saved[0].UserType)
}

// TestJobseekerSubmitter_SchemaRejection verifies a payload that fails the
// JSON schema check never reaches the writer.
func TestJobseekerSubmitter_SchemaRejection(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"fullName": {"type": "string", "minLength": 1}
		},
		"required": ["fullName"]
	}`

	writer := &fakeWriter{}
	sub := &JobseekerSubmitter{Writer: writer, Role: RoleJobseeker, SchemaJSON: schema}

	err := sub.Submit(context.Background(), uuid.New(), Accumulator{"fullName": ""})
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "profile", subErr.Resource)
	assert.Empty(t, writer.saved)
}

// TestJobseekerSubmitter_SchemaAccepts verifies a conforming payload is
// persisted.
func TestJobseekerSubmitter_SchemaAccepts(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"fullName": {"type": "string", "minLength": 1}
		},
		"required": ["fullName"]
	}`

	writer := &fakeWriter{}
	sub := &JobseekerSubmitter{Writer: writer, Role: RoleJobseeker, SchemaJSON: schema}

	err := sub.Submit(context.Background(), uuid.New(), Accumulator{"fullName": "Kim"})
	require.NoError(t, err)
	require.Len(t, writer.saved, 1)
}
