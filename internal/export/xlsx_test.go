package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/export"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSubmissions(t *testing.T) {
	contact := "c-1"
	campaign := &model.CampaignSubmission{
		SubmissionBase: model.SubmissionBase{
			FirstName:           "Jane",
			LastName:            "Doe",
			Email:               "jane@example.com",
			Slug:                "janedoe",
			TemplateStyle:       model.TemplateBold,
			IsPasswordProtected: true,
			CRMContactID:        &contact,
			CreatedAt:           time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		CampaignSubtype: model.CampaignElection,
		Pillar1:         "Healthcare",
		Pillar2:         "Issue 2",
		Pillar3:         "Issue 3",
	}
	org := &model.OrganizationSubmission{
		SubmissionBase:      model.SubmissionBase{FirstName: "Mary", Slug: "stmarys"},
		OrganizationName:    "St. Mary's",
		OrganizationSubtype: model.OrgTypeChurch,
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteSubmissions(&buf, []model.Submission{campaign, org}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, []string{"campaign", "election", "Jane Doe"}, rows[1][:3])
	assert.Equal(t, "janedoe", rows[1][7])
	assert.Equal(t, "bold", rows[1][8])
	assert.Equal(t, "Yes", rows[1][12])
	assert.Equal(t, "c-1", rows[1][14])
	assert.Equal(t, "Healthcare", rows[1][15])
	assert.Equal(t, "2024-05-01T12:00:00Z", rows[1][18])

	assert.Equal(t, []string{"organization", "church", "St. Mary's"}, rows[2][:3])
}

func TestWriteSubmissions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteSubmissions(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())
}
