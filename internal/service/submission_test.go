package service_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/email"
	"github.com/dangerclosesec/onboarding/internal/mocks"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/dangerclosesec/onboarding/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func campaignInput() service.SubmissionInput {
	return service.SubmissionInput{
		Kind:      model.KindCampaign,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+1 555 555 0100",
		Images:    map[string]service.ImageUpload{"headshot": pngUpload("me.png")},
	}
}

func TestFillDefaults(t *testing.T) {
	descriptions := map[string]string{"Healthcare": "Healthcare text"}

	t.Run("campaign", func(t *testing.T) {
		in := campaignInput()
		in.Slots[0] = model.Pillar{Label: " Healthcare "}
		in.Slots[1] = model.Pillar{Label: "Potholes", Description: "Mine"}

		out := service.FillDefaults(in, descriptions)

		assert.Equal(t, "modern", out.TemplateStyle)
		assert.Equal(t, model.DefaultPrimaryColor, out.PrimaryColor)
		assert.Equal(t, model.DefaultSecondaryColor, out.SecondaryColor)
		assert.Equal(t, "campaign", out.CampaignSubtype)
		assert.Equal(t, model.Pillar{Label: "Healthcare", Description: "Healthcare text"}, out.Slots[0])
		assert.Equal(t, model.Pillar{Label: "Potholes", Description: "Mine"}, out.Slots[1])
		assert.Equal(t, "Issue 3", out.Slots[2].Label)
		assert.NotEmpty(t, out.Slots[2].Description)

		assert.Empty(t, in.Slots[2].Label, "input is not mutated")
	})

	t.Run("organization", func(t *testing.T) {
		out := service.FillDefaults(service.SubmissionInput{Kind: model.KindOrganization}, nil)

		assert.Equal(t, "church", out.OrganizationSubtype)
		assert.Empty(t, out.CampaignSubtype)
		for i, slot := range out.Slots {
			assert.Equal(t, "Issue "+string(rune('1'+i)), slot.Label)
			assert.NotEmpty(t, slot.Description)
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		in := campaignInput()
		in.TemplateStyle = "bold"
		in.PrimaryColor = "#000000"
		out := service.FillDefaults(in, nil)
		assert.Equal(t, "bold", out.TemplateStyle)
		assert.Equal(t, "#000000", out.PrimaryColor)
	})
}

func newSubmissionService(t *testing.T, ctrl *gomock.Controller, cfg service.SubmissionServiceConfig) (*service.SubmissionService, *mocks.MockSubmissionRepositoryIface, *mocks.MockPillarLookup) {
	t.Helper()
	return newSubmissionServiceAt(t, ctrl, cfg, t.TempDir())
}

func newSubmissionServiceAt(t *testing.T, ctrl *gomock.Controller, cfg service.SubmissionServiceConfig, mediaRoot string) (*service.SubmissionService, *mocks.MockSubmissionRepositoryIface, *mocks.MockPillarLookup) {
	t.Helper()
	repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
	pillars := mocks.NewMockPillarLookup(ctrl)
	images, err := storage.NewLocalStorage(mediaRoot, "/media", 1<<20)
	require.NoError(t, err)

	if cfg.DefaultPassword == "" {
		cfg.DefaultPassword = "welcome123"
	}
	return service.NewSubmissionService(repo, pillars, images, cfg, discardLogger()), repo, pillars
}

func TestSubmissionService_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newSubmissionService(t, ctrl, service.SubmissionServiceConfig{})

	t.Run("missing required values", func(t *testing.T) {
		in := service.FillDefaults(service.SubmissionInput{Kind: model.KindOrganization}, nil)
		err := svc.Validate(in)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		for _, field := range []string{"first_name", "last_name", "email", "phone", "logo", "owner_photo"} {
			assert.Contains(t, verr.Fields, field)
		}
		assert.NotContains(t, verr.Fields, "headshot")
	})

	t.Run("malformed values", func(t *testing.T) {
		in := service.FillDefaults(campaignInput(), nil)
		in.Email = "not-an-email"
		in.TemplateStyle = "fancy"
		in.PrimaryColor = "blue"
		in.CampaignSubtype = "referendum"
		in.ElectionDate = "31/12/2025"
		in.Images["logo"] = pngUpload("logo.png")

		var verr *domain.ValidationError
		require.ErrorAs(t, svc.Validate(in), &verr)
		assert.Equal(t, "must be a valid email address", verr.Fields["email"])
		assert.Equal(t, "must be one of: modern, traditional, bold", verr.Fields["template_style"])
		assert.Contains(t, verr.Fields, "primary_color")
		assert.Contains(t, verr.Fields, "campaign_subtype")
		assert.Contains(t, verr.Fields, "election_date")
		assert.Contains(t, verr.Fields, "logo")
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, svc.Validate(service.FillDefaults(campaignInput(), nil)))
	})
}

func TestSubmissionService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)
	mailer := mocks.NewMockSender(ctrl)
	svc, repo, pillars := newSubmissionService(t, ctrl, service.SubmissionServiceConfig{
		Sync:        syncer,
		Mailer:      mailer,
		SyncTimeout: time.Second,
	})

	in := campaignInput()
	in.IsPasswordProtected = true
	in.ElectionDate = "2025-10-20"
	in.Slots[0].Label = "Healthcare"

	pillars.EXPECT().Descriptions(gomock.Any()).Return(map[string]string{"Healthcare": "Healthcare text"}, nil)

	var stored model.Submission
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub model.Submission) error {
		stored = sub
		sub.Base().Slug = "janedoe"
		sub.Base().ApplyTemplateURLs("https://sites.test/temp")
		return nil
	})
	syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, sub model.Submission) (*service.SyncReport, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return &service.SyncReport{ContactID: "c-1"}, nil
	})
	mailer.EXPECT().SendEmail(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, data email.EmailData) error {
		assert.Equal(t, "jane@example.com", data.To)
		assert.Equal(t, email.TemplateSitePublished, data.TemplateName)
		return nil
	})

	res, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	c, ok := res.Submission.(*model.CampaignSubmission)
	require.True(t, ok)
	assert.Same(t, stored, res.Submission)
	assert.Equal(t, "welcome123", c.PasswordValue(), "protected without a password gets the fallback")
	assert.Equal(t, "Healthcare text", c.Pillar1Desc)
	assert.Equal(t, "Issue 2", c.Pillar2)
	assert.True(t, strings.HasPrefix(c.Headshot, "campaign/headshot/"))
	assert.True(t, strings.HasSuffix(c.Headshot, ".png"))
	require.NotNil(t, c.ElectionDate)
	assert.Equal(t, "2025-10-20", time.Time(*c.ElectionDate).Format(time.DateOnly))
	assert.Equal(t, "c-1", res.CRM.ContactID)
}

func TestSubmissionService_CreateKeepsRecordWhenCRMFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)
	svc, repo, pillars := newSubmissionService(t, ctrl, service.SubmissionServiceConfig{Sync: syncer})

	pillars.EXPECT().Descriptions(gomock.Any()).Return(nil, errors.New("db down"))
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).
		Return(&service.SyncReport{Errors: []string{"contact: boom"}}, errors.New("boom"))

	res, err := svc.Create(context.Background(), campaignInput())
	require.NoError(t, err)
	assert.Equal(t, "failure", res.CRM.Status())
	assert.Nil(t, res.Submission.Base().Password, "unprotected records carry no password")
}

func TestSubmissionService_CreateOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, pillars := newSubmissionService(t, ctrl, service.SubmissionServiceConfig{})

	pillars.EXPECT().Descriptions(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	in := service.SubmissionInput{
		Kind:                model.KindOrganization,
		FirstName:           "Mary",
		LastName:            "Smith",
		Email:               "mary@example.com",
		Phone:               "5555550100",
		OrganizationName:    "St. Mary's!!",
		OrganizationSubtype: "charity",
		IsPasswordProtected: true,
		Password:            "Secret",
		Images: map[string]service.ImageUpload{
			"logo":        pngUpload("logo.png"),
			"owner_photo": pngUpload("owner.png"),
		},
	}

	res, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	o, ok := res.Submission.(*model.OrganizationSubmission)
	require.True(t, ok)
	assert.Equal(t, model.OrgTypeCharity, o.OrganizationSubtype)
	assert.Equal(t, "Secret", o.PasswordValue())
	assert.Equal(t, "Issue 1", o.Service1)
	assert.NotEmpty(t, o.Logo)
	assert.NotEmpty(t, o.OwnerPhoto)
	assert.Nil(t, res.CRM)
}

func TestSubmissionService_CreateRejectsNonImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, pillars := newSubmissionService(t, ctrl, service.SubmissionServiceConfig{})

	pillars.EXPECT().Descriptions(gomock.Any()).Return(nil, nil)

	in := campaignInput()
	in.Images["headshot"] = service.ImageUpload{Filename: "me.png", Content: strings.NewReader("plain text")}

	_, err := svc.Create(context.Background(), in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "headshot")
}

func TestSubmissionService_CreatePropagatesSlugConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, pillars := newSubmissionService(t, ctrl, service.SubmissionServiceConfig{})

	pillars.EXPECT().Descriptions(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrSlugConflict)

	_, err := svc.Create(context.Background(), campaignInput())
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestSubmissionService_CreateRemovesUploadsOnRejectedImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	svc, _, pillars := newSubmissionServiceAt(t, ctrl, service.SubmissionServiceConfig{}, root)

	pillars.EXPECT().Descriptions(gomock.Any()).Return(nil, nil)

	in := service.SubmissionInput{
		Kind:                model.KindOrganization,
		FirstName:           "Mary",
		LastName:            "Smith",
		Email:               "mary@example.com",
		Phone:               "5555550100",
		OrganizationName:    "Helping Hands",
		OrganizationSubtype: "charity",
		Images: map[string]service.ImageUpload{
			"logo":        pngUpload("logo.png"),
			"owner_photo": {Filename: "owner.png", Content: strings.NewReader("plain text")},
		},
	}

	_, err := svc.Create(context.Background(), in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "owner_photo")
	assert.Empty(t, storedFiles(t, root))
}

func TestSubmissionService_CreateRemovesUploadsWhenInsertFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	svc, repo, pillars := newSubmissionServiceAt(t, ctrl, service.SubmissionServiceConfig{}, root)

	pillars.EXPECT().Descriptions(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub model.Submission) error {
		assert.Len(t, storedFiles(t, root), 1)
		return domain.ErrSlugConflict
	})

	_, err := svc.Create(context.Background(), campaignInput())
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
	assert.Empty(t, storedFiles(t, root))
}
