package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func campaignFields() map[string]string {
	return map[string]string{
		"first_name":            "Jane",
		"last_name":             "Doe",
		"email":                 "jane@example.com",
		"phone":                 "5555550100",
		"pillar_1":              "Healthcare",
		"is_password_protected": "on",
	}
}

func TestSubmissionHandler_Create(t *testing.T) {
	t.Run("campaign", func(t *testing.T) {
		f := newFixture(t)
		f.pillars.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		var stored model.Submission
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub model.Submission) error {
			stored = sub
			sub.Base().Slug = "janedoe"
			sub.Base().ApplyTemplateURLs("https://sites.test/temp")
			return nil
		})

		rec := f.do(multipartRequest(t, campaignFields(), map[string][]byte{"headshot": pngHeader}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "campaign", body["type"])
		assert.NotContains(t, body, "crm")

		data := body["data"].(map[string]any)
		assert.Equal(t, "janedoe", data["slug"])
		assert.Equal(t, "https://sites.test/temp/janedoe/modern", data["modern_url"])
		assert.Equal(t, "Issue 2", data["pillar_2"])
		assert.Equal(t, true, data["is_password_protected"])
		assert.NotContains(t, data, "password")

		require.NotNil(t, stored)
		assert.Equal(t, "welcome123", stored.Base().PasswordValue())
		assert.NotEmpty(t, stored.Images()["headshot"])
	})

	t.Run("organization", func(t *testing.T) {
		f := newFixture(t)
		f.pillars.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub model.Submission) error {
			o, ok := sub.(*model.OrganizationSubmission)
			require.True(t, ok)
			assert.Equal(t, "Food Bank", o.Service1)
			assert.Equal(t, model.OrgTypeCharity, o.OrganizationSubtype)
			return nil
		})

		fields := campaignFields()
		fields["submission_type"] = "organization"
		fields["organization_name"] = "Helping Hands"
		fields["organization_subtype"] = "charity"
		fields["service_1"] = "Food Bank"

		rec := f.do(multipartRequest(t, fields, map[string][]byte{"logo": pngHeader, "owner_photo": pngHeader}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "organization", decodeBody(t, rec)["type"])
	})

	t.Run("validation errors list fields", func(t *testing.T) {
		f := newFixture(t)
		f.pillars.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		fields := campaignFields()
		delete(fields, "email")
		fields["template_style"] = "retro"

		rec := f.do(multipartRequest(t, fields, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "validation failed", body["error"])
		errs := body["fields"].(map[string]any)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "template_style")
		assert.Contains(t, errs, "headshot")
	})

	t.Run("non image upload", func(t *testing.T) {
		f := newFixture(t)
		f.pillars.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		rec := f.do(multipartRequest(t, campaignFields(), map[string][]byte{"headshot": []byte("just text")}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["fields"], "headshot")
	})

	t.Run("slug conflict", func(t *testing.T) {
		f := newFixture(t)
		f.pillars.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("cold cache"))
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrSlugConflict)

		rec := f.do(multipartRequest(t, campaignFields(), map[string][]byte{"headshot": pngHeader}))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed flag", func(t *testing.T) {
		f := newFixture(t)

		fields := campaignFields()
		fields["is_password_protected"] = "maybe"

		rec := f.do(multipartRequest(t, fields, map[string][]byte{"headshot": pngHeader}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid form data", decodeBody(t, rec)["error"])
	})
}
