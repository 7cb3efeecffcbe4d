package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMirrorHandler(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().FindBySlug(gomock.Any(), "janedoe").DoAndReturn(func(context.Context, string) (model.Submission, error) {
		return protectedCampaign("janedoe", "Secret1"), nil
	}).AnyTimes()
	f.repo.EXPECT().FindBySlug(gomock.Any(), "public").DoAndReturn(func(context.Context, string) (model.Submission, error) {
		return storedCampaign("public"), nil
	}).AnyTimes()
	f.repo.EXPECT().FindBySlug(gomock.Any(), "ghost").Return(nil, domain.ErrSubmissionNotFound).AnyTimes()

	t.Run("public record", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/mirror/public/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "campaign", body["type"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "public", data["slug"])
		assert.Equal(t, "Healthcare", data["pillar_1"])
	})

	t.Run("password required", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/mirror/janedoe/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["requires_password"])
		assert.Equal(t, "Password required", body["error"])
	})

	t.Run("wrong case is incorrect", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/mirror/janedoe/?password=secret1", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["requires_password"])
		assert.Equal(t, "Incorrect password", body["error"])
	})

	t.Run("query password with template override", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/mirror/janedoe/bold/?password=Secret1", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]any)
		assert.Equal(t, "bold", data["template_style"])
		assert.NotContains(t, data, "password")
		assert.NotContains(t, data, "crm_contact_id")
	})

	t.Run("json body password", func(t *testing.T) {
		rec := f.do(jsonRequest(http.MethodPost, "/api/mirror/janedoe", map[string]string{"password": "Secret1"}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("form body password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/mirror/janedoe/traditional/", strings.NewReader(url.Values{"password": {"Secret1"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := f.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "traditional", decodeBody(t, rec)["data"].(map[string]any)["template_style"])
	})

	t.Run("unknown template is ignored", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/mirror/public/retro/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "modern", decodeBody(t, rec)["data"].(map[string]any)["template_style"])
	})

	t.Run("unknown slug", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/mirror/ghost/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, decodeBody(t, rec)["ok"])
	})
}
