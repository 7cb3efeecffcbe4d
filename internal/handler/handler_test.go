package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/auth"
	"github.com/dangerclosesec/onboarding/internal/cache"
	"github.com/dangerclosesec/onboarding/internal/handler"
	"github.com/dangerclosesec/onboarding/internal/middleware"
	"github.com/dangerclosesec/onboarding/internal/mocks"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/otpstore"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/dangerclosesec/onboarding/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fixture struct {
	router  http.Handler
	repo    *mocks.MockSubmissionRepositoryIface
	pillars *mocks.MockPillarRepositoryIface
	audit   *mocks.MockAuditLogRepositoryIface
	texts   *mocks.MockTextSender
	tokens  *auth.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		repo:    mocks.NewMockSubmissionRepositoryIface(ctrl),
		pillars: mocks.NewMockPillarRepositoryIface(ctrl),
		audit:   mocks.NewMockAuditLogRepositoryIface(ctrl),
		texts:   mocks.NewMockTextSender(ctrl),
		tokens:  auth.NewTokenManager("test-secret", "onboarding", time.Hour),
	}

	images, err := storage.NewLocalStorage(t.TempDir(), "/media", 1<<20)
	require.NoError(t, err)

	cacheService := service.NewCacheService(service.CacheConfig{TTL: time.Minute, CleanupFreq: time.Minute})
	t.Cleanup(cacheService.Close)

	pillarService := service.NewPillarService(f.pillars, cacheService)
	auditService := service.NewAuditLogService(f.audit, logger)
	hasher := auth.NewHasherWithParams(auth.HashParams{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16})
	otpStore := otpstore.NewMemoryStore(cache.NewInMemoryCache(time.Minute, 0))

	handlers := &handler.Handlers{
		Submission: handler.NewSubmissionHandler(
			service.NewSubmissionService(f.repo, pillarService, images, service.SubmissionServiceConfig{DefaultPassword: "welcome123"}, logger),
			2<<20,
		),
		Mirror:   handler.NewMirrorHandler(service.NewMirrorService(f.repo)),
		OTP:      handler.NewOTPHandler(service.NewOTPService(otpStore, hasher, f.texts, f.repo, service.OTPConfig{}, logger)),
		Share:    handler.NewShareHandler(service.NewShareService(f.repo, f.texts, nil, logger)),
		Pillar:   handler.NewPillarHandler(pillarService),
		Admin:    handler.NewAdminHandler(service.NewAdminService(f.repo, nil), pillarService, auditService),
		AuditLog: handler.NewAuditLogHandler(auditService),
	}

	r := chi.NewRouter()
	r.Mount("/api", handlers.Routes(middleware.AdminMiddleware(f.tokens)))
	f.router = r
	return f
}

func (f *fixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.Generate("alice", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// multipartRequest builds a submission form; files maps field names to
// their content.
func multipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for k, content := range files {
		part, err := mw.CreateFormFile(k, k+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/submissions/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func storedCampaign(slug string) *model.CampaignSubmission {
	c := &model.CampaignSubmission{
		SubmissionBase: model.SubmissionBase{
			FirstName:     "Jane",
			LastName:      "Doe",
			Email:         "jane@example.com",
			Phone:         "5555550100",
			TemplateStyle: model.TemplateModern,
			Slug:          slug,
		},
		CampaignSubtype: model.CampaignInABox,
		Pillar1:         "Healthcare",
	}
	c.ApplyTemplateURLs("https://sites.test/temp")
	return c
}

func protectedCampaign(slug, password string) *model.CampaignSubmission {
	c := storedCampaign(slug)
	contact := "contact-1"
	c.IsPasswordProtected = true
	c.Password = &password
	c.CRMContactID = &contact
	return c
}
