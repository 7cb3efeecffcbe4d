package service_test

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/dangerclosesec/onboarding/internal/auth"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/service"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastHasher() *auth.Hasher {
	return auth.NewHasherWithParams(auth.HashParams{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16})
}

func pngUpload(name string) service.ImageUpload {
	return service.ImageUpload{Filename: name, Content: bytes.NewReader(pngHeader)}
}

func strPtr(s string) *string { return &s }

func storedCampaign(slug string) *model.CampaignSubmission {
	c := &model.CampaignSubmission{
		SubmissionBase: model.SubmissionBase{
			FirstName:     "Jane",
			LastName:      "Doe",
			Email:         "jane@example.com",
			Phone:         "+15555550100",
			TemplateStyle: model.TemplateModern,
			Slug:          slug,
		},
		CampaignSubtype: model.CampaignInABox,
		Pillar1:         "Healthcare",
		Pillar2:         "Issue 2",
		Pillar3:         "Issue 3",
		Headshot:        "campaign/headshot/a.png",
	}
	c.ApplyTemplateURLs("https://sites.test/temp")
	return c
}
