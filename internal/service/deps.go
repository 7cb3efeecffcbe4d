// internal/service/deps.go
package service

import (
	"context"
	"io"

	"github.com/dangerclosesec/onboarding/internal/crm"
	"github.com/dangerclosesec/onboarding/internal/model"
)

//go:generate mockgen -source=./deps.go -destination=../mocks/mock_service_deps.go -package=mocks

// CRMClient is the part of *crm.Client the services use.
type CRMClient interface {
	CreateLocation(ctx context.Context, in crm.LocationInput) (string, error)
	UpsertContact(ctx context.Context, in crm.ContactInput) (string, error)
	CustomFields(ctx context.Context) (*crm.Schema, error)
	UpdateContactCustomFields(ctx context.Context, contactID string, values []crm.FieldValue) error
	UploadFile(ctx context.Context, filename string, content io.Reader) (string, error)
	SendSMS(ctx context.Context, contactID, message string) error
	SendEmail(ctx context.Context, contactID, subject, html string) error
}

// ImageStore keeps uploaded images. *storage.LocalStorage satisfies it.
type ImageStore interface {
	SaveImage(ctx context.Context, dir string, content io.Reader) (string, error)
	ReadAll(rel string) (io.Reader, error)
	URL(rel string) string
	Delete(rel string) error
}

// TextSender delivers a text message to a phone number.
type TextSender interface {
	SendText(ctx context.Context, phone, message string) error
}

// PillarLookup returns default pillar descriptions keyed by pillar name.
type PillarLookup interface {
	Descriptions(ctx context.Context) (map[string]string, error)
}

// Syncer mirrors one submission to the CRM. *MirrorSync satisfies it.
type Syncer interface {
	Sync(ctx context.Context, sub model.Submission) (*SyncReport, error)
}
