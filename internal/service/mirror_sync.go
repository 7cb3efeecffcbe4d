// internal/service/mirror_sync.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/crm"
	"github.com/dangerclosesec/onboarding/internal/metrics"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
)

// SyncReport summarises one mirror attempt.
type SyncReport struct {
	ContactID      string   `json:"contact_id,omitempty"`
	LocationID     string   `json:"location_id,omitempty"`
	MappedFields   []string `json:"mapped_fields,omitempty"`
	SkippedFields  []string `json:"skipped_fields,omitempty"`
	UploadedImages []string `json:"uploaded_images,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// Status is success, partial or failure.
func (r *SyncReport) Status() string {
	switch {
	case r.ContactID == "":
		return "failure"
	case len(r.Errors) > 0:
		return "partial"
	default:
		return "success"
	}
}

func (r *SyncReport) fail(step string, err error) {
	r.Errors = append(r.Errors, step+": "+err.Error())
}

// MirrorSync pushes a stored submission to the CRM.
type MirrorSync struct {
	crm    CRMClient
	repo   repository.SubmissionRepositoryIface
	images ImageStore
	logger *slog.Logger
}

// NewMirrorSync creates a new sync service
func NewMirrorSync(client CRMClient, repo repository.SubmissionRepositoryIface, images ImageStore, logger *slog.Logger) *MirrorSync {
	return &MirrorSync{
		crm:    client,
		repo:   repo,
		images: images,
		logger: logger,
	}
}

// Sync creates the submitter's location unless one is already linked,
// upserts their contact, records the linkage, then writes custom fields and
// uploads images. A new location id is stored immediately so a later retry
// reuses it. Only a failed contact upsert is returned as an error;
// everything after it degrades to entries in the report.
func (s *MirrorSync) Sync(ctx context.Context, sub model.Submission) (*SyncReport, error) {
	b := sub.Base()
	report := &SyncReport{}
	logger := s.logger.With("submission_id", b.ID.String(), "type", sub.Kind(), "slug", b.Slug)

	var existingContact string
	if b.IsMirrored() {
		existingContact = *b.CRMContactID
	}

	var locationID string
	if b.CRMLocationID != nil {
		locationID = *b.CRMLocationID
	}
	if locationID == "" {
		locationID = s.createLocation(ctx, logger, sub, existingContact, report)
	}
	report.LocationID = locationID

	contact := crm.ContactInput{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Email:     b.Email,
		Phone:     b.Phone,
		Website:   b.URLFor(b.TemplateStyle),
		Source:    "onboarding",
		Tags:      contactTags(sub),
	}
	if sub.Kind() == model.KindOrganization {
		contact.CompanyName = sub.DisplayName()
	}

	contactID, err := s.crm.UpsertContact(ctx, contact)
	if err != nil {
		logger.ErrorContext(ctx, "crm contact upsert failed", "error", err)
		report.fail("contact", err)
		metrics.RecordCRMSync(report.Status())
		return report, fmt.Errorf("upserting crm contact: %w", err)
	}
	report.ContactID = contactID

	if err := s.repo.UpdateCRMLinkage(ctx, sub.Kind(), b.ID, contactID, locationID); err != nil {
		logger.ErrorContext(ctx, "recording crm linkage failed", "error", err)
		report.fail("linkage", err)
	} else {
		id := contactID
		b.CRMContactID = &id
		if locationID != "" {
			loc := locationID
			b.CRMLocationID = &loc
		}
	}

	values := s.mapFields(ctx, logger, sub, report)
	if len(values) > 0 {
		if err := s.crm.UpdateContactCustomFields(ctx, contactID, values); err != nil {
			logger.WarnContext(ctx, "crm custom field update failed", "error", err)
			report.fail("custom_fields", err)
		}
	}

	if err := s.crm.SendSMS(ctx, contactID, welcomeMessage(sub)); err != nil {
		logger.WarnContext(ctx, "crm welcome message failed", "error", err)
		report.fail("message", err)
	}

	metrics.RecordCRMSync(report.Status())
	logger.InfoContext(ctx, "crm mirror finished",
		"status", report.Status(),
		"contact_id", contactID,
		"mapped", len(report.MappedFields),
		"skipped", len(report.SkippedFields),
		"images", len(report.UploadedImages))

	return report, nil
}

// mapFields resolves every textual value and uploaded image against the
// contact location's schema. Unknown fields are skipped.
func (s *MirrorSync) mapFields(ctx context.Context, logger *slog.Logger, sub model.Submission, report *SyncReport) []crm.FieldValue {
	schema, err := s.crm.CustomFields(ctx)
	if err != nil {
		logger.WarnContext(ctx, "crm custom field schema unavailable", "error", err)
		report.fail("schema", err)
		return nil
	}

	var values []crm.FieldValue
	assign := func(name, value string) {
		field, ok := schema.Lookup(name)
		if !ok {
			logger.WarnContext(ctx, "crm custom field missing, skipping", "field", name)
			report.SkippedFields = append(report.SkippedFields, name)
			return
		}
		values = append(values, crm.FieldValue{ID: field.ID, Value: value})
		report.MappedFields = append(report.MappedFields, name)
	}

	for _, f := range crmTextFields(sub) {
		assign(f.Name, f.Value)
	}

	images := sub.Images()
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := schema.Lookup(name); !ok {
			logger.WarnContext(ctx, "crm custom field missing, skipping upload", "field", name)
			report.SkippedFields = append(report.SkippedFields, name)
			continue
		}

		url, err := s.uploadImage(ctx, sub.Base().Slug, name, images[name])
		if err != nil {
			logger.WarnContext(ctx, "crm image upload failed", "field", name, "error", err)
			report.fail("upload "+name, err)
			continue
		}
		report.UploadedImages = append(report.UploadedImages, name)
		assign(name, url)
	}

	return values
}

func (s *MirrorSync) uploadImage(ctx context.Context, slug, field, rel string) (string, error) {
	content, err := s.images.ReadAll(rel)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return s.crm.UploadFile(ctx, slug+"-"+field+path.Ext(rel), content)
}

func contactTags(sub model.Submission) []string {
	tags := []string{"onboarding", string(sub.Kind())}
	switch v := sub.(type) {
	case *model.CampaignSubmission:
		if v.CampaignSubtype != "" {
			tags = append(tags, string(v.CampaignSubtype))
		}
	case *model.OrganizationSubmission:
		if v.OrganizationSubtype != "" {
			tags = append(tags, string(v.OrganizationSubtype))
		}
	}
	return tags
}

func welcomeMessage(sub model.Submission) string {
	b := sub.Base()
	var msg strings.Builder
	fmt.Fprintf(&msg, "Hi %s, your site is ready: %s", b.FirstName, b.URLFor(b.TemplateStyle))
	if b.IsPasswordProtected {
		fmt.Fprintf(&msg, " (password: %s)", b.PasswordValue())
	}
	return msg.String()
}

// createLocation creates the CRM location and links it to the record right
// away. It returns "" when the CRM refused.
func (s *MirrorSync) createLocation(ctx context.Context, logger *slog.Logger, sub model.Submission, contactID string, report *SyncReport) string {
	b := sub.Base()
	locationID, err := s.crm.CreateLocation(ctx, crm.LocationInput{
		Name:    sub.DisplayName(),
		Email:   b.Email,
		Phone:   b.Phone,
		Website: b.URLFor(b.TemplateStyle),
		Prospect: &crm.LocationProspect{
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
		},
	})
	if err != nil {
		logger.WarnContext(ctx, "crm location creation failed", "error", err)
		report.fail("location", err)
		return ""
	}

	if err := s.repo.UpdateCRMLinkage(ctx, sub.Kind(), b.ID, contactID, locationID); err != nil {
		logger.ErrorContext(ctx, "recording crm location failed", "error", err, "location_id", locationID)
		report.fail("location_linkage", err)
	} else {
		loc := locationID
		b.CRMLocationID = &loc
	}
	return locationID
}
