// internal/service/submission.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/email"
	"github.com/dangerclosesec/onboarding/internal/metrics"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/dangerclosesec/onboarding/internal/storage"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

const (
	campaignSlotBoilerplate     = "We are committed to addressing this critical issue with practical, effective solutions that benefit our community."
	organizationSlotBoilerplate = "We are proud to offer this service to our community and look forward to serving you."
)

// ImageUpload is one uploaded image field.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// SubmissionInput is a parsed submission form. Kind is selected once from
// submission_type; variant fields of the other kind are ignored.
type SubmissionInput struct {
	Kind model.Kind `form:"-"`

	FirstName      string `form:"first_name" validate:"required,max=100"`
	LastName       string `form:"last_name" validate:"required,max=100"`
	Email          string `form:"email" validate:"required,email,max=254"`
	Phone          string `form:"phone" validate:"required,min=7,max=20"`
	TemplateStyle  string `form:"template_style" validate:"required,oneof=modern traditional bold"`
	PrimaryColor   string `form:"primary_color" validate:"required,hexcolor"`
	SecondaryColor string `form:"secondary_color" validate:"required,hexcolor"`
	BioText        string `form:"bio_text"`
	TagLine        string `form:"tag_line" validate:"max=200"`
	CustomSlug     string `form:"custom_slug" validate:"max=100"`

	IsPasswordProtected bool   `form:"is_password_protected"`
	Password            string `form:"password" validate:"max=100"`

	// Slots are pillar_N / pillar_N_desc for campaigns and service_N /
	// service_N_desc for organizations.
	Slots [3]model.Pillar `form:"-"`

	CampaignSubtype    string `form:"campaign_subtype"`
	PositionRunningFor string `form:"position_running_for" validate:"max=200"`
	RidingZoneName     string `form:"riding_zone_name" validate:"max=200"`
	ElectionDate       string `form:"election_date" validate:"omitempty,datetime=2006-01-02"`
	DonationURL        string `form:"donation_url" validate:"omitempty,url,max=255"`
	EventCalendarURL   string `form:"event_calendar_url" validate:"omitempty,url,max=200"`

	OrganizationName    string `form:"organization_name" validate:"max=200"`
	OrganizationSubtype string `form:"organization_subtype"`

	Images map[string]ImageUpload `form:"-"`
}

// SubmissionResult is a stored submission plus the outcome of its CRM mirror.
type SubmissionResult struct {
	Submission model.Submission
	CRM        *SyncReport
}

type SubmissionService struct {
	repo            repository.SubmissionRepositoryIface
	pillars         PillarLookup
	images          ImageStore
	sync            Syncer
	mailer          email.Sender
	defaultPassword string
	syncTimeout     time.Duration
	logger          *slog.Logger
	validate        *validator.Validate
}

// SubmissionServiceConfig carries the optional collaborators of the gateway.
type SubmissionServiceConfig struct {
	DefaultPassword string
	SyncTimeout     time.Duration
	// Sync mirrors new records to the CRM; nil disables mirroring.
	Sync Syncer
	// Mailer sends the site-published email; nil disables it.
	Mailer email.Sender
}

func NewSubmissionService(
	repo repository.SubmissionRepositoryIface,
	pillars PillarLookup,
	images ImageStore,
	cfg SubmissionServiceConfig,
	logger *slog.Logger,
) *SubmissionService {
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 60 * time.Second
	}
	return &SubmissionService{
		repo:            repo,
		pillars:         pillars,
		images:          images,
		sync:            cfg.Sync,
		mailer:          cfg.Mailer,
		defaultPassword: cfg.DefaultPassword,
		syncTimeout:     cfg.SyncTimeout,
		logger:          logger,
		validate:        newValidator(),
	}
}

// newValidator reports field errors under their form names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// FillDefaults returns in with every optional value that has a documented
// default filled in. Empty slot labels become "Issue N"; empty descriptions
// come from descriptions when the label names a known pillar, else from
// boilerplate text.
func FillDefaults(in SubmissionInput, descriptions map[string]string) SubmissionInput {
	if in.Kind == "" {
		in.Kind = model.KindCampaign
	}
	if strings.TrimSpace(in.TemplateStyle) == "" {
		in.TemplateStyle = string(model.TemplateModern)
	}
	if strings.TrimSpace(in.PrimaryColor) == "" {
		in.PrimaryColor = model.DefaultPrimaryColor
	}
	if strings.TrimSpace(in.SecondaryColor) == "" {
		in.SecondaryColor = model.DefaultSecondaryColor
	}

	boilerplate := campaignSlotBoilerplate
	if in.Kind == model.KindOrganization {
		boilerplate = organizationSlotBoilerplate
		if in.OrganizationSubtype == "" {
			in.OrganizationSubtype = string(model.OrgTypeChurch)
		}
	} else if in.CampaignSubtype == "" {
		in.CampaignSubtype = string(model.CampaignInABox)
	}

	for i := range in.Slots {
		slot := &in.Slots[i]
		slot.Label = strings.TrimSpace(slot.Label)
		if slot.Label == "" {
			slot.Label = "Issue " + strconv.Itoa(i+1)
		}
		if strings.TrimSpace(slot.Description) == "" {
			if desc, ok := descriptions[slot.Label]; ok && desc != "" {
				slot.Description = desc
			} else {
				slot.Description = boilerplate
			}
		}
	}

	return in
}

// Validate checks in after defaults were filled.
func (s *SubmissionService) Validate(in SubmissionInput) error {
	verr := domain.NewValidationError()

	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating submission: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), validationMessage(fe))
		}
	}

	prefix := "pillar"
	switch in.Kind {
	case model.KindCampaign:
		if !model.CampaignSubtype(in.CampaignSubtype).Valid() {
			verr.Add("campaign_subtype", "must be one of: campaign, election")
		}
	case model.KindOrganization:
		prefix = "service"
		if !model.OrganizationSubtype(in.OrganizationSubtype).Valid() {
			verr.Add("organization_subtype", "must be one of: church, charity, eda, ca")
		}
	default:
		verr.Add("submission_type", "must be campaign or organization")
	}

	for i, slot := range in.Slots {
		if len(slot.Label) > 100 {
			verr.Add(fmt.Sprintf("%s_%d", prefix, i+1), "must be at most 100 characters")
		}
	}

	allowed := make(map[string]bool)
	for _, field := range model.ImageFields(in.Kind) {
		allowed[field] = true
	}
	for field := range in.Images {
		if !allowed[field] {
			verr.Add(field, "is not an image field for this submission type")
		}
	}
	for _, field := range model.RequiredImageFields(in.Kind) {
		if img, ok := in.Images[field]; !ok || img.Content == nil {
			verr.Add(field, "is required")
		}
	}

	return verr.OrNil()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "hexcolor":
		return "must be a hex color such as #0d6efd"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	}
	return "is invalid"
}

// Create runs the full submission pipeline: defaults, validation, image
// storage, password fallback, persistence with slug assignment, then a best
// effort CRM mirror and notification. CRM and email failures never undo the
// stored record.
func (s *SubmissionService) Create(ctx context.Context, in SubmissionInput) (*SubmissionResult, error) {
	descriptions, err := s.pillars.Descriptions(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "pillar descriptions unavailable, using boilerplate", "error", err)
		descriptions = nil
	}

	in = FillDefaults(in, descriptions)
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	sub, err := s.build(in)
	if err != nil {
		return nil, err
	}

	if err := s.storeImages(ctx, sub, in.Images); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.discardImages(ctx, sub.Images())
		return nil, fmt.Errorf("storing submission: %w", err)
	}
	metrics.RecordSubmission(string(sub.Kind()))

	b := sub.Base()
	s.logger.InfoContext(ctx, "submission stored",
		"submission_id", b.ID.String(),
		"type", sub.Kind(),
		"slug", b.Slug)

	result := &SubmissionResult{Submission: sub}
	result.CRM = s.mirror(ctx, sub)
	s.notify(ctx, sub)

	return result, nil
}

func (s *SubmissionService) build(in SubmissionInput) (model.Submission, error) {
	base := model.SubmissionBase{
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		Email:               strings.TrimSpace(in.Email),
		Phone:               strings.TrimSpace(in.Phone),
		TemplateStyle:       model.TemplateStyle(in.TemplateStyle),
		PrimaryColor:        in.PrimaryColor,
		SecondaryColor:      in.SecondaryColor,
		BioText:             in.BioText,
		TagLine:             in.TagLine,
		IsPasswordProtected: in.IsPasswordProtected,
	}
	if custom := strings.TrimSpace(in.CustomSlug); custom != "" {
		base.CustomSlug = &custom
	}
	if in.IsPasswordProtected {
		password := in.Password
		if password == "" {
			password = s.defaultPassword
		}
		base.Password = &password
	}

	slots := in.Slots
	switch in.Kind {
	case model.KindOrganization:
		return &model.OrganizationSubmission{
			SubmissionBase:      base,
			OrganizationName:    strings.TrimSpace(in.OrganizationName),
			OrganizationSubtype: model.OrganizationSubtype(in.OrganizationSubtype),
			Service1:            slots[0].Label,
			Service1Desc:        slots[0].Description,
			Service2:            slots[1].Label,
			Service2Desc:        slots[1].Description,
			Service3:            slots[2].Label,
			Service3Desc:        slots[2].Description,
		}, nil
	case model.KindCampaign:
		c := &model.CampaignSubmission{
			SubmissionBase:     base,
			CampaignSubtype:    model.CampaignSubtype(in.CampaignSubtype),
			PositionRunningFor: in.PositionRunningFor,
			RidingZoneName:     in.RidingZoneName,
			DonationURL:        in.DonationURL,
			EventCalendarURL:   in.EventCalendarURL,
			Pillar1:            slots[0].Label,
			Pillar1Desc:        slots[0].Description,
			Pillar2:            slots[1].Label,
			Pillar2Desc:        slots[1].Description,
			Pillar3:            slots[2].Label,
			Pillar3Desc:        slots[2].Description,
		}
		if in.ElectionDate != "" {
			t, err := time.Parse(time.DateOnly, in.ElectionDate)
			if err != nil {
				verr := domain.NewValidationError()
				verr.Add("election_date", "must be a date in YYYY-MM-DD format")
				return nil, verr
			}
			d := datatypes.Date(t)
			c.ElectionDate = &d
		}
		return c, nil
	}
	return nil, domain.ErrInvalidSubmission
}

// storeImages writes every upload to blob storage under a per-field
// directory and records the stored paths on sub.
// storeImages saves every upload and records its path on sub. When any upload
// is rejected, the files already written are removed again.
func (s *SubmissionService) storeImages(ctx context.Context, sub model.Submission, uploads map[string]ImageUpload) error {
	verr := domain.NewValidationError()
	saved := make(map[string]string)
	for _, field := range model.ImageFields(sub.Kind()) {
		upload, ok := uploads[field]
		if !ok || upload.Content == nil {
			continue
		}

		rel, err := s.images.SaveImage(ctx, string(sub.Kind())+"/"+field, upload.Content)
		switch {
		case errors.Is(err, storage.ErrNotImage):
			verr.Add(field, "must be a JPEG, PNG, GIF, WebP or SVG image")
			continue
		case errors.Is(err, storage.ErrTooLarge):
			verr.Add(field, "exceeds the upload size limit")
			continue
		case err != nil:
			s.discardImages(ctx, saved)
			return fmt.Errorf("storing %s: %w", field, err)
		}
		saved[field] = rel
	}

	if err := verr.OrNil(); err != nil {
		s.discardImages(ctx, saved)
		return err
	}
	for field, rel := range saved {
		sub.SetImage(field, rel)
	}
	return nil
}

func (s *SubmissionService) discardImages(ctx context.Context, paths map[string]string) {
	for field, rel := range paths {
		if rel == "" {
			continue
		}
		if err := s.images.Delete(rel); err != nil {
			s.logger.WarnContext(ctx, "removing orphaned upload failed", "field", field, "path", rel, "error", err)
		}
	}
}

// mirror runs the CRM sync detached from the request's cancellation but
// bounded by the sync timeout.
func (s *SubmissionService) mirror(ctx context.Context, sub model.Submission) *SyncReport {
	if s.sync == nil {
		metrics.RecordCRMSync("skipped")
		return nil
	}

	syncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.syncTimeout)
	defer cancel()

	report, err := s.sync.Sync(syncCtx, sub)
	if err != nil {
		s.logger.WarnContext(ctx, "crm mirror failed, record kept",
			"submission_id", sub.Base().ID.String(),
			"error", err)
	}
	return report
}

func (s *SubmissionService) notify(ctx context.Context, sub model.Submission) {
	if s.mailer == nil {
		return
	}

	b := sub.Base()
	data := email.SitePublishedData{
		Name: b.FirstName,
		Slug: b.Slug,
		URLs: map[string]string{
			string(model.TemplateModern):      b.ModernURL,
			string(model.TemplateTraditional): b.TraditionalURL,
			string(model.TemplateBold):        b.BoldURL,
		},
		Password: b.PasswordValue(),
	}
	if err := s.mailer.SendEmail(ctx, email.SitePublished(b.Email, data)); err != nil {
		s.logger.WarnContext(ctx, "site published email failed",
			"submission_id", b.ID.String(),
			"error", err)
	}
}
