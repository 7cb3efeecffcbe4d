// internal/model/submission.go
package model

import (
	"strings"
	"time"

	"github.com/dangerclosesec/onboarding/internal/slug"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind selects which submission table a record lives in.
type Kind string

const (
	KindCampaign     Kind = "campaign"
	KindOrganization Kind = "organization"
)

// KindFromForm maps the submission_type form value to a Kind. Anything other
// than "organization" is a campaign.
func KindFromForm(value string) Kind {
	if strings.EqualFold(strings.TrimSpace(value), string(KindOrganization)) {
		return KindOrganization
	}
	return KindCampaign
}

// ParseKind is the strict variant used by filters; unknown values are rejected.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindCampaign:
		return KindCampaign, true
	case KindOrganization:
		return KindOrganization, true
	}
	return "", false
}

type TemplateStyle string

const (
	TemplateModern      TemplateStyle = "modern"
	TemplateTraditional TemplateStyle = "traditional"
	TemplateBold        TemplateStyle = "bold"
)

// TemplateStyles lists every template a site is rendered with.
var TemplateStyles = []TemplateStyle{TemplateModern, TemplateTraditional, TemplateBold}

func (t TemplateStyle) Valid() bool {
	for _, s := range TemplateStyles {
		if t == s {
			return true
		}
	}
	return false
}

// TemplateNames returns TemplateStyles as plain strings.
func TemplateNames() []string {
	names := make([]string, len(TemplateStyles))
	for i, s := range TemplateStyles {
		names[i] = string(s)
	}
	return names
}

const (
	DefaultPrimaryColor   = "#0d6efd"
	DefaultSecondaryColor = "#6c757d"
)

// SubmissionBase holds the columns shared by both submission tables.
type SubmissionBase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(254);not null;index" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`

	TemplateStyle  TemplateStyle `gorm:"type:varchar(20);not null;default:'modern'" json:"template_style"`
	PrimaryColor   string        `gorm:"type:varchar(7);not null;default:'#0d6efd'" json:"primary_color"`
	SecondaryColor string        `gorm:"type:varchar(7);not null;default:'#6c757d'" json:"secondary_color"`

	BioText         string `gorm:"type:text" json:"bio_text"`
	TagLine         string `gorm:"type:varchar(200)" json:"tag_line"`
	BackgroundImage string `gorm:"type:varchar(255)" json:"background_image"`

	Slug       string  `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	CustomSlug *string `gorm:"type:varchar(100)" json:"custom_slug"`

	ModernURL      string `gorm:"type:varchar(255)" json:"modern_url"`
	TraditionalURL string `gorm:"type:varchar(255)" json:"traditional_url"`
	BoldURL        string `gorm:"type:varchar(255)" json:"bold_url"`

	IsPasswordProtected bool    `gorm:"not null;default:false" json:"is_password_protected"`
	Password            *string `gorm:"type:varchar(100)" json:"-"`

	OTPVerified bool `gorm:"column:otp_verified;not null;default:false" json:"otp_verified" szlr:"scope:admin"`

	CRMContactID  *string `gorm:"column:crm_contact_id;type:varchar(64);index" json:"crm_contact_id" szlr:"scope:admin"`
	CRMLocationID *string `gorm:"column:crm_location_id;type:varchar(64)" json:"crm_location_id" szlr:"scope:admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *SubmissionBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ApplyTemplateURLs derives the per-template URLs from the current slug.
func (b *SubmissionBase) ApplyTemplateURLs(basePath string) {
	urls := slug.TemplateURLs(basePath, b.Slug, TemplateNames())
	b.ModernURL = urls[string(TemplateModern)]
	b.TraditionalURL = urls[string(TemplateTraditional)]
	b.BoldURL = urls[string(TemplateBold)]
}

// URLFor returns the stored URL of the given template, falling back to the
// record's own style when t is empty or unknown.
func (b *SubmissionBase) URLFor(t TemplateStyle) string {
	if !t.Valid() {
		t = b.TemplateStyle
	}
	switch t {
	case TemplateTraditional:
		return b.TraditionalURL
	case TemplateBold:
		return b.BoldURL
	default:
		return b.ModernURL
	}
}

// PasswordValue returns the stored password or "" when none is set.
func (b *SubmissionBase) PasswordValue() string {
	if b.Password == nil {
		return ""
	}
	return *b.Password
}

// IsMirrored reports whether the record already has a CRM contact.
func (b *SubmissionBase) IsMirrored() bool {
	return b.CRMContactID != nil && *b.CRMContactID != ""
}

func (b *SubmissionBase) customSlug() string {
	if b.CustomSlug == nil {
		return ""
	}
	return *b.CustomSlug
}

func (b *SubmissionBase) excludeID() string {
	if b.ID == uuid.Nil {
		return ""
	}
	return b.ID.String()
}

// Submission is one of *CampaignSubmission or *OrganizationSubmission.
type Submission interface {
	Kind() Kind
	Base() *SubmissionBase
	// SlugRequest describes how the record's slug is derived.
	SlugRequest() slug.Request
	// DisplayName is the human readable name used in messages and the CRM.
	DisplayName() string
	// Slots returns the pillar (campaign) or service (organization) slots.
	Slots() [3]Pillar
	// Images returns stored image paths keyed by form field name.
	Images() map[string]string
	// SetImage stores path in the image field named field. It reports false
	// for fields the variant does not have.
	SetImage(field, path string) bool

	isSubmission()
}

// ImageFields lists the image form fields accepted for kind.
func ImageFields(kind Kind) []string {
	switch kind {
	case KindOrganization:
		return []string{"logo", "owner_photo", "sales_team_photo", "service_1_image", "service_2_image", "service_3_image", "background_image"}
	default:
		return []string{"headshot", "action_shot_1", "action_shot_2", "action_shot_3", "background_image"}
	}
}

// RequiredImageFields lists the image fields a submission of kind must carry.
func RequiredImageFields(kind Kind) []string {
	switch kind {
	case KindOrganization:
		return []string{"logo", "owner_photo"}
	default:
		return []string{"headshot"}
	}
}
