// internal/model/organization.go
package model

import (
	"strings"

	"github.com/dangerclosesec/onboarding/internal/slug"
)

type OrganizationSubtype string

const (
	OrgTypeChurch               OrganizationSubtype = "church"
	OrgTypeCharity              OrganizationSubtype = "charity"
	OrgTypeEconomicDevelopment  OrganizationSubtype = "eda"
	OrgTypeCommunityAssociation OrganizationSubtype = "ca"
)

func (s OrganizationSubtype) Valid() bool {
	switch s {
	case OrgTypeChurch, OrgTypeCharity, OrgTypeEconomicDevelopment, OrgTypeCommunityAssociation:
		return true
	}
	return false
}

type OrganizationSubmission struct {
	SubmissionBase

	OrganizationName    string              `gorm:"type:varchar(200)" json:"organization_name"`
	OrganizationSubtype OrganizationSubtype `gorm:"type:varchar(20);not null;default:'church'" json:"organization_subtype"`

	Service1      string `gorm:"column:service_1;type:varchar(100);not null" json:"service_1"`
	Service1Desc  string `gorm:"column:service_1_desc;type:text" json:"service_1_desc"`
	Service1Image string `gorm:"column:service_1_image;type:varchar(255)" json:"service_1_image"`
	Service2      string `gorm:"column:service_2;type:varchar(100);not null" json:"service_2"`
	Service2Desc  string `gorm:"column:service_2_desc;type:text" json:"service_2_desc"`
	Service2Image string `gorm:"column:service_2_image;type:varchar(255)" json:"service_2_image"`
	Service3      string `gorm:"column:service_3;type:varchar(100);not null" json:"service_3"`
	Service3Desc  string `gorm:"column:service_3_desc;type:text" json:"service_3_desc"`
	Service3Image string `gorm:"column:service_3_image;type:varchar(255)" json:"service_3_image"`

	Logo           string `gorm:"type:varchar(255);not null" json:"logo"`
	OwnerPhoto     string `gorm:"type:varchar(255);not null" json:"owner_photo"`
	SalesTeamPhoto string `gorm:"type:varchar(255)" json:"sales_team_photo"`
}

func (OrganizationSubmission) TableName() string {
	return "organization_submissions"
}

func (o *OrganizationSubmission) Kind() Kind            { return KindOrganization }
func (o *OrganizationSubmission) Base() *SubmissionBase { return &o.SubmissionBase }
func (o *OrganizationSubmission) isSubmission()         {}

// SlugRequest prefers the organization name and falls back to the contact's name.
func (o *OrganizationSubmission) SlugRequest() slug.Request {
	// A name with no letters or digits falls back to the contact's name.
	name := o.OrganizationName
	if slug.Clean(name) == "" {
		name = o.FirstName + o.LastName
	}
	return slug.Request{
		Name:      name,
		Custom:    o.customSlug(),
		Default:   string(KindOrganization),
		ExcludeID: o.excludeID(),
	}
}

func (o *OrganizationSubmission) DisplayName() string {
	if name := strings.TrimSpace(o.OrganizationName); name != "" {
		return name
	}
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Slots returns the three service slots in order.
func (o *OrganizationSubmission) Slots() [3]Pillar {
	return [3]Pillar{
		{o.Service1, o.Service1Desc},
		{o.Service2, o.Service2Desc},
		{o.Service3, o.Service3Desc},
	}
}

func (o *OrganizationSubmission) Images() map[string]string {
	return nonEmpty(map[string]string{
		"logo":             o.Logo,
		"owner_photo":      o.OwnerPhoto,
		"sales_team_photo": o.SalesTeamPhoto,
		"service_1_image":  o.Service1Image,
		"service_2_image":  o.Service2Image,
		"service_3_image":  o.Service3Image,
		"background_image": o.BackgroundImage,
	})
}

func (o *OrganizationSubmission) SetImage(field, path string) bool {
	switch field {
	case "logo":
		o.Logo = path
	case "owner_photo":
		o.OwnerPhoto = path
	case "sales_team_photo":
		o.SalesTeamPhoto = path
	case "service_1_image":
		o.Service1Image = path
	case "service_2_image":
		o.Service2Image = path
	case "service_3_image":
		o.Service3Image = path
	case "background_image":
		o.BackgroundImage = path
	default:
		return false
	}
	return true
}
