// internal/model/campaign.go
package model

import (
	"strings"

	"github.com/dangerclosesec/onboarding/internal/slug"
	"gorm.io/datatypes"
)

type CampaignSubtype string

const (
	CampaignInABox   CampaignSubtype = "campaign"
	CampaignElection CampaignSubtype = "election"
)

func (s CampaignSubtype) Valid() bool {
	return s == CampaignInABox || s == CampaignElection
}

type CampaignSubmission struct {
	SubmissionBase

	CampaignSubtype    CampaignSubtype `gorm:"type:varchar(20);not null;default:'campaign'" json:"campaign_subtype"`
	PositionRunningFor string          `gorm:"type:varchar(200)" json:"position_running_for"`

	Pillar1     string `gorm:"column:pillar_1;type:varchar(100);not null" json:"pillar_1"`
	Pillar1Desc string `gorm:"column:pillar_1_desc;type:text" json:"pillar_1_desc"`
	Pillar2     string `gorm:"column:pillar_2;type:varchar(100);not null" json:"pillar_2"`
	Pillar2Desc string `gorm:"column:pillar_2_desc;type:text" json:"pillar_2_desc"`
	Pillar3     string `gorm:"column:pillar_3;type:varchar(100);not null" json:"pillar_3"`
	Pillar3Desc string `gorm:"column:pillar_3_desc;type:text" json:"pillar_3_desc"`

	RidingZoneName   string          `gorm:"type:varchar(200)" json:"riding_zone_name"`
	ElectionDate     *datatypes.Date `json:"election_date"`
	DonationURL      string          `gorm:"type:varchar(255)" json:"donation_url"`
	EventCalendarURL string          `gorm:"type:varchar(200)" json:"event_calendar_url"`

	Headshot    string `gorm:"type:varchar(255);not null" json:"headshot"`
	ActionShot1 string `gorm:"column:action_shot_1;type:varchar(255)" json:"action_shot_1"`
	ActionShot2 string `gorm:"column:action_shot_2;type:varchar(255)" json:"action_shot_2"`
	ActionShot3 string `gorm:"column:action_shot_3;type:varchar(255)" json:"action_shot_3"`
}

func (CampaignSubmission) TableName() string {
	return "campaign_submissions"
}

func (c *CampaignSubmission) Kind() Kind            { return KindCampaign }
func (c *CampaignSubmission) Base() *SubmissionBase { return &c.SubmissionBase }
func (c *CampaignSubmission) isSubmission()         {}

func (c *CampaignSubmission) SlugRequest() slug.Request {
	return slug.Request{
		Name:      c.FirstName + c.LastName,
		Custom:    c.customSlug(),
		Default:   string(KindCampaign),
		ExcludeID: c.excludeID(),
	}
}

func (c *CampaignSubmission) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Pillar is one label/description slot.
type Pillar struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Slots returns the three pillar slots in order.
func (c *CampaignSubmission) Slots() [3]Pillar {
	return [3]Pillar{
		{c.Pillar1, c.Pillar1Desc},
		{c.Pillar2, c.Pillar2Desc},
		{c.Pillar3, c.Pillar3Desc},
	}
}

// Images returns the stored image paths keyed by field name, skipping empty ones.
func (c *CampaignSubmission) Images() map[string]string {
	return nonEmpty(map[string]string{
		"headshot":         c.Headshot,
		"action_shot_1":    c.ActionShot1,
		"action_shot_2":    c.ActionShot2,
		"action_shot_3":    c.ActionShot3,
		"background_image": c.BackgroundImage,
	})
}

func (c *CampaignSubmission) SetImage(field, path string) bool {
	switch field {
	case "headshot":
		c.Headshot = path
	case "action_shot_1":
		c.ActionShot1 = path
	case "action_shot_2":
		c.ActionShot2 = path
	case "action_shot_3":
		c.ActionShot3 = path
	case "background_image":
		c.BackgroundImage = path
	default:
		return false
	}
	return true
}

func nonEmpty(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
