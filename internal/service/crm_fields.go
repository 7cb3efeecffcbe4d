// internal/service/crm_fields.go
package service

import (
	"strconv"
	"time"

	"github.com/dangerclosesec/onboarding/internal/model"
)

// fieldPair is one textual value mirrored to a CRM custom field, addressed
// by the field's display name.
type fieldPair struct {
	Name  string
	Value string
}

// crmTextFields lists the textual values of sub in a stable order. Empty
// values are omitted.
func crmTextFields(sub model.Submission) []fieldPair {
	b := sub.Base()
	fields := []fieldPair{
		{"Submission Type", string(sub.Kind())},
		{"Template Style", string(b.TemplateStyle)},
		{"Primary Color", b.PrimaryColor},
		{"Secondary Color", b.SecondaryColor},
		{"Bio Text", b.BioText},
		{"Tag Line", b.TagLine},
		{"Slug", b.Slug},
		{"Modern URL", b.ModernURL},
		{"Traditional URL", b.TraditionalURL},
		{"Bold URL", b.BoldURL},
		{"Password Protected", strconv.FormatBool(b.IsPasswordProtected)},
	}
	if b.IsPasswordProtected {
		fields = append(fields, fieldPair{"Site Password", b.PasswordValue()})
	}

	switch v := sub.(type) {
	case *model.CampaignSubmission:
		fields = append(fields,
			fieldPair{"Campaign Subtype", string(v.CampaignSubtype)},
			fieldPair{"Position Running For", v.PositionRunningFor},
			fieldPair{"Riding Zone Name", v.RidingZoneName},
			fieldPair{"Donation URL", v.DonationURL},
			fieldPair{"Event Calendar URL", v.EventCalendarURL},
		)
		if v.ElectionDate != nil {
			fields = append(fields, fieldPair{"Election Date", time.Time(*v.ElectionDate).Format(time.DateOnly)})
		}
		fields = append(fields, slotFields("Pillar", sub.Slots())...)
	case *model.OrganizationSubmission:
		fields = append(fields,
			fieldPair{"Organization Name", v.OrganizationName},
			fieldPair{"Organization Subtype", string(v.OrganizationSubtype)},
		)
		fields = append(fields, slotFields("Service", sub.Slots())...)
	}

	out := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func slotFields(prefix string, slots [3]model.Pillar) []fieldPair {
	fields := make([]fieldPair, 0, 6)
	for i, slot := range slots {
		n := strconv.Itoa(i + 1)
		fields = append(fields,
			fieldPair{prefix + " " + n, slot.Label},
			fieldPair{prefix + " " + n + " Desc", slot.Description},
		)
	}
	return fields
}
