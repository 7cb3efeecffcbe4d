// internal/email/mailers.go
package email

const (
	TemplateSitePublished = "site_published"
	TemplateShare         = "share"
)

// SitePublishedData feeds the site_published template.
type SitePublishedData struct {
	Name     string
	Slug     string
	URLs     map[string]string
	Password string
}

// ShareData feeds the share template.
type ShareData struct {
	RecipientName string
	SenderName    string
	DisplayName   string
	Link          string
}

// SitePublished builds the message sent to a submitter once their site exists.
func SitePublished(to string, data SitePublishedData) EmailData {
	return EmailData{
		To:           to,
		Subject:      "Your site is ready",
		TemplateName: TemplateSitePublished,
		TemplateData: data,
	}
}

// Share builds the message sent when a submitter shares their site.
func Share(to string, data ShareData) EmailData {
	return EmailData{
		To:           to,
		Subject:      data.DisplayName + " shared a page with you",
		TemplateName: TemplateShare,
		TemplateData: data,
	}
}
