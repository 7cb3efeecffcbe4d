// internal/crm/types.go
package crm

// LocationInput describes the workspace created for a submitter.
type LocationInput struct {
	Name      string `json:"name"`
	CompanyID string `json:"companyId,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Website   string `json:"website,omitempty"`
	Timezone  string `json:"timezone,omitempty"`

	Prospect *LocationProspect `json:"prospectInfo,omitempty"`
}

type LocationProspect struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ContactInput is upserted by email or phone in the contact location.
type ContactInput struct {
	LocationID  string   `json:"locationId"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	CompanyName string   `json:"companyName,omitempty"`
	Website     string   `json:"website,omitempty"`
	Source      string   `json:"source,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CustomField is one entry of a location's custom field schema.
type CustomField struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FieldKey string `json:"fieldKey"`
	DataType string `json:"dataType"`
}

// FieldValue assigns a value to a custom field by id.
type FieldValue struct {
	ID    string `json:"id"`
	Value string `json:"field_value"`
}

type locationResponse struct {
	ID       string `json:"id"`
	Location struct {
		ID string `json:"id"`
	} `json:"location"`
}

type contactResponse struct {
	New     bool `json:"new"`
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

type customFieldsResponse struct {
	CustomFields []CustomField `json:"customFields"`
}

type uploadResponse struct {
	FileID string `json:"fileId"`
	URL    string `json:"url"`
}

type messageRequest struct {
	Type      string `json:"type"`
	ContactID string `json:"contactId"`
	Message   string `json:"message,omitempty"`
	Subject   string `json:"subject,omitempty"`
	HTML      string `json:"html,omitempty"`
}

type messageResponse struct {
	MessageID string `json:"messageId"`
}
