// internal/crm/client.go
package crm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config carries the endpoint and credentials of the CRM.
type Config struct {
	BaseURL    string
	APIVersion string
	// AgencyToken creates locations.
	AgencyToken string
	// LocationToken is used for everything scoped to ContactLocationID.
	LocationToken     string
	ContactLocationID string
	CompanyID         string

	Timeout   time.Duration
	SchemaTTL time.Duration

	UpsertRetryCount   int
	UpsertRetryWait    time.Duration
	UpsertRetryMaxWait time.Duration
}

// Client talks to the CRM REST API.
type Client struct {
	http   *resty.Client
	upsert *resty.Client
	cfg    Config
	schema *SchemaCache
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.SchemaTTL <= 0 {
		cfg.SchemaTTL = 10 * time.Minute
	}
	if cfg.UpsertRetryWait <= 0 {
		cfg.UpsertRetryWait = 2 * time.Second
	}
	if cfg.UpsertRetryMaxWait <= 0 {
		cfg.UpsertRetryMaxWait = 4 * cfg.UpsertRetryWait
	}

	c := &Client{
		http: newRestyClient(cfg),
		cfg:  cfg,
	}

	// Contact upserts are the only calls retried, and only when the request
	// never got an answer.
	c.upsert = newRestyClient(cfg).
		SetRetryCount(cfg.UpsertRetryCount).
		SetRetryWaitTime(cfg.UpsertRetryWait).
		SetRetryMaxWaitTime(cfg.UpsertRetryMaxWait).
		AddRetryCondition(func(_ *resty.Response, err error) bool {
			return isTransient(err)
		}).
		AddRetryHook(func(_ *resty.Response, err error) {
			slog.Warn("retrying crm contact upsert", "error", err)
		})

	c.schema = newSchemaCache(cfg.SchemaTTL, cfg.LocationToken, c.fetchCustomFields)
	return c
}

func newRestyClient(cfg Config) *resty.Client {
	return resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Version", cfg.APIVersion)
}

// ContactLocationID is the fixed location contacts are upserted into.
func (c *Client) ContactLocationID() string {
	return c.cfg.ContactLocationID
}

// Schema exposes the custom field cache.
func (c *Client) Schema() *SchemaCache {
	return c.schema
}

// CreateLocation creates a workspace and returns its id.
func (c *Client) CreateLocation(ctx context.Context, in LocationInput) (string, error) {
	if in.CompanyID == "" {
		in.CompanyID = c.cfg.CompanyID
	}

	var out locationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.AgencyToken).
		SetBody(in).
		SetResult(&out).
		Post("/locations/")
	if err := check(resp, err); err != nil {
		return "", fmt.Errorf("creating location: %w", err)
	}

	if out.ID != "" {
		return out.ID, nil
	}
	return out.Location.ID, nil
}

// UpsertContact creates or updates a contact and returns its id.
func (c *Client) UpsertContact(ctx context.Context, in ContactInput) (string, error) {
	if in.LocationID == "" {
		in.LocationID = c.cfg.ContactLocationID
	}

	var out contactResponse
	resp, err := c.upsert.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.LocationToken).
		SetBody(in).
		SetResult(&out).
		Post("/contacts/upsert")
	if err := check(resp, err); err != nil {
		return "", fmt.Errorf("upserting contact: %w", err)
	}
	return out.Contact.ID, nil
}

// CustomFields returns the cached custom field schema of the contact location.
func (c *Client) CustomFields(ctx context.Context) (*Schema, error) {
	return c.schema.Get(ctx, c.cfg.ContactLocationID)
}

func (c *Client) fetchCustomFields(ctx context.Context, locationID string) ([]CustomField, error) {
	var out customFieldsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.LocationToken).
		SetPathParam("locationId", locationID).
		SetResult(&out).
		Get("/locations/{locationId}/customFields")
	if err := check(resp, err); err != nil {
		return nil, fmt.Errorf("fetching custom fields: %w", err)
	}
	return out.CustomFields, nil
}

// UpdateContactCustomFields writes custom field values onto a contact.
func (c *Client) UpdateContactCustomFields(ctx context.Context, contactID string, values []FieldValue) error {
	if len(values) == 0 {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.LocationToken).
		SetPathParam("contactId", contactID).
		SetBody(map[string]any{"customFields": values}).
		Put("/contacts/{contactId}")
	if err := check(resp, err); err != nil {
		return fmt.Errorf("updating contact custom fields: %w", err)
	}
	return nil
}

// UploadFile stores a file in the CRM media library and returns its public URL.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (string, error) {
	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.LocationToken).
		SetQueryParam("locationId", c.cfg.ContactLocationID).
		SetFileReader("file", filename, content).
		SetFormData(map[string]string{"name": filename}).
		SetResult(&out).
		Post("/medias/upload-file")
	if err := check(resp, err); err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	return out.URL, nil
}

// SendSMS sends a text message to a contact.
func (c *Client) SendSMS(ctx context.Context, contactID, message string) error {
	return c.sendMessage(ctx, messageRequest{Type: "SMS", ContactID: contactID, Message: message})
}

// SendEmail sends an HTML email to a contact.
func (c *Client) SendEmail(ctx context.Context, contactID, subject, html string) error {
	return c.sendMessage(ctx, messageRequest{Type: "Email", ContactID: contactID, Subject: subject, HTML: html})
}

func (c *Client) sendMessage(ctx context.Context, msg messageRequest) error {
	var out messageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.LocationToken).
		SetBody(msg).
		SetResult(&out).
		Post("/conversations/messages")
	if err := check(resp, err); err != nil {
		return fmt.Errorf("sending %s: %w", msg.Type, err)
	}
	return nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Method:     resp.Request.Method,
			Path:       resp.Request.URL,
			Body:       resp.String(),
		}
	}
	return nil
}
