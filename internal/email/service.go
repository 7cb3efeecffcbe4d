// internal/email/service.go
package email

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/dangerclosesec/onboarding/internal/config"
	"github.com/sendgrid/sendgrid-go"
)

//go:embed templates/emails
var templateFS embed.FS

const templateRoot = "templates/emails"

type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"
	// ProviderLog writes rendered messages to the log instead of sending them.
	ProviderLog Provider = "none"
)

var ErrMissingSender = errors.New("missing sender email address")

//go:generate mockgen -source=./service.go -destination=../mocks/mock_email_sender.go -package=mocks Sender

// Sender is the part of Service the rest of the application depends on.
type Sender interface {
	SendEmail(ctx context.Context, data EmailData) error
}

// EmailData describes one outgoing message before rendering.
type EmailData struct {
	To           string
	From         string
	FromName     string
	Subject      string
	TemplateName string
	TemplateData any
	// Category tags the message at the provider; defaults to TemplateName.
	Category string
}

// rendered is a message with both bodies filled in, ready for a transport.
type rendered struct {
	EmailData
	HTML string
	Text string
}

type transport interface {
	deliver(ctx context.Context, msg rendered) error
}

// Service renders the embedded templates and hands the result to the
// configured provider.
type Service struct {
	provider  Provider
	transport transport
	fromName  string
	fromAddr  string
	Templates map[string]*Template
}

// Template is a template group: html.tmpl and plaintext.tmpl in one directory.
type Template struct {
	HTML      *template.Template
	Plaintext *texttemplate.Template
}

func NewEmailService(cfg *config.Config, provider Provider) (*Service, error) {
	if provider == "" {
		provider = ProviderLog
	}

	s := &Service{provider: provider, fromName: cfg.Email.FromName}
	switch provider {
	case ProviderSendgrid:
		s.fromAddr = cfg.Sendgrid.From
		s.transport = &sendgridTransport{client: sendgrid.NewSendClient(cfg.Sendgrid.APIKey)}
	case ProviderSMTP:
		smtpCfg := cfg.SMTP[string(ProviderSMTP)]
		s.fromAddr = smtpCfg.From
		s.transport = newSMTPTransport(smtpCfg.Host, smtpCfg.Port, smtpCfg.Username, smtpCfg.Password)
	case ProviderLog:
		s.transport = logTransport{}
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", provider)
	}

	templates, err := loadTemplates(templateFS, templateRoot)
	if err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}
	s.Templates = templates

	return s, nil
}

// loadTemplates parses every template group below root. A group missing
// either body is an error.
func loadTemplates(fsys fs.FS, root string) (map[string]*Template, error) {
	groups, err := fs.Glob(fsys, root+"/*/html.tmpl")
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no email templates found below %s", root)
	}

	templates := make(map[string]*Template, len(groups))
	for _, htmlPath := range groups {
		dir := path.Dir(htmlPath)
		name := path.Base(dir)

		html, err := template.ParseFS(fsys, htmlPath)
		if err != nil {
			return nil, fmt.Errorf("parsing %s html body: %w", name, err)
		}
		text, err := texttemplate.ParseFS(fsys, dir+"/plaintext.tmpl")
		if err != nil {
			return nil, fmt.Errorf("parsing %s plaintext body: %w", name, err)
		}
		templates[name] = &Template{HTML: html, Plaintext: text}
	}
	return templates, nil
}

func (s *Service) Provider() Provider {
	return s.provider
}

// SendEmail renders data and delivers it. Sender name and address fall back
// to the configured defaults.
func (s *Service) SendEmail(ctx context.Context, data EmailData) error {
	if strings.TrimSpace(data.To) == "" {
		return fmt.Errorf("%s email has no recipient", data.TemplateName)
	}

	html, text, err := s.renderTemplate(data.TemplateName, data.TemplateData)
	if err != nil {
		return fmt.Errorf("rendering email template: %w", err)
	}

	if data.FromName == "" {
		data.FromName = s.fromName
	}
	if data.From == "" {
		data.From = s.fromAddr
	}
	if data.From == "" && s.provider != ProviderLog {
		return ErrMissingSender
	}
	if data.Category == "" {
		data.Category = data.TemplateName
	}

	if err := s.transport.deliver(ctx, rendered{EmailData: data, HTML: html, Text: text}); err != nil {
		return fmt.Errorf("delivering %s email via %s: %w", data.TemplateName, s.provider, err)
	}
	return nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func (s *Service) renderTemplate(name string, data any) (string, string, error) {
	tmpl, ok := s.Templates[name]
	if !ok {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	html, err := execute(tmpl.HTML, data)
	if err != nil {
		return "", "", fmt.Errorf("%s html body: %w", name, err)
	}
	text, err := execute(tmpl.Plaintext, data)
	if err != nil {
		return "", "", fmt.Errorf("%s plaintext body: %w", name, err)
	}
	return html, text, nil
}

func execute(t executor, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// logTransport is used when no provider is configured.
type logTransport struct{}

func (logTransport) deliver(ctx context.Context, msg rendered) error {
	slog.InfoContext(ctx, "email not sent, no provider configured",
		"to", msg.To,
		"subject", msg.Subject,
		"template", msg.TemplateName,
		"body", msg.Text)
	return nil
}
