// internal/service/share.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/email"
	"github.com/dangerclosesec/onboarding/internal/metrics"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/go-playground/validator/v10"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

type ShareInput struct {
	Slug          string `json:"slug" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"omitempty,min=7,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	RecipientName string `json:"recipient_name" validate:"max=100"`
	Template      string `json:"template"`
}

// ChannelResult is the outcome of one delivery channel.
type ChannelResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type ShareOutput struct {
	Link     string                   `json:"link"`
	Channels map[string]ChannelResult `json:"channels"`
}

// ShareService sends a site's public link by SMS and/or email.
type ShareService struct {
	repo     repository.SubmissionRepositoryIface
	texts    TextSender
	mailer   email.Sender
	logger   *slog.Logger
	validate *validator.Validate
}

// NewShareService creates the service. mailer may be nil, in which case
// email shares fail their channel.
func NewShareService(repo repository.SubmissionRepositoryIface, texts TextSender, mailer email.Sender, logger *slog.Logger) *ShareService {
	return &ShareService{
		repo:     repo,
		texts:    texts,
		mailer:   mailer,
		logger:   logger,
		validate: newValidator(),
	}
}

// Share delivers the link on every requested channel. Channels fail
// independently; ErrShareFailed is returned, along with the per-channel
// output, only when none succeeded.
func (s *ShareService) Share(ctx context.Context, in ShareInput) (*ShareOutput, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if in.Phone == "" && in.Email == "" {
		return nil, domain.ErrMissingShareChannel
	}
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		verr := domain.NewValidationError()
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), validationMessage(fe))
		}
		return nil, verr
	}

	template := model.TemplateStyle(strings.ToLower(strings.TrimSpace(in.Template)))
	if template != "" && !template.Valid() {
		return nil, domain.ErrInvalidTemplate
	}

	sub, err := s.repo.FindBySlug(ctx, strings.TrimSpace(in.Slug))
	if err != nil {
		return nil, err
	}
	b := sub.Base()

	out := &ShareOutput{
		Link:     b.URLFor(template),
		Channels: make(map[string]ChannelResult),
	}

	if in.Phone != "" {
		message := shareText(in.RecipientName, sub.DisplayName(), out.Link)
		out.Channels[ChannelSMS] = s.deliver(ctx, ChannelSMS, func() error {
			return s.texts.SendText(ctx, NormalizePhone(in.Phone), message)
		})
	}

	if in.Email != "" {
		out.Channels[ChannelEmail] = s.deliver(ctx, ChannelEmail, func() error {
			if s.mailer == nil {
				return fmt.Errorf("email delivery is not configured")
			}
			return s.mailer.SendEmail(ctx, email.Share(in.Email, email.ShareData{
				RecipientName: in.RecipientName,
				SenderName:    strings.TrimSpace(b.FirstName + " " + b.LastName),
				DisplayName:   sub.DisplayName(),
				Link:          out.Link,
			}))
		})
	}

	for _, res := range out.Channels {
		if res.Sent {
			return out, nil
		}
	}
	return out, domain.ErrShareFailed
}

func (s *ShareService) deliver(ctx context.Context, channel string, send func() error) ChannelResult {
	if err := send(); err != nil {
		s.logger.WarnContext(ctx, "share delivery failed", "channel", channel, "error", err)
		metrics.RecordShare(channel, false)
		return ChannelResult{Error: "delivery failed"}
	}
	metrics.RecordShare(channel, true)
	return ChannelResult{Sent: true}
}

func shareText(recipient, displayName, link string) string {
	greeting := "Hi"
	if r := strings.TrimSpace(recipient); r != "" {
		greeting += " " + r
	}
	return fmt.Sprintf("%s, check out %s: %s", greeting, displayName, link)
}
