// internal/service/sms.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/crm"
)

// CRMTextSender sends texts through the CRM conversations API. The recipient
// is upserted as a contact of the contact location first.
type CRMTextSender struct {
	crm CRMClient
}

func NewCRMTextSender(client CRMClient) *CRMTextSender {
	return &CRMTextSender{crm: client}
}

func (s *CRMTextSender) SendText(ctx context.Context, phone, message string) error {
	contactID, err := s.crm.UpsertContact(ctx, crm.ContactInput{Phone: phone, Source: "onboarding"})
	if err != nil {
		return fmt.Errorf("resolving sms recipient: %w", err)
	}
	if err := s.crm.SendSMS(ctx, contactID, message); err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	return nil
}

// LogTextSender writes texts to the log. Used when the CRM is disabled.
type LogTextSender struct {
	logger *slog.Logger
}

func NewLogTextSender(logger *slog.Logger) *LogTextSender {
	return &LogTextSender{logger: logger}
}

func (s *LogTextSender) SendText(ctx context.Context, phone, message string) error {
	s.logger.InfoContext(ctx, "SMS not sent, crm disabled", "phone", phone, "message", message)
	return nil
}

// NormalizePhone strips formatting characters, keeping a leading plus.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
