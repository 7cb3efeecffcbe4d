// internal/email/smtp.go
package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"
)

type smtpTransport struct {
	addr string
	auth smtp.Auth
}

func newSMTPTransport(host string, port int, username, password string) *smtpTransport {
	t := &smtpTransport{addr: host + ":" + strconv.Itoa(port)}
	if username != "" {
		t.auth = smtp.PlainAuth("", username, password, host)
	}
	return t
}

// deliver checks ctx once up front; net/smtp has no cancellation.
func (t *smtpTransport) deliver(ctx context.Context, msg rendered) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	boundary := "onboarding-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	body, err := buildMIME(msg, boundary, time.Now())
	if err != nil {
		return err
	}
	return smtp.SendMail(t.addr, t.auth, msg.From, []string{msg.To}, body)
}

// buildMIME assembles a multipart/alternative message with base64 bodies,
// plain text first.
func buildMIME(msg rendered, boundary string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	headers := []struct{ key, value string }{
		{"From", fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", msg.FromName), msg.From)},
		{"To", msg.To},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Subject)},
		{"Date", date.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "multipart/alternative; boundary=" + boundary},
	}
	if msg.Category != "" {
		headers = append(headers, struct{ key, value string }{"X-Category", msg.Category})
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}
	buf.WriteString("\r\n")

	mw := multipart.NewWriter(&buf)
	if err := mw.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("mime boundary: %w", err)
	}
	for _, part := range []struct{ contentType, body string }{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(base64.StdEncoding.EncodeToString([]byte(part.body)))); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
