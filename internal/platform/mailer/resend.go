package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("mailer not configured")

type ResendMailer struct {
	client  *resend.Client
	timeout time.Duration
	Enabled bool
}

// NewResendMailer builds a Resend client whose HTTP client gives up after
// timeout. A zero timeout leaves the request bounded only by the caller's
// context.
func NewResendMailer(apiKey string, timeout time.Duration) *ResendMailer {
	m := &ResendMailer{
		timeout: timeout,
		Enabled: apiKey != "",
	}
	if m.Enabled {
		m.client = resend.NewCustomClient(&http.Client{Timeout: timeout}, apiKey)
	}
	return m
}

func (m *ResendMailer) Send(ctx context.Context, email Email) (string, error) {
	if !m.Enabled {
		return "", fmt.Errorf("resend: %w (missing RESEND_API_KEY)", ErrNotConfigured)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
