package mailer

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSend struct {
	client  *mailersend.Mailersend
	timeout time.Duration
	Enabled bool
}

func NewMailerSend(apiKey string, timeout time.Duration) *MailerSend {
	m := &MailerSend{
		timeout: timeout,
		Enabled: apiKey != "",
	}
	if m.Enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}
	return m
}

func (m *MailerSend) Send(ctx context.Context, email Email) (string, error) {
	if !m.Enabled {
		return "", fmt.Errorf("mailersend: %w (missing MAILERSEND_API_KEY)", ErrNotConfigured)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	from := splitAddress(email.From)
	recipients := make([]mailersend.Recipient, 0, len(email.To))
	for _, to := range email.To {
		a := splitAddress(to)
		recipients = append(recipients, mailersend.Recipient{Name: a.Name, Email: a.Address})
	}

	msg := m.client.Email.NewMessage()
	msg.SetFrom(mailersend.From{Name: from.Name, Email: from.Address})
	msg.SetRecipients(recipients)
	msg.SetSubject(email.Subject)
	if email.ReplyTo != "" {
		msg.SetReplyTo(mailersend.ReplyTo{Email: email.ReplyTo})
	}
	if strings.TrimSpace(email.Text) != "" {
		msg.SetText(email.Text)
	}
	if strings.TrimSpace(email.HTML) != "" {
		msg.SetHTML(email.HTML)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("mailersend send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	// MailerSend uses X-Message-Id
	return res.Header.Get("X-Message-Id"), nil
}

// splitAddress accepts both "Name <addr>" and bare addresses. Unparseable
// input is passed through as the address.
func splitAddress(s string) mail.Address {
	if a, err := mail.ParseAddress(s); err == nil {
		return *a
	}
	return mail.Address{Address: strings.TrimSpace(s)}
}
