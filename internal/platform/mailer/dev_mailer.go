package mailer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/makeoverbyreet/makeover-contact/pkg/logger"
)

// DevMailer prints emails to the log instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(ctx context.Context, email Email) (string, error) {
	id := "dev-" + uuid.NewString()
	logger.InfoContext(ctx, "📧 [DEV MAIL] Booking email",
		"id", id,
		"from", email.From,
		"to", strings.Join(email.To, ", "),
		"reply_to", email.ReplyTo,
		"subject", email.Subject,
		"html", email.HTML,
	)
	return id, nil
}
