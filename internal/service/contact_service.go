package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/makeoverbyreet/makeover-contact/internal/domain"
	"github.com/makeoverbyreet/makeover-contact/internal/platform/mailer"
	"github.com/makeoverbyreet/makeover-contact/pkg/config"
	"github.com/makeoverbyreet/makeover-contact/pkg/logger"
)

var ErrDelivery = errors.New("booking email delivery failed")

var bookingTmpl = template.Must(template.New("booking").Parse(`<h2>New Booking Request 💄</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Service:</strong> {{.Service}}</p>
<p><strong>Preferred Date:</strong> {{.Date}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>`))

var bookingTextTmpl = texttemplate.Must(texttemplate.New("booking.txt").Parse(`New Booking Request

Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}
Service: {{.Service}}
Preferred Date: {{.Date}}

Message:
{{.Message}}
`))

type bookingView struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Date    string
	Message template.HTML
}

type ContactService interface {
	// Submit validates the booking and sends exactly one notification email.
	Submit(ctx context.Context, req domain.BookingRequest) (string, error)
}

type contactService struct {
	sender mailer.Sender
	from   string
	to     string
}

func NewContactService(sender mailer.Sender, cfg config.EmailConfig) ContactService {
	return &contactService{
		sender: sender,
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (s *contactService) Submit(ctx context.Context, req domain.BookingRequest) (string, error) {
	if err := req.Validate(); err != nil {
		logger.WarnContext(ctx, "Booking request rejected", "error", err)
		return "", err
	}

	email, err := Compose(req.Normalize(), s.from, s.to)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compose booking email", "error", err)
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	id, err := s.sender.Send(ctx, email)
	if err != nil {
		logger.ErrorContext(ctx, "Error sending booking email", "error", err)
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	if id == "" {
		id = "No ID"
	}
	logger.InfoContext(ctx, "Booking email sent", "email_id", id)
	return id, nil
}

// Compose renders the notification email for a booking as HTML with a
// plain-text alternative. Replies go to the customer, not the sender address.
func Compose(req domain.BookingRequest, from, to string) (mailer.Email, error) {
	name := req.FullName()
	view := bookingView{
		Name:    name,
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Service: req.ServiceOrDefault(),
		Date:    req.DateOrDefault(),
		Message: template.HTML(req.MessageHTML()),
	}

	var body bytes.Buffer
	if err := bookingTmpl.Execute(&body, view); err != nil {
		return mailer.Email{}, err
	}

	var text bytes.Buffer
	err := bookingTextTmpl.Execute(&text, struct {
		bookingView
		Message string
	}{view, req.MessageOrDefault()})
	if err != nil {
		return mailer.Email{}, err
	}

	return mailer.Email{
		From:    from,
		To:      []string{to},
		ReplyTo: view.Email,
		Subject: "New Booking Request from " + name,
		HTML:    body.String(),
		Text:    text.String(),
	}, nil
}
