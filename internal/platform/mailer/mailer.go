package mailer

import (
	"fmt"

	"github.com/makeoverbyreet/makeover-contact/pkg/config"
)

// New picks the Sender named by cfg.Provider.
func New(cfg config.EmailConfig) (Sender, error) {
	switch cfg.Provider {
	case "", "resend":
		return NewResendMailer(cfg.ResendKey, cfg.SendTimeout), nil
	case "mailersend":
		return NewMailerSend(cfg.MailerSendKey, cfg.SendTimeout), nil
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS, cfg.SendTimeout), nil
	case "dev":
		return NewDevMailer(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
