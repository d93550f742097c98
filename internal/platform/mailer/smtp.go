package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type SMTPMailer struct {
	Host    string
	Port    int
	User    string
	Pass    string
	UseTLS  bool // implicit TLS, e.g. port 465
	Timeout time.Duration
}

func NewSMTPMailer(host string, port int, user, pass string, useTLS bool, timeout time.Duration) *SMTPMailer {
	return &SMTPMailer{
		Host:    strings.TrimSpace(host),
		Port:    port,
		User:    strings.TrimSpace(user),
		Pass:    strings.TrimSpace(pass),
		UseTLS:  useTLS,
		Timeout: timeout,
	}
}

func (s *SMTPMailer) Send(ctx context.Context, email Email) (string, error) {
	if len(email.To) == 0 {
		return "", fmt.Errorf("empty recipient email")
	}
	from := splitAddress(email.From)
	rcpts := make([]string, 0, len(email.To))
	for _, to := range email.To {
		rcpts = append(rcpts, splitAddress(to).Address)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		return "", err
	}
	defer c.Close()

	if !s.UseTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
				return "", fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}
	if s.User != "" {
		if err := c.Auth(smtp.PlainAuth("", s.User, s.Pass, s.Host)); err != nil {
			return "", fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(from.Address); err != nil {
		return "", err
	}
	for _, rcpt := range rcpts {
		if err := c.Rcpt(rcpt); err != nil {
			return "", err
		}
	}

	w, err := c.Data()
	if err != nil {
		return "", err
	}
	if _, err := w.Write(buildMIME(email)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return "", c.Quit()
}

func (s *SMTPMailer) dial(ctx context.Context, addr string) (net.Conn, error) {
	d := &net.Dialer{}
	if s.UseTLS {
		td := &tls.Dialer{NetDialer: d, Config: &tls.Config{ServerName: s.Host}}
		return td.DialContext(ctx, "tcp", addr)
	}
	return d.DialContext(ctx, "tcp", addr)
}

func buildMIME(email Email) []byte {
	var buf bytes.Buffer
	boundary := "mixed-boundary"

	to := make([]string, 0, len(email.To))
	for _, addr := range email.To {
		to = append(to, headerAddress(addr))
	}

	fmt.Fprintf(&buf, "From: %s\r\n", headerAddress(email.From))
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	if email.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", headerAddress(email.ReplyTo))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(email.Subject)))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	if email.Text != "" {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", email.Text)
	}

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", email.HTML)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerValue folds a value onto one line so it cannot start a new header.
func headerValue(s string) string {
	return lineBreaks.Replace(s)
}

func headerAddress(s string) string {
	a := splitAddress(headerValue(s))
	return a.String()
}
