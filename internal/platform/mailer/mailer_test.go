package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/makeoverbyreet/makeover-contact/pkg/config"
)

func testEmail() Email {
	return Email{
		From:    "MakeOver <onboarding@resend.dev>",
		To:      []string{"owner@shop.test"},
		ReplyTo: "jane@x.com",
		Subject: "New Booking Request from Jane Doe",
		HTML:    "<p>hi</p>",
	}
}

func TestNewPicksProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"", "*mailer.ResendMailer"},
		{"resend", "*mailer.ResendMailer"},
		{"mailersend", "*mailer.MailerSend"},
		{"smtp", "*mailer.SMTPMailer"},
		{"dev", "*mailer.DevMailer"},
	}
	for _, tt := range tests {
		s, err := New(config.EmailConfig{Provider: tt.provider})
		if err != nil {
			t.Fatalf("New(%q): %v", tt.provider, err)
		}
		switch s.(type) {
		case *ResendMailer:
			if tt.want != "*mailer.ResendMailer" {
				t.Errorf("New(%q) returned ResendMailer", tt.provider)
			}
		case *MailerSend:
			if tt.want != "*mailer.MailerSend" {
				t.Errorf("New(%q) returned MailerSend", tt.provider)
			}
		case *SMTPMailer:
			if tt.want != "*mailer.SMTPMailer" {
				t.Errorf("New(%q) returned SMTPMailer", tt.provider)
			}
		case *DevMailer:
			if tt.want != "*mailer.DevMailer" {
				t.Errorf("New(%q) returned DevMailer", tt.provider)
			}
		}
	}

	if _, err := New(config.EmailConfig{Provider: "pigeon"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestUnconfiguredProvidersFail(t *testing.T) {
	ctx := context.Background()
	if _, err := NewResendMailer("", time.Second).Send(ctx, testEmail()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("resend err = %v", err)
	}
	if _, err := NewMailerSend("", time.Second).Send(ctx, testEmail()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("mailersend err = %v", err)
	}
}

func newResendAgainst(t *testing.T, srv *httptest.Server) *ResendMailer {
	t.Helper()
	m := NewResendMailer("re_test", 2*time.Second)
	u, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	m.client.BaseURL = u
	return m
}

func TestResendSendsReplyTo(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/emails") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	id, err := newResendAgainst(t, srv).Send(context.Background(), testEmail())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "email-123" {
		t.Errorf("id = %q", id)
	}
	if auth != "Bearer re_test" {
		t.Errorf("authorization = %q", auth)
	}
	if got["reply_to"] != "jane@x.com" {
		t.Errorf("reply_to = %v", got["reply_to"])
	}
	if got["subject"] != "New Booking Request from Jane Doe" {
		t.Errorf("subject = %v", got["subject"])
	}
}

func TestResendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad from"}`))
	}))
	defer srv.Close()

	if _, err := newResendAgainst(t, srv).Send(context.Background(), testEmail()); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestBuildMIMEHeaders(t *testing.T) {
	msg := string(buildMIME(testEmail()))
	for _, want := range []string{
		"From: \"MakeOver\" <onboarding@resend.dev>\r\n",
		"To: <owner@shop.test>\r\n",
		"Reply-To: <jane@x.com>\r\n",
		"Subject: New Booking Request from Jane Doe\r\n",
		"Content-Type: text/html; charset=utf-8",
		"<p>hi</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("MIME message missing %q", want)
		}
	}
	if strings.Contains(msg, "text/plain") {
		t.Error("text part written without text body")
	}
}

func TestBuildMIMEKeepsHeadersOnOneLine(t *testing.T) {
	email := testEmail()
	email.Subject = "New Booking Request from Jane\r\nBcc: victim@evil.example Doe"
	email.ReplyTo = "jane@x.com\r\nX-Injected: 1"
	email.To = []string{"owner@shop.test\nCc: other@evil.example"}

	msg := string(buildMIME(email))
	headers, _, ok := strings.Cut(msg, "\r\n\r\n")
	if !ok {
		t.Fatal("no header terminator")
	}
	for _, line := range strings.Split(headers, "\r\n") {
		for _, bad := range []string{"Bcc:", "Cc:", "X-Injected:"} {
			if strings.HasPrefix(line, bad) {
				t.Errorf("header line %q was injected", line)
			}
		}
	}
	if strings.ContainsAny(strings.ReplaceAll(headers, "\r\n", ""), "\r\n") {
		t.Error("bare CR or LF left in headers")
	}
}

func TestBuildMIMEEncodesNonASCIISubject(t *testing.T) {
	email := testEmail()
	email.Subject = "New Booking Request from Zoë Doe"

	msg := string(buildMIME(email))
	if !strings.Contains(msg, "Subject: =?utf-8?q?") {
		t.Errorf("subject not encoded:\n%s", msg)
	}
}

func TestSplitAddress(t *testing.T) {
	a := splitAddress("MakeOver <onboarding@resend.dev>")
	if a.Name != "MakeOver" || a.Address != "onboarding@resend.dev" {
		t.Errorf("split = %+v", a)
	}
	b := splitAddress("your@email.com")
	if b.Name != "" || b.Address != "your@email.com" {
		t.Errorf("split = %+v", b)
	}
}

func TestDevMailerReturnsID(t *testing.T) {
	id, err := NewDevMailer().Send(context.Background(), testEmail())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(id, "dev-") {
		t.Errorf("id = %q", id)
	}
}
