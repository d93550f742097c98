// Package form drives the booking form: validation, submission to the
// contact API and user feedback through notifications.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/makeoverbyreet/makeover-contact/internal/client/notify"
	"github.com/makeoverbyreet/makeover-contact/internal/utils"
	"github.com/makeoverbyreet/makeover-contact/pkg/logger"
)

// Endpoint is the production contact API.
const Endpoint = "https://makeoverbyreet.onrender.com/contact"

const (
	IdleLabel = "Send Message"
	BusyLabel = "Sending..."
)

const (
	msgValidation  = "Please fill in all required fields."
	msgSending     = "Please wait while we process your request..."
	msgSendFailed  = "Failed to send message. Please try again."
	msgSent        = "Your message has been sent successfully. We will contact you soon!"
	msgUnreachable = "Unable to connect to the server. Please try again later."
)

const (
	sendingDuration = 2000 * time.Millisecond
	resultDuration  = 6000 * time.Millisecond
)

var (
	ErrValidation       = errors.New("required booking fields missing")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNetwork          = errors.New("contact server unreachable")
)

// ServerError is a non-2xx answer from the contact API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("contact server returned %d: %s", e.StatusCode, e.Message)
}

// Fields mirrors the inputs of the booking form.
type Fields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Service   string
	Date      string
	Message   string
}

// Button is the state of the submit control.
type Button struct {
	Disabled bool
	Label    string
}

// Notifier shows a notification. *notify.Center satisfies it.
type Notifier interface {
	Show(n notify.Notification) notify.Handle
}

type payload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type Controller struct {
	notifier Notifier
	client   *http.Client
	endpoint string
	onButton func(Button)

	mu         sync.Mutex
	fields     Fields
	button     Button
	submitting bool
}

type Option func(*Controller)

func WithHTTPClient(c *http.Client) Option {
	return func(ctl *Controller) { ctl.client = c }
}

// WithEndpoint points the controller at another contact API, e.g. a local
// server during development.
func WithEndpoint(url string) Option {
	return func(ctl *Controller) { ctl.endpoint = url }
}

// OnButtonChange registers fn to observe the submit control.
func OnButtonChange(fn func(Button)) Option {
	return func(ctl *Controller) { ctl.onButton = fn }
}

func NewController(n Notifier, opts ...Option) *Controller {
	c := &Controller{
		notifier: n,
		client:   http.DefaultClient,
		endpoint: Endpoint,
		button:   Button{Label: IdleLabel},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) SetFields(f Fields) {
	c.mu.Lock()
	c.fields = f
	c.mu.Unlock()
}

func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

func (c *Controller) Button() Button {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.button
}

// Submit sends the current fields to the contact API and reports the outcome
// through the notifier. A call made while another is pending returns
// ErrSubmitInProgress without side effects. The submit control is restored
// on every path.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	c.submitting = true
	f := c.fields
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
		c.setButton(Button{Disabled: false, Label: IdleLabel})
	}()

	if utils.AnyBlank(f.FirstName, f.LastName, f.Email, f.Phone) {
		c.notifier.Show(notify.Notification{
			Type:     notify.Error,
			Title:    "Validation Error",
			Message:  msgValidation,
			Duration: resultDuration,
		})
		return ErrValidation
	}

	body, err := json.Marshal(payload{
		FirstName: utils.NormalizeString(f.FirstName),
		LastName:  utils.NormalizeString(f.LastName),
		Email:     utils.NormalizeString(f.Email),
		Phone:     utils.NormalizeString(f.Phone),
		Service:   f.Service,
		Date:      f.Date,
		Message:   utils.NormalizeString(f.Message),
	})
	if err != nil {
		return err
	}

	c.setButton(Button{Disabled: true, Label: BusyLabel})
	c.notifier.Show(notify.Notification{
		Type:     notify.Info,
		Title:    "Sending",
		Message:  msgSending,
		Duration: sendingDuration,
	})

	res, status, err := c.post(ctx, body)
	if err != nil {
		logger.ErrorContext(ctx, "Contact submit error", "error", err)
		c.notifier.Show(notify.Notification{
			Type:     notify.Error,
			Title:    "Network Error",
			Message:  msgUnreachable,
			Duration: resultDuration,
		})
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if status < 200 || status >= 300 {
		msg := res.Error
		if msg == "" {
			msg = msgSendFailed
		}
		c.notifier.Show(notify.Notification{
			Type:     notify.Error,
			Title:    "Error",
			Message:  msg,
			Duration: resultDuration,
		})
		return &ServerError{StatusCode: status, Message: msg}
	}

	c.notifier.Show(notify.Notification{
		Type:     notify.Success,
		Title:    "Success!",
		Message:  msgSent,
		Duration: resultDuration,
	})
	c.SetFields(Fields{})
	return nil
}

// post returns the decoded body, or an empty result when it is not JSON.
// err is set only when no response arrived.
func (c *Controller) post(ctx context.Context, body []byte) (result, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return result{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return result{}, 0, err
	}
	defer resp.Body.Close()

	var res result
	if raw, err := io.ReadAll(resp.Body); err == nil {
		if err := json.Unmarshal(raw, &res); err != nil {
			res = result{}
		}
	}
	return res, resp.StatusCode, nil
}

func (c *Controller) setButton(b Button) {
	c.mu.Lock()
	c.button = b
	c.mu.Unlock()
	if c.onButton != nil {
		c.onButton(b)
	}
}
