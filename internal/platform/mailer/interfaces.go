package mailer

import "context"

// Email is a fully composed message ready for a provider.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a composed Email and returns the provider's message id.
// Implementations make a single attempt; callers decide what a failure means.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}
