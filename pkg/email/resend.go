package email

import (
	"context"
	"errors"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend HTTP API
type ResendSender struct {
	client *resend.Client
}

// ResendOption customizes the underlying Resend client
type ResendOption func(*resend.Client)

// WithBaseURL points the client at a different API endpoint (tests, proxies)
func WithBaseURL(u *url.URL) ResendOption {
	return func(c *resend.Client) {
		c.BaseURL = u
	}
}

// NewResendSender creates a Resend-backed sender for the given API key
func NewResendSender(apiKey string, opts ...ResendOption) *ResendSender {
	client := resend.NewClient(apiKey)
	for _, opt := range opts {
		opt(client)
	}
	return &ResendSender{client: client}
}

// Send submits the message and returns the Resend email id
func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	if msg == nil {
		return "", errors.New("resend: nil message")
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
