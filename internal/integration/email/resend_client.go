// Package email provides email rendering and delivery.
package email

import (
	"context"
	"fmt"
	"net/url"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// ResendOption configures a ResendClient.
type ResendOption func(*resend.Client)

// WithResendBaseURL points the client at another API host.
func WithResendBaseURL(baseURL *url.URL) ResendOption {
	return func(c *resend.Client) {
		c.BaseURL = baseURL
	}
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string, opts ...ResendOption) *ResendClient {
	client := resend.NewClient(apiKey)
	for _, opt := range opts {
		opt(client)
	}
	return &ResendClient{
		client:    client,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    formatAddress(c.fromName, c.fromEmail),
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send email via resend: %w", err)
	}

	return &adapter.SendEmailResult{
		MessageID: resp.Id,
	}, nil
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
