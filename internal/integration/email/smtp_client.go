package email

import (
	"context"
	"fmt"
	"net/smtp"

	jwemail "github.com/jordan-wright/email"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// SMTPConfig holds the settings of an SMTP relay.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPClient implements the adapter.EmailSender interface over plain SMTP.
type SMTPClient struct {
	cfg  SMTPConfig
	send func(e *jwemail.Email, addr string, auth smtp.Auth) error
}

// NewSMTPClient creates a new SMTP sender.
func NewSMTPClient(cfg SMTPConfig) *SMTPClient {
	return &SMTPClient{
		cfg: cfg,
		send: func(e *jwemail.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Send sends an email through the configured relay. The context is only checked before dialing.
func (c *SMTPClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := jwemail.NewEmail()
	e.From = formatAddress(c.cfg.FromName, c.cfg.FromEmail)
	e.To = []string{input.To}
	e.Subject = input.Subject
	e.Text = []byte(input.Text)
	if input.HTML != "" {
		e.HTML = []byte(input.HTML)
	}

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	if err := c.send(e, addr, auth); err != nil {
		return nil, fmt.Errorf("failed to send email via smtp: %w", err)
	}

	return &adapter.SendEmailResult{
		MessageID: fmt.Sprintf("smtp-%s", input.To),
	}, nil
}
