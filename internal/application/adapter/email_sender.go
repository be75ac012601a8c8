package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	MessageID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend or SMTP).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService renders and sends the transactional emails of the application.
type EmailService interface {
	// SendPasswordResetEmail sends the password reset link to a user.
	SendPasswordResetEmail(ctx context.Context, input PasswordResetEmailInput) error

	// SendBillReminderEmail reminds a user of an upcoming bill.
	SendBillReminderEmail(ctx context.Context, input BillReminderEmailInput) error
}

// PasswordResetEmailInput represents the input for a password reset email.
type PasswordResetEmailInput struct {
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// BillReminderEmailInput represents the input for a bill reminder email.
type BillReminderEmailInput struct {
	UserEmail string
	UserName  string
	Vendor    string
	Plan      string
	Amount    string
	DueDate   time.Time
}
