package email

import (
	"context"
	"fmt"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/integration/email/templates"
)

// Service renders templates and hands the result to an EmailSender.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
	}
}

// NewSender picks the delivery provider: Resend when an API key is set, then SMTP, then the log.
func NewSender(resendAPIKey string, smtp SMTPConfig) adapter.EmailSender {
	switch {
	case resendAPIKey != "":
		return NewResendClient(resendAPIKey, smtp.FromName, smtp.FromEmail)
	case smtp.Host != "":
		return NewSMTPClient(smtp)
	default:
		return NewLogSender()
	}
}

// SendPasswordResetEmail sends the password reset link to a user.
func (s *Service) SendPasswordResetEmail(ctx context.Context, input adapter.PasswordResetEmailInput) error {
	return s.send(ctx, input.UserEmail, input.UserName, "Reset your password", templates.TemplatePasswordReset, templates.PasswordResetData{
		UserName:  input.UserName,
		ResetURL:  input.ResetURL,
		ExpiresIn: input.ExpiresIn,
	})
}

// SendBillReminderEmail reminds a user of an upcoming bill.
func (s *Service) SendBillReminderEmail(ctx context.Context, input adapter.BillReminderEmailInput) error {
	subject := fmt.Sprintf("Upcoming bill: %s", input.Vendor)
	return s.send(ctx, input.UserEmail, input.UserName, subject, templates.TemplateBillReminder, templates.BillReminderData{
		UserName: input.UserName,
		Vendor:   input.Vendor,
		Plan:     input.Plan,
		Amount:   input.Amount,
		DueDate:  input.DueDate.Format("January 2, 2006"),
	})
}

func (s *Service) send(ctx context.Context, to, name, subject, templateName string, data any) error {
	html, text, err := s.renderer.Render(templateName, data)
	if err != nil {
		return err
	}

	_, err = s.sender.Send(ctx, adapter.SendEmailInput{
		To:      to,
		Name:    name,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
