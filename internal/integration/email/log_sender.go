package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// LogSender writes emails to the log instead of delivering them.
// It keeps the sent messages so tests can inspect them.
type LogSender struct {
	mu   sync.Mutex
	sent []adapter.SendEmailInput
}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the email.
func (s *LogSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	s.sent = append(s.sent, input)
	id := len(s.sent)
	s.mu.Unlock()

	slog.Info("Email not delivered, no provider configured",
		"to", input.To,
		"subject", input.Subject,
		"text", input.Text,
	)

	return &adapter.SendEmailResult{
		MessageID: fmt.Sprintf("log-%d", id),
	}, nil
}

// Sent returns a copy of the emails logged so far.
func (s *LogSender) Sent() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]adapter.SendEmailInput, len(s.sent))
	copy(out, s.sent)
	return out
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*SMTPClient)(nil)
	_ adapter.EmailSender = (*LogSender)(nil)
)
