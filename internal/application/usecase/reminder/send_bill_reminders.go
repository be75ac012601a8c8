// Package reminder contains scheduled notification use cases.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// SendBillRemindersOutput reports the outcome of one reminder run.
type SendBillRemindersOutput struct {
	Due    int
	Sent   int
	Failed int
}

// SendBillRemindersUseCase emails users about bills that fall due soon.
type SendBillRemindersUseCase struct {
	billRepo     adapter.BillRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	leadDays     int
	now          func() time.Time
}

// NewSendBillRemindersUseCase creates a new SendBillRemindersUseCase instance.
func NewSendBillRemindersUseCase(
	billRepo adapter.BillRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	leadDays int,
) *SendBillRemindersUseCase {
	return &SendBillRemindersUseCase{
		billRepo:     billRepo,
		userRepo:     userRepo,
		emailService: emailService,
		leadDays:     leadDays,
		now:          time.Now,
	}
}

// Execute sends one reminder per bill due between today and today plus the lead days.
// A failure for one bill is logged and does not stop the run.
func (uc *SendBillRemindersUseCase) Execute(ctx context.Context) (*SendBillRemindersOutput, error) {
	now := uc.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, uc.leadDays+1).Add(-time.Nanosecond)

	bills, err := uc.billRepo.FindDueBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to find due bills: %w", err)
	}

	output := &SendBillRemindersOutput{Due: len(bills)}
	users := make(map[uuid.UUID]*entity.User)

	for _, bill := range bills {
		user, ok := users[bill.UserID]
		if !ok {
			user, err = uc.userRepo.FindByID(ctx, bill.UserID)
			if err != nil {
				slog.Warn("Skipping reminder for bill without user", "bill_id", bill.ID, "error", err)
				output.Failed++
				continue
			}
			users[bill.UserID] = user
		}

		err := uc.emailService.SendBillReminderEmail(ctx, adapter.BillReminderEmailInput{
			UserEmail: user.Email,
			UserName:  user.Name,
			Vendor:    bill.Vendor,
			Plan:      bill.Plan,
			Amount:    bill.Amount.StringFixed(2),
			DueDate:   bill.DueDate,
		})
		if err != nil {
			slog.Error("Failed to send bill reminder", "bill_id", bill.ID, "user_id", user.ID, "error", err)
			output.Failed++
			continue
		}
		output.Sent++
	}

	slog.Info("Bill reminders processed", "due", output.Due, "sent", output.Sent, "failed", output.Failed)
	return output, nil
}
