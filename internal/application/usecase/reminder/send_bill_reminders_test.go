package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

type fakeBillRepo struct {
	adapter.BillRepository
	bills []*entity.Bill
}

func (f *fakeBillRepo) FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range f.bills {
		if !b.DueDate.Before(from) && !b.DueDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	adapter.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

type recordingEmails struct {
	adapter.EmailService
	sent []adapter.BillReminderEmailInput
	err  error
}

func (r *recordingEmails) SendBillReminderEmail(ctx context.Context, input adapter.BillReminderEmailInput) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, input)
	return nil
}

func bill(userID uuid.UUID, vendor string, due time.Time) *entity.Bill {
	return entity.NewBill(userID, vendor, "basic", due, nil, decimal.NewFromInt(10))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSendBillReminders_Window(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	now := time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"yesterday", day(2026, time.October, 13), false},
		{"today", day(2026, time.October, 14), true},
		{"last day of the lead window", day(2026, time.October, 17), true},
		{"after the lead window", day(2026, time.October, 18), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := &recordingEmails{}
			uc := NewSendBillRemindersUseCase(
				&fakeBillRepo{bills: []*entity.Bill{bill(user.ID, "Netflix", tt.due)}},
				&fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}},
				emails,
				3,
			)
			uc.now = func() time.Time { return now }

			output, err := uc.Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			wantCount := 0
			if tt.want {
				wantCount = 1
			}
			if output.Due != wantCount || output.Sent != wantCount || output.Failed != 0 {
				t.Errorf("Execute() = %+v, want %d due and sent", output, wantCount)
			}
			if len(emails.sent) != wantCount {
				t.Fatalf("sent %d emails, want %d", len(emails.sent), wantCount)
			}
			if tt.want && (emails.sent[0].UserEmail != user.Email || emails.sent[0].Amount != "10.00") {
				t.Errorf("email = %+v", emails.sent[0])
			}
		})
	}
}

func TestSendBillReminders_FailuresDoNotStopTheRun(t *testing.T) {
	now := time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)
	known := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	missing := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		emails := &recordingEmails{}
		uc := NewSendBillRemindersUseCase(
			&fakeBillRepo{bills: []*entity.Bill{
				bill(missing, "Orphan", day(2026, time.October, 14)),
				bill(known.ID, "Netflix", day(2026, time.October, 15)),
			}},
			&fakeUserRepo{users: map[uuid.UUID]*entity.User{known.ID: known}},
			emails,
			3,
		)
		uc.now = func() time.Time { return now }

		output, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Due != 2 || output.Sent != 1 || output.Failed != 1 {
			t.Errorf("Execute() = %+v, want 2 due, 1 sent, 1 failed", output)
		}
		if len(emails.sent) != 1 || emails.sent[0].Vendor != "Netflix" {
			t.Errorf("sent = %+v, want only Netflix", emails.sent)
		}
	})

	t.Run("delivery failure", func(t *testing.T) {
		emails := &recordingEmails{err: errors.New("provider unavailable")}
		uc := NewSendBillRemindersUseCase(
			&fakeBillRepo{bills: []*entity.Bill{
				bill(known.ID, "Netflix", day(2026, time.October, 14)),
				bill(known.ID, "Spotify", day(2026, time.October, 16)),
			}},
			&fakeUserRepo{users: map[uuid.UUID]*entity.User{known.ID: known}},
			emails,
			3,
		)
		uc.now = func() time.Time { return now }

		output, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Due != 2 || output.Sent != 0 || output.Failed != 2 {
			t.Errorf("Execute() = %+v, want 2 due and 2 failed", output)
		}
	})
}
