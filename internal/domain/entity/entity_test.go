package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestAccount_ApplyAndRevertTransaction(t *testing.T) {
	tests := []struct {
		name        string
		txType      TransactionType
		amount      int64
		wantApplied int64
	}{
		{name: "income adds", txType: TransactionTypeIncome, amount: 100, wantApplied: 1100},
		{name: "expense subtracts", txType: TransactionTypeExpense, amount: 40, wantApplied: 960},
		{name: "expense can overdraw", txType: TransactionTypeExpense, amount: 1500, wantApplied: -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewAccount(uuid.New(), "checking", "First Bank", "Main", "123", decimal.NewFromInt(1000))
			tx := NewTransaction(account.UserID, account.ID, "t", "", "", tt.txType, decimal.NewFromInt(tt.amount), time.Now())

			account.ApplyTransaction(tx)
			if !account.Balance.Equal(decimal.NewFromInt(tt.wantApplied)) {
				t.Errorf("after apply balance = %s, want %d", account.Balance, tt.wantApplied)
			}

			account.RevertTransaction(tx)
			if !account.Balance.Equal(decimal.NewFromInt(1000)) {
				t.Errorf("after revert balance = %s, want 1000", account.Balance)
			}
		})
	}
}

func TestGoal_Progress(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    float64
	}{
		{name: "partial", target: "1000", current: "100", want: 10},
		{name: "rounded", target: "3", current: "1", want: 33.33},
		{name: "complete", target: "500", current: "500", want: 100},
		{name: "over target is clamped", target: "500", current: "900", want: 100},
		{name: "negative is clamped", target: "500", current: "-10", want: 0},
		{name: "zero target", target: "0", current: "50", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := NewGoal(uuid.New(), "Trip", decimal.RequireFromString(tt.target), decimal.RequireFromString(tt.current), time.Now())
			if got := goal.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransactionType_IsValid(t *testing.T) {
	for _, tt := range []struct {
		value TransactionType
		want  bool
	}{
		{value: TransactionTypeIncome, want: true},
		{value: TransactionTypeExpense, want: true},
		{value: "bonus", want: false},
		{value: "", want: false},
	} {
		if got := tt.value.IsValid(); got != tt.want {
			t.Errorf("TransactionType(%q).IsValid() = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestNewExpense_DefaultsDateToNow(t *testing.T) {
	before := time.Now().UTC()
	e := NewExpense(uuid.New(), "Lunch", decimal.NewFromInt(12), "Food", time.Time{})

	if e.Date.Before(before) || e.Date.Location() != time.UTC {
		t.Errorf("Date = %s, want now in UTC", e.Date)
	}
}
