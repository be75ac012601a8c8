package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a movement of money on one of the user's accounts.
type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AccountID uuid.UUID
	Title     string
	Shop      string
	Method    string // Free text, e.g. "Credit Card" or "Cash"
	Type      TransactionType
	Amount    decimal.Decimal // Always positive, the sign comes from Type
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID, accountID uuid.UUID,
	title, shop, method string,
	transactionType TransactionType,
	amount decimal.Decimal,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		AccountID: accountID,
		Title:     title,
		Shop:      shop,
		Method:    method,
		Type:      transactionType,
		Amount:    amount,
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SignedAmount returns the amount as it affects an account balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionSummary aggregates all transactions of a user.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	Count        int
}
