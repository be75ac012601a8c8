package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a bank account owned by a user.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountType   string
	BankName      string
	BranchName    string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, accountType, bankName, branchName, accountNumber string, balance decimal.Decimal) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountType:   accountType,
		BankName:      bankName,
		BranchName:    branchName,
		AccountNumber: accountNumber,
		Balance:       balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApplyTransaction adds the effect of a transaction to the balance.
func (a *Account) ApplyTransaction(t *Transaction) {
	a.Balance = a.Balance.Add(t.SignedAmount())
	a.UpdatedAt = time.Now().UTC()
}

// RevertTransaction removes the effect of a transaction from the balance.
func (a *Account) RevertTransaction(t *Transaction) {
	a.Balance = a.Balance.Sub(t.SignedAmount())
	a.UpdatedAt = time.Now().UTC()
}
