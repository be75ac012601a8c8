package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
// Writes that move money persist the affected accounts in the same database transaction.
type TransactionRepository interface {
	// CreateWithAccounts stores a new transaction and the updated balances of the given accounts.
	CreateWithAccounts(ctx context.Context, transaction *entity.Transaction, accounts ...*entity.Account) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUserID retrieves all transactions for a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// UpdateWithAccounts updates a transaction and the updated balances of the given accounts.
	UpdateWithAccounts(ctx context.Context, transaction *entity.Transaction, accounts ...*entity.Account) error

	// DeleteWithAccounts removes a transaction and stores the updated balances of the given accounts.
	DeleteWithAccounts(ctx context.Context, id uuid.UUID, accounts ...*entity.Account) error
}
