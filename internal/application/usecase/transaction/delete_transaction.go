package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Success bool
}

// DeleteTransactionUseCase handles transaction deletion and reverts its balance effect.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	cache           adapter.AnalyticsCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	cache adapter.AnalyticsCache,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cache:           cache,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	account, err := findBookedAccount(ctx, uc.accountRepo, transaction.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	var accounts []*entity.Account
	if account != nil {
		account.RevertTransaction(transaction)
		accounts = append(accounts, account)
	}

	if err := uc.transactionRepo.DeleteWithAccounts(ctx, transaction.ID, accounts...); err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	invalidateSummary(ctx, uc.cache, input.UserID)

	return &DeleteTransactionOutput{
		Success: true,
	}, nil
}
