package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account deletion. Transactions that referenced the account are kept.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if _, err := FindOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Delete(ctx, input.AccountID); err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	return &DeleteAccountOutput{
		Success: true,
	}, nil
}
