package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// GetAccountInput represents the input for getting an account.
type GetAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// GetAccountOutput represents the output of getting an account.
type GetAccountOutput struct {
	Account *entity.Account
}

// GetAccountUseCase handles getting an account by ID.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account retrieval.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	account, err := FindOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetAccountOutput{
		Account: account,
	}, nil
}
