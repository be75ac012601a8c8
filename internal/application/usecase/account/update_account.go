package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// UpdateAccountInput represents the input for account update. Nil fields are left unchanged.
type UpdateAccountInput struct {
	AccountID     uuid.UUID
	UserID        uuid.UUID
	AccountType   *string
	BankName      *string
	BranchName    *string
	AccountNumber *string
	Balance       *decimal.Decimal
}

// UpdateAccountOutput represents the output of account update.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := FindOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.AccountType != nil {
		account.AccountType = strings.TrimSpace(*input.AccountType)
	}
	if input.BankName != nil {
		account.BankName = strings.TrimSpace(*input.BankName)
	}
	if account.AccountType == "" || account.BankName == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountFields,
			"account type and bank name are required",
			domainerror.ErrMissingAccountFields,
		)
	}
	if input.BranchName != nil {
		account.BranchName = strings.TrimSpace(*input.BranchName)
	}
	if input.AccountNumber != nil {
		account.AccountNumber = strings.TrimSpace(*input.AccountNumber)
	}
	if input.Balance != nil {
		account.Balance = *input.Balance
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountOutput{
		Account: account,
	}, nil
}
