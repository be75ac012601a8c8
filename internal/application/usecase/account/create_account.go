package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID        uuid.UUID
	AccountType   string
	BankName      string
	BranchName    string
	AccountNumber string
	Balance       decimal.Decimal
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	accountType := strings.TrimSpace(input.AccountType)
	bankName := strings.TrimSpace(input.BankName)
	if accountType == "" || bankName == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountFields,
			"account type and bank name are required",
			domainerror.ErrMissingAccountFields,
		)
	}

	account := entity.NewAccount(
		input.UserID,
		accountType,
		bankName,
		strings.TrimSpace(input.BranchName),
		strings.TrimSpace(input.AccountNumber),
		input.Balance,
	)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{
		Account: account,
	}, nil
}
