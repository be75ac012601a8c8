package transaction

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

// UpdateTransactionInput represents the input for transaction update. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	AccountID     *uuid.UUID
	Title         *string
	Shop          *string
	Method        *string
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	Date          *time.Time
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update and rebooking of its balance effect.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	cache           adapter.AnalyticsCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	cache adapter.AnalyticsCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cache:           cache,
	}
}

// Execute performs the transaction update. The old effect is reverted before the new one is applied.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	oldAccount, err := findBookedAccount(ctx, uc.accountRepo, transaction.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	var accounts []*entity.Account
	if oldAccount != nil {
		oldAccount.RevertTransaction(transaction)
		accounts = append(accounts, oldAccount)
	}

	if err := applyChanges(transaction, input); err != nil {
		return nil, err
	}

	newAccount := oldAccount
	if oldAccount == nil || transaction.AccountID != oldAccount.ID {
		newAccount, err = findBookedAccount(ctx, uc.accountRepo, transaction.AccountID, input.UserID)
		if err != nil {
			return nil, err
		}
		if newAccount == nil && input.AccountID != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionAccountNotFound,
				"account not found",
				domainerror.ErrTransactionAccountNotFound,
			)
		}
		if newAccount != nil {
			accounts = append(accounts, newAccount)
		}
	}
	if newAccount != nil {
		newAccount.ApplyTransaction(transaction)
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.UpdateWithAccounts(ctx, transaction, accounts...); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateSummary(ctx, uc.cache, input.UserID)

	return &UpdateTransactionOutput{
		Transaction: transaction,
	}, nil
}

func applyChanges(transaction *entity.Transaction, input UpdateTransactionInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeMissingTransactionFields,
				"title cannot be empty",
				nil,
			)
		}
		transaction.Title = title
	}
	if input.Shop != nil {
		transaction.Shop = strings.TrimSpace(*input.Shop)
	}
	if input.Method != nil {
		transaction.Method = strings.TrimSpace(*input.Method)
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return err
		}
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return err
		}
		transaction.Amount = *input.Amount
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionDate,
				"date cannot be empty",
				domainerror.ErrInvalidTransactionDate,
			)
		}
		transaction.Date = input.Date.UTC()
	}
	if input.AccountID != nil {
		transaction.AccountID = *input.AccountID
	}
	return nil
}
