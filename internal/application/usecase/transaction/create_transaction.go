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

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Title     string
	Shop      string
	Method    string
	Type      entity.TransactionType
	Amount    decimal.Decimal
	Date      time.Time
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Account     *entity.Account
}

// CreateTransactionUseCase handles transaction creation and the matching balance change.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	cache           adapter.AnalyticsCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	cache adapter.AnalyticsCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cache:           cache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.AccountID == uuid.Nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"title and account are required",
			nil,
		)
	}

	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	account, err := findTransactionAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.AccountID,
		title,
		strings.TrimSpace(input.Shop),
		strings.TrimSpace(input.Method),
		input.Type,
		input.Amount,
		input.Date,
	)
	account.ApplyTransaction(transaction)

	if err := uc.transactionRepo.CreateWithAccounts(ctx, transaction, account); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateSummary(ctx, uc.cache, input.UserID)

	return &CreateTransactionOutput{
		Transaction: transaction,
		Account:     account,
	}, nil
}
