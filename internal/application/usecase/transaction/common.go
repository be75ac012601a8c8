// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

func findOwnedTransaction(ctx context.Context, repo adapter.TransactionRepository, transactionID, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeUnauthorizedTransaction,
			"not authorized to access this transaction",
			domainerror.ErrUnauthorizedTransactionAccess,
		)
	}

	return transaction, nil
}

// findTransactionAccount loads the account a transaction is booked on.
// A missing or foreign account is reported as a transaction error.
func findTransactionAccount(ctx context.Context, repo adapter.AccountRepository, accountID, userID uuid.UUID) (*entity.Account, error) {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionAccountNotFound,
				"account not found",
				domainerror.ErrTransactionAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if account.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionAccountNotFound,
			"account not found",
			domainerror.ErrTransactionAccountNotFound,
		)
	}

	return account, nil
}

// findBookedAccount is like findTransactionAccount but returns nil for accounts deleted since booking.
func findBookedAccount(ctx context.Context, repo adapter.AccountRepository, accountID, userID uuid.UUID) (*entity.Account, error) {
	account, err := findTransactionAccount(ctx, repo, accountID, userID)
	if errors.Is(err, domainerror.ErrTransactionAccountNotFound) {
		return nil, nil
	}
	return account, err
}

func validateType(t entity.TransactionType) error {
	if !t.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func invalidateSummary(ctx context.Context, cache adapter.AnalyticsCache, userID uuid.UUID) {
	if err := cache.Invalidate(ctx, userID, adapter.AnalyticsScopeTransactions); err != nil {
		slog.Warn("Failed to invalidate transaction summary", "user_id", userID, "error", err)
	}
}
