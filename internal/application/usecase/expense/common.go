// Package expense contains expense-related use cases.
package expense

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

func findOwnedExpense(ctx context.Context, repo adapter.ExpenseRepository, expenseID, userID uuid.UUID) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if expense.UserID != userID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeUnauthorizedExpenseAccess,
			"not authorized to access this expense",
			domainerror.ErrUnauthorizedExpenseAccess,
		)
	}

	return expense, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	return nil
}

// invalidateAnalytics drops cached expense analytics. A cache failure never fails the mutation.
func invalidateAnalytics(ctx context.Context, cache adapter.AnalyticsCache, userID uuid.UUID) {
	if err := cache.Invalidate(ctx, userID, adapter.AnalyticsScopeExpenses); err != nil {
		slog.Warn("Failed to invalidate expense analytics", "user_id", userID, "error", err)
	}
}
