package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// GetTransactionSummaryInput represents the input for the transaction summary.
type GetTransactionSummaryInput struct {
	UserID uuid.UUID
}

// GetTransactionSummaryUseCase totals income and expenses over all transactions of a user.
type GetTransactionSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
}

// NewGetTransactionSummaryUseCase creates a new GetTransactionSummaryUseCase instance.
func NewGetTransactionSummaryUseCase(transactionRepo adapter.TransactionRepository, cache adapter.AnalyticsCache) *GetTransactionSummaryUseCase {
	return &GetTransactionSummaryUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute computes the summary.
func (uc *GetTransactionSummaryUseCase) Execute(ctx context.Context, input GetTransactionSummaryInput) (*entity.TransactionSummary, error) {
	key := adapter.AnalyticsKey(input.UserID, adapter.AnalyticsScopeTransactions, "summary", "all")
	return cached(ctx, uc.cache, key, func() (*entity.TransactionSummary, error) {
		transactions, err := uc.transactionRepo.FindByUserID(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}

		summary := &entity.TransactionSummary{
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
			Count:        len(transactions),
		}
		for _, t := range transactions {
			switch t.Type {
			case entity.TransactionTypeIncome:
				summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			case entity.TransactionTypeExpense:
				summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			}
		}
		summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)

		return summary, nil
	})
}
