package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// GetExpenseComparisonInput represents the input for the expense comparison.
type GetExpenseComparisonInput struct {
	UserID uuid.UUID
	Filter string
}

// GetExpenseComparisonOutput represents the spending of the most recent periods, oldest first.
type GetExpenseComparisonOutput struct {
	Granularity entity.Granularity
	Periods     []entity.PeriodTotal
}

// GetExpenseComparisonUseCase compares spending across the most recent periods.
type GetExpenseComparisonUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.AnalyticsCache
	now         func() time.Time
}

// NewGetExpenseComparisonUseCase creates a new GetExpenseComparisonUseCase instance.
func NewGetExpenseComparisonUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.AnalyticsCache) *GetExpenseComparisonUseCase {
	return &GetExpenseComparisonUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// Execute computes the comparison for the requested granularity.
func (uc *GetExpenseComparisonUseCase) Execute(ctx context.Context, input GetExpenseComparisonInput) (*GetExpenseComparisonOutput, error) {
	granularity, err := ParseFilter(input.Filter)
	if err != nil {
		return nil, err
	}

	key := adapter.AnalyticsKey(input.UserID, adapter.AnalyticsScopeExpenses, "comparison", string(granularity))
	return cached(ctx, uc.cache, key, func() (*GetExpenseComparisonOutput, error) {
		periods := RecentPeriods(uc.now().UTC(), granularity, ComparisonPeriods)

		expenses, err := uc.expenseRepo.FindByUserAndDateRange(
			ctx,
			input.UserID,
			periods[0].Start,
			periods[len(periods)-1].End,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}

		for _, e := range expenses {
			addToPeriods(periods, e.Date.UTC(), e.Amount)
		}

		return &GetExpenseComparisonOutput{
			Granularity: granularity,
			Periods:     periods,
		}, nil
	})
}
