package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// GetExpenseBreakdownInput represents the input for the category breakdown.
type GetExpenseBreakdownInput struct {
	UserID uuid.UUID
	Filter string
}

// GetExpenseBreakdownOutput represents the spending by category of the current period.
type GetExpenseBreakdownOutput struct {
	Granularity entity.Granularity
	Start       time.Time
	End         time.Time
	Total       decimal.Decimal
	Categories  []entity.CategoryTotal
}

// GetExpenseBreakdownUseCase groups the spending of the current period by category.
type GetExpenseBreakdownUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.AnalyticsCache
	now         func() time.Time
}

// NewGetExpenseBreakdownUseCase creates a new GetExpenseBreakdownUseCase instance.
func NewGetExpenseBreakdownUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.AnalyticsCache) *GetExpenseBreakdownUseCase {
	return &GetExpenseBreakdownUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// Execute computes the breakdown, largest category first.
func (uc *GetExpenseBreakdownUseCase) Execute(ctx context.Context, input GetExpenseBreakdownInput) (*GetExpenseBreakdownOutput, error) {
	granularity, err := ParseFilter(input.Filter)
	if err != nil {
		return nil, err
	}

	key := adapter.AnalyticsKey(input.UserID, adapter.AnalyticsScopeExpenses, "breakdown", string(granularity))
	return cached(ctx, uc.cache, key, func() (*GetExpenseBreakdownOutput, error) {
		start, end := PeriodBounds(uc.now().UTC(), granularity)

		expenses, err := uc.expenseRepo.FindByUserAndDateRange(ctx, input.UserID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}

		total, categories := breakdownByCategory(expenses)

		return &GetExpenseBreakdownOutput{
			Granularity: granularity,
			Start:       start,
			End:         end,
			Total:       total,
			Categories:  categories,
		}, nil
	})
}

func breakdownByCategory(expenses []*entity.Expense) (decimal.Decimal, []entity.CategoryTotal) {
	total := decimal.Zero
	index := make(map[string]int)
	categories := make([]entity.CategoryTotal, 0)

	for _, e := range expenses {
		name := strings.TrimSpace(e.Category)
		if name == "" {
			name = entity.UncategorizedLabel
		}

		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, entity.CategoryTotal{Category: name, Total: decimal.Zero})
		}
		categories[i].Total = categories[i].Total.Add(e.Amount)
		categories[i].Count++
		categories[i].Items = append(categories[i].Items, e)
		total = total.Add(e.Amount)
	}

	for i := range categories {
		if total.IsPositive() {
			categories[i].Percentage = categories[i].Total.Mul(decimal.NewFromInt(100)).Div(total).Round(2)
		} else {
			categories[i].Percentage = decimal.Zero
		}
	}

	sort.SliceStable(categories, func(a, b int) bool {
		if !categories[a].Total.Equal(categories[b].Total) {
			return categories[a].Total.GreaterThan(categories[b].Total)
		}
		return categories[a].Category < categories[b].Category
	})

	return total, categories
}
