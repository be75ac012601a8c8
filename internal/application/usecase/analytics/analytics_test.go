package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

type fakeExpenseRepo struct {
	adapter.ExpenseRepository
	expenses []*entity.Expense
	calls    int
}

func (f *fakeExpenseRepo) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	f.calls++
	var out []*entity.Expense
	for _, e := range f.expenses {
		if e.UserID == userID && !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
}

func (f *fakeTransactionRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return f.transactions, nil
}

// memoryCache keeps values in a map without encoding them.
type memoryCache struct {
	values map[string]any
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]any{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case **GetExpenseBreakdownOutput:
		*d = v.(*GetExpenseBreakdownOutput)
	case **GetExpenseComparisonOutput:
		*d = v.(*GetExpenseComparisonOutput)
	case **entity.TransactionSummary:
		*d = v.(*entity.TransactionSummary)
	}
	return true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value any) error {
	c.values[key] = value
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, userID uuid.UUID, scope adapter.AnalyticsScope) error {
	c.values = map[string]any{}
	return nil
}

func expense(userID uuid.UUID, category string, amount int64, at time.Time) *entity.Expense {
	return entity.NewExpense(userID, category+" expense", decimal.NewFromInt(amount), category, at)
}

func TestGetExpenseBreakdown(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, "Food", 30, now.AddDate(0, 0, -1)),
		expense(userID, "Transport", 10, now),
		expense(userID, "Food", 10, now),
		expense(userID, "", 20, now),
		expense(userID, "Food", 500, now.AddDate(0, -1, 0)),
		expense(uuid.New(), "Food", 999, now),
	}}

	uc := NewGetExpenseBreakdownUseCase(repo, newMemoryCache())
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(context.Background(), GetExpenseBreakdownInput{UserID: userID, Filter: "monthly"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !out.Total.Equal(decimal.NewFromInt(70)) {
		t.Errorf("Total = %s, want 70", out.Total)
	}
	if !out.Start.Equal(date(2025, time.March, 1)) || !out.End.Equal(date(2025, time.April, 1)) {
		t.Errorf("range = [%s, %s)", out.Start, out.End)
	}

	want := []struct {
		category   string
		total      int64
		count      int
		percentage string
	}{
		{category: "Food", total: 40, count: 2, percentage: "57.14"},
		{category: entity.UncategorizedLabel, total: 20, count: 1, percentage: "28.57"},
		{category: "Transport", total: 10, count: 1, percentage: "14.29"},
	}
	if len(out.Categories) != len(want) {
		t.Fatalf("categories = %+v, want %d", out.Categories, len(want))
	}
	for i, w := range want {
		got := out.Categories[i]
		if got.Category != w.category || !got.Total.Equal(decimal.NewFromInt(w.total)) || got.Count != w.count {
			t.Errorf("category %d = %s %s x%d, want %s %d x%d", i, got.Category, got.Total, got.Count, w.category, w.total, w.count)
		}
		if got.Percentage.String() != w.percentage {
			t.Errorf("category %d percentage = %s, want %s", i, got.Percentage, w.percentage)
		}
		if len(got.Items) != w.count {
			t.Errorf("category %d items = %d, want %d", i, len(got.Items), w.count)
		}
	}
}

func TestGetExpenseBreakdown_EmptyPeriod(t *testing.T) {
	uc := NewGetExpenseBreakdownUseCase(&fakeExpenseRepo{}, newMemoryCache())

	out, err := uc.Execute(context.Background(), GetExpenseBreakdownInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Total.IsZero() || len(out.Categories) != 0 {
		t.Errorf("out = %+v, want empty", out)
	}
	if out.Granularity != entity.GranularityMonthly {
		t.Errorf("Granularity = %q, want monthly", out.Granularity)
	}
}

func TestGetExpenseComparison_UsesCache(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeExpenseRepo{expenses: []*entity.Expense{
		expense(userID, "Food", 30, now),
		expense(userID, "Food", 20, now.AddDate(0, -2, 0)),
	}}
	cache := newMemoryCache()

	uc := NewGetExpenseComparisonUseCase(repo, cache)
	uc.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		out, err := uc.Execute(context.Background(), GetExpenseComparisonInput{UserID: userID, Filter: "monthly"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(out.Periods) != ComparisonPeriods {
			t.Fatalf("periods = %d, want %d", len(out.Periods), ComparisonPeriods)
		}
		last := out.Periods[len(out.Periods)-1]
		if last.Label != "Mar 2025" || !last.Total.Equal(decimal.NewFromInt(30)) {
			t.Errorf("last period = %s %s, want Mar 2025 30", last.Label, last.Total)
		}
		if jan := out.Periods[len(out.Periods)-3]; !jan.Total.Equal(decimal.NewFromInt(20)) {
			t.Errorf("January total = %s, want 20", jan.Total)
		}
	}

	if repo.calls != 1 {
		t.Errorf("repository calls = %d, want 1", repo.calls)
	}
	if _, ok := cache.values[adapter.AnalyticsKey(userID, adapter.AnalyticsScopeExpenses, "comparison", "monthly")]; !ok {
		t.Error("comparison was not cached under its key")
	}
}

func TestGetExpenseComparison_RejectsUnknownFilter(t *testing.T) {
	repo := &fakeExpenseRepo{}
	uc := NewGetExpenseComparisonUseCase(repo, newMemoryCache())

	if _, err := uc.Execute(context.Background(), GetExpenseComparisonInput{UserID: uuid.New(), Filter: "hourly"}); err == nil {
		t.Fatal("Execute() error = nil, want error")
	}
	if repo.calls != 0 {
		t.Errorf("repository calls = %d, want 0", repo.calls)
	}
}

func TestGetTransactionSummary(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()
	now := time.Now().UTC()
	repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		entity.NewTransaction(userID, accountID, "Salary", "", "", entity.TransactionTypeIncome, decimal.NewFromInt(100), now),
		entity.NewTransaction(userID, accountID, "Rent", "", "", entity.TransactionTypeExpense, decimal.NewFromInt(40), now),
	}}

	uc := NewGetTransactionSummaryUseCase(repo, newMemoryCache())
	summary, err := uc.Execute(context.Background(), GetTransactionSummaryInput{UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !summary.TotalIncome.Equal(decimal.NewFromInt(100)) ||
		!summary.TotalExpense.Equal(decimal.NewFromInt(40)) ||
		!summary.Balance.Equal(decimal.NewFromInt(60)) ||
		summary.Count != 2 {
		t.Errorf("summary = %+v", summary)
	}
}
