package analytics

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// ParseFilter converts a query filter to a granularity. An empty filter means monthly.
func ParseFilter(filter string) (entity.Granularity, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return entity.GranularityMonthly, nil
	}

	granularity := entity.Granularity(filter)
	if !granularity.IsValid() {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAnalyticsFilter,
			"filter must be one of daily, weekly, monthly or yearly",
			domainerror.ErrInvalidAnalyticsFilter,
		)
	}
	return granularity, nil
}

// cached returns the cached value under key, computing and storing it on a miss.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, cache adapter.AnalyticsCache, key string, compute func() (T, error)) (T, error) {
	var out T
	hit, err := cache.Get(ctx, key, &out)
	if err != nil {
		slog.Warn("Failed to read analytics cache", "key", key, "error", err)
	} else if hit {
		return out, nil
	}

	out, err = compute()
	if err != nil {
		return out, err
	}

	if err := cache.Set(ctx, key, out); err != nil {
		slog.Warn("Failed to write analytics cache", "key", key, "error", err)
	}
	return out, nil
}
