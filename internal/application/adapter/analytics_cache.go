package adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AnalyticsScope groups cached analytics that are invalidated together.
type AnalyticsScope string

const (
	AnalyticsScopeExpenses     AnalyticsScope = "expenses"
	AnalyticsScopeTransactions AnalyticsScope = "transactions"
)

// AnalyticsKey builds the cache key of one analytics view.
func AnalyticsKey(userID uuid.UUID, scope AnalyticsScope, view, filter string) string {
	return fmt.Sprintf("analytics:%s:%s:%s:%s", userID, scope, view, filter)
}

// AnalyticsCache caches computed analytics per user.
type AnalyticsCache interface {
	// Get loads a cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value under key.
	Set(ctx context.Context, key string, value any) error

	// Invalidate drops every cached view of the user in the given scope.
	Invalidate(ctx context.Context, userID uuid.UUID, scope AnalyticsScope) error
}
