package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

type summary struct {
	Total string `json:"total"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*RedisAnalyticsCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisAnalyticsCache(client, time.Minute), server
}

func TestRedisAnalyticsCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	key := adapter.AnalyticsKey(uuid.New(), adapter.AnalyticsScopeTransactions, "summary", "all")

	var got summary
	found, err := c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected miss on empty cache")
	}

	want := summary{Total: "12.50", Count: 3}
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err = c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected hit after set")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRedisAnalyticsCache_TTL(t *testing.T) {
	ctx := context.Background()
	c, server := newTestCache(t)
	key := adapter.AnalyticsKey(uuid.New(), adapter.AnalyticsScopeExpenses, "comparison", "monthly")

	if err := c.Set(ctx, key, summary{Count: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server.FastForward(2 * time.Minute)

	var got summary
	found, err := c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected entry to expire")
	}
}

func TestRedisAnalyticsCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, server := newTestCache(t)
	user := uuid.New()
	other := uuid.New()

	entries := []struct {
		key  string
		kept bool
	}{
		{key: adapter.AnalyticsKey(user, adapter.AnalyticsScopeExpenses, "comparison", "monthly"), kept: false},
		{key: adapter.AnalyticsKey(user, adapter.AnalyticsScopeExpenses, "breakdown", "weekly"), kept: false},
		{key: adapter.AnalyticsKey(user, adapter.AnalyticsScopeTransactions, "summary", "all"), kept: true},
		{key: adapter.AnalyticsKey(other, adapter.AnalyticsScopeExpenses, "comparison", "monthly"), kept: true},
	}
	for _, entry := range entries {
		if err := c.Set(ctx, entry.key, summary{Count: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := c.Invalidate(ctx, user, adapter.AnalyticsScopeExpenses); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range entries {
		if server.Exists(entry.key) != entry.kept {
			t.Errorf("key %s: expected kept=%v", entry.key, entry.kept)
		}
	}
}
