package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/dashboard/config"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0", DB: 2})
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}
	defer client.Close()

	if client.Options().DB != 2 {
		t.Errorf("DB = %d, want 2", client.Options().DB)
	}

	check := HealthCheck(client)
	if !check() {
		t.Error("HealthCheck() = false, want true")
	}

	server.Close()
	if check() {
		t.Error("HealthCheck() = true after server close, want false")
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.RedisConfig{URL: "://nope"}); err == nil {
		t.Fatal("NewRedisClient() error = nil, want parse error")
	}
}
