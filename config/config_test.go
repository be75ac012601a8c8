package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.JWT.SessionExpiry != 30*24*time.Hour {
		t.Errorf("JWT.SessionExpiry = %v, want 720h", cfg.JWT.SessionExpiry)
	}
	if cfg.JWT.CookieName != "jwt" {
		t.Errorf("JWT.CookieName = %q, want jwt", cfg.JWT.CookieName)
	}
	if cfg.Jobs.BillReminderSchedule != "0 8 * * *" {
		t.Errorf("Jobs.BillReminderSchedule = %q", cfg.Jobs.BillReminderSchedule)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("ANALYTICS_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want false")
	}
	if cfg.Redis.AnalyticsTTL != 30*time.Second {
		t.Errorf("Redis.AnalyticsTTL = %v, want 30s", cfg.Redis.AnalyticsTTL)
	}
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, want) {
		t.Errorf("Server.AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
}

func TestGetEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "int", key: "TEST_INT", val: "abc"},
		{name: "bool", key: "TEST_BOOL", val: "maybe"},
		{name: "duration", key: "TEST_DURATION", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			switch tt.name {
			case "int":
				if got := getEnvAsInt(tt.key, 7); got != 7 {
					t.Errorf("getEnvAsInt = %d, want 7", got)
				}
			case "bool":
				if got := getEnvAsBool(tt.key, true); !got {
					t.Error("getEnvAsBool = false, want true")
				}
			case "duration":
				if got := getEnvAsDuration(tt.key, time.Minute); got != time.Minute {
					t.Errorf("getEnvAsDuration = %v, want 1m", got)
				}
			}
		})
	}
}
