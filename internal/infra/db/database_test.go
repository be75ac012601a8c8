package db

import (
	"testing"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

func TestNewInMemory_MigratesAndReportsHealthy(t *testing.T) {
	database, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	if !database.HealthCheck() {
		t.Error("HealthCheck() = false, want true")
	}
	if !database.DB().Migrator().HasTable(&model.TransactionModel{}) {
		t.Error("transactions table was not created")
	}
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle", URL: "x"})
	if err == nil {
		t.Fatal("NewConnection() error = nil, want unsupported driver error")
	}
}

func TestClose_HealthCheckFails(t *testing.T) {
	database, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	if err := database.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if database.HealthCheck() {
		t.Error("HealthCheck() = true after Close, want false")
	}
}
