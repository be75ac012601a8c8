//go:build integration

package mock

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/infra/db"
)

// Db is an in-memory SQLite database shared by every scenario of a run.
type Db struct {
	DbConn   *gorm.DB
	database *db.Database
	models   map[string]any
}

// NewDb opens the database and migrates models, keyed by table name.
func NewDb(models map[string]any) *Db {
	database, err := db.NewInMemory()
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %s", err))
	}

	d := &Db{
		DbConn:   database.DB(),
		database: database,
		models:   models,
	}
	if err := database.AutoMigrate(d.modelList()...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %s", err))
	}
	return d
}

// HealthCheck reports whether the connection answers.
func (d *Db) HealthCheck() bool {
	return d.database.HealthCheck()
}

// ClearDB removes every row of every table.
func (d *Db) ClearDB() error {
	for _, table := range d.tables() {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) tables() []string {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

func (d *Db) modelList() []any {
	list := make([]any, 0, len(d.models))
	for _, table := range d.tables() {
		list = append(list, d.models[table])
	}
	return list
}
