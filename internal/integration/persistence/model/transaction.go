package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(255);not null"`
	Shop      string          `gorm:"type:varchar(255)"`
	Method    string          `gorm:"type:varchar(50)"`
	Type      string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:        m.ID,
		UserID:    m.UserID,
		AccountID: m.AccountID,
		Title:     m.Title,
		Shop:      m.Shop,
		Method:    m.Method,
		Type:      entity.TransactionType(m.Type),
		Amount:    m.Amount,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:        t.ID,
		UserID:    t.UserID,
		AccountID: t.AccountID,
		Title:     t.Title,
		Shop:      t.Shop,
		Method:    t.Method,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
