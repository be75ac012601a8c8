package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountType   string          `gorm:"type:varchar(50);not null"`
	BankName      string          `gorm:"type:varchar(100);not null"`
	BranchName    string          `gorm:"type:varchar(100)"`
	AccountNumber string          `gorm:"type:varchar(50)"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:            m.ID,
		UserID:        m.UserID,
		AccountType:   m.AccountType,
		BankName:      m.BankName,
		BranchName:    m.BranchName,
		AccountNumber: m.AccountNumber,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:            account.ID,
		UserID:        account.UserID,
		AccountType:   account.AccountType,
		BankName:      account.BankName,
		BranchName:    account.BranchName,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}
