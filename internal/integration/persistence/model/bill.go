package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// BillModel represents the bills table in the database.
type BillModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Vendor         string          `gorm:"type:varchar(100);not null"`
	Plan           string          `gorm:"type:varchar(100)"`
	Description    string          `gorm:"type:text"`
	DueDate        time.Time       `gorm:"not null;index"`
	LastChargeDate *time.Time      `gorm:"column:last_charge_date"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Logo           string          `gorm:"type:varchar(500)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:             m.ID,
		UserID:         m.UserID,
		Vendor:         m.Vendor,
		Plan:           m.Plan,
		Description:    m.Description,
		DueDate:        m.DueDate,
		LastChargeDate: m.LastChargeDate,
		Amount:         m.Amount,
		Logo:           m.Logo,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:             bill.ID,
		UserID:         bill.UserID,
		Vendor:         bill.Vendor,
		Plan:           bill.Plan,
		Description:    bill.Description,
		DueDate:        bill.DueDate,
		LastChargeDate: bill.LastChargeDate,
		Amount:         bill.Amount,
		Logo:           bill.Logo,
		CreatedAt:      bill.CreatedAt,
		UpdatedAt:      bill.UpdatedAt,
	}
}
