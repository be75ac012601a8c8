package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill represents a recurring bill from a vendor.
type Bill struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Vendor         string
	Plan           string
	Description    string
	DueDate        time.Time
	LastChargeDate *time.Time
	Amount         decimal.Decimal
	Logo           string // Public path of the uploaded logo, empty when unset
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBill creates a new Bill entity.
func NewBill(userID uuid.UUID, vendor, plan string, dueDate time.Time, lastChargeDate *time.Time, amount decimal.Decimal) *Bill {
	now := time.Now().UTC()
	return &Bill{
		ID:             uuid.New(),
		UserID:         userID,
		Vendor:         vendor,
		Plan:           plan,
		DueDate:        dueDate.UTC(),
		LastChargeDate: lastChargeDate,
		Amount:         amount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

