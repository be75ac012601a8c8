package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal with a target amount and a deadline.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new Goal entity.
func NewGoal(userID uuid.UUID, title string, targetAmount, currentAmount decimal.Decimal, deadline time.Time) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline.UTC(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Progress returns the completion percentage, clamped to [0, 100].
func (g *Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return 0
	}
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	return pct.Round(2).InexactFloat64()
}
