package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel is used for expenses without a category in breakdowns.
const UncategorizedLabel = "Uncategorized"

// Expense represents a single spending entry.
type Expense struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time // When the money was spent, used for analytics
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExpense creates a new Expense entity. A zero date means now.
func NewExpense(userID uuid.UUID, title string, amount decimal.Decimal, category string, date time.Time) *Expense {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}

	return &Expense{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Amount:    amount,
		Category:  category,
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Granularity is the period size used by expense analytics.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// IsValid reports whether the granularity is supported.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityYearly:
		return true
	}
	return false
}

// DayTotal is the amount spent on a single day.
type DayTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

// PeriodTotal is the amount spent during one analytics period.
type PeriodTotal struct {
	Label string
	Start time.Time
	End   time.Time
	Total decimal.Decimal
	Days  []DayTotal // Nil for yearly periods
}

// CategoryTotal is the amount spent in one category during a period.
type CategoryTotal struct {
	Category   string
	Total      decimal.Decimal
	Count      int
	Percentage decimal.Decimal
	Items      []*Expense
}
