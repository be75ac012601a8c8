package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     *string         `json:"date,omitempty"`
}

// UpdateExpenseRequest represents the request body for expense update. Omitted fields are unchanged.
type UpdateExpenseRequest struct {
	Title    *string          `json:"title,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Category *string          `json:"category,omitempty"`
	Date     *string          `json:"date,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExpenseEnvelope wraps an expense under the "expense" key.
type ExpenseEnvelope struct {
	Expense ExpenseResponse `json:"expense"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID.String(),
		User:      e.UserID.String(),
		Title:     e.Title,
		Amount:    money(e.Amount),
		Category:  e.Category,
		Date:      formatDate(e.Date),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToExpenseListResponse converts a list of expenses to ExpenseListResponse.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	return ExpenseListResponse{Expenses: toExpenseResponses(expenses)}
}

func toExpenseResponses(expenses []*entity.Expense) []ExpenseResponse {
	items := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = ToExpenseResponse(e)
	}
	return items
}
