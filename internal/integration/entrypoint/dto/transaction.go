package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Account string          `json:"account"`
	Title   string          `json:"title"`
	Shop    string          `json:"shop"`
	Method  string          `json:"method"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"`
}

// UpdateTransactionRequest represents the request body for transaction update. Omitted fields are unchanged.
type UpdateTransactionRequest struct {
	Account *string          `json:"account,omitempty"`
	Title   *string          `json:"title,omitempty"`
	Shop    *string          `json:"shop,omitempty"`
	Method  *string          `json:"method,omitempty"`
	Type    *string          `json:"type,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	Date    *string          `json:"date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
// The update endpoint replies with this object at the root.
type TransactionResponse struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Account   string    `json:"account"`
	Title     string    `json:"title"`
	Shop      string    `json:"shop"`
	Method    string    `json:"method"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionEnvelope wraps a transaction under the "transaction" key.
type TransactionEnvelope struct {
	Transaction TransactionResponse `json:"transaction"`
}

// NewTransactionResponse is the reply of transaction creation.
type NewTransactionResponse struct {
	NewTransaction TransactionResponse `json:"newTransaction"`
	Account        *AccountResponse    `json:"account,omitempty"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionSummaryResponse is the income and expense totals, replied at the root.
type TransactionSummaryResponse struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	Count        int     `json:"count"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID.String(),
		User:      t.UserID.String(),
		Account:   t.AccountID.String(),
		Title:     t.Title,
		Shop:      t.Shop,
		Method:    t.Method,
		Type:      string(t.Type),
		Amount:    money(t.Amount),
		Date:      formatDate(t.Date),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTransactionListResponse converts a list of transactions to TransactionListResponse.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		items[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{Transactions: items}
}

// ToTransactionSummaryResponse converts the summary to its DTO.
func ToTransactionSummaryResponse(s *entity.TransactionSummary) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		TotalIncome:  money(s.TotalIncome),
		TotalExpense: money(s.TotalExpense),
		Balance:      money(s.Balance),
		Count:        s.Count,
	}
}
