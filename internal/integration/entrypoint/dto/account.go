package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	AccountType   string          `json:"accountType"`
	BankName      string          `json:"bankName"`
	BranchName    string          `json:"branchName"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest represents the request body for account update. Omitted fields are unchanged.
type UpdateAccountRequest struct {
	AccountType   *string          `json:"accountType,omitempty"`
	BankName      *string          `json:"bankName,omitempty"`
	BranchName    *string          `json:"branchName,omitempty"`
	AccountNumber *string          `json:"accountNumber,omitempty"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID            string    `json:"_id"`
	User          string    `json:"user"`
	AccountType   string    `json:"accountType"`
	BankName      string    `json:"bankName"`
	BranchName    string    `json:"branchName"`
	AccountNumber string    `json:"accountNumber"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AccountEnvelope wraps an account under the "account" key.
type AccountEnvelope struct {
	Account AccountResponse `json:"account"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID.String(),
		User:          a.UserID.String(),
		AccountType:   a.AccountType,
		BankName:      a.BankName,
		BranchName:    a.BranchName,
		AccountNumber: a.AccountNumber,
		Balance:       money(a.Balance),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToAccountListResponse converts a list of accounts to AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	items := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		items[i] = ToAccountResponse(a)
	}
	return AccountListResponse{Accounts: items}
}
