// Package model defines the entities the dashboard client exchanges with the API.
// Entities carry the server's canonical representation; drafts are the payloads the client submits.
package model

import (
	"fmt"
	"io"
	"time"
)

// Account is a bank account. Balance is maintained by the server.
type Account struct {
	ID            string    `json:"_id"`
	User          string    `json:"user,omitempty"`
	AccountType   string    `json:"accountType"`
	BankName      string    `json:"bankName"`
	BranchName    string    `json:"branchName"`
	AccountNumber string    `json:"accountNumber"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a Account) Key() string { return a.ID }

// AccountDraft is the payload of account create and update requests.
type AccountDraft struct {
	AccountType   string  `json:"accountType"`
	BankName      string  `json:"bankName"`
	BranchName    string  `json:"branchName"`
	AccountNumber string  `json:"accountNumber"`
	Balance       float64 `json:"balance"`
}

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a movement on an account. Amount is positive; Type carries the sign.
type Transaction struct {
	ID        string    `json:"_id"`
	User      string    `json:"user,omitempty"`
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

func (t Transaction) Key() string { return t.ID }

// Signed returns the amount with the sign implied by the type.
func (t Transaction) Signed() float64 {
	if t.Type == TransactionExpense {
		return -t.Amount
	}
	return t.Amount
}

// TransactionDraft is the payload of transaction create and update requests.
type TransactionDraft struct {
	Account string  `json:"account"`
	Title   string  `json:"title"`
	Shop    string  `json:"shop"`
	Method  string  `json:"method"`
	Type    string  `json:"type"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
}

// Bill is a recurring charge with an optional vendor logo.
type Bill struct {
	ID             string    `json:"_id"`
	User           string    `json:"user,omitempty"`
	Vendor         string    `json:"vendor"`
	Plan           string    `json:"plan"`
	Description    string    `json:"description"`
	DueDate        string    `json:"dueDate"`
	LastChargeDate *string   `json:"lastChargeDate"`
	Amount         float64   `json:"amount"`
	Logo           string    `json:"logo"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (b Bill) Key() string { return b.ID }

// BillDraft is the payload of bill create and update requests. It travels as a multipart form.
type BillDraft struct {
	Vendor         string
	Plan           string
	Description    string
	DueDate        string
	LastChargeDate string
	Amount         float64
	Logo           *Upload
}

// Expense is a categorized spending entry.
type Expense struct {
	ID        string    `json:"_id"`
	User      string    `json:"user,omitempty"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e Expense) Key() string { return e.ID }

// ExpenseDraft is the payload of expense create and update requests. An empty date means today.
type ExpenseDraft struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date,omitempty"`
}

// Goal is a savings target.
type Goal struct {
	ID            string    `json:"_id"`
	User          string    `json:"user,omitempty"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      string    `json:"deadline"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (g Goal) Key() string { return g.ID }

// Progress returns current over target as a percentage clamped to [0, 100].
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// GoalDraft is the payload of goal create and update requests.
type GoalDraft struct {
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
}

// User is the signed-in profile.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Registration is the payload of the register request.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the payload of the login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate changes the profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name   *string
	Phone  *string
	Avatar *Upload
}

// Upload is a file sent alongside a multipart form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Filter selects the time bucket of expense analytics.
type Filter string

// Analytics filters.
const (
	FilterDaily   Filter = "daily"
	FilterWeekly  Filter = "weekly"
	FilterMonthly Filter = "monthly"
	FilterYearly  Filter = "yearly"
)

// DefaultFilter is the filter the analytics views start with.
const DefaultFilter = FilterMonthly

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterDaily, FilterWeekly, FilterMonthly, FilterYearly:
		return f, nil
	}
	return "", fmt.Errorf("unknown analytics filter %q", s)
}

// DayTotal is the spending of one day.
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Period is one bucket of the expense comparison.
type Period struct {
	Label string     `json:"label"`
	Start string     `json:"start"`
	End   string     `json:"end"`
	Total float64    `json:"total"`
	Days  []DayTotal `json:"days,omitempty"`
}

// Comparison is the spending of the most recent periods, oldest first.
type Comparison struct {
	Filter Filter   `json:"filter"`
	Data   []Period `json:"data"`
}

// Category is the spending of one category in the current period.
type Category struct {
	Category   string    `json:"category"`
	Total      float64   `json:"total"`
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
	Items      []Expense `json:"items"`
}

// Breakdown is the spending by category of the current period, largest first.
type Breakdown struct {
	Filter Filter     `json:"filter"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Total  float64    `json:"total"`
	Data   []Category `json:"data"`
}

// Summary aggregates every transaction of the user.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	Count        int     `json:"count"`
}
