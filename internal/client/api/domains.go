package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/finance-tracker/dashboard/internal/client/model"
)

// Accounts returns the account collection.
func (c *Client) Accounts() *Resource[model.Account, model.AccountDraft] {
	return NewResource[model.Account, model.AccountDraft](c, Endpoints{
		Path:      "/api/accounts",
		ListKey:   "accounts",
		GetKey:    "account",
		CreateKey: "account",
		UpdateKey: "account",
	}, nil)
}

// Bills returns the bill collection. Drafts are sent as multipart forms with an optional logo.
func (c *Client) Bills() *Resource[model.Bill, model.BillDraft] {
	return NewResource[model.Bill, model.BillDraft](c, Endpoints{
		Path:      "/api/bills",
		ListKey:   "bills",
		GetKey:    "bill",
		CreateKey: "bill",
		UpdateKey: "bill",
	}, encodeBill)
}

// Expenses returns the expense collection.
func (c *Client) Expenses() *Resource[model.Expense, model.ExpenseDraft] {
	return NewResource[model.Expense, model.ExpenseDraft](c, Endpoints{
		Path:      "/api/expenses",
		ListKey:   "expenses",
		GetKey:    "expense",
		CreateKey: "expense",
		UpdateKey: "expense",
	}, nil)
}

// Goals returns the goal collection.
func (c *Client) Goals() *Resource[model.Goal, model.GoalDraft] {
	return NewResource[model.Goal, model.GoalDraft](c, Endpoints{
		Path:      "/api/goals",
		ListKey:   "goals",
		GetKey:    "goal",
		CreateKey: "goal",
		UpdateKey: "goal",
	}, nil)
}

// Transactions returns the transaction collection. Creation replies under "newTransaction"
// and update replies with the transaction at the root.
func (c *Client) Transactions() *Resource[model.Transaction, model.TransactionDraft] {
	return NewResource[model.Transaction, model.TransactionDraft](c, Endpoints{
		Path:      "/api/transactions",
		ListKey:   "transactions",
		GetKey:    "transaction",
		CreateKey: "newTransaction",
		UpdateKey: Root,
	}, nil)
}

func encodeBill(d model.BillDraft) (Body, error) {
	fields := map[string]string{
		"vendor":      d.Vendor,
		"plan":        d.Plan,
		"description": d.Description,
		"dueDate":     d.DueDate,
		"amount":      strconv.FormatFloat(d.Amount, 'f', -1, 64),
	}
	if d.LastChargeDate != "" {
		fields["lastChargeDate"] = d.LastChargeDate
	}

	var files []File
	if d.Logo != nil {
		files = append(files, File{Field: "logo", Filename: d.Logo.Filename, Content: d.Logo.Content})
	}
	return Multipart(fields, files...), nil
}

// Analytics reads the server-aggregated views.
type Analytics struct {
	client *Client
}

// Analytics returns the analytics endpoints.
func (c *Client) Analytics() *Analytics {
	return &Analytics{client: c}
}

// Comparison fetches the expense comparison for filter.
func (a *Analytics) Comparison(ctx context.Context, filter model.Filter) (model.Comparison, error) {
	var out model.Comparison
	err := a.client.Do(ctx, http.MethodGet, "/api/expenses/analytics/comparison?filter="+url.QueryEscape(string(filter)), nil, Root, &out)
	return out, err
}

// Breakdown fetches the expense breakdown for filter.
func (a *Analytics) Breakdown(ctx context.Context, filter model.Filter) (model.Breakdown, error) {
	var out model.Breakdown
	err := a.client.Do(ctx, http.MethodGet, "/api/expenses/analytics/breakdown?filter="+url.QueryEscape(string(filter)), nil, Root, &out)
	return out, err
}

// Summary fetches the transaction summary.
func (a *Analytics) Summary(ctx context.Context) (model.Summary, error) {
	var out model.Summary
	err := a.client.Do(ctx, http.MethodGet, "/api/transactions/summary", nil, Root, &out)
	return out, err
}

// Users is the session and profile surface.
type Users struct {
	client *Client
}

// Users returns the user endpoints.
func (c *Client) Users() *Users {
	return &Users{client: c}
}

// Me fetches the signed-in user.
func (u *Users) Me(ctx context.Context) (model.User, error) {
	var out model.User
	err := u.client.Do(ctx, http.MethodGet, "/api/users/me", nil, "user", &out)
	return out, err
}

// Register creates an account and starts a session.
func (u *Users) Register(ctx context.Context, r model.Registration) (model.User, error) {
	var out model.User
	err := u.client.Do(ctx, http.MethodPost, "/api/users/register", JSON(r), "user", &out)
	return out, err
}

// Login starts a session. The session cookie is kept by the client.
func (u *Users) Login(ctx context.Context, c model.Credentials) (model.User, error) {
	var out model.User
	err := u.client.Do(ctx, http.MethodPost, "/api/users/login", JSON(c), "user", &out)
	return out, err
}

// Update changes the profile with a multipart form.
func (u *Users) Update(ctx context.Context, p model.ProfileUpdate) (model.User, error) {
	fields := map[string]string{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	var files []File
	if p.Avatar != nil {
		files = append(files, File{Field: "avatar", Filename: p.Avatar.Filename, Content: p.Avatar.Content})
	}

	var out model.User
	err := u.client.Do(ctx, http.MethodPut, "/api/users/update", Multipart(fields, files...), "user", &out)
	return out, err
}

// ChangePassword replaces the password of the signed-in user and returns the server's confirmation.
func (u *Users) ChangePassword(ctx context.Context, current, next string) (string, error) {
	payload := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{current, next}
	return u.message(ctx, http.MethodPut, "/api/users/change-password", JSON(payload))
}

// ForgotPassword requests a reset link for email.
func (u *Users) ForgotPassword(ctx context.Context, email string) (string, error) {
	payload := struct {
		Email string `json:"email"`
	}{email}
	return u.message(ctx, http.MethodPost, "/api/users/reset", JSON(payload))
}

// ResetPassword sets a new password with a reset token.
func (u *Users) ResetPassword(ctx context.Context, token, password string) (string, error) {
	payload := struct {
		Password string `json:"password"`
	}{password}
	return u.message(ctx, http.MethodPost, "/api/users/reset/"+url.PathEscape(token), JSON(payload))
}

func (u *Users) message(ctx context.Context, method, path string, body Body) (string, error) {
	var msg string
	err := u.client.Do(ctx, method, path, body, "message", &msg)
	return msg, err
}
