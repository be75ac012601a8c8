package store

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
)

// Store is the dashboard state container. Build it once with New and share it.
type Store struct {
	Accounts     *Slice[model.Account, model.AccountDraft]
	Bills        *Slice[model.Bill, model.BillDraft]
	Expenses     *Slice[model.Expense, model.ExpenseDraft]
	Goals        *Slice[model.Goal, model.GoalDraft]
	Transactions *Slice[model.Transaction, model.TransactionDraft]

	ExpenseAnalytics *ExpenseAnalytics
	Summary          *View[model.Summary]

	Session *Session
}

// New wires every slice to client and installs the analytics invalidation rules.
func New(client *api.Client) *Store {
	analytics := client.Analytics()

	s := &Store{
		Accounts:     NewSlice[model.Account, model.AccountDraft]("account", client.Accounts()),
		Bills:        NewSlice[model.Bill, model.BillDraft]("bill", client.Bills()),
		Expenses:     NewSlice[model.Expense, model.ExpenseDraft]("expense", client.Expenses(), WithInsertMode(InsertPrepend)),
		Goals:        NewSlice[model.Goal, model.GoalDraft]("goal", client.Goals()),
		Transactions: NewSlice[model.Transaction, model.TransactionDraft]("transaction", client.Transactions()),
	}
	s.ExpenseAnalytics = NewExpenseAnalytics(analytics.Comparison, analytics.Breakdown)
	s.Summary = NewView[model.Summary]("transaction summary", func(ctx context.Context, _ model.Filter) (model.Summary, error) {
		return analytics.Summary(ctx)
	})
	s.Session = NewSession(client.Users(), func() {
		if err := client.ClearCredentials(); err != nil {
			slog.Warn("Failed to clear session cookies", "error", err)
		}
	})

	BindExpenseInvalidation(s.Expenses, s.ExpenseAnalytics)
	BindTransactionInvalidation(s.Transactions, s.Summary, s.Accounts)

	return s
}

// BindExpenseInvalidation re-fetches the expense analytics after every fulfilled expense mutation.
func BindExpenseInvalidation[D any](expenses *Slice[model.Expense, D], analytics *ExpenseAnalytics) {
	expenses.OnMutated(func(ctx context.Context) {
		if err := analytics.Refresh(ctx); err != nil {
			slog.Debug("Expense analytics refresh failed", "error", err)
		}
	})
}

// BindTransactionInvalidation re-fetches the summary, and the accounts whose balances the server
// adjusts, after every fulfilled transaction mutation.
func BindTransactionInvalidation[D, AD any](
	transactions *Slice[model.Transaction, D],
	summary *View[model.Summary],
	accounts *Slice[model.Account, AD],
) {
	transactions.OnMutated(func(ctx context.Context) {
		var g errgroup.Group
		g.Go(func() error {
			return summary.Fetch(ctx, "")
		})
		if accounts != nil {
			g.Go(func() error {
				_, err := accounts.List(ctx)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			slog.Debug("Transaction views refresh failed", "error", err)
		}
	})
}
