package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/finance-tracker/dashboard/internal/client/model"
)

func newExpenseResource() *fakeResource[model.Expense, model.ExpenseDraft] {
	return &fakeResource[model.Expense, model.ExpenseDraft]{
		build: func(id string, d model.ExpenseDraft) model.Expense {
			return model.Expense{ID: id, Title: d.Title, Amount: d.Amount, Category: d.Category, Date: d.Date}
		},
	}
}

func TestView_FetchReplacesValue(t *testing.T) {
	fetch := &recordingFetch[model.Summary]{value: model.Summary{TotalIncome: 100, Balance: 100, Count: 1}}
	v := NewView[model.Summary]("summary", fetch.fetch)

	if err := v.Fetch(context.Background(), ""); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	st := v.State()
	if st.Value == nil || st.Value.Balance != 100 {
		t.Errorf("Value = %+v, want balance 100", st.Value)
	}

	fetch.err = errors.New("boom")
	if err := v.Fetch(context.Background(), ""); err == nil {
		t.Fatal("Fetch() error = nil, want error")
	}
	st = v.State()
	if st.Value == nil || st.Value.Balance != 100 {
		t.Errorf("Value after failure = %+v, want previous value", st.Value)
	}
	if st.Error != "Failed to fetch summary" {
		t.Errorf("Error = %q", st.Error)
	}
	if st.Loading {
		t.Error("Loading = true after settle")
	}
}

func TestExpenseAnalytics_SetFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  model.Filter
		wantErr bool
		want    model.Filter
	}{
		{name: "weekly", filter: model.FilterWeekly, want: model.FilterWeekly},
		{name: "yearly", filter: model.FilterYearly, want: model.FilterYearly},
		{name: "unknown is rejected", filter: "hourly", wantErr: true, want: model.DefaultFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison := &recordingFetch[model.Comparison]{}
			breakdown := &recordingFetch[model.Breakdown]{}
			a := NewExpenseAnalytics(comparison.fetch, breakdown.fetch)

			err := a.SetFilter(context.Background(), tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := a.Filter(); got != tt.want {
				t.Errorf("Filter() = %q, want %q", got, tt.want)
			}
			if tt.wantErr {
				if len(comparison.calls()) != 0 || len(breakdown.calls()) != 0 {
					t.Error("rejected filter triggered a fetch")
				}
				return
			}
			if got := a.Comparison.State().Filter; got != tt.want {
				t.Errorf("Comparison filter = %q, want %q", got, tt.want)
			}
			if got := a.Breakdown.State().Filter; got != tt.want {
				t.Errorf("Breakdown filter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpenseAnalytics_RefreshRecordsFailuresPerView(t *testing.T) {
	comparison := &recordingFetch[model.Comparison]{value: model.Comparison{Filter: model.FilterMonthly}}
	breakdown := &recordingFetch[model.Breakdown]{err: errors.New("boom")}
	a := NewExpenseAnalytics(comparison.fetch, breakdown.fetch)

	if err := a.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() error = nil, want breakdown failure")
	}
	if st := a.Comparison.State(); st.Error != "" || st.Value == nil {
		t.Errorf("Comparison state = %+v, want fulfilled", st)
	}
	if st := a.Breakdown.State(); st.Error != "Failed to fetch expense breakdown" {
		t.Errorf("Breakdown error = %q", st.Error)
	}
}

func TestBindExpenseInvalidation_UsesStoredFilter(t *testing.T) {
	ctx := context.Background()
	res := newExpenseResource()
	expenses := NewSlice[model.Expense, model.ExpenseDraft]("expense", res, WithInsertMode(InsertPrepend))
	comparison := &recordingFetch[model.Comparison]{}
	breakdown := &recordingFetch[model.Breakdown]{}
	analytics := NewExpenseAnalytics(comparison.fetch, breakdown.fetch)
	BindExpenseInvalidation(expenses, analytics)

	if err := analytics.SetFilter(ctx, model.FilterWeekly); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	created, err := expenses.Create(ctx, model.ExpenseDraft{Title: "Lunch", Amount: 12, Category: "Food"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := expenses.Update(ctx, created.ID, model.ExpenseDraft{Title: "Lunch", Amount: 15, Category: "Food"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := expenses.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := []model.Filter{model.FilterWeekly, model.FilterWeekly, model.FilterWeekly, model.FilterWeekly}
	if got := comparison.calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("comparison fetches = %v, want %v", got, want)
	}
	if got := breakdown.calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("breakdown fetches = %v, want %v", got, want)
	}
}

func TestBindExpenseInvalidation_SkipsRejectedMutations(t *testing.T) {
	ctx := context.Background()
	res := newExpenseResource()
	res.fail(errors.New("amount must be positive"))
	expenses := NewSlice[model.Expense, model.ExpenseDraft]("expense", res)
	comparison := &recordingFetch[model.Comparison]{}
	breakdown := &recordingFetch[model.Breakdown]{}
	BindExpenseInvalidation(expenses, NewExpenseAnalytics(comparison.fetch, breakdown.fetch))

	if _, err := expenses.Create(ctx, model.ExpenseDraft{Title: "Bad", Amount: -1}); err == nil {
		t.Fatal("Create() error = nil, want error")
	}
	if n := len(comparison.calls()) + len(breakdown.calls()); n != 0 {
		t.Errorf("analytics fetches = %d, want 0", n)
	}
}

func TestBindTransactionInvalidation_RefreshesSummaryAndAccounts(t *testing.T) {
	ctx := context.Background()
	txRes := &fakeResource[model.Transaction, model.TransactionDraft]{
		build: func(id string, d model.TransactionDraft) model.Transaction {
			return model.Transaction{ID: id, Account: d.Account, Type: d.Type, Amount: d.Amount}
		},
	}
	accRes := &fakeResource[model.Account, model.AccountDraft]{
		items: []model.Account{{ID: "acc1", Balance: 1100}},
	}
	transactions := NewSlice[model.Transaction, model.TransactionDraft]("transaction", txRes)
	accounts := NewSlice[model.Account, model.AccountDraft]("account", accRes)
	summaryFetch := &recordingFetch[model.Summary]{value: model.Summary{TotalIncome: 100, Balance: 100, Count: 1}}
	summary := NewView[model.Summary]("transaction summary", summaryFetch.fetch)
	BindTransactionInvalidation(transactions, summary, accounts)

	if _, err := transactions.Create(ctx, model.TransactionDraft{Account: "acc1", Type: model.TransactionIncome, Amount: 100}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got := len(summaryFetch.calls()); got != 1 {
		t.Errorf("summary fetches = %d, want 1", got)
	}
	if st := summary.State(); st.Value == nil || st.Value.Balance != 100 {
		t.Errorf("summary = %+v, want balance 100", st.Value)
	}
	if st := accounts.State(); len(st.Items) != 1 || st.Items[0].Balance != 1100 {
		t.Errorf("accounts = %+v, want refetched acc1", st.Items)
	}
}
