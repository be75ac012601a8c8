package dependency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
	"github.com/finance-tracker/dashboard/internal/client/store"
	"github.com/finance-tracker/dashboard/internal/infra/db"
	"github.com/finance-tracker/dashboard/internal/infra/dependency"
	persistencemodel "github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

// newDashboard starts the API on an in-memory database and returns a store connected to it.
func newDashboard(t *testing.T) *store.Store {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "injector-test-secret")
	t.Setenv("UPLOADS_DIR", t.TempDir())
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("SMTP_HOST", "")
	cfg := config.Load()

	database, err := db.NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.AutoMigrate(persistencemodel.All()...); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
		DB:       database.DB(),
		DBHealth: database.HealthCheck,
	})
	if err != nil {
		t.Fatalf("NewInjector() error = %v", err)
	}

	server := httptest.NewServer(injector.Router.Setup(injector.RouterOptions()))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, api.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return store.New(client)
}

func register(t *testing.T, s *store.Store) {
	t.Helper()
	err := s.Session.Register(context.Background(), model.Registration{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestDashboard_SessionLifecycle(t *testing.T) {
	s := newDashboard(t)
	ctx := context.Background()

	register(t, s)
	st := s.Session.State()
	if st.User == nil || st.User.Email != "ada@example.com" {
		t.Fatalf("User = %+v, want ada", st.User)
	}
	if r, _ := st.Result(store.OpRegister); r.Status != store.Fulfilled || r.Message != "Registration successful" {
		t.Errorf("Result(register) = %+v", r)
	}

	if err := s.Session.Profile(ctx); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	err := s.Session.ChangePassword(ctx, "wrong-password", "EvenBetter456!")
	if err == nil {
		t.Fatal("ChangePassword() with wrong password error = nil")
	}
	if r, _ := s.Session.State().Result(store.OpChangePassword); r.Status != store.Rejected || r.Message == "" {
		t.Errorf("Result(change-password) = %+v, want rejected with message", r)
	}

	s.Session.Logout()
	if _, err := s.Accounts.List(ctx); !api.IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("List() after logout error = %v, want 401", err)
	}
	if st := s.Accounts.State(); st.Error == "" {
		t.Error("Accounts error is empty after a rejected list")
	}

	if err := s.Session.Login(ctx, model.Credentials{Email: "ada@example.com", Password: "SecurePass123!"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := s.Accounts.List(ctx); err != nil {
		t.Fatalf("List() after login error = %v", err)
	}
	if st := s.Accounts.State(); st.Error != "" {
		t.Errorf("Accounts error = %q after a fulfilled list", st.Error)
	}
}

func TestDashboard_DeleteOnlyAccount(t *testing.T) {
	s := newDashboard(t)
	ctx := context.Background()
	register(t, s)

	created, err := s.Accounts.Create(ctx, model.AccountDraft{
		AccountType: "checking",
		BankName:    "First Bank",
		BranchName:  "Main",
		Balance:     500,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Accounts.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if got := s.Accounts.State().Items; len(got) != 0 {
		t.Errorf("Items = %+v, want empty", got)
	}
	if _, err := s.Accounts.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := s.Accounts.State().Items; len(got) != 0 {
		t.Errorf("Items after list = %+v, want empty", got)
	}
}

func TestDashboard_GoalProgress(t *testing.T) {
	s := newDashboard(t)
	ctx := context.Background()
	register(t, s)

	draft := model.GoalDraft{Title: "Trip", TargetAmount: 1000, CurrentAmount: 0, Deadline: "2030-06-01"}
	goal, err := s.Goals.Create(ctx, draft)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	draft.CurrentAmount = 100
	if _, err := s.Goals.Update(ctx, goal.ID, draft); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	items := s.Goals.State().Items
	if len(items) != 1 || items[0].ID != goal.ID {
		t.Fatalf("Items = %+v, want the updated goal once", items)
	}
	if got := items[0].Progress(); got != 10 {
		t.Errorf("Progress() = %v, want 10", got)
	}
}

func TestDashboard_TransactionRefreshesSummaryAndBalances(t *testing.T) {
	s := newDashboard(t)
	ctx := context.Background()
	register(t, s)

	account, err := s.Accounts.Create(ctx, model.AccountDraft{AccountType: "checking", BankName: "First Bank", Balance: 1000})
	if err != nil {
		t.Fatalf("Create(account) error = %v", err)
	}

	_, err = s.Transactions.Create(ctx, model.TransactionDraft{
		Account: account.ID,
		Title:   "Salary",
		Method:  "transfer",
		Type:    model.TransactionIncome,
		Amount:  100,
		Date:    time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		t.Fatalf("Create(transaction) error = %v", err)
	}

	summary := s.Summary.State()
	if summary.Value == nil || summary.Value.TotalIncome != 100 || summary.Value.Balance != 100 || summary.Value.Count != 1 {
		t.Errorf("Summary = %+v, want income 100", summary.Value)
	}
	accounts := s.Accounts.State().Items
	if len(accounts) != 1 || accounts[0].Balance != 1100 {
		t.Errorf("Accounts = %+v, want balance 1100", accounts)
	}
}

func TestDashboard_ExpenseRefreshesAnalytics(t *testing.T) {
	s := newDashboard(t)
	ctx := context.Background()
	register(t, s)

	if err := s.ExpenseAnalytics.SetFilter(ctx, model.FilterWeekly); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if v := s.ExpenseAnalytics.Breakdown.State().Value; v == nil || v.Total != 0 {
		t.Fatalf("Breakdown = %+v, want empty", v)
	}

	if _, err := s.Expenses.Create(ctx, model.ExpenseDraft{Title: "Lunch", Amount: 12.5, Category: "Food"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Expenses.Create(ctx, model.ExpenseDraft{Title: "Bus", Amount: 2.5, Category: "Transport"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if items := s.Expenses.State().Items; len(items) != 2 || items[0].Title != "Bus" {
		t.Errorf("Items = %+v, want newest first", items)
	}

	breakdown := s.ExpenseAnalytics.Breakdown.State()
	if breakdown.Filter != model.FilterWeekly || breakdown.Value == nil {
		t.Fatalf("Breakdown state = %+v", breakdown)
	}
	if breakdown.Value.Total != 15 || len(breakdown.Value.Data) != 2 || breakdown.Value.Data[0].Category != "Food" {
		t.Errorf("Breakdown = %+v, want 15 over Food and Transport", breakdown.Value)
	}

	comparison := s.ExpenseAnalytics.Comparison.State()
	if comparison.Value == nil || comparison.Value.Filter != model.FilterWeekly {
		t.Fatalf("Comparison = %+v", comparison.Value)
	}
	last := comparison.Value.Data[len(comparison.Value.Data)-1]
	if last.Total != 15 {
		t.Errorf("current week total = %v, want 15", last.Total)
	}
}
