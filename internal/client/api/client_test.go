package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finance-tracker/dashboard/internal/client/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "://x"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) error = nil, want error", raw)
		}
	}
}

func TestNew_NilHTTPClientIsIgnored(t *testing.T) {
	client, err := New("http://localhost:5000", WithHTTPClient(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.http == nil || client.http.Jar == nil {
		t.Errorf("http client = %+v, want default client with session jar", client.http)
	}
}

func TestDo_UnwrapsKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/accounts/a1" {
			t.Errorf("path = %s, want /api/accounts/a1", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"account":{"_id":"a1","bankName":"Nubank","balance":120.5}}`)
	}))

	account, err := client.Accounts().Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if account.ID != "a1" || account.BankName != "Nubank" || account.Balance != 120.5 {
		t.Errorf("Get() = %+v", account)
	}
}

func TestDo_MissingKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"other":{}}`)
	}))

	_, err := client.Accounts().Get(context.Background(), "a1")
	if err == nil || !strings.Contains(err.Error(), `"account"`) {
		t.Fatalf("Get() error = %v, want missing key error", err)
	}
}

func TestDo_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		fallback string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"Amount must be positive"}`, wantMsg: "Amount must be positive"},
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"Not authorized"}`, wantMsg: "Not authorized"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantMsg: "Failed to fetch", fallback: "Failed to fetch"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: "Failed to fetch", fallback: "Failed to fetch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))

			_, err := client.Goals().List(context.Background())

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("List() error = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if got := Message(err, tt.fallback); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(%d) = false", tt.status)
			}
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	server.Close()

	_, err = client.Accounts().List(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("List() error = %v, want *Error", err)
	}
	if apiErr.Status != 0 || apiErr.Message == "" {
		t.Errorf("Error = %+v, want status 0 with a message", apiErr)
	}
}

func TestDo_ForwardsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "session-token", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, `{"user":{"_id":"u1","name":"Ana","email":"ana@example.com"}}`)
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("jwt")
		if err != nil || cookie.Value != "session-token" {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Not authorized, no token"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"user":{"_id":"u1","name":"Ana","email":"ana@example.com"}}`)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	if _, err := client.Users().Login(ctx, model.Credentials{Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	me, err := client.Users().Me(ctx)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if me.ID != "u1" {
		t.Errorf("Me().ID = %q, want u1", me.ID)
	}

	if err := client.ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials() error = %v", err)
	}
	_, err = client.Users().Me(ctx)
	if got := Message(err, ""); got != "Not authorized, no token" {
		t.Errorf("Me() after clear message = %q", got)
	}
}

func TestGoals_CreateScenario(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/goals" {
			t.Errorf("request = %s %s, want POST /api/goals", r.Method, r.URL.Path)
		}
		var draft model.GoalDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode draft: %v", err)
		}
		if draft.Title != "Car" || draft.TargetAmount != 500000 || draft.CurrentAmount != 50000 || draft.Deadline != "2026-01-01" {
			t.Errorf("draft = %+v", draft)
		}
		writeJSON(w, http.StatusCreated, `{"goal":{"_id":"g1","title":"Car","targetAmount":500000,"currentAmount":50000,"deadline":"2026-01-01"}}`)
	}))

	goal, err := client.Goals().Create(context.Background(), model.GoalDraft{
		Title:         "Car",
		TargetAmount:  500000,
		CurrentAmount: 50000,
		Deadline:      "2026-01-01",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if goal.ID != "g1" || goal.Title != "Car" || goal.Deadline != "2026-01-01" {
		t.Errorf("Create() = %+v", goal)
	}
	if goal.Progress() != 10 {
		t.Errorf("Progress() = %v, want 10", goal.Progress())
	}
}

func TestAccounts_DeleteAcceptsNoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/accounts/a1" {
			t.Errorf("request = %s %s, want DELETE /api/accounts/a1", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Accounts().Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestTransactions_EnvelopeKeys(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, `{"newTransaction":{"_id":"t1","title":"Salary","type":"income","amount":1000},"account":{"_id":"a1","balance":1000}}`)
		case http.MethodPut:
			writeJSON(w, http.StatusOK, `{"_id":"t1","title":"Salary","type":"income","amount":1200}`)
		}
	}))
	ctx := context.Background()

	created, err := client.Transactions().Create(ctx, model.TransactionDraft{Account: "a1", Title: "Salary", Type: "income", Amount: 1000})
	if err != nil || created.ID != "t1" || created.Amount != 1000 {
		t.Fatalf("Create() = %+v, %v", created, err)
	}

	updated, err := client.Transactions().Update(ctx, "t1", model.TransactionDraft{Account: "a1", Title: "Salary", Type: "income", Amount: 1200})
	if err != nil || updated.ID != "t1" || updated.Amount != 1200 {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}
}

func TestBills_CreateSendsMultipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			return
		}
		if got := r.FormValue("vendor"); got != "Netflix" {
			t.Errorf("vendor = %q, want Netflix", got)
		}
		if got := r.FormValue("amount"); got != "39.9" {
			t.Errorf("amount = %q, want 39.9", got)
		}
		if _, ok := r.MultipartForm.Value["lastChargeDate"]; ok {
			t.Error("lastChargeDate was sent although empty")
		}
		file, header, err := r.FormFile("logo")
		if err != nil {
			t.Errorf("FormFile(logo) error = %v", err)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if header.Filename != "netflix.png" || string(content) != "png-bytes" {
			t.Errorf("logo = %s %q", header.Filename, content)
		}
		writeJSON(w, http.StatusCreated, `{"bill":{"_id":"b1","vendor":"Netflix","amount":39.9,"logo":"/uploads/logos/b1.png"}}`)
	}))

	bill, err := client.Bills().Create(context.Background(), model.BillDraft{
		Vendor:  "Netflix",
		Plan:    "Premium",
		DueDate: "2025-07-10",
		Amount:  39.9,
		Logo:    &model.Upload{Filename: "netflix.png", Content: strings.NewReader("png-bytes")},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bill.ID != "b1" || bill.Logo == "" {
		t.Errorf("Create() = %+v", bill)
	}
}

func TestAnalytics_DecodesRootViews(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/expenses/analytics/comparison":
			if r.URL.Query().Get("filter") != "weekly" {
				t.Errorf("filter = %q, want weekly", r.URL.Query().Get("filter"))
			}
			writeJSON(w, http.StatusOK, `{"filter":"weekly","data":[{"label":"W1","start":"2025-06-02","end":"2025-06-08","total":50}]}`)
		case "/api/expenses/analytics/breakdown":
			writeJSON(w, http.StatusOK, `{"filter":"weekly","total":50,"data":[{"category":"Food","total":50,"count":2,"percentage":100,"items":[]}]}`)
		case "/api/transactions/summary":
			writeJSON(w, http.StatusOK, `{"totalIncome":100,"totalExpense":40,"balance":60,"count":3}`)
		}
	}))
	ctx := context.Background()
	analytics := client.Analytics()

	comparison, err := analytics.Comparison(ctx, model.FilterWeekly)
	if err != nil || len(comparison.Data) != 1 || comparison.Data[0].Total != 50 {
		t.Errorf("Comparison() = %+v, %v", comparison, err)
	}
	breakdown, err := analytics.Breakdown(ctx, model.FilterWeekly)
	if err != nil || len(breakdown.Data) != 1 || breakdown.Data[0].Category != "Food" {
		t.Errorf("Breakdown() = %+v, %v", breakdown, err)
	}
	summary, err := analytics.Summary(ctx)
	if err != nil || summary.Balance != 60 || summary.Count != 3 {
		t.Errorf("Summary() = %+v, %v", summary, err)
	}
}

func TestUsers_PasswordOperationsReturnMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/reset/tok%2Fen" || r.URL.RawPath == "/api/users/reset/tok%2Fen" {
			writeJSON(w, http.StatusOK, `{"message":"Password reset successful"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"message":"ok:`+r.URL.Path+`"}`)
	}))
	ctx := context.Background()

	msg, err := client.Users().ForgotPassword(ctx, "ana@example.com")
	if err != nil || msg != "ok:/api/users/reset" {
		t.Errorf("ForgotPassword() = %q, %v", msg, err)
	}
	msg, err = client.Users().ChangePassword(ctx, "old-password", "new-password")
	if err != nil || msg != "ok:/api/users/change-password" {
		t.Errorf("ChangePassword() = %q, %v", msg, err)
	}
	msg, err = client.Users().ResetPassword(ctx, "tok/en", "new-password")
	if err != nil || msg != "Password reset successful" {
		t.Errorf("ResetPassword() = %q, %v", msg, err)
	}
}
