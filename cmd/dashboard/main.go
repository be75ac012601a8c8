// Package main is a terminal dashboard that signs in to the Finance Dashboard API and prints
// an overview of the user's accounts, goals, transactions and spending.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
	"github.com/finance-tracker/dashboard/internal/client/store"
)

const recentTransactions = 5

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	backend := flag.String("backend", cfg.Client.BackendURL, "API base URL")
	email := flag.String("email", os.Getenv("DASHBOARD_EMAIL"), "account email")
	password := flag.String("password", os.Getenv("DASHBOARD_PASSWORD"), "account password")
	filter := flag.String("filter", string(model.DefaultFilter), "analytics filter: daily, weekly, monthly or yearly")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *backend, *email, *password, *filter); err != nil {
		slog.Error("Dashboard failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, backend, email, password, filterName string) error {
	filter, err := model.ParseFilter(filterName)
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	client, err := api.New(backend)
	if err != nil {
		return err
	}
	s := store.New(client)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.Session.Login(ctx, model.Credentials{Email: email, Password: password}); err != nil {
		r, _ := s.Session.State().Result(store.OpLogin)
		return fmt.Errorf("%s: %w", r.Message, err)
	}

	if err := load(ctx, s, filter); err != nil {
		return err
	}

	render(os.Stdout, s)
	return nil
}

// load fetches every view of the dashboard concurrently.
func load(ctx context.Context, s *store.Store, filter model.Filter) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Accounts.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Transactions.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Goals.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Bills.List(ctx)
		return err
	})
	g.Go(func() error {
		return s.Summary.Fetch(ctx, "")
	})
	g.Go(func() error {
		return s.ExpenseAnalytics.SetFilter(ctx, filter)
	})
	return g.Wait()
}

func render(out io.Writer, s *store.Store) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if user := s.Session.State().User; user != nil {
		fmt.Fprintf(w, "Signed in as %s <%s>\n\n", user.Name, user.Email)
	}

	accounts := s.Accounts.State().Items
	var total float64
	fmt.Fprintln(w, "ACCOUNT\tTYPE\tBALANCE")
	for _, a := range accounts {
		total += a.Balance
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", a.BankName, a.AccountType, a.Balance)
	}
	fmt.Fprintf(w, "Total\t\t%.2f\n\n", total)

	if summary := s.Summary.State().Value; summary != nil {
		fmt.Fprintf(w, "Income\t%.2f\n", summary.TotalIncome)
		fmt.Fprintf(w, "Expense\t%.2f\n", summary.TotalExpense)
		fmt.Fprintf(w, "Net\t%.2f\n\n", summary.Balance)
	}

	fmt.Fprintln(w, "GOAL\tSAVED\tTARGET\tPROGRESS")
	for _, g := range s.Goals.State().Items {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f%%\n", g.Title, g.CurrentAmount, g.TargetAmount, g.Progress())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "DATE\tTRANSACTION\tAMOUNT")
	transactions := s.Transactions.State().Items
	for i, t := range transactions {
		if i == recentTransactions {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%+.2f\n", t.Date, t.Title, t.Signed())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "BILL\tDUE\tAMOUNT")
	for _, b := range s.Bills.State().Items {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", b.Vendor, b.DueDate, b.Amount)
	}
	fmt.Fprintln(w)

	if breakdown := s.ExpenseAnalytics.Breakdown.State().Value; breakdown != nil {
		fmt.Fprintf(w, "SPENDING %s to %s\tTOTAL\tSHARE\n", breakdown.Start, breakdown.End)
		for _, c := range breakdown.Data {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f%%\n", c.Category, c.Total, c.Percentage)
		}
		fmt.Fprintln(w)
	}

	if comparison := s.ExpenseAnalytics.Comparison.State().Value; comparison != nil {
		fmt.Fprintf(w, "PERIOD (%s)\tTOTAL\n", comparison.Filter)
		for _, p := range comparison.Data {
			fmt.Fprintf(w, "%s\t%.2f\n", p.Label, p.Total)
		}
	}
}
