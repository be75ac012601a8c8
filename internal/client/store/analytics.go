package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
)

// ViewState is a snapshot of one server-aggregated view.
type ViewState[V any] struct {
	Value   *V
	Filter  model.Filter
	Loading bool
	Error   string
}

// FetchFunc loads a view for a filter.
type FetchFunc[V any] func(ctx context.Context, filter model.Filter) (V, error)

// View holds one read-only analytics view. It is only ever replaced by a fetch.
type View[V any] struct {
	name  string
	fetch FetchFunc[V]

	mu       sync.Mutex
	state    ViewState[V]
	inflight int

	notifyMu  sync.Mutex
	observers []func(ViewState[V])
}

// NewView creates a view backed by fetch. name is used in fallback messages.
func NewView[V any](name string, fetch FetchFunc[V]) *View[V] {
	return &View[V]{name: name, fetch: fetch}
}

// State returns a copy of the current state.
func (v *View[V]) State() ViewState[V] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

// Subscribe registers fn to receive every state change.
func (v *View[V]) Subscribe(fn func(ViewState[V])) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	v.observers = append(v.observers, fn)
}

// Fetch replaces the view with the server's answer for filter. On failure the previous value stays.
func (v *View[V]) Fetch(ctx context.Context, filter model.Filter) error {
	v.change(func(st *ViewState[V]) {
		v.inflight++
		st.Loading = true
	})

	value, err := v.fetch(ctx, filter)

	v.change(func(st *ViewState[V]) {
		v.inflight--
		st.Loading = v.inflight > 0
		if err != nil {
			st.Error = api.Message(err, "Failed to fetch "+v.name)
			return
		}
		st.Error = ""
		st.Value = &value
		st.Filter = filter
	})
	return err
}

func (v *View[V]) change(fn func(st *ViewState[V])) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	fn(&v.state)
	snap := v.snapshot()
	v.mu.Unlock()

	for _, observer := range v.observers {
		observer(snap)
	}
}

func (v *View[V]) snapshot() ViewState[V] {
	snap := v.state
	if v.state.Value != nil {
		value := *v.state.Value
		snap.Value = &value
	}
	return snap
}

// ExpenseAnalytics groups the expense comparison and breakdown under one stored filter.
type ExpenseAnalytics struct {
	Comparison *View[model.Comparison]
	Breakdown  *View[model.Breakdown]

	mu     sync.Mutex
	filter model.Filter
}

// NewExpenseAnalytics creates the expense views with the default filter.
func NewExpenseAnalytics(comparison FetchFunc[model.Comparison], breakdown FetchFunc[model.Breakdown]) *ExpenseAnalytics {
	return &ExpenseAnalytics{
		Comparison: NewView("expense comparison", comparison),
		Breakdown:  NewView("expense breakdown", breakdown),
		filter:     model.DefaultFilter,
	}
}

// Filter returns the stored filter.
func (a *ExpenseAnalytics) Filter() model.Filter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

// SetFilter stores filter and fetches both views with it.
func (a *ExpenseAnalytics) SetFilter(ctx context.Context, filter model.Filter) error {
	if _, err := model.ParseFilter(string(filter)); err != nil {
		return err
	}
	a.mu.Lock()
	a.filter = filter
	a.mu.Unlock()
	return a.Refresh(ctx)
}

// Refresh fetches the comparison and the breakdown concurrently with the stored filter and
// waits for both. The first failure is returned; each view records its own.
func (a *ExpenseAnalytics) Refresh(ctx context.Context) error {
	filter := a.Filter()

	var g errgroup.Group
	g.Go(func() error {
		return a.Comparison.Fetch(ctx, filter)
	})
	g.Go(func() error {
		return a.Breakdown.Fetch(ctx, filter)
	})
	return g.Wait()
}
