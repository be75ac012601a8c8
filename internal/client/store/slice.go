// Package store holds the client-side state of the dashboard. Each slice owns one partition of
// state and applies server responses to it; views observe slices through Subscribe.
package store

import (
	"context"
	"sync"

	"github.com/finance-tracker/dashboard/internal/client/api"
)

// Entity is a record identified by a server-assigned key.
type Entity interface {
	Key() string
}

// Resource is the remote collection a Slice synchronizes with.
type Resource[T Entity, D any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id string, draft D) (T, error)
	Delete(ctx context.Context, id string) error
}

// InsertMode decides where a created entity lands in Items.
type InsertMode int

const (
	InsertAppend InsertMode = iota
	InsertPrepend
)

// State is a snapshot of a domain slice. An empty Error means the last operation fulfilled.
type State[T Entity] struct {
	Items    []T
	Selected *T
	Loading  bool
	Error    string
}

// SliceOption configures a Slice.
type SliceOption func(*sliceConfig)

type sliceConfig struct {
	insert InsertMode
}

// WithInsertMode sets where created entities are inserted.
func WithInsertMode(mode InsertMode) SliceOption {
	return func(c *sliceConfig) {
		c.insert = mode
	}
}

// Slice synchronizes one domain collection. Changes are applied only after the server confirms
// them, in the order responses arrive.
type Slice[T Entity, D any] struct {
	noun     string
	resource Resource[T, D]
	insert   InsertMode

	mu       sync.Mutex
	state    State[T]
	inflight int

	// notifyMu orders observer callbacks the same way state changes are ordered.
	notifyMu  sync.Mutex
	observers []func(State[T])
	onMutated []func(context.Context)
}

// NewSlice creates a slice over resource. noun is the singular entity name used in fallback messages.
func NewSlice[T Entity, D any](noun string, resource Resource[T, D], opts ...SliceOption) *Slice[T, D] {
	cfg := sliceConfig{insert: InsertAppend}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Slice[T, D]{
		noun:     noun,
		resource: resource,
		insert:   cfg.insert,
	}
}

// State returns a copy of the current state.
func (s *Slice[T, D]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn to receive every state change. Observers must not start operations
// on the same slice synchronously.
func (s *Slice[T, D]) Subscribe(fn func(State[T])) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.observers = append(s.observers, fn)
}

// OnMutated registers fn to run after every fulfilled create, update or delete.
func (s *Slice[T, D]) OnMutated(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMutated = append(s.onMutated, fn)
}

// List replaces Items with the server collection. On failure the previous Items stay.
func (s *Slice[T, D]) List(ctx context.Context) ([]T, error) {
	s.begin()
	items, err := s.resource.List(ctx)
	s.finish(err, "Failed to fetch "+s.noun+"s", func(st *State[T]) {
		st.Items = append([]T(nil), items...)
	})
	return items, err
}

// Get loads one entity into Selected. Items are not touched.
func (s *Slice[T, D]) Get(ctx context.Context, id string) (T, error) {
	s.begin()
	item, err := s.resource.Get(ctx, id)
	s.finish(err, "Failed to fetch "+s.noun, func(st *State[T]) {
		selected := item
		st.Selected = &selected
	})
	return item, err
}

// ClearSelected empties the selected slot.
func (s *Slice[T, D]) ClearSelected() {
	s.change(func(st *State[T]) {
		st.Selected = nil
	})
}

// Create submits draft and inserts the server's echo.
func (s *Slice[T, D]) Create(ctx context.Context, draft D) (T, error) {
	s.begin()
	item, err := s.resource.Create(ctx, draft)
	s.finish(err, "Failed to create "+s.noun, func(st *State[T]) {
		if replaceByKey(st, item) {
			return
		}
		if s.insert == InsertPrepend {
			st.Items = append([]T{item}, st.Items...)
		} else {
			st.Items = append(st.Items, item)
		}
	})
	if err != nil {
		return item, err
	}
	s.mutated(ctx)
	return item, nil
}

// Update submits draft for id and replaces the entity in place. When id is not loaded the
// collection is stale and is fetched again.
func (s *Slice[T, D]) Update(ctx context.Context, id string, draft D) (T, error) {
	s.begin()
	item, err := s.resource.Update(ctx, id, draft)
	missed := false
	s.finish(err, "Failed to update "+s.noun, func(st *State[T]) {
		missed = !replaceByKey(st, item)
	})
	if err != nil {
		return item, err
	}
	if missed {
		_, _ = s.List(ctx)
	}
	s.mutated(ctx)
	return item, nil
}

// Delete removes id once the server acknowledges it.
func (s *Slice[T, D]) Delete(ctx context.Context, id string) error {
	s.begin()
	err := s.resource.Delete(ctx, id)
	s.finish(err, "Failed to delete "+s.noun, func(st *State[T]) {
		kept := st.Items[:0:0]
		for _, it := range st.Items {
			if it.Key() != id {
				kept = append(kept, it)
			}
		}
		st.Items = kept
	})
	if err != nil {
		return err
	}
	s.mutated(ctx)
	return nil
}

func (s *Slice[T, D]) begin() {
	s.change(func(st *State[T]) {
		s.inflight++
		st.Loading = true
	})
}

// finish settles one operation: a failure records the message, a success clears it and applies.
func (s *Slice[T, D]) finish(err error, fallback string, apply func(*State[T])) {
	s.change(func(st *State[T]) {
		s.inflight--
		st.Loading = s.inflight > 0
		if err != nil {
			st.Error = api.Message(err, fallback)
			return
		}
		st.Error = ""
		apply(st)
	})
}

// change applies fn under the state lock and notifies observers with the result.
// notifyMu is always taken before mu.
func (s *Slice[T, D]) change(fn func(st *State[T])) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshot()
	s.mu.Unlock()

	for _, observer := range s.observers {
		observer(snap)
	}
}

func (s *Slice[T, D]) snapshot() State[T] {
	snap := s.state
	snap.Items = append([]T(nil), s.state.Items...)
	if s.state.Selected != nil {
		selected := *s.state.Selected
		snap.Selected = &selected
	}
	return snap
}

func (s *Slice[T, D]) mutated(ctx context.Context) {
	s.mu.Lock()
	hooks := append([]func(context.Context){}, s.onMutated...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

// replaceByKey puts item at the position of the first entity with the same key and drops any
// later duplicates. It reports whether the key was present.
func replaceByKey[T Entity](st *State[T], item T) bool {
	found := false
	out := st.Items[:0:0]
	for _, it := range st.Items {
		if it.Key() != item.Key() {
			out = append(out, it)
			continue
		}
		if !found {
			out = append(out, item)
			found = true
		}
	}
	if found {
		st.Items = out
	}
	return found
}
