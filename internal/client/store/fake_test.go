package store

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
)

type item struct {
	ID   string
	Name string
}

func (i item) Key() string { return i.ID }

type itemDraft struct {
	Name string
}

// fakeResource is an in-memory collection. A non-nil err fails every call.
type fakeResource[T Entity, D any] struct {
	mu        sync.Mutex
	items     []T
	build     func(id string, d D) T
	next      int
	err       error
	listCalls int
}

func newItemResource(items ...item) *fakeResource[item, itemDraft] {
	return &fakeResource[item, itemDraft]{
		items: items,
		build: func(id string, d itemDraft) item { return item{ID: id, Name: d.Name} },
	}
}

func (f *fakeResource[T, D]) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeResource[T, D]) List(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]T(nil), f.items...), nil
}

func (f *fakeResource[T, D]) Get(ctx context.Context, id string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.err != nil {
		return zero, f.err
	}
	for _, it := range f.items {
		if it.Key() == id {
			return it, nil
		}
	}
	return zero, &api.Error{Status: http.StatusNotFound, Message: "not found"}
}

func (f *fakeResource[T, D]) Create(ctx context.Context, draft D) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.err != nil {
		return zero, f.err
	}
	f.next++
	created := f.build(fmt.Sprintf("n%d", f.next), draft)
	f.items = append(f.items, created)
	return created, nil
}

func (f *fakeResource[T, D]) Update(ctx context.Context, id string, draft D) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.err != nil {
		return zero, f.err
	}
	updated := f.build(id, draft)
	for i, it := range f.items {
		if it.Key() == id {
			f.items[i] = updated
			return updated, nil
		}
	}
	return zero, &api.Error{Status: http.StatusNotFound, Message: "not found"}
}

func (f *fakeResource[T, D]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, it := range f.items {
		if it.Key() == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &api.Error{Status: http.StatusNotFound, Message: "not found"}
}

// recordingFetch returns a fetch func that records every filter it is called with.
type recordingFetch[V any] struct {
	mu      sync.Mutex
	filters []model.Filter
	value   V
	err     error
}

func (r *recordingFetch[V]) fetch(ctx context.Context, filter model.Filter) (V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, filter)
	return r.value, r.err
}

func (r *recordingFetch[V]) calls() []model.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Filter(nil), r.filters...)
}
