package store

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"sync"
	"testing"

	"github.com/finance-tracker/dashboard/internal/client/api"
)

func keys[T Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key())
	}
	return out
}

func loadedSlice(t *testing.T, res *fakeResource[item, itemDraft], opts ...SliceOption) *Slice[item, itemDraft] {
	t.Helper()
	s := NewSlice[item, itemDraft]("item", res, opts...)
	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	return s
}

func TestSlice_CreateInsertsServerEchoOnce(t *testing.T) {
	tests := []struct {
		name string
		mode InsertMode
		want []string
	}{
		{name: "append", mode: InsertAppend, want: []string{"a", "b", "n1"}},
		{name: "prepend", mode: InsertPrepend, want: []string{"n1", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newItemResource(item{ID: "a"}, item{ID: "b"})
			s := loadedSlice(t, res, WithInsertMode(tt.mode))

			created, err := s.Create(context.Background(), itemDraft{Name: "new"})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if created.ID != "n1" || created.Name != "new" {
				t.Errorf("Create() = %+v, want server echo n1", created)
			}
			if got := keys(s.State().Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Items = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlice_CreateEchoOfKnownIDIsNotDuplicated(t *testing.T) {
	res := newItemResource(item{ID: "a"})
	res.build = func(id string, d itemDraft) item { return item{ID: "a", Name: d.Name} }
	s := loadedSlice(t, res)

	if _, err := s.Create(context.Background(), itemDraft{Name: "again"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	items := s.State().Items
	if len(items) != 1 || items[0].Name != "again" {
		t.Errorf("Items = %+v, want a single a", items)
	}
}

func TestSlice_UpdateReplacesInPlace(t *testing.T) {
	res := newItemResource(item{ID: "a", Name: "A"}, item{ID: "b", Name: "B"}, item{ID: "c", Name: "C"})
	s := loadedSlice(t, res)

	if _, err := s.Update(context.Background(), "b", itemDraft{Name: "B2"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	want := []item{{ID: "a", Name: "A"}, {ID: "b", Name: "B2"}, {ID: "c", Name: "C"}}
	if got := s.State().Items; !reflect.DeepEqual(got, want) {
		t.Errorf("Items = %+v, want %+v", got, want)
	}
}

func TestSlice_UpdateOfUnloadedIDRefetchesList(t *testing.T) {
	res := newItemResource(item{ID: "a", Name: "A"})
	s := loadedSlice(t, res)

	// Another session adds b on the server.
	res.items = append(res.items, item{ID: "b", Name: "B"})

	if _, err := s.Update(context.Background(), "b", itemDraft{Name: "B2"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if res.listCalls != 2 {
		t.Errorf("list calls = %d, want 2", res.listCalls)
	}
	want := []item{{ID: "a", Name: "A"}, {ID: "b", Name: "B2"}}
	if got := s.State().Items; !reflect.DeepEqual(got, want) {
		t.Errorf("Items = %+v, want %+v", got, want)
	}
}

func TestSlice_DeleteRemovesAfterAcknowledgment(t *testing.T) {
	res := newItemResource(item{ID: "a1"})
	s := loadedSlice(t, res)

	if err := s.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := s.State().Items; len(got) != 0 {
		t.Errorf("Items = %+v, want empty", got)
	}
}

func TestSlice_RejectedDeleteKeepsItem(t *testing.T) {
	res := newItemResource(item{ID: "a"}, item{ID: "b"})
	s := loadedSlice(t, res)

	res.fail(&api.Error{Status: http.StatusForbidden, Message: "You do not own this item"})
	if err := s.Delete(context.Background(), "a"); err == nil {
		t.Fatal("Delete() error = nil, want error")
	}

	st := s.State()
	if got := keys(st.Items); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Items = %v, want [a b]", got)
	}
	if st.Error != "You do not own this item" {
		t.Errorf("Error = %q", st.Error)
	}
}

func TestSlice_ListIsIdempotent(t *testing.T) {
	res := newItemResource(item{ID: "a"}, item{ID: "b"})
	s := NewSlice[item, itemDraft]("item", res)
	ctx := context.Background()

	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	first := s.State().Items
	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if second := s.State().Items; !reflect.DeepEqual(first, second) {
		t.Errorf("second List() = %+v, want %+v", second, first)
	}
}

func TestSlice_ErrorIsolation(t *testing.T) {
	res := newItemResource(item{ID: "a"})
	s := loadedSlice(t, res)
	ctx := context.Background()

	res.fail(errors.New("connection refused"))
	if _, err := s.Create(ctx, itemDraft{Name: "x"}); err == nil {
		t.Fatal("Create() error = nil, want error")
	}
	st := s.State()
	if got := keys(st.Items); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Items after rejected create = %v, want [a]", got)
	}
	if st.Error != "Failed to create item" {
		t.Errorf("Error = %q, want fallback", st.Error)
	}

	res.fail(nil)
	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if st := s.State(); st.Error != "" {
		t.Errorf("Error after successful list = %q, want empty", st.Error)
	}
}

func TestSlice_FailedListKeepsStaleItems(t *testing.T) {
	res := newItemResource(item{ID: "a"})
	s := loadedSlice(t, res)

	res.fail(&api.Error{Message: "dial tcp: connection refused"})
	if _, err := s.List(context.Background()); err == nil {
		t.Fatal("List() error = nil, want error")
	}

	st := s.State()
	if got := keys(st.Items); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Items = %v, want stale [a]", got)
	}
	if st.Error != "dial tcp: connection refused" {
		t.Errorf("Error = %q", st.Error)
	}
}

func TestSlice_GetSetsSelectedOnly(t *testing.T) {
	res := newItemResource(item{ID: "a", Name: "A"}, item{ID: "b", Name: "B"})
	s := NewSlice[item, itemDraft]("item", res)
	ctx := context.Background()

	if _, err := s.Get(ctx, "b"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	st := s.State()
	if st.Selected == nil || st.Selected.ID != "b" {
		t.Errorf("Selected = %+v, want b", st.Selected)
	}
	if len(st.Items) != 0 {
		t.Errorf("Items = %+v, want untouched", st.Items)
	}

	if _, err := s.Get(ctx, "zzz"); err == nil {
		t.Fatal("Get(missing) error = nil, want error")
	}
	st = s.State()
	if st.Error != "not found" || st.Selected == nil || st.Selected.ID != "b" {
		t.Errorf("after missing Get: Error = %q, Selected = %+v", st.Error, st.Selected)
	}

	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := s.Update(ctx, "b", itemDraft{Name: "B2"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if st := s.State(); st.Selected.Name != "B" {
		t.Errorf("Selected.Name = %q, want the independent B", st.Selected.Name)
	}

	s.ClearSelected()
	if st := s.State(); st.Selected != nil {
		t.Errorf("Selected after clear = %+v, want nil", st.Selected)
	}
}

func TestSlice_StateIsACopy(t *testing.T) {
	res := newItemResource(item{ID: "a", Name: "A"})
	s := loadedSlice(t, res)

	st := s.State()
	st.Items[0].Name = "mutated"

	if got := s.State().Items[0].Name; got != "A" {
		t.Errorf("Items[0].Name = %q, want A", got)
	}
}

func TestSlice_LoadingAndObservers(t *testing.T) {
	res := newItemResource(item{ID: "a"})
	s := NewSlice[item, itemDraft]("item", res)

	var loading []bool
	s.Subscribe(func(st State[item]) {
		loading = append(loading, st.Loading)
	})

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []bool{true, false}; !reflect.DeepEqual(loading, want) {
		t.Errorf("Loading transitions = %v, want %v", loading, want)
	}
}

func TestSlice_OnMutatedRunsOnlyAfterFulfilledMutations(t *testing.T) {
	res := newItemResource(item{ID: "a"})
	s := loadedSlice(t, res)
	ctx := context.Background()

	calls := 0
	s.OnMutated(func(context.Context) { calls++ })

	if _, err := s.Create(ctx, itemDraft{Name: "x"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Update(ctx, "a", itemDraft{Name: "y"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	res.fail(errors.New("boom"))
	_, _ = s.Create(ctx, itemDraft{Name: "z"})

	if calls != 3 {
		t.Errorf("OnMutated calls = %d, want 3", calls)
	}
}

func TestSlice_ConcurrentCreatesEachAppearOnce(t *testing.T) {
	res := newItemResource()
	s := NewSlice[item, itemDraft]("item", res)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, itemDraft{Name: "x"})
		}()
	}
	wg.Wait()

	st := s.State()
	if st.Loading {
		t.Error("Loading = true after all operations settled")
	}
	seen := map[string]int{}
	for _, it := range st.Items {
		seen[it.ID]++
	}
	if len(seen) != 20 {
		t.Errorf("distinct items = %d, want 20", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("item %s appears %d times", id, n)
		}
	}
}
