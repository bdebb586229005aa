package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/strdex/internal/domain"
	dombatch "github.com/kailas-cloud/strdex/internal/domain/batch"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// --- Mocks ---

type mockCreator struct {
	mu       sync.Mutex
	seen     map[string]bool
	order    []string
	createFn func(rec record.Record) error
}

func newMockCreator() *mockCreator {
	return &mockCreator{seen: make(map[string]bool)}
}

func (m *mockCreator) Create(_ context.Context, rec record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createFn != nil {
		if err := m.createFn(rec); err != nil {
			return err
		}
	}
	if m.seen[rec.Value()] {
		return domain.ErrAlreadyExists
	}
	m.seen[rec.Value()] = true
	m.order = append(m.order, rec.Value())
	return nil
}

func newService(t *testing.T, repo RecordCreator) *Service {
	t.Helper()
	svc, err := New(repo, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(svc.Release)
	return svc
}

// --- Tests ---

func TestCreate_AllSucceed(t *testing.T) {
	repo := newMockCreator()
	now := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	svc := newService(t, repo).WithClock(func() time.Time { return now })

	values := make([]string, 25)
	for i := range values {
		values[i] = fmt.Sprintf("value-%02d", i)
	}

	results, err := svc.Create(context.Background(), values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(values) {
		t.Fatalf("expected %d results, got %d", len(values), len(results))
	}
	for i, r := range results {
		if r.Status() != dombatch.StatusCreated {
			t.Errorf("item %d: status %q, err %v", i, r.Status(), r.Err())
		}
		if r.Value() != values[i] {
			t.Errorf("item %d: value %q, want %q", i, r.Value(), values[i])
		}
		if !r.Record().CreatedAt().Equal(now) {
			t.Errorf("item %d: created_at %v", i, r.Record().CreatedAt())
		}
	}
	for i, v := range repo.order {
		if v != values[i] {
			t.Fatalf("insert order broken at %d: %q", i, v)
		}
	}
}

func TestCreate_DuplicateInBatch(t *testing.T) {
	svc := newService(t, newMockCreator())

	results, err := svc.Create(context.Background(), []string{"x", "y", "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Status() != dombatch.StatusCreated || results[1].Status() != dombatch.StatusCreated {
		t.Error("first occurrences should be created")
	}
	if results[2].Status() != dombatch.StatusError || !errors.Is(results[2].Err(), domain.ErrAlreadyExists) {
		t.Errorf("second occurrence: status %q err %v", results[2].Status(), results[2].Err())
	}
}

func TestCreate_PerItemStoreError(t *testing.T) {
	repo := newMockCreator()
	repo.createFn = func(rec record.Record) error {
		if rec.Value() == "bad" {
			return errors.New("write failed")
		}
		return nil
	}
	svc := newService(t, repo)

	results, err := svc.Create(context.Background(), []string{"good", "bad", "also good"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []dombatch.ItemStatus{dombatch.StatusCreated, dombatch.StatusError, dombatch.StatusCreated}
	for i, r := range results {
		if r.Status() != want[i] {
			t.Errorf("item %d: status %q, want %q", i, r.Status(), want[i])
		}
	}
}

func TestCreate_TooLarge(t *testing.T) {
	svc := newService(t, newMockCreator()).WithMaxSize(2)

	_, err := svc.Create(context.Background(), []string{"a", "b", "c"})
	if !errors.Is(err, domain.ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
}

func TestCreate_CanceledContext(t *testing.T) {
	repo := newMockCreator()
	svc := newService(t, repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := svc.Create(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if !errors.Is(r.Err(), context.Canceled) {
			t.Errorf("item %d: expected context.Canceled, got %v", i, r.Err())
		}
	}
	if len(repo.order) != 0 {
		t.Error("nothing should be stored after cancel")
	}
}

func TestCreate_AfterRelease(t *testing.T) {
	svc, err := New(newMockCreator(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	svc.Release()

	results, err := svc.Create(context.Background(), []string{"still works"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Status() != dombatch.StatusCreated {
		t.Errorf("status %q, err %v", results[0].Status(), results[0].Err())
	}
}
