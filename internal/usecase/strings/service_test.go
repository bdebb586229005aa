package strings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// --- Mocks ---

type mockRepo struct {
	createFn func(ctx context.Context, rec record.Record) error
	getFn    func(ctx context.Context, value string) (record.Record, error)
	deleteFn func(ctx context.Context, value string) error
	allFn    func(ctx context.Context) ([]record.Record, error)
}

func (m *mockRepo) Create(ctx context.Context, rec record.Record) error {
	if m.createFn != nil {
		return m.createFn(ctx, rec)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, value string) (record.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, value)
	}
	return record.Record{}, domain.ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, value string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, value)
	}
	return nil
}

func (m *mockRepo) All(ctx context.Context) ([]record.Record, error) {
	if m.allFn != nil {
		return m.allFn(ctx)
	}
	return []record.Record{}, nil
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	var stored record.Record
	repo := &mockRepo{createFn: func(_ context.Context, rec record.Record) error {
		stored = rec
		return nil
	}}
	svc := New(repo).WithClock(func() time.Time { return fixedNow })

	rec, err := svc.Create(context.Background(), "Was it a car")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID() != rec.ID() {
		t.Error("returned record differs from stored record")
	}
	if !rec.CreatedAt().Equal(fixedNow) {
		t.Errorf("created_at = %v, want %v", rec.CreatedAt(), fixedNow)
	}
	if rec.WordCount() != 4 {
		t.Errorf("word_count = %d, want 4", rec.WordCount())
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo := &mockRepo{createFn: func(context.Context, record.Record) error {
		return domain.ErrAlreadyExists
	}}
	_, err := New(repo).Create(context.Background(), "dup")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_StoreError(t *testing.T) {
	repo := &mockRepo{createFn: func(context.Context, record.Record) error {
		return errors.New("timeout")
	}}
	_, err := New(repo).Create(context.Background(), "x")
	if err == nil || errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestGetDelete_NotFound(t *testing.T) {
	repo := &mockRepo{deleteFn: func(context.Context, string) error { return domain.ErrNotFound }}
	svc := New(repo)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	want := []record.Record{record.New("a", fixedNow), record.New("b", fixedNow)}
	repo := &mockRepo{allFn: func(context.Context) ([]record.Record, error) { return want, nil }}

	got, err := New(repo).List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Value() != "a" || got[1].Value() != "b" {
		t.Errorf("unexpected list: %v", got)
	}
}

func TestList_Error(t *testing.T) {
	repo := &mockRepo{allFn: func(context.Context) ([]record.Record, error) { return nil, errors.New("down") }}
	if _, err := New(repo).List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
