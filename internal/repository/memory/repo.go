package memory

import (
	"context"
	"sync"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// Repo keeps records in process memory. Safe for concurrent use; readers get
// snapshots that later writes do not affect.
type Repo struct {
	mu      sync.RWMutex
	byValue map[string]record.Record
	order   []string
}

// New creates an empty in-memory repository.
func New() *Repo {
	return &Repo{byValue: make(map[string]record.Record)}
}

// Ping always succeeds.
func (r *Repo) Ping(_ context.Context) error { return nil }

// Create stores rec unless its value is already present.
func (r *Repo) Create(_ context.Context, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byValue[rec.Value()]; ok {
		return domain.ErrAlreadyExists
	}
	r.byValue[rec.Value()] = rec
	r.order = append(r.order, rec.Value())
	return nil
}

// Get returns the record for an exact value.
func (r *Repo) Get(_ context.Context, value string) (record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byValue[value]
	if !ok {
		return record.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

// Delete removes the record for an exact value.
func (r *Repo) Delete(_ context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byValue[value]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byValue, value)
	for i, v := range r.order {
		if v == value {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every record in insertion order.
func (r *Repo) All(_ context.Context) ([]record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]record.Record, 0, len(r.order))
	for _, v := range r.order {
		out = append(out, r.byValue[v])
	}
	return out, nil
}
