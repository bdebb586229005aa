package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kailas-cloud/strdex/internal/domain"
	dombatch "github.com/kailas-cloud/strdex/internal/domain/batch"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/metrics"
)

// Defaults for batch processing.
const (
	DefaultMaxSize = 100
	DefaultWorkers = 8
)

// Service creates strings in bulk with per-item results. Property analysis
// fans out over a worker pool; inserts run in input order.
type Service struct {
	repo    RecordCreator
	pool    *ants.Pool
	maxSize int
	now     func() time.Time
}

// New creates a batch service backed by a pool of the given size.
func New(repo RecordCreator, workers int) (*Service, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Service{repo: repo, pool: pool, maxSize: DefaultMaxSize, now: time.Now}, nil
}

// WithMaxSize configures the maximum number of values per batch.
func (s *Service) WithMaxSize(size int) *Service {
	if size > 0 {
		s.maxSize = size
	}
	return s
}

// WithClock overrides the creation timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Release stops the worker pool.
func (s *Service) Release() {
	s.pool.Release()
}

// Create analyzes and stores values. The whole batch is rejected with
// domain.ErrBatchTooLarge when it exceeds the configured size; otherwise
// each value gets its own result.
func (s *Service) Create(ctx context.Context, values []string) ([]dombatch.Result, error) {
	if len(values) > s.maxSize {
		return nil, fmt.Errorf("batch of %d exceeds %d: %w", len(values), s.maxSize, domain.ErrBatchTooLarge)
	}

	recs := s.analyze(values)

	results := make([]dombatch.Result, len(values))
	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			results[i] = dombatch.NewError(values[i], err)
			continue
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			metrics.RecordsCreatedTotal.WithLabelValues(createStatus(err)).Inc()
			results[i] = dombatch.NewError(values[i], err)
			continue
		}
		metrics.RecordsCreatedTotal.WithLabelValues("created").Inc()
		results[i] = dombatch.NewCreated(rec)
	}
	return results, nil
}

func (s *Service) analyze(values []string) []record.Record {
	now := s.now()
	recs := make([]record.Record, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			recs[i] = record.New(v, now)
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool closed or saturated in non-blocking mode.
			task()
		}
	}
	wg.Wait()
	return recs
}

func createStatus(err error) string {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return "exists"
	}
	return "error"
}
