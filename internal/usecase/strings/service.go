// Package strings implements string resource CRUD.
package strings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/metrics"
)

// Service analyzes and stores strings.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a strings service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the creation timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Create analyzes value and stores it. Returns domain.ErrAlreadyExists on duplicates.
func (s *Service) Create(ctx context.Context, value string) (record.Record, error) {
	rec := record.New(value, s.now())

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			metrics.RecordsCreatedTotal.WithLabelValues("exists").Inc()
			return record.Record{}, fmt.Errorf("create %q: %w", value, err)
		}
		metrics.RecordsCreatedTotal.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Error("record create failed", zap.String("id", rec.ID()), zap.Error(err))
		return record.Record{}, fmt.Errorf("create record: %w", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("created").Inc()
	return rec, nil
}

// Get returns the record for an exact value.
func (s *Service) Get(ctx context.Context, value string) (record.Record, error) {
	rec, err := s.repo.Get(ctx, value)
	if err != nil {
		return record.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Delete removes the record for an exact value.
func (s *Service) Delete(ctx context.Context, value string) error {
	if err := s.repo.Delete(ctx, value); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// List returns every record in insertion order.
func (s *Service) List(ctx context.Context) ([]record.Record, error) {
	recs, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}
