package query

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/interpret"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/metrics"
)

// Service runs the free-text and structured filter paths over the record store.
type Service struct {
	records Snapshotter
}

// New creates a query service.
func New(records Snapshotter) *Service {
	return &Service{records: records}
}

// Interpret turns free text into a filter set and returns the matching records.
// Nothing is read from the store unless the text yields a valid set.
func (s *Service) Interpret(
	ctx context.Context, text string,
) (interpret.Interpretation, []record.Record, error) {
	log := logger.FromContext(ctx)

	fields, fired, err := interpret.Trace(text)
	if err != nil {
		observe(metrics.PathNaturalQuery, err)
		log.Debug("query not understood", zap.String("query", text), zap.Error(err))
		return interpret.Interpretation{}, nil, fmt.Errorf("interpret: %w", err)
	}
	for _, name := range fired {
		metrics.QueryRulesFiredTotal.WithLabelValues(name).Inc()
	}
	log.Debug("query rules fired", zap.String("query", text), zap.Strings("rules", fired))

	set, err := filter.New(fields)
	if err != nil {
		observe(metrics.PathNaturalQuery, err)
		log.Warn("interpreted filters rejected", zap.String("query", text), zap.Error(err))
		return interpret.Interpretation{}, nil, fmt.Errorf("assemble filters: %w", err)
	}

	matched, err := s.evaluate(ctx, set)
	if err != nil {
		observe(metrics.PathNaturalQuery, err)
		return interpret.Interpretation{}, nil, err
	}
	observe(metrics.PathNaturalQuery, nil)
	return interpret.NewInterpretation(text, set), matched, nil
}

// Apply validates caller-supplied filters and returns the matching records.
// The returned set is nil when no predicate was supplied.
func (s *Service) Apply(ctx context.Context, fields filter.Fields) (*filter.Set, []record.Record, error) {
	set, err := filter.New(fields)
	if err != nil {
		observe(metrics.PathStructured, err)
		logger.FromContext(ctx).Warn("filters rejected", zap.Error(err))
		return nil, nil, fmt.Errorf("assemble filters: %w", err)
	}

	matched, err := s.evaluate(ctx, set)
	if err != nil {
		observe(metrics.PathStructured, err)
		return nil, nil, err
	}
	observe(metrics.PathStructured, nil)

	if set.IsEmpty() {
		return nil, matched, nil
	}
	return &set, matched, nil
}

func (s *Service) evaluate(ctx context.Context, set filter.Set) ([]record.Record, error) {
	all, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot records: %w", err)
	}
	matched := filter.Evaluate(set, all)
	metrics.QueryMatches.Observe(float64(len(matched)))
	return matched, nil
}

func observe(path string, err error) {
	metrics.QueryRequestsTotal.WithLabelValues(path, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUnparseableQuery):
		return "unparseable"
	case errors.Is(err, domain.ErrInvalidFilter):
		return "invalid"
	case errors.Is(err, domain.ErrConflictingFilters):
		return "conflict"
	default:
		return "error"
	}
}
