package strings

import (
	"context"

	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// Repository persists records keyed by their exact value.
type Repository interface {
	Create(ctx context.Context, rec record.Record) error
	Get(ctx context.Context, value string) (record.Record, error)
	Delete(ctx context.Context, value string) error
	All(ctx context.Context) ([]record.Record, error)
}
