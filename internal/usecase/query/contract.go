package query

import (
	"context"

	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// Snapshotter returns a consistent, insertion-ordered view of all records.
type Snapshotter interface {
	All(ctx context.Context) ([]record.Record, error)
}
