package batch

import (
	"context"

	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// RecordCreator stores a single record.
type RecordCreator interface {
	Create(ctx context.Context, rec record.Record) error
}
