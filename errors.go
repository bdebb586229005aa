package strdex

import "github.com/kailas-cloud/strdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrAlreadyExists      = domain.ErrAlreadyExists
	ErrBatchTooLarge      = domain.ErrBatchTooLarge
	ErrUnparseableQuery   = domain.ErrUnparseableQuery
	ErrInvalidFilter      = domain.ErrInvalidFilter
	ErrConflictingFilters = domain.ErrConflictingFilters
)
