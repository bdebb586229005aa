package batch

import "github.com/kailas-cloud/strdex/internal/domain/record"

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusCreated ItemStatus = "created"
	StatusError   ItemStatus = "error"
)

// Result is the outcome of storing one value in a batch.
type Result struct {
	value  string
	status ItemStatus
	rec    record.Record
	err    error
}

// NewCreated creates a successful batch result.
func NewCreated(rec record.Record) Result {
	return Result{value: rec.Value(), status: StatusCreated, rec: rec}
}

// NewError creates a failed batch result.
func NewError(value string, err error) Result {
	return Result{value: value, status: StatusError, err: err}
}

// Value returns the submitted string.
func (r Result) Value() string { return r.value }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Record returns the stored record; zero unless Status is StatusCreated.
func (r Result) Record() record.Record { return r.rec }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
