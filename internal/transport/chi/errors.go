package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/logger"
)

// Client-facing messages.
const (
	msgNotFound          = "String does not exist in the system"
	msgAlreadyExists     = "String already exists in the system"
	msgMissingValue      = `Invalid request body or missing "value" field`
	msgValueNotString    = `Invalid data type for "value" (must be string)`
	msgInvalidParams     = "Invalid query parameter values or types"
	msgUnparseableQuery  = "Unable to parse natural language query"
	msgConflictingFilter = "Query parsed but resulted in conflicting filters"
	msgBatchTooLarge     = "Batch exceeds the maximum number of values"
	msgInternal          = "internal error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeErrorDetail(w, status, code, msg, detailOf(err))
		return true
	}
}

// commonHandlers apply to every route.
var commonHandlers = []errorHandler{
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound, msgNotFound),
	sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists, msgAlreadyExists),
	sentinelHandler(domain.ErrBatchTooLarge, http.StatusBadRequest, CodeValidationFailed, msgBatchTooLarge),
}

// structuredHandlers report every filter problem on GET /strings as a bad request.
var structuredHandlers = []errorHandler{
	sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, CodeValidationFailed, msgInvalidParams),
	sentinelHandler(domain.ErrConflictingFilters, http.StatusBadRequest, CodeConflictingFilters, msgInvalidParams),
}

// naturalHandlers separate text that was not understood (400) from text
// that was understood but is unsatisfiable or out of range (422).
var naturalHandlers = []errorHandler{
	sentinelHandler(domain.ErrUnparseableQuery, http.StatusBadRequest, CodeUnparseableQuery, msgUnparseableQuery),
	sentinelHandler(domain.ErrInvalidFilter, http.StatusUnprocessableEntity, CodeValidationFailed, msgConflictingFilter),
	sentinelHandler(domain.ErrConflictingFilters,
		http.StatusUnprocessableEntity, CodeConflictingFilters, msgConflictingFilter),
}

// detailOf returns the reason carried by a typed query error, if any.
func detailOf(err error) string {
	var (
		pe *domain.ParseError
		ve *domain.ValidationError
		ce *domain.ConflictError
	)
	switch {
	case errors.As(err, &pe):
		return pe.Reason
	case errors.As(err, &ve):
		if ve.Field == "" {
			return ve.Reason
		}
		return ve.Field + " " + ve.Reason
	case errors.As(err, &ce):
		return ce.Reason
	}
	return ""
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, handlers ...errorHandler) {
	log := logger.FromContext(r.Context())
	for _, h := range append(handlers, commonHandlers...) {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, msgInternal)
}

// batchErrorOf maps a per-item batch failure to a code and safe message.
func batchErrorOf(err error) (ErrorResponseCode, string) {
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		return CodeAlreadyExists, msgAlreadyExists
	case errors.Is(err, domain.ErrInvalidValue):
		return CodeInvalidType, msgValueNotString
	default:
		return CodeInternalError, msgInternal
	}
}
