package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dombatch "github.com/kailas-cloud/strdex/internal/domain/batch"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/optional"
	batchuc "github.com/kailas-cloud/strdex/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/strdex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/strdex/internal/usecase/query"
	strsvc "github.com/kailas-cloud/strdex/internal/usecase/strings"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server exposes the strings API over HTTP.
type Server struct {
	strings *strsvc.Service
	batch   *batchuc.Service
	query   *queryuc.Service
	health  *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(
	strings *strsvc.Service,
	batch *batchuc.Service,
	query *queryuc.Service,
	health *healthuc.Service,
) *Server {
	return &Server{strings: strings, batch: batch, query: query, health: health}
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.HealthCheck)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/strings", func(r chi.Router) {
		r.Post("/", s.CreateString)
		r.Get("/", s.ListStrings)
		r.Post("/batch", s.BatchCreate)
		r.Get("/filter-by-natural-language", s.FilterByNaturalLanguage)
		r.Get("/{value}", s.GetString)
		r.Delete("/{value}", s.DeleteString)
	})
}

// CreateString handles POST /strings.
func (s *Server) CreateString(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, msgMissingValue)
		return
	}
	raw, ok := body["value"]
	if !ok {
		writeError(w, http.StatusBadRequest, CodeBadRequest, msgMissingValue)
		return
	}
	value, ok := decodeString(raw)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, CodeInvalidType, msgValueNotString)
		return
	}

	rec, err := s.strings.Create(r.Context(), value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resourceFromRecord(rec))
}

// BatchCreate handles POST /strings/batch.
func (s *Server) BatchCreate(w http.ResponseWriter, r *http.Request) {
	var req BatchCreateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorDetail(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body", err.Error())
		return
	}
	if len(req.Values) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, `"values" must contain at least one string`)
		return
	}

	results, err := s.batch.Create(r.Context(), req.Values)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := BatchCreateResponse{Items: make([]BatchResultItem, len(results))}
	for i, res := range results {
		resp.Items[i] = batchItemFromResult(res)
		if res.Status() == dombatch.StatusCreated {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetString handles GET /strings/{value}.
func (s *Server) GetString(w http.ResponseWriter, r *http.Request) {
	rec, err := s.strings.Get(r.Context(), pathValue(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resourceFromRecord(rec))
}

// DeleteString handles DELETE /strings/{value}.
func (s *Server) DeleteString(w http.ResponseWriter, r *http.Request) {
	if err := s.strings.Delete(r.Context(), pathValue(r)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListStrings handles GET /strings with optional structured filters.
func (s *Server) ListStrings(w http.ResponseWriter, r *http.Request) {
	fields, err := bindFilterParams(r.URL.Query())
	if err != nil {
		writeErrorDetail(w, http.StatusBadRequest, CodeValidationFailed, msgInvalidParams, err.Error())
		return
	}

	set, matched, err := s.query.Apply(r.Context(), fields)
	if err != nil {
		s.handleDomainError(w, r, err, structuredHandlers...)
		return
	}

	resp := StringsListResponse{
		Data:  resourcesFromRecords(matched),
		Count: len(matched),
	}
	if set != nil {
		f := filtersFromSet(*set)
		resp.FiltersApplied = &f
	}
	writeJSON(w, http.StatusOK, resp)
}

// FilterByNaturalLanguage handles GET /strings/filter-by-natural-language.
func (s *Server) FilterByNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	var text string
	if err := runtime.BindQueryParameter("form", true, true, "query", r.URL.Query(), &text); err != nil {
		writeErrorDetail(w, http.StatusBadRequest, CodeBadRequest, msgUnparseableQuery, err.Error())
		return
	}

	interp, matched, err := s.query.Interpret(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, r, err, naturalHandlers...)
		return
	}

	writeJSON(w, http.StatusOK, NaturalLanguageResponse{
		Data:             resourcesFromRecords(matched),
		Count:            len(matched),
		InterpretedQuery: interpretedQuery(interp),
	})
}

// HealthCheck handles GET / and GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

var filterParams = map[string]struct{}{
	filter.FieldIsPalindrome:      {},
	filter.FieldMinLength:         {},
	filter.FieldMaxLength:         {},
	filter.FieldWordCount:         {},
	filter.FieldContainsCharacter: {},
}

// bindFilterParams binds the structured filter query parameters. Unknown
// parameters are rejected.
func bindFilterParams(q url.Values) (filter.Fields, error) {
	for name := range q {
		if _, ok := filterParams[name]; !ok {
			return filter.Fields{}, fmt.Errorf("unknown query parameter %q", name)
		}
	}

	var (
		isPalindrome      *bool
		minLength         *int
		maxLength         *int
		wordCount         *int
		containsCharacter *string
	)
	binds := []struct {
		name string
		dest any
	}{
		{filter.FieldIsPalindrome, &isPalindrome},
		{filter.FieldMinLength, &minLength},
		{filter.FieldMaxLength, &maxLength},
		{filter.FieldWordCount, &wordCount},
		{filter.FieldContainsCharacter, &containsCharacter},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return filter.Fields{}, fmt.Errorf("bind %s: %w", b.name, err)
		}
	}

	return filter.Fields{
		IsPalindrome:      optional.FromPtr(isPalindrome),
		MinLength:         optional.FromPtr(minLength),
		MaxLength:         optional.FromPtr(maxLength),
		WordCount:         optional.FromPtr(wordCount),
		ContainsCharacter: optional.FromPtr(containsCharacter),
	}, nil
}

// decodeString accepts only a JSON string; null and other types are rejected.
func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// pathValue returns the decoded {value} segment.
func pathValue(r *http.Request) string {
	v := chi.URLParam(r, "value")
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeErrorDetail(w, status, code, message, "")
}

func writeErrorDetail(w http.ResponseWriter, status int, code ErrorResponseCode, message, detail string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message, Detail: detail})
}
