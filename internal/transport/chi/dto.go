package chi

import (
	"time"

	dombatch "github.com/kailas-cloud/strdex/internal/domain/batch"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/interpret"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// ErrorResponseCode is a machine-readable error category.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         ErrorResponseCode = "bad_request"
	CodeInvalidType        ErrorResponseCode = "invalid_type"
	CodeValidationFailed   ErrorResponseCode = "validation_failed"
	CodeNotFound           ErrorResponseCode = "not_found"
	CodeAlreadyExists      ErrorResponseCode = "already_exists"
	CodeUnparseableQuery   ErrorResponseCode = "unparseable_query"
	CodeConflictingFilters ErrorResponseCode = "conflicting_filters"
	CodeUnauthorized       ErrorResponseCode = "unauthorized"
	CodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
}

// Properties mirrors analysis.Properties on the wire.
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// StringResource is a stored string with its properties.
type StringResource struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Filters echoes a filter set; absent predicates are omitted.
type Filters struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// StringsListResponse is returned by GET /strings.
type StringsListResponse struct {
	Data           []StringResource `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied *Filters         `json:"filters_applied"`
}

// InterpretedQuery echoes a free-text query and what it was understood as.
type InterpretedQuery struct {
	Original      string  `json:"original"`
	ParsedFilters Filters `json:"parsed_filters"`
}

// NaturalLanguageResponse is returned by GET /strings/filter-by-natural-language.
type NaturalLanguageResponse struct {
	Data             []StringResource `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}

// BatchCreateRequest is the body of POST /strings/batch.
type BatchCreateRequest struct {
	Values []string `json:"values"`
}

// BatchResultItem is the outcome of one batch value.
type BatchResultItem struct {
	Value  string          `json:"value"`
	Status string          `json:"status"`
	Data   *StringResource `json:"data,omitempty"`
	Error  *ErrorResponse  `json:"error,omitempty"`
}

// BatchCreateResponse is returned by POST /strings/batch.
type BatchCreateResponse struct {
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// HealthResponse is returned by GET / and GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func resourceFromRecord(rec record.Record) StringResource {
	p := rec.Properties()
	return StringResource{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: Properties{
			Length:                p.Length,
			IsPalindrome:          p.IsPalindrome,
			UniqueCharacters:      p.UniqueCharacters,
			WordCount:             p.WordCount,
			SHA256Hash:            p.SHA256,
			CharacterFrequencyMap: p.CharacterFrequency,
		},
		CreatedAt: rec.CreatedAt(),
	}
}

func resourcesFromRecords(recs []record.Record) []StringResource {
	out := make([]StringResource, len(recs))
	for i, rec := range recs {
		out[i] = resourceFromRecord(rec)
	}
	return out
}

func filtersFromSet(s filter.Set) Filters {
	return Filters{
		IsPalindrome:      s.IsPalindrome().Ptr(),
		MinLength:         s.MinLength().Ptr(),
		MaxLength:         s.MaxLength().Ptr(),
		WordCount:         s.WordCount().Ptr(),
		ContainsCharacter: s.ContainsCharacter().Ptr(),
	}
}

func interpretedQuery(i interpret.Interpretation) InterpretedQuery {
	return InterpretedQuery{
		Original:      i.Original(),
		ParsedFilters: filtersFromSet(i.Filters()),
	}
}

func batchItemFromResult(r dombatch.Result) BatchResultItem {
	item := BatchResultItem{Value: r.Value(), Status: string(r.Status())}
	if r.Status() == dombatch.StatusCreated {
		res := resourceFromRecord(r.Record())
		item.Data = &res
		return item
	}
	code, msg := batchErrorOf(r.Err())
	item.Error = &ErrorResponse{Code: code, Message: msg}
	return item
}
