package strdex

import (
	"time"

	"github.com/kailas-cloud/strdex/internal/domain/batch"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/optional"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

// Properties are the facts computed for a stored string.
type Properties struct {
	Length             int
	IsPalindrome       bool
	UniqueCharacters   int
	WordCount          int
	SHA256             string
	CharacterFrequency map[string]int
}

// Record is a stored string with its properties.
type Record struct {
	ID         string
	Value      string
	Properties Properties
	CreatedAt  time.Time
}

// Filters narrows List results. Nil fields are unconstrained.
type Filters struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter *string
}

// Interpretation is the filter set a natural language query resolved to.
type Interpretation struct {
	Original string
	Filters  Filters
}

// BatchItem is the outcome of one value passed to AddBatch.
// Err is nil and Record is set when the value was stored.
type BatchItem struct {
	Value  string
	Record *Record
	Err    error
}

func recordFromDomain(r record.Record) Record {
	p := r.Properties()
	return Record{
		ID:    r.ID(),
		Value: r.Value(),
		Properties: Properties{
			Length:             p.Length,
			IsPalindrome:       p.IsPalindrome,
			UniqueCharacters:   p.UniqueCharacters,
			WordCount:          p.WordCount,
			SHA256:             p.SHA256,
			CharacterFrequency: p.CharacterFrequency,
		},
		CreatedAt: r.CreatedAt(),
	}
}

func recordsFromDomain(recs []record.Record) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = recordFromDomain(r)
	}
	return out
}

func (f Filters) toDomain() filter.Fields {
	return filter.Fields{
		IsPalindrome:      optional.FromPtr(f.IsPalindrome),
		MinLength:         optional.FromPtr(f.MinLength),
		MaxLength:         optional.FromPtr(f.MaxLength),
		WordCount:         optional.FromPtr(f.WordCount),
		ContainsCharacter: optional.FromPtr(f.ContainsCharacter),
	}
}

func filtersFromDomain(s filter.Set) Filters {
	return Filters{
		IsPalindrome:      s.IsPalindrome().Ptr(),
		MinLength:         s.MinLength().Ptr(),
		MaxLength:         s.MaxLength().Ptr(),
		WordCount:         s.WordCount().Ptr(),
		ContainsCharacter: s.ContainsCharacter().Ptr(),
	}
}

func batchItemFromDomain(r batch.Result) BatchItem {
	item := BatchItem{Value: r.Value(), Err: r.Err()}
	if r.Status() == batch.StatusCreated {
		rec := recordFromDomain(r.Record())
		item.Record = &rec
	}
	return item
}
