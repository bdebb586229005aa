// Package interpret turns a free-text phrase into filter predicates using a
// fixed, ordered list of literal and pattern recognizers over lowercase text.
// It is not a grammar: phrase order in the input never changes precedence.
package interpret

import (
	"strings"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
)

// Extract scans text against every rule and returns the raw predicates.
// Cross-field consistency is not checked here; see filter.New.
func Extract(text string) (filter.Fields, error) {
	f, _, err := Trace(text)
	return f, err
}

// Trace is Extract that also reports the names of the rules that fired, in order.
func Trace(text string) (filter.Fields, []string, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return filter.Fields{}, nil, domain.NewParseError("empty query")
	}

	var (
		f     filter.Fields
		fired []string
	)
	for _, r := range rules {
		c, ok, err := r.match(normalized)
		if err != nil {
			return filter.Fields{}, nil, err
		}
		if !ok {
			continue
		}
		r.merge(&f, c)
		fired = append(fired, r.name)
	}

	if len(fired) == 0 {
		return filter.Fields{}, nil, domain.NewParseError("no recognizable criteria")
	}
	return f, fired, nil
}

// Interpretation pairs the original query with the filter set derived from it.
type Interpretation struct {
	original string
	filters  filter.Set
}

// NewInterpretation creates an Interpretation.
func NewInterpretation(original string, filters filter.Set) Interpretation {
	return Interpretation{original: original, filters: filters}
}

// Original returns the query exactly as the caller supplied it.
func (i Interpretation) Original() string { return i.original }

// Filters returns the interpreted filter set.
func (i Interpretation) Filters() filter.Set { return i.filters }

// Parse extracts and assembles text into an Interpretation.
func Parse(text string) (Interpretation, error) {
	f, err := Extract(text)
	if err != nil {
		return Interpretation{}, err
	}
	set, err := filter.New(f)
	if err != nil {
		return Interpretation{}, err
	}
	return NewInterpretation(text, set), nil
}
