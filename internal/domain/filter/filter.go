package filter

import (
	"unicode/utf8"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/optional"
)

// Predicate field names as exposed to callers.
const (
	FieldIsPalindrome      = "is_palindrome"
	FieldMinLength         = "min_length"
	FieldMaxLength         = "max_length"
	FieldWordCount         = "word_count"
	FieldContainsCharacter = "contains_character"
)

// Fields is the raw, unvalidated predicate map produced by extraction
// or supplied directly by a caller.
type Fields struct {
	IsPalindrome      optional.Value[bool]
	MinLength         optional.Value[int]
	MaxLength         optional.Value[int]
	WordCount         optional.Value[int]
	ContainsCharacter optional.Value[string]
}

// IsEmpty reports whether no field is present.
func (f Fields) IsEmpty() bool {
	return !f.IsPalindrome.IsSet() &&
		!f.MinLength.IsSet() &&
		!f.MaxLength.IsSet() &&
		!f.WordCount.IsSet() &&
		!f.ContainsCharacter.IsSet()
}

// Set is a validated, internally consistent collection of optional predicates.
// The zero Set is the empty filter and matches everything.
type Set struct {
	fields Fields
}

// New validates f and creates a Set.
// Field-level violations yield *domain.ValidationError; min_length > max_length
// yields *domain.ConflictError.
func New(f Fields) (Set, error) {
	for _, lb := range []struct {
		name string
		v    optional.Value[int]
	}{
		{FieldMinLength, f.MinLength},
		{FieldMaxLength, f.MaxLength},
		{FieldWordCount, f.WordCount},
	} {
		if n, ok := lb.v.Get(); ok && n < 0 {
			return Set{}, domain.NewValidationError(lb.name, "must be non-negative")
		}
	}
	if c, ok := f.ContainsCharacter.Get(); ok && utf8.RuneCountInString(c) != 1 {
		return Set{}, domain.NewValidationError(FieldContainsCharacter, "must be exactly one character")
	}

	minLen, hasMin := f.MinLength.Get()
	maxLen, hasMax := f.MaxLength.Get()
	if hasMin && hasMax && minLen > maxLen {
		return Set{}, domain.NewConflictError("conflicting length bounds")
	}

	return Set{fields: f}, nil
}

// Fields returns the predicates of the set.
func (s Set) Fields() Fields { return s.fields }

// IsEmpty reports whether the set imposes no constraint.
func (s Set) IsEmpty() bool { return s.fields.IsEmpty() }

// IsPalindrome returns the palindrome predicate.
func (s Set) IsPalindrome() optional.Value[bool] { return s.fields.IsPalindrome }

// MinLength returns the inclusive lower length bound.
func (s Set) MinLength() optional.Value[int] { return s.fields.MinLength }

// MaxLength returns the inclusive upper length bound.
func (s Set) MaxLength() optional.Value[int] { return s.fields.MaxLength }

// WordCount returns the exact word count predicate.
func (s Set) WordCount() optional.Value[int] { return s.fields.WordCount }

// ContainsCharacter returns the required character.
func (s Set) ContainsCharacter() optional.Value[string] { return s.fields.ContainsCharacter }
