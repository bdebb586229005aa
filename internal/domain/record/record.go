package record

import (
	"maps"
	"time"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
)

// Record is a stored string together with its precomputed properties (immutable value object).
type Record struct {
	id        string
	value     string
	props     analysis.Properties
	createdAt time.Time
}

// New analyzes value and creates a Record. The ID is the SHA-256 of the value.
func New(value string, createdAt time.Time) Record {
	props := analysis.Analyze(value)
	return Record{id: props.SHA256, value: value, props: props, createdAt: createdAt.UTC()}
}

// Reconstruct creates a Record without recomputing properties (storage hydration).
func Reconstruct(id, value string, props analysis.Properties, createdAt time.Time) Record {
	props.CharacterFrequency = maps.Clone(props.CharacterFrequency)
	return Record{id: id, value: value, props: props, createdAt: createdAt}
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// Value returns the stored string.
func (r Record) Value() string { return r.value }

// Properties returns a copy of the analytic properties; the frequency map
// is cloned so callers cannot mutate the record.
func (r Record) Properties() analysis.Properties {
	p := r.props
	p.CharacterFrequency = maps.Clone(p.CharacterFrequency)
	return p
}

// CreatedAt returns the storage timestamp.
func (r Record) CreatedAt() time.Time { return r.createdAt }

// Text returns the stored string.
func (r Record) Text() string { return r.value }

// Length returns the character count.
func (r Record) Length() int { return r.props.Length }

// IsPalindrome reports the palindrome property.
func (r Record) IsPalindrome() bool { return r.props.IsPalindrome }

// WordCount returns the word count.
func (r Record) WordCount() int { return r.props.WordCount }
