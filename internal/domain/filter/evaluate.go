package filter

import "strings"

// Candidate is anything the evaluator can test against a Set.
type Candidate interface {
	Text() string
	Length() int
	IsPalindrome() bool
	WordCount() int
}

// Matches reports whether c satisfies every present predicate.
func (s Set) Matches(c Candidate) bool {
	f := s.fields
	if want, ok := f.IsPalindrome.Get(); ok && c.IsPalindrome() != want {
		return false
	}
	if n, ok := f.MinLength.Get(); ok && c.Length() < n {
		return false
	}
	if n, ok := f.MaxLength.Get(); ok && c.Length() > n {
		return false
	}
	if n, ok := f.WordCount.Get(); ok && c.WordCount() != n {
		return false
	}
	if ch, ok := f.ContainsCharacter.Get(); ok &&
		!strings.Contains(strings.ToLower(c.Text()), strings.ToLower(ch)) {
		return false
	}
	return true
}

// Evaluate returns the items matching s, preserving input order.
// The result is never nil.
func Evaluate[T Candidate](s Set, items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if s.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}
