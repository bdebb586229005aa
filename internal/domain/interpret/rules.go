package interpret

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/optional"
)

// MaxNumber is the largest length or count accepted from free text.
const MaxNumber = math.MaxInt32

// Pattern fragments matching any Unicode whitespace and any decimal digit,
// not just their ASCII forms.
const (
	ws     = `[\s\x{0b}\p{Z}\x{85}\x{1c}-\x{1f}]+`
	digits = `(\p{Nd}+)`
)

// capture is what a matcher pulls out of the normalized text.
type capture struct {
	n    int
	char string
}

// rule is one recognizer: match inspects the text, merge folds the capture
// into the fields accumulated so far.
type rule struct {
	name  string
	match func(text string) (capture, bool, error)
	merge func(f *filter.Fields, c capture)
}

// rules run strictly in this order; later entries overwrite or merge into
// fields set by earlier ones.
var rules = []rule{
	{
		name:  "palindrome",
		match: substring("palindrom"),
		merge: func(f *filter.Fields, _ capture) { f.IsPalindrome = optional.Of(true) },
	},
	{
		name:  "single_word",
		match: substring("single word", "one word"),
		merge: func(f *filter.Fields, _ capture) { f.WordCount = optional.Of(1) },
	},
	{
		name:  "longer_than",
		match: number(`longer than` + ws + digits + ws + `character`),
		merge: func(f *filter.Fields, c capture) { f.MinLength = optional.Of(c.n + 1) },
	},
	{
		name:  "at_least",
		match: number(`at least` + ws + digits + ws + `character`),
		merge: func(f *filter.Fields, c capture) {
			f.MinLength = optional.Of(max(c.n, f.MinLength.OrElse(0)))
		},
	},
	{
		name:  "shorter_than",
		match: number(`shorter than` + ws + digits + ws + `character`),
		merge: func(f *filter.Fields, c capture) { f.MaxLength = optional.Of(c.n - 1) },
	},
	{
		name:  "at_most",
		match: number(`(?:at most|no more than)` + ws + digits + ws + `character`),
		merge: func(f *filter.Fields, c capture) {
			f.MaxLength = optional.Of(min(c.n, f.MaxLength.OrElse(c.n)))
		},
	},
	{
		name:  "letter",
		match: letter(`(?:letter|character)` + ws + `([a-z])`),
		merge: setCharacter,
	},
	{
		name:  "first_vowel",
		match: substring("first vowel"),
		merge: func(f *filter.Fields, _ capture) { f.ContainsCharacter = optional.Of("a") },
	},
	{
		name:  "contains_letter",
		match: letter(`contain(?:ing)? the letter` + ws + `([a-z])`),
		merge: setCharacter,
	},
}

func setCharacter(f *filter.Fields, c capture) {
	f.ContainsCharacter = optional.Of(c.char)
}

func substring(needles ...string) func(string) (capture, bool, error) {
	return func(text string) (capture, bool, error) {
		for _, n := range needles {
			if strings.Contains(text, n) {
				return capture{}, true, nil
			}
		}
		return capture{}, false, nil
	}
}

func number(pattern string) func(string) (capture, bool, error) {
	re := regexp.MustCompile(pattern)
	return func(text string) (capture, bool, error) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return capture{}, false, nil
		}
		n, ok := parseDigits(m[1])
		if !ok {
			return capture{}, false, domain.NewValidationError("", "number "+m[1]+" is out of range")
		}
		return capture{n: n}, true, nil
	}
}

func letter(pattern string) func(string) (capture, bool, error) {
	re := regexp.MustCompile(pattern)
	return func(text string) (capture, bool, error) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return capture{}, false, nil
		}
		return capture{char: m[1]}, true, nil
	}
}

// parseDigits converts a run of Unicode decimal digits to an int, failing
// above MaxNumber.
func parseDigits(s string) (int, bool) {
	n := 0
	for _, r := range s {
		n = n*10 + digitValue(r)
		if n > MaxNumber {
			return 0, false
		}
	}
	return n, true
}

// digitValue returns the value of a decimal digit rune. Nd characters come in
// contiguous runs of whole 0-9 sequences, so the offset from the start of the
// run gives the value.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}
