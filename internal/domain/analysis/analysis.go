// Package analysis computes the derived properties of a stored string.
// All functions are pure and single-pass over their input.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Properties holds the analytic properties of a string value.
type Properties struct {
	Length             int
	IsPalindrome       bool
	UniqueCharacters   int
	WordCount          int
	SHA256             string
	CharacterFrequency map[string]int
}

// Analyze computes every property of value.
func Analyze(value string) Properties {
	freq := CharacterFrequency(value)
	return Properties{
		Length:             Length(value),
		IsPalindrome:       IsPalindrome(value),
		UniqueCharacters:   UniqueCharacters(value),
		WordCount:          WordCount(value),
		SHA256:             SHA256(value),
		CharacterFrequency: freq,
	}
}

// Length returns the number of characters (code points) in value.
func Length(value string) int {
	return utf8.RuneCountInString(value)
}

// IsPalindrome reports whether value reads the same in both directions,
// ignoring case and surrounding whitespace.
func IsPalindrome(value string) bool {
	folded := []rune(cases.Fold().String(strings.TrimSpace(value)))
	for i, j := 0, len(folded)-1; i < j; i, j = i+1, j-1 {
		if folded[i] != folded[j] {
			return false
		}
	}
	return true
}

// UniqueCharacters counts distinct code points.
func UniqueCharacters(value string) int {
	seen := make(map[rune]struct{})
	for _, r := range value {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// WordCount counts whitespace-delimited words.
func WordCount(value string) int {
	return len(strings.Fields(value))
}

// SHA256 returns the hex-encoded SHA-256 digest of the UTF-8 bytes of value.
func SHA256(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// CharacterFrequency maps each character to its occurrence count.
func CharacterFrequency(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
