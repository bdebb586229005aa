// Package codec converts records to and from their stored JSON form.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

type jsonProperties struct {
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	SHA256             string         `json:"sha256_hash"`
	CharacterFrequency map[string]int `json:"character_frequency_map"`
}

type jsonRecord struct {
	ID         string         `json:"id"`
	Value      string         `json:"value"`
	Properties jsonProperties `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Encode serializes a record.
func Encode(rec record.Record) ([]byte, error) {
	p := rec.Properties()
	data, err := json.Marshal(jsonRecord{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: jsonProperties{
			Length:             p.Length,
			IsPalindrome:       p.IsPalindrome,
			UniqueCharacters:   p.UniqueCharacters,
			WordCount:          p.WordCount,
			SHA256:             p.SHA256,
			CharacterFrequency: p.CharacterFrequency,
		},
		CreatedAt: rec.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

// Decode hydrates a record without recomputing its properties.
func Decode(data []byte) (record.Record, error) {
	var jr jsonRecord
	if err := json.Unmarshal(data, &jr); err != nil {
		return record.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	p := jr.Properties
	return record.Reconstruct(jr.ID, jr.Value, analysis.Properties{
		Length:             p.Length,
		IsPalindrome:       p.IsPalindrome,
		UniqueCharacters:   p.UniqueCharacters,
		WordCount:          p.WordCount,
		SHA256:             p.SHA256,
		CharacterFrequency: p.CharacterFrequency,
	}, jr.CreatedAt), nil
}
