package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/optional"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/metrics"
)

// --- Mocks ---

type mockSnapshotter struct {
	recs  []record.Record
	err   error
	calls int
}

func (m *mockSnapshotter) All(_ context.Context) ([]record.Record, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

func fixture(values ...string) *mockSnapshotter {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]record.Record, len(values))
	for i, v := range values {
		recs[i] = record.New(v, now)
	}
	return &mockSnapshotter{recs: recs}
}

func valuesOf(recs []record.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Value()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Interpret ---

func TestInterpret(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single word palindromes", "all single word palindromic strings", []string{"racecar", "level", "a"}},
		{"first vowel", "strings containing the first vowel", []string{"racecar", "a", "banana split"}},
		{"longer than", "strings longer than 6 characters", []string{"racecar", "hello world", "banana split"}},
		{"explicit letter", "strings containing the letter z", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := fixture("racecar", "hello world", "level", "a", "banana split")
			svc := New(snap)

			interp, got, err := svc.Interpret(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if interp.Original() != tc.query {
				t.Errorf("original = %q, want %q", interp.Original(), tc.query)
			}
			if got == nil {
				t.Fatal("result must be non-nil")
			}
			if !equal(valuesOf(got), tc.want) {
				t.Errorf("got %v, want %v", valuesOf(got), tc.want)
			}
		})
	}
}

func TestInterpret_Unparseable_DoesNotReadStore(t *testing.T) {
	snap := fixture("x")
	_, _, err := New(snap).Interpret(context.Background(), "show me everything")

	if !errors.Is(err, domain.ErrUnparseableQuery) {
		t.Fatalf("expected ErrUnparseableQuery, got %v", err)
	}
	if snap.calls != 0 {
		t.Errorf("store read %d times, want 0", snap.calls)
	}
}

func TestInterpret_Conflict(t *testing.T) {
	snap := fixture("x")
	before := testutil.ToFloat64(metrics.QueryRequestsTotal.WithLabelValues(metrics.PathNaturalQuery, "conflict"))

	_, _, err := New(snap).Interpret(context.Background(),
		"strings longer than 10 characters and shorter than 5 characters")

	if !errors.Is(err, domain.ErrConflictingFilters) {
		t.Fatalf("expected ErrConflictingFilters, got %v", err)
	}
	if snap.calls != 0 {
		t.Error("store must not be read on conflict")
	}
	after := testutil.ToFloat64(metrics.QueryRequestsTotal.WithLabelValues(metrics.PathNaturalQuery, "conflict"))
	if after-before != 1 {
		t.Errorf("conflict outcome counter delta = %f, want 1", after-before)
	}
}

func TestInterpret_RulesFiredMetric(t *testing.T) {
	before := testutil.ToFloat64(metrics.QueryRulesFiredTotal.WithLabelValues("single_word"))
	if _, _, err := New(fixture()).Interpret(context.Background(), "one word strings"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := testutil.ToFloat64(metrics.QueryRulesFiredTotal.WithLabelValues("single_word"))
	if after-before != 1 {
		t.Errorf("single_word counter delta = %f, want 1", after-before)
	}
}

func TestInterpret_StoreError(t *testing.T) {
	snap := &mockSnapshotter{err: errors.New("connection reset")}
	_, _, err := New(snap).Interpret(context.Background(), "palindromes")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrUnparseableQuery) || errors.Is(err, domain.ErrConflictingFilters) {
		t.Errorf("store failure must not be reported as a query error: %v", err)
	}
}

// --- Apply ---

func TestApply_Empty(t *testing.T) {
	snap := fixture("a", "bb")
	set, got, err := New(snap).Apply(context.Background(), filter.Fields{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set != nil {
		t.Errorf("expected nil set echo, got %+v", set)
	}
	if !equal(valuesOf(got), []string{"a", "bb"}) {
		t.Errorf("got %v", valuesOf(got))
	}
}

func TestApply_Filters(t *testing.T) {
	snap := fixture("racecar", "hello world", "Noon", "abc")
	set, got, err := New(snap).Apply(context.Background(), filter.Fields{
		IsPalindrome: optional.Of(true),
		MaxLength:    optional.Of(4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set == nil || !set.MaxLength().IsSet() {
		t.Fatalf("expected echoed set with max_length, got %+v", set)
	}
	if !equal(valuesOf(got), []string{"Noon"}) {
		t.Errorf("got %v, want [Noon]", valuesOf(got))
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields filter.Fields
		want   error
	}{
		{"min greater than max", filter.Fields{MinLength: optional.Of(5), MaxLength: optional.Of(2)}, domain.ErrConflictingFilters},
		{"negative word count", filter.Fields{WordCount: optional.Of(-1)}, domain.ErrInvalidFilter},
		{"multi-char contains", filter.Fields{ContainsCharacter: optional.Of("ab")}, domain.ErrInvalidFilter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := fixture("x")
			_, _, err := New(snap).Apply(context.Background(), tc.fields)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if snap.calls != 0 {
				t.Error("store must not be read for invalid filters")
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.NewParseError("x"), "unparseable"},
		{domain.NewValidationError("f", "x"), "invalid"},
		{domain.NewConflictError("x"), "conflict"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := outcome(tc.err); got != tc.want {
			t.Errorf("outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestInterpret_PalindromesAtLeastFiveCharacters(t *testing.T) {
	snap := fixture("civic", "ab", "racecarracecar")
	svc := New(snap)

	in, matched, err := svc.Interpret(context.Background(), "strings that are palindromes and at least 5 characters")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}

	set := in.Filters()
	if v, ok := set.IsPalindrome().Get(); !ok || !v {
		t.Errorf("is_palindrome = %v (set=%v), want true", v, ok)
	}
	if v, ok := set.MinLength().Get(); !ok || v != 5 {
		t.Errorf("min_length = %d (set=%v), want 5", v, ok)
	}
	if set.MaxLength().IsSet() || set.WordCount().IsSet() || set.ContainsCharacter().IsSet() {
		t.Errorf("unexpected predicates: %+v", set.Fields())
	}

	want := []string{"civic", "racecarracecar"}
	if got := valuesOf(matched); !equal(got, want) {
		t.Errorf("matched = %v, want %v", got, want)
	}
}
