package analysis

import "testing"

func TestIsPalindrome(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"civic", true},
		{"Racecar", true},
		{"  level ", true},
		{"hello", false},
		{"ab", false},
		{"", true},
		{"a", true},
		{"été", true},
		{"A man a plan", false},
	}
	for _, tt := range tests {
		if got := IsPalindrome(tt.in); got != tt.want {
			t.Errorf("IsPalindrome(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLength_CountsCodePoints(t *testing.T) {
	if got := Length("héllo"); got != 5 {
		t.Errorf("Length = %d, want 5", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"two words", 2},
		{"  spaced \t out\nwords  ", 3},
	}
	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSHA256(t *testing.T) {
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := SHA256("hello"); got != want {
		t.Errorf("SHA256(hello) = %s", got)
	}
}

func TestAnalyze(t *testing.T) {
	p := Analyze("banana")
	if p.Length != 6 {
		t.Errorf("Length = %d", p.Length)
	}
	if p.IsPalindrome {
		t.Error("banana is not a palindrome")
	}
	if p.UniqueCharacters != 3 {
		t.Errorf("UniqueCharacters = %d, want 3", p.UniqueCharacters)
	}
	if p.UniqueCharacters != UniqueCharacters("banana") {
		t.Error("UniqueCharacters mismatch with standalone function")
	}
	if p.WordCount != 1 {
		t.Errorf("WordCount = %d", p.WordCount)
	}
	if p.CharacterFrequency["a"] != 3 || p.CharacterFrequency["n"] != 2 || p.CharacterFrequency["b"] != 1 {
		t.Errorf("CharacterFrequency = %v", p.CharacterFrequency)
	}
}

func TestUniqueCharacters(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"aaa", 1},
		{"Aa", 2},
		{"héllo wörld", 9},
	}
	for _, tt := range tests {
		if got := UniqueCharacters(tt.value); got != tt.want {
			t.Errorf("UniqueCharacters(%q) = %d, want %d", tt.value, got, tt.want)
		}
		if got := Analyze(tt.value).UniqueCharacters; got != tt.want {
			t.Errorf("Analyze(%q).UniqueCharacters = %d, want %d", tt.value, got, tt.want)
		}
	}
}
