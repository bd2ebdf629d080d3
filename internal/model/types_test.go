package model

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":     Easy,
		" Medium ": Medium,
		"HARD":     Hard,
	}
	for in, want := range cases {
		got, err := ParseDifficulty(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := ParseDifficulty("extreme"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}

func TestMistakeEntryKeys(t *testing.T) {
	entries := []MistakeEntry{
		CharMistake{Char: 'c'},
		WordMistake{Word: Word{Text: "cat", Difficulty: Easy}},
	}
	want := []string{"c", "cat"}
	for i, e := range entries {
		if e.Key() != want[i] {
			t.Fatalf("entry %d: expected key %q, got %q", i, want[i], e.Key())
		}
	}
}
