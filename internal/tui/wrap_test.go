package tui

import (
	"strings"
	"testing"
)

func TestStyleTargetCursor(t *testing.T) {
	cells := styleTarget([]rune("ab"), []rune("a"))
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if cells[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current word style under the cursor")
	}
}

func TestStyleTargetNoCursorWhenComplete(t *testing.T) {
	cells := styleTarget([]rune("a"), []rune("a"))
	if cells[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestStyleTargetKeepsTargetOnMistype(t *testing.T) {
	cells := styleTarget([]rune("ab"), []rune("ax"))
	if cells[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected target rune in incorrect style")
	}
}

func TestStyleTargetWordHighlighting(t *testing.T) {
	cells := styleTarget([]rune("one two"), []rune("o"))
	if cells[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped rune in current word")
	}
	if cells[4].s != pendingStyle.Render("t") || cells[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestStyleTargetWrongSpace(t *testing.T) {
	cells := styleTarget([]rune("a b"), []rune("ax"))
	if cells[1].s != incorrectStyle.Render(string(wrongSpace)) || !cells[1].space {
		t.Fatalf("expected marker for wrong space")
	}
}

func TestCurrentWord(t *testing.T) {
	target := []rune("one  two")
	cases := []struct {
		cursor     int
		start, end int
	}{
		{0, 0, 3},
		{2, 0, 3},
		{3, 5, 8},
		{6, 5, 8},
		{8, -1, -1},
	}
	for _, tc := range cases {
		start, end := currentWord(target, tc.cursor)
		if start != tc.start || end != tc.end {
			t.Fatalf("cursor %d: got [%d,%d), want [%d,%d)", tc.cursor, start, end, tc.start, tc.end)
		}
	}
}

func plainCells(s string) []cell {
	out := make([]cell, 0, len(s))
	for _, r := range s {
		out = append(out, cell{s: string(r), width: 1, space: r == ' '})
	}
	return out
}

func TestWrapCellsBreaksAfterSpaces(t *testing.T) {
	got := wrapCells(plainCells("the cat sat on the mat"), 8)
	want := "the cat \nsat on \nthe mat"
	if got != want {
		t.Fatalf("unexpected wrap:\n%q\nwant\n%q", got, want)
	}
}

func TestWrapCellsSplitsLongWords(t *testing.T) {
	got := wrapCells(plainCells("ab photosynthesis"), 6)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 6 {
			t.Fatalf("line %q exceeds width in %q", line, got)
		}
	}
	if strings.ReplaceAll(got, "\n", "") != "ab photosynthesis" {
		t.Fatalf("wrap lost content: %q", got)
	}
}

func TestWrapCellsWideRunes(t *testing.T) {
	cells := []cell{{s: "水", width: 2}, {s: "水", width: 2}, {s: "水", width: 2}}
	if got := wrapCells(cells, 4); got != "水水\n水" {
		t.Fatalf("unexpected wide wrap %q", got)
	}
}
