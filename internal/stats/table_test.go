package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Name", "Score", "WPM"}
	rows := [][]string{
		{"ada", "621", "60"},
		{"Player Level 2", "80", "7"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Name           Score WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "ada              621  60" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Player Level 2    80   7" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]string{"Word", "Meaning"}, [][]string{{"水", "water"}, {"ab", "x"}}, nil)
	if lines[1] != "水   water" || lines[2] != "ab   x" {
		t.Fatalf("unexpected wide-rune alignment: %q", lines)
	}
}
