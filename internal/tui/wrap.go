package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wrongSpace marks a space that was typed as something else.
const wrongSpace = '·'

type cell struct {
	s     string
	width int
	space bool
}

// styleTarget styles every target rune by comparing it with the typed input.
// The rune under the cursor is underlined while input is shorter than target.
func styleTarget(target, input []rune) []cell {
	cursor := len(input)
	wordStart, wordEnd := currentWord(target, cursor)

	out := make([]cell, 0, len(target))
	for i, want := range target {
		shown := want
		var style lipgloss.Style
		switch {
		case i < len(input) && input[i] == want:
			style = correctStyle
		case i < len(input):
			style = incorrectStyle
			if want == ' ' {
				shown = wrongSpace
			}
		case want != ' ' && i >= wordStart && i < wordEnd:
			style = currentWordStyle
		default:
			style = pendingStyle
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, cell{
			s:     style.Render(string(shown)),
			width: runewidth.RuneWidth(shown),
			space: want == ' ',
		})
	}
	return out
}

// currentWord returns the bounds of the word the cursor is in or about to enter.
func currentWord(target []rune, cursor int) (int, int) {
	if cursor < 0 || cursor >= len(target) {
		return -1, -1
	}
	start := cursor
	if target[start] == ' ' {
		for start < len(target) && target[start] == ' ' {
			start++
		}
	} else {
		for start > 0 && target[start-1] != ' ' {
			start--
		}
	}
	end := start
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return start, end
}

// wrapCells joins cells into lines no wider than width, breaking after spaces.
// Words longer than a line are split.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var lines []string
	var line []cell
	lineWidth := 0
	for len(cells) > 0 {
		word := nextWord(cells)
		w := widthOf(word)
		if lineWidth+w > width && lineWidth > 0 {
			lines = append(lines, joinCells(line))
			line, lineWidth = nil, 0
			continue
		}
		if w > width {
			split := fit(word, width)
			lines = append(lines, joinCells(word[:split]))
			cells = cells[split:]
			continue
		}
		line = append(line, word...)
		lineWidth += w
		cells = cells[len(word):]
	}
	if len(line) > 0 {
		lines = append(lines, joinCells(line))
	}
	return strings.Join(lines, "\n")
}

// nextWord returns the leading run of non-space cells plus one trailing space.
func nextWord(cells []cell) []cell {
	for i, c := range cells {
		if c.space {
			return cells[:i+1]
		}
	}
	return cells
}

func fit(cells []cell, width int) int {
	total := 0
	for i, c := range cells {
		if total+c.width > width {
			return max(i, 1)
		}
		total += c.width
	}
	return len(cells)
}

func widthOf(cells []cell) int {
	total := 0
	for _, c := range cells {
		total += c.width
	}
	return total
}

func joinCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.s)
	}
	return b.String()
}
