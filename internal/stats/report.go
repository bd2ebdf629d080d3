package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"

	"github.com/verte-zerg/typemaster/internal/gating"
	"github.com/verte-zerg/typemaster/internal/model"
	levels "github.com/verte-zerg/typemaster/internal/progress"
)

const (
	terminalWidthBackup = 80
	maxBarWidth         = 60
	minBarWidth         = 10
)

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// BarWidth fits a progress bar into totalWidth.
func BarWidth(totalWidth int) int {
	w := totalWidth - 8
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

// LevelBar renders the level progress bar.
func LevelBar(percent float64, width int) string {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(width))
	return bar.ViewAs(percent / 100)
}

// RenderProgress prints the player record.
func RenderProgress(w io.Writer, p model.UserProgress, policy levels.ScoringPolicy, width int) error {
	pct, remaining := levels.LevelProgress(policy, p)
	lines := []string{
		fmt.Sprintf("Level %d · %s", p.Level, levels.LevelTitle(p.Level)),
		LevelBar(pct, BarWidth(width)),
		fmt.Sprintf("%d to next level (%s policy)", remaining, policy.Name()),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	rows := [][]string{
		{"Experience", fmt.Sprintf("%d", p.Experience)},
		{"Total score", fmt.Sprintf("%d", p.TotalScore)},
		{"Best WPM", fmt.Sprintf("%d", p.BestWPM)},
		{"Best accuracy", fmt.Sprintf("%d%%", p.BestAccuracy)},
		{"Streak", fmt.Sprintf("%d", p.Streak)},
		{"Sessions", fmt.Sprintf("%d", p.SessionsPlayed)},
		{"Words to review", fmt.Sprintf("%d", len(p.MistakeWords))},
		{"Unlocked themes", strings.Join(p.UnlockedThemes, ", ")},
	}
	if err := writeTable(w, nil, rows, map[int]bool{}); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nAchievements (%d/%d)\n", p.AchievementCount, len(levels.Achievements)); err != nil {
		return err
	}
	for _, id := range p.Achievements {
		title := id
		if a, ok := levels.AchievementByID(id); ok {
			title = fmt.Sprintf("%s: %s", a.Title, a.Description)
		}
		if _, err := fmt.Fprintf(w, "  * %s\n", title); err != nil {
			return err
		}
	}
	return nil
}

// RenderLeaderboard prints ranked entries with a summary line.
func RenderLeaderboard(w io.Writer, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	headers := []string{"#", "Name", "Score", "WPM", "Accuracy", "Date"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.WPM),
			fmt.Sprintf("%d%%", e.Accuracy),
			e.Date.Local().Format("2006-01-02 15:04"),
		})
	}
	if err := writeTable(w, headers, rows, map[int]bool{0: true, 2: true, 3: true, 4: true}); err != nil {
		return err
	}

	s := Summarize(entries)
	_, err := fmt.Fprintf(w, "\nAvg WPM: %.1f  Best WPM: %d  Avg Accuracy: %.1f%%  Trend: %s\n",
		s.AvgWPM, s.BestWPM, s.AvgAccuracy, Sparkline(WPMByDate(entries)))
	return err
}

// RenderModes lists every mode with its unlock state at level.
func RenderModes(w io.Writer, table gating.Table, level int) error {
	headers := []string{"Mode", "Level", "Status"}
	rows := make([][]string, 0, len(table.Modes)+len(table.Themes))
	for _, u := range table.Modes {
		rows = append(rows, []string{u.ID, fmt.Sprintf("%d", u.Level), unlockState(u.Level, level)})
	}
	if err := writeTable(w, headers, rows, map[int]bool{1: true}); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	rows = rows[:0]
	for _, u := range table.Themes {
		rows = append(rows, []string{u.ID, fmt.Sprintf("%d", u.Level), unlockState(u.Level, level)})
	}
	return writeTable(w, []string{"Theme", "Level", "Status"}, rows, map[int]bool{1: true})
}

// RenderMistakes prints the review list.
func RenderMistakes(w io.Writer, words []model.Word) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No words to review.")
		return err
	}
	rows := make([][]string, 0, len(words))
	for _, word := range words {
		rows = append(rows, []string{word.Text, string(word.Difficulty), word.Meaning})
	}
	return writeTable(w, []string{"Word", "Difficulty", "Meaning"}, rows, map[int]bool{})
}

func unlockState(required, level int) string {
	if gating.IsUnlocked(required, level) {
		return "unlocked"
	}
	return "locked"
}
