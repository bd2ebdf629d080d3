// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typemaster/internal/generator"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/progress"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/tracker"
)

const tickInterval = 100 * time.Millisecond

// Options selects what the practice loop types.
type Options struct {
	Mode       string
	Words      int
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	// Review practices the saved mistake words instead of catalog content.
	Review bool
}

type tickMsg time.Time

type phase int

const (
	phaseTyping phase = iota
	phaseResults
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctx     context.Context
	opts    Options
	tracker *tracker.Tracker
	ledger  *progress.Ledger
	gen     *generator.Generator
	log     *logrus.Logger

	width  int
	height int

	phase    phase
	text     generator.Text
	target   []rune
	input    []rune
	player   model.UserProgress
	weakSet  map[rune]struct{}
	result   model.SessionResult
	outcome  progress.Outcome
	reviewed []model.Word
	mastered []string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headingStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	levelUpStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
)

// NewModel constructs a typing TUI model and prepares the first text.
func NewModel(ctx context.Context, opts Options, tr *tracker.Tracker, ledger *progress.Ledger, gen *generator.Generator, log *logrus.Logger) (*Model, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := &Model{
		ctx:     ctx,
		opts:    opts,
		tracker: tr,
		ledger:  ledger,
		gen:     gen,
		log:     log,
	}
	m.refreshPlayer()
	if err := m.nextSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.tracker.Tick()
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.phase == phaseResults {
			return m.updateResults(msg)
		}
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter, msg.Type == tea.KeySpace:
		if err := m.nextSession(); err != nil {
			m.log.WithError(err).Error("failed to prepare next text")
			return m, tea.Quit
		}
	case msg.Type == tea.KeyRunes && string(msg.Runes) == "q":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.phase == phaseResults {
		content = m.renderResults()
	} else {
		content = m.renderTarget()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderTarget() string {
	cells := styleTarget(m.target, m.input)
	width := m.contentWidth()
	if width == 0 {
		return joinCells(cells)
	}
	return lipgloss.NewStyle().Width(width).Render(wrapCells(cells, width))
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Level %d %s", m.player.Level, progress.LevelTitle(m.player.Level)),
		m.modeLabel(),
	}
	if m.phase == phaseTyping {
		st := m.tracker.Stats()
		segments = append(segments,
			fmt.Sprintf("%d WPM", st.WPM),
			fmt.Sprintf("%d%%", st.Accuracy),
			fmt.Sprintf("%.1fs", st.ElapsedSeconds),
		)
		if last, ok := m.tracker.LastMistake(); ok {
			segments = append(segments, fmt.Sprintf("last miss %q", last.Char))
		}
	} else {
		segments = append(segments, "enter: next · q: quit")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	lines := []string{
		headingStyle.Render("Session complete"),
		"",
		fmt.Sprintf("%d WPM · %d%% accuracy · %.1fs", m.result.WPM, m.result.Accuracy, m.result.ElapsedSeconds),
		fmt.Sprintf("Score %d · +%d exp", m.outcome.Score, m.outcome.ExpGain),
	}
	if m.outcome.LeveledUp {
		lines = append(lines, levelUpStyle.Render(fmt.Sprintf("Level up! %d → %d (%s)",
			m.outcome.OldLevel, m.outcome.NewLevel, progress.LevelTitle(m.outcome.NewLevel))))
	}
	for _, id := range m.outcome.NewAchievements {
		if a, ok := progress.AchievementByID(id); ok {
			lines = append(lines, levelUpStyle.Render("Achievement unlocked: "+a.Title))
		}
	}
	if len(m.reviewed) > 0 {
		names := make([]string, len(m.reviewed))
		for i, w := range m.reviewed {
			names[i] = w.Text
		}
		lines = append(lines, "Added to review: "+strings.Join(names, ", "))
	}
	if len(m.mastered) > 0 {
		lines = append(lines, "Cleared from review: "+strings.Join(m.mastered, ", "))
	}
	pct, remaining := progress.LevelProgress(m.ledger.Policy(), m.player)
	barWidth := stats.BarWidth(m.contentWidth())
	if m.width == 0 {
		barWidth = stats.BarWidth(stats.TerminalWidth())
	}
	lines = append(lines, "", stats.LevelBar(pct, barWidth), fmt.Sprintf("%d to level %d", remaining, m.player.Level+1))
	return strings.Join(lines, "\n")
}

func (m *Model) modeLabel() string {
	if m.opts.Review {
		return "review"
	}
	return m.opts.Mode
}

func (m *Model) handleBackspace() {
	if len(m.input) == 0 || !m.tracker.Active() {
		return
	}
	m.setInput(m.input[:len(m.input)-1])
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if m.phase != phaseTyping || len(m.input) >= len(m.target) {
			return
		}
		if !m.tracker.Active() {
			if err := m.tracker.Start(string(m.target)); err != nil {
				m.log.WithError(err).Error("failed to start session")
				return
			}
		}
		next := make([]rune, len(m.input), len(m.input)+1)
		copy(next, m.input)
		m.setInput(append(next, r))
	}
}

func (m *Model) setInput(input []rune) {
	if err := m.tracker.Update(string(input)); err != nil {
		m.log.WithError(err).Debug("input rejected")
		return
	}
	m.input = input
	if res, ok := m.tracker.Completed(); ok {
		m.finishSession(res)
	}
}

func (m *Model) finishSession(res model.SessionResult) {
	m.result = res
	m.phase = phaseResults

	outcome, err := m.ledger.RecordSession(m.ctx, res)
	if err != nil {
		m.log.WithError(err).Warn("session not recorded")
	}
	m.outcome = outcome

	m.reviewed = m.reviewed[:0]
	m.mastered = m.mastered[:0]
	missed := generator.MistakeWords(m.text.Words, res.Mistakes)
	switch {
	case m.opts.Review:
		// Words typed cleanly during review leave the list.
		still := map[string]struct{}{}
		for _, w := range missed {
			still[w.Text] = struct{}{}
		}
		for _, w := range m.text.Words {
			if _, ok := still[w.Text]; ok {
				continue
			}
			if m.ledger.RemoveMistake(m.ctx, w.Text) {
				m.mastered = append(m.mastered, w.Text)
			}
		}
	case strings.HasPrefix(m.opts.Mode, "words-"):
		for _, w := range missed {
			if m.ledger.RecordMistake(m.ctx, model.WordMistake{Word: w}) {
				m.reviewed = append(m.reviewed, w)
			}
		}
	}
	m.refreshPlayer()
}

func (m *Model) refreshPlayer() {
	m.player = m.ledger.LoadProgress(m.ctx)
	m.weakSet = nil
	if m.opts.FocusWeak {
		m.weakSet = stats.SelectWeakChars(m.player.MistakeWords, m.opts.WeakTop)
	}
}

func (m *Model) nextSession() error {
	var (
		text generator.Text
		err  error
	)
	if m.opts.Review {
		text, err = m.gen.Review(m.player.MistakeWords, m.opts.Words)
	} else {
		text, err = m.gen.Text(generator.Request{
			Mode:       m.opts.Mode,
			Themes:     m.player.UnlockedThemes,
			Level:      m.player.Level,
			Count:      m.opts.Words,
			Weak:       m.weakSet,
			WeakFactor: m.opts.WeakFactor,
		})
	}
	if err != nil {
		return err
	}
	m.tracker.Reset()
	m.text = text
	m.target = []rune(text.Target)
	m.input = nil
	m.phase = phaseTyping
	return nil
}
