// Package main provides the CLI entrypoint for typemaster.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typemaster/internal/catalog"
	"github.com/verte-zerg/typemaster/internal/clock"
	"github.com/verte-zerg/typemaster/internal/config"
	"github.com/verte-zerg/typemaster/internal/gating"
	"github.com/verte-zerg/typemaster/internal/generator"
	"github.com/verte-zerg/typemaster/internal/progress"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/tracker"
	"github.com/verte-zerg/typemaster/internal/tui"
)

const (
	defaultMode       = "words-easy"
	defaultWords      = 10
	defaultWeakTop    = 6
	defaultWeakFactor = 2.0
)

var (
	practiceMode       string
	practiceWords      int
	practiceName       string
	practiceReview     bool
	practiceFocusWeak  bool
	practiceWeakFactor float64

	globalPolicy   string
	globalBackend  string
	globalStore    string
	globalPacks    string
	globalLogLevel string

	mistakesRemove string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typemaster",
		Short:         "Leveled typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&globalPolicy, "policy", progress.PolicyCurve, "progression policy (curve or linear)")
	rootCmd.PersistentFlags().StringVar(&globalBackend, "backend", store.BackendSQLite, "storage backend (sqlite, file or memory)")
	rootCmd.PersistentFlags().StringVar(&globalStore, "store", "", "storage path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&globalPacks, "packs", "", "extra word packs (YAML, or a .txt word list)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", config.DefaultLogLevel, "log level")

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "practice mode, see `typemaster modes`")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per text in word modes")
	rootCmd.Flags().StringVar(&practiceName, "name", "", "name shown on the leaderboard")
	rootCmd.Flags().BoolVar(&practiceReview, "review", false, "practice the saved mistake words")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias word choice toward characters from the review list")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newMistakesCmd())

	return rootCmd
}

// app bundles what every subcommand needs.
type app struct {
	cfg    config.FileConfig
	log    *logrus.Logger
	table  gating.Table
	ledger *progress.Ledger
	close  func() error
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "policy", &globalPolicy, fileCfg.Progression.Policy)
	applyStringConfig(cmd, "backend", &globalBackend, fileCfg.Storage.Backend)
	applyStringConfig(cmd, "store", &globalStore, fileCfg.Storage.Path)
	applyStringConfig(cmd, "packs", &globalPacks, fileCfg.Catalog.Packs)
	applyStringConfig(cmd, "log-level", &globalLogLevel, fileCfg.Log.Level)

	if err := config.ValidatePolicy(globalPolicy); err != nil {
		return nil, err
	}
	if err := config.ValidateBackend(globalBackend); err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(globalLogLevel)
	if err != nil {
		return nil, err
	}
	table, err := fileCfg.GatingTable()
	if err != nil {
		return nil, fmt.Errorf("invalid gating config: %w", err)
	}

	bonus := 0
	if fileCfg.Progression.AccuracyBonusThreshold != nil {
		bonus = *fileCfg.Progression.AccuracyBonusThreshold
	}
	policy, err := progress.PolicyByName(globalPolicy, bonus)
	if err != nil {
		return nil, err
	}

	storePath := globalStore
	if storePath == "" {
		storePath = config.DefaultStorePath(globalBackend)
	}
	kv, closeFn, err := store.OpenBackend(globalBackend, storePath)
	if err != nil {
		return nil, err
	}

	opts := progress.Options{
		Policy: policy,
		Gating: &table,
		Clock:  clock.System{},
		Logger: logger,
	}
	if fileCfg.Practice.Name != nil {
		opts.PlayerName = *fileCfg.Practice.Name
	}
	if cmd.Flags().Changed("name") {
		opts.PlayerName = practiceName
	}
	if fileCfg.Progression.StreakThreshold != nil {
		opts.StreakThreshold = *fileCfg.Progression.StreakThreshold
	}
	if fileCfg.Progression.LeaderboardSize != nil {
		opts.LeaderboardSize = *fileCfg.Progression.LeaderboardSize
	}

	logger.WithFields(logrus.Fields{
		"backend": globalBackend,
		"path":    storePath,
		"policy":  policy.Name(),
	}).Debug("storage opened")

	return &app{
		cfg:    fileCfg,
		log:    logger,
		table:  table,
		ledger: progress.NewLedger(kv, opts),
		close:  closeFn,
	}, nil
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		a.log.WithError(err).Warn("failed to close store")
	}
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	applyStringConfig(cmd, "mode", &practiceMode, a.cfg.Practice.Mode)
	applyIntConfig(cmd, "words", &practiceWords, a.cfg.Practice.Words)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, a.cfg.Practice.FocusWeak)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, a.cfg.Practice.WeakFactor)

	opts := tui.Options{
		Mode:       practiceMode,
		Words:      practiceWords,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    defaultWeakTop,
		WeakFactor: practiceWeakFactor,
		Review:     practiceReview,
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	ctx := context.Background()
	player := a.ledger.LoadProgress(ctx)
	if !opts.Review {
		if err := checkModeUnlocked(a.table, opts.Mode, player.Level); err != nil {
			return err
		}
	}

	packs := globalPacks
	if packs == "" {
		if _, err := os.Stat(config.DefaultPacksPath()); err == nil {
			packs = config.DefaultPacksPath()
		}
	}
	cat, err := catalog.Load(packs)
	if err != nil {
		return fmt.Errorf("failed to load word packs: %w", err)
	}
	cat = cat.WithThemeLevels(a.table.Themes)

	model, err := tui.NewModel(ctx, opts, tracker.New(clock.System{}), a.ledger, generator.New(cat), a.log)
	if err != nil {
		if errors.Is(err, generator.ErrNoContent) && opts.Review {
			return fmt.Errorf("no words to review yet")
		}
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func checkModeUnlocked(table gating.Table, mode string, level int) error {
	required, ok := table.ModeLevel(mode)
	if !ok {
		return fmt.Errorf("unknown mode %q, see: typemaster modes", mode)
	}
	if !gating.IsUnlocked(required, level) {
		return fmt.Errorf("mode %q unlocks at level %d (you are level %d)", mode, required, level)
	}
	return nil
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show level, experience and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			p := a.ledger.LoadProgress(context.Background())
			return stats.RenderProgress(cmd.OutOrStdout(), p, a.ledger.Policy(), stats.TerminalWidth())
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the best sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return stats.RenderLeaderboard(cmd.OutOrStdout(), a.ledger.Leaderboard(context.Background()))
		},
	}
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List modes and themes with their unlock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			p := a.ledger.LoadProgress(context.Background())
			return stats.RenderModes(cmd.OutOrStdout(), a.table, p.Level)
		},
	}
}

func newMistakesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mistakes",
		Short: "List or prune the words saved for review",
		Args:  cobra.NoArgs,
		RunE:  runMistakesCmd,
	}
	cmd.Flags().StringVar(&mistakesRemove, "remove", "", "remove a word from the review list")
	return cmd
}

func runMistakesCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if word := strings.TrimSpace(mistakesRemove); word != "" {
		if !a.ledger.RemoveMistake(ctx, word) {
			return fmt.Errorf("%q is not on the review list", word)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", word)
		return err
	}
	return stats.RenderMistakes(cmd.OutOrStdout(), a.ledger.LoadProgress(ctx).MistakeWords)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typemaster configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q      # Starting mode, see: typemaster modes
# words = %d             # Words per text in word modes
# name = "ada"           # Leaderboard name (default "Player Level N")
# focus-weak = false     # Bias word choice toward characters from the review list
# weak-factor = %.1f      # Weight factor for weak characters

[progression]
# policy = %q        # curve (experience curve) or linear (1000 points per level)
# streak-threshold = %d   # Minimum accuracy that extends the streak
# accuracy-bonus-threshold = 95
# leaderboard-size = %d

[storage]
# backend = %q      # sqlite, file or memory
# path = ""              # Default: XDG data dir

[catalog]
# packs = ""             # Extra YAML word packs (default: packs.yaml next to this file)

[log]
# level = %q

# Unlock level overrides:
# [[gating.modes]]
# id = "coding"
# level = 4
#
# [[gating.themes]]
# id = "space"
# level = 2
`,
		defaultMode,
		defaultWords,
		defaultWeakFactor,
		progress.PolicyCurve,
		progress.DefaultStreakThreshold,
		progress.DefaultLeaderboardSize,
		store.BackendSQLite,
		config.DefaultLogLevel,
	)
}

func validateOptions(opts tui.Options) error {
	if opts.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if opts.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if !opts.Review {
		if _, _, err := generator.ParseMode(opts.Mode); err != nil {
			return err
		}
	}
	return nil
}
