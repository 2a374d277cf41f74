// Package main provides the CLI entrypoint for tuidrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/verte-zerg/tuidrill/internal/config"
	"github.com/verte-zerg/tuidrill/internal/corpus"
	"github.com/verte-zerg/tuidrill/internal/drill"
	"github.com/verte-zerg/tuidrill/internal/logging"
	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/stats"
	"github.com/verte-zerg/tuidrill/internal/store"
	"github.com/verte-zerg/tuidrill/internal/tui"
)

const (
	defaultThreshold   = 50
	defaultIdleTimeout = 5 * time.Minute
	defaultPunish      = true
	defaultLogLevel    = "info"
)

// Suggested values for the opt-in penalties, shown in the config template.
const (
	suggestedHesitation = 2 * time.Second
	suggestedPunishCap  = 1024
)

var (
	drillThreshold   int
	drillIdleTimeout time.Duration
	drillPunish      bool
	drillHesitation  time.Duration
	drillPunishCap   int
	drillCorpus      string
	drillSet         string
	logLevel         string
	logFile          string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuidrill",
		Short:         "Adaptive typing drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runDrillCmd,
	}

	rootCmd.Flags().IntVar(&drillThreshold, "threshold", defaultThreshold, "question length threshold in characters")
	rootCmd.Flags().DurationVar(&drillIdleTimeout, "idle-timeout", defaultIdleTimeout, "end the session after this long without a keystroke")
	rootCmd.Flags().BoolVar(&drillPunish, "punish", defaultPunish, "re-insert mistyped characters after each question")
	rootCmd.Flags().DurationVar(&drillHesitation, "hesitation", 0, "re-drill a character after pausing this long mid-question (0 disables)")
	rootCmd.Flags().IntVar(&drillPunishCap, "punish-cap", 0, "maximum re-inserted characters per pass (0 means no limit)")
	rootCmd.Flags().StringVar(&drillCorpus, "corpus", "", "corpus file (default: $XDG_CONFIG_HOME/tuidrill/corpus.txt)")
	rootCmd.Flags().StringVar(&drillSet, "set", "", "drill a corpus imported into the library")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "diagnostic log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", `diagnostic log file (default: $XDG_STATE_HOME/tuidrill/tuidrill.log, "" disables)`)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCorpusCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, logCfg := resolveConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(logCfg.Level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	lines, source, err := loadCorpus(cmd.Context(), cfg)
	if err != nil {
		return corpusLoadError(cfg, source, err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tuidrill needs an interactive terminal")
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		// Sync on a rotating file may fail after rotation; nothing useful to do.
		_ = logger.Sync()
	}()
	logger.Info("drill starting",
		zap.String("corpus", source),
		zap.Int("lines", len(lines)),
		zap.Int("threshold", cfg.Threshold),
		zap.Duration("idle_timeout", cfg.IdleTimeout),
		zap.Bool("punish", cfg.Punish),
		zap.Duration("hesitation", cfg.Hesitation),
		zap.Int("punish_cap", cfg.PunishCap),
	)

	tracker := stats.NewTracker()
	err = runDrill(cmd.Context(), cfg, lines, tracker, logger)
	switch {
	case errors.Is(err, drill.ErrSessionTimedOut):
		logger.Info("session ended on idle timeout")
		logErrf("No keystroke for %s, session ended.\n", cfg.IdleTimeout)
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("session closed")
	default:
		logger.Error("session failed", zap.Error(err))
		return err
	}

	summary := tracker.Summary()
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if summary.Questions == 0 {
		return nil
	}
	if err := stats.RenderCharTable(out, summary.Chars); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// runDrill runs the TUI and the engine side by side. Whichever stops first
// takes the other down: closing the TUI cancels the engine, and the engine
// returning (idle timeout included) quits the TUI.
func runDrill(parent context.Context, cfg model.Config, lines []string, tracker *stats.Tracker, logger *zap.Logger, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	mailbox := drill.NewMailbox()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(tui.NewModel(cfg, mailbox, tracker), opts...)
	session := drill.NewSession(cfg, lines, mailbox, tui.NewSink(program),
		drill.WithLogger(logger),
		drill.WithObserver(tracker),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		cancel()
		return nil
	})
	g.Go(func() error {
		defer program.Quit()
		return session.Run(gctx)
	})
	return g.Wait()
}

// resolveConfig layers flag defaults, the config file and explicit flags, in
// that order of precedence from lowest to highest.
func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, model.LogConfig) {
	flags := cmd.Flags()
	applyConfig(cmd, "threshold", &drillThreshold, fileCfg.Drill.Threshold)
	if fileCfg.Drill.IdleTimeout != nil && !flags.Changed("idle-timeout") {
		drillIdleTimeout = fileCfg.Drill.IdleTimeout.Duration
	}
	applyConfig(cmd, "punish", &drillPunish, fileCfg.Drill.Punish)
	if fileCfg.Drill.Hesitation != nil && !flags.Changed("hesitation") {
		drillHesitation = fileCfg.Drill.Hesitation.Duration
	}
	applyConfig(cmd, "punish-cap", &drillPunishCap, fileCfg.Drill.PunishCap)
	applyConfig(cmd, "corpus", &drillCorpus, fileCfg.Drill.Corpus)
	applyConfig(cmd, "set", &drillSet, fileCfg.Drill.Set)
	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	// A source named on the command line replaces the one from the file.
	if flags.Changed("corpus") && !flags.Changed("set") {
		drillSet = ""
	}
	if flags.Changed("set") && !flags.Changed("corpus") {
		drillCorpus = ""
	}

	// An explicitly empty log file turns logging off.
	if logFile == "" && fileCfg.Log.File == nil && !flags.Changed("log-file") {
		logFile = config.DefaultLogPath()
	}

	cfg := model.Config{
		Threshold:   drillThreshold,
		IdleTimeout: drillIdleTimeout,
		Punish:      drillPunish,
		Hesitation:  drillHesitation,
		PunishCap:   drillPunishCap,
		CorpusPath:  drillCorpus,
		CorpusSet:   drillSet,
	}
	return cfg, model.LogConfig{Level: logLevel, File: logFile}
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if cfg.Threshold < 1 {
		return fmt.Errorf("--threshold must be >= 1")
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("--idle-timeout must be > 0")
	}
	if cfg.Hesitation < 0 {
		return fmt.Errorf("--hesitation must be >= 0")
	}
	if cfg.Hesitation > 0 && cfg.Hesitation >= cfg.IdleTimeout {
		return fmt.Errorf("--hesitation must be shorter than --idle-timeout")
	}
	if cfg.PunishCap < 0 {
		return fmt.Errorf("--punish-cap must be >= 0")
	}
	if cfg.CorpusPath != "" && cfg.CorpusSet != "" {
		return fmt.Errorf("--corpus and --set are mutually exclusive")
	}
	return nil
}

// loadCorpus returns the corpus lines and a description of where they came
// from.
func loadCorpus(ctx context.Context, cfg model.Config) ([]string, string, error) {
	if cfg.CorpusSet != "" {
		source := "library set " + cfg.CorpusSet
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return nil, source, fmt.Errorf("%w: failed to open library: %w", corpus.ErrUnavailable, err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		lines, err := st.CorpusLines(ctx, cfg.CorpusSet)
		if err != nil {
			return nil, source, fmt.Errorf("%w: %w", corpus.ErrUnavailable, err)
		}
		if err := corpus.Validate(lines); err != nil {
			return nil, source, err
		}
		return lines, source, nil
	}

	path := cfg.CorpusPath
	if path == "" {
		path = config.DefaultCorpusPath()
	}
	lines, err := corpus.Load(path)
	return lines, path, err
}

func corpusLoadError(cfg model.Config, source string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load corpus: %v", err),
		fmt.Sprintf("source: %s", source),
	}
	if cfg.CorpusSet != "" {
		lines = append(lines,
			"Run: tuidrill corpus list",
			fmt.Sprintf("Import: tuidrill corpus import %s <file>", cfg.CorpusSet),
		)
	} else {
		lines = append(lines,
			"Pass a text file with --corpus <file>",
			"or import one: tuidrill corpus import <name> <file>",
		)
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
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
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuidrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# threshold = %d           # Question length threshold in characters
# idle-timeout = %q      # End the session after this long without a keystroke
# punish = %t            # Re-insert mistyped characters after each question
# hesitation = %q         # Re-drill a character after pausing this long mid-question
# punish-cap = %d          # Maximum re-inserted characters per pass
# corpus = %q
# set = "name"             # Corpus imported with: tuidrill corpus import

[log]
# level = %q           # debug, info, warn, error
# file = %q
`,
		defaultThreshold,
		defaultIdleTimeout.String(),
		defaultPunish,
		suggestedHesitation.String(),
		suggestedPunishCap,
		config.DefaultCorpusPath(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the corpus library",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a text file into the library",
		Args:  cobra.ExactArgs(2),
		RunE:  runCorpusImportCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List imported corpora",
		Args:  cobra.NoArgs,
		RunE:  runCorpusListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a corpus from the library",
		Args:    cobra.ExactArgs(1),
		RunE:    runCorpusRemoveCmd,
	})
	return cmd
}

func runCorpusImportCmd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("corpus name must not be empty")
	}
	path, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[1], err)
	}
	lines, err := corpus.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}
	return withStore(func(st *store.Store) error {
		if _, err := st.ImportCorpus(cmd.Context(), name, path, lines); err != nil {
			return fmt.Errorf("failed to import corpus: %w", err)
		}
		logErrf("Imported %s (%d lines) from %s\n", name, len(lines), path)
		return nil
	})
}

func runCorpusListCmd(cmd *cobra.Command, _ []string) error {
	return withStore(func(st *store.Store) error {
		corpora, err := st.ListCorpora(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list corpora: %w", err)
		}
		if err := stats.RenderCorpusList(cmd.OutOrStdout(), corpora); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runCorpusRemoveCmd(cmd *cobra.Command, args []string) error {
	name := args[0]
	return withStore(func(st *store.Store) error {
		if err := st.DeleteCorpus(cmd.Context(), name); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("corpus %q not found", name)
			}
			return fmt.Errorf("failed to remove corpus: %w", err)
		}
		logErrf("Removed %s\n", name)
		return nil
	})
}

func withStore(fn func(st *store.Store) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(st)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
