// Package main provides the CLI entrypoint for tuiracer.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiracer/internal/app"
	"github.com/verte-zerg/tuiracer/internal/clock"
	"github.com/verte-zerg/tuiracer/internal/config"
	"github.com/verte-zerg/tuiracer/internal/input"
	"github.com/verte-zerg/tuiracer/internal/logging"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/passage"
	"github.com/verte-zerg/tuiracer/internal/replay"
	"github.com/verte-zerg/tuiracer/internal/stats"
	"github.com/verte-zerg/tuiracer/internal/statsui"
	"github.com/verte-zerg/tuiracer/internal/store"
	"github.com/verte-zerg/tuiracer/internal/tui"
)

const (
	defaultSeed          = "default-seed"
	defaultWords         = 12
	defaultWordPassages  = 5
	defaultCurveWindow   = 20
	defaultStatsWidth    = 80
	defaultSamplingName  = "last"
	defaultStorageEngine = config.BackendSQLite
)

var (
	raceSeed         string
	racePassages     int
	racePassagesFile string
	raceWordList     string
	raceWords        int
	raceGhost        bool
	raceSampling     string
	storageBackend   string
	logLevel         string

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiracer",
		Short:         "Terminal typing racer with replays and ghosts",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRace(cmd, app.ModeRace)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&raceSeed, "seed", defaultSeed, "seed that selects the passages")
	flags.IntVar(&racePassages, "passages", 0, "passages per race (0 = all)")
	flags.StringVar(&racePassagesFile, "passages-file", "", "JSON or YAML passage file")
	flags.StringVar(&raceWordList, "wordlist", "", "word list file to generate passages from")
	flags.IntVar(&raceWords, "words", defaultWords, "words per generated passage")
	flags.BoolVar(&raceGhost, "ghost", false, "race against the last saved replay")
	flags.StringVar(&raceSampling, "sampling", defaultSamplingName, "input sampling per frame: last or drain")
	flags.StringVar(&storageBackend, "storage", defaultStorageEngine, "replay storage backend: sqlite or file")
	flags.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Play back the last saved race",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRace(cmd, app.ModeReplay)
		},
	}
}

func runRace(cmd *cobra.Command, mode app.Mode) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "seed", &raceSeed, fileCfg.Race.Seed)
	applyIntConfig(cmd, "passages", &racePassages, fileCfg.Race.Passages)
	applyStringConfig(cmd, "passages-file", &racePassagesFile, fileCfg.Race.PassagesFile)
	applyStringConfig(cmd, "wordlist", &raceWordList, fileCfg.Race.WordList)
	applyIntConfig(cmd, "words", &raceWords, fileCfg.Race.Words)
	applyBoolConfig(cmd, "ghost", &raceGhost, fileCfg.Race.Ghost)
	applyStringConfig(cmd, "sampling", &raceSampling, fileCfg.Race.Sampling)
	applyStringConfig(cmd, "storage", &storageBackend, fileCfg.Storage.Backend)

	cfg := model.Config{
		Seed:         raceSeed,
		Passages:     racePassages,
		PassagesFile: racePassagesFile,
		WordListPath: raceWordList,
		Words:        raceWords,
		Ghost:        raceGhost,
		Sampling:     raceSampling,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	sampling, err := input.ParseSampling(cfg.Sampling)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(logging.ResolveLevel(logLevel, config.String(fileCfg.Log.Level, "")))
	if err != nil {
		return err
	}
	logger, logFile, err := logging.Open(config.DefaultLogPath(), level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	db, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	blobs, err := blobStore(db, storageBackend)
	if err != nil {
		return err
	}

	// Replays run on the wall-clock derived source; races on the monotonic one.
	var clk clock.Clock = clock.NewSteady()
	if mode == app.ModeReplay {
		clk = clock.NewHighRes()
	}

	ctx := context.Background()
	racer := app.New(app.Options{
		Clock:    clk,
		Provider: newProvider(cfg, logger),
		Limit:    cfg.Passages,
		Seed:     cfg.Seed,
		Store:    blobs,
		Races:    db,
		Logger:   logger,
		Sampling: sampling,
		Ghost:    cfg.Ghost,
		Mode:     mode,
	})
	logger.Info().
		Str("storage", storageBackend).
		Str("sampling", sampling.String()).
		Msg("tuiracer starting")

	program := tea.NewProgram(tui.NewModel(ctx, racer, db, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func blobStore(db *store.SQLite, backend string) (replay.BlobStore, error) {
	switch backend {
	case config.BackendSQLite:
		return db, nil
	case config.BackendFile:
		return store.NewFile(config.DefaultReplayDir()), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite or file)", backend)
	}
}

func newProvider(cfg model.Config, logger zerolog.Logger) passage.Provider {
	switch {
	case cfg.PassagesFile != "":
		return passage.FileProvider{Path: cfg.PassagesFile, Logger: logger}
	case cfg.WordListPath != "":
		count := cfg.Passages
		if count <= 0 {
			count = defaultWordPassages
		}
		return passage.WordListProvider{
			Path:   cfg.WordListPath,
			Seed:   cfg.Seed,
			Count:  count,
			Words:  cfg.Words,
			Logger: logger,
		}
	default:
		return passage.Static(passage.Default())
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show race history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N races")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print the report instead of opening the viewer")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	fd, interactive := terminalFD(out)
	if statsPlain || !interactive {
		width := defaultStatsWidth
		if interactive {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
		}
		return printStats(ctx, out, st, cfg, width)
	}

	program := tea.NewProgram(statsui.NewModel(ctx, st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printStats(ctx context.Context, w io.Writer, st stats.RaceLister, cfg model.StatsConfig, width int) error {
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, cfg, width); err != nil {
		return fmt.Errorf("failed to render stats: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func terminalFD(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
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
		console := logging.Console(os.Stderr, zerolog.InfoLevel)
		console.Info().Str("path", path).Msg("wrote config template")
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiracer configuration
# Uncomment a value to enable it. CLI flags override config values.

[race]
# seed = %q       # Seed that selects the passages
# passages = 0               # Passages per race (0 = all)
# passages-file = ""         # JSON or YAML passage file
# wordlist = ""              # Word list to generate passages from
# words = %d                 # Words per generated passage
# ghost = false              # Race against the last saved replay
# sampling = %q            # Input sampling per frame: last or drain

[storage]
# backend = %q           # Replay storage: sqlite or file

[log]
# level = "info"             # trace, debug, info, warn, error (%s overrides)
`,
		defaultSeed,
		defaultWords,
		defaultSamplingName,
		defaultStorageEngine,
		logging.EnvLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Passages < 0 {
		return fmt.Errorf("--passages must be >= 0")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.PassagesFile != "" && cfg.WordListPath != "" {
		return fmt.Errorf("--passages-file and --wordlist are mutually exclusive")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
