package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/config"
	"github.com/wordwhizkids/wordwhiz/internal/logging"
	"github.com/wordwhizkids/wordwhiz/internal/metrics"
	"github.com/wordwhizkids/wordwhiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wordwhiz",
	Short: "Phonics practice for young readers",
	Long: `Word Whiz Kids: a terminal phonics quiz for early readers.

Challenges are spoken aloud and answered by typing or speaking. With an LLM
key configured, fresh challenges are generated on the fly; without one the
built-in word bank is used.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Directory containing config.yaml")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDWHIZ_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9464")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	return cfg, nil
}

// newLogger builds the logger. console is nil for the TUI so log lines
// never draw over the screen.
func newLogger(cfg *config.Config, console io.Writer) *zap.Logger {
	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		return zap.NewNop()
	}
	return logger
}

// resolveDBPath returns the database path using --db / config (highest
// priority), then WORDWHIZ_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureParent(cfg.DB)
	}
	return store.DefaultPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// serveMetrics exposes /metrics in the background when an address is set.
func serveMetrics(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	metrics.Init()
	if cfg.Metrics.Addr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
			logger.Warn("metrics endpoint stopped", zap.String("addr", cfg.Metrics.Addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
}
