package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/config"
	"github.com/abhisek/owllearn/internal/logging"
	"github.com/abhisek/owllearn/internal/store"
	"github.com/spf13/cobra"
)

// closeTimeout bounds the final flush of progress on exit.
const closeTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:   "owllearn",
	Short: "Learn Japanese one lesson at a time",
	Long:  "owllearn: a gamified Japanese vocabulary course with hearts, streaks, gems and a 20-stage skill tree.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides OWLLEARN_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides OWLLEARN_LOG_LEVEL)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp starts the interactive client on the skill map.
func runApp(cmd *cobra.Command) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		a.Visit()
		return a.Run(ctx, nil)
	})
}

// loadConfig resolves settings from .env, the environment, and flags, in
// increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(""); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if cfg.DBPath, err = resolveDBPath(cmd, cfg.DBPath); err != nil {
		return cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	return cfg, cfg.Validate()
}

func setupLogging(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then OWLLEARN_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, fromEnv string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if fromEnv != "" {
		return fromEnv, store.EnsureDir(fromEnv)
	}
	return store.DefaultDBPath()
}

// withApp opens the learner profile, runs fn, and flushes progress on the
// way out.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	runErr := fn(ctx, a)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		slog.Warn("closing profile", "error", err)
	}
	return runErr
}
