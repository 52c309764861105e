// bridge hosts the engine bridge on the desktop: it replays scripted
// platform events, drives a live bridge from the keyboard or a gamepad,
// and keeps a journal of the engine calls each run produced.
//
// Usage:
//
//	bridge axes                 - Show the active axis rules
//	bridge replay <path>...     - Replay scenario files or directories
//	bridge monitor              - Drive a bridge from the keyboard
//	bridge gamepad              - Drive a bridge from an SDL gamepad
//	bridge history [run-id]     - Browse journaled runs
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.bridge, ./configs)
//	--db <path>         - Journal database (default: from config)
//	--log-level <lvl>   - debug, info, warn or error (default: from config)
//	--engine-lib <path> - Native engine library to load (default: linked in)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/serious-bridge/internal/config"
	"github.com/vovakirdan/serious-bridge/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagEngine   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Engine bridge host - replay, monitor and journal engine calls",
	Long: `bridge runs the platform side of the engine bridge on a desktop.

Platform events (surface, lifecycle, permission, keys and motion) are
routed through the same session, permission gate and input translation
the mobile host uses, into a recording engine whose calls can be
journaled and browsed.

Available commands:
  axes     - Show the active axis rules
  replay   - Replay scripted scenarios and check their expectations
  monitor  - Drive a bridge interactively from the keyboard
  gamepad  - Drive a bridge from an SDL gamepad
  history  - Browse journaled runs

Examples:
  bridge replay scenarios/
  bridge monitor --granted=false
  bridge gamepad --profile cpu
  bridge history 3`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagEngine, "engine-lib", "", "Native engine library to load (overrides config)")

	rootCmd.AddCommand(axesCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(gamepadCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads and validates the configuration, applying flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagEngine != "" {
		cfg.Engine.Library = flagEngine
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the command logger, writing to stderr.
func newLogger(cfg config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bridge",
		Level:           cfg.LogLevel(),
	})
}

// openStore opens the journal database named by the config.
func openStore(cfg config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	return store, nil
}
