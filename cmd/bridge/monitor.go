package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/serious-bridge/internal/platform/tui"
)

var (
	flagMonitorGranted bool
	flagMonitorJournal bool
	flagMonitorLogFile string
	flagMonitorWidth   int
	flagMonitorHeight  int
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Drive a bridge interactively from the keyboard",
	Long: `Opens a terminal monitor around a live bridge. The keyboard simulates
the platform: surface creation and loss, permission answers, pause and
resume, and a gamepad's sticks, d-pad, triggers and buttons. The monitor
shows the session, surface and permission state and the engine calls as
they happen.

Logs go to --log-file, since the monitor owns the terminal.

Examples:
  bridge monitor
  bridge monitor --granted=false --log-file bridge.log`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().BoolVar(&flagMonitorGranted, "granted", true, "Storage permission is held at launch")
	monitorCmd.Flags().BoolVar(&flagMonitorJournal, "journal", true, "Journal the engine calls")
	monitorCmd.Flags().StringVar(&flagMonitorLogFile, "log-file", "", "Write logs to this file")
	monitorCmd.Flags().IntVar(&flagMonitorWidth, "width", 1920, "Measured width of simulated surfaces")
	monitorCmd.Flags().IntVar(&flagMonitorHeight, "height", 1080, "Measured height of simulated surfaces")
}

func runMonitor(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if flagMonitorLogFile != "" {
		f, err := os.OpenFile(flagMonitorLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bridge",
		Level:           cfg.LogLevel(),
	})

	label := "monitor " + time.Now().Format("2006-01-02 15:04:05")
	lb, err := newLiveBridge(cfg, logger, "monitor", label, flagMonitorGranted, flagMonitorJournal)
	if err != nil {
		return err
	}
	defer lb.Close()

	err = tui.RunMonitor(lb.host, tui.MonitorOptions{
		Recorder:      lb.recorder,
		SurfaceWidth:  flagMonitorWidth,
		SurfaceHeight: flagMonitorHeight,
		Scale:         cfg.Surface.Scale,
	})
	if err != nil {
		return err
	}
	if lb.store != nil {
		fmt.Printf("Recorded %d engine calls as run %d.\n", len(lb.recorder.Calls()), lb.runID)
	}
	return nil
}
