package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/gamepad"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/surface"
)

var (
	flagGamepadJournal bool
	flagGamepadProfile string
)

var gamepadCmd = &cobra.Command{
	Use:   "gamepad",
	Short: "Drive a bridge from an SDL gamepad",
	Long: `Reads the first connected joystick through SDL3 and feeds its buttons,
sticks, hat and triggers into a live bridge that has been launched with
permission granted and a surface bound. Engine calls are logged and
journaled. Runs until interrupted.

SDL3 must be installed; it is loaded at runtime.

Examples:
  bridge gamepad --log-level debug
  bridge gamepad --profile cpu`,
	Args: cobra.NoArgs,
	RunE: runGamepad,
}

func init() {
	gamepadCmd.Flags().BoolVar(&flagGamepadJournal, "journal", true, "Journal the engine calls")
	gamepadCmd.Flags().StringVar(&flagGamepadProfile, "profile", "", "Profile the run: cpu or mem")
}

func runGamepad(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	switch flagGamepadProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu or mem)", flagGamepadProfile)
	}

	label := "gamepad " + time.Now().Format("2006-01-02 15:04:05")
	lb, err := newLiveBridge(cfg, logger, "gamepad", label, true, flagGamepadJournal)
	if err != nil {
		return err
	}
	defer lb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle := &core.SurfaceHandle{ID: 1}
	w, h := surface.FixedSize(1920, 1080, cfg.Surface.Scale)
	for _, ev := range []platform.Event{
		platform.Launched{},
		platform.SurfaceCreated{Handle: handle},
		platform.SurfaceChanged{Handle: handle, Width: w, Height: h},
	} {
		lb.host.Deliver(ev)
	}

	reader := gamepad.NewReader(gamepad.Options{
		PollHz:   cfg.Gamepad.PollHz,
		Deadzone: cfg.Gamepad.Deadzone,
		Logger:   logger.WithPrefix("gamepad"),
	})
	readErr := make(chan error, 1)
	go func() { readErr <- reader.Run(ctx) }()

	logger.Info("waiting for gamepad input, press Ctrl+C to stop", "session", lb.host.Session.State())
	err = lb.host.Dispatcher.Run(ctx, reader.Events())
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if rerr := <-readErr; rerr != nil {
		return rerr
	}
	lb.host.Deliver(platform.Paused{})

	logger.Info("gamepad run finished", "calls", len(lb.recorder.Calls()), "run", lb.runID)
	return err
}
