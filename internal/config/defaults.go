package config

import (
	_ "embed"

	"github.com/vovakirdan/serious-bridge/internal/core"
)

//go:embed defaults/bridge.yaml
var defaultBridgeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	rt := core.DefaultConfig()
	return Config{
		HomeDir: "~/.bridge/game",
		Surface: SurfaceConfig{Scale: rt.SurfaceScale},
		Input: InputConfig{
			ViewMultiplier:  rt.ViewMultiplier,
			ButtonThreshold: rt.ButtonThreshold,
		},
		Gamepad: GamepadConfig{
			PollHz:   250,
			Deadzone: 0.08,
		},
		Storage: StorageConfig{DBPath: "~/.bridge/journal.db"},
		Logging: LoggingConfig{Level: "info"},
	}
}
