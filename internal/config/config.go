// Package config provides YAML-based configuration loading for the engine
// bridge: home directory, surface scale, input tuning and the host tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
)

// Config is the bridge configuration.
type Config struct {
	HomeDir string        `yaml:"home_dir"`
	Engine  EngineConfig  `yaml:"engine"`
	Surface SurfaceConfig `yaml:"surface"`
	Input   InputConfig   `yaml:"input"`
	Axes    []AxisConfig  `yaml:"axes"`
	Gamepad GamepadConfig `yaml:"gamepad"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig locates the native engine.
type EngineConfig struct {
	Library string `yaml:"library"` // shared library to load; empty when linked in
}

// SurfaceConfig defines the render buffer sizing.
type SurfaceConfig struct {
	Scale float32 `yaml:"scale"` // buffer size relative to the measured view
}

// InputConfig defines input translation tuning.
type InputConfig struct {
	ViewMultiplier  float32 `yaml:"view_multiplier"`
	ButtonThreshold float32 `yaml:"button_threshold"`
}

// AxisConfig is one axis rule by name, e.g. source AXIS_Z, target LOOK_LR.
type AxisConfig struct {
	Source string  `yaml:"source"`
	Target string  `yaml:"target"`
	Scale  float32 `yaml:"scale"`
}

// GamepadConfig defines the SDL gamepad reader.
type GamepadConfig struct {
	PollHz   int     `yaml:"poll_hz"`
	Deadzone float32 `yaml:"deadzone"`
}

// StorageConfig defines the call journal location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LoggingConfig defines the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Validate reports every invalid value in the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.HomeDir == "" {
		errs = append(errs, errors.New("home_dir is empty"))
	}
	if c.Surface.Scale <= 0 || c.Surface.Scale > 1 {
		errs = append(errs, fmt.Errorf("surface.scale %v out of range (0, 1]", c.Surface.Scale))
	}
	if c.Input.ViewMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("input.view_multiplier %v must be positive", c.Input.ViewMultiplier))
	}
	if c.Input.ButtonThreshold <= 0 || c.Input.ButtonThreshold >= 1 {
		errs = append(errs, fmt.Errorf("input.button_threshold %v out of range (0, 1)", c.Input.ButtonThreshold))
	}
	if _, err := c.AxisRules(); err != nil {
		errs = append(errs, err)
	}
	if c.Gamepad.PollHz <= 0 {
		errs = append(errs, fmt.Errorf("gamepad.poll_hz %d must be positive", c.Gamepad.PollHz))
	}
	if c.Gamepad.Deadzone < 0 || c.Gamepad.Deadzone >= 1 {
		errs = append(errs, fmt.Errorf("gamepad.deadzone %v out of range [0, 1)", c.Gamepad.Deadzone))
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// AxisRules converts the axes section into mapper rules. An empty section
// yields the default stick layout with the configured view multiplier.
func (c Config) AxisRules() ([]input.AxisRule, error) {
	if len(c.Axes) == 0 {
		mult := c.Input.ViewMultiplier
		if mult <= 0 {
			mult = input.DefaultViewMultiplier
		}
		return input.DefaultAxisRules(mult), nil
	}

	rules := make([]input.AxisRule, 0, len(c.Axes))
	for i, a := range c.Axes {
		src, ok := input.ParseRawAxis(a.Source)
		if !ok {
			return nil, fmt.Errorf("axes[%d]: unknown source axis %q", i, a.Source)
		}
		dst, ok := core.ParseAxisID(a.Target)
		if !ok {
			return nil, fmt.Errorf("axes[%d]: unknown target axis %q", i, a.Target)
		}
		rules = append(rules, input.AxisRule{Source: src, Target: dst, Scale: a.Scale})
	}
	return rules, nil
}

// Runtime returns the values the session and dispatcher need, with the home
// directory expanded.
func (c Config) Runtime() (core.RuntimeConfig, error) {
	home, err := ExpandHome(c.HomeDir)
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	return core.RuntimeConfig{
		HomeDir:         home,
		ViewMultiplier:  c.Input.ViewMultiplier,
		ButtonThreshold: c.Input.ButtonThreshold,
		SurfaceScale:    c.Surface.Scale,
	}, nil
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ExpandHome replaces a leading ~ with the user's home directory and makes
// the result absolute.
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}
	return abs, nil
}
