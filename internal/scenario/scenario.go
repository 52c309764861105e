// Package scenario loads scripted platform event sequences from YAML and
// replays them through a bridge host.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
)

// YAMLScenario is the file layout of a scenario.
type YAMLScenario struct {
	Name    string     `yaml:"name"`
	HomeDir string     `yaml:"home_dir"`
	Granted bool       `yaml:"granted"` // permission held at launch
	Steps   []YAMLStep `yaml:"steps"`
	Expect  YAMLExpect `yaml:"expect"`
}

// YAMLStep is one platform event. Only the fields of its kind are read.
type YAMLStep struct {
	Event   string             `yaml:"event"`
	Surface uint64             `yaml:"surface,omitempty"`
	Width   int                `yaml:"width,omitempty"`
	Height  int                `yaml:"height,omitempty"`
	Key     string             `yaml:"key,omitempty"`
	Action  string             `yaml:"action,omitempty"`
	Repeat  int                `yaml:"repeat,omitempty"`
	Axes    map[string]float32 `yaml:"axes,omitempty"`
	Gesture string             `yaml:"gesture,omitempty"`
	Granted bool               `yaml:"granted,omitempty"`
	X       float32            `yaml:"x,omitempty"`
	Y       float32            `yaml:"y,omitempty"`
}

// YAMLExpect holds the assertions checked after a replay.
type YAMLExpect struct {
	Calls    []string       `yaml:"calls,omitempty"`
	Counts   map[string]int `yaml:"counts,omitempty"`
	State    string         `yaml:"state,omitempty"`
	Requests *int           `yaml:"requests,omitempty"`
}

// Scenario is a parsed scenario ready to replay.
type Scenario struct {
	Name     string
	HomeDir  string
	Granted  bool
	Events   []platform.Event
	Expect   YAMLExpect
	FilePath string
}

// Parse parses a YAML scenario.
func Parse(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(ys.Steps) == 0 {
		return Scenario{}, errors.New("scenario has no steps")
	}
	if ys.HomeDir == "" {
		ys.HomeDir = "/sdcard/SeriousSam"
	}

	sc := Scenario{
		Name:    ys.Name,
		HomeDir: ys.HomeDir,
		Granted: ys.Granted,
		Events:  make([]platform.Event, 0, len(ys.Steps)),
		Expect:  ys.Expect,
	}

	// Steps that refer to a surface by id share one handle per id.
	handles := make(map[uint64]*core.SurfaceHandle)
	handle := func(id uint64) *core.SurfaceHandle {
		if id == 0 {
			return nil
		}
		h, ok := handles[id]
		if !ok {
			h = &core.SurfaceHandle{ID: id}
			handles[id] = h
		}
		return h
	}

	for i, st := range ys.Steps {
		ev, err := st.event(handle)
		if err != nil {
			return Scenario{}, fmt.Errorf("step %d (%s): %w", i+1, st.Event, err)
		}
		sc.Events = append(sc.Events, ev)
	}
	return sc, nil
}

func (st YAMLStep) event(handle func(uint64) *core.SurfaceHandle) (platform.Event, error) {
	switch st.Event {
	case "launch":
		return platform.Launched{}, nil
	case "surface_created":
		return platform.SurfaceCreated{Handle: handle(st.Surface)}, nil
	case "surface_changed":
		return platform.SurfaceChanged{Handle: handle(st.Surface), Width: st.Width, Height: st.Height}, nil
	case "surface_destroyed":
		return platform.SurfaceDestroyed{}, nil
	case "key":
		code, ok := core.ParseKeyCode(st.Key)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", st.Key)
		}
		action, ok := parseKeyAction(st.Action)
		if !ok {
			return nil, fmt.Errorf("unknown key action %q", st.Action)
		}
		return platform.KeyEvent{Code: code, Action: action, Repeat: st.Repeat}, nil
	case "motion":
		sample := input.NewMotionSample()
		action, ok := parseMotionAction(st.Action)
		if !ok {
			return nil, fmt.Errorf("unknown motion action %q", st.Action)
		}
		sample.Action = action
		for name, v := range st.Axes {
			raw, ok := input.ParseRawAxis(name)
			if !ok {
				return nil, fmt.Errorf("unknown axis %q", name)
			}
			sample.Set(raw, v)
		}
		return platform.MotionEvent{Sample: sample}, nil
	case "touch":
		action, ok := parseTouchAction(st.Action)
		if !ok {
			return nil, fmt.Errorf("unknown touch action %q", st.Action)
		}
		return platform.TouchEvent{Action: action, X: st.X, Y: st.Y}, nil
	case "gesture":
		kind, ok := parseGesture(st.Gesture)
		if !ok {
			return nil, fmt.Errorf("unknown gesture %q", st.Gesture)
		}
		return platform.GestureEvent{Kind: kind}, nil
	case "resume":
		return platform.Resumed{}, nil
	case "pause":
		return platform.Paused{}, nil
	case "permission":
		return platform.PermissionResult{Granted: st.Granted}, nil
	case "profiling":
		return platform.ProfilingRequested{}, nil
	default:
		return nil, fmt.Errorf("unknown event")
	}
}

func parseKeyAction(s string) (input.KeyAction, bool) {
	for _, a := range []input.KeyAction{input.KeyDown, input.KeyUp, input.KeyMultiple} {
		if strings.EqualFold(a.String(), s) {
			return a, true
		}
	}
	return 0, false
}

func parseMotionAction(s string) (input.MotionAction, bool) {
	switch strings.ToLower(s) {
	case "", "move":
		return input.MotionMove, true
	case "hover":
		return input.MotionHoverMove, true
	case "scroll":
		return input.MotionScroll, true
	case "other":
		return input.MotionOther, true
	}
	return 0, false
}

func parseTouchAction(s string) (platform.TouchAction, bool) {
	for a := platform.TouchDown; a <= platform.TouchCancel; a++ {
		if strings.EqualFold(a.String(), s) {
			return a, true
		}
	}
	return 0, false
}

func parseGesture(s string) (platform.GestureKind, bool) {
	norm := strings.ReplaceAll(s, "_", "")
	for k := platform.GestureDown; k <= platform.GestureFling; k++ {
		if strings.EqualFold(k.String(), norm) {
			return k, true
		}
	}
	return 0, false
}

// LoadFile loads one scenario file.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	sc.FilePath = path
	return sc, nil
}

// LoadDir loads every .yaml/.yml scenario in dir, sorted by file name.
// Files that fail to parse are reported together after the rest are loaded.
func LoadDir(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Scenario
	var errs []error
	for _, name := range names {
		sc, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, sc)
	}
	return out, errors.Join(errs...)
}
