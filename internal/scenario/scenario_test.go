package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/session"
)

func TestShippedScenarios(t *testing.T) {
	scenarios, err := LoadDir(filepath.Join("..", "..", "scenarios"))
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("No scenarios found")
	}

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			res := Replay(sc, Options{})
			if err := sc.Verify(res); err != nil {
				t.Errorf("Verify() failed:\n%v", err)
			}
		})
	}
}

func TestParseEvents(t *testing.T) {
	data := `
name: parse
steps:
  - event: launch
  - event: surface_created
    surface: 4
  - event: surface_changed
    surface: 4
    width: 320
    height: 200
  - event: key
    key: KEY_42
    action: Up
  - event: motion
    action: scroll
    axes:
      AXIS_HAT_Y: 1
  - event: touch
    action: move
    x: 3
    y: 4
  - event: gesture
    gesture: single_tap_up
  - event: permission
    granted: true
  - event: surface_destroyed
`
	sc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if sc.HomeDir == "" {
		t.Error("Expected a default home directory")
	}
	if len(sc.Events) != 9 {
		t.Fatalf("Expected 9 events, got %d", len(sc.Events))
	}

	created := sc.Events[1].(platform.SurfaceCreated)
	changed := sc.Events[2].(platform.SurfaceChanged)
	if created.Handle != changed.Handle {
		t.Error("Steps with the same surface id should share a handle")
	}
	if changed.Width != 320 || changed.Height != 200 {
		t.Errorf("Changed = %+v", changed)
	}

	key := sc.Events[3].(platform.KeyEvent)
	if key.Code != core.KeyCode(42) || key.Action != input.KeyUp {
		t.Errorf("Key = %+v", key)
	}

	motion := sc.Events[4].(platform.MotionEvent)
	if motion.Sample.Action != input.MotionScroll || motion.Sample.Axis(input.RawHatY) != 1 {
		t.Errorf("Motion = %+v", motion)
	}

	touch := sc.Events[5].(platform.TouchEvent)
	if touch.Action != platform.TouchMove || touch.X != 3 || touch.Y != 4 {
		t.Errorf("Touch = %+v", touch)
	}

	if g := sc.Events[6].(platform.GestureEvent); g.Kind != platform.GestureSingleTapUp {
		t.Errorf("Gesture = %v", g.Kind)
	}
	if p := sc.Events[7].(platform.PermissionResult); !p.Granted {
		t.Error("Expected a grant")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no steps", "name: empty\n", "no steps"},
		{"unknown event", "steps:\n  - event: explode\n", "unknown event"},
		{"unknown axis", "steps:\n  - event: motion\n    axes: {AXIS_W: 1}\n", "AXIS_W"},
		{"unknown key action", "steps:\n  - event: key\n    key: BUTTON_A\n    action: hold\n", "hold"},
		{"unknown gesture", "steps:\n  - event: gesture\n    gesture: pinch\n", "pinch"},
		{"malformed", "steps: [", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected parse error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFileNamesScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume_twice.yaml")
	os.WriteFile(path, []byte("steps:\n  - event: resume\n  - event: resume\n"), 0o644)

	sc, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "resume_twice" {
		t.Errorf("Name = %q, expected the file name", sc.Name)
	}
	if sc.FilePath != path {
		t.Errorf("FilePath = %q", sc.FilePath)
	}
}

func TestLoadDirReportsBadFiles(t *testing.T) {
	scenarios, err := LoadDir("testdata")
	if err == nil {
		t.Fatal("Expected error for the bad scenario")
	}
	if !strings.Contains(err.Error(), "NOT_A_KEY") {
		t.Errorf("Error %q should name the bad key", err)
	}
	if len(scenarios) != 0 {
		t.Errorf("Expected no valid scenarios, got %d", len(scenarios))
	}
}

func TestReplaySinks(t *testing.T) {
	sc, err := Parse([]byte("granted: true\nsteps:\n  - event: launch\n  - event: profiling\n"))
	if err != nil {
		t.Fatal(err)
	}

	var seen []string
	res := Replay(sc, Options{Sinks: []func(engine.Call){func(c engine.Call) {
		seen = append(seen, c.Kind.String())
	}}})

	if len(seen) != len(res.Calls) {
		t.Errorf("Sink saw %d calls, result has %d", len(seen), len(res.Calls))
	}
	if res.State != session.Initialized {
		t.Errorf("State = %v, expected Initialized without a surface", res.State)
	}
}

func TestVerifyReportsMismatches(t *testing.T) {
	two := 2
	sc := Scenario{Expect: YAMLExpect{
		Calls:    []string{"start()"},
		Counts:   map[string]int{"initializeEngine": 1},
		State:    "Running",
		Requests: &two,
	}}
	res := Result{
		Calls:    []engine.Call{{Kind: engine.CallStop}},
		State:    session.Suspended,
		Requests: 1,
	}

	err := sc.Verify(res)
	if err == nil {
		t.Fatal("Expected mismatches")
	}
	msg := err.Error()
	for _, want := range []string{"call 1", "initializeEngine called 0 times", "state Suspended", "requested 1 times"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error should mention %q:\n%s", want, msg)
		}
	}
}
