package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/session"
)

func newTestMonitor(granted bool) (MonitorModel, *platform.Host, *engine.Recorder) {
	rec := engine.NewRecorder()
	host := platform.NewHost(rec, platform.HostOptions{
		Runtime:  core.RuntimeConfig{HomeDir: "/data/game", ButtonThreshold: 0.5},
		Granted:  granted,
		MkdirAll: func(string) error { return nil },
	})
	m := NewMonitorModel(host, MonitorOptions{Recorder: rec, Scale: 0.5})
	m.now = func() time.Time { return time.Unix(1000, 0) }
	return m, host, rec
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m MonitorModel, msg tea.Msg) MonitorModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MonitorModel)
	if !ok {
		t.Fatalf("Update returned %T, expected MonitorModel", next)
	}
	return mm
}

func TestMonitorPermissionFlow(t *testing.T) {
	m, host, rec := newTestMonitor(false)

	m = update(t, m, launchMsg{})
	if host.Permissions.Requests() != 1 {
		t.Fatalf("Requests = %d after launch, expected 1", host.Permissions.Requests())
	}

	m = update(t, m, runeKey("c"))
	if !host.Surface.Delivered() {
		t.Fatal("Surface should be delivered after c")
	}
	if h := host.Surface.Current(); h == nil || h.ID != 1 {
		t.Errorf("Current surface = %v, expected #1", h)
	}

	m = update(t, m, runeKey("n"))
	if host.Session.State() != session.Uninitialized {
		t.Errorf("State = %v after deny, expected Uninitialized", host.Session.State())
	}

	m = update(t, m, runeKey("g"))
	if host.Session.State() != session.Running {
		t.Errorf("State = %v after grant, expected Running", host.Session.State())
	}
	if rec.Count(engine.CallStart) != 1 {
		t.Errorf("start called %d times, expected 1", rec.Count(engine.CallStart))
	}
	if m.lastEvent != "permission" {
		t.Errorf("lastEvent = %q, expected permission", m.lastEvent)
	}
}

func TestMonitorSurfaceIsScaled(t *testing.T) {
	m, host, rec := newTestMonitor(true)

	update(t, m, runeKey("c"))

	calls := rec.Calls()
	if len(calls) == 0 || calls[len(calls)-1].Kind != engine.CallNotifySurface {
		t.Fatalf("Expected a notifySurface call, got %v", rec.Kinds())
	}
	h := host.Surface.Current()
	if h == nil {
		t.Fatal("Expected a current surface")
	}
	if h.Width != 960 || h.Height != 540 {
		t.Errorf("Surface size = %dx%d, expected 960x540", h.Width, h.Height)
	}
}

func TestMonitorPauseToggle(t *testing.T) {
	m, host, _ := newTestMonitor(true)

	m = update(t, m, launchMsg{})
	m = update(t, m, runeKey("c"))
	if host.Session.State() != session.Running {
		t.Fatalf("State = %v, expected Running", host.Session.State())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.paused || host.Session.State() != session.Suspended {
		t.Errorf("After tab: paused=%v state=%v, expected paused Suspended", m.paused, host.Session.State())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.paused || host.Session.State() != session.Running {
		t.Errorf("After second tab: paused=%v state=%v, expected Running", m.paused, host.Session.State())
	}
}

func TestMonitorGamepadKeys(t *testing.T) {
	m, _, rec := newTestMonitor(true)

	m = update(t, m, launchMsg{})
	m = update(t, m, runeKey("c"))
	rec.Reset()

	m = update(t, m, runeKey(" "))
	if rec.Count(engine.CallDispatchKeyEvent) != 1 {
		t.Fatalf("dispatchKeyEvent called %d times, expected 1", rec.Count(engine.CallDispatchKeyEvent))
	}
	c := rec.Calls()[0]
	if c.Code != core.KeyButtonA || !c.Pressed {
		t.Errorf("Key call = %s, expected BUTTON_A pressed", c)
	}

	m = update(t, m, TickMsg(time.Unix(1000, 0).Add(HoldTimeout)))
	calls := rec.Calls()
	last := calls[len(calls)-1]
	if last.Kind != engine.CallDispatchKeyEvent || last.Pressed {
		t.Errorf("Last call = %s, expected a key release", last)
	}

	rec.Reset()
	update(t, m, runeKey("d"))
	if rec.Count(engine.CallSetAxisValue) == 0 {
		t.Error("Stick key should set axis values")
	}
}

func TestMonitorQuitPauses(t *testing.T) {
	m, host, _ := newTestMonitor(true)

	m = update(t, m, launchMsg{})
	m = update(t, m, runeKey("c"))

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("Quit should return a command")
	}
	if !next.(MonitorModel).Quitting() {
		t.Error("Model should be quitting")
	}
	if host.Session.State() != session.Suspended {
		t.Errorf("State = %v after quit, expected Suspended", host.Session.State())
	}
}

func TestMonitorView(t *testing.T) {
	m, _, _ := newTestMonitor(true)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, launchMsg{})
	m = update(t, m, runeKey("c"))

	view := m.View()
	for _, want := range []string{"ENGINE BRIDGE MONITOR", "Running", "AXIS_X", "start()"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}
