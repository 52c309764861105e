package session

import (
	"errors"
	"testing"

	"github.com/vovakirdan/serious-bridge/internal/engine"
)

type fakePermissions struct {
	granted  bool
	requests int
}

func (f *fakePermissions) Granted() bool { return f.granted }
func (f *fakePermissions) Request()      { f.requests++ }

func newTestGate(perms *fakePermissions) (*Gate, *Session, *engine.Recorder, *[]string) {
	rec := engine.NewRecorder()
	s := New(rec, Options{})
	s.SurfaceDelivered()
	var made []string
	g := NewGate(s, perms, GateOptions{
		HomeDir: "/sdcard/SeriousSam",
		MkdirAll: func(path string) error {
			made = append(made, path)
			return nil
		},
	})
	return g, s, rec, &made
}

func TestGateDeniedDeniedGranted(t *testing.T) {
	perms := &fakePermissions{}
	g, s, rec, made := newTestGate(perms)

	if err := g.Check(); err != nil {
		t.Fatal(err)
	}
	if perms.requests != 1 {
		t.Fatalf("Check without permission should request once, got %d", perms.requests)
	}

	g.OnResult(false)
	g.OnResult(false)

	if len(rec.Calls()) != 0 {
		t.Fatalf("Nothing may reach the engine before the grant, got %v", rec.Calls())
	}
	if perms.requests != 3 {
		t.Errorf("Each denial should ask again: %d requests, expected 3", perms.requests)
	}

	if err := g.OnResult(true); err != nil {
		t.Fatalf("OnResult(true) failed: %v", err)
	}

	if n := rec.Count(engine.CallInitializeEngine); n != 1 {
		t.Errorf("initializeEngine called %d times, expected 1", n)
	}
	if n := rec.Count(engine.CallStart); n != 1 {
		t.Errorf("start called %d times, expected 1", n)
	}
	kinds := rec.Kinds()
	if kinds[len(kinds)-1] != engine.CallStart {
		t.Errorf("Last call = %v, expected start", kinds[len(kinds)-1])
	}
	if s.State() != Running {
		t.Errorf("State() = %v, expected Running", s.State())
	}
	if len(*made) != 1 || (*made)[0] != "/sdcard/SeriousSam" {
		t.Errorf("Home directory creation = %v", *made)
	}
	if perms.requests != 3 {
		t.Errorf("Grant should not trigger another request, got %d", perms.requests)
	}
}

func TestGateAlreadyGranted(t *testing.T) {
	perms := &fakePermissions{granted: true}
	g, s, rec, _ := newTestGate(perms)

	if err := g.Check(); err != nil {
		t.Fatal(err)
	}

	if perms.requests != 0 {
		t.Error("Granted permission should not be requested")
	}
	if s.State() != Running {
		t.Errorf("State() = %v, expected Running", s.State())
	}
	if rec.Count(engine.CallInitializeEngine) != 1 {
		t.Error("Engine should be initialized once")
	}
}

func TestGateSecondGrantIsNoop(t *testing.T) {
	perms := &fakePermissions{}
	g, _, rec, _ := newTestGate(perms)

	g.OnResult(true)
	g.OnResult(true)

	if rec.Count(engine.CallInitializeEngine) != 1 || rec.Count(engine.CallStart) != 1 {
		t.Errorf("Repeated grants should not re-init or restart: %v", rec.Kinds())
	}
}

func TestGateUsesSessionHomeDir(t *testing.T) {
	perms := &fakePermissions{granted: true}
	g, s, rec, made := newTestGate(perms)

	if err := s.SetHomeDirectory("/storage/emulated/0/Game"); err != nil {
		t.Fatal(err)
	}
	g.Check()

	if (*made)[0] != "/storage/emulated/0/Game" {
		t.Errorf("Gate created %q, expected the session home directory", (*made)[0])
	}
	calls := rec.Calls()
	if calls[1].Kind != engine.CallInitializeEngine || calls[1].Path != "/storage/emulated/0/Game" {
		t.Errorf("Init call = %v", calls[1])
	}
}

func TestGateMkdirFailureStillStarts(t *testing.T) {
	rec := engine.NewRecorder()
	s := New(rec, Options{})
	s.SurfaceDelivered()
	g := NewGate(s, &fakePermissions{granted: true}, GateOptions{
		HomeDir:  "/readonly/game",
		MkdirAll: func(string) error { return errors.New("read-only file system") },
	})

	if err := g.Check(); err != nil {
		t.Fatalf("Check() failed: %v", err)
	}
	if s.State() != Running {
		t.Error("Directory creation failure should not block start")
	}
}
