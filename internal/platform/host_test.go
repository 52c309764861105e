package platform

import (
	"errors"
	"testing"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/session"
)

func newTestHost(granted bool) (*Host, *engine.Recorder, *[]string) {
	rec := engine.NewRecorder()
	var made []string
	h := NewHost(rec, HostOptions{
		Runtime: core.RuntimeConfig{HomeDir: "/data/game", ButtonThreshold: 0.5},
		Granted: granted,
		MkdirAll: func(path string) error {
			made = append(made, path)
			return nil
		},
	})
	return h, rec, &made
}

func TestHostLaunchDenied(t *testing.T) {
	h, rec, _ := newTestHost(false)

	h.Deliver(Launched{})
	h.Deliver(SurfaceCreated{Handle: &core.SurfaceHandle{ID: 1}})
	h.Deliver(SurfaceChanged{Handle: &core.SurfaceHandle{ID: 1}, Width: 640, Height: 360})
	h.Deliver(PermissionResult{Granted: false})

	if h.Permissions.Requests() != 2 {
		t.Errorf("Requests = %d, expected 2", h.Permissions.Requests())
	}
	if h.Permissions.Granted() {
		t.Error("Permission should still be denied")
	}
	if rec.Count(engine.CallInitializeEngine) != 0 {
		t.Error("Engine should not initialize while permission is denied")
	}

	h.Deliver(PermissionResult{Granted: true})
	if !h.Permissions.Granted() {
		t.Error("Grant should be recorded")
	}
	if h.Session.State() != session.Running {
		t.Errorf("State() = %v, expected Running", h.Session.State())
	}
}

func TestHostLaunchGranted(t *testing.T) {
	h, rec, made := newTestHost(true)

	h.Deliver(Launched{})
	if h.Permissions.Requests() != 0 {
		t.Error("Held permission should not be requested")
	}
	if rec.Count(engine.CallInitializeEngine) != 1 {
		t.Error("Engine should initialize on launch")
	}
	if len(*made) != 1 || (*made)[0] != "/data/game" {
		t.Errorf("Created dirs = %v", *made)
	}
	// No surface yet, so the engine waits
	if rec.Count(engine.CallStart) != 0 {
		t.Error("Engine should not start without a surface")
	}

	h.Deliver(SurfaceChanged{Handle: &core.SurfaceHandle{ID: 1}, Width: 10, Height: 10})
	if rec.Count(engine.CallStart) != 1 {
		t.Error("Engine should start once the surface arrives")
	}
}

func TestHostLoadsLibraryWithSurface(t *testing.T) {
	rec := engine.NewRecorder()
	loads := 0
	h := NewHost(rec, HostOptions{
		Runtime:  core.RuntimeConfig{HomeDir: "/data/game"},
		MkdirAll: func(string) error { return nil },
		Loader: func() error {
			loads++
			return nil
		},
	})
	if loads != 1 {
		t.Fatalf("Library loads after building the host = %d, expected 1", loads)
	}

	h.Deliver(SurfaceCreated{Handle: &core.SurfaceHandle{ID: 1}})
	h.Deliver(Launched{})
	if rec.Count(engine.CallInitializeEngine) != 0 {
		t.Error("Engine should not initialize before the grant")
	}

	h.Deliver(PermissionResult{Granted: true})
	if rec.Count(engine.CallInitializeEngine) != 1 {
		t.Error("Engine should initialize after the grant")
	}
	if loads != 1 {
		t.Errorf("Library loaded %d times, expected once", loads)
	}
}

func TestHostRetriesFailedLoadAtInit(t *testing.T) {
	rec := engine.NewRecorder()
	loads := 0
	h := NewHost(rec, HostOptions{
		Runtime:  core.RuntimeConfig{HomeDir: "/data/game"},
		Granted:  true,
		MkdirAll: func(string) error { return nil },
		Loader: func() error {
			loads++
			if loads == 1 {
				return errors.New("library busy")
			}
			return nil
		},
	})
	if loads != 1 {
		t.Fatalf("Library loads after building the host = %d, expected 1", loads)
	}

	h.Deliver(Launched{})
	if loads != 2 {
		t.Errorf("Library loads after launch = %d, expected a retry", loads)
	}
	if rec.Count(engine.CallInitializeEngine) != 1 {
		t.Error("Engine should initialize once the retry succeeds")
	}
}

func TestSimPermissions(t *testing.T) {
	p := NewSimPermissions(false)
	p.Request()
	p.Request()
	p.SetGranted(true)

	if !p.Granted() || p.Requests() != 2 {
		t.Errorf("Granted=%v Requests=%d", p.Granted(), p.Requests())
	}
}
