package platform

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/session"
	"github.com/vovakirdan/serious-bridge/internal/surface"
)

// HostOptions configures a Host.
type HostOptions struct {
	Runtime core.RuntimeConfig
	Rules   []input.AxisRule // nil uses the default layout

	// Granted is the initial permission state.
	Granted bool

	// MkdirAll creates the home directory. Nil uses os.MkdirAll.
	MkdirAll session.DirMaker

	// Loader loads the native library when the host is built. Nil means
	// it is linked in.
	Loader session.Loader

	Logger *log.Logger
}

// Host wires one engine to a full bridge: session, permission gate,
// surface bridge and dispatcher. Desktop tools feed it platform events.
type Host struct {
	Session     *session.Session
	Surface     *surface.Bridge
	Gate        *session.Gate
	Permissions *SimPermissions
	Dispatcher  *Dispatcher
}

// NewHost builds a host around eng.
func NewHost(eng core.Engine, opts HostOptions) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess := session.New(eng, session.Options{
		Loader: opts.Loader,
		Logger: logger.WithPrefix("session"),
	})
	perms := NewSimPermissions(opts.Granted)
	gate := session.NewGate(sess, perms, session.GateOptions{
		HomeDir:  opts.Runtime.HomeDir,
		MkdirAll: opts.MkdirAll,
		Logger:   logger.WithPrefix("permission"),
	})
	bridge := surface.NewBridge(eng, logger.WithPrefix("surface"))
	// The library loads with the surface; a failure is retried at init.
	if err := sess.EnsureLibraryLoaded(); err != nil {
		logger.Warn("native library not loaded, retrying at init", "error", err)
	}
	disp := NewDispatcher(bridge, sess, Options{
		Gate:            gate,
		Axes:            input.NewAxisMapper(opts.Rules),
		ButtonThreshold: opts.Runtime.ButtonThreshold,
		Logger:          logger.WithPrefix("platform"),
	})

	return &Host{
		Session:     sess,
		Surface:     bridge,
		Gate:        gate,
		Permissions: perms,
		Dispatcher:  disp,
	}
}

// Deliver dispatches one event. A PermissionResult also updates the
// simulated permission state, the way the platform records the answer.
func (h *Host) Deliver(ev Event) bool {
	if pr, ok := ev.(PermissionResult); ok {
		h.Permissions.SetGranted(pr.Granted)
	}
	return h.Dispatcher.Dispatch(ev)
}
