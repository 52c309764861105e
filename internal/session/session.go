// Package session tracks native engine initialization and the
// running/suspended state of the game, and forwards translated input.
package session

import (
	"errors"
	"io"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/core"
)

// State is the engine session state.
type State int

const (
	Uninitialized State = iota
	Initialized
	Running
	Suspended
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Suspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

var (
	// ErrNotInitialized is returned by Start before EnsureInitialized succeeded.
	ErrNotInitialized = errors.New("session: engine not initialized")

	// ErrHomeDirectoryFixed is returned when a second, different home directory is set.
	ErrHomeDirectoryFixed = errors.New("session: home directory already set")

	// ErrRelativeHomeDir is returned for home directories that are not absolute.
	ErrRelativeHomeDir = errors.New("session: home directory must be absolute")
)

// Loader loads the native engine code. It may be called again after a failure.
type Loader func() error

// Options configures a Session.
type Options struct {
	// Loader loads the native library. Nil means the engine is linked in.
	Loader Loader

	// Logger receives lifecycle logs. Nil discards them.
	Logger *log.Logger
}

// Session is the single owner of the engine lifecycle. Create one per
// process and pass it to every handler that needs it.
//
// The load and init steps are separately idempotent because library loading
// happens when the surface view is built, while init waits for the storage
// permission. Both share one lock so racing first callers cannot double
// either step.
type Session struct {
	engine core.Engine
	loader Loader
	logger *log.Logger

	mu          sync.Mutex
	state       State
	loaded      bool
	initialized bool
	homeDir     string
	started     bool // the game was started after the permission grant
	surfaceSeen bool // a non-nil surface reached the engine at least once
	pending     bool // Start was requested before any surface was delivered
}

// New creates a session around the engine boundary.
func New(engine core.Engine, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		engine: engine,
		loader: opts.Loader,
		logger: logger,
	}
}

// EnsureLibraryLoaded loads the native library once.
func (s *Session) EnsureLibraryLoaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Session) loadLocked() error {
	if s.loaded {
		return nil
	}
	if s.loader != nil {
		if err := s.loader(); err != nil {
			s.logger.Error("could not load native library", "error", err)
			return err
		}
	}
	s.loaded = true
	s.logger.Debug("native library loaded")
	return nil
}

// SetHomeDirectory fixes the engine home directory. The first call forwards
// it to the engine; repeating the same path is a no-op; any other path is
// rejected.
func (s *Session) SetHomeDirectory(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setHomeLocked(path)
}

func (s *Session) setHomeLocked(path string) error {
	if !filepath.IsAbs(path) {
		return ErrRelativeHomeDir
	}
	path = filepath.Clean(path)
	if s.homeDir != "" {
		if s.homeDir == path {
			return nil
		}
		s.logger.Warn("home directory already set", "current", s.homeDir, "requested", path)
		return ErrHomeDirectoryFixed
	}
	s.homeDir = path
	s.logger.Info("home directory", "path", path)
	s.engine.SetHomeDirectory(path)
	return nil
}

// EnsureInitialized loads the library if needed and runs engine init once.
// homeDir is used only if no home directory has been set yet.
func (s *Session) EnsureInitialized(homeDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	if s.initialized {
		return nil
	}
	if s.homeDir == "" {
		if err := s.setHomeLocked(homeDir); err != nil {
			return err
		}
	}

	s.engine.InitializeEngine(s.homeDir)
	s.initialized = true
	s.state = Initialized
	s.logger.Info("engine initialized", "home", s.homeDir)
	return nil
}

// Start moves the session to Running. It fails with ErrNotInitialized, without
// touching the engine, when called before EnsureInitialized. If no surface has
// been delivered yet the start is held back until SurfaceDelivered.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *Session) startLocked() error {
	switch s.state {
	case Uninitialized:
		s.logger.Warn("start before initialization ignored")
		return ErrNotInitialized
	case Running:
		return nil
	}
	if !s.surfaceSeen {
		if !s.pending {
			s.logger.Debug("start deferred until a surface is delivered")
		}
		s.pending = true
		return nil
	}
	s.pending = false
	s.engine.Start()
	s.state = Running
	s.logger.Info("session running")
	return nil
}

// Stop moves a running session to Suspended. It is a no-op otherwise.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	s.pending = false
	if s.state != Running {
		return
	}
	s.engine.Stop()
	s.state = Suspended
	s.logger.Info("session suspended")
}

// SurfaceDelivered records that the engine has been handed a surface and
// performs a start that was held back for it.
func (s *Session) SurfaceDelivered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaceSeen = true
	if s.pending {
		//nolint:errcheck // pending is only set once initialized
		s.startLocked()
	}
}

// MarkStarted records that the game was started and starts the engine.
// Later Resume calls restart it.
func (s *Session) MarkStarted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Uninitialized {
		return ErrNotInitialized
	}
	s.started = true
	return s.startLocked()
}

// Resume handles the app coming to the foreground. The engine only starts if
// the game was started before; until then resuming does nothing.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	//nolint:errcheck // started implies initialized
	s.startLocked()
}

// Pause handles the app leaving the foreground.
func (s *Session) Pause() {
	s.Stop()
}

// DispatchKey forwards a key transition.
func (s *Session) DispatchKey(tr core.KeyTransition) {
	s.engine.DispatchKeyEvent(tr.Code, tr.Pressed)
}

// SetAxis forwards an axis sample.
func (s *Session) SetAxis(sample core.AxisSample) {
	s.engine.SetAxisValue(sample.Axis, sample.Value)
}

// RequestProfilingDump asks the engine to print its profiling data.
func (s *Session) RequestProfilingDump() {
	s.engine.RequestProfilingDump()
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HomeDirectory returns the fixed home directory, or "" if none is set.
func (s *Session) HomeDirectory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homeDir
}

// Started reports whether the game was started.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
