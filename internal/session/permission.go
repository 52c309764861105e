package session

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Permissions is the platform's storage-write permission flow.
type Permissions interface {
	// Granted reports whether storage-write permission is held right now.
	Granted() bool

	// Request asks the user for the permission. The answer comes back
	// through Gate.OnResult.
	Request()
}

// DirMaker creates the home directory and any missing parents.
type DirMaker func(path string) error

// Gate holds back game start until storage permission is granted.
// A denial simply asks again; there is no backoff and no giving up.
type Gate struct {
	session *Session
	perms   Permissions
	homeDir string
	mkdir   DirMaker
	logger  *log.Logger

	requests int
}

// GateOptions configures a Gate.
type GateOptions struct {
	HomeDir  string
	MkdirAll DirMaker // defaults to os.MkdirAll with 0o755
	Logger   *log.Logger
}

// NewGate creates a permission gate in front of the session.
func NewGate(s *Session, perms Permissions, opts GateOptions) *Gate {
	mkdir := opts.MkdirAll
	if mkdir == nil {
		mkdir = func(path string) error { return os.MkdirAll(path, 0o755) }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gate{
		session: s,
		perms:   perms,
		homeDir: opts.HomeDir,
		mkdir:   mkdir,
		logger:  logger,
	}
}

// Check starts the game if permission is already held, otherwise requests it.
func (g *Gate) Check() error {
	if g.perms.Granted() {
		return g.startGame()
	}
	g.request()
	return nil
}

// OnResult handles the answer to a permission request.
func (g *Gate) OnResult(granted bool) error {
	if !granted {
		g.logger.Warn("storage permission denied, asking again", "attempt", g.requests)
		g.request()
		return nil
	}
	g.logger.Info("storage permission granted")
	return g.startGame()
}

// Requests returns how many times the permission was requested.
func (g *Gate) Requests() int {
	return g.requests
}

func (g *Gate) request() {
	g.requests++
	g.perms.Request()
}

func (g *Gate) startGame() error {
	if g.session.Started() {
		return nil
	}
	home := g.homeDir
	if current := g.session.HomeDirectory(); current != "" {
		home = current
	}

	// Blocking, but only once and before the first frame.
	if err := g.mkdir(home); err != nil {
		g.logger.Warn("could not create home directory", "path", home, "error", err)
	}

	if err := g.session.EnsureInitialized(home); err != nil {
		return err
	}
	return g.session.MarkStarted()
}
