package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/core"
)

// Logging wraps an engine and logs every boundary call before forwarding it.
// Axis updates arrive at input rate, so they are logged at debug level.
type Logging struct {
	next   core.Engine
	logger *log.Logger
}

// NewLogging decorates next. A nil logger discards output.
func NewLogging(next core.Engine, logger *log.Logger) *Logging {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Logging{next: next, logger: logger}
}

var _ core.Engine = (*Logging)(nil)

func (l *Logging) SetHomeDirectory(path string) {
	l.logger.Info("engine: set home directory", "path", path)
	l.next.SetHomeDirectory(path)
}

func (l *Logging) InitializeEngine(path string) {
	l.logger.Info("engine: initialize", "path", path)
	l.next.InitializeEngine(path)
}

func (l *Logging) NotifySurface(h *core.SurfaceHandle) {
	if h == nil {
		l.logger.Info("engine: surface gone")
	} else {
		l.logger.Info("engine: surface", "id", h.ID, "width", h.Width, "height", h.Height)
	}
	l.next.NotifySurface(h)
}

func (l *Logging) Start() {
	l.logger.Info("engine: start")
	l.next.Start()
}

func (l *Logging) Stop() {
	l.logger.Info("engine: stop")
	l.next.Stop()
}

func (l *Logging) DispatchKeyEvent(code core.KeyCode, pressed bool) {
	l.logger.Debug("engine: key", "code", code, "pressed", pressed)
	l.next.DispatchKeyEvent(code, pressed)
}

func (l *Logging) SetAxisValue(axis core.AxisID, value float32) {
	l.logger.Debug("engine: axis", "axis", axis, "value", value)
	l.next.SetAxisValue(axis, value)
}

func (l *Logging) RequestProfilingDump() {
	l.logger.Info("engine: profiling dump requested")
	l.next.RequestProfilingDump()
}
