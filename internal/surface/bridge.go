// Package surface keeps the engine's view of the drawable surface in step
// with the platform surface lifecycle.
package surface

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/core"
)

// DefaultScale is the render buffer size relative to the measured view.
const DefaultScale float32 = 0.5

// Notifier receives surface changes. core.Engine satisfies it.
type Notifier interface {
	NotifySurface(h *core.SurfaceHandle)
}

// State is the binding state of the bridge.
type State int

const (
	NoSurface State = iota
	Bound
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case NoSurface:
		return "NoSurface"
	case Bound:
		return "Bound"
	default:
		return "Unknown"
	}
}

// Bridge owns the binding between the platform surface and the engine.
//
// Every notification is made synchronously inside the platform callback, so
// the engine has dropped a handle before the platform callback returns and
// the platform is allowed to free it.
type Bridge struct {
	engine    Notifier
	logger    *log.Logger
	current   *core.SurfaceHandle
	delivered bool
}

// NewBridge creates a bridge with no surface bound.
func NewBridge(engine Notifier, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{engine: engine, logger: logger}
}

// Created is called when the platform has allocated a surface. The buffer is
// not usable until the first Changed, so the engine is not told yet.
func (b *Bridge) Created(h *core.SurfaceHandle) {
	if h != nil {
		b.logger.Debug("surface created", "id", h.ID)
	}
}

// Changed binds h, replacing any previous surface, and always notifies the
// engine. A nil handle is treated as Destroyed.
func (b *Bridge) Changed(h *core.SurfaceHandle, width, height int) {
	if h == nil {
		b.Destroyed()
		return
	}
	bound := *h
	bound.Width = width
	bound.Height = height

	if b.current != nil && b.current.ID != bound.ID {
		b.logger.Debug("surface replaced", "old", b.current.ID, "new", bound.ID)
	}

	b.current = &bound
	b.delivered = true
	b.logger.Debug("surface changed", "id", bound.ID, "width", width, "height", height)
	b.engine.NotifySurface(&bound)
}

// Destroyed unbinds the surface and tells the engine explicitly that it is
// gone. Safe to call with nothing bound.
func (b *Bridge) Destroyed() {
	if b.current != nil {
		b.logger.Debug("surface destroyed", "id", b.current.ID)
	}
	b.current = nil
	b.engine.NotifySurface(nil)
}

// State returns the binding state.
func (b *Bridge) State() State {
	if b.current == nil {
		return NoSurface
	}
	return Bound
}

// Current returns the bound surface, or nil.
func (b *Bridge) Current() *core.SurfaceHandle {
	return b.current
}

// Delivered reports whether a non-nil surface has been delivered at least once.
func (b *Bridge) Delivered() bool {
	return b.delivered
}

// FixedSize returns the render buffer size to request for a view of the
// given measured size. Non-positive scales fall back to DefaultScale.
func FixedSize(measuredW, measuredH int, scale float32) (int, int) {
	if scale <= 0 {
		scale = DefaultScale
	}
	return int(float32(measuredW) * scale), int(float32(measuredH) * scale)
}
