package platform

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/session"
	"github.com/vovakirdan/serious-bridge/internal/surface"
)

// Dispatcher routes platform events to the component that handles them.
// It is not safe for concurrent use: one goroutine delivers all events,
// the way a platform UI thread does. Use Run to drain a channel fed by
// other goroutines.
type Dispatcher struct {
	surface   *surface.Bridge
	session   *session.Session
	gate      *session.Gate
	axes      *input.AxisMapper
	keys      *input.KeyTranslator
	threshold float32
	logger    *log.Logger
}

// Options configures a Dispatcher.
type Options struct {
	// Gate receives permission results. Nil drops them.
	Gate *session.Gate

	// Axes maps motion axes. Nil uses the default rules.
	Axes *input.AxisMapper

	// ButtonThreshold for synthesized d-pad and trigger buttons.
	// Non-positive values use input.DefaultThreshold.
	ButtonThreshold float32

	Logger *log.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(b *surface.Bridge, s *session.Session, opts Options) *Dispatcher {
	axes := opts.Axes
	if axes == nil {
		axes = input.NewAxisMapper(nil)
	}
	threshold := opts.ButtonThreshold
	if threshold <= 0 {
		threshold = input.DefaultThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		surface:   b,
		session:   s,
		gate:      opts.Gate,
		axes:      axes,
		keys:      input.NewKeyTranslator(),
		threshold: threshold,
		logger:    logger,
	}
}

// Dispatch handles one event. The result mirrors the platform's "consumed"
// flag for input callbacks; lifecycle events always report true. Key and
// motion events are always consumed, even when nothing reaches the engine,
// so the platform never applies its default handling to them.
func (d *Dispatcher) Dispatch(ev Event) bool {
	switch e := ev.(type) {
	case SurfaceCreated:
		d.surface.Created(e.Handle)
	case SurfaceChanged:
		d.surface.Changed(e.Handle, e.Width, e.Height)
		if e.Handle != nil {
			d.session.SurfaceDelivered()
		}
	case SurfaceDestroyed:
		d.surface.Destroyed()
	case KeyEvent:
		return d.dispatchKey(e)
	case MotionEvent:
		return d.dispatchMotion(e)
	case TouchEvent:
		return e.Action == TouchDown
	case GestureEvent:
		return e.Kind == GestureDown
	case Launched:
		if d.gate == nil {
			d.logger.Warn("launched without a permission gate")
			return false
		}
		if err := d.gate.Check(); err != nil {
			d.logger.Error("could not start game", "error", err)
		}
	case Resumed:
		d.session.Resume()
	case Paused:
		d.session.Pause()
	case PermissionResult:
		if d.gate == nil {
			d.logger.Warn("permission result without a gate", "granted", e.Granted)
			return false
		}
		if err := d.gate.OnResult(e.Granted); err != nil {
			d.logger.Error("could not start game", "error", err)
		}
	case ProfilingRequested:
		d.session.RequestProfilingDump()
	default:
		d.logger.Warn("unhandled platform event", "type", Name(ev))
		return false
	}
	return true
}

func (d *Dispatcher) dispatchKey(e KeyEvent) bool {
	tr, ok := d.keys.Translate(e.Code, e.Action, e.Repeat)
	if !ok {
		return true
	}
	if tr.Pressed {
		d.logger.Debug("key down", "code", int(e.Code), "name", e.Code)
	}
	d.session.DispatchKey(tr)
	return true
}

func (d *Dispatcher) dispatchMotion(e MotionEvent) bool {
	if e.Sample.Action != input.MotionMove {
		return true
	}
	for _, s := range d.axes.MapMotion(e.Sample) {
		d.session.SetAxis(s)
	}
	for _, tr := range input.SynthesizeButtons(e.Sample, d.threshold) {
		d.session.DispatchKey(tr)
	}
	return true
}

// Run dispatches events from ch until ch is closed or ctx is done.
func (d *Dispatcher) Run(ctx context.Context, ch <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			d.Dispatch(ev)
		}
	}
}
