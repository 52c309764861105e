// Package engine provides stand-ins for the native engine boundary: a
// recorder that keeps the ordered call log, a logging decorator, and a
// journal sink that persists calls.
package engine

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/vovakirdan/serious-bridge/internal/core"
)

// CallKind names one boundary function.
type CallKind int

const (
	CallSetHomeDirectory CallKind = iota
	CallInitializeEngine
	CallNotifySurface
	CallStart
	CallStop
	CallDispatchKeyEvent
	CallSetAxisValue
	CallRequestProfilingDump
)

// String returns the boundary function name.
func (k CallKind) String() string {
	switch k {
	case CallSetHomeDirectory:
		return "setHomeDirectory"
	case CallInitializeEngine:
		return "initializeEngine"
	case CallNotifySurface:
		return "notifySurface"
	case CallStart:
		return "start"
	case CallStop:
		return "stop"
	case CallDispatchKeyEvent:
		return "dispatchKeyEvent"
	case CallSetAxisValue:
		return "setAxisValue"
	case CallRequestProfilingDump:
		return "requestProfilingDump"
	default:
		return "unknown"
	}
}

// Call is one recorded boundary call. Only the fields relevant to Kind are set.
type Call struct {
	Seq  int
	Kind CallKind

	Path       string
	SurfaceID  uint64
	HasSurface bool
	Code       core.KeyCode
	Pressed    bool
	Axis       core.AxisID
	Value      float32
}

// Args renders the call arguments the way they appear in the call log.
func (c Call) Args() string {
	switch c.Kind {
	case CallSetHomeDirectory, CallInitializeEngine:
		return strconv.Quote(c.Path)
	case CallNotifySurface:
		if !c.HasSurface {
			return "nil"
		}
		return "#" + strconv.FormatUint(c.SurfaceID, 10)
	case CallDispatchKeyEvent:
		pressed := 0
		if c.Pressed {
			pressed = 1
		}
		return fmt.Sprintf("%v, %d", c.Code, pressed)
	case CallSetAxisValue:
		return fmt.Sprintf("%v, %.3f", c.Axis, c.Value)
	default:
		return ""
	}
}

// String renders the call as name(args).
func (c Call) String() string {
	return c.Kind.String() + "(" + c.Args() + ")"
}

// Recorder is a core.Engine that keeps every call in order.
// Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	sinks []func(Call)
}

// NewRecorder creates an empty recorder. Each sink sees every call after
// it has been appended, on the caller's goroutine.
func NewRecorder(sinks ...func(Call)) *Recorder {
	return &Recorder{sinks: sinks}
}

var _ core.Engine = (*Recorder)(nil)

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	c.Seq = len(r.calls) + 1
	r.calls = append(r.calls, c)
	sinks := r.sinks
	r.mu.Unlock()

	for _, sink := range sinks {
		sink(c)
	}
}

func (r *Recorder) SetHomeDirectory(path string) {
	r.record(Call{Kind: CallSetHomeDirectory, Path: path})
}

func (r *Recorder) InitializeEngine(path string) {
	r.record(Call{Kind: CallInitializeEngine, Path: path})
}

func (r *Recorder) NotifySurface(h *core.SurfaceHandle) {
	c := Call{Kind: CallNotifySurface}
	if h != nil {
		c.HasSurface = true
		c.SurfaceID = h.ID
	}
	r.record(c)
}

func (r *Recorder) Start() { r.record(Call{Kind: CallStart}) }

func (r *Recorder) Stop() { r.record(Call{Kind: CallStop}) }

func (r *Recorder) DispatchKeyEvent(code core.KeyCode, pressed bool) {
	r.record(Call{Kind: CallDispatchKeyEvent, Code: code, Pressed: pressed})
}

func (r *Recorder) SetAxisValue(axis core.AxisID, value float32) {
	r.record(Call{Kind: CallSetAxisValue, Axis: axis, Value: value})
}

func (r *Recorder) RequestProfilingDump() {
	r.record(Call{Kind: CallRequestProfilingDump})
}

// Calls returns a copy of the call log.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many calls of the given kind were recorded.
func (r *Recorder) Count(kind CallKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Kinds returns the call kinds in order, for compact sequence checks.
func (r *Recorder) Kinds() []CallKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallKind, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Kind
	}
	return out
}

// Reset drops the recorded calls. Sinks stay attached.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
