// Package platform defines the events a platform layer delivers to the
// bridge and the dispatcher that routes them to the surface bridge, the
// session and the input translators.
package platform

import (
	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
)

// Event is a lifecycle or input callback from the platform.
type Event interface {
	platformEvent()
}

// SurfaceCreated is sent when the platform allocated a drawable surface.
type SurfaceCreated struct {
	Handle *core.SurfaceHandle
}

func (SurfaceCreated) platformEvent() {}

// SurfaceChanged is sent when the surface got its (new) format or size.
// It is also the first point at which the buffer is usable.
type SurfaceChanged struct {
	Handle *core.SurfaceHandle
	Width  int
	Height int
}

func (SurfaceChanged) platformEvent() {}

// SurfaceDestroyed is sent before the platform frees the surface.
type SurfaceDestroyed struct{}

func (SurfaceDestroyed) platformEvent() {}

// KeyEvent is a hardware key or gamepad button event.
type KeyEvent struct {
	Code   core.KeyCode
	Action input.KeyAction
	Repeat int // auto-repeat count, 0 for the initial press
}

func (KeyEvent) platformEvent() {}

// MotionEvent is a generic motion event from a joystick-class device.
type MotionEvent struct {
	Sample input.MotionSample
}

func (MotionEvent) platformEvent() {}

// TouchAction is the action of a touch event.
type TouchAction int

const (
	TouchDown TouchAction = iota
	TouchMove
	TouchUp
	TouchCancel
)

// String returns a human-readable name for the action.
func (a TouchAction) String() string {
	switch a {
	case TouchDown:
		return "Down"
	case TouchMove:
		return "Move"
	case TouchUp:
		return "Up"
	case TouchCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// TouchEvent is a touch on the background view.
type TouchEvent struct {
	Action TouchAction
	X, Y   float32
}

func (TouchEvent) platformEvent() {}

// GestureKind identifies a recognized gesture.
type GestureKind int

const (
	GestureDown GestureKind = iota
	GestureShowPress
	GestureSingleTapUp
	GestureSingleTapConfirmed
	GestureDoubleTap
	GestureDoubleTapEvent
	GestureScroll
	GestureLongPress
	GestureFling
)

// String returns a human-readable name for the gesture.
func (k GestureKind) String() string {
	switch k {
	case GestureDown:
		return "Down"
	case GestureShowPress:
		return "ShowPress"
	case GestureSingleTapUp:
		return "SingleTapUp"
	case GestureSingleTapConfirmed:
		return "SingleTapConfirmed"
	case GestureDoubleTap:
		return "DoubleTap"
	case GestureDoubleTapEvent:
		return "DoubleTapEvent"
	case GestureScroll:
		return "Scroll"
	case GestureLongPress:
		return "LongPress"
	case GestureFling:
		return "Fling"
	default:
		return "Unknown"
	}
}

// GestureEvent is a gesture recognized on the surface view.
type GestureEvent struct {
	Kind GestureKind
}

func (GestureEvent) platformEvent() {}

// Launched is sent once when the app has been created. The storage
// permission is checked at this point.
type Launched struct{}

func (Launched) platformEvent() {}

// Resumed is sent when the app comes to the foreground.
type Resumed struct{}

func (Resumed) platformEvent() {}

// Paused is sent when the app leaves the foreground.
type Paused struct{}

func (Paused) platformEvent() {}

// PermissionResult carries the answer to a storage permission request.
type PermissionResult struct {
	Granted bool
}

func (PermissionResult) platformEvent() {}

// ProfilingRequested is sent when the user asks for a profiling dump.
type ProfilingRequested struct{}

func (ProfilingRequested) platformEvent() {}

// Name returns a short name for the event type, used in logs and scenarios.
func Name(ev Event) string {
	switch ev.(type) {
	case SurfaceCreated:
		return "surface_created"
	case SurfaceChanged:
		return "surface_changed"
	case SurfaceDestroyed:
		return "surface_destroyed"
	case KeyEvent:
		return "key"
	case MotionEvent:
		return "motion"
	case TouchEvent:
		return "touch"
	case GestureEvent:
		return "gesture"
	case Launched:
		return "launch"
	case Resumed:
		return "resume"
	case Paused:
		return "pause"
	case PermissionResult:
		return "permission"
	case ProfilingRequested:
		return "profiling"
	default:
		return "unknown"
	}
}
