// Package input translates raw platform input into the engine vocabulary:
// named axis samples and discrete key transitions.
// Everything here is pure; callers forward the results to the session.
package input

// RawAxis is a platform motion axis, as reported on a generic motion event.
type RawAxis int

const (
	RawX        RawAxis = iota // left stick horizontal
	RawY                       // left stick vertical
	RawZ                       // right stick horizontal
	RawRZ                      // right stick vertical
	RawHatX                    // d-pad reported as hat, horizontal
	RawHatY                    // d-pad reported as hat, vertical
	RawLTrigger                // left analog trigger
	RawRTrigger                // right analog trigger
)

// RawAxisCount is the number of raw axes a MotionSample carries.
const RawAxisCount = int(RawRTrigger) + 1

// String returns the platform name of the axis.
func (a RawAxis) String() string {
	switch a {
	case RawX:
		return "AXIS_X"
	case RawY:
		return "AXIS_Y"
	case RawZ:
		return "AXIS_Z"
	case RawRZ:
		return "AXIS_RZ"
	case RawHatX:
		return "AXIS_HAT_X"
	case RawHatY:
		return "AXIS_HAT_Y"
	case RawLTrigger:
		return "AXIS_LTRIGGER"
	case RawRTrigger:
		return "AXIS_RTRIGGER"
	default:
		return "AXIS_UNKNOWN"
	}
}

// ParseRawAxis resolves a raw axis name as produced by String.
func ParseRawAxis(name string) (RawAxis, bool) {
	for a := RawX; a <= RawRTrigger; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// MotionAction is the action of a generic motion event.
type MotionAction int

const (
	MotionMove MotionAction = iota
	MotionHoverMove
	MotionScroll
	MotionOther
)

// MotionSample is one generic motion event from a joystick-class device.
type MotionSample struct {
	Action MotionAction
	Values [RawAxisCount]float32
}

// NewMotionSample returns a move sample with all axes centered.
func NewMotionSample() MotionSample {
	return MotionSample{Action: MotionMove}
}

// Axis returns the value of a raw axis, 0 for axes outside the known set.
func (m MotionSample) Axis(a RawAxis) float32 {
	if a < 0 || int(a) >= RawAxisCount {
		return 0
	}
	return m.Values[a]
}

// Set stores a raw axis value. Unknown axes are ignored.
func (m *MotionSample) Set(a RawAxis, v float32) {
	if a < 0 || int(a) >= RawAxisCount {
		return
	}
	m.Values[a] = v
}
