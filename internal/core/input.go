package core

import (
	"strconv"
	"strings"
)

// AxisID identifies a named analog channel on the engine side.
// The numeric values are the ids the engine expects on SetAxisValue.
type AxisID int

const (
	AxisMoveUD AxisID = iota // strafe up/down (swim, fly)
	AxisMoveLR               // strafe left/right
	AxisMoveFB               // move forward/back
	AxisTurnUD               // pitch, rate based
	AxisTurnLR               // yaw, rate based
	AxisTurnBK               // roll, rate based
	AxisLookUD               // pitch, absolute look
	AxisLookLR               // yaw, absolute look
	AxisLookBK               // roll, absolute look
)

// AxisCount is the number of engine axes.
const AxisCount = int(AxisLookBK) + 1

// String returns the engine-side name of the axis.
func (a AxisID) String() string {
	switch a {
	case AxisMoveUD:
		return "MOVE_UD"
	case AxisMoveLR:
		return "MOVE_LR"
	case AxisMoveFB:
		return "MOVE_FB"
	case AxisTurnUD:
		return "TURN_UD"
	case AxisTurnLR:
		return "TURN_LR"
	case AxisTurnBK:
		return "TURN_BK"
	case AxisLookUD:
		return "LOOK_UD"
	case AxisLookLR:
		return "LOOK_LR"
	case AxisLookBK:
		return "LOOK_BK"
	default:
		return "UNKNOWN"
	}
}

// ParseAxisID resolves an axis name as produced by String.
func ParseAxisID(name string) (AxisID, bool) {
	for a := AxisMoveUD; a <= AxisLookBK; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// AxisSample is a single normalized axis value headed for the engine.
// The engine keeps the last value per axis; nothing here is stored.
type AxisSample struct {
	Axis  AxisID
	Value float32
}

// KeyCode is a platform key code. Named constants use Android numbering,
// which is what the engine's key table is built around. Any other value is
// forwarded as-is.
type KeyCode int

const (
	KeyUnknown      KeyCode = 0
	KeyBack         KeyCode = 4
	KeyDpadUp       KeyCode = 19
	KeyDpadDown     KeyCode = 20
	KeyDpadLeft     KeyCode = 21
	KeyDpadRight    KeyCode = 22
	KeySpace        KeyCode = 62
	KeyEnter        KeyCode = 66
	KeyButtonA      KeyCode = 96
	KeyButtonB      KeyCode = 97
	KeyButtonX      KeyCode = 99
	KeyButtonY      KeyCode = 100
	KeyButtonL1     KeyCode = 102
	KeyButtonR1     KeyCode = 103
	KeyButtonL2     KeyCode = 104
	KeyButtonR2     KeyCode = 105
	KeyButtonThumbL KeyCode = 106
	KeyButtonThumbR KeyCode = 107
	KeyButtonStart  KeyCode = 108
	KeyButtonSelect KeyCode = 109
	KeyButtonMode   KeyCode = 110
	KeyEscape       KeyCode = 111
)

// First codes of the contiguous key ranges: 0-9, A-Z and F1-F12.
const (
	Key0  KeyCode = 7
	KeyA  KeyCode = 29
	KeyF1 KeyCode = 131
)

var keyNames = map[KeyCode]string{
	KeyBack:         "BACK",
	KeyDpadUp:       "DPAD_UP",
	KeyDpadDown:     "DPAD_DOWN",
	KeyDpadLeft:     "DPAD_LEFT",
	KeyDpadRight:    "DPAD_RIGHT",
	KeySpace:        "SPACE",
	KeyEnter:        "ENTER",
	KeyButtonA:      "BUTTON_A",
	KeyButtonB:      "BUTTON_B",
	KeyButtonX:      "BUTTON_X",
	KeyButtonY:      "BUTTON_Y",
	KeyButtonL1:     "BUTTON_L1",
	KeyButtonR1:     "BUTTON_R1",
	KeyButtonL2:     "BUTTON_L2",
	KeyButtonR2:     "BUTTON_R2",
	KeyButtonThumbL: "BUTTON_THUMBL",
	KeyButtonThumbR: "BUTTON_THUMBR",
	KeyButtonStart:  "BUTTON_START",
	KeyButtonSelect: "BUTTON_SELECT",
	KeyButtonMode:   "BUTTON_MODE",
	KeyEscape:       "ESCAPE",
}

// String returns the key name, or KEY_<n> for codes without one.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "KEY_" + strconv.Itoa(int(k))
}

// ParseKeyCode resolves a key name as produced by String, including the
// numeric KEY_<n> form.
func ParseKeyCode(name string) (KeyCode, bool) {
	for code, n := range keyNames {
		if n == name {
			return code, true
		}
	}
	if rest, ok := strings.CutPrefix(name, "KEY_"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return KeyCode(n), true
		}
	}
	return KeyUnknown, false
}

// KeyTransition is one discrete key event for the engine.
type KeyTransition struct {
	Code    KeyCode
	Pressed bool
}
