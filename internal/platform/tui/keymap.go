package tui

import (
	"time"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
)

// HoldTimeout is how long a terminal key counts as held after its last
// press or auto-repeat. Terminals report no key releases, so the monitor
// releases a key once its repeats stop.
const HoldTimeout = 180 * time.Millisecond

// button keys produce hardware key events.
var buttonKeys = map[string]core.KeyCode{
	" ":         core.KeyButtonA,
	"e":         core.KeyButtonB,
	"r":         core.KeyButtonX,
	"f":         core.KeyButtonY,
	"1":         core.KeyButtonL1,
	"3":         core.KeyButtonR1,
	"enter":     core.KeyButtonStart,
	"backspace": core.KeyBack,
}

// axisKey deflects one motion axis while held.
type axisKey struct {
	axis  input.RawAxis
	value float32
}

// axis keys move the sticks, the hat and the triggers.
var axisKeys = map[string]axisKey{
	"w":     {input.RawY, -1},
	"s":     {input.RawY, 1},
	"a":     {input.RawX, -1},
	"d":     {input.RawX, 1},
	"i":     {input.RawRZ, -1},
	"k":     {input.RawRZ, 1},
	"j":     {input.RawZ, -1},
	"l":     {input.RawZ, 1},
	"up":    {input.RawHatY, -1},
	"down":  {input.RawHatY, 1},
	"left":  {input.RawHatX, -1},
	"right": {input.RawHatX, 1},
	"z":     {input.RawLTrigger, 1},
	"x":     {input.RawRTrigger, 1},
}

type heldKey struct {
	lastSeen time.Time
	repeat   int
}

// KeyMapper turns terminal key presses into the platform key and motion
// events a gamepad would produce. Repeated presses of a held key become
// auto-repeat events; Expire releases keys whose repeats stopped.
type KeyMapper struct {
	held map[string]*heldKey
	axes [input.RawAxisCount]float32
}

// NewKeyMapper creates a key mapper with nothing held.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{held: make(map[string]*heldKey)}
}

// Handles reports whether key is a button or axis key.
func (km *KeyMapper) Handles(key string) bool {
	_, button := buttonKeys[key]
	_, axis := axisKeys[key]
	return button || axis
}

// Press handles one terminal key press at time now. Keys that are neither
// buttons nor axes produce nothing.
func (km *KeyMapper) Press(key string, now time.Time) []platform.Event {
	if !km.Handles(key) {
		return nil
	}
	h, wasHeld := km.held[key]
	if wasHeld {
		h.repeat++
		h.lastSeen = now
	} else {
		h = &heldKey{lastSeen: now}
		km.held[key] = h
	}

	if code, ok := buttonKeys[key]; ok {
		return []platform.Event{platform.KeyEvent{Code: code, Action: input.KeyDown, Repeat: h.repeat}}
	}
	if _, ok := axisKeys[key]; ok && !wasHeld {
		return km.motion()
	}
	return nil
}

// Expire releases every key not seen within HoldTimeout of now.
func (km *KeyMapper) Expire(now time.Time) []platform.Event {
	var out []platform.Event
	axisReleased := false
	for key, h := range km.held {
		if now.Sub(h.lastSeen) < HoldTimeout {
			continue
		}
		delete(km.held, key)
		if code, ok := buttonKeys[key]; ok {
			out = append(out, platform.KeyEvent{Code: code, Action: input.KeyUp})
		} else {
			axisReleased = true
		}
	}
	if axisReleased {
		out = append(out, km.motion()...)
	}
	return out
}

// motion recomputes the axis state from held keys and returns a motion
// event if it changed.
func (km *KeyMapper) motion() []platform.Event {
	var axes [input.RawAxisCount]float32
	for key := range km.held {
		if ak, ok := axisKeys[key]; ok {
			axes[ak.axis] += ak.value
		}
	}
	for i, v := range axes {
		if v > 1 {
			axes[i] = 1
		} else if v < -1 {
			axes[i] = -1
		}
	}
	if axes == km.axes {
		return nil
	}
	km.axes = axes

	sample := input.NewMotionSample()
	sample.Values = axes
	return []platform.Event{platform.MotionEvent{Sample: sample}}
}

// Axes returns the current raw axis state.
func (km *KeyMapper) Axes() [input.RawAxisCount]float32 {
	return km.axes
}

// Held returns the number of keys currently held.
func (km *KeyMapper) Held() int {
	return len(km.held)
}
