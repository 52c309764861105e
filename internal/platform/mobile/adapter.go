// Package mobile turns golang.org/x/mobile app events into platform events.
package mobile

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/surface"
)

var keyCodes = map[key.Code]core.KeyCode{
	key.CodeUpArrow:         core.KeyDpadUp,
	key.CodeDownArrow:       core.KeyDpadDown,
	key.CodeLeftArrow:       core.KeyDpadLeft,
	key.CodeRightArrow:      core.KeyDpadRight,
	key.CodeReturnEnter:     core.KeyEnter,
	key.CodeSpacebar:        core.KeySpace,
	key.CodeEscape:          core.KeyEscape,
	key.CodeDeleteBackspace: core.KeyBack,

	key.CodeTab:                61,
	key.CodeLeftAlt:            57,
	key.CodeRightAlt:           58,
	key.CodeLeftShift:          59,
	key.CodeRightShift:         60,
	key.CodeComma:              55,
	key.CodeFullStop:           56,
	key.CodeGraveAccent:        68,
	key.CodeHyphenMinus:        69,
	key.CodeEqualSign:          70,
	key.CodeLeftSquareBracket:  71,
	key.CodeRightSquareBracket: 72,
	key.CodeBackslash:          73,
	key.CodeSemicolon:          74,
	key.CodeApostrophe:         75,
	key.CodeSlash:              76,
	key.CodePageUp:             92,
	key.CodePageDown:           93,
	key.CodeDeleteForward:      112,
	key.CodeLeftControl:        113,
	key.CodeRightControl:       114,
	key.CodeCapsLock:           115,
	key.CodeHome:               122,
	key.CodeEnd:                123,
	key.CodeInsert:             124,
}

// HIDKeyBase offsets x/mobile codes that have no platform key code. x/mobile
// uses USB HID usage ids, which overlap the platform numbering, so they are
// moved above every platform code instead of being forwarded as-is.
const HIDKeyBase core.KeyCode = 0x10000

// KeyCode maps an x/mobile key code to a platform key code. Letters, digits
// and F1-F12 map by range; codes without a mapping are offset by HIDKeyBase.
func KeyCode(c key.Code) core.KeyCode {
	if code, ok := keyCodes[c]; ok {
		return code
	}
	switch {
	case c >= key.CodeA && c <= key.CodeZ:
		return core.KeyA + core.KeyCode(c-key.CodeA)
	case c >= key.Code1 && c <= key.Code9:
		return core.Key0 + 1 + core.KeyCode(c-key.Code1)
	case c == key.Code0:
		return core.Key0
	case c >= key.CodeF1 && c <= key.CodeF12:
		return core.KeyF1 + core.KeyCode(c-key.CodeF1)
	}
	return HIDKeyBase + core.KeyCode(c)
}

// Adapter converts the event stream of an x/mobile app.
//
// The surface is tied to the visible stage: crossing into it creates a new
// handle and crossing out of it destroys that handle. Focus maps to
// resume/pause. Not safe for concurrent use; feed it from the app event loop.
type Adapter struct {
	scale  float32
	nextID uint64
	handle *core.SurfaceHandle

	width, height int // last measured size in pixels
	held          map[key.Code]int
}

// NewAdapter creates an adapter. scale is the render buffer size relative to
// the window size; non-positive values use surface.DefaultScale.
func NewAdapter(scale float32) *Adapter {
	return &Adapter{scale: scale, held: make(map[key.Code]int)}
}

// Translate returns the platform events for one x/mobile event, in delivery
// order. Events with no bridge meaning yield nil.
func (a *Adapter) Translate(e any) []platform.Event {
	switch e := e.(type) {
	case lifecycle.Event:
		return a.lifecycle(e)
	case size.Event:
		a.width, a.height = e.WidthPx, e.HeightPx
		if a.handle == nil {
			return nil
		}
		return []platform.Event{a.changed()}
	case key.Event:
		if ev, ok := a.key(e); ok {
			return []platform.Event{ev}
		}
	case touch.Event:
		return []platform.Event{platform.TouchEvent{Action: touchAction(e.Type), X: e.X, Y: e.Y}}
	case paint.Event:
		// the engine draws on its own thread
	}
	return nil
}

func (a *Adapter) lifecycle(e lifecycle.Event) []platform.Event {
	var out []platform.Event

	// Going down: lose focus before the surface goes away.
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
		out = append(out, platform.Paused{})
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff && a.handle != nil {
		a.handle = nil
		out = append(out, platform.SurfaceDestroyed{})
	}

	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
		a.nextID++
		a.handle = &core.SurfaceHandle{ID: a.nextID, Native: e.DrawContext}
		out = append(out, platform.SurfaceCreated{Handle: a.handle})
		if a.width > 0 && a.height > 0 {
			out = append(out, a.changed())
		}
	}
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOn {
		out = append(out, platform.Resumed{})
	}
	return out
}

func (a *Adapter) changed() platform.SurfaceChanged {
	w, h := surface.FixedSize(a.width, a.height, a.scale)
	return platform.SurfaceChanged{Handle: a.handle, Width: w, Height: h}
}

func (a *Adapter) key(e key.Event) (platform.KeyEvent, bool) {
	code := KeyCode(e.Code)
	switch e.Direction {
	case key.DirPress:
		a.held[e.Code] = 0
		return platform.KeyEvent{Code: code, Action: input.KeyDown}, true
	case key.DirRelease:
		delete(a.held, e.Code)
		return platform.KeyEvent{Code: code, Action: input.KeyUp}, true
	case key.DirNone:
		// x/mobile reports auto-repeat without a direction.
		n, ok := a.held[e.Code]
		if !ok {
			return platform.KeyEvent{}, false
		}
		n++
		a.held[e.Code] = n
		return platform.KeyEvent{Code: code, Action: input.KeyDown, Repeat: n}, true
	}
	return platform.KeyEvent{}, false
}

func touchAction(t touch.Type) platform.TouchAction {
	switch t {
	case touch.TypeBegin:
		return platform.TouchDown
	case touch.TypeMove:
		return platform.TouchMove
	case touch.TypeEnd:
		return platform.TouchUp
	default:
		return platform.TouchCancel
	}
}

// Surface returns the current surface handle, or nil.
func (a *Adapter) Surface() *core.SurfaceHandle {
	return a.handle
}
