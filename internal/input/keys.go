package input

import "github.com/vovakirdan/serious-bridge/internal/core"

// KeyAction is the action of a platform key event.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
	KeyMultiple // batched repeats; never forwarded
)

// String returns a human-readable name for the action.
func (a KeyAction) String() string {
	switch a {
	case KeyDown:
		return "Down"
	case KeyUp:
		return "Up"
	case KeyMultiple:
		return "Multiple"
	default:
		return "Unknown"
	}
}

// KeyTranslator turns platform key events into engine key transitions.
// Auto-repeat is dropped, so a held key produces exactly one press and one
// release. Codes are not validated.
type KeyTranslator struct{}

// NewKeyTranslator creates a key translator.
func NewKeyTranslator() *KeyTranslator {
	return &KeyTranslator{}
}

// Translate returns the transition for one key event, or ok=false when the
// event is a repeat or not a down/up.
func (t *KeyTranslator) Translate(code core.KeyCode, action KeyAction, repeat int) (tr core.KeyTransition, ok bool) {
	if repeat != 0 {
		return core.KeyTransition{}, false
	}
	switch action {
	case KeyDown:
		return core.KeyTransition{Code: code, Pressed: true}, true
	case KeyUp:
		return core.KeyTransition{Code: code, Pressed: false}, true
	}
	return core.KeyTransition{}, false
}
