package input

import "github.com/vovakirdan/serious-bridge/internal/core"

// DefaultThreshold is the magnitude at which a hat or trigger axis reads as pressed.
const DefaultThreshold float32 = 0.5

// digitalRule reads one button out of an analog axis.
// negative selects the lower half of the axis.
type digitalRule struct {
	source   RawAxis
	negative bool
	code     core.KeyCode
}

var digitalRules = []digitalRule{
	{source: RawRTrigger, code: core.KeyButtonR2},
	{source: RawLTrigger, code: core.KeyButtonL2},
	{source: RawHatX, negative: true, code: core.KeyDpadLeft},
	{source: RawHatX, code: core.KeyDpadRight},
	{source: RawHatY, negative: true, code: core.KeyDpadUp},
	{source: RawHatY, code: core.KeyDpadDown},
}

// SynthesizeButtons samples the d-pad hat and analog triggers as buttons.
//
// This is level-triggered: every move event reports the current state of all
// six buttons, whether or not anything changed. The engine applies key state
// idempotently, so repeats are harmless. Hardware keys go through
// KeyTranslator instead and are edge-triggered.
func SynthesizeButtons(ev MotionSample, threshold float32) []core.KeyTransition {
	if ev.Action != MotionMove {
		return nil
	}
	out := make([]core.KeyTransition, 0, len(digitalRules))
	for _, r := range digitalRules {
		v := ev.Axis(r.source)
		pressed := v > threshold
		if r.negative {
			pressed = v < -threshold
		}
		out = append(out, core.KeyTransition{Code: r.code, Pressed: pressed})
	}
	return out
}

// SyntheticCodes lists the key codes SynthesizeButtons reports, in order.
func SyntheticCodes() []core.KeyCode {
	codes := make([]core.KeyCode, len(digitalRules))
	for i, r := range digitalRules {
		codes[i] = r.code
	}
	return codes
}
