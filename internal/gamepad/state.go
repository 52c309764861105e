package gamepad

import (
	"slices"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
)

// State is one polled controller state.
type State struct {
	Connected bool
	Name      string
	Mapping   string
	Axes      [input.RawAxisCount]float32
	Buttons   map[core.KeyCode]bool
}

// Events returns the platform events that move the bridge from prev to next:
// one key event per button that changed, then one motion event if any axis
// moved. Losing the controller releases every held button and centers
// the axes.
func Events(prev, next State) []platform.Event {
	var out []platform.Event

	for _, code := range buttonOrder(prev, next) {
		was, is := prev.Buttons[code], next.Buttons[code]
		if was == is {
			continue
		}
		action := input.KeyUp
		if is {
			action = input.KeyDown
		}
		out = append(out, platform.KeyEvent{Code: code, Action: action})
	}

	if prev.Axes != next.Axes {
		sample := input.NewMotionSample()
		sample.Values = next.Axes
		out = append(out, platform.MotionEvent{Sample: sample})
	}
	return out
}

// buttonOrder lists every code in either state by key code, so events come
// out in a stable order.
func buttonOrder(prev, next State) []core.KeyCode {
	seen := make(map[core.KeyCode]bool, len(prev.Buttons)+len(next.Buttons))
	var codes []core.KeyCode
	for _, m := range []map[core.KeyCode]bool{prev.Buttons, next.Buttons} {
		for code := range m {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	slices.Sort(codes)
	return codes
}
