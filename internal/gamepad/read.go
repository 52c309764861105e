package gamepad

import (
	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
)

// Device is the raw view of one controller.
type Device interface {
	Axis(index int32) int16
	Button(index int32) bool
	NumButtons() int32
	// Hat returns the first hat's bitmask; ok is false without a hat.
	Hat() (bits uint8, ok bool)
}

// Read converts the device's raw values into a State using mapping m.
func (m *DeviceMapping) Read(d Device, deadzone float32) State {
	st := State{
		Connected: true,
		Mapping:   m.Name,
		Buttons:   make(map[core.KeyCode]bool, len(m.Buttons)),
	}

	for _, am := range m.Axes {
		raw := d.Axis(am.Index)
		var v float32
		if am.IsTrigger {
			v = NormalizeTrigger(raw, am.RawMin, am.RawMax)
		} else {
			v = NormalizeAxis(raw)
			if am.Invert {
				v = -v
			}
		}
		st.Axes[am.Target] = ApplyDeadzone(v, deadzone)
	}

	n := d.NumButtons()
	for _, bm := range m.Buttons {
		if bm.Index >= n {
			continue
		}
		st.Buttons[bm.Code] = d.Button(bm.Index)
	}

	if m.HasHat {
		if bits, ok := d.Hat(); ok {
			st.Axes[input.RawHatX], st.Axes[input.RawHatY] = HatAxes(bits)
		}
	}
	return st
}
