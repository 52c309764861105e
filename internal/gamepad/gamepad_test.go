package gamepad

import (
	"testing"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
)

type fakeDevice struct {
	axes    map[int32]int16
	buttons map[int32]bool
	hat     uint8
	hasHat  bool
	nbtn    int32
}

func (d fakeDevice) Axis(i int32) int16  { return d.axes[i] }
func (d fakeDevice) Button(i int32) bool { return d.buttons[i] }
func (d fakeDevice) NumButtons() int32   { return d.nbtn }
func (d fakeDevice) Hat() (uint8, bool)  { return d.hat, d.hasHat }

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		raw  int16
		want float32
	}{
		{0, 0},
		{32767, 1},
		{-32768, -1},
	}
	for _, tt := range tests {
		if got := NormalizeAxis(tt.raw); got != tt.want {
			t.Errorf("NormalizeAxis(%d) = %v, expected %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeTrigger(t *testing.T) {
	if got := NormalizeTrigger(-32768, -32768, 32767); got != 0 {
		t.Errorf("Released trigger = %v, expected 0", got)
	}
	if got := NormalizeTrigger(32767, -32768, 32767); got != 1 {
		t.Errorf("Pulled trigger = %v, expected 1", got)
	}
	if got := NormalizeTrigger(32767, 0, 32767); got != 1 {
		t.Errorf("Pulled 0..max trigger = %v, expected 1", got)
	}
	if got := NormalizeTrigger(-100, 0, 32767); got != 0 {
		t.Errorf("Below range = %v, expected 0", got)
	}
	if got := NormalizeTrigger(5, 7, 7); got != 0 {
		t.Errorf("Empty range = %v, expected 0", got)
	}
}

func TestApplyDeadzone(t *testing.T) {
	if ApplyDeadzone(0.04, 0.05) != 0 || ApplyDeadzone(-0.04, 0.05) != 0 {
		t.Error("Values inside the deadzone should be zeroed")
	}
	if ApplyDeadzone(0.3, 0.05) != 0.3 || ApplyDeadzone(-0.3, 0.05) != -0.3 {
		t.Error("Values outside the deadzone should pass")
	}
}

func TestHatAxes(t *testing.T) {
	tests := []struct {
		bits uint8
		x, y float32
	}{
		{0, 0, 0},
		{hatUp, 0, -1},
		{hatDown, 0, 1},
		{hatLeft, -1, 0},
		{hatRight, 1, 0},
		{hatUp | hatLeft, -1, -1},
		{hatDown | hatRight, 1, 1},
	}
	for _, tt := range tests {
		x, y := HatAxes(tt.bits)
		if x != tt.x || y != tt.y {
			t.Errorf("HatAxes(0x%02X) = (%v, %v), expected (%v, %v)", tt.bits, x, y, tt.x, tt.y)
		}
	}
}

func TestGetMapping(t *testing.T) {
	if m := GetMapping(0x045E, 0x0B12); m.Name != "xbox" {
		t.Errorf("Xbox Series mapping = %s", m.Name)
	}
	if m := GetMapping(0x054C, 0x0CE6); m.Name != "playstation" {
		t.Errorf("DualSense mapping = %s", m.Name)
	}
	if m := GetMapping(0x1234, 0x5678); m.Name != "generic" {
		t.Errorf("Unknown device mapping = %s", m.Name)
	}
}

func TestReadXbox(t *testing.T) {
	dev := fakeDevice{
		axes: map[int32]int16{
			0: 16384,  // left stick half right
			1: -32768, // left stick fully up
			2: 100,    // right stick inside the deadzone
			4: -32768, // LT released
			5: 32767,  // RT pulled
		},
		buttons: map[int32]bool{0: true, 7: true, 12: true},
		nbtn:    11,
		hat:     hatLeft,
		hasHat:  true,
	}

	st := GetMapping(0x045E, 0x028E).Read(dev, 0.05)

	if !st.Connected || st.Mapping != "xbox" {
		t.Errorf("State header = %+v", st)
	}
	if st.Axes[input.RawX] < 0.49 || st.Axes[input.RawX] > 0.51 {
		t.Errorf("AXIS_X = %v, expected about 0.5", st.Axes[input.RawX])
	}
	if st.Axes[input.RawY] != -1 {
		t.Errorf("AXIS_Y = %v, expected -1", st.Axes[input.RawY])
	}
	if st.Axes[input.RawZ] != 0 {
		t.Errorf("AXIS_Z = %v, expected 0 inside deadzone", st.Axes[input.RawZ])
	}
	if st.Axes[input.RawLTrigger] != 0 || st.Axes[input.RawRTrigger] != 1 {
		t.Errorf("Triggers = %v / %v", st.Axes[input.RawLTrigger], st.Axes[input.RawRTrigger])
	}
	if st.Axes[input.RawHatX] != -1 || st.Axes[input.RawHatY] != 0 {
		t.Errorf("Hat = %v, %v", st.Axes[input.RawHatX], st.Axes[input.RawHatY])
	}
	if !st.Buttons[core.KeyButtonA] || !st.Buttons[core.KeyButtonStart] {
		t.Errorf("Buttons = %v", st.Buttons)
	}
	if st.Buttons[core.KeyButtonB] {
		t.Error("BUTTON_B should be released")
	}
	if len(st.Buttons) != 11 {
		t.Errorf("Expected 11 mapped buttons, got %d", len(st.Buttons))
	}
}

func TestReadSkipsMissingButtonsAndHat(t *testing.T) {
	dev := fakeDevice{buttons: map[int32]bool{0: true, 9: true}, nbtn: 4, hasHat: false}

	st := GetMapping(0x057E, 0x2009).Read(dev, 0.05)

	if _, ok := st.Buttons[core.KeyButtonThumbR]; ok {
		t.Error("Buttons past the device's count should be skipped")
	}
	if !st.Buttons[core.KeyButtonA] {
		t.Error("BUTTON_A should be pressed")
	}
	if st.Axes[input.RawHatX] != 0 || st.Axes[input.RawHatY] != 0 {
		t.Error("Hat axes should stay centered without a hat")
	}
}

func TestEventsButtons(t *testing.T) {
	prev := State{Buttons: map[core.KeyCode]bool{core.KeyButtonA: true, core.KeyButtonB: false}}
	next := State{Buttons: map[core.KeyCode]bool{core.KeyButtonA: false, core.KeyButtonB: true, core.KeyButtonX: false}}

	evs := Events(prev, next)
	if len(evs) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(evs))
	}

	a := evs[0].(platform.KeyEvent)
	b := evs[1].(platform.KeyEvent)
	if a.Code != core.KeyButtonA || a.Action != input.KeyUp || a.Repeat != 0 {
		t.Errorf("First event = %+v, expected BUTTON_A up", a)
	}
	if b.Code != core.KeyButtonB || b.Action != input.KeyDown {
		t.Errorf("Second event = %+v, expected BUTTON_B down", b)
	}
}

func TestEventsAxes(t *testing.T) {
	var prev, next State
	next.Axes[input.RawZ] = 0.75

	evs := Events(prev, next)
	if len(evs) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(evs))
	}
	m := evs[0].(platform.MotionEvent)
	if m.Sample.Action != input.MotionMove || m.Sample.Axis(input.RawZ) != 0.75 {
		t.Errorf("Motion = %+v", m.Sample)
	}

	if evs := Events(next, next); len(evs) != 0 {
		t.Errorf("Unchanged state should produce no events, got %d", len(evs))
	}
}

func TestEventsDisconnectReleases(t *testing.T) {
	prev := State{Connected: true, Buttons: map[core.KeyCode]bool{core.KeyButtonR1: true}}
	prev.Axes[input.RawX] = 1

	evs := Events(prev, State{})
	if len(evs) != 2 {
		t.Fatalf("Expected release and recenter, got %d events", len(evs))
	}
	if k := evs[0].(platform.KeyEvent); k.Code != core.KeyButtonR1 || k.Action != input.KeyUp {
		t.Errorf("Expected BUTTON_R1 release, got %+v", k)
	}
	if m := evs[1].(platform.MotionEvent); m.Sample.Axis(input.RawX) != 0 {
		t.Error("Axes should be centered after disconnect")
	}
}
