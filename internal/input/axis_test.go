package input

import (
	"testing"

	"github.com/vovakirdan/serious-bridge/internal/core"
)

func TestMapStickSigns(t *testing.T) {
	m := NewAxisMapper(DefaultAxisRules(DefaultViewMultiplier))

	tests := []struct {
		raw  RawAxis
		in   float32
		axis core.AxisID
		want float32
	}{
		{RawY, 1.0, core.AxisMoveFB, -1.0},
		{RawY, -0.5, core.AxisMoveFB, 0.5},
		{RawX, 0.25, core.AxisMoveLR, -0.25},
		{RawZ, 0.3, core.AxisLookLR, -0.6},
		{RawRZ, -0.4, core.AxisLookUD, 0.8},
	}

	for _, tt := range tests {
		got, ok := m.Map(tt.raw, tt.in)
		if !ok {
			t.Fatalf("Map(%v) found no rule", tt.raw)
		}
		if got.Axis != tt.axis {
			t.Errorf("Map(%v) axis = %v, expected %v", tt.raw, got.Axis, tt.axis)
		}
		if !almostEqual(got.Value, tt.want) {
			t.Errorf("Map(%v, %v) = %v, expected %v", tt.raw, tt.in, got.Value, tt.want)
		}
	}
}

func TestMapUnmappedAxis(t *testing.T) {
	m := NewAxisMapper(nil)

	if _, ok := m.Map(RawHatX, 1); ok {
		t.Error("Hat axis should not map to an engine axis")
	}
	if _, ok := m.Map(RawAxis(42), 1); ok {
		t.Error("Unknown raw axis should not map")
	}
}

func TestMapDoesNotClamp(t *testing.T) {
	m := NewAxisMapper(nil)

	got, _ := m.Map(RawZ, 0.9)
	if !almostEqual(got.Value, -1.8) {
		t.Errorf("Scaled value should pass through unclamped, got %v", got.Value)
	}
}

func TestMapMotion(t *testing.T) {
	m := NewAxisMapper(nil)

	ev := NewMotionSample()
	ev.Set(RawY, 1.0)
	ev.Set(RawZ, 0.3)

	samples := m.MapMotion(ev)
	if len(samples) != 4 {
		t.Fatalf("Expected 4 samples, got %d", len(samples))
	}

	byAxis := make(map[core.AxisID]float32)
	for _, s := range samples {
		byAxis[s.Axis] = s.Value
	}

	if !almostEqual(byAxis[core.AxisMoveFB], -1.0) {
		t.Errorf("MOVE_FB = %v, expected -1", byAxis[core.AxisMoveFB])
	}
	if !almostEqual(byAxis[core.AxisLookLR], -0.6) {
		t.Errorf("LOOK_LR = %v, expected -0.6", byAxis[core.AxisLookLR])
	}
	if byAxis[core.AxisMoveLR] != 0 {
		t.Errorf("Centered stick should report 0, got %v", byAxis[core.AxisMoveLR])
	}
}

func TestMapMotionIgnoresNonMove(t *testing.T) {
	m := NewAxisMapper(nil)

	ev := NewMotionSample()
	ev.Action = MotionHoverMove
	ev.Set(RawY, 1.0)

	if samples := m.MapMotion(ev); samples != nil {
		t.Errorf("Non-move events should produce no samples, got %v", samples)
	}
}

func TestCustomRules(t *testing.T) {
	m := NewAxisMapper([]AxisRule{
		{Source: RawX, Target: core.AxisTurnLR, Scale: 3},
	})

	got, ok := m.Map(RawX, 0.5)
	if !ok || got.Axis != core.AxisTurnLR || !almostEqual(got.Value, 1.5) {
		t.Errorf("Custom rule not applied: %+v ok=%v", got, ok)
	}
	if _, ok := m.Map(RawY, 0.5); ok {
		t.Error("Custom table should replace the defaults")
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	m := NewAxisMapper(nil)

	rules := m.Rules()
	rules[0].Scale = 100

	got, _ := m.Map(RawY, 1)
	if !almostEqual(got.Value, -1) {
		t.Error("Modifying Rules() result changed the mapper")
	}
}

func TestParseRawAxis(t *testing.T) {
	for a := RawX; a <= RawRTrigger; a++ {
		got, ok := ParseRawAxis(a.String())
		if !ok || got != a {
			t.Errorf("ParseRawAxis(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseRawAxis("AXIS_BOGUS"); ok {
		t.Error("ParseRawAxis should reject unknown names")
	}
}

func almostEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}
