package input

import "github.com/vovakirdan/serious-bridge/internal/core"

// DefaultViewMultiplier is the look-stick sensitivity the engine was tuned for.
const DefaultViewMultiplier float32 = 2.0

// AxisRule routes one raw axis to an engine axis. Scale carries the sign:
// sticks report "pushed away" as negative, the engine wants forward positive.
type AxisRule struct {
	Source RawAxis
	Target core.AxisID
	Scale  float32
}

// DefaultAxisRules returns the stick layout for a standard gamepad.
func DefaultAxisRules(viewMult float32) []AxisRule {
	return []AxisRule{
		{Source: RawY, Target: core.AxisMoveFB, Scale: -1},
		{Source: RawX, Target: core.AxisMoveLR, Scale: -1},
		{Source: RawZ, Target: core.AxisLookLR, Scale: -viewMult},
		{Source: RawRZ, Target: core.AxisLookUD, Scale: -viewMult},
	}
}

// AxisMapper applies an axis rule table to motion samples.
// It never clamps: values past ±1 after scaling go to the engine as-is.
type AxisMapper struct {
	rules []AxisRule
}

// NewAxisMapper creates a mapper for the given rules.
// A nil or empty table falls back to DefaultAxisRules.
func NewAxisMapper(rules []AxisRule) *AxisMapper {
	if len(rules) == 0 {
		rules = DefaultAxisRules(DefaultViewMultiplier)
	}
	cp := make([]AxisRule, len(rules))
	copy(cp, rules)
	return &AxisMapper{rules: cp}
}

// Rules returns a copy of the active rule table.
func (m *AxisMapper) Rules() []AxisRule {
	cp := make([]AxisRule, len(m.rules))
	copy(cp, m.rules)
	return cp
}

// Map converts a single raw sample. ok is false when no rule covers raw.
// If several rules share a source the first one wins.
func (m *AxisMapper) Map(raw RawAxis, v float32) (sample core.AxisSample, ok bool) {
	for _, r := range m.rules {
		if r.Source == raw {
			return core.AxisSample{Axis: r.Target, Value: v * r.Scale}, true
		}
	}
	return core.AxisSample{}, false
}

// MapMotion converts a motion event into axis samples, in rule order.
// Only move events carry stick positions; anything else yields nil.
func (m *AxisMapper) MapMotion(ev MotionSample) []core.AxisSample {
	if ev.Action != MotionMove {
		return nil
	}
	out := make([]core.AxisSample, 0, len(m.rules))
	for _, r := range m.rules {
		out = append(out, core.AxisSample{
			Axis:  r.Target,
			Value: ev.Axis(r.Source) * r.Scale,
		})
	}
	return out
}
