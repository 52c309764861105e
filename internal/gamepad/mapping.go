// Package gamepad reads game controllers through SDL3 and turns their state
// into platform key and motion events, so a desktop host can drive the
// bridge with real hardware.
package gamepad

import (
	"math"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/input"
)

// AxisMapping defines how a raw SDL axis index maps to a platform motion axis.
type AxisMapping struct {
	Index     int32
	Target    input.RawAxis
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw SDL button index maps to a key code.
type ButtonMapping struct {
	Index int32
	Code  core.KeyCode
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float32 {
	v := float32(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float32 {
	if rawMax == rawMin {
		return 0
	}
	v := (float32(raw) - float32(rawMin)) / (float32(rawMax) - float32(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float32, threshold float32) float32 {
	if v < threshold && v > -threshold {
		return 0
	}
	return v
}

// SDL hat bits.
const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// HatAxes converts an SDL hat bitmask into hat axis values, with up and
// left negative.
func HatAxes(hat uint8) (x, y float32) {
	if hat&hatLeft != 0 {
		x--
	}
	if hat&hatRight != 0 {
		x++
	}
	if hat&hatUp != 0 {
		y--
	}
	if hat&hatDown != 0 {
		y++
	}
	return x, y
}

// SDL reports stick Y with down positive, which is also what the motion
// axes expect, so nothing is inverted here.
var standardAxes = []AxisMapping{
	{Index: 0, Target: input.RawX},
	{Index: 1, Target: input.RawY},
	{Index: 2, Target: input.RawZ},
	{Index: 3, Target: input.RawRZ},
	{Index: 4, Target: input.RawLTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	{Index: 5, Target: input.RawRTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
}

// Built-in mappings for common controllers.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Code: core.KeyButtonA},
		{Index: 1, Code: core.KeyButtonB},
		{Index: 2, Code: core.KeyButtonX},
		{Index: 3, Code: core.KeyButtonY},
		{Index: 4, Code: core.KeyButtonL1},
		{Index: 5, Code: core.KeyButtonR1},
		{Index: 6, Code: core.KeyButtonSelect},
		{Index: 7, Code: core.KeyButtonStart},
		{Index: 8, Code: core.KeyButtonThumbL},
		{Index: 9, Code: core.KeyButtonThumbR},
		{Index: 10, Code: core.KeyButtonMode},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Code: core.KeyButtonA},      // Cross
		{Index: 1, Code: core.KeyButtonB},      // Circle
		{Index: 2, Code: core.KeyButtonX},      // Square
		{Index: 3, Code: core.KeyButtonY},      // Triangle
		{Index: 4, Code: core.KeyButtonSelect}, // Share / Create
		{Index: 5, Code: core.KeyButtonMode},   // PS button
		{Index: 6, Code: core.KeyButtonStart},  // Options
		{Index: 7, Code: core.KeyButtonThumbL},
		{Index: 8, Code: core.KeyButtonThumbR},
		{Index: 9, Code: core.KeyButtonL1},
		{Index: 10, Code: core.KeyButtonR1},
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: standardAxes[:4],
	Buttons: []ButtonMapping{
		{Index: 0, Code: core.KeyButtonA},
		{Index: 1, Code: core.KeyButtonB},
		{Index: 2, Code: core.KeyButtonX},
		{Index: 3, Code: core.KeyButtonY},
		{Index: 4, Code: core.KeyButtonL1},
		{Index: 5, Code: core.KeyButtonR1},
		{Index: 6, Code: core.KeyButtonSelect},
		{Index: 7, Code: core.KeyButtonStart},
		{Index: 8, Code: core.KeyButtonThumbL},
		{Index: 9, Code: core.KeyButtonThumbR},
		{Index: 10, Code: core.KeyButtonMode},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name:    "generic",
	Axes:    standardAxes,
	Buttons: xboxMapping.Buttons,
	HasHat:  true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
