// Package gamepad translates raw joystick readings into controller states
// with the logical signal names gamepad skins reference.
package gamepad

import "math"

// Signal names produced for gamepad skins.
const (
	LeftX  = "lx"
	LeftY  = "ly"
	RightX = "rx"
	RightY = "ry"
	LT     = "lt"
	RT     = "rt"

	Up    = "up"
	Down  = "down"
	Left  = "left"
	Right = "right"
)

// AxisMapping defines how a raw axis index maps to an analog signal.
type AxisMapping struct {
	Index     int32
	Signal    string
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw button index maps to a button signal.
type ButtonMapping struct {
	Index  int32
	Signal string
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// Signals lists every signal name the mapping can report.
func (m *DeviceMapping) Signals() (buttons, analogs []string) {
	for _, b := range m.Buttons {
		buttons = append(buttons, b.Signal)
	}
	if m.HasHat {
		buttons = append(buttons, Up, Down, Left, Right)
	}
	for _, a := range m.Axes {
		analogs = append(analogs, a.Signal)
	}
	return buttons, analogs
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	return min(max(v, 0), 1)
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Built-in mappings for common controllers. Y axes are inverted so that
// pushing a stick up reports a positive value.

var sticks = []AxisMapping{
	{Index: 0, Signal: LeftX},
	{Index: 1, Signal: LeftY, Invert: true},
	{Index: 2, Signal: RightX},
	{Index: 3, Signal: RightY, Invert: true},
}

var fullRangeTriggers = []AxisMapping{
	{Index: 4, Signal: LT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	{Index: 5, Signal: RT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
}

var xinputButtons = []ButtonMapping{
	{Index: 0, Signal: "a"},
	{Index: 1, Signal: "b"},
	{Index: 2, Signal: "x"},
	{Index: 3, Signal: "y"},
	{Index: 4, Signal: "lb"},
	{Index: 5, Signal: "rb"},
	{Index: 6, Signal: "select"},
	{Index: 7, Signal: "start"},
	{Index: 8, Signal: "l3"},
	{Index: 9, Signal: "r3"},
	{Index: 10, Signal: "home"},
}

var xboxMapping = &DeviceMapping{
	Name:    "xbox",
	Axes:    append(append([]AxisMapping{}, sticks...), fullRangeTriggers...),
	Buttons: xinputButtons,
	HasHat:  true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: append(append([]AxisMapping{}, sticks...), fullRangeTriggers...),
	Buttons: []ButtonMapping{
		{Index: 0, Signal: "a"},      // Cross
		{Index: 1, Signal: "b"},      // Circle
		{Index: 2, Signal: "x"},      // Square
		{Index: 3, Signal: "y"},      // Triangle
		{Index: 4, Signal: "select"}, // Share / Create
		{Index: 5, Signal: "home"},   // PS button
		{Index: 6, Signal: "start"},  // Options
		{Index: 7, Signal: "l3"},
		{Index: 8, Signal: "r3"},
		{Index: 9, Signal: "lb"},  // L1
		{Index: 10, Signal: "rb"}, // R1
	},
	HasHat: true,
}

// The Switch Pro controller reports ZL/ZR as digital buttons.
var switchProMapping = &DeviceMapping{
	Name:    "switch_pro",
	Axes:    sticks,
	Buttons: xinputButtons,
	HasHat:  true,
}

var genericMapping = &DeviceMapping{
	Name:    "generic",
	Axes:    append(append([]AxisMapping{}, sticks...), fullRangeTriggers...),
	Buttons: xinputButtons,
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
