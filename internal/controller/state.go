package controller

import (
	"math"
	"sort"
)

// State is an immutable snapshot of a device's logical signals. Keys are
// reader-defined names that skins reference by string.
type State struct {
	buttons map[string]bool
	analogs map[string]float64
}

// Button reports the named button and whether the reader exposes it.
func (s State) Button(name string) (pressed, ok bool) {
	pressed, ok = s.buttons[name]
	return pressed, ok
}

// Analog reports the named analog value and whether the reader exposes it.
func (s State) Analog(name string) (value float64, ok bool) {
	value, ok = s.analogs[name]
	return value, ok
}

// Buttons returns a copy of the button map.
func (s State) Buttons() map[string]bool {
	out := make(map[string]bool, len(s.buttons))
	for k, v := range s.buttons {
		out[k] = v
	}
	return out
}

// Analogs returns a copy of the analog map.
func (s State) Analogs() map[string]float64 {
	out := make(map[string]float64, len(s.analogs))
	for k, v := range s.analogs {
		out[k] = v
	}
	return out
}

// Pressed returns the names of all pressed buttons in sorted order.
func (s State) Pressed() []string {
	var names []string
	for k, v := range s.buttons {
		if v {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

func (s State) IsEmpty() bool {
	return len(s.buttons) == 0 && len(s.analogs) == 0
}

// Builder accumulates signals for a State. A builder may be reused after
// Build; the built State does not alias the builder's maps.
type Builder struct {
	buttons map[string]bool
	analogs map[string]float64
}

func NewBuilder() *Builder {
	return &Builder{
		buttons: make(map[string]bool),
		analogs: make(map[string]float64),
	}
}

func (b *Builder) SetButton(name string, pressed bool) *Builder {
	b.buttons[name] = pressed
	return b
}

func (b *Builder) SetAnalog(name string, value float64) *Builder {
	b.analogs[name] = value
	return b
}

func (b *Builder) Build() State {
	s := State{
		buttons: make(map[string]bool, len(b.buttons)),
		analogs: make(map[string]float64, len(b.analogs)),
	}
	for k, v := range b.buttons {
		s.buttons[k] = v
	}
	for k, v := range b.analogs {
		s.analogs[k] = v
	}
	return s
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// Changed reports whether next differs from prev. Buttons compare exactly,
// analog values only count once they move by analogThreshold or more.
func Changed(prev, next State) bool {
	if len(prev.buttons) != len(next.buttons) || len(prev.analogs) != len(next.analogs) {
		return true
	}
	for k, v := range next.buttons {
		old, ok := prev.buttons[k]
		if !ok || old != v {
			return true
		}
	}
	for k, v := range next.analogs {
		old, ok := prev.analogs[k]
		if !ok || !floatEqual(old, v) {
			return true
		}
	}
	return false
}
