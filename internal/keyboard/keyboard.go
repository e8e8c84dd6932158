// Package keyboard reports a PC keyboard as a controller. Every known key
// is a button signal named after the DirectInput key it corresponds to
// ("A", "D1", "Space", "LeftControl", ...), so existing keyboard skins
// work unchanged.
package keyboard

import (
	"sort"

	"github.com/soar/skinview/internal/controller"
)

// Tracker holds the pressed set of a fixed key vocabulary.
type Tracker struct {
	names   []string
	known   map[string]bool
	pressed map[string]bool
}

func NewTracker(names []string) *Tracker {
	t := &Tracker{
		names:   append([]string(nil), names...),
		known:   make(map[string]bool, len(names)),
		pressed: make(map[string]bool),
	}
	sort.Strings(t.names)
	for _, n := range names {
		t.known[n] = true
	}
	return t
}

// Set records a key transition. Unknown keys are ignored and reported as
// false.
func (t *Tracker) Set(name string, down bool) bool {
	if !t.known[name] {
		return false
	}
	if down {
		t.pressed[name] = true
	} else {
		delete(t.pressed, name)
	}
	return true
}

// State reports every known key, pressed ones as true.
func (t *Tracker) State() controller.State {
	b := controller.NewBuilder()
	for _, n := range t.names {
		b.SetButton(n, t.pressed[n])
	}
	return b.Build()
}

// Keys returns the vocabulary in sorted order.
func (t *Tracker) Keys() []string {
	return append([]string(nil), t.names...)
}
