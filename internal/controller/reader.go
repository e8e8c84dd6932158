package controller

import (
	"context"
	"sync"
)

// Reader decodes a device into a stream of States. Run blocks until ctx is
// cancelled or the device goes away; in both cases the Changes channel is
// closed before Run returns, which consumers treat as the disconnect event.
type Reader interface {
	Changes() <-chan State
	Run(ctx context.Context) error
}

// Emitter is the shared output side of a Reader: it suppresses unchanged
// states and never blocks the device loop.
type Emitter struct {
	changes chan State
	last    State
	hasLast bool
	once    sync.Once
}

func NewEmitter(buffer int) *Emitter {
	return &Emitter{changes: make(chan State, buffer)}
}

// Changes returns the channel on which state changes are sent.
func (e *Emitter) Changes() <-chan State {
	return e.changes
}

// Emit queues s if it differs from the previously emitted state. It returns
// false when s was suppressed or dropped.
func (e *Emitter) Emit(s State) bool {
	if e.hasLast && !Changed(e.last, s) {
		return false
	}
	select {
	case e.changes <- s:
		e.last = s
		e.hasLast = true
		return true
	default:
		// Drop if channel is full to avoid blocking the device loop
		return false
	}
}

// Close closes the Changes channel. Safe to call more than once.
func (e *Emitter) Close() {
	e.once.Do(func() { close(e.changes) })
}
