package hub

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/view"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100

	EventDisconnected = "disconnected"
)

// Broadcaster owns the session of the web surface. Controller states,
// client commands and the tray all reach the session through Run, so the
// session is never touched from two goroutines.
type Broadcaster struct {
	hub      *Hub
	session  *view.Session
	changes  <-chan controller.State
	commands chan func()
	done     chan struct{}
	assets   AssetURLs

	onBackground func(name string)

	seq          int64
	deltaCount   int
	disconnected bool
}

func NewBroadcaster(h *Hub, sess *view.Session, changes <-chan controller.State, assets AssetURLs) *Broadcaster {
	return &Broadcaster{
		hub:      h,
		session:  sess,
		changes:  changes,
		commands: make(chan func(), 16),
		done:     make(chan struct{}),
		assets:   assets,
	}
}

// OnBackground registers fn to be called, on the broadcaster loop, after
// every successful background switch. Must be called before Run.
func (b *Broadcaster) OnBackground(fn func(name string)) {
	b.onBackground = fn
}

// Run starts the broadcaster loop. Should be run in a goroutine. A closed
// changes channel is broadcast as a disconnect; the loop keeps serving
// commands until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	defer close(b.done)
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	changes := b.changes
	for {
		select {
		case <-ctx.Done():
			return

		case state, ok := <-changes:
			if !ok {
				changes = nil
				b.disconnected = true
				b.seq++
				b.broadcast(NewEventMessage(b.seq, EventDisconnected))
				log.Println("Controller disconnected")
				continue
			}

			changed := b.session.Apply(state)
			if len(changed) == 0 {
				continue
			}

			b.seq++
			b.deltaCount++

			// Send full sync periodically
			if b.deltaCount >= deltaCountSync {
				b.sendFull()
			} else {
				b.broadcast(NewFrameMessage(b.seq, newFrame(changed), false))
			}

		case fn := <-b.commands:
			fn()

		case <-ticker.C:
			b.seq++
			b.sendFull()
		}
	}
}

// do queues fn to run on the broadcaster loop. Commands arriving after
// Run returned are dropped.
func (b *Broadcaster) do(fn func()) {
	select {
	case b.commands <- fn:
	case <-b.done:
	}
}

// Join sends the current layout and frame to a newly connected client.
func (b *Broadcaster) Join(c *Client) {
	b.do(func() {
		b.seq++
		b.sendTo(c, NewLayoutMessage(b.seq, newLayoutData(b.session, b.assets)))
		b.seq++
		b.sendTo(c, NewFrameMessage(b.seq, newFrame(b.session.Snapshot()), true))
		if b.disconnected {
			b.seq++
			b.sendTo(c, NewEventMessage(b.seq, EventDisconnected))
		}
	})
}

// Resize applies a resize intent from any client. The last one wins for
// everybody.
func (b *Broadcaster) Resize(width, height float64) {
	b.do(func() {
		b.session.Resize(width, height)
		b.sendLayout()
	})
}

// SelectBackground switches every client to the named background.
func (b *Broadcaster) SelectBackground(name string) {
	b.do(func() {
		if err := b.session.SelectBackground(name); err != nil {
			log.Printf("Background switch failed: %v", err)
			return
		}
		log.Printf("Background switched to %s", name)
		b.sendLayout()
		if b.onBackground != nil {
			b.onBackground(name)
		}
	})
}

func (b *Broadcaster) sendLayout() {
	b.seq++
	b.broadcast(NewLayoutMessage(b.seq, newLayoutData(b.session, b.assets)))
	b.seq++
	b.sendFull()
}

func (b *Broadcaster) sendFull() {
	b.deltaCount = 0
	b.broadcast(NewFrameMessage(b.seq, newFrame(b.session.Snapshot()), true))
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendTo(c *Client, msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.SendTo(c, data)
}
