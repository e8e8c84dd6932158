package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/skin"
	"github.com/soar/skinview/internal/view"
)

type assetTable map[string]string

func (a assetTable) URL(path string) string { return a[path] }

func testSession(t *testing.T) *view.Session {
	t.Helper()
	cfg := func(x, y float64) skin.ElementConfig {
		r := skin.Rect{X: x, Y: y, Width: 10, Height: 10}
		return skin.ElementConfig{Image: skin.Image{Path: "/skins/pad/a.png", Width: 10, Height: 10}, Original: r, Current: r}
	}
	bg := skin.Image{Path: "/skins/pad/bg.png", Width: 100, Height: 50}
	s := &skin.Skin{
		Name: "Pad",
		Backgrounds: []skin.Background{
			{Name: "default", Image: &bg, Width: 100, Height: 50},
			{Name: "alt", Width: 200, Height: 50},
		},
		Buttons:        []skin.Button{{Name: "a", Config: cfg(10, 10)}},
		AnalogTriggers: []skin.AnalogTrigger{{Name: "rt", Direction: skin.DirectionLeft, Config: cfg(50, 10)}},
	}
	sess, err := view.NewSession(s, "", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	return sess
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("Client channel closed")
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a message")
	}
	return WSMessage{}
}

func start(t *testing.T) (*Broadcaster, *Client, chan controller.State) {
	t.Helper()
	h := NewHub()
	changes := make(chan controller.State)
	b := NewBroadcaster(h, testSession(t), changes, assetTable{
		"/skins/pad/a.png":  "/assets/1",
		"/skins/pad/bg.png": "/assets/0",
	})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go b.Run(ctx)

	c := NewClient(h, nil)
	h.Register(c)
	b.Join(c)
	return b, c, changes
}

func TestJoinSendsLayoutAndFullFrame(t *testing.T) {
	_, c, _ := start(t)

	msg := receive(t, c)
	if msg.Type != "layout" || msg.Layout == nil {
		t.Fatalf("Expected layout first, got %+v", msg)
	}
	ld := msg.Layout
	if ld.Width != 100 || ld.Height != 50 || ld.Image == nil || ld.Image.URL != "/assets/0" {
		t.Errorf("Unexpected layout %+v", ld)
	}
	if len(ld.Elements) != 2 || ld.Elements[0].Kind != "analog" || ld.Elements[0].Direction != "left" {
		t.Errorf("Unexpected elements %+v", ld.Elements)
	}
	if ld.Elements[1].Image.URL != "/assets/1" {
		t.Errorf("Expected element image URL, got %q", ld.Elements[1].Image.URL)
	}
	if ld.Color != "rgba(0,0,0,0.000)" {
		t.Errorf("Unexpected color %q", ld.Color)
	}

	msg = receive(t, c)
	if msg.Type != "frame" || !msg.Full || len(msg.Frame) != 2 {
		t.Fatalf("Expected full frame, got %+v", msg)
	}
	if msg.Frame[1].Visible {
		t.Error("Expected button hidden before any input")
	}
}

func TestStateBroadcastsDelta(t *testing.T) {
	_, c, changes := start(t)
	receive(t, c)
	receive(t, c)

	changes <- controller.NewBuilder().SetButton("a", true).Build()
	msg := receive(t, c)
	if msg.Type != "frame" || msg.Full || len(msg.Frame) != 1 || msg.Frame[0].ID != 1 || !msg.Frame[0].Visible {
		t.Fatalf("Expected delta with button a, got %+v", msg)
	}

	changes <- controller.NewBuilder().SetButton("a", true).SetAnalog("rt", 0.25).Build()
	msg = receive(t, c)
	f := msg.Frame[0]
	if f.ID != 0 || f.Width != 2.5 || f.X != 57.5 {
		t.Errorf("Expected masked trigger, got %+v", f)
	}
}

func TestResizeAndBackgroundBroadcastLayout(t *testing.T) {
	b, c, _ := start(t)
	receive(t, c)
	receive(t, c)

	b.Resize(0, 100)
	msg := receive(t, c)
	if msg.Type != "layout" || msg.Layout.Width != 200 || msg.Layout.Height != 100 {
		t.Fatalf("Expected resized layout, got %+v", msg.Layout)
	}
	if bd := msg.Layout.Elements[0].Bounds; bd.X != 100 || bd.Width != 20 {
		t.Errorf("Expected trigger bounds at x=100 w=20, got %+v", bd)
	}
	msg = receive(t, c)
	if !msg.Full || msg.Frame[1].X != 20 {
		t.Errorf("Expected rescaled full frame, got %+v", msg)
	}

	b.SelectBackground("alt")
	msg = receive(t, c)
	if msg.Layout == nil || msg.Layout.Background != "alt" || msg.Layout.Width != 200 || msg.Layout.Image != nil {
		t.Errorf("Expected alt layout, got %+v", msg.Layout)
	}
	receive(t, c)
}

func TestDisconnectEvent(t *testing.T) {
	b, c, changes := start(t)
	receive(t, c)
	receive(t, c)

	close(changes)
	msg := receive(t, c)
	if msg.Type != "event" || msg.Event != EventDisconnected {
		t.Fatalf("Expected disconnect event, got %+v", msg)
	}

	// late joiners learn about the disconnect too
	late := NewClient(b.hub, nil)
	b.hub.Register(late)
	b.Join(late)
	receive(t, late)
	receive(t, late)
	if msg := receive(t, late); msg.Event != EventDisconnected {
		t.Errorf("Expected disconnect event for late joiner, got %+v", msg)
	}
}

type recordingCommander struct {
	resized    []float64
	background string
}

func (r *recordingCommander) Resize(w, h float64)          { r.resized = append(r.resized, w, h) }
func (r *recordingCommander) SelectBackground(name string) { r.background = name }

func TestHandleMessage(t *testing.T) {
	rc := &recordingCommander{}
	handleMessage([]byte(`{"type":"resize","width":300,"height":150}`), rc)
	handleMessage([]byte(`{"type":"resize","height":0}`), rc)
	handleMessage([]byte(`{"type":"select_background","background":"alt"}`), rc)
	handleMessage([]byte(`not json`), rc)

	if len(rc.resized) != 2 || rc.resized[1] != 150 {
		t.Errorf("Expected one resize to 150, got %v", rc.resized)
	}
	if rc.background != "alt" {
		t.Errorf("Expected background alt, got %q", rc.background)
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	h := NewHub()
	c := NewClient(h, nil)
	h.Register(c)
	h.Unregister(c)
	h.SendTo(c, []byte("x"))
	h.Broadcast([]byte("y"))
	if _, ok := <-c.send; ok {
		t.Error("Expected closed channel without messages")
	}
	if h.Len() != 0 {
		t.Errorf("Expected no clients, got %d", h.Len())
	}
}

func TestCommandsAfterStopAreDropped(t *testing.T) {
	b := NewBroadcaster(NewHub(), testSession(t), make(chan controller.State), assetTable{})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	sent := make(chan struct{})
	go func() {
		for i := 0; i < 2*cap(b.commands); i++ {
			b.Resize(0, 100)
			b.SelectBackground("alt")
			b.Join(NewClient(b.hub, nil))
		}
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected commands after Run returned not to block")
	}
}

func TestBackgroundSwitchNotifies(t *testing.T) {
	b := NewBroadcaster(NewHub(), testSession(t), make(chan controller.State), assetTable{})
	switched := make(chan string, 2)
	b.OnBackground(func(name string) { switched <- name })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go b.Run(ctx)

	b.SelectBackground("missing")
	b.SelectBackground("alt")
	select {
	case name := <-switched:
		if name != "alt" {
			t.Errorf("Expected notification for alt only, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the background notification")
	}
}
