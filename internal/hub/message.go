package hub

import (
	"fmt"
	"image/color"
	"time"

	"github.com/soar/skinview/internal/mapper"
	"github.com/soar/skinview/internal/view"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string         `json:"type"`             // "layout", "frame" or "event"
	Seq       int64          `json:"seq"`              // Sequence number for ordering
	Timestamp int64          `json:"timestamp"`        // Unix timestamp in milliseconds
	Event     string         `json:"event,omitempty"`  // Event name for type "event"
	Layout    *LayoutData    `json:"layout,omitempty"` // Scene for type "layout"
	Full      bool           `json:"full,omitempty"`   // Frame carries every element
	Frame     []ElementFrame `json:"frame,omitempty"`  // Element looks for type "frame"
}

// LayoutData tells the client how to build its element tree. Width and
// Height are the current canvas size; BaseWidth and BaseHeight the size
// the skin was drawn for.
type LayoutData struct {
	Title       string        `json:"title"`
	Skin        string        `json:"skin"`
	Background  string        `json:"background"`
	Backgrounds []string      `json:"backgrounds"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	BaseWidth   float64       `json:"baseWidth"`
	BaseHeight  float64       `json:"baseHeight"`
	Color       string        `json:"color"`
	Image       *ImageRef     `json:"image,omitempty"`
	Elements    []ElementInfo `json:"elements"`
}

type ImageRef struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Bounds is where the element sits at the current size before any input.
// Clients mask analog trigger images against it.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ElementInfo struct {
	ID        int      `json:"id"`
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	Image     ImageRef `json:"image"`
	Bounds    Bounds   `json:"bounds"`
	Direction string   `json:"direction,omitempty"`
}

// ElementFrame is the complete look of one element.
type ElementFrame struct {
	ID      int     `json:"id"`
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
}

// AssetURLs maps skin image paths to the URLs clients fetch them from.
type AssetURLs interface {
	URL(path string) string
}

func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}

func newLayoutData(sess *view.Session, assets AssetURLs) *LayoutData {
	sc := sess.Scene()
	w, h := sess.ContentSize()
	ld := &LayoutData{
		Title:       sc.Title,
		Skin:        sc.Skin,
		Background:  sc.Background,
		Backgrounds: sc.Backgrounds,
		Width:       w,
		Height:      h,
		BaseWidth:   sc.Width,
		BaseHeight:  sc.Height,
		Color:       cssColor(sc.Color),
		Elements:    make([]ElementInfo, 0, len(sc.Items)),
	}
	if sc.Image != nil {
		ld.Image = &ImageRef{URL: assets.URL(sc.Image.Path), Width: sc.Image.Width, Height: sc.Image.Height}
	}
	for _, it := range sc.Items {
		info := ElementInfo{
			ID:    it.ID,
			Kind:  it.Kind.String(),
			Name:  it.Name,
			Image: ImageRef{URL: assets.URL(it.Image.Path), Width: it.Image.Width, Height: it.Image.Height},
		}
		info.Bounds = Bounds{X: it.Bounds.X, Y: it.Bounds.Y, Width: it.Bounds.Width, Height: it.Bounds.Height}
		if it.Kind == mapper.KindTrigger {
			info.Direction = it.Direction.String()
		}
		ld.Elements = append(ld.Elements, info)
	}
	return ld
}

func newFrame(ds []mapper.Directive) []ElementFrame {
	out := make([]ElementFrame, len(ds))
	for i, d := range ds {
		out[i] = ElementFrame{
			ID:      d.ID,
			Visible: d.Visible,
			X:       d.X,
			Y:       d.Y,
			Width:   d.Width,
			Height:  d.Height,
			Opacity: d.Opacity,
		}
	}
	return out
}

// NewLayoutMessage creates a "layout" message describing the whole scene.
func NewLayoutMessage(seq int64, layout *LayoutData) *WSMessage {
	return &WSMessage{
		Type:      "layout",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Layout:    layout,
	}
}

// NewFrameMessage creates a "frame" message. full marks frames that carry
// every element rather than the changed ones.
func NewFrameMessage(seq int64, frame []ElementFrame, full bool) *WSMessage {
	return &WSMessage{
		Type:      "frame",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Full:      full,
		Frame:     frame,
	}
}

// NewEventMessage creates an "event" type message for special events.
func NewEventMessage(seq int64, event string) *WSMessage {
	return &WSMessage{
		Type:      "event",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     event,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type       string  `json:"type"` // "resize" or "select_background"
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Background string  `json:"background,omitempty"`
}
