// Package skin holds the typed entity graph of a skin description and the
// loader that builds it from a skin folder.
package skin

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/soar/skinview/internal/source"
)

// Image is an image resource referenced by a skin, resolved against the
// skin folder.
type Image struct {
	Name   string // as written in skin.xml
	Path   string // resolved file path
	Width  int    // native pixel width
	Height int    // native pixel height
}

// Rect is a position and size in canvas pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Scale multiplies the rect per axis.
func (r Rect) Scale(xRatio, yRatio float64) Rect {
	return Rect{
		X:      r.X * xRatio,
		Y:      r.Y * yRatio,
		Width:  r.Width * xRatio,
		Height: r.Height * yRatio,
	}
}

// Range is a stick or touchpad travel distance. Original is the load-time
// value, Current follows the presentation surface size.
type Range struct {
	Original float64
	Current  float64
}

func newRange(v float64) Range {
	return Range{Original: v, Current: v}
}

// ElementConfig holds the geometry and image shared by all element kinds.
type ElementConfig struct {
	Image    Image
	Original Rect
	Current  Rect
	Target   []string // backgrounds the element appears on, empty = all
	Ignore   []string // backgrounds the element never appears on
}

// ActiveOn reports whether the element is shown on the named background.
// Ignore wins over Target.
func (c *ElementConfig) ActiveOn(background string) bool {
	if slices.Contains(c.Ignore, background) {
		return false
	}
	return len(c.Target) == 0 || slices.Contains(c.Target, background)
}

// Reset restores the current geometry to the load-time geometry.
func (c *ElementConfig) Reset() {
	c.Current = c.Original
}

type Background struct {
	Name   string
	Image  *Image
	Color  color.NRGBA
	Width  float64
	Height float64
}

type Detail struct {
	Name   string
	Config ElementConfig
}

type Button struct {
	Name   string
	Config ElementConfig
}

type RangeButton struct {
	Name     string
	From, To float64
	Config   ElementConfig
}

type AnalogStick struct {
	Config         ElementConfig
	XName, YName   string
	VisibilityName string // optional gating button
	XRange, YRange Range
	XReverse       bool
	YReverse       bool
}

// Direction selects how an analog trigger masks its image.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionFade
)

var directionNames = map[Direction]string{
	DirectionUp:    "up",
	DirectionDown:  "down",
	DirectionLeft:  "left",
	DirectionRight: "right",
	DirectionFade:  "fade",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection resolves the skin.xml spelling of a direction.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return 0, false
}

type AnalogTrigger struct {
	Name        string
	Direction   Direction
	Reversed    bool
	UseNegative bool
	Config      ElementConfig
}

type TouchPad struct {
	Config         ElementConfig
	XName, YName   string
	XRange, YRange Range
}

// Skin is one visual theme bound to one input-source type.
type Skin struct {
	Name   string
	Author string
	Type   *source.Source
	Dir    string

	Backgrounds    []Background
	Details        []Detail
	Buttons        []Button
	RangeButtons   []RangeButton
	AnalogSticks   []AnalogStick
	AnalogTriggers []AnalogTrigger
	TouchPads      []TouchPad
}

// Key identifies the skin among skins generated from the same folder.
func (s *Skin) Key() string {
	if s.Type == nil {
		return s.Name
	}
	return s.Name + " (" + s.Type.Tag + ")"
}

// Background returns the background with the given name.
func (s *Skin) Background(name string) (*Background, bool) {
	for i := range s.Backgrounds {
		if s.Backgrounds[i].Name == name {
			return &s.Backgrounds[i], true
		}
	}
	return nil, false
}

// Images returns every distinct image the skin references, backgrounds
// first, in declaration order.
func (s *Skin) Images() []Image {
	seen := make(map[string]bool)
	var out []Image
	add := func(img Image) {
		if seen[img.Path] {
			return
		}
		seen[img.Path] = true
		out = append(out, img)
	}
	for _, bg := range s.Backgrounds {
		if bg.Image != nil {
			add(*bg.Image)
		}
	}
	for _, c := range s.configs() {
		add(c.Image)
	}
	return out
}

// configs returns pointers to every element config in z-order.
func (s *Skin) configs() []*ElementConfig {
	var out []*ElementConfig
	for i := range s.Details {
		out = append(out, &s.Details[i].Config)
	}
	for i := range s.AnalogTriggers {
		out = append(out, &s.AnalogTriggers[i].Config)
	}
	for i := range s.Buttons {
		out = append(out, &s.Buttons[i].Config)
	}
	for i := range s.RangeButtons {
		out = append(out, &s.RangeButtons[i].Config)
	}
	for i := range s.AnalogSticks {
		out = append(out, &s.AnalogSticks[i].Config)
	}
	for i := range s.TouchPads {
		out = append(out, &s.TouchPads[i].Config)
	}
	return out
}

// Clone returns a deep copy whose geometry can be mutated independently.
func (s *Skin) Clone() *Skin {
	c := *s
	c.Backgrounds = slices.Clone(s.Backgrounds)
	for i := range c.Backgrounds {
		if img := c.Backgrounds[i].Image; img != nil {
			cp := *img
			c.Backgrounds[i].Image = &cp
		}
	}
	c.Details = slices.Clone(s.Details)
	c.Buttons = slices.Clone(s.Buttons)
	c.RangeButtons = slices.Clone(s.RangeButtons)
	c.AnalogSticks = slices.Clone(s.AnalogSticks)
	c.AnalogTriggers = slices.Clone(s.AnalogTriggers)
	c.TouchPads = slices.Clone(s.TouchPads)
	for _, cfg := range c.configs() {
		cfg.Target = slices.Clone(cfg.Target)
		cfg.Ignore = slices.Clone(cfg.Ignore)
	}
	return &c
}
