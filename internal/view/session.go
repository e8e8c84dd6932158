// Package view ties a skin, one of its backgrounds and an aspect
// constraint into a presentation session. A Session is not safe for
// concurrent use: every state, resize and background change for it must
// come from one goroutine.
package view

import (
	"fmt"
	"image/color"

	"github.com/soar/skinview/internal/aspect"
	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/mapper"
	"github.com/soar/skinview/internal/skin"
)

// StaticTitle replaces the skin name in surface titles when the user asks
// for a stable window name, e.g. for capture software.
const StaticTitle = "SkinView Viewer"

// Item describes one element to a presentation surface.
type Item struct {
	ID        int
	Kind      mapper.Kind
	Name      string
	Image     skin.Image
	Bounds    skin.Rect      // current geometry before any state
	Direction skin.Direction // analog triggers only
}

// Scene is everything a surface needs to build its element tree.
type Scene struct {
	Title       string
	Skin        string
	Background  string
	Backgrounds []string
	Width       float64
	Height      float64
	Color       color.NRGBA
	Image       *skin.Image
	Items       []Item
}

type Session struct {
	skin        *skin.Skin
	surface     aspect.Surface
	staticTitle bool

	layout     *mapper.Layout
	constraint *aspect.Constraint

	last     controller.State
	hasState bool
	shown    []mapper.Directive
}

// NewSession starts a session on a private copy of s. An empty background
// name selects the first background. A nil surface stands for one without
// chrome, such as a browser canvas.
func NewSession(s *skin.Skin, background string, surface aspect.Surface, staticTitle bool) (*Session, error) {
	sess := &Session{
		skin:        s.Clone(),
		surface:     surface,
		staticTitle: staticTitle,
	}
	if err := sess.SelectBackground(background); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Session) Skin() *skin.Skin {
	return s.skin
}

func (s *Session) Layout() *mapper.Layout {
	return s.layout
}

func (s *Session) Background() *skin.Background {
	return s.layout.Background
}

// Title is the name surfaces should display.
func (s *Session) Title() string {
	if s.staticTitle {
		return StaticTitle
	}
	return s.skin.Name
}

// SelectBackground rebuilds the layout for the named background. Geometry
// returns to the load-time size; the surface should be resized to
// Background's dimensions afterwards.
func (s *Session) SelectBackground(name string) error {
	bg := &s.skin.Backgrounds[0]
	if name != "" {
		var ok bool
		if bg, ok = s.skin.Background(name); !ok {
			return fmt.Errorf("view: skin %q has no background %q", s.skin.Name, name)
		}
	}

	s.layout = mapper.NewLayout(s.skin, bg)
	surface := s.surface
	if surface == nil {
		surface = aspect.SurfaceFunc(s.layout.Size)
	}
	s.constraint = aspect.New(bg.Width, bg.Height, surface, s.layout)
	s.refresh()
	return nil
}

// Resize applies a resize intent and returns the outer size the surface
// should take. All shown directives are recomputed.
func (s *Session) Resize(proposedW, proposedH float64) (width, height float64) {
	width, height = s.constraint.Resize(proposedW, proposedH)
	s.refresh()
	return width, height
}

// ContentSize is the canvas size after the last resize.
func (s *Session) ContentSize() (width, height float64) {
	return s.constraint.ContentSize()
}

// Scale is the ratio between the current and the load-time canvas size.
func (s *Session) Scale() (x, y float64) {
	w, h := s.constraint.ContentSize()
	ow, oh := s.layout.Size()
	return w / ow, h / oh
}

// Apply maps st and returns the complete directives of the elements whose
// look changed.
func (s *Session) Apply(st controller.State) []mapper.Directive {
	s.last, s.hasState = st, true

	var changed []mapper.Directive
	for _, d := range s.layout.Map(st) {
		next := merge(s.shown[d.ID], d)
		if next != s.shown[d.ID] {
			s.shown[d.ID] = next
			changed = append(changed, next)
		}
	}
	return changed
}

// Snapshot returns the complete directive of every element in drawing
// order.
func (s *Session) Snapshot() []mapper.Directive {
	out := make([]mapper.Directive, len(s.shown))
	copy(out, s.shown)
	return out
}

// Scene describes the current layout.
func (s *Session) Scene() Scene {
	bg := s.layout.Background
	sc := Scene{
		Title:      s.Title(),
		Skin:       s.skin.Key(),
		Background: bg.Name,
		Width:      bg.Width,
		Height:     bg.Height,
		Color:      bg.Color,
		Image:      bg.Image,
	}
	for _, b := range s.skin.Backgrounds {
		sc.Backgrounds = append(sc.Backgrounds, b.Name)
	}
	for _, e := range s.layout.Elements {
		it := Item{ID: e.ID, Kind: e.Kind, Name: e.Name(), Image: e.Config.Image, Bounds: e.Config.Current}
		if e.Kind == mapper.KindTrigger {
			it.Direction = e.Trigger.Direction
		}
		sc.Items = append(sc.Items, it)
	}
	return sc
}

// refresh recomputes every shown directive from the current geometry.
func (s *Session) refresh() {
	s.shown = s.layout.Initial()
	if !s.hasState {
		return
	}
	for _, d := range s.layout.Map(s.last) {
		s.shown[d.ID] = merge(s.shown[d.ID], d)
	}
}

// merge applies the fields set in d over prev.
func merge(prev, d mapper.Directive) mapper.Directive {
	out := prev
	out.ID = d.ID
	if d.Has(mapper.FieldVisible) {
		out.Visible = d.Visible
	}
	if d.Has(mapper.FieldPosition) {
		out.X, out.Y = d.X, d.Y
	}
	if d.Has(mapper.FieldSize) {
		out.Width, out.Height = d.Width, d.Height
	}
	if d.Has(mapper.FieldOpacity) {
		out.Opacity = d.Opacity
	}
	out.Fields |= d.Fields
	return out
}
