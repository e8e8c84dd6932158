package mapper

import (
	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/skin"
)

// Layout is the set of elements of one skin shown on one background, in
// drawing order. It owns the skin's current geometry: Rescale writes it,
// Map only reads it, and callers must not run the two concurrently.
type Layout struct {
	Skin       *skin.Skin
	Background *skin.Background
	Elements   []*Element
}

// NewLayout instantiates the elements of s that are active on bg and
// resets their current geometry to the load-time values. bg must belong
// to s.
func NewLayout(s *skin.Skin, bg *skin.Background) *Layout {
	l := &Layout{Skin: s, Background: bg}

	add := func(e *Element) {
		if !e.Config.ActiveOn(bg.Name) {
			return
		}
		e.Config.Reset()
		e.ID = len(l.Elements)
		l.Elements = append(l.Elements, e)
	}

	for i := range s.Details {
		d := &s.Details[i]
		add(&Element{Kind: KindDetail, Config: &d.Config, Detail: d})
	}
	for i := range s.AnalogTriggers {
		t := &s.AnalogTriggers[i]
		add(&Element{Kind: KindTrigger, Config: &t.Config, Trigger: t})
	}
	for i := range s.Buttons {
		b := &s.Buttons[i]
		add(&Element{Kind: KindButton, Config: &b.Config, Button: b})
	}
	for i := range s.RangeButtons {
		b := &s.RangeButtons[i]
		add(&Element{Kind: KindRangeButton, Config: &b.Config, RangeButton: b})
	}
	for i := range s.AnalogSticks {
		st := &s.AnalogSticks[i]
		st.XRange.Current = st.XRange.Original
		st.YRange.Current = st.YRange.Original
		add(&Element{Kind: KindStick, Config: &st.Config, Stick: st})
	}
	for i := range s.TouchPads {
		tp := &s.TouchPads[i]
		tp.XRange.Current = tp.XRange.Original
		tp.YRange.Current = tp.YRange.Original
		add(&Element{Kind: KindTouchPad, Config: &tp.Config, TouchPad: tp})
	}

	return l
}

// Size is the load-time canvas size.
func (l *Layout) Size() (width, height float64) {
	return l.Background.Width, l.Background.Height
}

// Rescale recomputes every element's current geometry from its load-time
// geometry. Nothing accumulates between calls.
func (l *Layout) Rescale(xRatio, yRatio float64) {
	for _, e := range l.Elements {
		e.Config.Current = e.Config.Original.Scale(xRatio, yRatio)
		switch e.Kind {
		case KindStick:
			e.Stick.XRange.Current = e.Stick.XRange.Original * xRatio
			e.Stick.YRange.Current = e.Stick.YRange.Original * yRatio
		case KindTouchPad:
			e.TouchPad.XRange.Current = e.TouchPad.XRange.Original * xRatio
			e.TouchPad.YRange.Current = e.TouchPad.YRange.Original * yRatio
		}
	}
}

// Initial returns the directives for a freshly shown layout, before any
// state has arrived.
func (l *Layout) Initial() []Directive {
	out := make([]Directive, 0, len(l.Elements))
	for _, e := range l.Elements {
		d := place(e)
		d.Fields |= FieldVisible | FieldOpacity
		d.Opacity = 1
		switch e.Kind {
		case KindDetail, KindTrigger:
			d.Visible = true
		case KindStick:
			d.Visible = e.Stick.VisibilityName == ""
		}
		out = append(out, d)
	}
	return out
}

// Map computes the directives for st. Elements whose signal is absent and
// whose policy is to keep their last look produce no directive.
func (l *Layout) Map(st controller.State) []Directive {
	compass, _ := Compass(st)

	out := make([]Directive, 0, len(l.Elements))
	for _, e := range l.Elements {
		var d Directive
		var ok bool
		switch e.Kind {
		case KindDetail:
			d, ok = mapDetail(e), true
		case KindButton:
			d, ok = mapButton(e, st, compass), true
		case KindRangeButton:
			d, ok = mapRangeButton(e, st), true
		case KindStick:
			d, ok = mapStick(e, st), true
		case KindTouchPad:
			d, ok = mapTouchPad(e, st), true
		case KindTrigger:
			d, ok = mapTrigger(e, st)
		}
		if ok {
			out = append(out, d)
		}
	}
	return out
}

// place returns a directive positioned at the element's current geometry.
func place(e *Element) Directive {
	r := e.Config.Current
	return Directive{
		ID:     e.ID,
		Fields: FieldPosition | FieldSize,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
	}
}

func visible(d Directive, v bool) Directive {
	d.Fields |= FieldVisible
	d.Visible = v
	return d
}

func mapDetail(e *Element) Directive {
	return visible(place(e), true)
}

func mapButton(e *Element, st controller.State, compass map[string]bool) Directive {
	pressed, _ := st.Button(e.Button.Name)
	return visible(place(e), pressed || compass[e.Button.Name])
}

func mapRangeButton(e *Element, st controller.State) Directive {
	rb := e.RangeButton
	v, ok := st.Analog(rb.Name)
	return visible(place(e), ok && rb.From <= v && v <= rb.To)
}

func mapStick(e *Element, st controller.State) Directive {
	s := e.Stick
	d := place(e)

	xrange := s.XRange.Current
	if s.XReverse {
		xrange = -xrange
	}
	// screen Y grows downward while a raised stick reports a positive value
	yrange := -s.YRange.Current
	if s.YReverse {
		yrange = s.YRange.Current
	}

	if v, ok := st.Analog(s.XName); ok {
		d.X += xrange * v
	}
	if v, ok := st.Analog(s.YName); ok {
		d.Y += yrange * v
	}

	if s.VisibilityName == "" {
		return visible(d, true)
	}
	pressed, _ := st.Button(s.VisibilityName)
	return visible(d, pressed)
}

func mapTouchPad(e *Element, st controller.State) Directive {
	tp := e.TouchPad
	vx, okX := st.Analog(tp.XName)
	vy, okY := st.Analog(tp.YName)
	if !okX || !okY {
		return Directive{ID: e.ID, Fields: FieldVisible}
	}

	r := e.Config.Current
	d := place(e)
	d.X = vx*tp.XRange.Current + r.X - r.Width/2
	d.Y = vy*tp.YRange.Current + r.Y - r.Height/2
	return visible(d, true)
}

// TriggerValue applies the trigger's sign and reversal to a raw signal and
// clamps the result below at zero. Values above one pass through.
func TriggerValue(t *skin.AnalogTrigger, raw float64) float64 {
	val := raw
	if t.UseNegative {
		val = -val
	}
	if t.Reversed {
		val = 1 - val
	}
	if val < 0 {
		val = 0
	}
	return val
}

func mapTrigger(e *Element, st controller.State) (Directive, bool) {
	t := e.Trigger
	raw, ok := st.Analog(t.Name)
	if !ok {
		return Directive{}, false
	}
	val := TriggerValue(t, raw)

	r := e.Config.Current
	d := visible(place(e), true)
	switch t.Direction {
	case skin.DirectionRight:
		d.Width = r.Width * val
	case skin.DirectionLeft:
		d.Width = r.Width * val
		d.X = r.X + (r.Width - d.Width)
	case skin.DirectionDown:
		d.Height = r.Height * val
	case skin.DirectionUp:
		d.Height = r.Height * val
		d.Y = r.Y + (r.Height - d.Height)
	case skin.DirectionFade:
		d.Fields |= FieldOpacity
		d.Opacity = val
	}
	return d, true
}
