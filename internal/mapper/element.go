// Package mapper turns controller states into visual directives for the
// elements of one skin on one background.
package mapper

import (
	"github.com/soar/skinview/internal/skin"
)

// Kind discriminates the element payload.
type Kind int

const (
	KindDetail Kind = iota
	KindTrigger
	KindButton
	KindRangeButton
	KindStick
	KindTouchPad
)

var kindNames = [...]string{
	KindDetail:      "detail",
	KindTrigger:     "analog",
	KindButton:      "button",
	KindRangeButton: "rangebutton",
	KindStick:       "stick",
	KindTouchPad:    "touchpad",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Element is one instantiated visual element. Exactly one payload pointer
// is set, the one matching Kind; Config points into that payload.
type Element struct {
	ID     int
	Kind   Kind
	Config *skin.ElementConfig

	Detail      *skin.Detail
	Trigger     *skin.AnalogTrigger
	Button      *skin.Button
	RangeButton *skin.RangeButton
	Stick       *skin.AnalogStick
	TouchPad    *skin.TouchPad
}

// Name is the signal name the element reacts to, or the decorative name
// for details. Sticks and touchpads report their X axis.
func (e *Element) Name() string {
	switch e.Kind {
	case KindDetail:
		return e.Detail.Name
	case KindTrigger:
		return e.Trigger.Name
	case KindButton:
		return e.Button.Name
	case KindRangeButton:
		return e.RangeButton.Name
	case KindStick:
		return e.Stick.XName
	case KindTouchPad:
		return e.TouchPad.XName
	}
	return ""
}

// Field flags which directive values are meaningful.
type Field uint8

const (
	FieldVisible Field = 1 << iota
	FieldPosition
	FieldSize
	FieldOpacity
)

// Directive is the visual update for one element. Only the values named by
// Fields are to be applied; the rest keep whatever the surface shows.
type Directive struct {
	ID      int
	Fields  Field
	Visible bool
	X, Y    float64
	Width   float64
	Height  float64
	Opacity float64
}

func (d Directive) Has(f Field) bool {
	return d.Fields&f != 0
}
