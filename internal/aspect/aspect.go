// Package aspect keeps a presentation surface locked to the width:height
// ratio of a skin's canvas and rescales the skin when the surface changes.
package aspect

// Surface reports the outer size of a presentation surface, chrome
// included.
type Surface interface {
	OuterSize() (width, height float64)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func() (width, height float64)

func (f SurfaceFunc) OuterSize() (width, height float64) {
	return f()
}

// Rescaler recomputes current geometry from load-time geometry.
type Rescaler interface {
	Rescale(xRatio, yRatio float64)
}

// minContent keeps a collapsed surface from producing a zero or negative
// scale.
const minContent = 1

// Constraint derives the surface width from its height. The ratio is
// fixed at construction; the chrome margins are measured once, on the
// first resize.
type Constraint struct {
	origW, origH float64
	surface      Surface
	target       Rescaler

	measured         bool
	marginW, marginH float64

	contentW, contentH float64
}

func New(origW, origH float64, surface Surface, target Rescaler) *Constraint {
	return &Constraint{
		origW:    origW,
		origH:    origH,
		surface:  surface,
		target:   target,
		contentW: origW,
		contentH: origH,
	}
}

func (c *Constraint) Ratio() float64 {
	return c.origW / c.origH
}

// Margins returns the measured chrome overhead, zero before the first
// resize.
func (c *Constraint) Margins() (width, height float64) {
	return c.marginW, c.marginH
}

// ContentSize is the content size after the last resize.
func (c *Constraint) ContentSize() (width, height float64) {
	return c.contentW, c.contentH
}

// Resize overrides the proposed width so the content keeps the canvas
// ratio, honoring the proposed height, and rescales the target to the
// resulting content size. It returns the outer size to apply.
func (c *Constraint) Resize(proposedW, proposedH float64) (width, height float64) {
	if !c.measured {
		ow, oh := c.surface.OuterSize()
		c.marginW = ow - c.origW
		c.marginH = oh - c.origH
		c.measured = true
	}

	contentH := proposedH - c.marginH
	if contentH < minContent {
		contentH = minContent
	}
	// multiply before dividing so the original height maps back onto the
	// original width exactly
	contentW := contentH * c.origW / c.origH

	c.contentW, c.contentH = contentW, contentH
	c.target.Rescale(contentW/c.origW, contentH/c.origH)

	return c.marginW + contentW, c.marginH + contentH
}
