package mapper

import (
	"image"
	"math"

	"github.com/soar/skinview/internal/skin"
)

// MaskSource returns the part of an image with bounds b, stretched over
// the rest rect full, that a masking trigger directive uncovers. The
// directive may reach past full when the trigger is overdriven, but the
// image has no pixels there, so the result stays inside b.
func MaskSource(full skin.Rect, d Directive, b image.Rectangle) image.Rectangle {
	if b.Empty() || full.Width <= 0 || full.Height <= 0 {
		return image.Rectangle{}
	}
	kx := full.Width / float64(b.Dx())
	ky := full.Height / float64(b.Dy())

	x0 := int(math.Round((math.Max(d.X, full.X) - full.X) / kx))
	y0 := int(math.Round((math.Max(d.Y, full.Y) - full.Y) / ky))
	x1 := int(math.Round((math.Min(d.X+d.Width, full.X+full.Width) - full.X) / kx))
	y1 := int(math.Round((math.Min(d.Y+d.Height, full.Y+full.Height) - full.Y) / ky))
	src := image.Rect(x0, y0, x1, y1).Add(b.Min).Intersect(b)
	if src.Empty() {
		return image.Rectangle{}
	}
	return src
}
