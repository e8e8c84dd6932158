// Package preview renders still images of skins: thumbnails for the skin
// browser and the tray icon.
package preview

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/soar/skinview/internal/mapper"
	"github.com/soar/skinview/internal/skin"
)

// Render draws the skin on the named background as it looks before any
// input arrives. The result fits within maxSize pixels on its longest
// side; zero keeps the canvas size.
func Render(s *skin.Skin, background string, maxSize int) (*image.RGBA, error) {
	c := s.Clone()
	bg := &c.Backgrounds[0]
	if background != "" {
		var ok bool
		if bg, ok = c.Background(background); !ok {
			return nil, fmt.Errorf("preview: skin %q has no background %q", s.Name, background)
		}
	}

	scale := 1.0
	if longest := math.Max(bg.Width, bg.Height); maxSize > 0 && longest > float64(maxSize) {
		scale = float64(maxSize) / longest
	}
	l := mapper.NewLayout(c, bg)
	l.Rescale(scale, scale)

	dst := image.NewRGBA(image.Rect(0, 0, pixels(bg.Width*scale), pixels(bg.Height*scale)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg.Color), image.Point{}, draw.Src)

	p := painter{dst: dst, decoded: make(map[string]image.Image)}
	if bg.Image != nil {
		r := skin.Rect{Width: float64(bg.Image.Width), Height: float64(bg.Image.Height)}
		if err := p.paint(*bg.Image, r.Scale(scale, scale)); err != nil {
			return nil, err
		}
	}
	for _, d := range l.Initial() {
		if !d.Visible {
			continue
		}
		r := skin.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
		if err := p.paint(l.Elements[d.ID].Config.Image, r); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func pixels(v float64) int {
	return max(1, int(math.Round(v)))
}

type painter struct {
	dst     *image.RGBA
	decoded map[string]image.Image
}

func (p *painter) paint(img skin.Image, r skin.Rect) error {
	src, ok := p.decoded[img.Path]
	if !ok {
		var err error
		if src, err = img.Decode(); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		p.decoded[img.Path] = src
	}

	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	rect := image.Rect(x0, y0, x0+pixels(r.Width), y0+pixels(r.Height))
	draw.CatmullRom.Scale(p.dst, rect, src, src.Bounds(), draw.Over, nil)
	return nil
}

// WebP encodes img losslessly.
func WebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: encode webp: %w", err)
	}
	return nil
}

// Square centers img on a transparent size×size canvas, scaling it down to
// fit.
func Square(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	scale := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w, h := pixels(float64(b.Dx())*scale), pixels(float64(b.Dy())*scale)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	x0, y0 := (size-w)/2, (size-h)/2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), img, b, draw.Src, nil)
	return dst
}

// PNG encodes img as PNG.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("preview: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// ICO wraps a PNG-encoded square image of the given size in a single-entry
// Windows icon container.
func ICO(pngData []byte, size int) []byte {
	dim := uint8(size)
	if size >= 256 {
		dim = 0 // 0 means 256 in the icon directory
	}

	var buf bytes.Buffer
	buf.Grow(icoHeaderSize + icoEntrySize + len(pngData))
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1}) // reserved, type icon, count
	buf.Write([]byte{dim, dim, 0, 0})                            // width, height, palette, reserved
	binary.Write(&buf, binary.LittleEndian, struct {
		Planes, BitCount uint16
		Size, Offset     uint32
	}{1, 32, uint32(len(pngData)), icoHeaderSize + icoEntrySize})
	buf.Write(pngData)
	return buf.Bytes()
}

// Icon renders a square tray icon of the skin. Windows gets an ICO, every
// other platform a plain PNG.
func Icon(s *skin.Skin, background string, size int, ico bool) ([]byte, error) {
	img, err := Render(s, background, size)
	if err != nil {
		return nil, err
	}
	data, err := PNG(Square(img, size))
	if err != nil {
		return nil, err
	}
	if ico {
		return ICO(data, size), nil
	}
	return data, nil
}
