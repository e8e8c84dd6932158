package skin

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// imageCache resolves image references of one skin folder, probing each
// file once.
type imageCache struct {
	dir    string
	images map[string]Image
}

func newImageCache(dir string) *imageCache {
	return &imageCache{dir: dir, images: make(map[string]Image)}
}

func (c *imageCache) load(name string) (Image, error) {
	if img, ok := c.images[name]; ok {
		return img, nil
	}

	path := filepath.Join(c.dir, filepath.FromSlash(name))
	cfg, err := probeImage(path)
	if err != nil {
		return Image{}, &ConfigParseError{Msg: "Could not load image '" + name + "'.", Err: err}
	}

	img := Image{Name: name, Path: path, Width: cfg.Width, Height: cfg.Height}
	c.images[name] = img
	return img, nil
}

func probeImage(path string) (image.Config, error) {
	f, r, fm, err := openImage(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	cfg, err := fm.config(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// parseColor accepts named colors and #RGB, #ARGB, #RRGGBB, #AARRGGBB.
func parseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		name := strings.ToLower(s)
		if name == "transparent" {
			return color.NRGBA{}, nil
		}
		c, ok := colornames.Map[name]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color name %q", s)
		}
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	hex := s[1:]
	alpha := uint8(0xff)
	switch len(hex) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(hex[:1]+hex[:1], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad alpha in %q", s)
		}
		alpha = uint8(a)
		hex = hex[1:]
	case 8:
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad alpha in %q", s)
		}
		alpha = uint8(a)
		hex = hex[2:]
	default:
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}

	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Decode reads the full image from disk.
func (img Image) Decode() (image.Image, error) {
	f, r, fm, err := openImage(img.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := fm.decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", img.Name, err)
	}
	return m, nil
}
