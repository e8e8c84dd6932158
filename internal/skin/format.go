package skin

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// format is one image decoder. Skin images are never decoded through the
// image package registry: tga registers itself there with an empty magic
// string that claims every file.
type format struct {
	name   string
	magic  string // '?' matches any byte
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)
}

var formats = []format{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode, png.DecodeConfig},
	{"jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig},
	{"gif", "GIF8?a", gif.Decode, gif.DecodeConfig},
	{"bmp", "BM????\x00\x00\x00\x00", bmp.Decode, bmp.DecodeConfig},
	{"tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig},
	{"tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig},
	{"webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig},
}

// TGA has no signature and is recognized by extension only.
var tgaFormat = format{"tga", "", tga.Decode, tga.DecodeConfig}

func matchMagic(magic string, b []byte) bool {
	if len(magic) != len(b) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// sniff picks the decoder for the file at path whose content r starts.
func sniff(path string, r *bufio.Reader) (format, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return tgaFormat, nil
	}
	for _, f := range formats {
		b, err := r.Peek(len(f.magic))
		if err == nil && matchMagic(f.magic, b) {
			return f, nil
		}
	}
	return format{}, image.ErrFormat
}

// openImage opens path and resolves its decoder.
func openImage(path string) (*os.File, *bufio.Reader, format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, format{}, err
	}
	r := bufio.NewReader(f)
	fm, err := sniff(path, r)
	if err != nil {
		f.Close()
		return nil, nil, format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, r, fm, nil
}
