package skin

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soar/skinview/internal/source"
)

func testRegistry() *source.Registry {
	return source.NewRegistry(
		&source.Source{Tag: "gamepad", Name: "Gamepad"},
		&source.Source{Tag: "classic", Name: "Classic"},
	)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// writeSkin creates a skin folder with bg.png (200x100), btn.png (10x20)
// and the given skin.xml body.
func writeSkin(t *testing.T, dir, xmlBody string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "bg.png"), 200, 100)
	writePNG(t, filepath.Join(dir, "btn.png"), 10, 20)
	if err := os.WriteFile(filepath.Join(dir, DescriptionFile), []byte(xmlBody), 0o644); err != nil {
		t.Fatal(err)
	}
}

const fullSkin = `<skin name="Pad" author="Tester" type="gamepad;classic">
	<background name="default" image="bg.png" />
	<background name="flat" width="320" height="240" color="#80ff0000" />
	<detail name="logo" image="btn.png" x="1" y="2" />
	<button name="a" image="btn.png" x="10" y="20" width="30" target="default" ignore="flat" />
	<rangebutton name="lt" image="btn.png" x="5" y="5" from="0.2" to="0.8" />
	<stick xname="lx" yname="ly" visname="l3" image="btn.png" x="50" y="50" xrange="12" yrange="8" xreverse="true" yreverse="yes" />
	<touchpad xname="tx" yname="ty" image="btn.png" x="0" y="0" xrange="100" yrange="50" />
	<analog name="rt" image="btn.png" x="150" y="10" direction="left" reverse="true" usenegative="false" />
</skin>`

func TestLoadFullSkin(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pad")
	writeSkin(t, dir, fullSkin)

	skins, err := NewLoader(testRegistry()).Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(skins) != 2 {
		t.Fatalf("Expected 2 skins for 2 type tags, got %d", len(skins))
	}

	s := skins[0]
	if s.Name != "Pad" || s.Author != "Tester" {
		t.Errorf("Expected Pad/Tester, got %s/%s", s.Name, s.Author)
	}
	if s.Type.Tag != "gamepad" || skins[1].Type.Tag != "classic" {
		t.Errorf("Expected types gamepad, classic; got %s, %s", s.Type.Tag, skins[1].Type.Tag)
	}

	if len(s.Backgrounds) != 2 {
		t.Fatalf("Expected 2 backgrounds, got %d", len(s.Backgrounds))
	}
	bg := s.Backgrounds[0]
	if bg.Image == nil || bg.Width != 200 || bg.Height != 100 {
		t.Errorf("Expected image background 200x100, got %+v", bg)
	}
	flat := s.Backgrounds[1]
	if flat.Image != nil || flat.Width != 320 || flat.Height != 240 {
		t.Errorf("Expected flat background 320x240, got %+v", flat)
	}
	if flat.Color != (color.NRGBA{R: 255, A: 0x80}) {
		t.Errorf("Expected color #80ff0000, got %+v", flat.Color)
	}

	btn := s.Buttons[0]
	if btn.Config.Original != (Rect{X: 10, Y: 20, Width: 30, Height: 20}) {
		t.Errorf("Expected width override and native height, got %+v", btn.Config.Original)
	}
	if btn.Config.Current != btn.Config.Original {
		t.Error("Expected current geometry to start equal to original")
	}
	if len(btn.Config.Target) != 1 || btn.Config.Target[0] != "default" {
		t.Errorf("Expected target [default], got %v", btn.Config.Target)
	}
	if len(btn.Config.Ignore) != 1 || btn.Config.Ignore[0] != "flat" {
		t.Errorf("Expected ignore [flat], got %v", btn.Config.Ignore)
	}
	if len(s.Details[0].Config.Target) != 0 || len(s.Details[0].Config.Ignore) != 0 {
		t.Error("Expected target/ignore to default to empty")
	}

	rb := s.RangeButtons[0]
	if rb.From != 0.2 || rb.To != 0.8 {
		t.Errorf("Expected range [0.2, 0.8], got [%v, %v]", rb.From, rb.To)
	}

	stick := s.AnalogSticks[0]
	if stick.XRange.Original != 12 || stick.XRange.Current != 12 || stick.YRange.Original != 8 {
		t.Errorf("Unexpected stick ranges %+v %+v", stick.XRange, stick.YRange)
	}
	if !stick.XReverse {
		t.Error("Expected xreverse=true")
	}
	if stick.YReverse {
		t.Error("Expected unrecognised boolean to fall back to false")
	}
	if stick.VisibilityName != "l3" {
		t.Errorf("Expected visname l3, got %q", stick.VisibilityName)
	}

	trig := s.AnalogTriggers[0]
	if trig.Direction != DirectionLeft || !trig.Reversed || trig.UseNegative {
		t.Errorf("Unexpected trigger %+v", trig)
	}

	if s.TouchPads[0].XRange.Original != 100 || s.TouchPads[0].YRange.Original != 50 {
		t.Errorf("Unexpected touchpad ranges %+v", s.TouchPads[0])
	}
}

func TestLoadExpandsIdenticalSkinsPerType(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pad")
	writeSkin(t, dir, fullSkin)

	skins, err := NewLoader(testRegistry()).Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	a, b := skins[0], skins[1]
	if len(a.Buttons) != len(b.Buttons) || len(a.AnalogSticks) != len(b.AnalogSticks) ||
		len(a.Details) != len(b.Details) || len(a.AnalogTriggers) != len(b.AnalogTriggers) {
		t.Fatal("Expected identical element counts across generated skins")
	}
	if a.Buttons[0].Config.Original != b.Buttons[0].Config.Original {
		t.Error("Expected identical geometry across generated skins")
	}

	// generated skins must not share mutable geometry
	a.Buttons[0].Config.Current.X = 999
	if b.Buttons[0].Config.Current.X == 999 {
		t.Error("Expected generated skins to own their geometry")
	}
}

func TestLoadMissingDescriptionIsSkipped(t *testing.T) {
	skins, err := NewLoader(testRegistry()).Load(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error for folder without %s, got %v", DescriptionFile, err)
	}
	if len(skins) != 0 {
		t.Errorf("Expected no skins, got %d", len(skins))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			"unknown type",
			`<skin name="x" author="y" type="gamepad;n64"><background name="b" image="bg.png"/></skin>`,
			"'type'",
		},
		{
			"missing author",
			`<skin name="x" type="gamepad"><background name="b" image="bg.png"/></skin>`,
			"'author'",
		},
		{
			"no background",
			`<skin name="x" author="y" type="gamepad"></skin>`,
			"at least one background",
		},
		{
			"background without image or size",
			`<skin name="x" author="y" type="gamepad"><background name="b" width="10"/></skin>`,
			"should either define 'image'",
		},
		{
			"inverted range",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<rangebutton name="r" image="btn.png" x="0" y="0" from="0.9" to="0.1"/></skin>`,
			"cannot be greater",
		},
		{
			"missing direction",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<analog name="r" image="btn.png" x="0" y="0"/></skin>`,
			"needs attribute 'direction'",
		},
		{
			"bad direction",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<analog name="r" image="btn.png" x="0" y="0" direction="diagonal"/></skin>`,
			"illegal value",
		},
		{
			"missing image attribute",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<button name="a" x="0" y="0"/></skin>`,
			"Attribute 'image' missing for element 'button'",
		},
		{
			"missing x",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<button name="a" image="btn.png" y="0"/></skin>`,
			"'x'",
		},
		{
			"bad number",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<stick xname="lx" yname="ly" image="btn.png" x="0" y="0" xrange="wide" yrange="1"/></skin>`,
			"Failed to parse number for property 'xrange'",
		},
		{
			"negative coordinate",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png"/>
			<detail name="d" image="btn.png" x="-4" y="0"/></skin>`,
			"property 'x'",
		},
		{
			"bad color",
			`<skin name="x" author="y" type="gamepad"><background name="b" image="bg.png" color="#12"/></skin>`,
			"color",
		},
		{
			"malformed xml",
			`<skin name="x"`,
			"Could not parse",
		},
	}

	for _, tt := range tests {
		dir := filepath.Join(t.TempDir(), "skin")
		writeSkin(t, dir, tt.xml)

		skins, err := NewLoader(testRegistry()).Load(dir)
		if err == nil {
			t.Errorf("%s: expected error, got %d skins", tt.name, len(skins))
			continue
		}
		var perr *ConfigParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected ConfigParseError, got %T", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %q", tt.name, tt.want, err.Error())
		}
	}
}

func TestLoadMissingImageCarriesCause(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "skin")
	writeSkin(t, dir, `<skin name="x" author="y" type="gamepad">
		<background name="b" image="bg.png"/>
		<button name="a" image="missing.png" x="0" y="0"/>
	</skin>`)

	_, err := NewLoader(testRegistry()).Load(dir)
	var perr *ConfigParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected ConfigParseError, got %v", err)
	}
	if perr.Err == nil {
		t.Error("Expected the image error to carry an inner cause")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected cause to be a not-exist error, got %v", perr.Err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"Red", color.NRGBA{R: 255, A: 255}, true},
		{"transparent", color.NRGBA{}, true},
		{"#00ff00", color.NRGBA{G: 255, A: 255}, true},
		{"#00F", color.NRGBA{B: 255, A: 255}, true},
		{"#8000F", color.NRGBA{}, false},
		{"#7f0000ff", color.NRGBA{B: 255, A: 0x7f}, true},
		{"#f000", color.NRGBA{A: 255}, true},
		{"notacolor", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: expected ok=%v, got err=%v", tt.in, tt.ok, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestActiveOn(t *testing.T) {
	tests := []struct {
		target, ignore []string
		bg             string
		want           bool
	}{
		{nil, nil, "any", true},
		{[]string{"a"}, nil, "a", true},
		{[]string{"a"}, nil, "b", false},
		{nil, []string{"a"}, "a", false},
		{[]string{"a"}, []string{"a"}, "a", false},
	}

	for i, tt := range tests {
		cfg := ElementConfig{Target: tt.target, Ignore: tt.ignore}
		if got := cfg.ActiveOn(tt.bg); got != tt.want {
			t.Errorf("case %d: expected %v, got %v", i, tt.want, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "down", "left", "right", "fade"} {
		d, ok := ParseDirection(name)
		if !ok || d.String() != name {
			t.Errorf("Expected %q to round-trip, got %v (%v)", name, d, ok)
		}
	}
	if _, ok := ParseDirection("Up"); ok {
		t.Error("Expected direction parsing to be case sensitive")
	}
}
