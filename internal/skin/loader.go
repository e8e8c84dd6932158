package skin

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soar/skinview/internal/source"
)

// DescriptionFile is the file a folder must contain to be a skin.
const DescriptionFile = "skin.xml"

// xmlNode keeps attributes in document form so presence can be checked,
// which struct tags cannot express.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) name() string {
	return n.XMLName.Local
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) elements(name string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Children {
		if n.Children[i].name() == name {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// Loader builds skins from skin folders, resolving type tags against a
// source registry.
type Loader struct {
	sources *source.Registry
}

func NewLoader(sources *source.Registry) *Loader {
	return &Loader{sources: sources}
}

// Load reads dir/skin.xml and returns one Skin per declared type tag. A
// folder without skin.xml is not a skin: Load returns no skins and no error.
func (l *Loader) Load(dir string) ([]*Skin, error) {
	path := filepath.Join(dir, DescriptionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ConfigParseError{Msg: "Could not read " + DescriptionFile + ".", Err: err}
	}

	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ConfigParseError{Msg: "Could not parse " + DescriptionFile + ".", Err: err}
	}

	name, err := readString(&root, "name")
	if err != nil {
		return nil, err
	}
	author, err := readString(&root, "author")
	if err != nil {
		return nil, err
	}
	typeStr, err := readString(&root, "type")
	if err != nil {
		return nil, err
	}

	var types []*source.Source
	for _, tag := range strings.Split(typeStr, ";") {
		src, ok := l.sources.Lookup(tag)
		if !ok {
			return nil, parseError("Illegal value specified for skin attribute 'type': '" + tag + "'.")
		}
		types = append(types, src)
	}

	def := &Skin{Name: name, Author: author, Dir: dir}
	if err := parseVisuals(def, &root, newImageCache(dir)); err != nil {
		return nil, err
	}

	skins := make([]*Skin, 0, len(types))
	for _, t := range types {
		s := def.Clone()
		s.Type = t
		skins = append(skins, s)
	}
	return skins, nil
}

func parseVisuals(s *Skin, root *xmlNode, images *imageCache) error {
	bgElems := root.elements("background")
	if len(bgElems) == 0 {
		return parseError("Skin must contain at least one background.")
	}
	for _, elem := range bgElems {
		bg, err := parseBackground(elem, images)
		if err != nil {
			return err
		}
		s.Backgrounds = append(s.Backgrounds, bg)
	}

	for _, elem := range root.elements("detail") {
		cfg, err := parseStandardConfig(elem, images)
		if err != nil {
			return err
		}
		name, err := readString(elem, "name")
		if err != nil {
			return err
		}
		s.Details = append(s.Details, Detail{Name: name, Config: cfg})
	}

	for _, elem := range root.elements("button") {
		cfg, err := parseStandardConfig(elem, images)
		if err != nil {
			return err
		}
		name, err := readString(elem, "name")
		if err != nil {
			return err
		}
		s.Buttons = append(s.Buttons, Button{Name: name, Config: cfg})
	}

	for _, elem := range root.elements("rangebutton") {
		from, err := readFloat(elem, "from")
		if err != nil {
			return err
		}
		to, err := readFloat(elem, "to")
		if err != nil {
			return err
		}
		if from > to {
			return parseError("Rangebutton 'from' field cannot be greater than 'to' field.")
		}
		cfg, err := parseStandardConfig(elem, images)
		if err != nil {
			return err
		}
		name, err := readString(elem, "name")
		if err != nil {
			return err
		}
		s.RangeButtons = append(s.RangeButtons, RangeButton{Name: name, From: from, To: to, Config: cfg})
	}

	for _, elem := range root.elements("stick") {
		stick, err := parseStick(elem, images)
		if err != nil {
			return err
		}
		s.AnalogSticks = append(s.AnalogSticks, stick)
	}

	for _, elem := range root.elements("touchpad") {
		pad, err := parseTouchPad(elem, images)
		if err != nil {
			return err
		}
		s.TouchPads = append(s.TouchPads, pad)
	}

	for _, elem := range root.elements("analog") {
		trigger, err := parseTrigger(elem, images)
		if err != nil {
			return err
		}
		s.AnalogTriggers = append(s.AnalogTriggers, trigger)
	}

	return nil
}

func parseBackground(elem *xmlNode, images *imageCache) (Background, error) {
	var bg Background

	name, err := readString(elem, "name")
	if err != nil {
		return bg, err
	}
	bg.Name = name

	if imgName, ok := elem.attr("image"); ok && imgName != "" {
		img, err := images.load(imgName)
		if err != nil {
			return bg, err
		}
		bg.Image = &img
		bg.Width, bg.Height = float64(img.Width), float64(img.Height)
	}

	if v, ok, err := readOptionalUint(elem, "width"); err != nil {
		return bg, err
	} else if ok {
		bg.Width = v
	}
	if v, ok, err := readOptionalUint(elem, "height"); err != nil {
		return bg, err
	} else if ok {
		bg.Height = v
	}

	if bg.Image == nil && (bg.Width == 0 || bg.Height == 0) {
		return bg, parseError("Element 'background' should either define 'image' with optionally 'width' and 'height' or both 'width' and 'height'.")
	}

	if v, ok := elem.attr("color"); ok {
		c, err := parseColor(v)
		if err != nil {
			return bg, &ConfigParseError{Msg: "Failed to parse color for property 'color' in element 'background'.", Err: err}
		}
		bg.Color = c
	}

	return bg, nil
}

func parseStick(elem *xmlNode, images *imageCache) (AnalogStick, error) {
	var stick AnalogStick
	var err error

	if stick.Config, err = parseStandardConfig(elem, images); err != nil {
		return stick, err
	}
	if stick.XName, err = readString(elem, "xname"); err != nil {
		return stick, err
	}
	if stick.YName, err = readString(elem, "yname"); err != nil {
		return stick, err
	}
	stick.VisibilityName, _ = elem.attr("visname")

	xrange, err := readUint(elem, "xrange")
	if err != nil {
		return stick, err
	}
	yrange, err := readUint(elem, "yrange")
	if err != nil {
		return stick, err
	}
	stick.XRange = newRange(xrange)
	stick.YRange = newRange(yrange)
	stick.XReverse = readBool(elem, "xreverse", false)
	stick.YReverse = readBool(elem, "yreverse", false)
	return stick, nil
}

func parseTouchPad(elem *xmlNode, images *imageCache) (TouchPad, error) {
	var pad TouchPad
	var err error

	if pad.Config, err = parseStandardConfig(elem, images); err != nil {
		return pad, err
	}
	if pad.XName, err = readString(elem, "xname"); err != nil {
		return pad, err
	}
	if pad.YName, err = readString(elem, "yname"); err != nil {
		return pad, err
	}

	xrange, err := readUint(elem, "xrange")
	if err != nil {
		return pad, err
	}
	yrange, err := readUint(elem, "yrange")
	if err != nil {
		return pad, err
	}
	pad.XRange = newRange(xrange)
	pad.YRange = newRange(yrange)
	return pad, nil
}

func parseTrigger(elem *xmlNode, images *imageCache) (AnalogTrigger, error) {
	var trigger AnalogTrigger

	dirStr, ok := elem.attr("direction")
	if !ok {
		return trigger, parseError("Element 'analog' needs attribute 'direction'.")
	}
	dir, ok := ParseDirection(dirStr)
	if !ok {
		return trigger, parseError("Element 'analog' attribute 'direction' has illegal value. Valid values are 'up', 'down', 'left', 'right', 'fade'.")
	}

	cfg, err := parseStandardConfig(elem, images)
	if err != nil {
		return trigger, err
	}
	name, err := readString(elem, "name")
	if err != nil {
		return trigger, err
	}

	return AnalogTrigger{
		Name:        name,
		Direction:   dir,
		Reversed:    readBool(elem, "reverse", false),
		UseNegative: readBool(elem, "usenegative", false),
		Config:      cfg,
	}, nil
}

func parseStandardConfig(elem *xmlNode, images *imageCache) (ElementConfig, error) {
	var cfg ElementConfig

	imgName, ok := elem.attr("image")
	if !ok {
		return cfg, parseError("Attribute 'image' missing for element '" + elem.name() + "'.")
	}
	img, err := images.load(imgName)
	if err != nil {
		return cfg, err
	}

	width, height := float64(img.Width), float64(img.Height)
	if v, ok, err := readOptionalUint(elem, "width"); err != nil {
		return cfg, err
	} else if ok {
		width = v
	}
	if v, ok, err := readOptionalUint(elem, "height"); err != nil {
		return cfg, err
	} else if ok {
		height = v
	}

	x, err := readUint(elem, "x")
	if err != nil {
		return cfg, err
	}
	y, err := readUint(elem, "y")
	if err != nil {
		return cfg, err
	}

	rect := Rect{X: x, Y: y, Width: width, Height: height}
	return ElementConfig{
		Image:    img,
		Original: rect,
		Current:  rect,
		Target:   readList(elem, "target"),
		Ignore:   readList(elem, "ignore"),
	}, nil
}

func readString(elem *xmlNode, attr string) (string, error) {
	v, ok := elem.attr(attr)
	if !ok {
		return "", parseError("Required attribute '" + attr + "' not found on element '" + elem.name() + "'.")
	}
	return v, nil
}

func readList(elem *xmlNode, attr string) []string {
	v, ok := elem.attr(attr)
	if !ok {
		return nil
	}
	return strings.Split(v, ";")
}

func numberError(elem *xmlNode, attr string, err error) error {
	return &ConfigParseError{
		Msg: "Failed to parse number for property '" + attr + "' in element '" + elem.name() + "'.",
		Err: err,
	}
}

func readUint(elem *xmlNode, attr string) (float64, error) {
	s, err := readString(elem, attr)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, numberError(elem, attr, err)
	}
	return float64(v), nil
}

func readOptionalUint(elem *xmlNode, attr string) (float64, bool, error) {
	if _, ok := elem.attr(attr); !ok {
		return 0, false, nil
	}
	v, err := readUint(elem, attr)
	return v, err == nil, err
}

func readFloat(elem *xmlNode, attr string) (float64, error) {
	s, err := readString(elem, attr)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, numberError(elem, attr, err)
	}
	return v, nil
}

// readBool accepts only the literals "true" and "false"; anything else,
// including a missing attribute, yields def.
func readBool(elem *xmlNode, attr string, def bool) bool {
	switch v, _ := elem.attr(attr); v {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}
