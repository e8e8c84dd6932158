package listing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/soar/skinview/internal/skin"
	"github.com/soar/skinview/internal/source"
)

func TestWrite(t *testing.T) {
	res := skin.Results{
		Skins: []*skin.Skin{{
			Name:        "NES",
			Author:      "someone",
			Dir:         "skins/nes",
			Type:        &source.Source{Tag: "classic"},
			Backgrounds: []skin.Background{{Name: "grey"}, {Name: "black"}},
		}},
		Errors: []skin.LoadError{{Dir: "skins/broken", Err: &skin.ConfigParseError{Msg: "Skin must have at least one background."}}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"Skins (1)", "NES", "[classic]", "by someone", "grey, black", "Errors (1)", "skins/broken :: Skin must have at least one background."} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestWriteWithoutErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, skin.Results{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Errors") {
		t.Error("Expected no error section")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritePropagatesErrors(t *testing.T) {
	if err := Write(failingWriter{}, skin.Results{}); err == nil {
		t.Error("Expected the write error to be returned")
	}
}
