// Package builtin registers the input sources shipped with skinview.
package builtin

import (
	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/joystick"
	"github.com/soar/skinview/internal/keyboard"
	"github.com/soar/skinview/internal/serialspy"
	"github.com/soar/skinview/internal/source"
)

var (
	Gamepad = &source.Source{
		Tag:  "gamepad",
		Name: "Gamepad (SDL)",
		Open: func(opts source.Options) (controller.Reader, error) {
			return joystick.NewReader(opts.Debug, opts.AfterInit), nil
		},
	}

	Classic = &source.Source{
		Tag:  "classic",
		Name: "Classic pad (serial)",
		Open: func(opts source.Options) (controller.Reader, error) {
			return serialspy.NewReader(opts.SerialPort, opts.SerialBaud, serialspy.DecodeClassic), nil
		},
	}

	Keyboard = &source.Source{
		Tag:  "keyboard",
		Name: "PC keyboard",
		Open: func(opts source.Options) (controller.Reader, error) {
			return keyboard.NewReader(opts.KeyboardDevice)
		},
	}
)

// Registry returns a registry holding every built-in source.
func Registry() *source.Registry {
	return source.NewRegistry(Gamepad, Classic, Keyboard)
}
