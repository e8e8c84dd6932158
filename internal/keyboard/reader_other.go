//go:build !linux

package keyboard

import (
	"errors"

	"github.com/soar/skinview/internal/controller"
)

// NewReader is only implemented on Linux, where keys are read from evdev.
func NewReader(device string) (controller.Reader, error) {
	return nil, errors.New("keyboard: reading the keyboard is only supported on Linux")
}
