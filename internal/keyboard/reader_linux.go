package keyboard

import (
	"context"
	"fmt"
	"log"
	"strings"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/soar/skinview/internal/controller"
)

const (
	keyUp     = 0
	keyDown   = 1
	keyRepeat = 2
)

// Reader reads key events from an evdev device node.
type Reader struct {
	*controller.Emitter
	device  string
	tracker *Tracker
}

// NewReader opens device lazily in Run. An empty device picks the first
// input device whose name mentions a keyboard.
func NewReader(device string) (controller.Reader, error) {
	return &Reader{
		Emitter: controller.NewEmitter(64),
		device:  device,
		tracker: NewTracker(keyNames()),
	}, nil
}

func findKeyboard() (string, error) {
	devices, err := evdev.ListInputDevices()
	if err != nil {
		return "", fmt.Errorf("keyboard: list input devices: %w", err)
	}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), "keyboard") {
			return d.Fn, nil
		}
	}
	return "", fmt.Errorf("keyboard: no keyboard device found")
}

func (r *Reader) Run(ctx context.Context) error {
	defer r.Close()

	path := r.device
	if path == "" {
		var err error
		if path, err = findKeyboard(); err != nil {
			return err
		}
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("keyboard: open %s: %w", path, err)
	}
	log.Printf("Keyboard opened: %s (%s)", dev.Name, path)

	stop := context.AfterFunc(ctx, func() { dev.File.Close() })
	defer stop()
	defer dev.File.Close()

	r.Emit(r.tracker.State())
	for {
		events, err := dev.Read()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("keyboard: read %s: %w", path, err)
		}

		changed := false
		for _, ev := range events {
			if ev.Type != evdev.EV_KEY {
				continue
			}
			name, ok := ev2key[int(ev.Code)]
			if !ok {
				continue
			}
			switch ev.Value {
			case keyDown, keyRepeat:
				changed = r.tracker.Set(name, true) || changed
			case keyUp:
				changed = r.tracker.Set(name, false) || changed
			}
		}
		if changed {
			r.Emit(r.tracker.State())
		}
	}
}
