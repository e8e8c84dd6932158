// Package joystick reads game controllers through the SDL3 joystick API.
package joystick

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/gamepad"
)

const pollDelayNS = 16_000_000 // ~60Hz

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Reader follows the first connected joystick and emits its state. When
// the active joystick goes away the next one is promoted; with none left
// an empty state is emitted and the reader waits for a new device.
type Reader struct {
	*controller.Emitter
	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID
	hasActive bool
	debug     bool
	afterInit func()
}

// NewReader creates a reader. afterInit, if not nil, is called on the
// reader's thread right after SDL is initialized; SDL replaces the console
// control handler there on Windows.
func NewReader(debug bool, afterInit func()) *Reader {
	return &Reader{
		Emitter:   controller.NewEmitter(64),
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		debug:     debug,
		afterInit: afterInit,
	}
}

// Run initializes SDL and runs the event+polling loop on a locked OS
// thread until ctx is cancelled.
func (r *Reader) Run(ctx context.Context) error {
	defer r.Close()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("joystick: SDL init: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")
	if r.afterInit != nil {
		r.afterInit()
	}

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.pollState()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown:
			if r.debug {
				be := event.JButton()
				log.Printf("[DEBUG] Button DOWN: index=%d joystick=%d", be.Button, be.Which)
			}

		case sdl.EventJoystickHatMotion:
			if r.debug {
				he := event.JHat()
				log.Printf("[DEBUG] Hat: index=%d value=0x%02X joystick=%d", he.Hat, he.Value, he.Which)
			}
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	info := &joystickInfo{
		joystick: js,
		mapping:  gamepad.GetMapping(vendorID, productID),
		name:     sdl.GetJoystickName(js),
		id:       jsID,
	}
	r.joysticks[jsID] = info

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) mapping=%s axes=%d buttons=%d hats=%d",
		info.name, vendorID, productID, info.mapping.Name,
		sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickButtons(js), sdl.GetNumJoystickHats(js))

	if !r.hasActive {
		r.activate(info)
	}
}

func (r *Reader) activate(info *joystickInfo) {
	r.activeID = info.id
	r.hasActive = true
	log.Printf("Active joystick set: %s (ID=%d)", info.name, info.id)
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Joystick disconnected: %s", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return
	}
	r.hasActive = false
	for _, js := range r.joysticks {
		if sdl.JoystickConnected(js.joystick) {
			r.activate(js)
			return
		}
	}
	r.Emit(controller.State{})
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
}

// sample reads every axis, button and the first hat of js.
func sample(js *sdl.Joystick) gamepad.Sample {
	var s gamepad.Sample

	s.Axes = make([]int16, sdl.GetNumJoystickAxes(js))
	for i := range s.Axes {
		s.Axes[i] = sdl.GetJoystickAxis(js, int32(i))
	}
	s.Buttons = make([]bool, sdl.GetNumJoystickButtons(js))
	for i := range s.Buttons {
		s.Buttons[i] = sdl.GetJoystickButton(js, int32(i))
	}
	if sdl.GetNumJoystickHats(js) > 0 {
		s.Hat = sdl.GetJoystickHat(js, 0)
		s.HasHat = true
	}
	return s
}

func (r *Reader) pollState() {
	if !r.hasActive {
		return
	}

	info, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}

	r.Emit(info.mapping.State(sample(info.joystick)))
}
