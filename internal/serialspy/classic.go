// Package serialspy decodes controller states sent by a spy adapter over a
// serial line. The adapter writes one packet per poll, terminated by a
// newline byte.
package serialspy

import (
	"math"

	"github.com/soar/skinview/internal/controller"
)

// Decoder turns one packet into a state. ok is false for packets that must
// be ignored, e.g. truncated ones.
type Decoder func(packet []byte) (st controller.State, ok bool)

const classicPacketSize = 7

// classicButtons are the signals of a classic digital pad, one byte each.
var classicButtons = [classicPacketSize]string{
	"up", "down", "left", "right", "1", "2", "3",
}

// DecodeClassic decodes a classic pad packet. Besides the buttons it
// reports the dpad as analogs "x" and "y", projected onto the unit circle
// on diagonals.
func DecodeClassic(packet []byte) (controller.State, bool) {
	if len(packet) < classicPacketSize {
		return controller.State{}, false
	}

	b := controller.NewBuilder()
	for i, name := range classicButtons {
		b.SetButton(name, packet[i] != 0)
	}

	var x, y float64
	if packet[3] != 0 {
		x = 1
	} else if packet[2] != 0 {
		x = -1
	}
	if packet[0] != 0 {
		y = 1
	} else if packet[1] != 0 {
		y = -1
	}
	if x != 0 && y != 0 {
		a := math.Atan2(y, x)
		x, y = math.Cos(a), math.Sin(a)
	}

	return b.SetAnalog("x", x).SetAnalog("y", y).Build(), true
}
