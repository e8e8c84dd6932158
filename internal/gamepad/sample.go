package gamepad

import "github.com/soar/skinview/internal/controller"

const (
	Deadzone = 0.05

	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// Sample is one poll of a joystick's raw inputs. Axes and Buttons are
// indexed by the device's own numbering; indices past the end are treated
// as not reported.
type Sample struct {
	Axes    []int16
	Buttons []bool
	Hat     uint8
	HasHat  bool
}

// State converts a raw sample into a controller state. Signals the device
// does not report are left absent so skins can tell them from released.
func (m *DeviceMapping) State(s Sample) controller.State {
	b := controller.NewBuilder()

	for _, am := range m.Axes {
		if int(am.Index) >= len(s.Axes) {
			continue
		}
		raw := s.Axes[am.Index]
		var val float64
		if am.IsTrigger {
			val = NormalizeTrigger(raw, am.RawMin, am.RawMax)
		} else {
			val = NormalizeAxis(raw)
			if am.Invert {
				val = -val
			}
		}
		b.SetAnalog(am.Signal, ApplyDeadzone(val, Deadzone))
	}

	for _, bm := range m.Buttons {
		if int(bm.Index) >= len(s.Buttons) {
			continue
		}
		b.SetButton(bm.Signal, s.Buttons[bm.Index])
	}

	if m.HasHat && s.HasHat {
		b.SetButton(Up, s.Hat&HatUp != 0).
			SetButton(Right, s.Hat&HatRight != 0).
			SetButton(Down, s.Hat&HatDown != 0).
			SetButton(Left, s.Hat&HatLeft != 0)
	}

	return b.Build()
}
