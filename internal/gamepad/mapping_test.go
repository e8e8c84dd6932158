package gamepad

import (
	"math"
	"testing"
)

func TestNormalizeTrigger(t *testing.T) {
	tests := []struct {
		raw, min, max int16
		want          float64
	}{
		{-32768, -32768, 32767, 0},
		{32767, -32768, 32767, 1},
		{0, 0, 32767, 0},
		{-100, 0, 32767, 0},
		{5, 5, 5, 0},
	}
	for _, tt := range tests {
		if got := NormalizeTrigger(tt.raw, tt.min, tt.max); got != tt.want {
			t.Errorf("NormalizeTrigger(%d, %d, %d): expected %v, got %v", tt.raw, tt.min, tt.max, tt.want, got)
		}
	}
}

func TestNormalizeAxis(t *testing.T) {
	if got := NormalizeAxis(-32768); got != -1 {
		t.Errorf("Expected -1, got %v", got)
	}
	if got := NormalizeAxis(32767); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
}

func TestStateFromSample(t *testing.T) {
	m := GetMapping(0x045E, 0x028E)
	if m.Name != "xbox" {
		t.Fatalf("Expected xbox mapping, got %s", m.Name)
	}

	buttons := make([]bool, 11)
	buttons[0] = true // a
	s := Sample{
		Axes:    []int16{32767, 32767, 100, 0, -32768, 32767},
		Buttons: buttons,
		Hat:     HatUp | HatRight,
		HasHat:  true,
	}
	st := m.State(s)

	if v, _ := st.Analog(LeftX); v != 1 {
		t.Errorf("Expected lx 1, got %v", v)
	}
	if v, _ := st.Analog(LeftY); v != -1 {
		t.Errorf("Expected inverted ly -1, got %v", v)
	}
	if v, ok := st.Analog(RightX); !ok || v != 0 {
		t.Errorf("Expected rx inside deadzone to read 0, got %v", v)
	}
	if v, _ := st.Analog(LT); v != 0 {
		t.Errorf("Expected released lt, got %v", v)
	}
	if v, _ := st.Analog(RT); math.Abs(v-1) > 1e-9 {
		t.Errorf("Expected full rt, got %v", v)
	}
	if p, _ := st.Button("a"); !p {
		t.Error("Expected a pressed")
	}
	if p, ok := st.Button(Up); !ok || !p {
		t.Error("Expected hat up pressed")
	}
	if p, ok := st.Button(Down); !ok || p {
		t.Error("Expected hat down reported and released")
	}
}

func TestStateLeavesUnreportedSignalsAbsent(t *testing.T) {
	st := genericMapping.State(Sample{Axes: []int16{0, 0}, Buttons: []bool{true}})

	if _, ok := st.Analog(RightX); ok {
		t.Error("Expected rx to be absent")
	}
	if _, ok := st.Button("b"); ok {
		t.Error("Expected b to be absent")
	}
	if _, ok := st.Button(Up); ok {
		t.Error("Expected dpad to be absent without a hat")
	}
}

func TestSignals(t *testing.T) {
	buttons, analogs := switchProMapping.Signals()
	if len(analogs) != 4 {
		t.Errorf("Expected 4 analog signals, got %v", analogs)
	}
	if len(buttons) != 15 {
		t.Errorf("Expected 11 buttons plus 4 hat directions, got %d", len(buttons))
	}
}
