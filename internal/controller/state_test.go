package controller

import (
	"testing"
)

func TestBuilderDoesNotAlias(t *testing.T) {
	b := NewBuilder().SetButton("a", true).SetAnalog("x", 0.5)
	s := b.Build()
	b.SetButton("a", false).SetAnalog("x", -1)

	if pressed, ok := s.Button("a"); !ok || !pressed {
		t.Errorf("Expected built state to keep a=true, got %v (present %v)", pressed, ok)
	}
	if v, _ := s.Analog("x"); v != 0.5 {
		t.Errorf("Expected built state to keep x=0.5, got %f", v)
	}
}

func TestAbsentSignals(t *testing.T) {
	s := NewBuilder().Build()
	if _, ok := s.Button("up"); ok {
		t.Error("Expected absent button to report ok=false")
	}
	if _, ok := s.Analog("lx"); ok {
		t.Error("Expected absent analog to report ok=false")
	}
	if !s.IsEmpty() {
		t.Error("Expected empty state")
	}
}

func TestPressedSorted(t *testing.T) {
	s := NewBuilder().
		SetButton("start", true).
		SetButton("a", true).
		SetButton("b", false).
		Build()
	got := s.Pressed()
	if len(got) != 2 || got[0] != "a" || got[1] != "start" {
		t.Errorf("Expected [a start], got %v", got)
	}
}

func TestChanged(t *testing.T) {
	base := NewBuilder().SetButton("a", false).SetAnalog("x", 0.5).Build()

	tests := []struct {
		name string
		next State
		want bool
	}{
		{"identical", NewBuilder().SetButton("a", false).SetAnalog("x", 0.5).Build(), false},
		{"analog jitter", NewBuilder().SetButton("a", false).SetAnalog("x", 0.505).Build(), false},
		{"analog move", NewBuilder().SetButton("a", false).SetAnalog("x", 0.6).Build(), true},
		{"button flip", NewBuilder().SetButton("a", true).SetAnalog("x", 0.5).Build(), true},
		{"new signal", NewBuilder().SetButton("a", false).SetButton("b", false).SetAnalog("x", 0.5).Build(), true},
		{"renamed signal", NewBuilder().SetButton("c", false).SetAnalog("x", 0.5).Build(), true},
	}

	for _, tt := range tests {
		if got := Changed(base, tt.next); got != tt.want {
			t.Errorf("%s: expected Changed=%v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestEmitterSuppressesAndDrops(t *testing.T) {
	e := NewEmitter(1)
	s := NewBuilder().SetButton("a", true).Build()

	if !e.Emit(s) {
		t.Fatal("Expected first emit to be queued")
	}
	if e.Emit(NewBuilder().SetButton("a", true).Build()) {
		t.Error("Expected unchanged state to be suppressed")
	}
	if e.Emit(NewBuilder().SetButton("a", false).Build()) {
		t.Error("Expected emit into a full channel to be dropped")
	}

	got := <-e.Changes()
	if pressed, _ := got.Button("a"); !pressed {
		t.Error("Expected queued state to carry a=true")
	}

	e.Close()
	e.Close()
	if _, ok := <-e.Changes(); ok {
		t.Error("Expected closed channel after Close")
	}
}
