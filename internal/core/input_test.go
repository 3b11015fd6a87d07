package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(CommandFire)
	f.Set(CommandMoveLeft)

	if !f.Has(CommandFire) || !f.Has(CommandMoveLeft) {
		t.Errorf("frame %b should have Fire and MoveLeft", f)
	}
	if f.Has(CommandPause) {
		t.Error("frame should not have Pause")
	}
	if f.Has(CommandNone) {
		t.Error("CommandNone is never set")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputFrameList(t *testing.T) {
	f := NewInputFrame(CommandRestart, CommandMoveRight, CommandFire)
	got := f.List()
	expected := []Command{CommandMoveRight, CommandFire, CommandRestart}

	if len(got) != len(expected) {
		t.Fatalf("List() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("List()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		c        Command
		expected string
	}{
		{CommandMoveLeft, "MoveLeft"},
		{CommandUnpause, "Unpause"},
		{Command(99), "Unknown"},
	}

	for _, tc := range tests {
		if tc.c.String() != tc.expected {
			t.Errorf("String() = %q, expected %q", tc.c.String(), tc.expected)
		}
	}
}
