package input

import (
	"strings"
	"testing"
)

func TestKeyboard(t *testing.T) {
	s := NewState()
	s.KeyDown(37)
	s.KeyDown(38)
	if s.KeyboardKey != 38 || s.KeyboardLastKey != 38 {
		t.Errorf("keyboard_key = %d, lastkey = %d", s.KeyboardKey, s.KeyboardLastKey)
	}

	s.KeyUp(38)
	if s.KeyboardKey != 37 {
		t.Errorf("keyboard_key = %d after releasing 38, want the held 37", s.KeyboardKey)
	}
	if s.KeyboardLastKey != 38 {
		t.Errorf("keyboard_lastkey = %d, want 38", s.KeyboardLastKey)
	}
	s.KeyUp(37)
	if s.KeyboardKey != 0 || s.IsHeld(37) {
		t.Errorf("keyboard_key = %d with nothing held", s.KeyboardKey)
	}
}

func TestTypeChar(t *testing.T) {
	s := NewState()
	for _, ch := range []byte("abc") {
		s.TypeChar(ch)
	}
	s.TypeChar(8)
	if s.KeyboardString != "ab" || s.KeyboardLastChar != "\b" {
		t.Errorf("keyboard_string = %q, lastchar = %q", s.KeyboardString, s.KeyboardLastChar)
	}

	s.KeyboardString = strings.Repeat("x", KeyboardStringMax)
	s.TypeChar('y')
	if len(s.KeyboardString) != KeyboardStringMax || !strings.HasSuffix(s.KeyboardString, "y") {
		t.Errorf("keyboard_string kept %d characters", len(s.KeyboardString))
	}
}

func TestMouse(t *testing.T) {
	s := NewState()
	s.MouseDown(MouseLeft)
	s.MouseUp(MouseRight)
	if s.MouseButton != MouseLeft {
		t.Errorf("releasing another button cleared mouse_button")
	}
	s.MouseUp(MouseLeft)
	if s.MouseButton != MouseNone || s.MouseLastButton != MouseLeft {
		t.Errorf("mouse_button = %d, lastbutton = %d", s.MouseButton, s.MouseLastButton)
	}
}
