// Package input holds the keyboard and mouse state read by the mouse_* and
// keyboard_* variables. The window loop writes it once per frame; the VM
// reads and, for the writable variables, updates it.
package input

// Mouse buttons as GML numbers them.
const (
	MouseNone   = 0
	MouseLeft   = 1
	MouseRight  = 2
	MouseMiddle = 3
)

// KeyboardStringMax is the number of characters keyboard_string retains.
const KeyboardStringMax = 1024

// State is the input snapshot for the current step.
type State struct {
	MouseX, MouseY  float64
	MouseButton     int32
	MouseLastButton int32

	KeyboardKey      int32
	KeyboardLastKey  int32
	KeyboardLastChar string
	KeyboardString   string

	held map[int32]bool
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{held: make(map[int32]bool)}
}

// KeyDown records a key press. keyboard_key follows the most recent key
// still held.
func (s *State) KeyDown(code int32) {
	s.held[code] = true
	s.KeyboardKey = code
	s.KeyboardLastKey = code
}

// KeyUp records a key release.
func (s *State) KeyUp(code int32) {
	delete(s.held, code)
	if s.KeyboardKey == code {
		s.KeyboardKey = 0
		for k := range s.held {
			s.KeyboardKey = k
			break
		}
	}
}

// IsHeld reports whether a key is currently down.
func (s *State) IsHeld(code int32) bool { return s.held[code] }

// TypeChar appends a typed character to keyboard_string. Backspace (8)
// removes the last character instead.
func (s *State) TypeChar(ch byte) {
	s.KeyboardLastChar = string([]byte{ch})
	if ch == 8 {
		if n := len(s.KeyboardString); n > 0 {
			s.KeyboardString = s.KeyboardString[:n-1]
		}
		return
	}
	s.KeyboardString += string([]byte{ch})
	if n := len(s.KeyboardString); n > KeyboardStringMax {
		s.KeyboardString = s.KeyboardString[n-KeyboardStringMax:]
	}
}

// MouseDown records a button press.
func (s *State) MouseDown(button int32) {
	s.MouseButton = button
	s.MouseLastButton = button
}

// MouseUp records a button release.
func (s *State) MouseUp(button int32) {
	if s.MouseButton == button {
		s.MouseButton = MouseNone
	}
}
