// Package window hosts a running game in an ebiten window. Each ebiten
// tick feeds the frame's input into the VM, advances it by one step and
// presents whatever the draw events queued.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/input"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/logger"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/vm"
)

// Presenter replays a queued frame onto the screen.
type Presenter interface {
	Flush(screen *ebiten.Image)
}

// Virtual key codes for the ebiten keys the runner forwards.
var keyCodes = map[ebiten.Key]int32{
	ebiten.KeyBackspace: 8, ebiten.KeyTab: 9, ebiten.KeyEnter: 13,
	ebiten.KeyShiftLeft: 16, ebiten.KeyShiftRight: 16,
	ebiten.KeyControlLeft: 17, ebiten.KeyControlRight: 17,
	ebiten.KeyAltLeft: 18, ebiten.KeyAltRight: 18,
	ebiten.KeyPause: 19, ebiten.KeyEscape: 27, ebiten.KeySpace: 32,
	ebiten.KeyPageUp: 33, ebiten.KeyPageDown: 34, ebiten.KeyEnd: 35, ebiten.KeyHome: 36,
	ebiten.KeyArrowLeft: 37, ebiten.KeyArrowUp: 38, ebiten.KeyArrowRight: 39, ebiten.KeyArrowDown: 40,
	ebiten.KeyInsert: 45, ebiten.KeyDelete: 46,
	ebiten.KeyDigit0: 48, ebiten.KeyDigit1: 49, ebiten.KeyDigit2: 50, ebiten.KeyDigit3: 51, ebiten.KeyDigit4: 52,
	ebiten.KeyDigit5: 53, ebiten.KeyDigit6: 54, ebiten.KeyDigit7: 55, ebiten.KeyDigit8: 56, ebiten.KeyDigit9: 57,
	ebiten.KeyA: 65, ebiten.KeyB: 66, ebiten.KeyC: 67, ebiten.KeyD: 68, ebiten.KeyE: 69, ebiten.KeyF: 70,
	ebiten.KeyG: 71, ebiten.KeyH: 72, ebiten.KeyI: 73, ebiten.KeyJ: 74, ebiten.KeyK: 75, ebiten.KeyL: 76,
	ebiten.KeyM: 77, ebiten.KeyN: 78, ebiten.KeyO: 79, ebiten.KeyP: 80, ebiten.KeyQ: 81, ebiten.KeyR: 82,
	ebiten.KeyS: 83, ebiten.KeyT: 84, ebiten.KeyU: 85, ebiten.KeyV: 86, ebiten.KeyW: 87, ebiten.KeyX: 88,
	ebiten.KeyY: 89, ebiten.KeyZ: 90,
	ebiten.KeyF1: 112, ebiten.KeyF2: 113, ebiten.KeyF3: 114, ebiten.KeyF4: 115, ebiten.KeyF5: 116, ebiten.KeyF6: 117,
	ebiten.KeyF7: 118, ebiten.KeyF8: 119, ebiten.KeyF9: 120, ebiten.KeyF10: 121, ebiten.KeyF11: 122, ebiten.KeyF12: 123,
}

var mouseButtons = []struct {
	button ebiten.MouseButton
	code   int32
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
}

// Game implements ebiten.Game around a VM.
type Game struct {
	vm        *vm.Game
	presenter Presenter
	timeout   time.Duration
	startTime time.Time

	started bool
	err     error

	keys []ebiten.Key
}

// NewGame wraps a VM. presenter may be nil, in which case only the room
// colour is shown.
func NewGame(game *vm.Game, presenter Presenter, timeout time.Duration) *Game {
	return &Game{
		vm:        game,
		presenter: presenter,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// Err returns the error that ended the game loop, if any.
func (g *Game) Err() error { return g.err }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollInput()
	return g.advance()
}

// advance starts the game on the first tick and steps it on every later
// one. The end of the room order and the timeout end the loop normally;
// any other error is kept for Err.
func (g *Game) advance() error {
	if g.timeout > 0 && time.Since(g.startTime) >= g.timeout {
		logger.GetLogger().Info("timeout reached", "steps", g.vm.Steps())
		return ebiten.Termination
	}

	var err error
	if !g.started {
		g.started = true
		err = g.vm.Start()
	} else {
		err = g.vm.Step()
	}
	if err == nil {
		ebiten.SetTPS(int(max(g.vm.Room.Speed, 1)))
		ebiten.SetWindowTitle(windowTitle(g.vm))
		return nil
	}
	if gml.IsKind(err, gml.ErrEndOfRoomOrder) {
		logger.GetLogger().Info("reached end of room order", "steps", g.vm.Steps())
		return ebiten.Termination
	}
	g.err = err
	return ebiten.Termination
}

func windowTitle(game *vm.Game) string {
	if game.Room.Caption != "" {
		return gml.DecodeANSI(game.Room.Caption)
	}
	return "gm8run"
}

// pollInput copies this tick's keyboard and mouse changes into the VM's
// input state.
func (g *Game) pollInput() {
	st := g.vm.Input

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if code, ok := keyCodes[k]; ok {
			st.KeyDown(code)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if code, ok := keyCodes[k]; ok {
			st.KeyUp(code)
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x100 {
			st.TypeChar(byte(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		st.TypeChar(8)
	}

	x, y := ebiten.CursorPosition()
	st.MouseX, st.MouseY = float64(x), float64(y)
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.button) {
			st.MouseDown(b.code)
		}
		if inpututil.IsMouseButtonJustReleased(b.button) {
			st.MouseUp(b.code)
		}
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.presenter != nil {
		g.presenter.Flush(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is the current room.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := int(g.vm.Room.Width), int(g.vm.Room.Height)
	if w <= 0 || h <= 0 {
		return 640, 480
	}
	return w, h
}

// Run opens a window and runs the game in it until it ends, the window is
// closed, Escape is pressed, or the timeout expires.
func Run(game *vm.Game, presenter Presenter, timeout time.Duration) error {
	g := NewGame(game, presenter, timeout)

	ebiten.SetWindowSize(g.Layout(0, 0))
	ebiten.SetWindowTitle("gm8run")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return g.Err()
}
