package window

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/vm"
)

func newTestGame(rooms int) *vm.Game {
	b := asset.NewBundle()
	for i := 0; i < rooms; i++ {
		id := b.Rooms.Add(&asset.Room{Name: "room", Width: 320, Height: 240, Speed: 60})
		b.RoomOrder = append(b.RoomOrder, id)
	}
	return vm.New(b, vm.WithSpoofedTime(time.Unix(0, 0)))
}

func TestLayout(t *testing.T) {
	t.Run("before the first room", func(t *testing.T) {
		g := NewGame(newTestGame(0), nil, 0)
		w, h := g.Layout(1024, 768)
		if w != 640 || h != 480 {
			t.Errorf("Layout = %dx%d, want 640x480", w, h)
		}
	})

	t.Run("follows the room", func(t *testing.T) {
		game := newTestGame(1)
		if err := game.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		w, h := NewGame(game, nil, 0).Layout(1024, 768)
		if w != 320 || h != 240 {
			t.Errorf("Layout = %dx%d, want 320x240", w, h)
		}
	})
}

func TestAdvance_EndOfRoomOrderTerminates(t *testing.T) {
	g := NewGame(newTestGame(0), nil, 0)
	if err := g.advance(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("advance() = %v, want ebiten.Termination", err)
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v, want nil for a normal end", g.Err())
	}
}

func TestAdvance_TimeoutTerminates(t *testing.T) {
	g := NewGame(newTestGame(1), nil, time.Nanosecond)
	g.startTime = time.Now().Add(-time.Second)
	if err := g.advance(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("advance() = %v, want ebiten.Termination", err)
	}
	if g.vm.Steps() != 0 {
		t.Errorf("game stepped after the timeout")
	}
}

func TestKeyCodes(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		code int32
	}{
		{ebiten.KeyA, 65},
		{ebiten.KeyZ, 90},
		{ebiten.KeyDigit0, 48},
		{ebiten.KeyArrowLeft, 37},
		{ebiten.KeySpace, 32},
		{ebiten.KeyEnter, 13},
		{ebiten.KeyF12, 123},
	}
	for _, tt := range tests {
		if got := keyCodes[tt.key]; got != tt.code {
			t.Errorf("keyCodes[%v] = %d, want %d", tt.key, got, tt.code)
		}
	}
}

func TestWindowTitle(t *testing.T) {
	game := newTestGame(0)
	if got := windowTitle(game); got != "gm8run" {
		t.Errorf("windowTitle = %q, want gm8run", got)
	}
	game.Room.Caption = gml.EncodeANSI("Level 1")
	if got := windowTitle(game); got != "Level 1" {
		t.Errorf("windowTitle = %q, want Level 1", got)
	}
}
