// Package ebitenrender draws a game's frames into an ebiten window. It is
// kept apart from package render so that headless builds of the VM do not
// link ebiten.
package ebitenrender

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/render"
)

var defaultFace = text.NewGoXFace(basicfont.Face7x13)

type drawCommand func(screen *ebiten.Image)

var _ render.Renderer = (*Renderer)(nil)

// Renderer queues draw calls made during the draw events of a step and
// replays them onto the window's screen image. Sprite pixel data is not part
// of the game data, so sprites render as tinted quads of the sprite's size.
type Renderer struct {
	sprites *asset.Table[asset.Sprite]
	quads   map[int32]*ebiten.Image
	queue   []drawCommand
	clear   color.RGBA
}

// New creates a renderer that looks sprite geometry up in sprites.
func New(sprites *asset.Table[asset.Sprite]) *Renderer {
	return &Renderer{
		sprites: sprites,
		quads:   make(map[int32]*ebiten.Image),
		clear:   color.RGBA{A: 0xFF},
	}
}

// Clear implements render.Renderer. Queued commands from the previous frame are dropped.
func (r *Renderer) Clear(colour uint32) {
	r.queue = r.queue[:0]
	r.clear = render.RGBA(colour, 1)
}

// DrawSprite implements render.Renderer.
func (r *Renderer) DrawSprite(sprite int32, frame int, x, y, xscale, yscale, angle float64, blend uint32, alpha float64) {
	spr, ok := r.sprites.Get(sprite)
	if !ok || spr.Width <= 0 || spr.Height <= 0 {
		return
	}
	quad, ok := r.quads[sprite]
	if !ok {
		quad = ebiten.NewImage(int(spr.Width), int(spr.Height))
		quad.Fill(color.White)
		r.quads[sprite] = quad
	}
	originX, originY := float64(spr.OriginX), float64(spr.OriginY)
	tint := render.RGBA(blend, alpha)
	r.queue = append(r.queue, func(screen *ebiten.Image) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-originX, -originY)
		op.GeoM.Scale(xscale, yscale)
		op.GeoM.Rotate(-angle * math.Pi / 180)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(tint)
		screen.DrawImage(quad, op)
	})
}

// DrawRectangle implements render.Renderer.
func (r *Renderer) DrawRectangle(x1, y1, x2, y2 float64, colour uint32, alpha float64, outline bool) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	c := render.RGBA(colour, alpha)
	w, h := float32(x2-x1+1), float32(y2-y1+1)
	r.queue = append(r.queue, func(screen *ebiten.Image) {
		if outline {
			vector.StrokeRect(screen, float32(x1), float32(y1), w, h, 1, c, false)
		} else {
			vector.FillRect(screen, float32(x1), float32(y1), w, h, c, false)
		}
	})
}

// DrawText implements render.Renderer.
func (r *Renderer) DrawText(x, y float64, s string, colour uint32, alpha float64) {
	c := render.RGBA(colour, alpha)
	r.queue = append(r.queue, func(screen *ebiten.Image) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(c)
		op.LineSpacing = defaultFace.Metrics().HLineGap + defaultFace.Metrics().HAscent + defaultFace.Metrics().HDescent
		text.Draw(screen, s, defaultFace, op)
	})
}

// Flush replays the queued frame onto screen.
func (r *Renderer) Flush(screen *ebiten.Image) {
	screen.Fill(r.clear)
	for _, cmd := range r.queue {
		cmd(screen)
	}
}
