// Package render defines the draw-call sink the VM renders through, with a
// headless recorder for tests. The window implementation lives in
// package ebitenrender.
package render

import "image/color"

// Renderer receives draw calls. The VM never reads render state back.
type Renderer interface {
	Clear(colour uint32)
	DrawSprite(sprite int32, frame int, x, y, xscale, yscale, angle float64, blend uint32, alpha float64)
	DrawRectangle(x1, y1, x2, y2 float64, colour uint32, alpha float64, outline bool)
	DrawText(x, y float64, text string, colour uint32, alpha float64)
}

// RGBA converts a GML BGR colour and an alpha in [0, 1] to a color.RGBA.
func RGBA(colour uint32, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := uint8(alpha*255 + 0.5)
	scale := func(c uint32) uint8 {
		return uint8((c & 0xFF) * uint32(a) / 255)
	}
	return color.RGBA{
		R: scale(colour),
		G: scale(colour >> 8),
		B: scale(colour >> 16),
		A: a,
	}
}
