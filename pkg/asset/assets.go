package asset

import (
	"math"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// BoundingBox is an inclusive pixel rectangle in sprite-local coordinates.
type BoundingBox struct {
	Left, Top, Right, Bottom int32
}

// Sprite describes an animated image. Pixel data belongs to the renderer;
// the VM only needs geometry.
type Sprite struct {
	Name    string
	Frames  int
	Width   int32
	Height  int32
	OriginX int32
	OriginY int32
	BBox    BoundingBox
}

// Background describes a background image.
type Background struct {
	Name   string
	Width  int32
	Height int32
}

// Path is a sequence of points followed by path_* variables.
type Path struct {
	Name   string
	Points []PathPoint
	Closed bool
}

// PathPoint is one control point of a path.
type PathPoint struct {
	X, Y, Speed float64
}

// Length returns the polyline length of the path.
func (p *Path) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += distance(p.Points[i-1], p.Points[i])
	}
	if p.Closed && len(p.Points) > 1 {
		total += distance(p.Points[len(p.Points)-1], p.Points[0])
	}
	return total
}

// Script is a named, compiled user script.
type Script struct {
	Name string
	Body []gml.Instruction
}

// Font describes a font resource.
type Font struct {
	Name string
	Size int32
	Bold bool
}

// Timeline maps moments to code.
type Timeline struct {
	Name    string
	Moments map[int32][]gml.Instruction
}

func distance(a, b PathPoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
