// Package instance holds the live object instances of a running game: the
// Instance record with its motion and bounding-box bookkeeping, and the List
// that stores instances behind generation-checked handles.
package instance

import (
	"math"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// NoBBox is the bounding box coordinate of an instance without a mask.
const NoBBox int32 = -100000

// Instance is one live occurrence of an object.
type Instance struct {
	ID          int32
	ObjectIndex int32
	Exists      bool

	Solid      bool
	Visible    bool
	Persistent bool
	Depth      gml.Real

	SpriteIndex int32
	MaskIndex   int32
	ImageIndex  gml.Real
	ImageSpeed  gml.Real
	ImageXscale gml.Real
	ImageYscale gml.Real
	ImageAngle  gml.Real
	ImageAlpha  gml.Real
	ImageBlend  int32

	X, Y                 gml.Real
	Xprevious, Yprevious gml.Real
	Xstart, Ystart       gml.Real

	Direction        gml.Real
	Speed            gml.Real
	Hspeed           gml.Real
	Vspeed           gml.Real
	Friction         gml.Real
	Gravity          gml.Real
	GravityDirection gml.Real

	PathIndex            int32
	PathPosition         gml.Real
	PathPositionprevious gml.Real
	PathSpeed            gml.Real
	PathScale            gml.Real
	PathOrientation      gml.Real
	PathEndaction        int32
	PathXstart           gml.Real
	PathYstart           gml.Real

	TimelineIndex    int32
	TimelineRunning  bool
	TimelineLoop     bool
	TimelineSpeed    gml.Real
	TimelinePosition gml.Real

	BBoxLeft    int32
	BBoxRight   int32
	BBoxTop     int32
	BBoxBottom  int32
	BBoxIsStale bool

	Fields *field.Bag
	Alarms map[uint32]int32
}

// New creates an instance of obj at (x, y) with the object's defaults.
func New(id, objectIndex int32, x, y gml.Real, obj *asset.Object) *Instance {
	inst := &Instance{
		ID:               id,
		ObjectIndex:      objectIndex,
		Exists:           true,
		Visible:          true,
		SpriteIndex:      -1,
		MaskIndex:        -1,
		ImageSpeed:       1,
		ImageXscale:      1,
		ImageYscale:      1,
		ImageAlpha:       1,
		ImageBlend:       0xFFFFFF,
		X:                x,
		Y:                y,
		Xprevious:        x,
		Yprevious:        y,
		Xstart:           x,
		Ystart:           y,
		GravityDirection: 270,
		PathIndex:        -1,
		PathScale:        1,
		TimelineIndex:    -1,
		TimelineSpeed:    1,
		BBoxIsStale:      true,
		Fields:           field.NewBag(),
		Alarms:           make(map[uint32]int32),
	}
	if obj != nil {
		inst.Solid = obj.Solid
		inst.Visible = obj.Visible
		inst.Persistent = obj.Persistent
		inst.Depth = gml.Real(obj.Depth)
		inst.SpriteIndex = obj.SpriteIndex
		inst.MaskIndex = obj.MaskIndex
	}
	return inst
}

// snap removes floating-point noise from trigonometric results, so that
// speed 4 at direction 90 gives exactly hspeed 0 and vspeed -4.
func snap(f float64) gml.Real {
	if r := math.Round(f); math.Abs(f-r) < 1e-10 {
		return gml.Real(r)
	}
	return gml.Real(f)
}

func normaliseDirection(d gml.Real) gml.Real {
	f := math.Mod(float64(d), 360)
	if f < 0 {
		f += 360
	}
	return gml.Real(f)
}

// SetSpeedDirection sets speed and direction together and recomputes the
// component speeds.
func (i *Instance) SetSpeedDirection(speed, direction gml.Real) {
	direction = normaliseDirection(direction)
	i.Speed = speed
	i.Direction = direction
	rad := float64(direction) * math.Pi / 180
	i.Hspeed = snap(math.Cos(rad) * float64(speed))
	i.Vspeed = snap(-math.Sin(rad) * float64(speed))
}

// SetHVSpeed sets the component speeds and recomputes speed and direction.
func (i *Instance) SetHVSpeed(hspeed, vspeed gml.Real) {
	i.Hspeed = hspeed
	i.Vspeed = vspeed
	i.Speed = snap(math.Hypot(float64(hspeed), float64(vspeed)))
	i.Direction = normaliseDirection(snap(math.Atan2(-float64(vspeed), float64(hspeed)) * 180 / math.Pi))
}

// SetX moves the instance horizontally. The bounding box is invalidated only
// when the position actually changes.
func (i *Instance) SetX(x gml.Real) {
	if x != i.X {
		i.X = x
		i.BBoxIsStale = true
	}
}

// SetY moves the instance vertically.
func (i *Instance) SetY(y gml.Real) {
	if y != i.Y {
		i.Y = y
		i.BBoxIsStale = true
	}
}

// SetImageXscale changes the horizontal scale.
func (i *Instance) SetImageXscale(s gml.Real) {
	if s != i.ImageXscale {
		i.ImageXscale = s
		i.BBoxIsStale = true
	}
}

// SetImageYscale changes the vertical scale.
func (i *Instance) SetImageYscale(s gml.Real) {
	if s != i.ImageYscale {
		i.ImageYscale = s
		i.BBoxIsStale = true
	}
}

// SetImageAngle changes the rotation.
func (i *Instance) SetImageAngle(a gml.Real) {
	if a != i.ImageAngle {
		i.ImageAngle = a
		i.BBoxIsStale = true
	}
}

// SetMaskIndex changes the collision mask sprite.
func (i *Instance) SetMaskIndex(m int32) {
	if m != i.MaskIndex {
		i.MaskIndex = m
		i.BBoxIsStale = true
	}
}

// SetSpriteIndex changes the sprite. The frame is reset when the new sprite
// has fewer frames than the current image index. The bounding box is always
// invalidated.
func (i *Instance) SetSpriteIndex(index int32, sprite *asset.Sprite) {
	i.SpriteIndex = index
	if sprite != nil && int(i.ImageIndex.Floor()) >= sprite.Frames {
		i.ImageIndex = 0
	}
	i.BBoxIsStale = true
}

// MaskSprite returns the id of the sprite used for collisions.
func (i *Instance) MaskSprite() int32 {
	if i.MaskIndex >= 0 {
		return i.MaskIndex
	}
	return i.SpriteIndex
}

// UpdateBBox recomputes the bounding box from the mask sprite when it is
// stale. sprite is nil when the instance has no mask.
func (i *Instance) UpdateBBox(sprite *asset.Sprite) {
	if !i.BBoxIsStale {
		return
	}
	i.BBoxIsStale = false
	if sprite == nil {
		i.BBoxLeft, i.BBoxRight, i.BBoxTop, i.BBoxBottom = NoBBox, NoBBox, NoBBox, NoBBox
		return
	}

	xs, ys := float64(i.ImageXscale), float64(i.ImageYscale)
	left := float64(sprite.BBox.Left-sprite.OriginX) * xs
	right := float64(sprite.BBox.Right+1-sprite.OriginX) * xs
	top := float64(sprite.BBox.Top-sprite.OriginY) * ys
	bottom := float64(sprite.BBox.Bottom+1-sprite.OriginY) * ys

	rad := float64(i.ImageAngle) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{left, top}, {right, top}, {left, bottom}, {right, bottom}} {
		x := c[0]*cos + c[1]*sin
		y := -c[0]*sin + c[1]*cos
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	ox, oy := float64(i.X), float64(i.Y)
	i.BBoxLeft = int32(math.Floor(float64(snap(ox + minX))))
	i.BBoxTop = int32(math.Floor(float64(snap(oy + minY))))
	i.BBoxRight = int32(math.Ceil(float64(snap(ox+maxX)))) - 1
	i.BBoxBottom = int32(math.Ceil(float64(snap(oy+maxY)))) - 1
	if i.BBoxRight < i.BBoxLeft {
		i.BBoxRight = i.BBoxLeft
	}
	if i.BBoxBottom < i.BBoxTop {
		i.BBoxBottom = i.BBoxTop
	}
}

// ApplyMotion runs the per-step motion update: friction, gravity, then the
// position change.
func (i *Instance) ApplyMotion() {
	if i.Friction != 0 {
		speed := i.Speed
		switch {
		case speed > 0:
			speed -= i.Friction
			if speed < 0 {
				speed = 0
			}
		case speed < 0:
			speed += i.Friction
			if speed > 0 {
				speed = 0
			}
		}
		i.SetSpeedDirection(speed, i.Direction)
	}
	if i.Gravity != 0 {
		rad := float64(i.GravityDirection) * math.Pi / 180
		i.SetHVSpeed(
			i.Hspeed+snap(math.Cos(rad)*float64(i.Gravity)),
			i.Vspeed-snap(math.Sin(rad)*float64(i.Gravity)),
		)
	}
	if i.Hspeed != 0 || i.Vspeed != 0 {
		i.SetX(i.X + i.Hspeed)
		i.SetY(i.Y + i.Vspeed)
	}
}
