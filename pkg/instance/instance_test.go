package instance

import (
	"testing"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
)

func newTestInstance(id int32, object int32) *Instance {
	return New(id, object, 0, 0, asset.NewObject("obj"))
}

func TestBBoxStaleness(t *testing.T) {
	inst := New(100001, 0, 100, 50, nil)
	sprite := &asset.Sprite{Frames: 1, Width: 32, Height: 16, OriginX: 16, OriginY: 8,
		BBox: asset.BoundingBox{Left: 0, Top: 0, Right: 31, Bottom: 15}}

	inst.UpdateBBox(sprite)
	if inst.BBoxIsStale {
		t.Fatal("UpdateBBox left the box stale")
	}
	if inst.BBoxLeft != 84 || inst.BBoxTop != 42 || inst.BBoxRight != 115 || inst.BBoxBottom != 57 {
		t.Errorf("bbox = (%d,%d)-(%d,%d), want (84,42)-(115,57)",
			inst.BBoxLeft, inst.BBoxTop, inst.BBoxRight, inst.BBoxBottom)
	}

	t.Run("same value keeps box fresh", func(t *testing.T) {
		inst.SetX(inst.X)
		inst.SetY(inst.Y)
		inst.SetImageAngle(inst.ImageAngle)
		if inst.BBoxIsStale {
			t.Error("writing the current value marked the box stale")
		}
	})

	t.Run("new value marks box stale", func(t *testing.T) {
		inst.SetX(101)
		if !inst.BBoxIsStale {
			t.Error("moving did not mark the box stale")
		}
		inst.UpdateBBox(sprite)
		if inst.BBoxLeft != 85 {
			t.Errorf("BBoxLeft = %d, want 85", inst.BBoxLeft)
		}
	})

	t.Run("sprite change always marks box stale", func(t *testing.T) {
		inst.SetSpriteIndex(inst.SpriteIndex, sprite)
		if !inst.BBoxIsStale {
			t.Error("SetSpriteIndex did not mark the box stale")
		}
	})

	t.Run("no mask", func(t *testing.T) {
		inst.BBoxIsStale = true
		inst.UpdateBBox(nil)
		if inst.BBoxLeft != NoBBox || inst.BBoxBottom != NoBBox {
			t.Errorf("bbox without mask = %d..%d", inst.BBoxLeft, inst.BBoxBottom)
		}
	})
}

func TestMotion(t *testing.T) {
	inst := New(100001, 0, 0, 0, nil)

	inst.SetSpeedDirection(4, 90)
	if inst.Hspeed != 0 || inst.Vspeed != -4 {
		t.Errorf("speed 4 dir 90 = (%v, %v), want (0, -4)", inst.Hspeed, inst.Vspeed)
	}

	inst.SetHVSpeed(-3, 0)
	if inst.Speed != 3 || inst.Direction != 180 {
		t.Errorf("hv (-3, 0) = speed %v dir %v", inst.Speed, inst.Direction)
	}

	inst.SetSpeedDirection(2, -90)
	if inst.Direction != 270 {
		t.Errorf("direction -90 normalised to %v, want 270", inst.Direction)
	}

	t.Run("friction stops at zero", func(t *testing.T) {
		m := New(100002, 0, 0, 0, nil)
		m.SetSpeedDirection(1, 0)
		m.Friction = 3
		m.ApplyMotion()
		if m.Speed != 0 || m.X != 0 {
			t.Errorf("speed %v x %v after friction", m.Speed, m.X)
		}
	})

	t.Run("gravity accelerates", func(t *testing.T) {
		m := New(100003, 0, 0, 0, nil)
		m.Gravity = 1
		m.ApplyMotion()
		m.ApplyMotion()
		if m.Vspeed != 2 || m.Y != 3 {
			t.Errorf("vspeed %v y %v after two steps", m.Vspeed, m.Y)
		}
	})
}

func TestListIteration(t *testing.T) {
	l := NewList()
	h1 := l.Insert(newTestInstance(100001, 0))
	h2 := l.Insert(newTestInstance(100002, 1))
	h3 := l.Insert(newTestInstance(100003, 0))

	t.Run("deletion mid-iteration is skipped", func(t *testing.T) {
		var seen []int32
		it := l.IterByInsertion()
		for h, ok := it.Next(l); ok; h, ok = it.Next(l) {
			seen = append(seen, l.Get(h).ID)
			if h == h1 {
				l.MarkDeleted(h2)
			}
		}
		if len(seen) != 2 || seen[1] != 100003 {
			t.Errorf("visited %v, want [100001 100003]", seen)
		}
		if l.Get(h2) == nil {
			t.Error("deleted instance should stay reachable until Compact")
		}
	})

	t.Run("insertion mid-iteration is visited", func(t *testing.T) {
		n := 0
		it := l.IterByInsertion()
		for _, ok := it.Next(l); ok; _, ok = it.Next(l) {
			if n == 0 {
				l.Insert(newTestInstance(100004, 2))
			}
			n++
		}
		if n != 3 {
			t.Errorf("visited %d instances, want 3", n)
		}
	})

	t.Run("identity filter", func(t *testing.T) {
		if got := l.Count(map[int32]struct{}{0: {}}); got != 2 {
			t.Errorf("Count(object 0) = %d, want 2", got)
		}
	})

	t.Run("compact makes handles stale", func(t *testing.T) {
		l.Compact()
		if l.Get(h2) != nil {
			t.Error("handle to a reclaimed instance still resolves")
		}
		if _, ok := l.GetByInstID(100002); ok {
			t.Error("id lookup found a reclaimed instance")
		}
		h5 := l.Insert(newTestInstance(100005, 0))
		if l.Get(h2) != nil {
			t.Error("stale handle resolved to a reused slot")
		}
		if l.Get(h5).ID != 100005 {
			t.Error("new handle does not resolve")
		}
		if l.Len() != 4 {
			t.Errorf("Len() = %d, want 4", l.Len())
		}
	})

	t.Run("deactivation hides instances", func(t *testing.T) {
		l.Deactivate(h3)
		if l.IsAlive(h3) {
			t.Error("deactivated instance reported alive")
		}
		it := l.IterInactive()
		h, ok := it.Next(l)
		if !ok || h != h3 {
			t.Error("inactive iterator did not find the instance")
		}
		l.Activate(h3)
		if !l.IsAlive(h3) {
			t.Error("reactivated instance not alive")
		}
	})

	t.Run("clear", func(t *testing.T) {
		l.Clear()
		if l.Len() != 0 || l.Get(h1) != nil {
			t.Error("Clear left instances behind")
		}
	})

	if NoHandle.Valid() {
		t.Error("NoHandle must not be valid")
	}
}
