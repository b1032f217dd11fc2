package vm

import (
	"cmp"
	"maps"
	"slices"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// AlarmSlots is the number of alarms that count down each step.
const AlarmSlots = 12

// Step advances the game by one frame: begin step, alarms, timelines, step,
// motion and animation, end step, draw. Deleted instances are reclaimed and
// a pending room change is applied at the end.
func (g *Game) Step() error {
	phases := []func() error{
		func() error { return g.runEventForAll(asset.EventStep, asset.StepBegin) },
		g.runAlarms,
		g.runTimelines,
		func() error { return g.runEventForAll(asset.EventStep, asset.StepNormal) },
		g.runMotion,
		func() error { return g.runEventForAll(asset.EventStep, asset.StepEnd) },
		g.Draw,
	}
	for _, phase := range phases {
		if err := phase(); err != nil {
			return err
		}
	}

	g.Instances.Compact()
	g.clock.advance(g.Room.Speed)
	g.FPS = g.Room.Speed
	g.steps++

	if g.pendingRoom != noRoomChange {
		return g.LoadRoom(g.pendingRoom)
	}
	return nil
}

func (g *Game) runAlarms() error {
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		inst := g.Instances.Get(h)
		for n := uint32(0); n < AlarmSlots && g.Instances.IsAlive(h); n++ {
			t, set := inst.Alarms[n]
			if !set || t <= 0 {
				continue
			}
			inst.Alarms[n] = t - 1
			if t-1 != 0 {
				continue
			}
			if err := g.RunObjectEvent(asset.EventAlarm, int(n), h, h); err != nil {
				return err
			}
			if inst.Alarms[n] == 0 {
				inst.Alarms[n] = -1
			}
		}
	}
	return nil
}

// runTimelines runs the moments each running timeline passes this step.
func (g *Game) runTimelines() error {
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		inst := g.Instances.Get(h)
		if !inst.TimelineRunning {
			continue
		}
		tl, exists := g.Timelines.Get(inst.TimelineIndex)
		if !exists || len(tl.Moments) == 0 {
			continue
		}
		from := inst.TimelinePosition
		to := from + inst.TimelineSpeed
		inst.TimelinePosition = to
		moments := slices.Sorted(maps.Keys(tl.Moments))
		for _, m := range moments {
			if gml.Real(m) < from || gml.Real(m) >= to {
				continue
			}
			ctx := NewContext(h, h)
			ctx.EventType = asset.EventTrigger
			ctx.EventNumber = int(m)
			if _, err := g.Execute(tl.Moments[m], ctx); err != nil {
				return err
			}
			if !g.Instances.IsAlive(h) {
				break
			}
		}
		if inst.TimelineLoop && inst.TimelinePosition > gml.Real(moments[len(moments)-1]) {
			inst.TimelinePosition = 0
		}
	}
	return nil
}

// runMotion applies speed, friction and gravity, then advances animation.
func (g *Game) runMotion() error {
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		inst := g.Instances.Get(h)
		inst.Xprevious, inst.Yprevious = inst.X, inst.Y
		inst.PathPositionprevious = inst.PathPosition
		inst.ApplyMotion()

		inst.ImageIndex += inst.ImageSpeed
		spr, exists := g.Sprites.Get(inst.SpriteIndex)
		if !exists || spr.Frames <= 0 {
			continue
		}
		if frames := gml.Real(spr.Frames); inst.ImageIndex >= frames {
			inst.ImageIndex -= frames
			if err := g.RunObjectEvent(asset.EventOther, asset.OtherAnimationEnd, h, h); err != nil {
				return err
			}
		}
	}
	return nil
}

// Draw runs the draw phase: instances are drawn from the highest depth to
// the lowest. An instance without a draw event draws its own sprite.
func (g *Game) Draw() error {
	if g.Renderer == nil {
		return nil
	}
	if g.Room.ShowColour {
		g.Renderer.Clear(g.Room.BackgroundColour)
	}

	var visible []instance.Handle
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		if g.Instances.Get(h).Visible {
			visible = append(visible, h)
		}
	}
	slices.SortStableFunc(visible, func(a, b instance.Handle) int {
		return cmp.Compare(g.Instances.Get(b).Depth, g.Instances.Get(a).Depth)
	})

	for _, h := range visible {
		inst := g.Instances.Get(h)
		if !inst.Exists {
			continue
		}
		key := asset.EventKey{Type: asset.EventDraw}
		if _, _, ok := asset.FindEvent(g.Objects, inst.ObjectIndex, key); ok {
			if err := g.RunObjectEvent(asset.EventDraw, 0, h, h); err != nil {
				return err
			}
			continue
		}
		g.drawSelf(inst)
	}
	return nil
}

func (g *Game) drawSelf(inst *instance.Instance) {
	if _, ok := g.Sprites.Get(inst.SpriteIndex); !ok {
		return
	}
	g.Renderer.DrawSprite(
		inst.SpriteIndex, int(inst.ImageIndex.Floor()),
		inst.X.Float(), inst.Y.Float(),
		inst.ImageXscale.Float(), inst.ImageYscale.Float(), inst.ImageAngle.Float(),
		uint32(inst.ImageBlend), inst.ImageAlpha.Float(),
	)
}
