package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// lookupInstances resolves an object index, instance id or the all keyword
// to an iterator, or to a single handle for an instance id.
func (g *Game) lookupInstances(ctx *Context, id int32) (*instance.Iter, instance.Handle) {
	t := g.targetFromID(ctx, id)
	switch t.Kind {
	case TargetObjects, TargetAll:
		return g.iter(t), instance.NoHandle
	case TargetSingle:
		return nil, t.Handle
	default:
		return nil, instance.NoHandle
	}
}

// activateInstances reactivates every deactivated instance match accepts.
func (g *Game) activateInstances(match func(*instance.Instance) bool) {
	it := g.Instances.IterInactive()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		if match(g.Instances.Get(h)) {
			g.Instances.Activate(h)
		}
	}
}

func (k *Kernel) registerInstance() {
	k.registerFixed("instance_create", 3, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		h, err := g.CreateInstance(args[0].Real(), args[1].Real(), args[2].Round())
		if err != nil {
			return gml.Value{}, err
		}
		return gml.FromInt(g.Instances.Get(h).ID), nil
	})

	k.registerFixed("instance_destroy", 0, func(g *Game, ctx *Context, _ []gml.Value) (gml.Value, error) {
		return gml.Value{}, g.DestroyInstance(ctx.This)
	})

	k.registerFixed("instance_exists", 1, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		it, h := g.lookupInstances(ctx, args[0].Round())
		if it != nil {
			_, ok := it.Next(g.Instances)
			return gml.FromBool(ok), nil
		}
		return gml.FromBool(g.Instances.IsAlive(h)), nil
	})

	k.registerFixed("instance_number", 1, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		it, _ := g.lookupInstances(ctx, args[0].Round())
		n := 0
		if it != nil {
			for _, ok := it.Next(g.Instances); ok; _, ok = it.Next(g.Instances) {
				n++
			}
		}
		return gml.FromInt(n), nil
	})

	k.registerFixed("instance_find", 2, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		it, _ := g.lookupInstances(ctx, args[0].Round())
		n := args[1].Round()
		if it == nil || n < 0 {
			return gml.FromInt(gml.NooneID), nil
		}
		for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
			if n == 0 {
				return gml.FromInt(g.Instances.Get(h).ID), nil
			}
			n--
		}
		return gml.FromInt(gml.NooneID), nil
	})

	k.registerFixed("instance_change", 2, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		return gml.Value{}, g.ChangeInstance(ctx.This, args[0].Round(), args[1].Truthy())
	})

	k.registerFixed("instance_deactivate_all", 1, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		notMe := args[0].Truthy()
		it := g.Instances.IterByInsertion()
		for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
			if !notMe || h != ctx.This {
				g.Instances.Deactivate(h)
			}
		}
		return gml.Value{}, nil
	})

	k.registerFixed("instance_deactivate_object", 1, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		it, h := g.lookupInstances(ctx, args[0].Round())
		if it == nil {
			g.Instances.Deactivate(h)
			return gml.Value{}, nil
		}
		for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
			g.Instances.Deactivate(h)
		}
		return gml.Value{}, nil
	})

	k.registerFixed("instance_activate_all", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		g.activateInstances(func(*instance.Instance) bool { return true })
		return gml.Value{}, nil
	})

	k.registerFixed("instance_activate_object", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		id := args[0].Round()
		if id == gml.AllID {
			g.activateInstances(func(*instance.Instance) bool { return true })
			return gml.Value{}, nil
		}
		identities := g.identities(id)
		g.activateInstances(func(inst *instance.Instance) bool {
			_, ok := identities[inst.ObjectIndex]
			return ok || inst.ID == id
		})
		return gml.Value{}, nil
	})

	k.registerFixed("motion_set", 2, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		if inst := g.Instances.Get(ctx.This); inst != nil {
			inst.SetSpeedDirection(args[1].Real(), args[0].Real())
		}
		return gml.Value{}, nil
	})

	k.registerFixed("action_create_object", 3, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		x, y := args[1].Real(), args[2].Real()
		if ctx.Relative {
			if inst := g.Instances.Get(ctx.This); inst != nil {
				x += inst.X
				y += inst.Y
			}
		}
		_, err := g.CreateInstance(x, y, args[0].Round())
		return gml.Value{}, err
	})
}

func (k *Kernel) registerRoom() {
	k.registerFixed("room_goto", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		return gml.Value{}, g.RequestRoomChange(args[0].Round())
	})
	k.registerFixed("room_goto_next", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		next, err := g.RoomNext()
		if err != nil {
			return gml.Value{}, err
		}
		return gml.Value{}, g.RequestRoomChange(next)
	})
	k.registerFixed("room_goto_previous", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		prev, err := g.RoomPrevious()
		if err != nil {
			return gml.Value{}, err
		}
		return gml.Value{}, g.RequestRoomChange(prev)
	})
	k.registerFixed("room_restart", 0, func(g *Game, _ *Context, _ []gml.Value) (gml.Value, error) {
		return gml.Value{}, g.RequestRoomChange(g.Room.ID)
	})
}

func (k *Kernel) registerVariable() {
	k.registerFixed("variable_local_exists", 1, func(g *Game, ctx *Context, args []gml.Value) (gml.Value, error) {
		id, ok := g.FieldNames.Lookup(str(args[0]))
		if !ok {
			return gml.FromBool(false), nil
		}
		inst := g.Instances.Get(ctx.This)
		return gml.FromBool(inst != nil && inst.Fields.Has(id)), nil
	})
	k.registerFixed("variable_global_exists", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		id, ok := g.FieldNames.Lookup(str(args[0]))
		return gml.FromBool(ok && g.Globals.Has(id)), nil
	})
}
