package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

// RunObjectEvent runs one event of this's object, inherited from a parent
// if the object does not define it. It is a no-op when neither does.
func (g *Game) RunObjectEvent(eventType, number int, this, other instance.Handle) error {
	inst := g.Instances.Get(this)
	if inst == nil {
		return nil
	}
	code, owner, ok := asset.FindEvent(g.Objects, inst.ObjectIndex, asset.EventKey{Type: eventType, Number: number})
	if !ok {
		return nil
	}
	ctx := NewContext(this, other)
	ctx.EventType = eventType
	ctx.EventNumber = number
	ctx.EventObject = owner
	_, err := g.Execute(code, ctx)
	if err != nil {
		g.log.Debug("event failed", "object", inst.ObjectIndex, "id", inst.ID, "type", eventType, "number", number, "error", err)
	}
	return err
}

// RunOtherEvent runs an "other" event on every instance that has it.
func (g *Game) RunOtherEvent(number int) error {
	return g.runEventForAll(asset.EventOther, number)
}

// runEventForAll runs an event on every live instance in creation order.
func (g *Game) runEventForAll(eventType, number int) error {
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		if err := g.RunObjectEvent(eventType, number, h, h); err != nil {
			return err
		}
	}
	return nil
}

// createInstance inserts a new instance of object without running its
// create event. id below the instance id base means "allocate one".
func (g *Game) createInstance(id int32, x, y gml.Real, object int32) (instance.Handle, error) {
	obj, ok := g.Objects.Get(object)
	if !ok {
		return instance.NoHandle, gml.NewNonexistentAsset(gml.AssetObject, object)
	}
	if id < gml.InstanceIDBase {
		g.lastInstanceID++
		id = g.lastInstanceID
	} else if id > g.lastInstanceID {
		g.lastInstanceID = id
	}
	h := g.Instances.Insert(instance.New(id, object, x, y, obj))
	g.log.Debug("instance created", "object", obj.Name, "id", id)
	return h, nil
}

// CreateInstance creates an instance of object at (x, y) and runs its
// create event with the new instance as both self and other.
func (g *Game) CreateInstance(x, y gml.Real, object int32) (instance.Handle, error) {
	h, err := g.createInstance(0, x, y, object)
	if err != nil {
		return instance.NoHandle, err
	}
	return h, g.RunObjectEvent(asset.EventCreate, 0, h, h)
}

// DestroyInstance runs the destroy event and marks the instance deleted. Its
// storage is reclaimed at the end of the step.
func (g *Game) DestroyInstance(h instance.Handle) error {
	if !g.Instances.IsAlive(h) {
		return nil
	}
	if err := g.RunObjectEvent(asset.EventDestroy, 0, h, h); err != nil {
		return err
	}
	g.Instances.MarkDeleted(h)
	return nil
}

// ChangeInstance turns an instance into another object, optionally running
// the destroy event of the old and the create event of the new object.
func (g *Game) ChangeInstance(h instance.Handle, object int32, perform bool) error {
	inst := g.Instances.Get(h)
	if inst == nil {
		return nil
	}
	obj, ok := g.Objects.Get(object)
	if !ok {
		return gml.NewNonexistentAsset(gml.AssetObject, object)
	}
	if perform {
		if err := g.RunObjectEvent(asset.EventDestroy, 0, h, h); err != nil {
			return err
		}
	}
	inst.ObjectIndex = object
	inst.Solid = obj.Solid
	inst.Visible = obj.Visible
	inst.Persistent = obj.Persistent
	inst.Depth = gml.Real(obj.Depth)
	spr, _ := g.Sprites.Get(obj.SpriteIndex)
	inst.SetSpriteIndex(obj.SpriteIndex, spr)
	inst.SetMaskIndex(obj.MaskIndex)
	if perform {
		return g.RunObjectEvent(asset.EventCreate, 0, h, h)
	}
	return nil
}
