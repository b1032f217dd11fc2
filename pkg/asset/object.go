package asset

import (
	"fmt"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// Event types, numbered as in the runner.
const (
	EventCreate     = 0
	EventDestroy    = 1
	EventAlarm      = 2
	EventStep       = 3
	EventCollision  = 4
	EventKeyboard   = 5
	EventMouse      = 6
	EventOther      = 7
	EventDraw       = 8
	EventKeyPress   = 9
	EventKeyRelease = 10
	EventTrigger    = 11
)

// Step event sub-numbers.
const (
	StepNormal = 0
	StepBegin  = 1
	StepEnd    = 2
)

// Other event sub-numbers.
const (
	OtherOutsideRoom       = 0
	OtherIntersectBoundary = 1
	OtherGameStart         = 2
	OtherGameEnd           = 3
	OtherRoomStart         = 4
	OtherRoomEnd           = 5
	OtherNoMoreLives       = 6
	OtherAnimationEnd      = 7
	OtherEndOfPath         = 8
	OtherNoMoreHealth      = 9
	OtherUser0             = 10
)

// EventKey identifies one event handler slot of an object.
type EventKey struct {
	Type   int
	Number int
}

func (k EventKey) String() string {
	return fmt.Sprintf("event(%d,%d)", k.Type, k.Number)
}

// Object is an object definition. Instances are created from it.
type Object struct {
	Name        string
	SpriteIndex int32
	MaskIndex   int32
	ParentIndex int32
	Depth       int32
	Solid       bool
	Visible     bool
	Persistent  bool
	Events      map[EventKey][]gml.Instruction

	// Children is the set of object ids that identify as this object: the
	// object itself plus every descendant. Filled by LinkObjects.
	Children map[int32]struct{}
}

// NewObject creates an object with no sprite, no mask and no parent.
func NewObject(name string) *Object {
	return &Object{
		Name:        name,
		SpriteIndex: -1,
		MaskIndex:   -1,
		ParentIndex: -1,
		Visible:     true,
		Events:      make(map[EventKey][]gml.Instruction),
		Children:    make(map[int32]struct{}),
	}
}

// IsA reports whether objectIndex identifies as o.
func (o *Object) IsA(objectIndex int32) bool {
	_, ok := o.Children[objectIndex]
	return ok
}

// Linked reports whether LinkObjects has filled every object's Children.
func Linked(objects *Table[Object]) bool {
	linked := true
	objects.Each(func(id int32, obj *Object) {
		if !obj.IsA(id) {
			linked = false
		}
	})
	return linked
}

// LinkObjects fills every object's Children set from the parent links and
// rejects parent cycles.
func LinkObjects(objects *Table[Object]) error {
	var err error
	objects.Each(func(id int32, obj *Object) {
		obj.Children = map[int32]struct{}{id: {}}
	})
	objects.Each(func(id int32, obj *Object) {
		if err != nil {
			return
		}
		seen := map[int32]bool{id: true}
		parent := obj.ParentIndex
		for parent >= 0 {
			if seen[parent] {
				err = fmt.Errorf("object %q: parent cycle through object %d", obj.Name, parent)
				return
			}
			seen[parent] = true
			p, ok := objects.Get(parent)
			if !ok {
				err = gml.NewNonexistentAsset(gml.AssetObject, parent)
				return
			}
			p.Children[id] = struct{}{}
			parent = p.ParentIndex
		}
	})
	return err
}

// FindEvent returns the code for an event, walking up the parent chain when
// the object does not define it itself. owner is the object that defines it.
func FindEvent(objects *Table[Object], objectIndex int32, key EventKey) (code []gml.Instruction, owner int32, ok bool) {
	for depth := 0; objectIndex >= 0 && depth <= objects.Len(); depth++ {
		obj, exists := objects.Get(objectIndex)
		if !exists {
			return nil, -1, false
		}
		if code, found := obj.Events[key]; found {
			return code, objectIndex, true
		}
		objectIndex = obj.ParentIndex
	}
	return nil, -1, false
}
