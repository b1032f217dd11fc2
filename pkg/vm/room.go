package vm

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
)

const noRoomChange int32 = -1

// RoomSlots is the number of background layers and views a room has.
const RoomSlots = 8

// BackgroundLayer is one of the room's background slots at runtime.
type BackgroundLayer struct {
	Visible    bool
	Foreground bool
	Index      int32
	X, Y       gml.Real
	HTiled     bool
	VTiled     bool
	XScale     gml.Real
	YScale     gml.Real
	HSpeed     gml.Real
	VSpeed     gml.Real
	Blend      int32
	Alpha      gml.Real
}

// View is one of the room's views at runtime.
type View struct {
	Visible        bool
	XView, YView   gml.Real
	WView, HView   int32
	XPort, YPort   int32
	WPort, HPort   int32
	Angle          gml.Real
	HBorder        int32
	VBorder        int32
	HSpeed, VSpeed int32
	Object         int32
}

// RoomState is the room-level state of the current room.
type RoomState struct {
	ID               int32
	Width, Height    int32
	Speed            int32
	Caption          string
	Persistent       bool
	BackgroundColour uint32
	ShowColour       bool
	Backgrounds      [RoomSlots]BackgroundLayer
	ViewsEnabled     bool
	ViewCurrent      int32
	Views            [RoomSlots]View
}

func newRoomState() RoomState {
	rs := RoomState{ID: -1, Width: 640, Height: 480, Speed: 30, ShowColour: true, BackgroundColour: 0xC0C0C0}
	for i := range rs.Backgrounds {
		rs.Backgrounds[i] = BackgroundLayer{Index: -1, XScale: 1, YScale: 1, Blend: 0xFFFFFF, Alpha: 1}
	}
	for i := range rs.Views {
		rs.Views[i] = View{WView: 640, HView: 480, WPort: 640, HPort: 480, HBorder: 32, VBorder: 32, HSpeed: -1, VSpeed: -1, Object: -1}
	}
	return rs
}

func (rs *RoomState) load(id int32, room *asset.Room) {
	*rs = newRoomState()
	rs.ID = id
	rs.Width, rs.Height = room.Width, room.Height
	rs.Speed = room.Speed
	if rs.Speed <= 0 {
		rs.Speed = 30
	}
	rs.Caption = room.Caption
	rs.Persistent = room.Persistent
	rs.BackgroundColour = room.BackgroundColour
	rs.ShowColour = room.ShowColour
	for i, bg := range room.Backgrounds {
		if i >= RoomSlots {
			break
		}
		layer := &rs.Backgrounds[i]
		layer.Visible = bg.Visible
		layer.Foreground = bg.Foreground
		layer.Index = bg.Source
		layer.X, layer.Y = gml.Real(bg.X), gml.Real(bg.Y)
		layer.HTiled, layer.VTiled = bg.TileHorz, bg.TileVert
		layer.HSpeed, layer.VSpeed = gml.Real(bg.HSpeed), gml.Real(bg.VSpeed)
	}
	rs.ViewsEnabled = room.ViewsEnabled
	for i, v := range room.Views {
		if i >= RoomSlots {
			break
		}
		view := &rs.Views[i]
		view.Visible = v.Visible
		view.XView, view.YView = gml.Real(v.SourceX), gml.Real(v.SourceY)
		view.WView, view.HView = v.SourceW, v.SourceH
		view.XPort, view.YPort = v.PortX, v.PortY
		view.WPort, view.HPort = v.PortW, v.PortH
		view.HBorder, view.VBorder = v.HBorder, v.VBorder
		view.HSpeed, view.VSpeed = v.HSpeed, v.VSpeed
		view.Object = v.Follow
	}
}

// slot maps a pseudo-array index to a background or view slot. Indices past
// the last slot read and write slot 0.
func slot(index uint32) int {
	if index >= RoomSlots {
		return 0
	}
	return int(index)
}

// RequestRoomChange schedules a room transition for the end of the current
// step.
func (g *Game) RequestRoomChange(room int32) error {
	if _, ok := g.Rooms.Get(room); !ok {
		return gml.NewNonexistentAsset(gml.AssetRoom, room)
	}
	g.pendingRoom = room
	return nil
}

// PendingRoom returns the scheduled room, or -1 when none is scheduled.
func (g *Game) PendingRoom() int32 { return g.pendingRoom }

// roomOrderIndex returns the position of the current room in the room order.
func (g *Game) roomOrderIndex() int {
	for i, id := range g.RoomOrder {
		if id == g.Room.ID {
			return i
		}
	}
	return -1
}

// RoomNext returns the room after the current one, or EndOfRoomOrder.
func (g *Game) RoomNext() (int32, error) {
	i := g.roomOrderIndex()
	if i < 0 || i+1 >= len(g.RoomOrder) {
		return -1, gml.NewEndOfRoomOrder()
	}
	return g.RoomOrder[i+1], nil
}

// RoomPrevious returns the room before the current one, or EndOfRoomOrder.
func (g *Game) RoomPrevious() (int32, error) {
	i := g.roomOrderIndex()
	if i <= 0 {
		return -1, gml.NewEndOfRoomOrder()
	}
	return g.RoomOrder[i-1], nil
}

// LoadRoom leaves the current room and enters room id: the room end event
// runs, non-persistent instances are removed without their destroy event,
// the room's instances are created, then the creation code and room start
// event run.
func (g *Game) LoadRoom(id int32) error {
	room, ok := g.Rooms.Get(id)
	if !ok {
		return gml.NewNonexistentAsset(gml.AssetRoom, id)
	}
	g.pendingRoom = noRoomChange

	if g.Room.ID >= 0 {
		if err := g.RunOtherEvent(asset.OtherRoomEnd); err != nil {
			return err
		}
	}
	it := g.Instances.IterByInsertion()
	for h, ok := it.Next(g.Instances); ok; h, ok = it.Next(g.Instances) {
		if inst := g.Instances.Get(h); !inst.Persistent {
			g.Instances.MarkDeleted(h)
		}
	}
	g.Instances.Compact()

	g.log.Debug("loading room", "room", room.Name, "id", id, "instances", len(room.Instances))
	g.Room.load(id, room)

	for _, ri := range room.Instances {
		if _, exists := g.Instances.GetByInstID(ri.ID); exists {
			continue
		}
		h, err := g.createInstance(ri.ID, gml.Real(ri.X), gml.Real(ri.Y), ri.Object)
		if err != nil {
			return err
		}
		if err := g.RunObjectEvent(asset.EventCreate, 0, h, h); err != nil {
			return err
		}
		if len(ri.CreationCode) > 0 && g.Instances.IsAlive(h) {
			if _, err := g.Execute(ri.CreationCode, NewContext(h, h)); err != nil {
				return err
			}
		}
	}
	if len(room.CreationCode) > 0 {
		if _, err := g.Execute(room.CreationCode, NewContext(instance.NoHandle, instance.NoHandle)); err != nil {
			return err
		}
	}
	return g.RunOtherEvent(asset.OtherRoomStart)
}
