package asset

import "github.com/OpenGMK/OpenGMK-sub000/pkg/gml"

// Room is a room definition. The VM copies these settings into its live room
// state when the room is entered.
type Room struct {
	Name             string
	Caption          string
	Width            int32
	Height           int32
	Speed            int32
	Persistent       bool
	BackgroundColour uint32
	ShowColour       bool
	Backgrounds      []RoomBackground
	ViewsEnabled     bool
	Views            []RoomView
	Instances        []RoomInstance
	CreationCode     []gml.Instruction
}

// RoomBackground is a background layer setting.
type RoomBackground struct {
	Visible    bool
	Foreground bool
	Source     int32
	X, Y       int32
	TileHorz   bool
	TileVert   bool
	HSpeed     int32
	VSpeed     int32
	Stretch    bool
}

// RoomView is a view setting.
type RoomView struct {
	Visible bool
	SourceX int32
	SourceY int32
	SourceW int32
	SourceH int32
	PortX   int32
	PortY   int32
	PortW   int32
	PortH   int32
	HBorder int32
	VBorder int32
	HSpeed  int32
	VSpeed  int32
	Follow  int32
}

// RoomInstance is an instance placed in the room editor.
type RoomInstance struct {
	X, Y         float64
	Object       int32
	ID           int32
	CreationCode []gml.Instruction
}
