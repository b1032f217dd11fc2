package asset

import (
	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// Bundle is every asset table of one game plus the ids the front end
// assigned while compiling its code.
type Bundle struct {
	GameID      int32
	Sprites     *Table[Sprite]
	Backgrounds *Table[Background]
	Paths       *Table[Path]
	Scripts     *Table[Script]
	Fonts       *Table[Font]
	Timelines   *Table[Timeline]
	Objects     *Table[Object]
	Rooms       *Table[Room]
	RoomOrder   []int32

	Constants     []gml.Value
	ConstantNames map[string]int
	FieldNames    *field.Names
}

// NewBundle creates a bundle with empty tables.
func NewBundle() *Bundle {
	return &Bundle{
		Sprites:       NewTable[Sprite](),
		Backgrounds:   NewTable[Background](),
		Paths:         NewTable[Path](),
		Scripts:       NewTable[Script](),
		Fonts:         NewTable[Font](),
		Timelines:     NewTable[Timeline](),
		Objects:       NewTable[Object](),
		Rooms:         NewTable[Room](),
		ConstantNames: make(map[string]int),
		FieldNames:    field.NewNames(),
	}
}
