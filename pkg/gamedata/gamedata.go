// Package gamedata loads a game from a YAML document: asset definitions plus
// the instruction trees of every event, script and creation code block.
//
// The document plays the part of the compiled game file. Field names,
// constant names and function names are resolved to ids here, once, so the
// VM only ever sees ids.
package gamedata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// FunctionResolver maps built-in function names to the ids the VM
// dispatches on.
type FunctionResolver interface {
	Lookup(name string) (int, bool)
}

type document struct {
	GameID      int32           `yaml:"game_id"`
	Constants   yaml.Node       `yaml:"constants"`
	Sprites     []spriteDoc     `yaml:"sprites"`
	Backgrounds []backgroundDoc `yaml:"backgrounds"`
	Paths       []pathDoc       `yaml:"paths"`
	Fonts       []fontDoc       `yaml:"fonts"`
	Scripts     []scriptDoc     `yaml:"scripts"`
	Timelines   []timelineDoc   `yaml:"timelines"`
	Objects     []objectDoc     `yaml:"objects"`
	Rooms       []roomDoc       `yaml:"rooms"`
	RoomOrder   []string        `yaml:"room_order"`
}

type spriteDoc struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	Width  int32   `yaml:"width"`
	Height int32   `yaml:"height"`
	Origin []int32 `yaml:"origin"`
	BBox   []int32 `yaml:"bbox"`
}

type backgroundDoc struct {
	Name   string `yaml:"name"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
}

type pathDoc struct {
	Name   string      `yaml:"name"`
	Closed bool        `yaml:"closed"`
	Points [][]float64 `yaml:"points"`
}

type fontDoc struct {
	Name string `yaml:"name"`
	Size int32  `yaml:"size"`
	Bold bool   `yaml:"bold"`
}

type scriptDoc struct {
	Name string    `yaml:"name"`
	Code yaml.Node `yaml:"code"`
}

type timelineDoc struct {
	Name    string      `yaml:"name"`
	Moments []momentDoc `yaml:"moments"`
}

type momentDoc struct {
	Step int32     `yaml:"step"`
	Code yaml.Node `yaml:"code"`
}

type objectDoc struct {
	Name       string     `yaml:"name"`
	Sprite     string     `yaml:"sprite"`
	Mask       string     `yaml:"mask"`
	Parent     string     `yaml:"parent"`
	Depth      int32      `yaml:"depth"`
	Solid      bool       `yaml:"solid"`
	Visible    *bool      `yaml:"visible"`
	Persistent bool       `yaml:"persistent"`
	Events     []eventDoc `yaml:"events"`
}

type eventDoc struct {
	Type   string    `yaml:"type"`
	Number yaml.Node `yaml:"number"`
	Code   yaml.Node `yaml:"code"`
}

type roomDoc struct {
	Name         string              `yaml:"name"`
	Caption      string              `yaml:"caption"`
	Width        int32               `yaml:"width"`
	Height       int32               `yaml:"height"`
	Speed        int32               `yaml:"speed"`
	Persistent   bool                `yaml:"persistent"`
	Colour       *uint32             `yaml:"colour"`
	ShowColour   *bool               `yaml:"show_colour"`
	Backgrounds  []roomBackgroundDoc `yaml:"backgrounds"`
	ViewsEnabled bool                `yaml:"views_enabled"`
	Views        []roomViewDoc       `yaml:"views"`
	Instances    []roomInstanceDoc   `yaml:"instances"`
	Code         yaml.Node           `yaml:"code"`
}

type roomBackgroundDoc struct {
	Visible    bool   `yaml:"visible"`
	Foreground bool   `yaml:"foreground"`
	Background string `yaml:"background"`
	X          int32  `yaml:"x"`
	Y          int32  `yaml:"y"`
	TileH      bool   `yaml:"tile_h"`
	TileV      bool   `yaml:"tile_v"`
	HSpeed     int32  `yaml:"hspeed"`
	VSpeed     int32  `yaml:"vspeed"`
	Stretch    bool   `yaml:"stretch"`
}

type roomViewDoc struct {
	Visible bool    `yaml:"visible"`
	View    []int32 `yaml:"view"`
	Port    []int32 `yaml:"port"`
	Border  []int32 `yaml:"border"`
	Speed   []int32 `yaml:"speed"`
	Follow  string  `yaml:"follow"`
}

type roomInstanceDoc struct {
	Object string    `yaml:"object"`
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
	ID     int32     `yaml:"id"`
	Code   yaml.Node `yaml:"code"`
}

// LoadFile reads a game from a YAML file.
func LoadFile(path string, funcs FunctionResolver) (*asset.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open game data: %w", err)
	}
	defer f.Close()
	return Load(f, funcs)
}

// Load reads a game from a YAML document.
func Load(r io.Reader, funcs FunctionResolver) (*asset.Bundle, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse game data: %w", err)
	}

	c := newCompiler(funcs)
	c.bundle.GameID = doc.GameID
	if err := c.declare(&doc); err != nil {
		return nil, err
	}
	if err := c.constants(&doc.Constants); err != nil {
		return nil, err
	}
	if err := c.define(&doc); err != nil {
		return nil, err
	}
	if err := asset.LinkObjects(c.bundle.Objects); err != nil {
		return nil, fmt.Errorf("failed to link objects: %w", err)
	}
	return c.bundle, nil
}

// declare assigns ids to every named asset so code can refer to assets
// declared after it.
func (c *compiler) declare(doc *document) error {
	kinds := []struct {
		kind  gml.AssetType
		names func(func(string))
		ids   map[string]int32
	}{
		{gml.AssetSprite, func(f func(string)) { eachName(doc.Sprites, func(s spriteDoc) string { return s.Name }, f) }, c.sprites},
		{gml.AssetBackground, func(f func(string)) { eachName(doc.Backgrounds, func(s backgroundDoc) string { return s.Name }, f) }, c.backgrounds},
		{gml.AssetPath, func(f func(string)) { eachName(doc.Paths, func(s pathDoc) string { return s.Name }, f) }, c.paths},
		{gml.AssetFont, func(f func(string)) { eachName(doc.Fonts, func(s fontDoc) string { return s.Name }, f) }, c.fonts},
		{gml.AssetScript, func(f func(string)) { eachName(doc.Scripts, func(s scriptDoc) string { return s.Name }, f) }, c.scripts},
		{gml.AssetTimeline, func(f func(string)) { eachName(doc.Timelines, func(s timelineDoc) string { return s.Name }, f) }, c.timelines},
		{gml.AssetObject, func(f func(string)) { eachName(doc.Objects, func(s objectDoc) string { return s.Name }, f) }, c.objects},
		{gml.AssetRoom, func(f func(string)) { eachName(doc.Rooms, func(s roomDoc) string { return s.Name }, f) }, c.rooms},
	}
	for _, k := range kinds {
		var err error
		next := int32(0)
		k.names(func(name string) {
			if err != nil {
				return
			}
			if name == "" {
				err = fmt.Errorf("%s %d has no name", k.kind, next)
				return
			}
			if _, dup := c.assets[name]; dup {
				err = fmt.Errorf("duplicate asset name %q", name)
				return
			}
			k.ids[name] = next
			c.assets[name] = next
			next++
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func eachName[T any](items []T, name func(T) string, f func(string)) {
	for _, item := range items {
		f(name(item))
	}
}

// constants compiles the constants mapping in document order.
func (c *compiler) constants(n *yaml.Node) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return errorAt(n, "constants must be a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		expr, err := c.expr(n.Content[i+1])
		if err != nil {
			return fmt.Errorf("constant %q: %w", name, err)
		}
		lit, ok := expr.(*gml.Literal)
		if !ok {
			return errorAt(n.Content[i+1], "constant %q must be a literal", name)
		}
		c.bundle.ConstantNames[name] = len(c.bundle.Constants)
		c.bundle.Constants = append(c.bundle.Constants, lit.Value)
	}
	return nil
}

// define builds every asset record and compiles its code.
func (c *compiler) define(doc *document) error {
	b := c.bundle
	for _, s := range doc.Sprites {
		spr := &asset.Sprite{Name: s.Name, Frames: s.Frames, Width: s.Width, Height: s.Height}
		if spr.Frames <= 0 {
			spr.Frames = 1
		}
		if len(s.Origin) == 2 {
			spr.OriginX, spr.OriginY = s.Origin[0], s.Origin[1]
		}
		spr.BBox = asset.BoundingBox{Right: s.Width - 1, Bottom: s.Height - 1}
		if len(s.BBox) == 4 {
			spr.BBox = asset.BoundingBox{Left: s.BBox[0], Top: s.BBox[1], Right: s.BBox[2], Bottom: s.BBox[3]}
		}
		b.Sprites.Add(spr)
	}
	for _, bg := range doc.Backgrounds {
		b.Backgrounds.Add(&asset.Background{Name: bg.Name, Width: bg.Width, Height: bg.Height})
	}
	for _, p := range doc.Paths {
		path := &asset.Path{Name: p.Name, Closed: p.Closed}
		for _, pt := range p.Points {
			point := asset.PathPoint{Speed: 100}
			if len(pt) < 2 {
				return fmt.Errorf("path %q: point needs x and y", p.Name)
			}
			point.X, point.Y = pt[0], pt[1]
			if len(pt) > 2 {
				point.Speed = pt[2]
			}
			path.Points = append(path.Points, point)
		}
		b.Paths.Add(path)
	}
	for _, f := range doc.Fonts {
		b.Fonts.Add(&asset.Font{Name: f.Name, Size: f.Size, Bold: f.Bold})
	}
	for _, s := range doc.Scripts {
		body, err := c.code(&s.Code)
		if err != nil {
			return fmt.Errorf("script %q: %w", s.Name, err)
		}
		b.Scripts.Add(&asset.Script{Name: s.Name, Body: body})
	}
	for _, t := range doc.Timelines {
		tl := &asset.Timeline{Name: t.Name, Moments: make(map[int32][]gml.Instruction)}
		for _, m := range t.Moments {
			body, err := c.code(&m.Code)
			if err != nil {
				return fmt.Errorf("timeline %q moment %d: %w", t.Name, m.Step, err)
			}
			tl.Moments[m.Step] = body
		}
		b.Timelines.Add(tl)
	}
	for _, o := range doc.Objects {
		obj, err := c.object(&o)
		if err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
		b.Objects.Add(obj)
	}
	for _, r := range doc.Rooms {
		room, err := c.room(&r)
		if err != nil {
			return fmt.Errorf("room %q: %w", r.Name, err)
		}
		b.Rooms.Add(room)
	}

	if len(doc.RoomOrder) == 0 {
		for i := range doc.Rooms {
			b.RoomOrder = append(b.RoomOrder, int32(i))
		}
		return nil
	}
	for _, name := range doc.RoomOrder {
		id, ok := c.rooms[name]
		if !ok {
			return fmt.Errorf("room order: unknown room %q", name)
		}
		b.RoomOrder = append(b.RoomOrder, id)
	}
	return nil
}

// ref resolves an optional asset reference; empty means -1.
func ref(ids map[string]int32, kind gml.AssetType, name string) (int32, error) {
	if name == "" {
		return -1, nil
	}
	id, ok := ids[name]
	if !ok {
		return -1, fmt.Errorf("unknown %s %q", kind, name)
	}
	return id, nil
}

func (c *compiler) object(o *objectDoc) (*asset.Object, error) {
	obj := asset.NewObject(o.Name)
	var err error
	if obj.SpriteIndex, err = ref(c.sprites, gml.AssetSprite, o.Sprite); err != nil {
		return nil, err
	}
	if obj.MaskIndex, err = ref(c.sprites, gml.AssetSprite, o.Mask); err != nil {
		return nil, err
	}
	if obj.ParentIndex, err = ref(c.objects, gml.AssetObject, o.Parent); err != nil {
		return nil, err
	}
	obj.Depth = o.Depth
	obj.Solid = o.Solid
	obj.Persistent = o.Persistent
	if o.Visible != nil {
		obj.Visible = *o.Visible
	}
	for _, e := range o.Events {
		key, err := eventKey(&e)
		if err != nil {
			return nil, err
		}
		body, err := c.code(&e.Code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		obj.Events[key] = body
	}
	return obj, nil
}

func (c *compiler) room(r *roomDoc) (*asset.Room, error) {
	room := &asset.Room{
		Name:             r.Name,
		Caption:          gml.EncodeANSI(r.Caption),
		Width:            r.Width,
		Height:           r.Height,
		Speed:            r.Speed,
		Persistent:       r.Persistent,
		BackgroundColour: 0xC0C0C0,
		ShowColour:       true,
		ViewsEnabled:     r.ViewsEnabled,
	}
	if room.Width <= 0 {
		room.Width = 640
	}
	if room.Height <= 0 {
		room.Height = 480
	}
	if room.Speed <= 0 {
		room.Speed = 30
	}
	if r.Colour != nil {
		room.BackgroundColour = *r.Colour
	}
	if r.ShowColour != nil {
		room.ShowColour = *r.ShowColour
	}
	for _, bg := range r.Backgrounds {
		src, err := ref(c.backgrounds, gml.AssetBackground, bg.Background)
		if err != nil {
			return nil, err
		}
		room.Backgrounds = append(room.Backgrounds, asset.RoomBackground{
			Visible: bg.Visible, Foreground: bg.Foreground, Source: src,
			X: bg.X, Y: bg.Y, TileHorz: bg.TileH, TileVert: bg.TileV,
			HSpeed: bg.HSpeed, VSpeed: bg.VSpeed, Stretch: bg.Stretch,
		})
	}
	for _, v := range r.Views {
		follow, err := ref(c.objects, gml.AssetObject, v.Follow)
		if err != nil {
			return nil, err
		}
		view := asset.RoomView{Visible: v.Visible, SourceW: room.Width, SourceH: room.Height,
			PortW: room.Width, PortH: room.Height, HBorder: 32, VBorder: 32, HSpeed: -1, VSpeed: -1, Follow: follow}
		if len(v.View) == 4 {
			view.SourceX, view.SourceY, view.SourceW, view.SourceH = v.View[0], v.View[1], v.View[2], v.View[3]
		}
		if len(v.Port) == 4 {
			view.PortX, view.PortY, view.PortW, view.PortH = v.Port[0], v.Port[1], v.Port[2], v.Port[3]
		}
		if len(v.Border) == 2 {
			view.HBorder, view.VBorder = v.Border[0], v.Border[1]
		}
		if len(v.Speed) == 2 {
			view.HSpeed, view.VSpeed = v.Speed[0], v.Speed[1]
		}
		room.Views = append(room.Views, view)
	}
	for _, ri := range r.Instances {
		obj, ok := c.objects[ri.Object]
		if !ok {
			return nil, fmt.Errorf("unknown object %q", ri.Object)
		}
		code, err := c.code(&ri.Code)
		if err != nil {
			return nil, fmt.Errorf("instance of %q: %w", ri.Object, err)
		}
		room.Instances = append(room.Instances, asset.RoomInstance{X: ri.X, Y: ri.Y, Object: obj, ID: ri.ID, CreationCode: code})
	}
	code, err := c.code(&r.Code)
	if err != nil {
		return nil, fmt.Errorf("creation code: %w", err)
	}
	room.CreationCode = code
	return room, nil
}
