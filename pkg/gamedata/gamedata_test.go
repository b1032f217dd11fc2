package gamedata

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

type funcTable map[string]int

func (f funcTable) Lookup(name string) (int, bool) {
	id, ok := f[name]
	return id, ok
}

var testFuncs = funcTable{"instance_destroy": 0, "show_debug_message": 1, "string": 2}

const sampleGame = `
game_id: 42
constants:
  c_max: 10
  greeting: "hello"
sprites:
  - name: spr_player
    frames: 4
    width: 32
    height: 16
    origin: [16, 8]
scripts:
  - name: scr_add
    code:
      - return: {binary: [argument0, "+", argument1]}
objects:
  - name: obj_base
    depth: 5
  - name: obj_player
    parent: obj_base
    sprite: spr_player
    events:
      - type: create
        code:
          - set: [hp, c_max]
          - set: [score, "+=", 1]
          - local: [i]
          - set: [i, 0]
      - type: step
        number: end
        code:
          - if:
              cond: {binary: [hp, "<=", 0]}
              then:
                - eval: {call: [instance_destroy]}
      - type: other
        number: user3
        code:
          - exit
rooms:
  - name: rm_start
    caption: Start
    instances:
      - object: obj_player
        x: 10
        y: 20
    code:
      - globalvar: [level]
      - set: [global.level, {call: [scr_add, 1, 2]}]
`

func TestLoad(t *testing.T) {
	b, err := Load(strings.NewReader(sampleGame), testFuncs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	t.Run("assets", func(t *testing.T) {
		if b.GameID != 42 {
			t.Errorf("GameID = %d, want 42", b.GameID)
		}
		spr, ok := b.Sprites.Get(0)
		if !ok || spr.Frames != 4 || spr.OriginX != 16 || spr.OriginY != 8 {
			t.Errorf("unexpected sprite %+v", spr)
		}
		if spr.BBox.Right != 31 || spr.BBox.Bottom != 15 {
			t.Errorf("default bbox = %+v, want full sprite", spr.BBox)
		}
		if len(b.RoomOrder) != 1 || b.RoomOrder[0] != 0 {
			t.Errorf("RoomOrder = %v, want [0]", b.RoomOrder)
		}
	})

	t.Run("constants", func(t *testing.T) {
		id, ok := b.ConstantNames["c_max"]
		if !ok || b.Constants[id].Real() != 10 {
			t.Errorf("c_max not loaded")
		}
		id, ok = b.ConstantNames["greeting"]
		if !ok || b.Constants[id].Str() != "hello" {
			t.Errorf("greeting not loaded")
		}
	})

	t.Run("object hierarchy", func(t *testing.T) {
		player, _ := b.Objects.Get(1)
		if player.ParentIndex != 0 || player.SpriteIndex != 0 {
			t.Errorf("player links = parent %d sprite %d", player.ParentIndex, player.SpriteIndex)
		}
		base, _ := b.Objects.Get(0)
		if !base.IsA(1) {
			t.Errorf("obj_player should identify as obj_base")
		}
	})

	t.Run("create event", func(t *testing.T) {
		player, _ := b.Objects.Get(1)
		code := player.Events[asset.EventKey{Type: asset.EventCreate}]
		if len(code) != 3 {
			t.Fatalf("create event has %d instructions, want 3", len(code))
		}
		set, ok := code[0].(*gml.SetField)
		if !ok {
			t.Fatalf("first instruction is %T, want *gml.SetField", code[0])
		}
		if _, ok := set.Value.(*gml.Constant); !ok {
			t.Errorf("c_max compiled to %T, want *gml.Constant", set.Value)
		}
		sv, ok := code[1].(*gml.SetVariable)
		if !ok || sv.Accessor.Var != gml.VarScore || sv.AssignmentType != gml.AssignAdd {
			t.Errorf("score += 1 compiled to %#v", code[1])
		}
		local, ok := code[2].(*gml.SetField)
		if !ok || local.Accessor.Owner.Kind != gml.IdentLocal {
			t.Errorf("declared local compiled to %#v", code[2])
		}
	})

	t.Run("named event numbers", func(t *testing.T) {
		player, _ := b.Objects.Get(1)
		if _, ok := player.Events[asset.EventKey{Type: asset.EventStep, Number: asset.StepEnd}]; !ok {
			t.Errorf("end step event missing")
		}
		if _, ok := player.Events[asset.EventKey{Type: asset.EventOther, Number: asset.OtherUser0 + 3}]; !ok {
			t.Errorf("user event 3 missing")
		}
	})

	t.Run("room", func(t *testing.T) {
		room, _ := b.Rooms.Get(0)
		if room.Width != 640 || room.Height != 480 || room.Speed != 30 {
			t.Errorf("room defaults = %dx%d@%d", room.Width, room.Height, room.Speed)
		}
		if len(room.Instances) != 1 || room.Instances[0].Object != 1 || room.Instances[0].X != 10 {
			t.Errorf("room instances = %+v", room.Instances)
		}
		if len(room.CreationCode) != 2 {
			t.Fatalf("creation code has %d instructions, want 2", len(room.CreationCode))
		}
		set := room.CreationCode[1].(*gml.SetField)
		if set.Accessor.Owner.Kind != gml.IdentGlobal {
			t.Errorf("global.level owner = %v", set.Accessor.Owner.Kind)
		}
		if _, ok := set.Value.(*gml.Script); !ok {
			t.Errorf("scr_add call compiled to %T, want *gml.Script", set.Value)
		}
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind gml.ErrorKind
	}{
		{
			name: "unknown function",
			doc: `
scripts:
  - name: s
    code:
      - eval: {call: [no_such_function]}
`,
			kind: gml.ErrUnknownFunction,
		},
		{
			name: "three array dimensions",
			doc: `
scripts:
  - name: s
    code:
      - set: [{field: {name: a, index: [0, 1, 2]}}, 1]
`,
			kind: gml.ErrTooManyArrayDimensions,
		},
		{
			name: "too many arguments",
			doc: `
scripts:
  - name: s
    code:
      - eval: {call: [string, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17]}
`,
			kind: gml.ErrWrongArgumentCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), testFuncs)
			if err == nil {
				t.Fatal("expected an error")
			}
			var gerr *gml.Error
			if !errors.As(err, &gerr) || gerr.Kind != tt.kind {
				t.Errorf("got %v, want kind %v", err, tt.kind)
			}
		})
	}

	t.Run("duplicate names", func(t *testing.T) {
		doc := "sprites:\n  - name: a\nobjects:\n  - name: a\n"
		if _, err := Load(strings.NewReader(doc), testFuncs); err == nil {
			t.Error("expected duplicate name error")
		}
	})

	t.Run("parent cycle", func(t *testing.T) {
		doc := "objects:\n  - name: a\n    parent: b\n  - name: b\n    parent: a\n"
		if _, err := Load(strings.NewReader(doc), testFuncs); err == nil {
			t.Error("expected parent cycle error")
		}
	})
}

func TestSwitchFlattening(t *testing.T) {
	doc := `
scripts:
  - name: s
    code:
      - switch:
          value: argument0
          cases:
            - case: 1
              do: [{set: [a, 1]}, break]
            - default: true
              do: [{set: [a, 2]}]
            - case: 3
              do: [{set: [a, 3]}]
`
	b, err := Load(strings.NewReader(doc), testFuncs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s, _ := b.Scripts.Get(0)
	sw, ok := s.Body[0].(*gml.Switch)
	if !ok {
		t.Fatalf("got %T, want *gml.Switch", s.Body[0])
	}
	if len(sw.Body) != 4 {
		t.Errorf("flattened body has %d instructions, want 4", len(sw.Body))
	}
	if sw.Default != 2 {
		t.Errorf("Default = %d, want 2", sw.Default)
	}
	if len(sw.Cases) != 2 || sw.Cases[0].Offset != 0 || sw.Cases[1].Offset != 3 {
		t.Errorf("case offsets = %+v", sw.Cases)
	}
}

func TestForLoopInit(t *testing.T) {
	doc := `
scripts:
  - name: s
    code:
      - for:
          init: {set: [i, 0]}
          cond: {binary: [i, "<", 3]}
          step: {set: [i, "+=", 1]}
          do: []
`
	b, err := Load(strings.NewReader(doc), testFuncs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s, _ := b.Scripts.Get(0)
	if len(s.Body) != 2 {
		t.Fatalf("for compiled to %d instructions, want 2", len(s.Body))
	}
	if _, ok := s.Body[0].(*gml.SetField); !ok {
		t.Errorf("init compiled to %T", s.Body[0])
	}
	loop, ok := s.Body[1].(*gml.LoopFor)
	if !ok || loop.Step == nil {
		t.Errorf("loop compiled to %#v", s.Body[1])
	}
}
