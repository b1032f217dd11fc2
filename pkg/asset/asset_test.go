package asset

import (
	"testing"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

func TestTable(t *testing.T) {
	tbl := NewTable[Font]()
	tbl.Set(2, &Font{Name: "f2"})
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
	if _, ok := tbl.Get(0); ok {
		t.Error("hole should read as absent")
	}
	if f, ok := tbl.Get(2); !ok || f.Name != "f2" {
		t.Errorf("Get(2) = %v, %v", f, ok)
	}
	id := tbl.Add(&Font{Name: "f3"})
	if id != 3 {
		t.Errorf("Add returned %d, want 3", id)
	}
	tbl.Delete(2)
	var names []string
	tbl.Each(func(_ int32, f *Font) { names = append(names, f.Name) })
	if len(names) != 1 || names[0] != "f3" {
		t.Errorf("Each visited %v", names)
	}

	var nilTable *Table[Font]
	if _, ok := nilTable.Get(0); ok || nilTable.Len() != 0 {
		t.Error("nil table should be empty")
	}
}

func TestFindEventInheritance(t *testing.T) {
	objects := NewTable[Object]()
	base := NewObject("base")
	base.Events[EventKey{Type: EventCreate}] = []gml.Instruction{&gml.Return{ReturnType: gml.Exit}}
	mid := NewObject("mid")
	mid.ParentIndex = 0
	leaf := NewObject("leaf")
	leaf.ParentIndex = 1
	leaf.Events[EventKey{Type: EventStep, Number: StepEnd}] = []gml.Instruction{}
	objects.Add(base)
	objects.Add(mid)
	objects.Add(leaf)

	if Linked(objects) {
		t.Error("new objects report as linked")
	}
	if err := LinkObjects(objects); err != nil {
		t.Fatalf("LinkObjects failed: %v", err)
	}
	if !Linked(objects) {
		t.Error("objects not linked after LinkObjects")
	}
	if !base.IsA(2) || !mid.IsA(2) || leaf.IsA(0) {
		t.Error("identity sets are wrong")
	}

	code, owner, ok := FindEvent(objects, 2, EventKey{Type: EventCreate})
	if !ok || owner != 0 || len(code) != 1 {
		t.Errorf("inherited create = %v owner %d ok %v", code, owner, ok)
	}
	if _, owner, ok := FindEvent(objects, 2, EventKey{Type: EventStep, Number: StepEnd}); !ok || owner != 2 {
		t.Errorf("own end step owner %d ok %v", owner, ok)
	}
	if _, _, ok := FindEvent(objects, 2, EventKey{Type: EventDraw}); ok {
		t.Error("found an event nobody defines")
	}
}

func TestLinkObjectsErrors(t *testing.T) {
	objects := NewTable[Object]()
	orphan := NewObject("orphan")
	orphan.ParentIndex = 7
	objects.Add(orphan)
	if err := LinkObjects(objects); !gml.IsKind(err, gml.ErrNonexistentAsset) {
		t.Errorf("missing parent: got %v", err)
	}
}

func TestPathLength(t *testing.T) {
	p := Path{Points: []PathPoint{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 0}}}
	if got := p.Length(); got != 9 {
		t.Errorf("open length = %v, want 9", got)
	}
	p.Closed = true
	if got := p.Length(); got != 12 {
		t.Errorf("closed length = %v, want 12", got)
	}
}
