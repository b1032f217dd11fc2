// Package asset holds the read-mostly resource tables of a game: sprites,
// backgrounds, paths, scripts, fonts, timelines, objects and rooms. Ids are
// dense indices with possible holes; a deleted or never-defined asset reads
// as absent.
package asset

// Table is an id-indexed asset table.
type Table[T any] struct {
	items []*T
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Get returns the asset with the given id.
func (t *Table[T]) Get(id int32) (*T, bool) {
	if t == nil || id < 0 || int(id) >= len(t.items) {
		return nil, false
	}
	item := t.items[id]
	return item, item != nil
}

// Set places an asset at id, growing the table with holes as needed.
func (t *Table[T]) Set(id int32, item *T) {
	if id < 0 {
		return
	}
	for int(id) >= len(t.items) {
		t.items = append(t.items, nil)
	}
	t.items[id] = item
}

// Add appends an asset and returns its id.
func (t *Table[T]) Add(item *T) int32 {
	t.items = append(t.items, item)
	return int32(len(t.items) - 1)
}

// Delete leaves a hole at id.
func (t *Table[T]) Delete(id int32) {
	if id >= 0 && int(id) < len(t.items) {
		t.items[id] = nil
	}
}

// Len returns one past the highest id ever set.
func (t *Table[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Each calls fn for every present asset in id order.
func (t *Table[T]) Each(fn func(id int32, item *T)) {
	if t == nil {
		return
	}
	for i, item := range t.items {
		if item != nil {
			fn(int32(i), item)
		}
	}
}
