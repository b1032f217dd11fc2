// Package field provides sparse storage for user-defined variables. A Bag maps
// a field id to a Field; a Field maps a flattened array index to a Value.
// Instances, the global scope and script locals all use the same shape.
package field

import "github.com/OpenGMK/OpenGMK-sub000/pkg/gml"

// ArrayDim is the extent of each array dimension. A 2D index (i, j) is stored
// at i*ArrayDim + j.
const ArrayDim = 32000

// Flatten encodes a 2D index. Both parts must already be in [0, ArrayDim).
func Flatten(index1, index2 uint32) uint32 {
	return index1*ArrayDim + index2
}

// Split decodes a flattened index into its two dimensions.
func Split(index uint32) (index1, index2 uint32) {
	return index / ArrayDim, index % ArrayDim
}

// CheckIndex validates one rounded array dimension. dim is 1 or 2 and only
// labels the error.
func CheckIndex(index int32, dim int) (uint32, error) {
	if index < 0 || index >= ArrayDim {
		return 0, gml.NewInvalidArrayIndex(index, dim)
	}
	return uint32(index), nil
}

// Field is the array-indexed value bag of one variable.
type Field struct {
	values map[uint32]gml.Value
}

// New creates a Field holding v at index.
func New(index uint32, v gml.Value) *Field {
	return &Field{values: map[uint32]gml.Value{index: v}}
}

// Get returns the value at index.
func (f *Field) Get(index uint32) (gml.Value, bool) {
	v, ok := f.values[index]
	return v, ok
}

// Set stores v at index.
func (f *Field) Set(index uint32, v gml.Value) {
	f.values[index] = v
}

// Len returns the number of populated indices.
func (f *Field) Len() int { return len(f.values) }

// Indices calls fn for every populated index in unspecified order.
func (f *Field) Indices(fn func(index uint32, v gml.Value)) {
	for i, v := range f.values {
		fn(i, v)
	}
}

// Bag maps field ids to fields.
type Bag struct {
	fields map[int]*Field
}

// NewBag creates an empty Bag.
func NewBag() *Bag {
	return &Bag{fields: make(map[int]*Field)}
}

// Get returns the value of field id at index.
func (b *Bag) Get(id int, index uint32) (gml.Value, bool) {
	if f, ok := b.fields[id]; ok {
		return f.Get(index)
	}
	return gml.Value{}, false
}

// Set upserts the value of field id at index.
func (b *Bag) Set(id int, index uint32, v gml.Value) {
	if f, ok := b.fields[id]; ok {
		f.Set(index, v)
		return
	}
	b.fields[id] = New(index, v)
}

// Has reports whether field id has any populated index.
func (b *Bag) Has(id int) bool {
	_, ok := b.fields[id]
	return ok
}

// Field returns the Field for id, or nil.
func (b *Bag) Field(id int) *Field { return b.fields[id] }

// Delete removes field id entirely.
func (b *Bag) Delete(id int) { delete(b.fields, id) }

// Len returns the number of fields in the bag.
func (b *Bag) Len() int { return len(b.fields) }

// Clear removes every field.
func (b *Bag) Clear() { b.fields = make(map[int]*Field) }

// IDs returns the field ids present in the bag, in unspecified order.
func (b *Bag) IDs() []int {
	ids := make([]int, 0, len(b.fields))
	for id := range b.fields {
		ids = append(ids, id)
	}
	return ids
}
