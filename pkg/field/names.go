package field

import "fmt"

// Names interns field names to the dense ids stored in instructions. The
// loader owns one table per game; the VM uses it only to name fields in
// error messages and the variable_*_exists functions.
type Names struct {
	ids   map[string]int
	names []string
}

// NewNames creates an empty table.
func NewNames() *Names {
	return &Names{ids: make(map[string]int)}
}

// Intern returns the id for name, allocating one on first use. Names are
// case-sensitive, as in GML.
func (n *Names) Intern(name string) int {
	if id, ok := n.ids[name]; ok {
		return id
	}
	id := len(n.names)
	n.ids[name] = id
	n.names = append(n.names, name)
	return id
}

// Lookup returns the id for name without allocating.
func (n *Names) Lookup(name string) (int, bool) {
	id, ok := n.ids[name]
	return id, ok
}

// Name returns the name for id, or a placeholder if id was never interned.
func (n *Names) Name(id int) string {
	if n != nil && id >= 0 && id < len(n.names) {
		return n.names[id]
	}
	return fmt.Sprintf("<field %d>", id)
}

// Len returns the number of interned names.
func (n *Names) Len() int { return len(n.names) }
