// Package strlist provides the growable path list shared by the matcher and
// the subtree enumerator.
package strlist

// List is an ordered, growable list of path strings.
// The zero value is an empty list ready for use.
type List struct {
	items []string
}

// New creates an empty list with room for capacity entries.
func New(capacity int) *List {
	return &List{items: make([]string, 0, capacity)}
}

// Add appends a single path.
func (l *List) Add(path string) {
	l.items = append(l.items, path)
}

// AddAll appends every entry of other, preserving its order, and then
// releases other. Passing nil or the receiver itself is a no-op.
func (l *List) AddAll(other *List) {
	if other == nil || other == l {
		return
	}
	l.items = append(l.items, other.items...)
	other.Release()
}

// Release drops all entries. The list remains usable afterwards.
func (l *List) Release() {
	if l == nil {
		return
	}
	clear(l.items)
	l.items = nil
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the entry at index i.
func (l *List) At(i int) string {
	return l.items[i]
}

// Strings returns a copy of the entries. An empty list yields an empty,
// non-nil slice.
func (l *List) Strings() []string {
	out := make([]string, l.Len())
	if l != nil {
		copy(out, l.items)
	}
	return out
}
