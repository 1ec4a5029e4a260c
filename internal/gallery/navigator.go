// Package gallery holds the navigation state of the sketch viewer.
package gallery

import (
	"errors"
	"slices"
)

// ErrEmpty indicates that blocking left no sketch to show.
var ErrEmpty = errors.New("gallery: no sketch left to show")

// Navigator walks an ordered set of sketch IDs. It starts on the highest
// ID; Next and Prev wrap around.
type Navigator struct {
	ids     []int
	current int
}

// NewNavigator returns a navigator over ids minus blocked.
func NewNavigator(ids, blocked []int) (*Navigator, error) {
	var kept []int
	for _, id := range ids {
		if !slices.Contains(blocked, id) && !slices.Contains(kept, id) {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmpty
	}
	slices.Sort(kept)
	return &Navigator{ids: kept, current: kept[len(kept)-1]}, nil
}

// IDs returns the navigable IDs in ascending order.
func (n *Navigator) IDs() []int {
	return slices.Clone(n.ids)
}

// Current returns the ID on show.
func (n *Navigator) Current() int {
	return n.current
}

// Valid reports whether id can be shown.
func (n *Navigator) Valid(id int) bool {
	return slices.Contains(n.ids, id)
}

// Next moves to the following ID and returns it. From an ID that is not
// navigable it goes to the first one.
func (n *Navigator) Next() int {
	i := slices.Index(n.ids, n.current)
	if i < 0 {
		n.current = n.ids[0]
	} else {
		n.current = n.ids[(i+1)%len(n.ids)]
	}
	return n.current
}

// Prev moves to the preceding ID and returns it. From an ID that is not
// navigable it goes to the last one.
func (n *Navigator) Prev() int {
	i := slices.Index(n.ids, n.current)
	if i < 0 {
		n.current = n.ids[len(n.ids)-1]
	} else {
		n.current = n.ids[(i-1+len(n.ids))%len(n.ids)]
	}
	return n.current
}

// Jump shows id if it is navigable and reports whether it moved.
func (n *Navigator) Jump(id int) bool {
	if !n.Valid(id) {
		return false
	}
	n.current = id
	return true
}
