package sketch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Factory returns a fresh sketch. Sketches keep per-run state, so every
// session gets its own instance.
type Factory func() Sketch

// Registry maps sketch IDs and names to factories.
type Registry struct {
	byID   map[int]Factory
	byName map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[int]Factory), byName: make(map[string]int)}
}

// Register adds f under the ID and name its sketches report.
func (r *Registry) Register(f Factory) error {
	info := f().Info()
	name := strings.ToLower(info.Name)
	if _, ok := r.byID[info.ID]; ok {
		return fmt.Errorf("%w: id %d", ErrDuplicateSketch, info.ID)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: name %q", ErrDuplicateSketch, info.Name)
	}
	r.byID[info.ID] = f
	r.byName[name] = info.ID
	return nil
}

// IDs returns the registered IDs in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Infos returns the description of every sketch, ordered by ID.
func (r *Registry) Infos() []Info {
	var out []Info
	for _, id := range r.IDs() {
		out = append(out, r.byID[id]().Info())
	}
	return out
}

// New returns a fresh instance of sketch id.
func (r *Registry) New(id int) (Sketch, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownSketch, id)
	}
	return f(), nil
}

// Lookup resolves key, an ID or a name, to a fresh sketch.
func (r *Registry) Lookup(key string) (Sketch, error) {
	key = strings.TrimSpace(key)
	if id, err := strconv.Atoi(key); err == nil {
		return r.New(id)
	}
	id, ok := r.byName[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSketch, key)
	}
	return r.New(id)
}

// Builtin returns the factories of every sketch in the gallery.
func Builtin() []Factory {
	return []Factory{
		func() Sketch { return diagonalTiling{} },
		func() Sketch { return &bezierReveal{} },
		func() Sketch { return joyDivision{} },
		func() Sketch { return shapeTiling{} },
		func() Sketch { return recursiveSquares{} },
		func() Sketch { return recursiveTriangles{} },
		func() Sketch { return eyeOfSauron{} },
		func() Sketch { return &flowField{} },
		func() Sketch { return &halftoneSketch{} },
		func() Sketch { return blackPainting{} },
		func() Sketch { return calico{} },
		func() Sketch { return foldingGrid{} },
	}
}

// Default returns a registry holding every builtin sketch.
func Default() *Registry {
	r := NewRegistry()
	for _, f := range Builtin() {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}
