package registry

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/zeebo/blake3"
)

// Transform is the position, rotation and scale of a held item. Each part
// is a three-item array of numbers or Molang strings.
type Transform struct {
	Position, Rotation, Scale *document.Array
}

// key returns the content key of t: a hash of its compact encoding.
func (t Transform) key() [32]byte {
	return blake3.Sum256(document.MarshalCompact(document.ArrayOf(t.Position, t.Rotation, t.Scale)))
}

// HoldAnimations accumulates RP/animations/cb2.animation.json. Requests with
// the same transform share one animation.
type HoldAnimations struct {
	mu      sync.Mutex
	path    string
	data    *document.Object
	items   *document.Object
	counter int
	byKey   map[[32]byte]string
}

func loadHoldAnimations(path string) (*HoldAnimations, error) {
	data, err := loadSeed(path, func() *document.Object {
		return document.ObjectOf("format_version", "1.8.0", "animations", document.NewObject())
	})
	if err != nil {
		return nil, err
	}
	items, err := section(path, data, "animations")
	if err != nil {
		return nil, err
	}
	return &HoldAnimations{path: path, data: data, items: items, byKey: map[[32]byte]string{}}, nil
}

// Hold returns the identifier of the looping animation that holds an item
// at t, adding the animation on first use.
func (h *HoldAnimations) Hold(t Transform) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	k := t.key()
	if id, ok := h.byKey[k]; ok {
		return id, nil
	}
	id := fmt.Sprintf("animation.%s.attachable_hold_%d", pack.Dir, h.counter)
	if h.items.Has(id) {
		return "", generr.Dup("The animation %q is already defined.", id).At(h.path, document.Root.Key("animations", id))
	}
	h.counter++
	h.items.Set(id, document.ObjectOf(
		"bones", document.ObjectOf(
			"root", document.ObjectOf(
				"position", t.Position.Clone(),
				"rotation", t.Rotation.Clone(),
				"scale", t.Scale.Clone(),
			),
		),
		"loop", true,
	))
	h.byKey[k] = id
	return id, nil
}

func (h *HoldAnimations) flush() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.items.Len() == 0 {
		return false, nil
	}
	return true, pack.WriteDocument(h.path, h.data)
}
