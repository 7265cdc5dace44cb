package registry

import (
	"sync"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// Controllers accumulates the animation controllers of the placement
// entities.
type Controllers struct {
	mu    sync.Mutex
	path  string
	data  *document.Object
	items *document.Object
}

func loadControllers(path string) (*Controllers, error) {
	data, err := loadSeed(path, func() *document.Object {
		return document.ObjectOf("format_version", "1.19.0", "animation_controllers", document.NewObject())
	})
	if err != nil {
		return nil, err
	}
	items, err := section(path, data, "animation_controllers")
	if err != nil {
		return nil, err
	}
	return &Controllers{path: path, data: data, items: items}, nil
}

// Add registers controller body under name. A taken name is a Duplicate
// error.
func (c *Controllers) Add(name string, body *document.Object) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items.Has(name) {
		return generr.Dup("The animation controller %q is already defined.", name).
			At(c.path, document.Root.Key("animation_controllers", name))
	}
	c.items.Set(name, body)
	return nil
}

// Get returns the controller registered under name.
func (c *Controllers) Get(name string) (*document.Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items.Get(name)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*document.Object)
	return obj, ok
}

// Len returns the number of controllers, seeded ones included.
func (c *Controllers) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

func (c *Controllers) flush() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items.Len() == 0 {
		return false, nil
	}
	return true, pack.WriteDocument(c.path, c.data)
}
