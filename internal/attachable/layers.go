// Package attachable compiles the hand-held view of a placement entity's
// spawn egg. Its settings are layered: the block's attachable first, then
// the attachable of every selected variant, each layer overriding the ones
// before it.
package attachable

import (
	"github.com/specialistvlad/blockgen/internal/document"
)

// Layer is one attachable object and where it was declared.
type Layer struct {
	Data    *document.Object
	Locator document.Path
}

// Found reports where a resolved value came from.
type Found struct {
	Layer   Layer
	Locator document.Path
}

// Resolve scans layers from the highest priority (the last one) down and
// decodes the first value stored under keys. ok is false when no layer
// defines it.
func Resolve[T any](layers []Layer, decode func(v document.Value, at document.Path) (T, error), keys ...string) (result T, found Found, ok bool, err error) {
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		v, has := document.Lookup(l.Data, keys...)
		if !has {
			continue
		}
		at := l.Locator.Key(keys...)
		result, err = decode(v, at)
		return result, Found{Layer: l, Locator: at}, true, err
	}
	return result, Found{}, false, nil
}

// Top returns the locator of the highest-priority layer, used for errors
// about values that no layer defines.
func Top(layers []Layer) document.Path {
	if len(layers) == 0 {
		return document.Root
	}
	return layers[len(layers)-1].Locator
}
