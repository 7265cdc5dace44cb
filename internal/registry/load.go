package registry

import (
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// loadSeed reads the shared file at path, or returns the skeleton built by
// def when the file does not exist. The top level must be an object.
func loadSeed(path string, def func() *document.Object) (*document.Object, error) {
	v, ok, err := pack.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def(), nil
	}
	obj, isObj := v.(*document.Object)
	if !isObj {
		return nil, generr.Shape("The file must hold an object.").At(path, document.Root)
	}
	return obj, nil
}

// section returns the object stored under key in root, creating it when
// missing.
func section(path string, root *document.Object, key string) (*document.Object, error) {
	v, err := document.EnsurePath(root, document.NewObject(), key)
	if err != nil {
		return nil, generr.Shape("Failed to prepare the %s property.", key).At(path, document.Root.Key(key)).Wrap(err)
	}
	obj, ok := v.(*document.Object)
	if !ok {
		return nil, generr.Shape("The %s property must be an object.", key).At(path, document.Root.Key(key))
	}
	return obj, nil
}
