package registry

import (
	"sync"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// Blocks accumulates RP/blocks.json: the sound and texture of every block.
type Blocks struct {
	mu    sync.Mutex
	path  string
	data  *document.Object
	added int
}

func loadBlocks(path string) (*Blocks, error) {
	data, err := loadSeed(path, func() *document.Object {
		return document.ObjectOf("format_version", []int{1, 16, 0})
	})
	if err != nil {
		return nil, err
	}
	return &Blocks{path: path, data: data}, nil
}

// Add registers the sound and, when hasTexture is set, the texture of the
// block fullName. Either slot being taken already is a Duplicate error and
// leaves the registry unchanged.
func (b *Blocks) Add(fullName, sound, texture string, hasTexture bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	at := document.Root.Key(fullName)
	entry := document.NewObject()
	if existing, ok := b.data.Get(fullName); ok {
		obj, isObj := existing.(*document.Object)
		if !isObj {
			return generr.Shape("The blocks in the blocks.json file must be objects.").At(b.path, at)
		}
		entry = obj
	}
	if entry.Has("sound") {
		return generr.Dup("The sound of the block is already defined in the blocks.json file.").At(b.path, at.Key("sound"))
	}
	if hasTexture && entry.Has("textures") {
		return generr.Dup("The texture of the block is already defined in the blocks.json file.").At(b.path, at.Key("textures"))
	}

	entry.Set("sound", document.String(sound))
	if hasTexture {
		entry.Set("textures", document.String(texture))
	}
	b.data.Set(fullName, entry)
	b.added++
	return nil
}

// Document returns the accumulated document. It is shared, not copied.
func (b *Blocks) Document() *document.Object {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

func (b *Blocks) flush() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.data.Len()
	if b.data.Has("format_version") {
		n--
	}
	if n == 0 {
		return false, nil
	}
	return true, pack.WriteDocument(b.path, b.data)
}
