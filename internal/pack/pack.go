// Package pack knows the layout of the behavior pack (BP) and resource pack
// (RP) the generator writes into, and provides the file operations the
// compilers use to populate them.
package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
)

// Dir is the subdirectory, inside each pack category, that holds generated
// files.
const Dir = "cb2"

// Pack is a BP/RP pair below a common root.
type Pack struct {
	Root string
}

// New returns the pack rooted at root.
func New(root string) *Pack {
	return &Pack{Root: root}
}

// BP joins elem onto the behavior pack directory.
func (p *Pack) BP(elem ...string) string {
	return filepath.Join(append([]string{p.Root, "BP"}, elem...)...)
}

// RP joins elem onto the resource pack directory.
func (p *Pack) RP(elem ...string) string {
	return filepath.Join(append([]string{p.Root, "RP"}, elem...)...)
}

func (p *Pack) BlockFile(name string) string {
	return p.BP("blocks", Dir, name+".block.json")
}

func (p *Pack) LootFile(name string) string {
	return p.BP("loot_tables", Dir, name+".loot.json")
}

// LootRef is the loot table reference used inside block documents.
func LootRef(name string) string {
	return "loot_tables/" + Dir + "/" + name + ".loot.json"
}

func (p *Pack) EntityBehaviorFile(name string) string {
	return p.BP("entities", Dir, name+".behavior.json")
}

// EntityDisplayFile mirrors the directory of the block template, subdir,
// below RP/entity/cb2.
func (p *Pack) EntityDisplayFile(subdir, name string) string {
	return p.RP("entity", Dir, subdir, name+".entity.json")
}

func (p *Pack) AttachableFile(spawnEgg string) string {
	return p.RP("attachables", Dir, spawnEgg+".attachable.json")
}

func (p *Pack) RecipeFile(name string) string {
	return p.BP("recipes", Dir, name+".recipe.json")
}

func (p *Pack) BlocksJSON() string { return p.RP("blocks.json") }

func (p *Pack) AnimationControllers() string {
	return p.BP("animation_controllers", Dir+".bp_ac.json")
}

func (p *Pack) Animations() string { return p.RP("animations", Dir+".animation.json") }

func (p *Pack) Lang() string { return p.RP("texts", "en_US.lang") }

func (p *Pack) TerrainTexture() string { return p.RP("textures", "terrain_texture.json") }

// AtlasFile is the path of the n-th generated cube texture.
func (p *Pack) AtlasFile(n int) string {
	return p.RP("textures", "attachable", Dir, fmt.Sprintf("cube_%d.png", n))
}

func (p *Pack) CubeGeometry() string {
	return p.RP("models", "entity", Dir+"_cube.geo.json")
}

// RPRef returns path relative to the resource pack without its extension,
// the form textures are referenced by.
func (p *Pack) RPRef(path string) (string, error) {
	rel, err := filepath.Rel(p.RP(), path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel[:len(rel)-len(filepath.Ext(rel))]), nil
}

// Exists reports whether path exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ReadDocument loads the JSONC document at path. ok is false when the file
// does not exist.
func ReadDocument(path string) (v document.Value, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, generr.IOErr("Failed to read the file.").At(path, nil).Wrap(err)
	}
	v, err = document.Parse(data)
	if err != nil {
		return nil, false, generr.Shape("Failed to parse the file.").At(path, nil).Wrap(err)
	}
	return v, true, nil
}

// WriteDocument writes v to path, creating parent directories and
// replacing any existing file.
func WriteDocument(path string, v document.Value) error {
	return WriteFile(path, document.Marshal(v), false)
}

// CreateDocument writes v to path, which must not exist yet.
func CreateDocument(path string, v document.Value) error {
	return WriteFile(path, document.Marshal(v), true)
}

// WriteFile writes data to path, creating parent directories. With
// exclusive set the file must not exist yet.
func WriteFile(path string, data []byte, exclusive bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return generr.IOErr("Failed to create the output directory.").At(path, nil).Wrap(err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return generr.IOErr("The file already exists.").At(path, nil)
	}
	if err != nil {
		return generr.IOErr("Failed to open the output file.").At(path, nil).Wrap(err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return generr.IOErr("Failed to write the output file.").At(path, nil).Wrap(err)
	}
	if err := f.Close(); err != nil {
		return generr.IOErr("Failed to write the output file.").At(path, nil).Wrap(err)
	}
	return nil
}

// AppendText appends text to path, creating the file and its directories
// when missing.
func AppendText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return generr.IOErr("Failed to create the output directory.").At(path, nil).Wrap(err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return generr.IOErr("Failed to open the output file.").At(path, nil).Wrap(err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return generr.IOErr("Failed to write the output file.").At(path, nil).Wrap(err)
	}
	return f.Close()
}
