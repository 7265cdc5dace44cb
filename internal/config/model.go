package config

import (
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/rotation"
	"github.com/specialistvlad/blockgen/internal/variant"
)

// Group is one evaluated _blocks_data.json file.
type Group struct {
	// File is the path of the _blocks_data.json document.
	File string
	// Dir is the directory holding File; template paths are relative to it.
	Dir       string
	Namespace string
	Blocks    []*Block
}

// Block is one entry of the "blocks" object.
type Block struct {
	Name    string
	Locator document.Path

	// Template is the block template path joined onto the group directory.
	Template         string
	TemplateOverride *document.Object

	// RecipeTemplate is empty when the block has no recipe.
	RecipeTemplate         string
	RecipeTemplateOverride *document.Object

	Translation    string
	HasTranslation bool

	Sound      string
	Texture    string
	HasTexture bool

	// SelfDrop is nil when the property is absent.
	SelfDrop *bool

	Rotation      rotation.Scheme
	SharedVariant *document.Object
	Groups        []*variant.Group

	Entity EntityProperties
}

// EntityProperties holds block_entity_properties, the settings of the
// companion placement entities.
type EntityProperties struct {
	// PlaceSound defaults to "use.<sound>".
	PlaceSound string

	SpawnEggTexture    string
	HasSpawnEggTexture bool

	Attachable     *document.Object
	EntityOverride *document.Object

	Locator document.Path
}

// FullName returns namespace:name.
func (g *Group) FullName(name string) string {
	return g.Namespace + ":" + name
}

// HasEntities reports whether the block needs companion entities: it has
// variant groups or a rotation scheme.
func (b *Block) HasEntities() bool {
	return len(b.Groups) > 0 || b.Rotation != rotation.None
}
