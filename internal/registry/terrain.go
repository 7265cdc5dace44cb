package registry

import (
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
)

// TerrainTexture gives read access to RP/textures/terrain_texture.json. It
// is never written.
type TerrainTexture struct {
	path string
	data *document.Object
}

func loadTerrainTexture(path string) (*TerrainTexture, error) {
	data, err := loadSeed(path, func() *document.Object {
		return document.ObjectOf(
			"texture_name", "atlas.terrain",
			"resource_pack_name", "vanilla",
			"padding", 8,
			"num_mip_levels", 4,
			"texture_data", document.NewObject(),
		)
	})
	if err != nil {
		return nil, err
	}
	return &TerrainTexture{path: path, data: data}, nil
}

// Path returns the location of the file.
func (t *TerrainTexture) Path() string { return t.path }

// Texture returns the texture path registered under key: a path relative
// to RP without extension. A missing key or a non-string value is a
// Reference error.
func (t *TerrainTexture) Texture(key string) (string, error) {
	at := document.Root.Key("texture_data", key, "textures")
	v, ok := document.Lookup(t.data, "texture_data", key, "textures")
	if !ok {
		return "", generr.Ref("The texture %q doesn't exist in the terrain_texture.json file.", key).At(t.path, at)
	}
	s, isScalar := v.(document.Scalar)
	str, isStr := s.AsString()
	if !isScalar || !isStr {
		return "", generr.Ref("The texture path of %q must be a string.", key).At(t.path, at)
	}
	return str, nil
}
