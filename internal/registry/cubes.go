package registry

import (
	"bytes"
	"sync"

	"github.com/specialistvlad/blockgen/internal/atlas"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// CubeGeometryID is the geometry shared by every generated cube attachable.
const CubeGeometryID = "geometry." + pack.Dir + "_cube"

// CubeAssets generates the textures of cube attachables and, at flush, the
// cube geometry they use.
type CubeAssets struct {
	mu      sync.Mutex
	pack    *pack.Pack
	codec   atlas.Codec
	counter int
	bySides map[atlas.Sides]string
}

func newCubeAssets(p *pack.Pack, codec atlas.Codec) *CubeAssets {
	if codec == nil {
		codec = atlas.PNG{}
	}
	return &CubeAssets{pack: p, codec: codec, bySides: map[atlas.Sides]string{}}
}

// Atlas returns the path of the atlas built from sides, generating and
// saving it under the next free counter value on first use. The target file
// must not exist yet.
func (c *CubeAssets) Atlas(sides atlas.Sides) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path, ok := c.bySides[sides]; ok {
		return path, nil
	}
	path := c.pack.AtlasFile(c.counter)
	c.counter++
	exists, err := pack.Exists(path)
	if err != nil {
		return "", generr.IOErr("Failed to inspect the cube attachable texture.").At(path, nil).Wrap(err)
	}
	if exists {
		return "", generr.Dup("The texture for the cube attachable already exists. Overwriting it is not supported.").At(path, nil)
	}

	img, err := atlas.Build(c.codec, sides)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := c.codec.Encode(&buf, img); err != nil {
		return "", generr.IOErr("Failed to encode the cube attachable texture.").At(path, nil).Wrap(err)
	}
	if err := pack.WriteFile(path, buf.Bytes(), true); err != nil {
		return "", err
	}
	c.bySides[sides] = path
	return path, nil
}

// Count returns the number of atlases allocated so far.
func (c *CubeAssets) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter
}

// CubeGeometry returns the geometry document of cube attachables.
func CubeGeometry() *document.Object {
	return document.ObjectOf(
		"format_version", "1.16.0",
		"minecraft:geometry", document.ArrayOf(document.ObjectOf(
			"description", document.ObjectOf(
				"identifier", CubeGeometryID,
				"visible_bounds_width", document.Number("1.0"),
				"visible_bounds_height", document.Number("1.0"),
				"visible_bounds_offset", []int{0, 0, 0},
				"texture_width", 64,
				"texture_height", 32,
			),
			"bones", document.ArrayOf(document.ObjectOf(
				"name", "root",
				"pivot", []int{0, 0, 0},
				"rotation", []int{0, 0, 0},
				"binding", "'rightitem'",
				"cubes", document.ArrayOf(document.ObjectOf(
					"uv", []int{0, 0},
					"size", []int{16, 16, 16},
					"origin", []int{-8, 0, -8},
					"pivot", []int{0, 8, 0},
					"rotation", []int{0, 0, 0},
				)),
			)),
		)),
	)
}

func (c *CubeAssets) flush() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counter == 0 {
		return false, nil
	}
	path := c.pack.CubeGeometry()
	exists, err := pack.Exists(path)
	if err != nil {
		return false, generr.IOErr("Failed to inspect the cube attachable geometry.").At(path, nil).Wrap(err)
	}
	if exists {
		return false, generr.Dup("The geometry file for the cube attachables already exists. Overwriting it is not supported.").At(path, nil)
	}
	return true, pack.CreateDocument(path, CubeGeometry())
}
