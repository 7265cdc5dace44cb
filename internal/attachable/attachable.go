package attachable

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/blockgen/internal/atlas"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/registry"
)

// Texture reference prefixes.
const (
	RPPrefix      = "RP:"
	TerrainPrefix = "TERRAIN_TEXTURE:"
)

// View is a person view of the held item.
type View string

const (
	FirstPerson View = "1st_person"
	ThirdPerson View = "3rd_person"
)

// defaults holds the built-in hold transform of each view, used for the
// fields no layer defines.
var defaults = map[View][3][3]float64{
	FirstPerson: {{-4, 29, -4}, {-128, -131, 3}, {0.35, 0.35, 0.35}},
	ThirdPerson: {{0, 18, -4}, {31, -47, -20}, {0.35, 0.35, 0.35}},
}

// Resolved is the attachable of one placement entity after layering.
type Resolved struct {
	FirstPerson registry.Transform
	ThirdPerson registry.Transform

	// Geometry is empty for cube attachables, which use the generated cube
	// geometry.
	Geometry string
	// Texture is the resolved texture file. For cube attachables it is
	// empty until the atlas is built.
	Texture string
	// Sides holds the resolved face files of a cube attachable.
	Sides atlas.Sides
	Cubic bool
}

// Compiler resolves layered attachables and writes their documents.
type Compiler struct {
	Registry *registry.Registry
}

// New returns a Compiler contributing to r.
func New(r *registry.Registry) *Compiler {
	return &Compiler{Registry: r}
}

// Resolve merges layers into one attachable. file is the document the
// layers were declared in.
func (c *Compiler) Resolve(file string, layers []Layer) (*Resolved, error) {
	s := &Resolved{}
	var err error
	if s.FirstPerson, err = transform(file, layers, FirstPerson); err != nil {
		return nil, err
	}
	if s.ThirdPerson, err = transform(file, layers, ThirdPerson); err != nil {
		return nil, err
	}

	texture, found, ok, err := Resolve(layers, passValue, "assets", "texture")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, generr.Missing("Missing texture property for the attachable.").At(file, Top(layers).Key("assets", "texture"))
	}
	switch tv := texture.(type) {
	case document.Scalar:
		ref, isStr := tv.AsString()
		if !isStr {
			return nil, generr.Shape("The texture property must be a string or an object.").At(file, found.Locator)
		}
		if s.Texture, err = c.resolveRef(file, found.Locator, ref); err != nil {
			return nil, err
		}
	case *document.Object:
		s.Cubic = true
		if err := c.resolveSides(file, layers, &s.Sides); err != nil {
			return nil, err
		}
	default:
		return nil, generr.Shape("The texture property must be a string or an object.").At(file, found.Locator)
	}

	if s.Cubic {
		return s, nil
	}
	geometry, _, ok, err := Resolve(layers, stringValue(file, "geometry"), "assets", "geometry")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, generr.Missing("Missing geometry property for the attachable.").At(file, Top(layers).Key("assets", "geometry"))
	}
	s.Geometry = geometry
	return s, nil
}

// resolveSides resolves every face independently, so different layers may
// supply different faces. Layers holding a single texture reference have
// no faces and are skipped.
func (c *Compiler) resolveSides(file string, layers []Layer, sides *atlas.Sides) error {
	for _, side := range atlas.AllSides {
		ref, found, ok, err := Resolve(layers, stringValue(file, "texture for side \""+string(side)+"\""), "assets", "texture", string(side))
		if err != nil {
			return err
		}
		if !ok {
			return generr.Missing("The texture of the cube attachable is missing the %q side.", side).
				At(file, Top(layers).Key("assets", "texture"))
		}
		path, err := c.resolveRef(file, found.Locator, ref)
		if err != nil {
			return err
		}
		sides.Set(side, path)
	}
	return nil
}

// resolveRef maps a texture reference to its PNG file in the resource pack.
// The file must exist.
func (c *Compiler) resolveRef(file string, at document.Path, ref string) (string, error) {
	p := c.Registry.Pack
	var rel string
	switch {
	case strings.HasPrefix(ref, TerrainPrefix):
		key := strings.TrimPrefix(ref, TerrainPrefix)
		texture, err := c.Registry.Terrain.Texture(key)
		if err != nil {
			return "", generr.Ref("Failed to get the texture path %q for the attachable.", ref).At(file, at).Wrap(err)
		}
		rel = texture
	case strings.HasPrefix(ref, RPPrefix):
		rel = strings.TrimPrefix(ref, RPPrefix)
	default:
		return "", generr.Ref("The texture path must start with either %q or %q. Use %q for textures relative to the resource pack root and %q for textures defined in the terrain_texture.json file.",
			TerrainPrefix, RPPrefix, RPPrefix, TerrainPrefix).At(file, at)
	}
	path := p.RP(filepath.FromSlash(rel) + ".png")
	exists, err := pack.Exists(path)
	if err != nil {
		return "", generr.IOErr("Failed to inspect the texture file of the attachable.").At(path, nil).Wrap(err)
	}
	if !exists {
		return "", generr.Ref("The texture file of the attachable doesn't exist: %s", path).At(file, at)
	}
	return path, nil
}

func transform(file string, layers []Layer, view View) (registry.Transform, error) {
	def := defaults[view]
	parts := [3]*document.Array{}
	for i, name := range []string{"position", "rotation", "scale"} {
		v, _, ok, err := Resolve(layers, vector(file, name), "offset", name+"_"+string(view))
		if err != nil {
			return registry.Transform{}, err
		}
		if !ok {
			v = document.ArrayOf(def[i][0], def[i][1], def[i][2])
		}
		parts[i] = v
	}
	return registry.Transform{Position: parts[0], Rotation: parts[1], Scale: parts[2]}, nil
}

func passValue(v document.Value, _ document.Path) (document.Value, error) { return v, nil }

func stringValue(file, property string) func(document.Value, document.Path) (string, error) {
	return func(v document.Value, at document.Path) (string, error) {
		if s, ok := v.(document.Scalar); ok {
			if str, isStr := s.AsString(); isStr {
				return str, nil
			}
		}
		return "", generr.Shape("The %s property must be a string.", property).At(file, at)
	}
}

// vector decodes a three-item array of numbers or Molang strings.
func vector(file, property string) func(document.Value, document.Path) (*document.Array, error) {
	return func(v document.Value, at document.Path) (*document.Array, error) {
		arr, ok := v.(*document.Array)
		if !ok || arr.Len() != 3 {
			return nil, generr.Shape("Failed to parse the %s of the attachable: the vector must be a list of 3 elements.", property).At(file, at)
		}
		for _, item := range arr.All() {
			k := item.Kind()
			if k != document.KindNumber && k != document.KindString {
				return nil, generr.Shape("Failed to parse the %s of the attachable: every element of the vector must be a number or a string.", property).At(file, at)
			}
		}
		return arr.Clone().(*document.Array), nil
	}
}

// Document builds the attachable document of the item identifier.
func Document(identifier, geometry, texture, firstPersonAnim, thirdPersonAnim string) *document.Object {
	return document.ObjectOf(
		"format_version", "1.10.0",
		"minecraft:attachable", document.ObjectOf(
			"description", document.ObjectOf(
				"identifier", identifier,
				"materials", document.ObjectOf("default", "entity_alphatest"),
				"geometry", document.ObjectOf("default", geometry),
				"textures", document.ObjectOf("default", texture),
				"animations", document.ObjectOf(
					"hold_1st_person", firstPersonAnim,
					"hold_3rd_person", thirdPersonAnim,
				),
				"scripts", document.ObjectOf(
					"animate", document.ArrayOf(
						document.ObjectOf("hold_1st_person", "c.is_first_person"),
						document.ObjectOf("hold_3rd_person", "!c.is_first_person"),
					),
				),
				"render_controllers", []string{"controller.render.default"},
			),
		),
	)
}

// Compile resolves layers and writes the attachable of the spawn egg
// identifier (namespace:name) to the pack. It builds the cube atlas and
// registers the hold animations the attachable uses. It returns the path
// of the written document.
func (c *Compiler) Compile(ctx context.Context, file string, layers []Layer, identifier, name string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	s, err := c.Resolve(file, layers)
	if err != nil {
		return "", err
	}

	geometry, texture := s.Geometry, s.Texture
	if s.Cubic {
		geometry = registry.CubeGeometryID
		if texture, err = c.Registry.Cubes.Atlas(s.Sides); err != nil {
			return "", err
		}
	}
	ref, err := c.Registry.Pack.RPRef(texture)
	if err != nil {
		return "", generr.Ref("The texture of the attachable is outside of the resource pack.").At(file, Top(layers)).Wrap(err)
	}

	first, err := c.Registry.Animations.Hold(s.FirstPerson)
	if err != nil {
		return "", err
	}
	third, err := c.Registry.Animations.Hold(s.ThirdPerson)
	if err != nil {
		return "", err
	}

	path := c.Registry.Pack.AttachableFile(name)
	if err := pack.WriteDocument(path, Document(identifier, geometry, ref, first, third)); err != nil {
		return "", err
	}
	logger.Debug("Attachable written.", "identifier", identifier, "cubic", s.Cubic, "path", path)
	return path, nil
}
