package config

import (
	"path/filepath"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/rotation"
	"github.com/specialistvlad/blockgen/internal/variant"
)

// Parse validates an evaluated _blocks_data.json document and builds the
// typed group. file is the document path; relative template paths are
// joined onto its directory.
func Parse(file string, doc document.Value) (*Group, error) {
	if err := Validate(file, doc); err != nil {
		return nil, err
	}
	p := &parser{file: file}
	root, ok := doc.(*document.Object)
	if !ok {
		return nil, generr.Shape("The blocks data must be an object.").At(file, document.Root)
	}

	g := &Group{File: file, Dir: filepath.Dir(file)}
	ns, err := p.requiredString(root, document.Root, "namespace")
	if err != nil {
		return nil, err
	}
	g.Namespace = ns

	blocks, err := p.object(root, document.Root, "blocks", true)
	if err != nil {
		return nil, err
	}
	for name, raw := range blocks.All() {
		at := document.Root.Key("blocks", name)
		obj, ok := raw.(*document.Object)
		if !ok {
			return nil, generr.Shape("The block definition must be an object.").At(file, at)
		}
		b, err := p.block(g, name, obj, at)
		if err != nil {
			return nil, err
		}
		g.Blocks = append(g.Blocks, b)
	}
	return g, nil
}

type parser struct {
	file string
}

func (p *parser) block(g *Group, name string, obj *document.Object, at document.Path) (*Block, error) {
	b := &Block{Name: name, Locator: at}
	var err error

	tpl, err := p.requiredString(obj, at, "block_template")
	if err != nil {
		return nil, err
	}
	b.Template = filepath.Join(g.Dir, filepath.FromSlash(tpl))

	if b.TemplateOverride, err = p.object(obj, at, "block_template_override", false); err != nil {
		return nil, err
	}
	if recipe, ok, err := p.optionalString(obj, at, "recipe_template"); err != nil {
		return nil, err
	} else if ok {
		b.RecipeTemplate = filepath.Join(g.Dir, filepath.FromSlash(recipe))
	}
	if b.RecipeTemplateOverride, err = p.object(obj, at, "recipe_template_override", false); err != nil {
		return nil, err
	}
	if b.Translation, b.HasTranslation, err = p.optionalString(obj, at, "translation"); err != nil {
		return nil, err
	}
	if b.Sound, err = p.requiredString(obj, at, "sound"); err != nil {
		return nil, err
	}
	if b.Texture, b.HasTexture, err = p.optionalString(obj, at, "texture"); err != nil {
		return nil, err
	}
	if raw, ok := obj.Get("self_drop"); ok {
		s, isScalar := raw.(document.Scalar)
		v, isBool := s.AsBool()
		if !isScalar || !isBool {
			return nil, generr.Shape("The self_drop property must be a boolean.").At(p.file, at.Key("self_drop"))
		}
		b.SelfDrop = &v
	}
	if name, ok, err := p.optionalString(obj, at, "rotation_type"); err != nil {
		return nil, err
	} else if ok {
		scheme, err := rotation.ParseScheme(name)
		if err != nil {
			return nil, generr.Shape("%s", err).At(p.file, at.Key("rotation_type"))
		}
		b.Rotation = scheme
	}
	if b.SharedVariant, err = p.object(obj, at, "shared_variant", false); err != nil {
		return nil, err
	}

	variants, err := p.object(obj, at, "variants", false)
	if err != nil {
		return nil, err
	}
	if b.Groups, err = variant.Parse(p.file, variants, at.Key("variants")); err != nil {
		return nil, err
	}

	if b.Entity, err = p.entityProperties(obj, at, b.Sound); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *parser) entityProperties(obj *document.Object, at document.Path, sound string) (EntityProperties, error) {
	ep := EntityProperties{PlaceSound: "use." + sound, Locator: at.Key("block_entity_properties")}
	props, err := p.object(obj, at, "block_entity_properties", false)
	if err != nil || props == nil {
		return ep, err
	}
	at = ep.Locator
	if s, ok, err := p.optionalString(props, at, "place_sound"); err != nil {
		return ep, err
	} else if ok {
		ep.PlaceSound = s
	}
	if ep.SpawnEggTexture, ep.HasSpawnEggTexture, err = p.optionalString(props, at, "spawn_egg_texture"); err != nil {
		return ep, err
	}
	if ep.Attachable, err = p.object(props, at, "attachable", false); err != nil {
		return ep, err
	}
	if ep.EntityOverride, err = p.object(props, at, "entity_override", false); err != nil {
		return ep, err
	}
	return ep, nil
}

func (p *parser) object(obj *document.Object, at document.Path, key string, required bool) (*document.Object, error) {
	raw, ok := obj.Get(key)
	if !ok {
		if required {
			return nil, generr.Missing("The %s property is required.", key).At(p.file, at.Key(key))
		}
		return nil, nil
	}
	child, ok := raw.(*document.Object)
	if !ok {
		return nil, generr.Shape("The %s property must be an object.", key).At(p.file, at.Key(key))
	}
	return child, nil
}

func (p *parser) optionalString(obj *document.Object, at document.Path, key string) (string, bool, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return "", false, nil
	}
	s, isScalar := raw.(document.Scalar)
	str, isStr := s.AsString()
	if !isScalar || !isStr {
		return "", false, generr.Shape("The %s property must be a string.", key).At(p.file, at.Key(key))
	}
	return str, true, nil
}

func (p *parser) requiredString(obj *document.Object, at document.Path, key string) (string, error) {
	s, ok, err := p.optionalString(obj, at, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", generr.Missing("The %s property is required.", key).At(p.file, at.Key(key))
	}
	return s, nil
}
