// Package recipe generates the crafting recipes of blocks and of their
// companion entities.
package recipe

import (
	"context"
	"errors"
	"strings"

	"github.com/specialistvlad/blockgen/internal/blockentity"
	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/merge"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/registry"
	"github.com/specialistvlad/blockgen/internal/template"
)

// Kinds are the supported recipe sections, in lookup order.
var Kinds = []string{
	"minecraft:recipe_shaped",
	"minecraft:recipe_shapeless",
	"minecraft:recipe_furnace",
	"minecraft:recipe_brewing_mix",
}

// resultSlot returns the path of the result reference inside a recipe of
// the given kind.
func resultSlot(kind string) []string {
	switch kind {
	case "minecraft:recipe_furnace", "minecraft:recipe_brewing_mix":
		return []string{"output"}
	}
	return []string{"result", "item"}
}

// Target is what a recipe produces.
type Target struct {
	// Name is the base of the recipe name before disambiguation.
	Name string
	// Result is the item the recipe crafts.
	Result string
	// Overlays are merged over the recipe section in order, after the
	// block's recipe_template_override.
	Overlays []*document.Object
}

// Targets returns one target for a block without companion entities, or
// one per instance bound to its spawn egg.
func Targets(g *config.Group, b *config.Block, instances []*blockentity.Instance) []Target {
	if len(instances) == 0 {
		return []Target{{Name: b.Name, Result: g.FullName(b.Name)}}
	}
	out := make([]Target, 0, len(instances))
	for _, inst := range instances {
		t := Target{Name: inst.Name(), Result: inst.SpawnEggFullName()}
		for _, v := range inst.Selection {
			if v.Recipe != nil {
				t.Overlays = append(t.Overlays, v.Recipe)
			}
		}
		out = append(out, t)
	}
	return out
}

// Compiler writes recipe documents.
type Compiler struct {
	Registry  *registry.Registry
	Evaluator template.Evaluator
}

// New returns a Compiler using the given evaluator for recipe templates.
func New(r *registry.Registry, e template.Evaluator) *Compiler {
	return &Compiler{Registry: r, Evaluator: e}
}

// Compile writes the recipes of b. Blocks without a recipe_template have
// none. It returns the written paths.
func (c *Compiler) Compile(ctx context.Context, g *config.Group, b *config.Block, scope *document.Object, instances []*blockentity.Instance) ([]string, error) {
	if b.RecipeTemplate == "" {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)

	var paths []string
	for _, t := range Targets(g, b, instances) {
		name := c.Registry.Recipes.Next(t.Name)
		doc, err := c.build(ctx, g, b, scope, t, g.FullName(name))
		if err != nil {
			return nil, err
		}
		path := c.Registry.Pack.RecipeFile(name)
		if err := pack.WriteDocument(path, doc); err != nil {
			return nil, err
		}
		paths = append(paths, path)
		logger.Debug("Recipe written.", "recipe", name, "result", t.Result)
	}
	return paths, nil
}

func (c *Compiler) build(ctx context.Context, g *config.Group, b *config.Block, scope *document.Object, t Target, identifier string) (*document.Object, error) {
	tpl := b.RecipeTemplate
	v, err := template.EvaluateFile(ctx, c.Evaluator, tpl, scope)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*document.Object)
	if !ok {
		return nil, generr.Shape("The recipe template must be an object.").At(tpl, document.Root)
	}

	kind := ""
	for _, k := range Kinds {
		if root.Has(k) {
			kind = k
			break
		}
	}
	if kind == "" {
		return nil, generr.Shape("Unknown recipe type. The recipe type must be one of the following: %s.", strings.Join(Kinds, ", ")).
			At(tpl, document.Root)
	}
	raw, _ := root.Get(kind)
	core, ok := raw.(*document.Object)
	if !ok {
		return nil, generr.Shape("The %s section of the recipe must be an object.", kind).At(tpl, document.Root.Key(kind))
	}

	if b.RecipeTemplateOverride != nil {
		core = merge.Objects(core, b.RecipeTemplateOverride)
	}
	for _, o := range t.Overlays {
		core = merge.Objects(core, o)
	}
	root.Set(kind, core)

	at := document.Root.Key(kind)
	if err := insert(core, identifier, "description", "identifier"); err != nil {
		return nil, wrapInsert("Failed to create an identifier for the recipe.", err).At(tpl, at.Key("description", "identifier"))
	}
	slot := resultSlot(kind)
	if err := insert(core, t.Result, slot...); err != nil {
		return nil, wrapInsert("Failed to create a result for the recipe.", err).At(tpl, at.Key(slot...))
	}
	return root, nil
}

func insert(core *document.Object, value string, keys ...string) error {
	return document.SetPath(core, document.String(value), keys...)
}

func wrapInsert(message string, err error) *generr.Error {
	if errors.Is(err, document.ErrExists) {
		return generr.Dup("%s The property is already defined.", message)
	}
	return generr.Shape("%s", message).Wrap(err)
}
