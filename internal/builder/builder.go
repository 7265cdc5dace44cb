package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blockgen/internal/blockentity"
	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/recipe"
	"github.com/specialistvlad/blockgen/internal/registry"
	"github.com/specialistvlad/blockgen/internal/template"
)

// BlockBuilder is the Builder writing into the pack of a Registry.
type BlockBuilder struct {
	Registry  *registry.Registry
	Evaluator template.Evaluator
	Entities  *blockentity.Compiler
	Recipes   *recipe.Compiler
}

var _ Builder = (*BlockBuilder)(nil)

// New returns a BlockBuilder contributing to r and evaluating templates
// with e.
func New(r *registry.Registry, e template.Evaluator) *BlockBuilder {
	return &BlockBuilder{
		Registry:  r,
		Evaluator: e,
		Entities:  blockentity.New(r),
		Recipes:   recipe.New(r, e),
	}
}

// Build implements the Builder interface.
func (bb *BlockBuilder) Build(ctx context.Context, g *config.Group, b *config.Block, scope *document.Object) error {
	logger := ctxlog.FromContext(ctx).With("block", g.FullName(b.Name))
	ctx = ctxlog.WithLogger(ctx, logger)

	t, err := bb.evaluate(ctx, g, b, scope)
	if err != nil {
		return err
	}
	logger.Debug("Build: Template evaluated.", "template", b.Template)

	t.addVariantStates(g, b)
	instances := blockentity.Instances(g, b)
	if len(instances) == 0 {
		if err := bb.buildPlain(ctx, g, b, t); err != nil {
			return err
		}
	} else {
		if err := t.addRotation(g, b); err != nil {
			return err
		}
		for _, inst := range instances {
			if err := bb.buildInstance(ctx, t, inst); err != nil {
				return fmt.Errorf("failed to generate block entity %s: %w", inst.FullName(), err)
			}
		}
		logger.Debug("Build: Block entities generated.", "count", len(instances))
	}

	path := bb.Registry.Pack.BlockFile(b.Name)
	if err := pack.WriteDocument(path, t.root); err != nil {
		return err
	}
	if err := bb.Registry.Blocks.Add(g.FullName(b.Name), b.Sound, b.Texture, b.HasTexture); err != nil {
		return err
	}
	recipes, err := bb.Recipes.Compile(ctx, g, b, scope, instances)
	if err != nil {
		return err
	}
	logger.Info("Block generated.", "path", path, "entities", len(instances), "recipes", len(recipes))
	return nil
}

// buildPlain handles a block without companion entities: it drops itself
// when self_drop is set and translates under the tile key.
func (bb *BlockBuilder) buildPlain(ctx context.Context, g *config.Group, b *config.Block, t *blockTemplate) error {
	if b.SelfDrop != nil && *b.SelfDrop {
		if err := t.addLoot(b.Name); err != nil {
			return err
		}
		if err := writeLoot(bb.Registry.Pack, b.Name, g.FullName(b.Name)); err != nil {
			return err
		}
	}
	if b.HasTranslation {
		bb.Registry.Lang.Add(ctx, "tile."+g.FullName(b.Name)+".name", b.Translation)
	}
	return nil
}

// buildInstance generates the companion entity of inst and adds its
// fallback permutation to the block.
func (bb *BlockBuilder) buildInstance(ctx context.Context, t *blockTemplate, inst *blockentity.Instance) error {
	if err := bb.Entities.Compile(ctx, inst); err != nil {
		return err
	}
	drops := t.addSharedVariant(inst)
	if drops {
		if err := writeLoot(bb.Registry.Pack, inst.Name(), inst.SpawnEggFullName()); err != nil {
			return err
		}
	}
	if b := inst.Block; b.HasTranslation {
		text := inst.Translation(b.Translation)
		bb.Registry.Lang.Add(ctx, "item.spawn_egg.entity."+inst.FullName()+".name", text)
		bb.Registry.Lang.Add(ctx, "entity."+inst.FullName()+".name", text)
	}
	return nil
}
