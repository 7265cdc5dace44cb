package registry

import (
	"context"

	"github.com/specialistvlad/blockgen/internal/atlas"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// Registry holds all the accumulators of a single run.
type Registry struct {
	Pack *pack.Pack

	Blocks      *Blocks
	Controllers *Controllers
	Animations  *HoldAnimations
	Lang        *Lang
	Cubes       *CubeAssets
	Recipes     *RecipeNames
	Terrain     *TerrainTexture
}

// New creates a Registry for p, seeding every accumulator from the files
// already present in the pack.
func New(ctx context.Context, p *pack.Pack, codec atlas.Codec) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	blocks, err := loadBlocks(p.BlocksJSON())
	if err != nil {
		return nil, err
	}
	controllers, err := loadControllers(p.AnimationControllers())
	if err != nil {
		return nil, err
	}
	animations, err := loadHoldAnimations(p.Animations())
	if err != nil {
		return nil, err
	}
	lang, err := loadLang(p.Lang())
	if err != nil {
		return nil, err
	}
	terrain, err := loadTerrainTexture(p.TerrainTexture())
	if err != nil {
		return nil, err
	}
	logger.Debug("Registry seeded from the pack.", "root", p.Root, "known_lang_keys", len(lang.known))

	return &Registry{
		Pack:        p,
		Blocks:      blocks,
		Controllers: controllers,
		Animations:  animations,
		Lang:        lang,
		Cubes:       newCubeAssets(p, codec),
		Recipes:     NewRecipeNames(),
		Terrain:     terrain,
	}, nil
}

// Flush writes every accumulator that received contributions. A failure
// stops at the first accumulator that cannot be written.
func (r *Registry) Flush(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	steps := []struct {
		name  string
		flush func() (bool, error)
	}{
		{"blocks", r.Blocks.flush},
		{"animation_controllers", r.Controllers.flush},
		{"hold_animations", r.Animations.flush},
		{"lang", r.Lang.flush},
		{"cube_geometry", r.Cubes.flush},
	}
	written := 0
	for _, s := range steps {
		wrote, err := s.flush()
		if err != nil {
			return err
		}
		if wrote {
			written++
			logger.Debug("Accumulator written.", "name", s.name)
		} else {
			logger.Debug("Accumulator empty, skipped.", "name", s.name)
		}
	}
	logger.Info("Shared files flushed.", "written", written, "skipped", len(steps)-written)
	return nil
}
