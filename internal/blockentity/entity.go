package blockentity

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/blockgen/internal/attachable"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/merge"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/registry"
)

// ProtectedDescriptionKeys may not be set by entity_override.
var ProtectedDescriptionKeys = []string{
	"identifier", "is_experimental", "is_spawnable", "is_summonable", "animations", "scripts",
}

// Behavior returns the behavior document of the instance before
// entity_override is applied.
func (i *Instance) Behavior() *document.Object {
	return document.ObjectOf(
		"format_version", "1.20.0",
		"minecraft:entity", document.ObjectOf(
			"description", document.ObjectOf(
				"identifier", i.FullName(),
				"is_spawnable", true,
				"is_summonable", true,
				"animations", document.ObjectOf("place", i.ControllerName()),
				"scripts", document.ObjectOf("animate", []string{"place"}),
			),
			"component_groups", document.ObjectOf(
				DespawnEvent, document.ObjectOf("minecraft:instant_despawn", document.NewObject()),
			),
			"components", document.ObjectOf(
				"minecraft:timer", document.ObjectOf(
					"time", document.Number("0.5"),
					"time_down_event", document.ObjectOf("event", DespawnEvent, "target", "self"),
				),
				"minecraft:collision_box", document.ObjectOf(
					"height", document.Number("0.0"),
					"width", document.Number("0.0"),
				),
				"minecraft:damage_sensor", document.ObjectOf(
					"triggers", document.ArrayOf(document.ObjectOf("deals_damage", false)),
				),
			),
			"events", document.ObjectOf(
				DespawnEvent, document.ObjectOf(
					"add", document.ObjectOf("component_groups", []string{DespawnEvent}),
				),
			),
		),
	)
}

// Display returns the client entity document showing texture as the spawn
// egg.
func (i *Instance) Display(texture string) *document.Object {
	return document.ObjectOf(
		"format_version", "1.20.0",
		"minecraft:client_entity", document.ObjectOf(
			"description", document.ObjectOf(
				"identifier", i.FullName(),
				"spawn_egg", document.ObjectOf("texture", texture),
			),
		),
	)
}

// checkOverride rejects entity_override objects that touch the protected
// description keys.
func (i *Instance) checkOverride() error {
	override := i.Block.Entity.EntityOverride
	if override == nil {
		return nil
	}
	at := i.Block.Entity.Locator.Key("entity_override", "description")
	for _, k := range ProtectedDescriptionKeys {
		if _, ok := document.Lookup(override, "description", k); ok {
			return generr.Shape("The entity_override property cannot override the %q property in the \"description\".", k).
				At(i.Group.File, at.Key(k))
		}
	}
	return nil
}

// displaySubdir mirrors the directory of the block template relative to
// the group directory.
func (i *Instance) displaySubdir() (string, error) {
	rel, err := filepath.Rel(i.Group.Dir, filepath.Dir(i.Block.Template))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", generr.Shape("The block template must be inside the directory of the blocks data file.").
			At(i.Group.File, i.Block.Locator.Key("block_template"))
	}
	return rel, nil
}

// Compiler writes the companion entities and registers their controllers.
type Compiler struct {
	Registry    *registry.Registry
	Attachables *attachable.Compiler
}

// New returns a Compiler contributing to r.
func New(r *registry.Registry) *Compiler {
	return &Compiler{Registry: r, Attachables: attachable.New(r)}
}

// Compile writes the behavior, display and attachable documents of inst and
// registers its placement controller. The behavior file must not exist yet.
// A missing spawn_egg_texture only skips the display document.
func (c *Compiler) Compile(ctx context.Context, inst *Instance) error {
	logger := ctxlog.FromContext(ctx)
	p := c.Registry.Pack

	if err := inst.checkOverride(); err != nil {
		return err
	}
	behavior := inst.Behavior()
	if override := inst.Block.Entity.EntityOverride; override != nil {
		entity, _ := behavior.Get("minecraft:entity")
		behavior.Set("minecraft:entity", merge.Objects(entity.(*document.Object), override))
	}
	behaviorPath := p.EntityBehaviorFile(inst.Name())
	if err := pack.CreateDocument(behaviorPath, behavior); err != nil {
		return err
	}

	if inst.Block.Entity.HasSpawnEggTexture {
		subdir, err := inst.displaySubdir()
		if err != nil {
			return err
		}
		texture := inst.Block.Entity.SpawnEggTexture + inst.Suffix()
		if err := pack.WriteDocument(p.EntityDisplayFile(subdir, inst.Name()), inst.Display(texture)); err != nil {
			return err
		}
	} else {
		logger.Warn("The spawn_egg_texture is not defined for a block entity; skipping its display entity.",
			"entity", inst.FullName(), "path", inst.Group.File, "block", inst.Block.Locator.String())
	}

	if layers := inst.AttachableLayers(); len(layers) > 0 {
		if _, err := c.Attachables.Compile(ctx, inst.Group.File, layers, inst.SpawnEggFullName(), inst.SpawnEgg()); err != nil {
			return err
		}
	}

	if err := c.Registry.Controllers.Add(inst.ControllerName(), inst.Controller()); err != nil {
		return err
	}
	logger.Debug("Block entity generated.", "entity", inst.FullName(), "path", behaviorPath)
	return nil
}
