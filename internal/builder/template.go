package builder

import (
	"context"
	"errors"

	"github.com/specialistvlad/blockgen/internal/blockentity"
	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/merge"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/rotation"
	"github.com/specialistvlad/blockgen/internal/template"
	"github.com/specialistvlad/blockgen/internal/variant"
)

const blockKey = "minecraft:block"

var (
	identifierPath   = []string{blockKey, "description", "identifier"}
	statesPath       = []string{blockKey, "description", "states"}
	permutationsPath = []string{blockKey, "permutations"}
	lootPath         = []string{blockKey, "components", "minecraft:loot"}
)

// blockTemplate is an evaluated block document under construction.
type blockTemplate struct {
	file         string
	root         *document.Object
	states       *document.Object
	permutations *document.Array
}

// evaluate runs the template phase: evaluation, override, identifier and
// the permutations and states containers.
func (bb *BlockBuilder) evaluate(ctx context.Context, g *config.Group, b *config.Block, scope *document.Object) (*blockTemplate, error) {
	file := b.Template
	v, err := template.EvaluateFile(ctx, bb.Evaluator, file, scope)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*document.Object)
	if !ok {
		return nil, generr.Shape("The block template must be an object.").At(file, document.Root)
	}

	// Best effort only. A template that breaks these paths fails the kind
	// checks below.
	_, _ = document.EnsurePath(root, document.NewArray(), permutationsPath...)
	_, _ = document.EnsurePath(root, document.NewObject(), statesPath...)

	if b.TemplateOverride != nil {
		root = merge.Objects(root, document.ObjectOf(blockKey, b.TemplateOverride))
	}

	if err := document.SetPath(root, document.String(g.FullName(b.Name)), identifierPath...); err != nil {
		return nil, insertError("Failed to set the identifier of the block.", err).
			At(file, document.Root.Key(identifierPath...))
	}

	t := &blockTemplate{file: file, root: root}
	perms, _ := document.Lookup(root, permutationsPath...)
	if t.permutations, ok = perms.(*document.Array); !ok {
		return nil, generr.Shape("The permutations property must be a list.").At(file, document.Root.Key(permutationsPath...))
	}
	states, _ := document.Lookup(root, statesPath...)
	if t.states, ok = states.(*document.Object); !ok {
		return nil, generr.Shape("The states property must be an object.").At(file, document.Root.Key(statesPath...))
	}
	return t, nil
}

// addVariantStates adds the state and permutations of every variant group.
// A state of the same name already in the template is replaced.
func (t *blockTemplate) addVariantStates(g *config.Group, b *config.Block) {
	for _, vg := range b.Groups {
		for _, p := range vg.Permutations(g.Namespace) {
			t.permutations.Append(p)
		}
		t.states.Set(variant.PropertyName(g.Namespace, vg.Name), vg.State())
	}
}

// addRotation adds the rotation state and permutations of the block's
// scheme, if any. The rotation state must not be defined by the template.
func (t *blockTemplate) addRotation(g *config.Group, b *config.Block) error {
	if b.Rotation == rotation.None {
		return nil
	}
	name := rotation.StateName(g.Namespace)
	if t.states.Has(name) {
		return generr.Dup("Can't add the %s state because it already exists.", name).
			At(t.file, document.Root.Key(statesPath...).Key(name))
	}
	for _, p := range b.Rotation.Permutations(g.Namespace) {
		t.permutations.Append(p)
	}
	t.states.Set(name, b.Rotation.State())
	return nil
}

// addLoot points the block's loot component at the self-drop table name.
func (t *blockTemplate) addLoot(name string) error {
	if err := document.SetPath(t.root, document.String(pack.LootRef(name)), lootPath...); err != nil {
		return insertError("Can't add a self_drop loot table because the block already has a loot component.", err).
			At(t.file, document.Root.Key(lootPath...))
	}
	return nil
}

// addSharedVariant appends the fallback permutation of inst: its guard,
// the self-drop loot table and the shared_variant overlays of the block
// and of the selected variants. It reports whether the permutation drops
// the instance's loot table.
func (t *blockTemplate) addSharedVariant(inst *blockentity.Instance) bool {
	b := inst.Block
	shared := document.NewObject()
	if b.SharedVariant != nil {
		shared = b.SharedVariant.Clone().(*document.Object)
	}
	for _, v := range inst.Selection {
		if v.SharedVariant != nil && v.SharedVariant.Len() > 0 {
			shared = merge.Objects(shared, v.SharedVariant)
		}
	}

	drops := b.SelfDrop == nil && shared.Len() > 0 || b.SelfDrop != nil && *b.SelfDrop
	components := document.NewObject()
	if drops {
		components.Set("minecraft:loot", document.String(pack.LootRef(inst.Name())))
	}
	for k, v := range shared.All() {
		components.Set(k, v)
	}
	t.permutations.Append(document.ObjectOf(
		"condition", inst.Guard(),
		"components", components,
	))
	return drops
}

// insertError classifies a failed document.SetPath.
func insertError(message string, err error) *generr.Error {
	if errors.Is(err, document.ErrExists) {
		return generr.Dup("%s The property is already defined.", message)
	}
	return generr.Shape("%s", message).Wrap(err)
}
