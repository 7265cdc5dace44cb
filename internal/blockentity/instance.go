// Package blockentity generates the companion placement entities of blocks
// with variants or a rotation scheme. Each entity is spawned from its spawn
// egg, reads the orientation of the placer, sets the matching block state
// and despawns.
package blockentity

import (
	"strings"

	"github.com/specialistvlad/blockgen/internal/attachable"
	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/variant"
)

// Instance is one companion entity: a point in the cross product of the
// block's variant groups. A block with only a rotation scheme has a single
// instance with an empty selection.
type Instance struct {
	Group     *config.Group
	Block     *config.Block
	Selection variant.Selection
}

// Instances returns the companion entities of b in cross-product order, or
// nil when b needs none.
func Instances(g *config.Group, b *config.Block) []*Instance {
	if !b.HasEntities() {
		return nil
	}
	out := make([]*Instance, 0, variant.Count(b.Groups))
	for sel := range variant.Product(b.Groups) {
		out = append(out, &Instance{Group: g, Block: b, Selection: sel})
	}
	return out
}

// Suffix is appended to the names derived from the block: "" without
// variants, otherwise the separator followed by the id suffixes.
func (i *Instance) Suffix() string {
	if len(i.Selection) == 0 {
		return ""
	}
	return variant.Separator + i.Selection.Suffix()
}

func (i *Instance) Name() string { return i.Block.Name + i.Suffix() }

func (i *Instance) FullName() string { return i.Group.FullName(i.Name()) }

// SpawnEgg is the name of the item that spawns the entity.
func (i *Instance) SpawnEgg() string { return i.Name() + "_spawn_egg" }

func (i *Instance) SpawnEggFullName() string { return i.FullName() + "_spawn_egg" }

// ControllerName is the animation controller that places the block.
func (i *Instance) ControllerName() string {
	return "controller.animation." + pack.Dir + "." + i.Name() + ".place"
}

// Guard is the permutation condition matching the block states of i.
func (i *Instance) Guard() string {
	return i.Selection.Guard(i.Group.Namespace)
}

// AttachableLayers returns the attachable of the block followed by those of
// the selected variants, lowest priority first.
func (i *Instance) AttachableLayers() []attachable.Layer {
	var layers []attachable.Layer
	if a := i.Block.Entity.Attachable; a != nil {
		layers = append(layers, attachable.Layer{Data: a, Locator: i.Block.Entity.Locator.Key("attachable")})
	}
	for _, v := range i.Selection {
		if v.Attachable != nil {
			layers = append(layers, attachable.Layer{
				Data:    v.Attachable,
				Locator: v.Locator.Key("block_entity_properties", "attachable"),
			})
		}
	}
	return layers
}

// Translation substitutes the {group} placeholders of text with the
// translations of the selected variants. Variants without a translation
// leave their placeholder as is.
func (i *Instance) Translation(text string) string {
	for _, v := range i.Selection {
		if v.HasTranslation {
			text = strings.ReplaceAll(text, "{"+v.Group+"}", v.Translation)
		}
	}
	return text
}
