package blockentity

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/rotation"
)

// CanPlaceIn lists the blocks a placement entity may replace.
var CanPlaceIn = []string{"air", "tallgrass", "water", "lava"}

// DespawnEvent removes the placement entity.
const DespawnEvent = "shapescape:despawn"

// PlaceCommands returns the on_entry commands of the set_block state. The
// entity faces the nearest player, checks it stands in a replaceable block,
// gives the spawn egg back when it does not, otherwise plays the place
// sound and sets the block with the states of the instance and, for
// rotating blocks, the rotation bucket of the entity. It always despawns.
func (i *Instance) PlaceCommands() []string {
	ns := i.Group.Namespace
	cmds := []string{"/tp @s ~ ~ ~ facing @p"}
	for _, b := range CanPlaceIn {
		cmds = append(cmds, fmt.Sprintf("/execute if block ~ ~ ~ %s run tag @s add can_place", b))
	}
	cmds = append(cmds,
		fmt.Sprintf("/execute unless entity @s[tag=can_place] run give @p %s", i.SpawnEggFullName()),
		fmt.Sprintf("/execute if entity @s[tag=can_place] run playsound %s @a ~ ~ ~ 1 1", i.Block.Entity.PlaceSound),
	)

	block := i.Group.FullName(i.Block.Name)
	states := i.Selection.BlockStates(ns)
	scheme := i.Block.Rotation
	if scheme == rotation.None {
		cmds = append(cmds, fmt.Sprintf("/execute if entity @s[tag=can_place] run setblock ~ ~ ~ %s[%s]",
			block, strings.Join(states, ",")))
	} else {
		cmds = append(cmds, scheme.TagCommands()...)
		for _, p := range scheme.Placements() {
			items := append(append([]string(nil), states...), fmt.Sprintf("%q=%d", rotation.StateName(ns), p.State))
			cmds = append(cmds, fmt.Sprintf("/execute if entity @s[tag=can_place,tag=%s] run setblock ~ ~ ~ %s[%s]",
				p.Tag, block, strings.Join(items, ",")))
		}
	}
	return append(cmds, "/event entity @s "+DespawnEvent)
}

// Controller returns the animation controller body of the instance: an
// unconditional transition from default to set_block.
func (i *Instance) Controller() *document.Object {
	return document.ObjectOf(
		"initial_state", "default",
		"states", document.ObjectOf(
			"default", document.ObjectOf(
				"transitions", document.ArrayOf(document.ObjectOf("set_block", "1.0")),
			),
			"set_block", document.ObjectOf(
				"on_entry", i.PlaceCommands(),
			),
		),
	)
}
