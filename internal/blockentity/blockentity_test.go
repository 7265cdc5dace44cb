package blockentity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseGroup(t *testing.T, dir, src string) *config.Group {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	g, err := config.Parse(filepath.Join(dir, config.DataFile), doc)
	require.NoError(t, err)
	return g
}

func compact(v document.Value) string { return string(document.MarshalCompact(v)) }

const crateData = `{
	"namespace": "cb",
	"blocks": {
		"crate": {
			"block_template": "templates/wood/crate.json",
			"sound": "wood",
			"variants": {
				"size": [{"id_suffix": "small", "translation": "Small"}, {"id_suffix": "large", "translation": "Large"}],
				"color": [{}, {}]
			},
			"block_entity_properties": {"spawn_egg_texture": "crate_egg"}
		},
		"pillar": {
			"block_template": "pillar.json",
			"sound": "stone",
			"rotation_type": "align_front_xz",
			"block_entity_properties": {"place_sound": "place.pillar"}
		},
		"plain": {"block_template": "plain.json", "sound": "stone"}
	}
}`

func TestInstances(t *testing.T) {
	g := parseGroup(t, "data", crateData)
	crate, pillar, plain := g.Blocks[0], g.Blocks[1], g.Blocks[2]

	var names, guards []string
	for _, inst := range Instances(g, crate) {
		names = append(names, inst.Name())
		guards = append(guards, inst.Guard())
	}
	assert.Equal(t, []string{"crate_small_0", "crate_small_1", "crate_large_0", "crate_large_1"}, names)
	assert.Equal(t, "q.block_property('cb:size') == 1 && q.block_property('cb:color') == 0", guards[2])
	assert.Len(t, map[string]bool{guards[0]: true, guards[1]: true, guards[2]: true, guards[3]: true}, 4)

	rotOnly := Instances(g, pillar)
	require.Len(t, rotOnly, 1)
	assert.Equal(t, "pillar", rotOnly[0].Name())
	assert.Equal(t, "cb:pillar_spawn_egg", rotOnly[0].SpawnEggFullName())
	assert.Equal(t, "controller.animation.cb2.pillar.place", rotOnly[0].ControllerName())
	assert.Equal(t, "1.0", rotOnly[0].Guard())

	assert.Nil(t, Instances(g, plain))
}

func TestInstance_Translation(t *testing.T) {
	g := parseGroup(t, "data", crateData)
	insts := Instances(g, g.Blocks[0])
	assert.Equal(t, "Large crate {color}", insts[2].Translation("{size} crate {color}"))
}

func TestPlaceCommands_NoRotation(t *testing.T) {
	g := parseGroup(t, "data", crateData)
	inst := Instances(g, g.Blocks[0])[1]

	assert.Equal(t, []string{
		"/tp @s ~ ~ ~ facing @p",
		"/execute if block ~ ~ ~ air run tag @s add can_place",
		"/execute if block ~ ~ ~ tallgrass run tag @s add can_place",
		"/execute if block ~ ~ ~ water run tag @s add can_place",
		"/execute if block ~ ~ ~ lava run tag @s add can_place",
		"/execute unless entity @s[tag=can_place] run give @p cb:crate_small_1_spawn_egg",
		"/execute if entity @s[tag=can_place] run playsound use.wood @a ~ ~ ~ 1 1",
		`/execute if entity @s[tag=can_place] run setblock ~ ~ ~ cb:crate["cb:size"=0,"cb:color"=1]`,
		"/event entity @s shapescape:despawn",
	}, inst.PlaceCommands())
}

func TestPlaceCommands_Rotation(t *testing.T) {
	g := parseGroup(t, "data", crateData)
	cmds := Instances(g, g.Blocks[1])[0].PlaceCommands()

	assert.Contains(t, cmds, "/execute if entity @s[tag=can_place] run playsound place.pillar @a ~ ~ ~ 1 1")
	assert.Contains(t, cmds, "/tag @s[rym=-45,ry=45] add z_aligned")
	assert.Contains(t, cmds, "/tag @s[tag=!z_aligned,rym=45,ry=135] add x_aligned")
	assert.Contains(t, cmds, `/execute if entity @s[tag=can_place,tag=x_aligned] run setblock ~ ~ ~ cb:pillar["cb:rotation"=0]`)
	assert.Contains(t, cmds, `/execute if entity @s[tag=can_place,tag=z_aligned] run setblock ~ ~ ~ cb:pillar["cb:rotation"=1]`)
	assert.Equal(t, "/event entity @s shapescape:despawn", cmds[len(cmds)-1])
}

func newCompiler(t *testing.T) (*Compiler, *pack.Pack) {
	t.Helper()
	p := pack.New(t.TempDir())
	r, err := registry.New(context.Background(), p, nil)
	require.NoError(t, err)
	return New(r), p
}

func TestCompile(t *testing.T) {
	c, p := newCompiler(t)
	g := parseGroup(t, "data", crateData)
	inst := Instances(g, g.Blocks[0])[0]

	require.NoError(t, c.Compile(context.Background(), inst))

	v, ok, err := pack.ReadDocument(p.EntityBehaviorFile("crate_small_0"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, compact(inst.Behavior()), compact(v))

	v, ok, err = pack.ReadDocument(p.EntityDisplayFile(filepath.Join("templates", "wood"), "crate_small_0"))
	require.NoError(t, err)
	require.True(t, ok)
	tex, _ := document.Lookup(v, "minecraft:client_entity", "description", "spawn_egg", "texture")
	assert.Equal(t, `"crate_egg_small_0"`, compact(tex))

	body, ok := c.Registry.Controllers.Get("controller.animation.cb2.crate_small_0.place")
	require.True(t, ok)
	assert.Equal(t, compact(inst.Controller()), compact(body))

	// No attachable was configured.
	exists, err := pack.Exists(p.AttachableFile(inst.SpawnEgg()))
	require.NoError(t, err)
	assert.False(t, exists)

	// The behavior file is exclusive.
	err = c.Compile(context.Background(), inst)
	assert.True(t, errors.Is(err, generr.ErrIO))
}

func TestCompile_MissingDisplayTextureWarns(t *testing.T) {
	c, p := newCompiler(t)
	g := parseGroup(t, "data", crateData)
	inst := Instances(g, g.Blocks[1])[0]

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, c.Compile(ctx, inst))

	assert.Contains(t, logs.String(), "spawn_egg_texture")
	exists, err := pack.Exists(p.EntityDisplayFile(".", "pillar"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCompile_EntityOverride(t *testing.T) {
	const data = `{
		"namespace": "cb",
		"blocks": {
			"door": {
				"block_template": "door.json",
				"sound": "wood",
				"rotation_type": "rotate_front_vertical",
				"block_entity_properties": {"entity_override": %s}
			}
		}
	}`

	t.Run("merges into the entity", func(t *testing.T) {
		c, p := newCompiler(t)
		g := parseGroup(t, "data", fmt.Sprintf(data, `{"components": {"minecraft:timer": {"time": 2}, "minecraft:scale": {"value": 0.5}}}`))
		require.NoError(t, c.Compile(context.Background(), Instances(g, g.Blocks[0])[0]))

		v, _, err := pack.ReadDocument(p.EntityBehaviorFile("door"))
		require.NoError(t, err)
		timer, _ := document.Lookup(v, "minecraft:entity", "components", "minecraft:timer")
		assert.Equal(t, `{"time":2,"time_down_event":{"event":"shapescape:despawn","target":"self"}}`, compact(timer))
		_, ok := document.Lookup(v, "minecraft:entity", "components", "minecraft:scale")
		assert.True(t, ok)
	})

	for _, key := range ProtectedDescriptionKeys {
		t.Run("rejects "+key, func(t *testing.T) {
			c, p := newCompiler(t)
			g := parseGroup(t, "data", fmt.Sprintf(data, `{"description": {"`+key+`": true}}`))
			err := c.Compile(context.Background(), Instances(g, g.Blocks[0])[0])
			require.Error(t, err)
			assert.True(t, errors.Is(err, generr.ErrConfigShape))

			var gerr *generr.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, `["blocks"]["door"]["block_entity_properties"]["entity_override"]["description"]["`+key+`"]`, gerr.Locator)

			exists, _ := pack.Exists(p.EntityBehaviorFile("door"))
			assert.False(t, exists, "nothing is written for a rejected override")
		})
	}
}
