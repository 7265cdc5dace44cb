package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var groupFiles = map[string]string{
	"data/scope.json":                `{"hardness": 1, "wood": "oak"}`,
	"data/furniture/_scope.yaml":     "wood: birch\n",
	"data/furniture/table.json":      `{"format_version": "1.20.0", "minecraft:block": {"components": {"minecraft:destructible_by_mining": {"seconds_to_destroy": "${hardness}"}}}}`,
	"data/furniture/_blocks_data.json": `{
		"namespace": "cb",
		"blocks": {
			"table": {
				"block_template": "table.json",
				"sound": "wood",
				"texture": "${wood}_table",
				"self_drop": true,
				"translation": "Table"
			},
			"chair": {
				"block_template": "table.json",
				"sound": "wood",
				"rotation_type": "rotate_front_vertical",
				"translation": "Chair"
			}
		}
	}`,
	"data/scratch/notes.json": `{}`,
}

func setup(t *testing.T, files map[string]string) (*App, *testutil.SafeBuffer, string) {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFiles(t, root, files)
	cfg, err := NewConfig(Config{
		DataPath: filepath.Join(root, "data"),
		PackPath: filepath.Join(root, "pack"),
	})
	require.NoError(t, err)
	a, logs := SetupAppTest(t, cfg)
	return a, logs, filepath.Join(root, "pack")
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{DataPath: "data/custom_blocks", PackPath: "."})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data/custom_blocks", "scope.json"), cfg.ScopePath)

	cfg, err = NewConfig(Config{DataPath: "d", PackPath: ".", ScopePath: "s.json"})
	require.NoError(t, err)
	assert.Equal(t, "s.json", cfg.ScopePath)

	_, err = NewConfig(Config{PackPath: "."})
	assert.Error(t, err)
	_, err = NewConfig(Config{DataPath: "d"})
	assert.Error(t, err)
}

func TestRun_GeneratesPack(t *testing.T) {
	a, logs, root := setup(t, groupFiles)
	require.NoError(t, a.Run(context.Background()))
	p := pack.New(root)

	testutil.AssertDocument(t, p.BlockFile("table"), `{
		"format_version": "1.20.0",
		"minecraft:block": {
			"components": {
				"minecraft:destructible_by_mining": {"seconds_to_destroy": 1},
				"minecraft:loot": "loot_tables/cb2/table.loot.json"
			},
			"permutations": [],
			"description": {"states": {}, "identifier": "cb:table"}
		}
	}`)
	testutil.AssertDocument(t, p.BlocksJSON(), `{
		"format_version": [1, 16, 0],
		"cb:table": {"sound": "wood", "textures": "birch_table"},
		"cb:chair": {"sound": "wood"}
	}`)

	for _, path := range []string{
		p.LootFile("table"),
		p.EntityBehaviorFile("chair"),
		p.AnimationControllers(),
		p.Lang(),
	} {
		ok, err := pack.Exists(path)
		require.NoError(t, err)
		assert.True(t, ok, "%s should exist", path)
	}
	testutil.AssertNoFile(t, p.Animations())
	testutil.AssertNoFile(t, p.CubeGeometry())

	assert.Contains(t, logs.String(), "Generation finished.")
	assert.Contains(t, logs.String(), "spawn_egg_texture")
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing global scope", func(t *testing.T) {
		files := map[string]string{"data/furniture/_scope.json": `{}`}
		a, _, _ := setup(t, files)
		err := a.Run(context.Background())
		assert.True(t, errors.Is(err, generr.ErrIO), "got %v", err)
	})

	t.Run("block failure stops the run", func(t *testing.T) {
		files := map[string]string{}
		for k, v := range groupFiles {
			files[k] = v
		}
		files["data/furniture/table.json"] = `{"minecraft:block": {"description": {"identifier": "x:y"}}}`
		a, _, root := setup(t, files)

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, generr.ErrDuplicate))
		assert.Contains(t, err.Error(), "cb:table")
		testutil.AssertNoFile(t, pack.New(root).BlocksJSON())
	})
}
