package recipe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blockgen/internal/blockentity"
	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/registry"
	"github.com/specialistvlad/blockgen/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shaped = `{
	"format_version": "1.20.0",
	"minecraft:recipe_shaped": {
		"tags": ["crafting_table"],
		"pattern": ["##", "##"],
		"key": {"#": {"item": "minecraft:planks"}},
		"result": {"count": "${count}"}
	}
}`

type fixture struct {
	c     *Compiler
	p     *pack.Pack
	g     *config.Group
	scope *document.Object
}

func setup(t *testing.T, recipeTemplate, data string) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crate.recipe.json"), []byte(recipeTemplate), 0o644))
	doc, err := document.Parse([]byte(data))
	require.NoError(t, err)
	g, err := config.Parse(filepath.Join(dir, config.DataFile), doc)
	require.NoError(t, err)

	p := pack.New(t.TempDir())
	r, err := registry.New(context.Background(), p, nil)
	require.NoError(t, err)
	return &fixture{c: New(r, template.NewHCL()), p: p, g: g, scope: document.ObjectOf("count", 4)}
}

func (f *fixture) compile(t *testing.T, i int) ([]string, error) {
	t.Helper()
	b := f.g.Blocks[i]
	return f.c.Compile(context.Background(), f.g, b, f.scope, blockentity.Instances(f.g, b))
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	v, ok, err := pack.ReadDocument(f.p.RecipeFile(name))
	require.NoError(t, err)
	require.True(t, ok, "recipe %s should exist", name)
	return string(document.MarshalCompact(v))
}

func TestCompile_PlainBlock(t *testing.T) {
	f := setup(t, shaped, `{"namespace": "cb", "blocks": {
		"crate": {
			"block_template": "crate.json", "recipe_template": "crate.recipe.json", "sound": "wood",
			"recipe_template_override": {"result": {"count": 8}}
		}
	}}`)

	paths, err := f.compile(t, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{f.p.RecipeFile("crate")}, paths)
	assert.Equal(t,
		`{"format_version":"1.20.0","minecraft:recipe_shaped":{"tags":["crafting_table"],"pattern":["##","##"],"key":{"#":{"item":"minecraft:planks"}},"result":{"count":8,"item":"cb:crate"},"description":{"identifier":"cb:crate"}}}`,
		f.read(t, "crate"))
}

func TestCompile_InstancesWithOverlays(t *testing.T) {
	f := setup(t, `{"minecraft:recipe_furnace": {"tags": ["furnace"], "input": "minecraft:log"}}`, `{"namespace": "cb", "blocks": {
		"crate": {
			"block_template": "crate.json", "recipe_template": "crate.recipe.json", "sound": "wood",
			"recipe_template_override": {"tags": ["smoker"]},
			"variants": {"wood": [
				{"id_suffix": "oak"},
				{"id_suffix": "birch", "recipe": {"input": "minecraft:birch_log"}}
			]}
		}
	}}`)

	_, err := f.compile(t, 0)
	require.NoError(t, err)
	assert.Equal(t,
		`{"minecraft:recipe_furnace":{"tags":["smoker"],"input":"minecraft:log","description":{"identifier":"cb:crate_oak"},"output":"cb:crate_oak_spawn_egg"}}`,
		f.read(t, "crate_oak"))
	assert.Equal(t,
		`{"minecraft:recipe_furnace":{"tags":["smoker"],"input":"minecraft:birch_log","description":{"identifier":"cb:crate_birch"},"output":"cb:crate_birch_spawn_egg"}}`,
		f.read(t, "crate_birch"))
}

func TestCompile_RepeatedNamesAreSuffixed(t *testing.T) {
	f := setup(t, shaped, `{"namespace": "cb", "blocks": {
		"crate": {"block_template": "crate.json", "recipe_template": "crate.recipe.json", "sound": "wood"}
	}}`)

	var got []string
	for range 3 {
		paths, err := f.compile(t, 0)
		require.NoError(t, err)
		got = append(got, paths...)
	}
	assert.Equal(t, []string{f.p.RecipeFile("crate"), f.p.RecipeFile("crate_1"), f.p.RecipeFile("crate_2")}, got)
	assert.Contains(t, f.read(t, "crate_2"), `"identifier":"cb:crate_2"`)
	assert.Contains(t, f.read(t, "crate_2"), `"item":"cb:crate"`)
}

func TestCompile_NoTemplate(t *testing.T) {
	f := setup(t, shaped, `{"namespace": "cb", "blocks": {"crate": {"block_template": "crate.json", "sound": "wood"}}}`)
	paths, err := f.compile(t, 0)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCompile_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		wantErr  error
		locator  string
	}{
		{
			name:     "unknown kind",
			template: `{"minecraft:recipe_smithing": {}}`,
			wantErr:  generr.ErrConfigShape,
			locator:  `[]`,
		},
		{
			name:     "identifier taken",
			template: `{"minecraft:recipe_shapeless": {"description": {"identifier": "x:y"}}}`,
			wantErr:  generr.ErrDuplicate,
			locator:  `["minecraft:recipe_shapeless"]["description"]["identifier"]`,
		},
		{
			name:     "result taken",
			template: `{"minecraft:recipe_brewing_mix": {"output": "minecraft:potion"}}`,
			wantErr:  generr.ErrDuplicate,
			locator:  `["minecraft:recipe_brewing_mix"]["output"]`,
		},
		{
			name:     "result crosses a scalar",
			template: `{"minecraft:recipe_shaped": {"result": "minecraft:stick"}}`,
			wantErr:  generr.ErrConfigShape,
			locator:  `["minecraft:recipe_shaped"]["result"]["item"]`,
		},
		{
			name:     "not an object",
			template: `[]`,
			wantErr:  generr.ErrConfigShape,
		},
		{
			name:     "template error",
			template: `{"minecraft:recipe_shaped": {"x": "${missing}"}}`,
			wantErr:  generr.ErrTemplate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setup(t, tc.template, `{"namespace": "cb", "blocks": {
				"crate": {"block_template": "crate.json", "recipe_template": "crate.recipe.json", "sound": "wood"}
			}}`)
			_, err := f.compile(t, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)

			var gerr *generr.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, f.g.Blocks[0].RecipeTemplate, gerr.File)
			if tc.locator != "" {
				assert.Equal(t, tc.locator, gerr.Locator)
			}
		})
	}
}

func TestCompile_MissingTemplateFile(t *testing.T) {
	f := setup(t, shaped, `{"namespace": "cb", "blocks": {
		"crate": {"block_template": "crate.json", "recipe_template": "nope.json", "sound": "wood"}
	}}`)
	_, err := f.compile(t, 0)
	assert.True(t, errors.Is(err, generr.ErrIO))
}
