package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleData = `{
	"namespace": "cb",
	"blocks": {
		"crate": {
			"block_template": "templates/crate.json",
			"recipe_template": "templates/crate.recipe.json",
			"sound": "wood",
			"translation": "{size} crate",
			"self_drop": true,
			"rotation_type": "rotate_front_both",
			"variants": {
				"size": [{"id_suffix": "small", "translation": "Small"}, {"id_suffix": "large"}]
			},
			"block_entity_properties": {
				"spawn_egg_texture": "crate_egg",
				"attachable": {"assets": {"geometry": "geometry.crate", "texture": "RP:textures/crate"}}
			}
		},
		"lamp": {
			"block_template": "lamp.json",
			"sound": "glass",
			"block_entity_properties": {"place_sound": "place.lamp"}
		}
	}
}`

func parseSample(t *testing.T, src string) (*Group, error) {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return Parse(filepath.Join("data", "crates", DataFile), doc)
}

func TestParse(t *testing.T) {
	g, err := parseSample(t, sampleData)
	require.NoError(t, err)

	assert.Equal(t, "cb", g.Namespace)
	assert.Equal(t, filepath.Join("data", "crates"), g.Dir)
	assert.Equal(t, "cb:crate", g.FullName("crate"))
	require.Len(t, g.Blocks, 2)

	crate := g.Blocks[0]
	assert.Equal(t, "crate", crate.Name)
	assert.Equal(t, filepath.Join("data", "crates", "templates", "crate.json"), crate.Template)
	assert.Equal(t, filepath.Join("data", "crates", "templates", "crate.recipe.json"), crate.RecipeTemplate)
	assert.Equal(t, "wood", crate.Sound)
	assert.False(t, crate.HasTexture)
	require.NotNil(t, crate.SelfDrop)
	assert.True(t, *crate.SelfDrop)
	assert.Equal(t, rotation.RotateFrontBoth, crate.Rotation)
	require.Len(t, crate.Groups, 1)
	assert.Equal(t, "size", crate.Groups[0].Name)
	assert.True(t, crate.HasEntities())
	assert.Equal(t, "use.wood", crate.Entity.PlaceSound)
	assert.Equal(t, "crate_egg", crate.Entity.SpawnEggTexture)
	assert.NotNil(t, crate.Entity.Attachable)

	lamp := g.Blocks[1]
	assert.Nil(t, lamp.SelfDrop)
	assert.Equal(t, rotation.None, lamp.Rotation)
	assert.False(t, lamp.HasEntities())
	assert.Empty(t, lamp.RecipeTemplate)
	assert.Equal(t, "place.lamp", lamp.Entity.PlaceSound)
	assert.False(t, lamp.Entity.HasSpawnEggTexture)
}

func TestParse_SchemaErrors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		kind    error
		locator string
	}{
		{
			name:    "missing sound",
			src:     `{"namespace": "cb", "blocks": {"a": {"block_template": "a.json"}}}`,
			kind:    generr.ErrMissingProperty,
			locator: `["blocks"]["a"]`,
		},
		{
			name:    "missing namespace",
			src:     `{"blocks": {}}`,
			kind:    generr.ErrMissingProperty,
			locator: `[]`,
		},
		{
			name:    "wrong type",
			src:     `{"namespace": "cb", "blocks": {"a": {"block_template": "a.json", "sound": 1}}}`,
			kind:    generr.ErrConfigShape,
			locator: `["blocks"]["a"]["sound"]`,
		},
		{
			name:    "unknown rotation",
			src:     `{"namespace": "cb", "blocks": {"a": {"block_template": "a.json", "sound": "s", "rotation_type": "spin"}}}`,
			kind:    generr.ErrConfigShape,
			locator: `["blocks"]["a"]["rotation_type"]`,
		},
		{
			name:    "empty variant group",
			src:     `{"namespace": "cb", "blocks": {"a": {"block_template": "a.json", "sound": "s", "variants": {"c": []}}}}`,
			kind:    generr.ErrConfigShape,
			locator: `["blocks"]["a"]["variants"]["c"]`,
		},
		{
			name:    "suffix with separator",
			src:     `{"namespace": "cb", "blocks": {"a": {"block_template": "a.json", "sound": "s", "variants": {"c": [{"id_suffix": "a_b"}]}}}}`,
			kind:    generr.ErrConfigShape,
			locator: `["blocks"]["a"]["variants"]["c"][0]["id_suffix"]`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSample(t, tc.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)

			var ge *generr.Error
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, tc.locator, ge.Locator)
		})
	}
}

func TestParse_DuplicateSuffixPassesSchema(t *testing.T) {
	_, err := parseSample(t, `{"namespace": "cb", "blocks": {"a": {
		"block_template": "a.json", "sound": "s",
		"variants": {"c": [{"id_suffix": "x"}, {"id_suffix": "x"}]}
	}}}`)
	assert.True(t, errors.Is(err, generr.ErrDuplicate))
}

func TestFileLoader_EvaluatesTemplates(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	data := `{
		"namespace": "${ns}",
		"blocks": {
			"${name}": {"block_template": "t.json", "sound": "${sound}"}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DataFile), []byte(data), 0o644))
	scope := document.ObjectOf("ns", "cb", "name", "brick", "sound", "stone")

	// --- Act ---
	g, err := NewFileLoader().Load(context.Background(), dir, scope)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "cb", g.Namespace)
	require.Len(t, g.Blocks, 1)
	assert.Equal(t, "brick", g.Blocks[0].Name)
	assert.Equal(t, "stone", g.Blocks[0].Sound)
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFileLoader().Load(context.Background(), dir, nil)
	assert.True(t, errors.Is(err, generr.ErrIO))

	require.NoError(t, os.WriteFile(filepath.Join(dir, DataFile), []byte(`{"namespace": "${nope}", "blocks": {}}`), 0o644))
	_, err = NewFileLoader().Load(context.Background(), dir, document.NewObject())
	assert.True(t, errors.Is(err, generr.ErrTemplate))
}
