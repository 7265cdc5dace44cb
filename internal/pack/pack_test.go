package pack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	p := New("out")

	assert.Equal(t, filepath.Join("out", "BP", "blocks", "cb2", "door.block.json"), p.BlockFile("door"))
	assert.Equal(t, filepath.Join("out", "BP", "entities", "cb2", "door_0.behavior.json"), p.EntityBehaviorFile("door_0"))
	assert.Equal(t, filepath.Join("out", "RP", "entity", "cb2", "doors", "door_0.entity.json"), p.EntityDisplayFile("doors", "door_0"))
	assert.Equal(t, filepath.Join("out", "RP", "textures", "attachable", "cb2", "cube_3.png"), p.AtlasFile(3))
	assert.Equal(t, filepath.Join("out", "BP", "animation_controllers", "cb2.bp_ac.json"), p.AnimationControllers())
	assert.Equal(t, filepath.Join("out", "RP", "models", "entity", "cb2_cube.geo.json"), p.CubeGeometry())
	assert.Equal(t, "loot_tables/cb2/door.loot.json", LootRef("door"))

	ref, err := p.RPRef(p.RP("textures", "blocks", "door.png"))
	require.NoError(t, err)
	assert.Equal(t, "textures/blocks/door", ref)
}

func TestDocuments(t *testing.T) {
	p := New(t.TempDir())
	path := p.BlocksJSON()

	_, ok, err := ReadDocument(path)
	require.NoError(t, err)
	assert.False(t, ok)

	doc := document.ObjectOf("format_version", []int{1, 16, 0})
	require.NoError(t, WriteDocument(path, doc))
	require.NoError(t, WriteDocument(path, doc), "plain writes replace")

	got, ok, err := ReadDocument(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, document.Equal(doc, got))

	err = CreateDocument(path, doc)
	assert.True(t, errors.Is(err, generr.ErrIO))

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, _, err = ReadDocument(path)
	assert.True(t, errors.Is(err, generr.ErrConfigShape))
}

func TestAppendText(t *testing.T) {
	p := New(t.TempDir())
	require.NoError(t, AppendText(p.Lang(), "a=1\n"))
	require.NoError(t, AppendText(p.Lang(), "b=2\n"))

	data, err := os.ReadFile(p.Lang())
	require.NoError(t, err)
	assert.Equal(t, "a=1\nb=2\n", string(data))

	ok, err := Exists(p.Lang())
	require.NoError(t, err)
	assert.True(t, ok)
}
