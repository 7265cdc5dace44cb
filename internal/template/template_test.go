package template

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) document.Value {
	t.Helper()
	v, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func evaluate(t *testing.T, src, scope string) (document.Value, error) {
	t.Helper()
	return NewHCL().Evaluate(context.Background(), parse(t, src), parse(t, scope).(*document.Object), "tpl.json")
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name  string
		src   string
		scope string
		want  string
	}{
		{
			name:  "plain strings pass through",
			src:   `{"a": "q.block_property('x') == 1 && true", "b": [1, 2.5, null]}`,
			scope: `{}`,
			want:  `{"a":"q.block_property('x') == 1 && true","b":[1,2.5,null]}`,
		},
		{
			name:  "single interpolation keeps the native value",
			src:   `{"size": "${size * 2}", "hard": "${hard}", "tags": "${tags}"}`,
			scope: `{"size": 4, "hard": true, "tags": ["a", "b"]}`,
			want:  `{"size":8,"hard":true,"tags":["a","b"]}`,
		},
		{
			name:  "mixed template renders a string",
			src:   `{"name": "door_${color}_${size}"}`,
			scope: `{"color": "red", "size": 2}`,
			want:  `{"name":"door_red_2"}`,
		},
		{
			name:  "keys are evaluated",
			src:   `{"${ns}:door": {"x": 1}, "keep": 0}`,
			scope: `{"ns": "cb"}`,
			want:  `{"cb:door":{"x":1},"keep":0}`,
		},
		{
			name:  "functions",
			src:   `["${upper(name)}", "${length(items)}", "${format("%03d", n)}", "${max(1, 7, 3)}"]`,
			scope: `{"name": "oak", "items": [1, 2, 3], "n": 7}`,
			want:  `["OAK",3,"007",7]`,
		},
		{
			name:  "directives",
			src:   `{"list": "%{ for c in colors }${c};%{ endfor }"}`,
			scope: `{"colors": ["red", "blue"]}`,
			want:  `{"list":"red;blue;"}`,
		},
		{
			name:  "decimals survive",
			src:   `{"scale": "${scale / 2}"}`,
			scope: `{"scale": 0.7}`,
			want:  `{"scale":0.35}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evaluate(t, tc.src, tc.scope)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(document.MarshalCompact(got)))
		})
	}
}

func TestEvaluate_DoesNotModifyInput(t *testing.T) {
	src := parse(t, `{"a": "${x}"}`)
	scope := document.ObjectOf("x", 1)

	_, err := NewHCL().Evaluate(context.Background(), src, scope, "tpl.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":"${x}"}`, string(document.MarshalCompact(src)))
}

func TestEvaluate_UUID(t *testing.T) {
	got, err := evaluate(t, `["${uuid()}", "${uuid()}"]`, `{}`)
	require.NoError(t, err)

	arr := got.(*document.Array)
	a, _ := arr.At(0).(document.Scalar).AsString()
	b, _ := arr.At(1).(document.Scalar).AsString()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestEvaluate_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		locator string
	}{
		{"unknown variable", `{"blocks": {"door": {"sound": "${missing}"}}}`, `["blocks"]["door"]["sound"]`},
		{"syntax error", `{"a": ["${1 +}"]}`, `["a"][0]`},
		{"key is not a string", `{"${[1]}": 0}`, `["${[1]}"]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := evaluate(t, tc.src, `{}`)
			require.Error(t, err)
			assert.True(t, errors.Is(err, generr.ErrTemplate))

			var ge *generr.Error
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, "tpl.json", ge.File)
			assert.Equal(t, tc.locator, ge.Locator)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadScope_Formats(t *testing.T) {
	dir := t.TempDir()
	want := `{"namespace":"cb","count":3,"scale":0.5,"on":true,"tags":["a","b"]}`

	testCases := map[string]string{
		"scope.json": `{"namespace": "cb", "count": 3, "scale": 0.5, "on": true, "tags": ["a", "b"]}`,
		"scope.jsonc": `{
			// comment
			"namespace": "cb", "count": 3, "scale": 0.5, "on": true, "tags": ["a", "b",],
		}`,
		"scope.yaml": "namespace: cb\ncount: 3\nscale: 0.5\non: true\ntags: [a, b]\n",
		"scope.hcl":  "namespace = \"cb\"\ncount = 3\nscale = 0.5\non = true\ntags = [\"a\", \"b\"]\n",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			scope, err := LoadScope(writeFile(t, dir, name, content))
			require.NoError(t, err)
			assert.Equal(t, want, string(document.MarshalCompact(scope)))
		})
	}
}

func TestLoadScope_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScope(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, generr.ErrIO))

	_, err = LoadScope(writeFile(t, dir, "list.json", `[1, 2]`))
	assert.True(t, errors.Is(err, generr.ErrConfigShape))

	_, err = LoadScope(writeFile(t, dir, "bad.yaml", "a: [1, 2"))
	assert.True(t, errors.Is(err, generr.ErrConfigShape))
}

func TestFindScopeAndOverlay(t *testing.T) {
	dir := t.TempDir()

	p, err := FindScope(dir, "_scope")
	require.NoError(t, err)
	assert.Empty(t, p)

	writeFile(t, dir, "_scope.yaml", "color: red\n")
	p, err = FindScope(dir, "_scope")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_scope.yaml"), p)

	writeFile(t, dir, "_scope.json", `{}`)
	_, err = FindScope(dir, "_scope")
	assert.True(t, errors.Is(err, generr.ErrConfigShape))

	merged := Overlay(document.ObjectOf("ns", "cb", "color", "blue"), document.ObjectOf("color", "red", "size", 2))
	assert.Equal(t, `{"ns":"cb","color":"red","size":2}`, string(document.MarshalCompact(merged)))
}
