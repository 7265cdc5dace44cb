package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"gopkg.in/yaml.v3"
)

// ScopeExtensions are the file formats accepted for scope files, in lookup
// order.
var ScopeExtensions = []string{".json", ".jsonc", ".yaml", ".yml", ".hcl"}

// LoadScope reads a scope file. The format follows the extension: JSON or
// JSONC, YAML, or an HCL file of top-level attributes. The top level must be
// an object.
func LoadScope(path string) (*document.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, generr.IOErr("Failed to read the scope file.").At(path, nil).Wrap(err)
	}

	var v document.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v, err = parseYAML(data)
	case ".hcl":
		v, err = parseHCL(data, path)
	default:
		v, err = document.Parse(data)
	}
	if err != nil {
		return nil, generr.Shape("Failed to parse the scope file.").At(path, nil).Wrap(err)
	}
	obj, ok := v.(*document.Object)
	if !ok {
		return nil, generr.Shape("The scope file must hold an object, got %s.", v.Kind()).At(path, document.Root)
	}
	return obj, nil
}

// FindScope returns the path of the scope file called base (without
// extension) inside dir, or "" when there is none. More than one candidate
// is an error, since it is unclear which one applies.
func FindScope(dir, base string) (string, error) {
	var found []string
	for _, ext := range ScopeExtensions {
		p := filepath.Join(dir, base+ext)
		info, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", generr.IOErr("Failed to inspect the scope file.").At(p, nil).Wrap(err)
		}
		if !info.IsDir() {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	}
	return "", generr.Shape("Found more than one scope file: %s.", strings.Join(found, ", ")).At(dir, nil)
}

// Overlay returns a new scope holding every variable of base, with the
// variables of local replacing those of the same name.
func Overlay(base, local *document.Object) *document.Object {
	out := document.NewObject()
	for _, s := range []*document.Object{base, local} {
		if s == nil {
			continue
		}
		for k, v := range s.All() {
			out.Set(k, v)
		}
	}
	return out
}

func parseYAML(data []byte) (document.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		// Empty file.
		return document.NewObject(), nil
	}
	return fromYAML(&root)
}

func fromYAML(n *yaml.Node) (document.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return document.NewObject(), nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		obj := document.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			item, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, item)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := document.NewArray()
		for _, c := range n.Content {
			item, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			arr.Append(item)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return document.Null(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return document.Bool(b), nil
		case "!!int":
			var i int
			if err := n.Decode(&i); err != nil {
				return nil, err
			}
			return document.Int(i), nil
		case "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, err
			}
			return document.Float(f), nil
		}
		return document.String(n.Value), nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func parseHCL(data []byte, filename string) (document.Value, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	// Attributes come back as a map; restore the order of the file.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	evalCtx := &hcl.EvalContext{Functions: Functions()}
	obj := document.NewObject()
	for _, a := range ordered {
		val, diags := a.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		item, err := FromCty(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name, err)
		}
		obj.Set(a.Name, item)
	}
	return obj, nil
}
