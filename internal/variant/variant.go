// Package variant models the variant groups of a block: named, ordered
// lists of alternatives, each contributing one integer state, and the cross
// product of one choice per group.
package variant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
)

// Separator joins the id suffixes of a selection into an entity name, so it
// may not appear inside a suffix.
const Separator = "_"

// Variant is one alternative of a group.
type Variant struct {
	Group string
	// Index is the position in the group and the state value that selects
	// the variant at runtime.
	Index    int
	IDSuffix string

	Components    *document.Object
	SharedVariant *document.Object
	Recipe        *document.Object
	Attachable    *document.Object

	Translation    string
	HasTranslation bool

	Locator document.Path
}

// Group is a named variant list.
type Group struct {
	Name     string
	Variants []*Variant
	Locator  document.Path
}

// Len returns the number of variants in g.
func (g *Group) Len() int { return len(g.Variants) }

// Parse builds the groups of a block from its "variants" object, keeping the
// declared order. file and at locate the object for error messages.
func Parse(file string, variants *document.Object, at document.Path) ([]*Group, error) {
	if variants == nil {
		return nil, nil
	}
	groups := make([]*Group, 0, variants.Len())
	for name, raw := range variants.All() {
		loc := at.Key(name)
		list, ok := raw.(*document.Array)
		if !ok {
			return nil, generr.Shape("The variant group must be a list.").At(file, loc)
		}
		if list.Len() == 0 {
			return nil, generr.Shape("The variant group %q has no variants.", name).At(file, loc)
		}
		g := &Group{Name: name, Locator: loc}
		suffixes := make(map[string]int, list.Len())
		for i, item := range list.All() {
			v, err := parseVariant(file, name, i, item, loc.Index(i))
			if err != nil {
				return nil, err
			}
			if prev, dup := suffixes[v.IDSuffix]; dup {
				return nil, generr.Dup("The id_suffix %q is already used by variant %d of group %q.", v.IDSuffix, prev, name).
					At(file, v.Locator.Key("id_suffix"))
			}
			suffixes[v.IDSuffix] = i
			g.Variants = append(g.Variants, v)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func parseVariant(file, group string, index int, raw document.Value, loc document.Path) (*Variant, error) {
	obj, ok := raw.(*document.Object)
	if !ok {
		return nil, generr.Shape("The variant must be an object.").At(file, loc)
	}
	v := &Variant{Group: group, Index: index, IDSuffix: strconv.Itoa(index), Locator: loc}

	if raw, ok := obj.Get("id_suffix"); ok {
		s, isStr := stringOf(raw)
		if !isStr {
			return nil, generr.Shape("The id_suffix property must be a string.").At(file, loc.Key("id_suffix"))
		}
		if s == "" || strings.Contains(s, Separator) {
			return nil, generr.Shape("The id_suffix property must be non-empty and may not contain %q.", Separator).
				At(file, loc.Key("id_suffix"))
		}
		v.IDSuffix = s
	}

	var err error
	if v.Components, err = optionalObject(file, obj, loc, "components"); err != nil {
		return nil, err
	}
	if v.SharedVariant, err = optionalObject(file, obj, loc, "shared_variant"); err != nil {
		return nil, err
	}
	if v.Recipe, err = optionalObject(file, obj, loc, "recipe"); err != nil {
		return nil, err
	}
	props, err := optionalObject(file, obj, loc, "block_entity_properties")
	if err != nil {
		return nil, err
	}
	if props != nil {
		if v.Attachable, err = optionalObject(file, props, loc.Key("block_entity_properties"), "attachable"); err != nil {
			return nil, err
		}
	}
	if raw, ok := obj.Get("translation"); ok {
		s, isStr := stringOf(raw)
		if !isStr {
			return nil, generr.Shape("The translation property must be a string.").At(file, loc.Key("translation"))
		}
		v.Translation, v.HasTranslation = s, true
	}
	return v, nil
}

func stringOf(v document.Value) (string, bool) {
	s, ok := v.(document.Scalar)
	if !ok {
		return "", false
	}
	return s.AsString()
}

func optionalObject(file string, obj *document.Object, at document.Path, key string) (*document.Object, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	child, ok := raw.(*document.Object)
	if !ok {
		return nil, generr.Shape("The %s property must be an object.", key).At(file, at.Key(key))
	}
	return child, nil
}

// PropertyName returns the fully qualified state name of a group.
func PropertyName(namespace, group string) string {
	return namespace + ":" + group
}

// Condition returns the Molang guard that is true when group is set to
// index.
func Condition(namespace, group string, index int) string {
	return fmt.Sprintf("q.block_property('%s') == %d", PropertyName(namespace, group), index)
}

// State returns the state definition of g: {"values": {"min": 0, "max": n-1}}.
func (g *Group) State() *document.Object {
	return document.ObjectOf("values", document.ObjectOf("min", 0, "max", len(g.Variants)-1))
}

// Permutations returns one permutation per variant, guarded by the variant
// index and carrying a copy of its components (or an empty object).
func (g *Group) Permutations(namespace string) []*document.Object {
	out := make([]*document.Object, 0, len(g.Variants))
	for _, v := range g.Variants {
		components := document.NewObject()
		if v.Components != nil {
			components = v.Components.Clone().(*document.Object)
		}
		out = append(out, document.ObjectOf(
			"condition", Condition(namespace, g.Name, v.Index),
			"components", components,
		))
	}
	return out
}
