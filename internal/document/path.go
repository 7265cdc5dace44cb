package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrExists is returned by SetPath when the final key is already present.
	ErrExists = errors.New("value already exists")
	// ErrNotObject is returned by SetPath when a step of the path crosses
	// something that is not an object.
	ErrNotObject = errors.New("path crosses a value that is not an object")
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path locates a node inside a document, e.g. ["blocks"]["door"]["variants"][0].
type Path []Segment

// Root is the empty path.
var Root = Path(nil)

// Key returns a copy of p extended with an object key.
func (p Path) Key(keys ...string) Path {
	out := make(Path, len(p), len(p)+len(keys))
	copy(out, p)
	for _, k := range keys {
		out = append(out, Segment{Key: k})
	}
	return out
}

// Index returns a copy of p extended with an array index.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Index: i, IsIndex: true})
}

// Last returns the final object key of p, or "" when p is empty or ends in
// an index.
func (p Path) Last() string {
	if len(p) == 0 || p[len(p)-1].IsIndex {
		return ""
	}
	return p[len(p)-1].Key
}

// String renders the path in bracket notation.
func (p Path) String() string {
	if len(p) == 0 {
		return "[]"
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('[')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
		} else {
			b.WriteString(strconv.Quote(s.Key))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Lookup follows object keys starting at v.
func Lookup(v Value, keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		obj, ok := cur.(*Object)
		if !ok {
			return nil, false
		}
		cur, ok = obj.Get(k)
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// SetPath stores v at keys below root, creating missing intermediate
// objects. It never replaces an existing value: the final key must be absent
// (ErrExists) and every existing intermediate must be an object
// (ErrNotObject).
func SetPath(root Value, v Value, keys ...string) error {
	if len(keys) == 0 {
		return errors.New("empty path")
	}
	cur, ok := root.(*Object)
	if !ok {
		return fmt.Errorf("%w: root is %s", ErrNotObject, root.Kind())
	}
	for i, k := range keys[:len(keys)-1] {
		next, exists := cur.Get(k)
		if !exists {
			child := NewObject()
			cur.Set(k, child)
			cur = child
			continue
		}
		child, ok := next.(*Object)
		if !ok {
			return fmt.Errorf("%w: %s is %s", ErrNotObject, Root.Key(keys[:i+1]...), next.Kind())
		}
		cur = child
	}
	last := keys[len(keys)-1]
	if cur.Has(last) {
		return fmt.Errorf("%w at %s", ErrExists, Root.Key(keys...))
	}
	cur.Set(last, v)
	return nil
}

// EnsurePath makes sure a value of the same kind as def exists at keys,
// creating it (and intermediate objects) from def when missing. Existing
// values are left untouched whatever their kind; the caller checks the kind
// of the returned value.
func EnsurePath(root Value, def Value, keys ...string) (Value, error) {
	if existing, ok := Lookup(root, keys...); ok {
		return existing, nil
	}
	if err := SetPath(root, def, keys...); err != nil {
		return nil, err
	}
	return def, nil
}
