package document

import "fmt"

// From converts a Go literal into a Value. It accepts Value, string, bool,
// int, float64, nil, []string, []int, []float64 and []any, and panics on
// anything else. It exists for building the fixed skeletons of generated
// files, where an unsupported type is a programming error.
func From(v any) Value {
	switch tv := v.(type) {
	case nil:
		return Null()
	case Value:
		return tv
	case string:
		return String(tv)
	case bool:
		return Bool(tv)
	case int:
		return Int(tv)
	case float64:
		return Float(tv)
	case []string:
		arr := NewArray()
		for _, s := range tv {
			arr.Append(String(s))
		}
		return arr
	case []int:
		arr := NewArray()
		for _, i := range tv {
			arr.Append(Int(i))
		}
		return arr
	case []float64:
		arr := NewArray()
		for _, f := range tv {
			arr.Append(Float(f))
		}
		return arr
	case []any:
		return ArrayOf(tv...)
	}
	panic(fmt.Sprintf("document: unsupported literal %T", v))
}

// ObjectOf builds an object from alternating keys and values, e.g.
// ObjectOf("min", 0, "max", 3).
func ObjectOf(pairs ...any) *Object {
	if len(pairs)%2 != 0 {
		panic("document: ObjectOf needs key/value pairs")
	}
	obj := NewObject()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("document: ObjectOf key %d is %T, not string", i/2, pairs[i]))
		}
		obj.Set(key, From(pairs[i+1]))
	}
	return obj
}

// ArrayOf builds an array from Go literals.
func ArrayOf(items ...any) *Array {
	arr := NewArray()
	for _, item := range items {
		arr.Append(From(item))
	}
	return arr
}
