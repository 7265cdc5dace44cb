package document

import (
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
)

// Kind identifies the concrete type behind a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is one node of a document tree. The only implementations are
// *Object, *Array and Scalar.
type Value interface {
	Kind() Kind
	// Clone returns a deep copy that shares no mutable state with the receiver.
	Clone() Value
	sealed()
}

// IsScalar reports whether v is neither an object nor an array.
func IsScalar(v Value) bool {
	_, ok := v.(Scalar)
	return ok
}

// Scalar is a JSON null, boolean, number or string. Numbers keep their
// literal text so integers and decimals round-trip unchanged.
type Scalar struct {
	kind Kind
	text string
	flag bool
}

// Null returns the JSON null scalar.
func Null() Scalar { return Scalar{kind: KindNull} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{kind: KindBool, flag: b} }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{kind: KindString, text: s} }

// Number returns a number scalar from its literal text. The literal is
// trusted to be a valid JSON number.
func Number(literal string) Scalar { return Scalar{kind: KindNumber, text: literal} }

// Int returns a number scalar holding i.
func Int(i int) Scalar { return Number(strconv.Itoa(i)) }

// Float returns a number scalar holding f in its shortest exact form.
func Float(f float64) Scalar { return Number(strconv.FormatFloat(f, 'f', -1, 64)) }

func (s Scalar) Kind() Kind   { return s.kind }
func (s Scalar) Clone() Value { return s }
func (Scalar) sealed()        {}

// AsString returns the string held by s.
func (s Scalar) AsString() (string, bool) {
	return s.text, s.kind == KindString
}

// AsBool returns the boolean held by s.
func (s Scalar) AsBool() (bool, bool) {
	return s.flag, s.kind == KindBool
}

// NumberText returns the literal text of a number scalar.
func (s Scalar) NumberText() (string, bool) {
	return s.text, s.kind == KindNumber
}

// Float64 parses a number scalar.
func (s Scalar) Float64() (float64, bool) {
	if s.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(s.text, 64)
	return f, err == nil
}

// GoString renders the scalar the way it would appear in JSON.
func (s Scalar) GoString() string {
	switch s.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(s.flag)
	case KindNumber:
		return s.text
	}
	return strconv.Quote(s.text)
}

// Array is an ordered list of values.
type Array struct {
	items []Value
}

// NewArray returns an array holding items.
func NewArray(items ...Value) *Array {
	return &Array{items: append([]Value(nil), items...)}
}

func (a *Array) Kind() Kind { return KindArray }
func (*Array) sealed()      {}

func (a *Array) Clone() Value {
	out := &Array{items: make([]Value, len(a.items))}
	for i, v := range a.items {
		out.items[i] = v.Clone()
	}
	return out
}

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// At returns the item at index i.
func (a *Array) At(i int) Value { return a.items[i] }

// Append adds items to the end of the array.
func (a *Array) Append(items ...Value) { a.items = append(a.items, items...) }

// All iterates the array in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Object is a mapping from keys to values that remembers insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

func (o *Object) Kind() Kind { return KindObject }
func (*Object) sealed()      {}

func (o *Object) Clone() Value {
	out := &Object{keys: append([]string(nil), o.keys...), fields: make(map[string]Value, len(o.fields))}
	for k, v := range o.fields {
		out.fields[k] = v.Clone()
	}
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Set stores v under key. A new key goes to the end; an existing key keeps
// its position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// All iterates the object in key order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.fields[k]) {
				return
			}
		}
	}
}

// Equal reports structural equality. Object key order is not significant.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Scalar:
		bv, ok := b.(Scalar)
		if !ok || av.kind != bv.kind {
			return false
		}
		if av.kind == KindNumber {
			af, aok := av.Float64()
			bf, bok := bv.Float64()
			if aok && bok {
				return af == bf
			}
		}
		return av == bv
	case *Array:
		bv, ok := b.(*Array)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.fields {
			other, ok := bv.fields[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	}
	return false
}

// ToAny converts v to the plain Go representation produced by encoding/json
// with UseNumber: map[string]any, []any, json.Number, string, bool and nil.
func ToAny(v Value) any {
	switch tv := v.(type) {
	case *Object:
		out := make(map[string]any, tv.Len())
		for k, item := range tv.All() {
			out[k] = ToAny(item)
		}
		return out
	case *Array:
		out := make([]any, 0, tv.Len())
		for _, item := range tv.All() {
			out = append(out, ToAny(item))
		}
		return out
	case Scalar:
		switch tv.kind {
		case KindBool:
			return tv.flag
		case KindNumber:
			return json.Number(tv.text)
		case KindString:
			return tv.text
		}
	}
	return nil
}
