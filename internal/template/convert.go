package template

import (
	"fmt"
	"math/big"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/zclconf/go-cty/cty"
)

// ToCty converts a document into the cty value exposed to templates.
// Objects become cty objects and arrays become tuples, so heterogeneous
// data keeps its shape.
func ToCty(v document.Value) (cty.Value, error) {
	switch tv := v.(type) {
	case *document.Object:
		if tv.Len() == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, tv.Len())
		for k, item := range tv.All() {
			cv, err := ToCty(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	case *document.Array:
		if tv.Len() == 0 {
			return cty.EmptyTupleVal, nil
		}
		items := make([]cty.Value, 0, tv.Len())
		for i, item := range tv.All() {
			cv, err := ToCty(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, cv)
		}
		return cty.TupleVal(items), nil
	case document.Scalar:
		switch tv.Kind() {
		case document.KindNull:
			return cty.NullVal(cty.DynamicPseudoType), nil
		case document.KindBool:
			b, _ := tv.AsBool()
			return cty.BoolVal(b), nil
		case document.KindNumber:
			text, _ := tv.NumberText()
			return cty.ParseNumberVal(text)
		case document.KindString:
			s, _ := tv.AsString()
			return cty.StringVal(s), nil
		}
	}
	return cty.NilVal, fmt.Errorf("unsupported document value %T", v)
}

// FromCty converts an evaluated cty value back into a document. Object and
// map attributes come out in lexical order, which is the only order cty
// keeps.
func FromCty(v cty.Value) (document.Value, error) {
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if v.IsNull() {
		return document.Null(), nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return document.String(v.AsString()), nil
	case ty == cty.Bool:
		return document.Bool(v.True()), nil
	case ty == cty.Number:
		return numberOf(v.AsBigFloat()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		arr := document.NewArray()
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := FromCty(ev)
			if err != nil {
				return nil, err
			}
			arr.Append(item)
		}
		return arr, nil
	case ty.IsObjectType() || ty.IsMapType():
		obj := document.NewObject()
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			item, err := FromCty(ev)
			if err != nil {
				return nil, err
			}
			obj.Set(k.AsString(), item)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("cannot represent a %s value in a document", ty.FriendlyName())
}

func numberOf(f *big.Float) document.Scalar {
	if f.IsInt() {
		i, _ := f.Int(nil)
		return document.Number(i.String())
	}
	f64, _ := f.Float64()
	return document.Float(f64)
}
