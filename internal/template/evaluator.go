// Package template evaluates the restricted template language used in block
// definitions and template documents. Strings containing "${...}" or
// "%{...}" are HCL templates evaluated against a scope; everything else is
// copied verbatim.
package template

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Evaluator turns a template document into a concrete document.
type Evaluator interface {
	Evaluate(ctx context.Context, doc document.Value, scope *document.Object, filename string) (document.Value, error)
}

// HCL is the Evaluator backed by hclsyntax templates.
type HCL struct {
	funcs map[string]function.Function
}

// NewHCL returns an evaluator exposing the Functions set.
func NewHCL() *HCL {
	return &HCL{funcs: Functions()}
}

// IsTemplate reports whether s needs evaluating.
func IsTemplate(s string) bool {
	return strings.Contains(s, "${") || strings.Contains(s, "%{")
}

// Evaluate returns a new document in which every templated string has been
// replaced by its value. doc is not modified. A string made of a single
// interpolation evaluates to the native value of the expression, so
// "${size * 2}" becomes a number and "${materials}" can become a list.
// Object keys are evaluated too and must produce strings.
func (e *HCL) Evaluate(ctx context.Context, doc document.Value, scope *document.Object, filename string) (document.Value, error) {
	logger := ctxlog.FromContext(ctx)

	vars := map[string]cty.Value{}
	if scope != nil {
		for k, v := range scope.All() {
			cv, err := ToCty(v)
			if err != nil {
				return nil, generr.Tmpl("Failed to expose the scope variable %q to templates.", k).At(filename, nil).Wrap(err)
			}
			vars[k] = cv
		}
	}
	w := &walker{
		filename: filename,
		evalCtx:  &hcl.EvalContext{Variables: vars, Functions: e.funcs},
	}
	out, err := w.value(doc, document.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Template evaluated.", "file", filename, "expressions", w.count)
	return out, nil
}

type walker struct {
	filename string
	evalCtx  *hcl.EvalContext
	count    int
}

func (w *walker) value(v document.Value, at document.Path) (document.Value, error) {
	switch tv := v.(type) {
	case *document.Object:
		out := document.NewObject()
		for k, item := range tv.All() {
			key := k
			if IsTemplate(k) {
				kv, err := w.str(k, at.Key(k))
				if err != nil {
					return nil, err
				}
				s, ok := kv.(document.Scalar)
				str, isStr := s.AsString()
				if !ok || !isStr {
					return nil, generr.Tmpl("The template key %q must evaluate to a string, got %s.", k, kv.Kind()).
						At(w.filename, at.Key(k))
				}
				key = str
			}
			val, err := w.value(item, at.Key(k))
			if err != nil {
				return nil, err
			}
			out.Set(key, val)
		}
		return out, nil
	case *document.Array:
		out := document.NewArray()
		for i, item := range tv.All() {
			val, err := w.value(item, at.Index(i))
			if err != nil {
				return nil, err
			}
			out.Append(val)
		}
		return out, nil
	case document.Scalar:
		if s, ok := tv.AsString(); ok && IsTemplate(s) {
			return w.str(s, at)
		}
		return tv, nil
	}
	return v.Clone(), nil
}

func (w *walker) str(src string, at document.Path) (document.Value, error) {
	expr, diags := hclsyntax.ParseTemplate([]byte(src), w.filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, generr.Tmpl("Failed to parse the template string %q.", src).At(w.filename, at).Wrap(diags)
	}
	val, diags := expr.Value(w.evalCtx)
	if diags.HasErrors() {
		return nil, generr.Tmpl("Failed to evaluate the template string %q.", src).At(w.filename, at).Wrap(diags)
	}
	w.count++
	out, err := FromCty(val)
	if err != nil {
		return nil, generr.Tmpl("The template string %q produced an unusable value.", src).At(w.filename, at).Wrap(err)
	}
	return out, nil
}
