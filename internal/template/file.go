package template

import (
	"context"
	"os"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
)

// EvaluateFile loads the JSONC document at path and evaluates it against
// scope. An unreadable file is an IO error and an unparsable one a
// ConfigShape error.
func EvaluateFile(ctx context.Context, e Evaluator, path string, scope *document.Object) (document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, generr.IOErr("Failed to load the template file.").At(path, nil).Wrap(err)
	}
	raw, err := document.Parse(data)
	if err != nil {
		return nil, generr.Shape("Failed to parse the template file.").At(path, nil).Wrap(err)
	}
	return e.Evaluate(ctx, raw, scope, path)
}
