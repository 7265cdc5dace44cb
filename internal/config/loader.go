package config

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/fsutil"
	"github.com/specialistvlad/blockgen/internal/template"
)

// DataFile is the name of the block definition document of a group.
const DataFile = fsutil.DataFile

// FileLoader reads DataFile from a group directory and evaluates it with an
// Evaluator.
type FileLoader struct {
	Evaluator template.Evaluator
}

// NewFileLoader returns a FileLoader using the HCL template evaluator.
func NewFileLoader() *FileLoader {
	return &FileLoader{Evaluator: template.NewHCL()}
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context, dir string, scope *document.Object) (*Group, error) {
	logger := ctxlog.FromContext(ctx)
	file := filepath.Join(dir, DataFile)

	doc, err := template.EvaluateFile(ctx, l.Evaluator, file, scope)
	if err != nil {
		return nil, err
	}
	g, err := Parse(file, doc)
	if err != nil {
		return nil, err
	}
	logger.Debug("Blocks data loaded.", "file", file, "namespace", g.Namespace, "blocks", len(g.Blocks))
	return g, nil
}
