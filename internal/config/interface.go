package config

import (
	"context"

	"github.com/specialistvlad/blockgen/internal/document"
)

// Loader is the interface for reading one group directory.
type Loader interface {
	// Load reads the group in dir, evaluates it against scope and returns the
	// typed model.
	Load(ctx context.Context, dir string, scope *document.Object) (*Group, error)
}
