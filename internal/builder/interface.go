package builder

import (
	"context"

	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/document"
)

// Builder compiles block definitions into pack files.
//
// Build is not safe for concurrent use: it contributes to the shared
// accumulators of a run, and their collision checks depend on the order in
// which blocks are built.
type Builder interface {
	// Build generates every file of block b of group g. scope is the
	// variable set templates are evaluated against.
	Build(ctx context.Context, g *config.Group, b *config.Block, scope *document.Object) error
}
