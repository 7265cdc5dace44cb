package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blockgen/internal/builder"
	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/fsutil"
	"github.com/specialistvlad/blockgen/internal/pack"
	"github.com/specialistvlad/blockgen/internal/registry"
	"github.com/specialistvlad/blockgen/internal/template"
)

// Run generates every group found below DataPath into the pack at PackPath
// and flushes the shared files. The first error stops the run; files of the
// blocks already generated stay on disk and the shared files are not
// written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	scope, err := template.LoadScope(a.config.ScopePath)
	if err != nil {
		return fmt.Errorf("failed to load the global scope: %w", err)
	}
	a.logger.Debug("Global scope loaded.", "path", a.config.ScopePath, "variables", scope.Len())

	reg, err := registry.New(ctx, pack.New(a.config.PackPath), a.codec)
	if err != nil {
		return fmt.Errorf("failed to read the shared pack files: %w", err)
	}
	b := builder.New(reg, a.evaluator)

	groups, err := fsutil.FindGroups(ctx, a.config.DataPath)
	if err != nil {
		return fmt.Errorf("failed to find block groups: %w", err)
	}
	if len(groups) == 0 {
		a.logger.Warn("No block groups found, nothing to generate.", "data_path", a.config.DataPath)
	}

	blocks := 0
	for _, g := range groups {
		n, err := a.buildGroup(ctx, b, g, scope)
		if err != nil {
			return err
		}
		blocks += n
	}

	if err := reg.Flush(ctx); err != nil {
		return fmt.Errorf("failed to write the shared pack files: %w", err)
	}
	a.logger.Info("🏁 Generation finished.", "groups", len(groups), "blocks", blocks)
	return nil
}

// buildGroup loads one group with its local scope over the global one and
// builds all of its blocks in declaration order.
func (a *App) buildGroup(ctx context.Context, b builder.Builder, fg fsutil.Group, global *document.Object) (int, error) {
	local, err := template.LoadScope(fg.Scope)
	if err != nil {
		return 0, fmt.Errorf("failed to load the scope of group %s: %w", fg.Dir, err)
	}
	scope := template.Overlay(global, local)

	g, err := a.loader.Load(ctx, fg.Dir, scope)
	if err != nil {
		return 0, fmt.Errorf("failed to load group %s: %w", fg.Dir, err)
	}
	a.logger.Info("Generating block group.", "path", g.File, "namespace", g.Namespace, "blocks", len(g.Blocks))

	for _, block := range g.Blocks {
		if err := b.Build(ctx, g, block, scope); err != nil {
			return 0, fmt.Errorf("failed to generate block %s: %w", g.FullName(block.Name), err)
		}
	}
	return len(g.Blocks), nil
}
