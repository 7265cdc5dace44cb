// Package fsutil finds the block groups below a data directory.
package fsutil

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/template"
)

const (
	// DataFile holds the block definitions of a group.
	DataFile = "_blocks_data.json"
	// ScriptFile is the executable form of DataFile. It is not supported.
	ScriptFile = "_blocks_data.py"
	// ScopeBase is the name, without extension, of the local scope file
	// that marks a directory as a group.
	ScopeBase = "_scope"
)

// Group is a directory holding a local scope file and a DataFile.
type Group struct {
	Dir   string
	Scope string
}

// FindGroups walks the directories below rootPath in lexical order and
// returns the groups among them. A group with only a ScriptFile is skipped
// with a warning; holding both data files is a ConfigShape error.
// Directories without a local scope file are not groups.
func FindGroups(ctx context.Context, rootPath string) ([]Group, error) {
	logger := ctxlog.FromContext(ctx)

	var dirs []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != rootPath {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, generr.IOErr("Failed to walk the data directory.").At(rootPath, nil).Wrap(err)
	}
	slices.Sort(dirs)

	var groups []Group
	for _, dir := range dirs {
		scope, err := template.FindScope(dir, ScopeBase)
		if err != nil {
			return nil, err
		}
		if scope == "" {
			continue
		}
		hasData, err := isFile(filepath.Join(dir, DataFile))
		if err != nil {
			return nil, err
		}
		hasScript, err := isFile(filepath.Join(dir, ScriptFile))
		if err != nil {
			return nil, err
		}
		switch {
		case hasData && hasScript:
			return nil, generr.Shape("Both %s and %s files exist. You should only use one of them for a block group.", DataFile, ScriptFile).At(dir, nil)
		case hasScript:
			logger.Warn("Skipping the group: executable block data files are not supported.", "path", filepath.Join(dir, ScriptFile))
		case hasData:
			groups = append(groups, Group{Dir: dir, Scope: scope})
		}
	}
	return groups, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, generr.IOErr("Failed to inspect the file.").At(path, nil).Wrap(err)
	}
	return !info.IsDir(), nil
}
