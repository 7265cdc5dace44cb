package app

import (
	"errors"
	"path/filepath"
)

// DefaultScopeFile is the name of the global scope file looked up in
// DataPath when no ScopePath is given.
const DefaultScopeFile = "scope.json"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DataPath  string // group directories
	ScopePath string // global scope file
	PackPath  string // root holding BP/ and RP/

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DataPath == "" {
		return nil, errors.New("DataPath is a required configuration field and cannot be empty")
	}
	if cfg.PackPath == "" {
		return nil, errors.New("PackPath is a required configuration field and cannot be empty")
	}
	if cfg.ScopePath == "" {
		cfg.ScopePath = filepath.Join(cfg.DataPath, DefaultScopeFile)
	}
	return &cfg, nil
}
