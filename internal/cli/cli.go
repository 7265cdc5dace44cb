package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/blockgen/internal/app"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/spf13/pflag"
)

// DefaultDataPath is the group root used when --data is not given.
const DefaultDataPath = "data/custom_blocks"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("blockgen", pflag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
blockgen - Generates custom blocks, their placement entities, recipes and
attachables into a behavior/resource pack pair.

Usage:
  blockgen [options] [SETTINGS]

Arguments:
  SETTINGS
    Optional JSON object, e.g. {"scope_path": "scope.json"}. scope_path is
    resolved against the parent directory of --data.

Options:
`)
		flagSet.PrintDefaults()
	}

	dataFlag := flagSet.StringP("data", "d", DefaultDataPath, "Directory searched recursively for block groups.")
	scopeFlag := flagSet.StringP("scope", "s", "", "Global scope file. Defaults to <data>/"+app.DefaultScopeFile+".")
	packFlag := flagSet.StringP("pack", "p", ".", "Directory holding the BP and RP packs.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected at most one settings argument, got %d", flagSet.NArg())
	}
	scopePath := *scopeFlag
	if flagSet.NArg() == 1 {
		fromSettings, err := settingsScopePath(flagSet.Arg(0), *dataFlag)
		if err != nil {
			return nil, false, err
		}
		if fromSettings != "" && !flagSet.Changed("scope") {
			scopePath = fromSettings
		}
	}
	slog.Debug("Scope path determined.", "path", scopePath)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DataPath:  *dataFlag,
		ScopePath: scopePath,
		PackPath:  *packFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// settingsScopePath reads scope_path from the settings argument. It returns
// "" when the property is absent.
func settingsScopePath(raw, dataPath string) (string, error) {
	v, err := document.Parse([]byte(raw))
	if err != nil {
		return "", usageError("invalid settings argument: %v", err)
	}
	obj, ok := v.(*document.Object)
	if !ok {
		return "", usageError("invalid settings argument: must be a JSON object")
	}
	sp, ok := obj.Get("scope_path")
	if !ok {
		return "", nil
	}
	s, isScalar := sp.(document.Scalar)
	str, isStr := s.AsString()
	if !isScalar || !isStr {
		return "", usageError("the 'scope_path' in the settings must be a string")
	}
	return filepath.Join(filepath.Dir(filepath.Clean(dataPath)), str), nil
}
