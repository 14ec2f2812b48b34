package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	nbrender "github.com/alnah/go-nbrender"
	"github.com/alnah/go-nbrender/internal/assets"
	"github.com/alnah/go-nbrender/internal/config"
	"github.com/alnah/go-nbrender/internal/nbformat"
)

// Exit codes for the nbrender CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitNotebook = 4 // Malformed or unsupported notebook, strict render failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// Notebook content errors (exit 4)
	if errors.Is(err, nbrender.ErrMalformedNotebook) ||
		errors.Is(err, nbformat.ErrUnsupportedVersion) ||
		errors.Is(err, nbformat.ErrEmptyInput) ||
		errors.Is(err, nbformat.ErrInputTooLarge) ||
		errors.Is(err, ErrRenderFailures) {
		return ExitNotebook
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadNotebook) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoNotebooks) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTemplate) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
