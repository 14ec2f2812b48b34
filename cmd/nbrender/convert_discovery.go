package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nbrender/internal/fileutil"
)

// Notebook and output extensions, without the dot.
const (
	notebookExt = "ipynb"
	htmlExt     = "html"
)

// MaxWorkers caps --workers; rendering is CPU-bound.
const MaxWorkers = 32

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .ipynb extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all notebooks under inputPath. Directory inputs are
// walked recursively and mirrored under outputDir. Checkpoint directories
// written by Jupyter are skipped.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateNotebookExtension(inputPath); err != nil {
			return nil, err
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if d.Name() == ".ipynb_checkpoints" {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasExtension(path, notebookExt) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a notebook.
// An outputDir ending in .html names the output file itself.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	name, err := fileutil.ReplaceExtension(filepath.Base(inputPath), htmlExt)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name), nil
	}

	if fileutil.HasExtension(outputDir, htmlExt) {
		return outputDir, nil
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil && !strings.HasPrefix(relPath, "..") {
			return filepath.Join(outputDir, filepath.Dir(relPath), name), nil
		}
	}

	return filepath.Join(outputDir, name), nil
}

// validateNotebookExtension checks that the file has an .ipynb extension.
func validateNotebookExtension(path string) error {
	if !fileutil.HasExtension(path, notebookExt) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
