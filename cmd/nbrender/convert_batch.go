package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	nbrender "github.com/alnah/go-nbrender"
	"github.com/alnah/go-nbrender/internal/fileutil"
	"github.com/alnah/go-nbrender/internal/hints"
	"github.com/alnah/go-nbrender/internal/nbformat"
	"github.com/alnah/go-nbrender/internal/pipeline"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadNotebook   = errors.New("failed to read notebook file")
	ErrWriteHTML      = errors.New("failed to write HTML file")
	ErrRenderFailures = errors.New("cells failed to render")
)

// converter turns one notebook file into one HTML file. It is shared by
// all workers; the renderer and page template are safe for concurrent use.
type converter struct {
	renderer *nbrender.Renderer
	page     *pageParams // nil writes the bare fragment
	rewrite  bool        // relocate relative paths when the output moves
	strict   bool
	logger   zerolog.Logger
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Failures   int // cells or outputs rendered as placeholders
	Duration   time.Duration
}

// convertBatch converts files with a fixed number of workers. Once ctx is
// canceled, files not yet started fail with the context error.
func convertBatch(ctx context.Context, conv *converter, files []FileToConvert, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = conv.convertFile(files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func (c *converter) convertFile(f FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	data, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadNotebook, err))
	}

	record, err := nbformat.Decode(data)
	if err != nil {
		return finish(withNotebookHint(err))
	}
	nb, err := nbrender.Parse(record)
	if err != nil {
		return finish(withNotebookHint(err))
	}

	fragment, err := c.renderer.RenderString(nb)
	failures, fatal := splitRenderErrors(err)
	if fatal != nil {
		return finish(fmt.Errorf("rendering: %w", fatal))
	}
	result.Failures = len(failures)
	if c.strict && len(failures) > 0 {
		return finish(fmt.Errorf("%w: %d placeholder(s)%s", ErrRenderFailures, len(failures), hints.ForRenderFailures(true)))
	}

	out, err := c.document(nb, fragment, f)
	if err != nil {
		return finish(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := fileutil.WriteFileAtomic(f.OutputPath, out, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}

	c.logger.Debug().
		Str("file", f.InputPath).
		Int("failures", result.Failures).
		Msg("notebook converted")

	return finish(nil)
}

// document wraps the fragment in the page when standalone output is on.
func (c *converter) document(nb *nbrender.Notebook, fragment string, f FileToConvert) ([]byte, error) {
	if c.page == nil {
		return []byte(fragment), nil
	}

	body := fragment
	if c.rewrite {
		rewritten, err := pipeline.RewriteRelativePaths(fragment, filepath.Dir(f.InputPath), filepath.Dir(f.OutputPath))
		if err != nil {
			return nil, fmt.Errorf("rewriting paths: %w", err)
		}
		body = rewritten
	}

	title := nb.Title()
	if title == "" {
		base := filepath.Base(f.InputPath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var buf bytes.Buffer
	if err := c.page.renderer.Render(&buf, pipeline.PageData{
		Title: title,
		CSS:   c.page.css,
		Body:  body,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.Bytes(), nil
}

// splitRenderErrors separates the isolated failures Render reports as
// *nbrender.RenderError from errors that stopped rendering altogether.
func splitRenderErrors(err error) (failures []*nbrender.RenderError, fatal error) {
	if err == nil {
		return nil, nil
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var others []error
	for _, e := range errs {
		var re *nbrender.RenderError
		if errors.As(e, &re) {
			failures = append(failures, re)
			continue
		}
		others = append(others, e)
	}
	return failures, errors.Join(others...)
}

// withNotebookHint appends the hint matching a decoding error.
func withNotebookHint(err error) error {
	switch {
	case errors.Is(err, nbformat.ErrUnsupportedVersion):
		return fmt.Errorf("%w%s", err, hints.ForUnsupportedVersion())
	case errors.Is(err, nbrender.ErrMalformedNotebook):
		return fmt.Errorf("%w%s", err, hints.ForMalformedNotebook())
	default:
		return err
	}
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Partial   int // succeeded with placeholders
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Failures > 0:
			summary.Succeeded++
			summary.Partial++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		suffix := ""
		if r.Failures > 0 {
			suffix = fmt.Sprintf(" [%d cell error(s)]", r.Failures)
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)%s\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), suffix)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s%s\n", r.OutputPath, suffix)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}
