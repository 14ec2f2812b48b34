package main

import (
	"context"
	"errors"
	"fmt"

	nbrender "github.com/alnah/go-nbrender"
	"github.com/alnah/go-nbrender/internal/config"
	"github.com/alnah/go-nbrender/internal/hints"
	"github.com/alnah/go-nbrender/internal/logging"
	"github.com/alnah/go-nbrender/internal/yamlutil"
)

// Sentinel errors for CLI input.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrNoNotebooks = errors.New("no notebooks found")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration: flags > env vars > config file > defaults
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.printConfig {
		return printConfig(cfg, env)
	}

	logger := logging.New(env.Stderr, flags.common.verbose, flags.common.quiet)
	if env.SetMaxProcs != nil {
		// Only fails on an invalid GOMAXPROCS env var; runtime defaults apply.
		undo, _ := env.SetMaxProcs(func(format string, args ...interface{}) {
			logger.Debug().Msgf(format, args...)
		})
		if undo != nil {
			defer undo()
		}
	}

	if len(positionalArgs) == 0 {
		return ErrNoInput
	}

	var files []FileToConvert
	for _, input := range positionalArgs {
		found, err := discoverFiles(input, cfg.Output.DefaultDir)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %v", ErrNoNotebooks, positionalArgs)
	}

	page, err := buildPageParams(cfg)
	if err != nil {
		return err
	}

	conv := &converter{
		renderer: nbrender.NewRenderer(buildRenderOptions(cfg, logger)...),
		page:     page,
		rewrite:  !isXHTML(cfg),
		strict:   flags.strict,
		logger:   logger,
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	logger.Info().Int("files", len(files)).Int("workers", workers).Msg("converting notebooks")

	results := convertBatch(ctx, conv, files, workers)

	summary := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose > 0, env)
	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, errs: collectErrors(results)}
	}
	if summary.Partial > 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "%d notebook(s) rendered with failed cells%s\n", summary.Partial, hints.ForRenderFailures(false))
	}

	return nil
}

// loadConfig loads the named config, falling back to the NBRENDER_CONFIG
// value, then to defaults when neither is set.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// printConfig writes the effective configuration as YAML.
func printConfig(cfg *config.Config, env *Environment) error {
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}

// batchError reports failed conversions. Unwrap exposes each file's error
// so exit codes can be derived with errors.Is.
type batchError struct {
	failed int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// collectErrors returns the errors of failed results.
func collectErrors(results []ConversionResult) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
