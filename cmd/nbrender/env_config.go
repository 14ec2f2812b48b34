package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-nbrender/internal/config"
)

// envConfig holds configuration from NBRENDER_* environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // NBRENDER_CONFIG: config file name or path
	OutputDir   string // NBRENDER_OUTPUT_DIR: default output directory
	Prefix      string // NBRENDER_PREFIX: class name prefix
	PrefixSet   bool
	ANSI        string // NBRENDER_ANSI: html, strip, none
	TemplateDir string // NBRENDER_TEMPLATE_DIR: page overrides
	Workers     int    // NBRENDER_WORKERS: parallel workers
}

// knownEnvVars lists valid NBRENDER_* environment variables.
var knownEnvVars = map[string]bool{
	"NBRENDER_CONFIG":       true,
	"NBRENDER_OUTPUT_DIR":   true,
	"NBRENDER_PREFIX":       true,
	"NBRENDER_ANSI":         true,
	"NBRENDER_TEMPLATE_DIR": true,
	"NBRENDER_WORKERS":      true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("NBRENDER_CONFIG"),
		OutputDir:   os.Getenv("NBRENDER_OUTPUT_DIR"),
		ANSI:        os.Getenv("NBRENDER_ANSI"),
		TemplateDir: os.Getenv("NBRENDER_TEMPLATE_DIR"),
	}
	cfg.Prefix, cfg.PrefixSet = os.LookupEnv("NBRENDER_PREFIX")

	// Invalid counts are ignored, not errors
	if workers := os.Getenv("NBRENDER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports NBRENDER_* variables that are not recognized,
// e.g. NBRENDER_OUTPUTDIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "NBRENDER_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config values the file left unset.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PrefixSet && cfg.Render.ClassPrefix == nil {
		prefix := env.Prefix
		cfg.Render.ClassPrefix = &prefix
	}
	// ANSI always has a value after defaults, so the env var wins over it
	// unless the file chose something else.
	if env.ANSI != "" && cfg.Render.ANSI == config.ANSIHTML {
		cfg.Render.ANSI = env.ANSI
	}
	if env.TemplateDir != "" && cfg.Page.TemplateDir == "" {
		cfg.Page.TemplateDir = env.TemplateDir
	}
}
