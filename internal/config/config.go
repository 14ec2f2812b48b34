// Package config loads the YAML configuration of the nbrender command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nbrender/internal/fileutil"
	"github.com/alnah/go-nbrender/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxClassPrefixLength = 50   // "nb-", "ipynb-"
	MaxPathLength        = 4096 // PATH_MAX on Linux
)

// Accepted values of render.ansi.
const (
	ANSIHTML  = "html"
	ANSIStrip = "strip"
	ANSINone  = "none"
)

// Accepted values of render.host.
const (
	HostHTML  = "html"
	HostXHTML = "xhtml"
)

// Config holds all configuration for notebook rendering.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
	Page   PageConfig   `yaml:"page"`
}

// RenderConfig selects the renderer collaborators.
type RenderConfig struct {
	ClassPrefix *string `yaml:"classPrefix"` // nil = renderer default; "" = bare class names
	Markdown    bool    `yaml:"markdown"`    // Convert markdown cells with goldmark
	RawHTML     bool    `yaml:"rawHTML"`     // Keep raw HTML inside markdown
	ANSI        string  `yaml:"ansi"`        // "html", "strip", "none" (default: "html")
	Highlight   bool    `yaml:"highlight"`   // Highlight code inputs
	Sanitize    bool    `yaml:"sanitize"`    // Sanitize trusted markup
	Host        string  `yaml:"host"`        // "html", "xhtml" (default: "html")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap the rendered notebook in a full page
}

// PageConfig defines the standalone page.
type PageConfig struct {
	CSS         string `yaml:"css"`         // Path to a CSS file embedded in the page
	TemplateDir string `yaml:"templateDir"` // Directory holding a page.html override
}

// Validate checks enumerations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Render.ClassPrefix != nil {
		prefix := *c.Render.ClassPrefix
		if err := validateFieldLength("render.classPrefix", prefix, MaxClassPrefixLength); err != nil {
			return err
		}
		if strings.ContainsAny(prefix, " \t\r\n\"'<>") {
			return fmt.Errorf("%w: render.classPrefix %q must be a single class token", ErrInvalidValue, prefix)
		}
	}

	switch strings.ToLower(c.Render.ANSI) {
	case "", ANSIHTML, ANSIStrip, ANSINone:
		// valid
	default:
		return fmt.Errorf("%w: render.ansi %q (must be html, strip, or none)", ErrInvalidValue, c.Render.ANSI)
	}

	switch strings.ToLower(c.Render.Host) {
	case "", HostHTML, HostXHTML:
		// valid
	default:
		return fmt.Errorf("%w: render.host %q (must be html or xhtml)", ErrInvalidValue, c.Render.Host)
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.css", c.Page.CSS, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.templateDir", c.Page.TemplateDir, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file:
// markdown and terminal colors on, standalone HTML5 pages.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Markdown: true,
			ANSI:     ANSIHTML,
			Host:     HostHTML,
		},
		Output: OutputConfig{Standalone: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files a config name resolves to, in lookup order:
// .yaml then .yml, in the current directory then ~/.config/go-nbrender/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-nbrender", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
