package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	nbrender "github.com/alnah/go-nbrender"
	"github.com/alnah/go-nbrender/dom/xmldom"
	"github.com/alnah/go-nbrender/internal/assets"
	"github.com/alnah/go-nbrender/internal/config"
	"github.com/alnah/go-nbrender/internal/hints"
	"github.com/alnah/go-nbrender/internal/pipeline"
)

// Sentinel errors for parameter building.
var (
	ErrReadCSS  = errors.New("failed to read CSS file")
	ErrTemplate = errors.New("invalid page template")
)

// pageParams wraps rendered notebooks in a standalone page.
type pageParams struct {
	renderer *pipeline.PageRenderer
	css      string
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Render flags
	if flags.render.prefixSet {
		prefix := flags.render.prefix
		cfg.Render.ClassPrefix = &prefix
	}
	if flags.render.noMarkdown {
		cfg.Render.Markdown = false
	}
	if flags.render.rawHTML {
		cfg.Render.RawHTML = true
	}
	if flags.render.ansi != "" {
		cfg.Render.ANSI = flags.render.ansi
	}
	if flags.render.highlight {
		cfg.Render.Highlight = true
	}
	if flags.render.sanitize {
		cfg.Render.Sanitize = true
	}
	if flags.render.xhtml {
		cfg.Render.Host = config.HostXHTML
	}

	// Output flags
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.page.fragment {
		cfg.Output.Standalone = false
	}

	// Page flags
	if flags.page.css != "" {
		cfg.Page.CSS = flags.page.css
	}
	if flags.page.templateDir != "" {
		cfg.Page.TemplateDir = flags.page.templateDir
	}
}

// buildRenderOptions translates the render section of cfg into renderer
// options. cfg must be validated.
func buildRenderOptions(cfg *config.Config, logger zerolog.Logger) []nbrender.Option {
	rc := cfg.Render
	opts := []nbrender.Option{nbrender.WithLogger(logger)}

	if rc.ClassPrefix != nil {
		opts = append(opts, nbrender.WithClassPrefix(*rc.ClassPrefix))
	}
	if rc.Markdown {
		opts = append(opts, nbrender.WithGoldmark(rc.RawHTML))
	}

	switch strings.ToLower(rc.ANSI) {
	case config.ANSIStrip:
		opts = append(opts, nbrender.WithStrippedANSI())
	case config.ANSINone:
		// Identity: terminal text is injected as markup.
	default:
		opts = append(opts, nbrender.WithTerminalColors())
	}

	if rc.Highlight {
		opts = append(opts, nbrender.WithSyntaxHighlighting())
	}
	if rc.Sanitize {
		opts = append(opts, nbrender.WithSanitizedMarkup())
	}
	if isXHTML(cfg) {
		opts = append(opts, nbrender.WithDocument(xmldom.New()))
	}

	return opts
}

func isXHTML(cfg *config.Config) bool {
	return strings.EqualFold(cfg.Render.Host, config.HostXHTML)
}

// buildPageParams loads the page template and stylesheet. Assets in
// page.templateDir take precedence over the embedded ones; the page.css
// file is appended to the stylesheet. Returns nil for fragment output.
func buildPageParams(cfg *config.Config) (*pageParams, error) {
	if !cfg.Output.Standalone {
		return nil, nil
	}

	resolver, err := assets.NewAssetResolver(cfg.Page.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	tmpl, err := resolver.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	renderer, err := pipeline.NewPageRenderer(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrTemplate, err, hints.ForTemplate())
	}

	css, err := resolver.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	if cfg.Page.CSS != "" {
		extra, err := os.ReadFile(cfg.Page.CSS) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		css += "\n" + string(extra)
	}

	return &pageParams{renderer: renderer, css: css}, nil
}
