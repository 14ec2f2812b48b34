package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates markdown conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// GoldmarkConverter converts markdown cell source to an HTML fragment.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// syntax highlighting. Raw HTML blocks are replaced by a comment unless
// allowRawHTML is set.
func NewGoldmarkConverter(allowRawHTML bool) *GoldmarkConverter {
	rendererOpts := []goldmark.Option{
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags keep fragments well-formed for XML hosts
		),
	}
	if allowRawHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	opts := append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Anchors for in-notebook links
		),
	}, rendererOpts...)

	return &GoldmarkConverter{md: goldmark.New(opts...)}
}

// ToHTML converts markdown to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(normalizeLineEndings(content)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
