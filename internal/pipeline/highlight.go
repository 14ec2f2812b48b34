package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownLanguage indicates chroma has no lexer for a language.
var ErrUnknownLanguage = errors.New("no lexer for language")

// ChromaHighlighter renders source code as class-annotated spans.
// Output has no surrounding <pre> so it can fill an existing code element.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates a highlighter emitting CSS classes.
func NewChromaHighlighter() *ChromaHighlighter {
	return &ChromaHighlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Fallback,
	}
}

// Highlight tokenizes source with the lexer for language and renders it.
// Returns ErrUnknownLanguage when no lexer matches.
func (h *ChromaHighlighter) Highlight(language, source string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenizing %s: %w", language, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s: %w", language, err)
	}
	return sb.String(), nil
}
