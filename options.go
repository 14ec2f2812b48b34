package nbrender

import (
	"github.com/rs/zerolog"

	"github.com/alnah/go-nbrender/dom"
	"github.com/alnah/go-nbrender/dom/htmldom"
	"github.com/alnah/go-nbrender/internal/pipeline"
)

// DefaultClassPrefix namespaces every class the renderer emits.
const DefaultClassPrefix = "nb-"

// MarkupFunc converts source text to markup. Used for the markdown and
// ANSI collaborators and for sanitizing trusted markup.
type MarkupFunc func(src string) (string, error)

// CodeHighlighter converts source code in the given language to markup.
// The result must already be escaped.
type CodeHighlighter func(language, source string) (string, error)

// Identity returns src unchanged. It is the fallback for absent converters.
func Identity(src string) (string, error) {
	return src, nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClassPrefix sets the prefix added to every emitted class name.
// An empty prefix emits bare class names.
func WithClassPrefix(prefix string) Option {
	return func(r *Renderer) {
		r.classPrefix = prefix
	}
}

// WithDocument sets the host document elements are created with.
// Panics if doc is nil (programmer error).
func WithDocument(doc dom.Document) Option {
	if doc == nil {
		panic("nbrender: WithDocument document must not be nil")
	}
	return func(r *Renderer) {
		r.doc = doc
	}
}

// WithMarkdown sets the markdown converter for markdown cells.
// nil restores the identity fallback.
func WithMarkdown(fn MarkupFunc) Option {
	return func(r *Renderer) {
		r.markdown = orIdentity(fn)
	}
}

// WithANSI sets the converter applied to stream text and tracebacks.
// nil restores the identity fallback.
func WithANSI(fn MarkupFunc) Option {
	return func(r *Renderer) {
		r.ansi = orIdentity(fn)
	}
}

// WithSanitizer passes every trusted markup payload through fn before
// injection and stops rendering javascript outputs.
//
// This changes display precedence: javascript is skipped when resolving a
// multi-format output, so the next present format (text) is chosen.
func WithSanitizer(fn MarkupFunc) Option {
	return func(r *Renderer) {
		r.sanitize = fn
	}
}

// WithCodeHighlighter sets the highlighter for code inputs that declare a
// language. Inputs fall back to escaped text if it fails.
func WithCodeHighlighter(fn CodeHighlighter) Option {
	return func(r *Renderer) {
		r.highlight = fn
	}
}

// WithLogger sets the logger render failures are reported to.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithGoldmark renders markdown cells with goldmark (GFM, footnotes,
// highlighted fenced code). Raw HTML in markdown is dropped unless
// allowRawHTML is set.
func WithGoldmark(allowRawHTML bool) Option {
	conv := pipeline.NewGoldmarkConverter(allowRawHTML)
	return WithMarkdown(conv.ToHTML)
}

// WithTerminalColors turns ANSI color sequences into styled spans.
func WithTerminalColors() Option {
	return WithANSI(pipeline.ANSIToHTML)
}

// WithStrippedANSI removes ANSI escape sequences and escapes the rest.
func WithStrippedANSI() Option {
	return WithANSI(pipeline.StripANSI)
}

// WithSanitizedMarkup sanitizes trusted markup with a user-generated
// content policy that keeps class attributes and data URI images.
func WithSanitizedMarkup() Option {
	return WithSanitizer(pipeline.NewSanitizer().Sanitize)
}

// WithSyntaxHighlighting highlights code inputs with chroma, emitting
// class-based markup.
func WithSyntaxHighlighting() Option {
	return WithCodeHighlighter(pipeline.NewChromaHighlighter().Highlight)
}

func orIdentity(fn MarkupFunc) MarkupFunc {
	if fn == nil {
		return Identity
	}
	return fn
}

// Renderer turns a Notebook into a tree of host elements.
// A Renderer is immutable after NewRenderer and safe for concurrent use
// as long as its host document and collaborators are.
type Renderer struct {
	classPrefix string
	doc         dom.Document
	markdown    MarkupFunc
	ansi        MarkupFunc
	sanitize    MarkupFunc
	highlight   CodeHighlighter
	logger      zerolog.Logger
}

// NewRenderer creates a Renderer with the "nb-" prefix, an HTML5 host
// document and identity converters.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		classPrefix: DefaultClassPrefix,
		doc:         htmldom.New(),
		markdown:    Identity,
		ansi:        Identity,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}
