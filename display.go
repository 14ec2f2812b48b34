package nbrender

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-nbrender/dom"
)

// Display formats of multi-format outputs.
const (
	FormatPNG        = "png"
	FormatJPEG       = "jpeg"
	FormatSVG        = "svg"
	FormatHTML       = "html"
	FormatLaTeX      = "latex"
	FormatJavaScript = "javascript"
	FormatText       = "text"
)

// displayPriority is the fixed order in which a multi-format output picks
// its rendering: richer visual formats first, plain text last.
var displayPriority = []string{
	FormatPNG,
	FormatJPEG,
	FormatSVG,
	FormatHTML,
	FormatLaTeX,
	FormatJavaScript,
	FormatText,
}

// DisplayPriority returns a copy of the format precedence order.
func DisplayPriority() []string {
	return slices.Clone(displayPriority)
}

// displayRenderer renders one format payload.
type displayRenderer func(r *Renderer, payload Lines) (dom.Element, error)

var displayRenderers = map[string]displayRenderer{
	FormatPNG:        imageRenderer(FormatPNG),
	FormatJPEG:       imageRenderer(FormatJPEG),
	FormatSVG:        markupRenderer("svg-output"),
	FormatHTML:       markupRenderer("html-output"),
	FormatLaTeX:      markupRenderer("latex-output"),
	FormatJavaScript: renderJavaScript,
	FormatText:       renderText,
}

// imageRenderer embeds a base64 payload as a data URI image.
func imageRenderer(format string) displayRenderer {
	return func(r *Renderer, payload Lines) (dom.Element, error) {
		el := r.element("img", "image-output")
		data := strings.ReplaceAll(payload.String(), "\n", "")
		el.SetAttribute("src", "data:image/"+format+";base64,"+data)
		return el, nil
	}
}

// markupRenderer injects the payload verbatim: these formats are markup.
func markupRenderer(class string) displayRenderer {
	return func(r *Renderer, payload Lines) (dom.Element, error) {
		el := r.element("div", class)
		if err := r.setMarkup(el, payload.String()); err != nil {
			return nil, err
		}
		return el, nil
	}
}

func renderJavaScript(r *Renderer, payload Lines) (dom.Element, error) {
	el := r.element("script")
	el.SetText(payload.String())
	return el, nil
}

func renderText(r *Renderer, payload Lines) (dom.Element, error) {
	el := r.element("pre", "text-output")
	if err := el.SetInnerHTML(EscapeText(payload.String())); err != nil {
		return nil, err
	}
	return el, nil
}

// resolveFormat returns the highest-precedence format present in rec.
// javascript is skipped while a sanitizer is configured.
func (r *Renderer) resolveFormat(rec *OutputRecord) (string, Lines, bool) {
	for _, format := range displayPriority {
		if format == FormatJavaScript && r.sanitize != nil {
			continue
		}
		if payload, ok := rec.Payload(format); ok {
			return format, payload, true
		}
	}
	return "", nil, false
}

func (p *pass) renderOutput(o *Output) (dom.Element, error) {
	outer := p.element("div", "output")
	p.setPromptNumber(outer, o.cell)

	inner, err := p.renderOutputBody(o)
	if err != nil {
		return nil, err
	}
	outer.AppendChild(inner)
	return outer, nil
}

func (p *pass) renderOutputBody(o *Output) (dom.Element, error) {
	switch o.typ {
	case OutputDisplayData, OutputPyout:
		return p.renderDisplayData(o.raw)
	case OutputPyerr:
		return p.renderTerminal(p.element("pre", "pyerr"), o.raw.Traceback)
	case OutputStream:
		return p.renderTerminal(p.element("pre", o.streamName()), o.raw.Text)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutputType, o.typ)
	}
}

func (p *pass) renderDisplayData(rec *OutputRecord) (dom.Element, error) {
	format, payload, ok := p.resolveFormat(rec)
	if !ok {
		return p.element("div", "empty-output"), nil
	}
	return displayRenderers[format](p.Renderer, payload)
}

// renderTerminal fills el with terminal text converted by the ANSI
// collaborator.
func (p *pass) renderTerminal(el dom.Element, text Lines) (dom.Element, error) {
	markup, err := p.ansi(text.String())
	if err != nil {
		return nil, fmt.Errorf("converting ANSI: %w", err)
	}
	if err := p.setMarkup(el, markup); err != nil {
		return nil, err
	}
	return el, nil
}
