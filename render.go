package nbrender

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-nbrender/dom"
)

// Heading levels accepted by heading cells.
const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// promptAttr carries the cell execution counter.
const promptAttr = "data-prompt-number"

// Render builds the element tree for nb.
//
// A cell or output that fails to render is replaced by a render-error
// placeholder and rendering continues; the returned error joins one
// *RenderError per failure. A nil element is returned only when nb is nil
// or the host document itself fails.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(nb *Notebook) (root dom.Element, err error) {
	defer func() {
		if v := recover(); v != nil {
			root = nil
			err = fmt.Errorf("%w: %v", ErrRenderPanic, v)
		}
	}()

	if nb == nil {
		return nil, ErrNilNotebook
	}

	p := &pass{Renderer: r}
	root = r.element("div", "notebook")
	for i, ws := range nb.worksheets {
		p.worksheet = i
		root.AppendChild(p.renderWorksheet(ws))
	}

	r.logger.Debug().
		Str("title", nb.title).
		Int("worksheets", len(nb.worksheets)).
		Int("failures", len(p.errs)).
		Msg("notebook rendered")

	return root, errors.Join(p.errs...)
}

// WriteHTML renders nb and serializes the tree to w through the host
// document. Isolated render failures are returned after the tree is
// written. Returns ErrNotSerializable if the host cannot serialize.
func (r *Renderer) WriteHTML(w io.Writer, nb *Notebook) error {
	s, ok := r.doc.(dom.Serializer)
	if !ok {
		return ErrNotSerializable
	}

	root, renderErr := r.Render(nb)
	if root == nil {
		return renderErr
	}
	if err := s.Serialize(w, root); err != nil {
		return fmt.Errorf("serializing notebook: %w", err)
	}
	return renderErr
}

// RenderString is WriteHTML into a string.
func (r *Renderer) RenderString(nb *Notebook) (string, error) {
	var sb strings.Builder
	err := r.WriteHTML(&sb, nb)
	return sb.String(), err
}

// element creates tag with each class namespaced by the prefix.
func (r *Renderer) element(tag string, classes ...string) dom.Element {
	el := r.doc.CreateElement(tag)
	if len(classes) == 0 {
		return el
	}
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = r.classPrefix + c
	}
	el.SetClassName(strings.Join(names, " "))
	return el
}

// setMarkup injects trusted markup, sanitizing it first when configured.
func (r *Renderer) setMarkup(el dom.Element, markup string) error {
	if r.sanitize != nil {
		clean, err := r.sanitize(markup)
		if err != nil {
			return fmt.Errorf("sanitizing markup: %w", err)
		}
		markup = clean
	}
	return el.SetInnerHTML(markup)
}

// setPromptNumber copies the cell execution counter onto el.
func (r *Renderer) setPromptNumber(el dom.Element, c *Cell) {
	if n, ok := c.PromptNumber(); ok {
		el.SetAttribute(promptAttr, strconv.Itoa(n))
	}
}

// errorElement is the placeholder for a node that failed to render.
func (r *Renderer) errorElement(kind string, err error) dom.Element {
	el := r.element("div", kind, "render-error")
	el.SetText(err.Error())
	return el
}

// pass carries the state of one Render call so the Renderer stays immutable.
type pass struct {
	*Renderer
	worksheet int
	errs      []error
}

func (p *pass) fail(cell, output int, err error) {
	p.errs = append(p.errs, &RenderError{
		Worksheet: p.worksheet,
		Cell:      cell,
		Output:    output,
		Err:       err,
	})

	ev := p.logger.Warn().Err(err).Int("worksheet", p.worksheet).Int("cell", cell)
	if output != noIndex {
		ev = ev.Int("output", output)
	}
	ev.Msg("render failed")
}

func (p *pass) renderWorksheet(ws *Worksheet) dom.Element {
	el := p.element("div", "worksheet")
	for i, c := range ws.cells {
		cellEl, err := guard(func() (dom.Element, error) {
			return p.renderCell(i, c)
		})
		if err != nil {
			p.fail(i, noIndex, err)
			cellEl = p.errorElement("cell", err)
		}
		el.AppendChild(cellEl)
	}
	return el
}

func (p *pass) renderCell(index int, c *Cell) (dom.Element, error) {
	switch c.typ {
	case CellMarkdown:
		return p.renderMarkdown(c)
	case CellHeading:
		return p.renderHeading(c), nil
	case CellCode:
		return p.renderCode(index, c)
	case CellRaw:
		return p.renderRaw(c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCellType, c.typ)
	}
}

func (p *pass) renderMarkdown(c *Cell) (dom.Element, error) {
	el := p.element("div", "cell", "markdown-cell")
	markup, err := p.markdown(c.raw.Source.String())
	if err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	if err := p.setMarkup(el, markup); err != nil {
		return nil, err
	}
	return el, nil
}

func (p *pass) renderHeading(c *Cell) dom.Element {
	tag := "h" + strconv.Itoa(headingLevel(c.raw.Level))
	el := p.element(tag, "cell", "heading-cell")
	el.SetText(c.raw.Source.String())
	return el
}

// headingLevel clamps level to 1..6; a missing level is 1.
func headingLevel(level int) int {
	return min(max(level, minHeadingLevel), maxHeadingLevel)
}

func (p *pass) renderRaw(c *Cell) (dom.Element, error) {
	el := p.element("pre", "cell", "raw-cell")
	if err := el.SetInnerHTML(EscapeText(c.raw.Source.String())); err != nil {
		return nil, err
	}
	return el, nil
}

func (p *pass) renderCode(index int, c *Cell) (dom.Element, error) {
	el := p.element("div", "cell", "code-cell")

	input, err := p.renderInput(c.input)
	if err != nil {
		return nil, fmt.Errorf("rendering input: %w", err)
	}
	el.AppendChild(input)

	for i, o := range c.outputs {
		outEl, err := guard(func() (dom.Element, error) {
			return p.renderOutput(o)
		})
		if err != nil {
			p.fail(index, i, err)
			outEl = p.errorElement("output", err)
		}
		el.AppendChild(outEl)
	}
	return el, nil
}

func (p *pass) renderInput(in *Input) (dom.Element, error) {
	if len(in.raw) == 0 {
		return p.element("div"), nil
	}

	holder := p.element("div", "input")
	p.setPromptNumber(holder, in.cell)

	pre := p.element("pre")
	code := p.element("code")
	lang := in.cell.Language()
	if lang != "" {
		code.SetAttribute("data-language", lang)
		code.SetClassName("lang-" + lang)
	}
	if err := code.SetInnerHTML(p.codeMarkup(lang, in.Source())); err != nil {
		return nil, err
	}

	pre.AppendChild(code)
	holder.AppendChild(pre)
	return holder, nil
}

// codeMarkup highlights source when a highlighter and a language are
// available, and escapes it otherwise.
func (p *pass) codeMarkup(lang, source string) string {
	if p.highlight == nil || lang == "" {
		return EscapeText(source)
	}
	markup, err := p.highlight(lang, source)
	if err != nil {
		p.logger.Debug().Err(err).Str("language", lang).Msg("highlighting failed, using plain text")
		return EscapeText(source)
	}
	return markup
}

// guard runs fn, converting a panic into ErrRenderPanic.
func guard(fn func() (dom.Element, error)) (el dom.Element, err error) {
	defer func() {
		if v := recover(); v != nil {
			el = nil
			err = fmt.Errorf("%w: %v", ErrRenderPanic, v)
		}
	}()
	return fn()
}
