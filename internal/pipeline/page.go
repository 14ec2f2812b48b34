package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// PageData holds the values a page template is executed with.
type PageData struct {
	Title string
	CSS   string
	Body  string
}

// pageView is what the template sees: body and CSS are trusted values.
type pageView struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// PageRenderer wraps a rendered notebook fragment in a standalone page.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses tmplContent as an html/template.
// Returns error if the template cannot be parsed.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render executes the template into w. CSS is escaped against breaking
// out of its <style> block; the body is inserted as is.
func (p *PageRenderer) Render(w io.Writer, data PageData) error {
	view := pageView{
		Title: data.Title,
		CSS:   template.CSS(sanitizeCSS(data.CSS)), // #nosec G203 -- closing sequences escaped by sanitizeCSS
		Body:  template.HTML(data.Body),            // #nosec G203 -- output of the notebook renderer
	}
	if err := p.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
