package pipeline

import (
	"html"

	terminal "github.com/buildkite/terminal-to-html/v3"
	"github.com/charmbracelet/x/ansi"
)

// ANSIToHTML converts terminal output to HTML, turning SGR color and style
// sequences into spans with term-* classes. Other text is escaped.
func ANSIToHTML(src string) (string, error) {
	return string(terminal.Render([]byte(src))), nil
}

// StripANSI removes escape sequences and escapes the remaining text.
func StripANSI(src string) (string, error) {
	return html.EscapeString(ansi.Strip(src)), nil
}
