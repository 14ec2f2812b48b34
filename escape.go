package nbrender

import "strings"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeText makes raw text safe to inject as markup: the characters that
// start tags or entity references are replaced by entity references.
func EscapeText(raw string) string {
	return textEscaper.Replace(raw)
}
