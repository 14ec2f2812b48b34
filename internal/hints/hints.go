// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path and creating a config in ~/.config/go-nbrender/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-nbrender") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedVersion returns hints for notebooks in an nbformat the
// decoder does not read.
func ForUnsupportedVersion() string {
	return format("nbformat 3 and 4 are supported; upgrade older files with 'jupyter nbconvert --to notebook'")
}

// ForMalformedNotebook returns hints for notebooks that are not valid JSON
// or miss required fields.
func ForMalformedNotebook() string {
	return format("check the file is a saved notebook (.ipynb), not a script or export")
}

// ForRenderFailures returns hints when some cells rendered as placeholders.
// strict reports whether failures already abort the conversion.
func ForRenderFailures(strict bool) string {
	hints := []string{"run with -v to see which cells failed"}
	if !strict {
		hints = append(hints, "use --strict to fail on any render error")
	}
	return formatHints(hints)
}

// ForTemplate returns hints for page template errors.
func ForTemplate() string {
	return format("the template directory must contain page.html using {{.Title}}, {{.CSS}} and {{.Body}}")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
