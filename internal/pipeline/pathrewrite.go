package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths rewrites relative image and link paths in a rendered
// notebook so they still resolve when the HTML is written to outputDir
// instead of sourceDir. If both directories are the same, or either is
// empty, the HTML is returned unchanged.
//
// Rewrites:
//   - img[src]: figures referenced from markdown cells
//   - a[href]: relative file links (not anchors, not URLs)
//
// Paths that escape sourceDir are left as written.
func RewriteRelativePaths(htmlContent, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absSourceDir == absOutputDir {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, pathMapping{source: absSourceDir, output: absOutputDir})

	return renderHTML(doc, isFragment)
}

// pathMapping relocates paths written for source to be read from output.
type pathMapping struct {
	source string
	output string
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.TrimSpace(content)

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype") ||
		strings.HasPrefix(strings.ToLower(trimmed), "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		// Render each child directly
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	// Full document: render normally
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rewrites relative paths.
func rewriteNode(n *html.Node, m pathMapping) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rewriteAttr(n, "src", m)
		case "a":
			rewriteAttr(n, "href", m)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, m)
	}
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(n *html.Node, attrName string, m pathMapping) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		absPath := filepath.Join(m.source, filepath.FromSlash(attr.Val))
		if !isPathUnderDir(absPath, m.source) {
			continue
		}

		rel, err := filepath.Rel(m.output, absPath)
		if err != nil {
			continue
		}
		n.Attr[i].Val = filepath.ToSlash(rel)
	}
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	// Skip anchors
	if strings.HasPrefix(path, "#") {
		return false
	}

	// Skip absolute paths
	if filepath.IsAbs(path) {
		return false
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	// Path is under dir if it starts with dir/ or equals dir
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
