// Package nbrender renders Jupyter notebooks (nbformat 3) as a tree of
// markup elements.
//
// # Quick Start
//
// Decode a notebook record, build the document model, and render it:
//
//	var raw nbrender.NotebookRecord
//	if err := json.Unmarshal(data, &raw); err != nil {
//	    log.Fatal(err)
//	}
//	nb, err := nbrender.Parse(&raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html, err := nbrender.NewRenderer().RenderString(nb)
//
// Render returns the element tree itself for callers that insert it into a
// larger document. nbformat 4 files can be decoded with internal/nbformat,
// which the nbrender command uses.
//
// # Rendering Pipeline
//
// Every node of the document model maps to one element:
//
//  1. notebook and worksheet containers
//  2. cells: markdown (converted), heading (h1-h6), raw (escaped), code
//  3. code inputs as pre/code, with optional syntax highlighting
//  4. outputs: streams (coalesced), tracebacks, and multi-format
//     display data resolved by DisplayPriority
//
// Every class the renderer emits is namespaced by a prefix, "nb-" unless
// WithClassPrefix says otherwise.
//
// # Configuration
//
// Use functional options to choose the host document and collaborators:
//
//	r := nbrender.NewRenderer(
//	    nbrender.WithGoldmark(false),
//	    nbrender.WithTerminalColors(),
//	    nbrender.WithSyntaxHighlighting(),
//	    nbrender.WithSanitizedMarkup(),
//	    nbrender.WithDocument(xmldom.New()),
//	)
//
// Without options, markdown and terminal text are injected as-is.
//
// # Failures
//
// A cell or output that fails to render is replaced by a placeholder with
// the "render-error" class and the rest of the notebook is still rendered.
// The returned error joins one *RenderError per failure; use errors.Is with
// the package sentinels to classify them.
//
// A Renderer holds no per-render state and may be shared by goroutines.
package nbrender
