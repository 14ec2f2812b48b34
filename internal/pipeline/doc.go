// Package pipeline implements the collaborators the notebook renderer
// delegates to and the stages around it.
//
// Collaborators plugged into nbrender.Renderer:
//   - Markdown to HTML conversion via Goldmark (markdown cells)
//   - Code highlighting via chroma (code inputs)
//   - ANSI escape handling via terminal-to-html or x/ansi (streams, tracebacks)
//   - Markup sanitizing via bluemonday (trusted payloads)
//
// Stages used by the CLI after rendering:
//   - Relative path rewriting for outputs written to another directory
//   - Standalone page assembly (title, CSS injection, page template)
//
// None of these stages touch the notebook model; they only transform text.
package pipeline
