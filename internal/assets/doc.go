// Package assets provides the page template and stylesheet that wrap a
// rendered notebook into a standalone HTML document.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in page.html and default.css (go:embed)
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// A custom directory only needs the files it overrides:
//
//	{basePath}/
//	├── page.html      # page template ({{.Title}}, {{.CSS}}, {{.Body}})
//	└── default.css    # base stylesheet
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
