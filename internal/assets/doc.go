// Package assets provides the CSS stylesheets applied to the book of abstracts.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled in with go:embed
//	    ├── FilesystemLoader  - styles from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// Styles live in {basePath}/styles/{name}.css. Names are validated so they
// cannot escape the styles directory.
package assets
