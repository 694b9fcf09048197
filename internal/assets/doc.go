// Package assets provides HTML stylesheets and translation catalogs.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and locales (go:embed)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory may override a single stylesheet or locale and may add
// new locales; everything it does not provide comes from the embedded set.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # stylesheet for the HTML and PDF renderers
//	└── locales/
//	    └── {lang}.yaml      # flat key: text translation table
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
