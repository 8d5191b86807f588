// Package assets holds the templates the CLI writes (the starter article
// and zeta.yaml) and the CSS styles of HTML previews.
//
// Assets are looked up by bare name. A project may set assets.basePath to a
// directory with the same layout as the embedded assets:
//
//	<basePath>/
//	├── styles/<name>.css
//	└── templates/
//	    ├── article.tmpl
//	    └── config.tmpl
//
// AssetResolver reads that directory first and falls back to the embedded
// copy per asset, so overriding article.tmpl keeps the built-in styles.
// Names never contain separators or dots, and files reached through
// symlinks must stay inside basePath.
package assets
