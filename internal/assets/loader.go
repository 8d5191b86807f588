package assets

// AssetLoader loads styles and templates by bare name, without directory or
// extension. Implementations return ErrInvalidAssetName for names that
// ValidateAssetName rejects and a not-found sentinel for missing assets.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)

	// Styles lists the available style names, sorted.
	Styles() []string
}

// assetKind describes where one kind of asset lives.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".tmpl", notFound: ErrTemplateNotFound}
)

// file is the slash-separated path of name relative to an assets root.
func (k assetKind) file(name string) string {
	return k.dir + "/" + name + k.ext
}
