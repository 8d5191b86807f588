package assets

// Names of the embedded assets.
const (
	DefaultStyleName    = "default"
	ArticleTemplateName = "article" // source article written by "zeta new"
	ConfigTemplateName  = "config"  // zeta.yaml written by "zeta init"
)

var builtinLoader = NewEmbeddedLoader()

// LoadStyle returns the embedded style called name.
func LoadStyle(name string) (string, error) {
	return builtinLoader.LoadStyle(name)
}

// LoadTemplate returns the embedded template called name.
func LoadTemplate(name string) (string, error) {
	return builtinLoader.LoadTemplate(name)
}
