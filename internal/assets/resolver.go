package assets

import (
	"errors"
	"slices"
)

// AssetResolver looks assets up in a project assets directory first and in
// the embedded assets second, so a project can override a single template
// or style and keep the rest.
type AssetResolver struct {
	loaders []AssetLoader // in lookup order
}

// NewAssetResolver creates an AssetResolver. An empty dir uses the embedded
// assets only; a dir that is not a readable directory is an error.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if dir != "" {
		custom, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the first style called name.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first template called name.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// Styles lists every style name any loader provides.
func (r *AssetResolver) Styles() []string {
	var names []string
	for _, l := range r.loaders {
		names = append(names, l.Styles()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// HasCustomLoader reports whether a project assets directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.loaders) > 1
}

// first tries each loader in turn. Only not-found errors move on to the
// next loader; invalid names and read errors are returned immediately.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

var _ AssetLoader = (*AssetResolver)(nil)
