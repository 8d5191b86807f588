package compiler

// ImageResolver maps a local image path such as /images/a.png to the
// absolute URL it is served from once published.
type ImageResolver interface {
	ResolveImage(path string) (string, error)
}

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc func(path string) (string, error)

func (f ImageResolverFunc) ResolveImage(path string) (string, error) {
	return f(path)
}
