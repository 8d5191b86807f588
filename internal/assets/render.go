package assets

import (
	"fmt"
	"strings"
	"text/template"
)

// RenderTemplate loads the named template from loader and executes it with
// data. Missing fields in data are errors, so a custom template that refers
// to an unknown field fails instead of writing "<no value>".
func RenderTemplate(loader AssetLoader, name string, data any) (string, error) {
	text, err := loader.LoadTemplate(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	return sb.String(), nil
}
