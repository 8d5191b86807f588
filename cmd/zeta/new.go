package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-zeta"
	"github.com/alnah/go-zeta/internal/articles"
	"github.com/alnah/go-zeta/internal/assets"
	"github.com/alnah/go-zeta/internal/ast"
)

// Zenn article types.
const (
	typeTech = "tech"
	typeIdea = "idea"
)

const defaultEmoji = "📝"

// articleData fills the article template.
type articleData struct {
	Title  string
	Emoji  string
	Type   string
	Topics []string
}

func runNewCmd(args []string, env *Environment) int {
	f, rest, err := parseNewFlags(args, env.Stderr)
	if err != nil {
		return flagExit(env, err, printNewUsage)
	}
	env.configureLogger(f.common)

	if err := requireArgs(rest, 1, "slug"); err != nil {
		return fail(env, err)
	}
	if err := runNew(f, rest[0], env); err != nil {
		return fail(env, err)
	}
	return ExitSuccess
}

func runNew(f *newFlags, slug string, env *Environment) error {
	if err := articles.ValidateSlug(slug); err != nil {
		return err
	}
	if f.typ != typeTech && f.typ != typeIdea {
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidType, f.typ, typeTech, typeIdea)
	}
	if len(f.topics) > ast.MaxTopics {
		return fmt.Errorf("%w: %d (max %d)", zeta.ErrTooManyTopics, len(f.topics), ast.MaxTopics)
	}

	p, err := openProject(env, f.common)
	if err != nil {
		return err
	}

	loader, err := assets.NewAssetResolver(p.config.Assets.BasePath)
	if err != nil {
		return err
	}

	data := articleData{
		Title:  f.title,
		Emoji:  f.emoji,
		Type:   f.typ,
		Topics: f.topics,
	}
	if data.Title == "" {
		data.Title = titleFromSlug(slug)
	}
	content, err := assets.RenderTemplate(loader, assets.ArticleTemplateName, data)
	if err != nil {
		return err
	}

	path, err := p.store.CreateSource(slug, content)
	if err != nil {
		return err
	}
	warnShortSlug(env, slug)
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", p.rel(path))
	}
	return nil
}

// titleFromSlug turns "my-first_post" into "My First Post".
func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(strings.Join(strings.Fields(words), " "))
}
