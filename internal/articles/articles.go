// Package articles stores source articles and their compiled outputs in the
// project layout expected by zenn-cli and qiita-cli.
package articles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-zeta/internal/ast"
	"github.com/alnah/go-zeta/internal/compiler"
	"github.com/alnah/go-zeta/internal/fileutil"
	"github.com/alnah/go-zeta/internal/yamlutil"
)

// Ext is the extension of every article file.
const Ext = ".md"

// Slug limits. Zenn additionally requires at least ZennMinSlugLength characters.
const (
	MaxSlugLength     = 50
	ZennMinSlugLength = 12
)

// Sentinel errors for article storage.
var (
	ErrInvalidSlug       = errors.New("invalid article slug")
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleExists     = errors.New("article already exists")
	ErrPublishedMetadata = errors.New("failed to read published metadata")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// yamlFormat reads "---" frontmatter with goccy/go-yaml.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.Unmarshal)

// ValidateSlug checks that slug is usable as a file name on both platforms.
func ValidateSlug(slug string) error {
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("%w: %q (%d chars, max %d)", ErrInvalidSlug, slug, len(slug), MaxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q (lowercase letters, digits, '-' and '_' only)", ErrInvalidSlug, slug)
	}
	return nil
}

// Dirs locates the article directories, relative to Root.
type Dirs struct {
	Root   string
	Source string
	Zenn   string
	Qiita  string
}

// Store reads and writes the articles of one project.
type Store struct {
	dirs Dirs
}

// NewStore creates a Store over dirs.
func NewStore(dirs Dirs) *Store {
	return &Store{dirs: dirs}
}

// SourcePath is the path of the source article for slug.
func (s *Store) SourcePath(slug string) string {
	return filepath.Join(s.dirs.Root, s.dirs.Source, slug+Ext)
}

// OutputPath is the path of the compiled article for platform.
func (s *Store) OutputPath(p ast.Platform, slug string) string {
	dir := s.dirs.Zenn
	if p == ast.Qiita {
		dir = s.dirs.Qiita
	}
	return filepath.Join(s.dirs.Root, dir, slug+Ext)
}

// List returns the slugs of every source article, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dirs.Root, s.dirs.Source))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	var slugs []string
	for _, e := range entries {
		slug, ok := strings.CutSuffix(e.Name(), Ext)
		if ok && !e.IsDir() && ValidateSlug(slug) == nil {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// ReadSource returns the source text of slug.
func (s *Store) ReadSource(slug string) (string, error) {
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	path := s.SourcePath(slug)
	data, err := os.ReadFile(path) // #nosec G304 -- slug validated above
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrArticleNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// CreateSource writes a new source article and refuses to overwrite one.
func (s *Store) CreateSource(slug, content string) (string, error) {
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	path := s.SourcePath(slug)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) // #nosec G304 -- slug validated above
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrArticleExists, path)
		}
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// ReadPublished returns the Qiita metadata of the previous build of slug, or
// nil when there is none. Qiita writes its id and timestamps back into that
// file after publishing, so the next build must carry them over.
func (s *Store) ReadPublished(slug string) (*compiler.QiitaFrontmatter, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	path := s.OutputPath(ast.Qiita, slug)
	f, err := os.Open(path) // #nosec G304 -- slug validated above
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPublishedMetadata, err)
	}
	defer func() { _ = f.Close() }()

	var fm compiler.QiitaFrontmatter
	if _, err := frontmatter.MustParse(f, &fm, yamlFormat); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPublishedMetadata, path, err)
	}
	return &fm, nil
}

// WriteOutput replaces the compiled article of slug for platform.
func (s *Store) WriteOutput(p ast.Platform, slug, content string) (string, error) {
	path := s.OutputPath(p, slug)
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// RemoveOutput deletes the compiled article of slug for platform.
// It reports whether a file was removed.
func (s *Store) RemoveOutput(p ast.Platform, slug string) (bool, error) {
	return removeIfExists(s.OutputPath(p, slug))
}

// Remove deletes both outputs of slug and, unless keepSource, its source.
// It returns the removed paths.
func (s *Store) Remove(slug string, keepSource bool) ([]string, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	paths := []string{s.OutputPath(ast.Zenn, slug), s.OutputPath(ast.Qiita, slug)}
	if !keepSource {
		paths = append([]string{s.SourcePath(slug)}, paths...)
	}

	var removed []string
	for _, path := range paths {
		ok, err := removeIfExists(path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, path)
		}
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, slug)
	}
	return removed, nil
}

// Rename moves the source and both outputs of from to to. Nothing is moved
// when the source is missing or any target already exists.
func (s *Store) Rename(from, to string) error {
	if err := ValidateSlug(from); err != nil {
		return err
	}
	if err := ValidateSlug(to); err != nil {
		return err
	}
	if !fileutil.FileExists(s.SourcePath(from)) {
		return fmt.Errorf("%w: %s", ErrArticleNotFound, s.SourcePath(from))
	}

	type move struct{ from, to string }
	moves := []move{{s.SourcePath(from), s.SourcePath(to)}}
	for _, p := range ast.Platforms {
		if fileutil.FileExists(s.OutputPath(p, from)) {
			moves = append(moves, move{s.OutputPath(p, from), s.OutputPath(p, to)})
		}
	}

	for _, m := range moves {
		if _, err := os.Lstat(m.to); err == nil {
			return fmt.Errorf("%w: %s", ErrArticleExists, m.to)
		}
	}
	for _, m := range moves {
		if err := os.Rename(m.from, m.to); err != nil {
			return fmt.Errorf("renaming %s: %w", m.from, err)
		}
	}
	return nil
}

func removeIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("removing %s: %w", path, err)
}
