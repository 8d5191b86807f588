// Package zeta compiles one Markdown source into Zenn and Qiita articles.
//
// # Quick Start
//
//	b := zeta.NewBuilder()
//	result, err := b.Build(zeta.Input{Source: source})
//	if err != nil {
//	    var buildErr *zeta.BuildError
//	    if errors.As(err, &buildErr) {
//	        for _, d := range buildErr.Diagnostics {
//	            fmt.Println(d)
//	        }
//	    }
//	    return err
//	}
//	os.WriteFile("articles/hello.md", []byte(result.Zenn), 0o644)
//	os.WriteFile("public/hello.md", []byte(result.Qiita), 0o644)
//
// # Pipeline
//
//  1. Line endings are normalised to \n.
//  2. The scanner splits off the frontmatter and tokenizes the body.
//  3. The parser decodes the frontmatter and nests block tokens into elements.
//  4. One compiler per targeted platform renders the element tree.
//
// Scanning and parsing collect every problem before failing, so a broken
// document reports all of its diagnostics at once through *BuildError.
//
// # Source Dialect
//
// On top of Markdown the source understands:
//
//	:::message alert        message box (info, warn or alert)
//	:::details Title        collapsible section
//	::::message             one extra colon per nesting level, outermost highest
//	@[card](https://...)    link card
//	^[note]                 inline footnote
//	<macro>                 per-platform content, as a YAML mapping
//	zenn: only on Zenn
//	qiita: only on Qiita
//	</macro>
//
// A frontmatter key "only: zenn" or "only: qiita" restricts the targets.
//
// # Qiita Metadata
//
// Qiita assigns an id and other fields on publication. Pass the metadata of
// the published article through Input.Published to carry them over:
//
//	result, err := b.Build(zeta.Input{Source: source, Published: &previous})
package zeta
