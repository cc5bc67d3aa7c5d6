// Package page holds the render structure of a compiled document: its
// overview elements with every inline reference already resolved to an
// article handle.
package page

import (
	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/config"
)

// Page is one document ready to render.
type Page struct {
	Key         string
	Title       string
	Description string
	Preamble    string
	// Paths are the resolution paths: the document's own, then the project's.
	Paths []string
	Dir   []config.DirCrumb
	// Path is the output path relative to the documents output directory,
	// e.g. "algebra/groups.html".
	Path     string
	Elements []Element
}

// Articles returns every article referenced by the page's panels, in order
// of first appearance.
func (p *Page) Articles() []classes.ArticleID {
	seen := make(map[classes.ArticleID]bool)
	var out []classes.ArticleID
	for _, el := range p.Elements {
		panel, ok := el.(*Panel)
		if !ok {
			continue
		}
		for _, entry := range panel.Entries {
			link, ok := entry.(ArticleLink)
			if !ok || seen[link.Article] {
				continue
			}
			seen[link.Article] = true
			out = append(out, link.Article)
		}
	}
	return out
}

// Element is one overview element.
type Element interface {
	isElement()
}

// Heading is an overview heading.
type Heading struct {
	Level int
	Index string
	Text  string
}

// Paragraph is Markdown text.
type Paragraph struct {
	Text string
}

// Panel is a run of inline entries rendered as one link box.
type Panel struct {
	Entries []Entry
}

func (Heading) isElement()   {}
func (Paragraph) isElement() {}
func (*Panel) isElement()    {}

// Entry is one panel entry.
type Entry interface {
	isEntry()
}

// InlineHeading is a heading inside a panel.
type InlineHeading struct {
	Level int
	Text  string
	Index string
}

// ArticleLink points at a resolved article.
type ArticleLink struct {
	Article classes.ArticleID
	Index   string
}

func (InlineHeading) isEntry() {}
func (ArticleLink) isEntry()   {}
