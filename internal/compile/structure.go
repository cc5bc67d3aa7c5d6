package compile

import (
	"path"
	"strings"

	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/key"
	"github.com/vk/notarium/internal/page"
)

// pages is the structure half of phase 2: one page per document of src.
func (b *builder) pages(src *source) ([]*page.Page, error) {
	out := make([]*page.Page, 0, len(src.docs))
	for i, doc := range src.docs {
		p, err := b.page(src, i, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (b *builder) page(src *source, index int, doc *config.Document) (*page.Page, error) {
	paths := make([]string, 0, len(doc.Resolve)+len(src.resolve))
	paths = append(paths, doc.Resolve...)
	paths = append(paths, src.resolve...)

	preamble := doc.Preamble
	if preamble == "" {
		preamble = src.preamble
	}

	p := &page.Page{
		Key:         doc.Key,
		Title:       doc.Title,
		Description: doc.Description,
		Preamble:    preamble,
		Paths:       paths,
		Dir:         doc.Dir,
		Path:        outputPath(doc),
	}
	for _, el := range doc.Elements {
		switch el := el.(type) {
		case config.Heading:
			p.Elements = append(p.Elements, page.Heading{Level: el.Level, Index: el.Index, Text: el.Text})
		case config.Paragraph:
			p.Elements = append(p.Elements, page.Paragraph{Text: el.Text})
		case *config.Panel:
			panel := &page.Panel{}
			for _, item := range el.Items {
				entry, err := b.entry(src, index, doc, paths, item)
				if err != nil {
					return nil, err
				}
				panel.Entries = append(panel.Entries, entry)
			}
			p.Elements = append(p.Elements, panel)
		}
	}
	return p, nil
}

func (b *builder) entry(src *source, index int, doc *config.Document, paths []string, item config.InlineItem) (page.Entry, error) {
	switch item := item.(type) {
	case config.InlineHeading:
		return page.InlineHeading{Level: item.Level, Text: item.Text, Index: item.Index}, nil
	case config.Declared:
		return page.ArticleLink{Article: src.declared[index][item.Article], Index: item.Index}, nil
	case config.IncludeItem:
		id, err := b.reference(doc, paths, item.Key)
		if err != nil {
			return nil, err
		}
		return page.ArticleLink{Article: id, Index: item.Index}, nil
	}
	return nil, diag.Errorf(diag.CategoryStructure, diag.CodeInvalidContent, "unsupported panel entry %T in %s", item, doc.Source)
}

// reference resolves an include key. A class key yields the class variant
// preferred by paths; article and local keys must name an indexed article.
func (b *builder) reference(doc *config.Document, paths []string, raw string) (classes.ArticleID, error) {
	ref, err := key.ParseReference(raw)
	if err != nil {
		return 0, diag.Wrap(err, diag.CategoryKeySyntax, diag.CodeInvalidKey, "invalid include key %q in %s", raw, doc.Source)
	}
	target := ref.Resolve(doc.Key)
	if ref.Kind == key.RefClass {
		class, ok := b.store.GetClass(target)
		if !ok {
			return 0, diag.Errorf(diag.CategoryReference, diag.CodeMissingClass,
				"included class %s in %s does not exist", target, doc.Source)
		}
		return b.store.Resolve(class, paths), nil
	}
	id, ok := b.store.GetArticle(target)
	if !ok {
		return 0, diag.Errorf(diag.CategoryReference, diag.CodeMissingArticle,
			"included article %s in %s does not exist", target, doc.Source)
	}
	return id, nil
}

// outputPath is the page location below the documents output directory.
func outputPath(doc *config.Document) string {
	parts := make([]string, 0, len(doc.Dir)+1)
	for _, crumb := range doc.Dir {
		parts = append(parts, crumb.Name)
	}
	parts = append(parts, strings.TrimSuffix(doc.FileName, config.DocumentExt)+".html")
	return path.Join(parts...)
}
