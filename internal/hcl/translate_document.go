package hcl

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/fsutil"
	"github.com/vk/notarium/internal/schema"
)

// LoadDocuments reads every *.d.hcl file below dir. A missing directory
// yields no documents.
func (l *Loader) LoadDocuments(ctx context.Context, dir string) ([]*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("Documents directory does not exist.", "dir", dir)
		return nil, nil
	}
	paths, err := fsutil.FindFilesByExtension(dir, config.DocumentExt)
	if err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to walk documents directory %s", dir)
	}

	parser := hclparse.NewParser()
	crumbs := make(map[string]string)
	docs := make([]*config.Document, 0, len(paths))
	for _, path := range paths {
		dirCrumbs, err := l.dirCrumbs(ctx, parser, dir, filepath.Dir(path), crumbs)
		if err != nil {
			return nil, err
		}
		doc, err := l.readDocument(ctx, parser, path)
		if err != nil {
			return nil, err
		}
		doc.FileName = filepath.Base(path)
		doc.Dir = dirCrumbs
		docs = append(docs, doc)
	}

	logger.Debug("Documents loaded.", "dir", dir, "count", len(docs))
	return docs, nil
}

// dirCrumbs returns one crumb per directory between root and dir. Labels come
// from each directory's dir.hcl when present; cache holds labels already read.
func (l *Loader) dirCrumbs(ctx context.Context, parser *hclparse.Parser, root, dir string, cache map[string]string) ([]config.DirCrumb, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to locate %s below %s", dir, root)
	}
	if rel == "." {
		return nil, nil
	}

	var out []config.DirCrumb
	current := root
	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, name)
		label, seen := cache[current]
		if !seen {
			label, err = l.readDirFile(ctx, parser, filepath.Join(current, config.DirFile))
			if err != nil {
				return nil, err
			}
			cache[current] = label
		}
		out = append(out, config.DirCrumb{Name: name, Crumb: label})
	}
	return out, nil
}

func (l *Loader) readDirFile(ctx context.Context, parser *hclparse.Parser, path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	body, err := l.parseFile(ctx, parser, path)
	if err != nil {
		return "", err
	}
	var file schema.DirFile
	if err := decode(body, &file, path); err != nil {
		return "", err
	}
	return file.Name, nil
}

// readDocument reads one document file. Content blocks are walked in source
// order; their relative order defines the document structure.
func (l *Loader) readDocument(ctx context.Context, parser *hclparse.Parser, path string) (*config.Document, error) {
	body, err := l.parseFile(ctx, parser, path)
	if err != nil {
		return nil, err
	}
	var header schema.DocumentHeader
	if err := decode(body, &header, path); err != nil {
		return nil, err
	}

	doc := &config.Document{
		Key:     header.Key,
		Title:   header.Title,
		Resolve: header.Resolve,
		Source:  path,
	}
	if header.Description != nil {
		doc.Description = *header.Description
	}
	if header.Preamble != nil {
		doc.Preamble = *header.Preamble
	}

	r := &documentReader{doc: doc, level: 1}
	for _, block := range body.Blocks {
		if err := r.element(block); err != nil {
			return nil, err
		}
	}
	if err := validate(doc, "document "+path); err != nil {
		return nil, err
	}
	return doc, nil
}

// documentReader accumulates a document's structure while walking its blocks.
type documentReader struct {
	doc *config.Document
	// level is the last heading level seen; documents start at level 1.
	level int
}

func (r *documentReader) element(block *hclsyntax.Block) error {
	switch block.Type {
	case "heading":
		if err := expectLabels(block, 0); err != nil {
			return err
		}
		var h schema.HeadingBlock
		if err := decode(block.Body, &h, "heading at "+at(block.DefRange())); err != nil {
			return err
		}
		if err := r.checkLevel(h.Level, block); err != nil {
			return err
		}
		index := ""
		if h.Index != nil {
			index = *h.Index
		}
		if h.Inline {
			r.doc.Elements = config.AppendInline(r.doc.Elements, config.InlineHeading{Level: h.Level, Text: h.Text, Index: index})
		} else {
			r.doc.Elements = append(r.doc.Elements, config.Heading{Level: h.Level, Index: index, Text: h.Text})
		}

	case "paragraph":
		if err := expectLabels(block, 0); err != nil {
			return err
		}
		var p schema.TextBlock
		if err := decode(block.Body, &p, "paragraph at "+at(block.DefRange())); err != nil {
			return err
		}
		r.doc.Elements = append(r.doc.Elements, config.Paragraph{Text: p.Text})

	case "include":
		item, err := r.include(block, "")
		if err != nil {
			return err
		}
		r.doc.Elements = config.AppendInline(r.doc.Elements, item)

	case "inline":
		return r.inline(block)

	case "article":
		idx, err := r.article(block)
		if err != nil {
			return err
		}
		r.doc.Elements = config.AppendInline(r.doc.Elements, config.Declared{Article: idx})

	default:
		return diag.Errorf(diag.CategoryStructure, diag.CodeInvalidContent,
			"unexpected block %q at %s; expected heading, paragraph, include, inline or article", block.Type, at(block.DefRange()))
	}
	return nil
}

func (r *documentReader) checkLevel(level int, block *hclsyntax.Block) error {
	switch {
	case level == 1:
		return diag.Errorf(diag.CategoryStructure, diag.CodeHeadingLevel,
			"found illegal heading at %s; level 1 headings are not allowed", at(block.DefRange()))
	case level < 1 || level > 6:
		return diag.Errorf(diag.CategoryStructure, diag.CodeHeadingLevel,
			"heading level %d at %s is out of range 2 to 6", level, at(block.DefRange()))
	case level > r.level+1:
		return diag.Errorf(diag.CategoryStructure, diag.CodeHeadingJump,
			"heading level jumped by multiple levels at %s (from %d to %d)", at(block.DefRange()), r.level, level)
	}
	r.level = level
	return nil
}

func (r *documentReader) include(block *hclsyntax.Block, index string) (config.InlineItem, error) {
	if err := expectLabels(block, 1); err != nil {
		return nil, err
	}
	var empty struct{}
	if err := decode(block.Body, &empty, "include at "+at(block.DefRange())); err != nil {
		return nil, err
	}
	return config.IncludeItem{Key: block.Labels[0], Index: index}, nil
}

// inline reads an indexed section: each include or article inside it becomes
// a panel entry carrying the section index.
func (r *documentReader) inline(block *hclsyntax.Block) error {
	if err := expectLabels(block, 1); err != nil {
		return err
	}
	if len(block.Body.Attributes) > 0 {
		return diag.Errorf(diag.CategoryStructure, diag.CodeInvalidContent,
			"inline section at %s only takes include and article blocks", at(block.DefRange()))
	}
	index := block.Labels[0]
	for _, inner := range block.Body.Blocks {
		switch inner.Type {
		case "include":
			item, err := r.include(inner, index)
			if err != nil {
				return err
			}
			r.doc.Elements = config.AppendInline(r.doc.Elements, item)
		case "article":
			idx, err := r.article(inner)
			if err != nil {
				return err
			}
			r.doc.Elements = config.AppendInline(r.doc.Elements, config.Declared{Article: idx, Index: index})
		default:
			return diag.Errorf(diag.CategoryStructure, diag.CodeInvalidContent,
				"unexpected block %q in inline section at %s", inner.Type, at(inner.DefRange()))
		}
	}
	return nil
}

// article reads a declaration and returns its index in doc.Articles.
func (r *documentReader) article(block *hclsyntax.Block) (int, error) {
	if err := expectLabels(block, 2); err != nil {
		return 0, err
	}
	pos := at(block.DefRange())
	var body schema.ArticleBody
	if err := decode(block.Body, &body, "article at "+pos); err != nil {
		return 0, err
	}

	decl := &config.ArticleDeclaration{
		Type:  block.Labels[0],
		Key:   block.Labels[1],
		Names: body.Names,
		Pos:   pos,
	}
	for _, inner := range block.Body.Blocks {
		if inner.Type == "link" {
			if err := expectLabels(inner, 1); err != nil {
				return 0, err
			}
			var link schema.ArticleLinkBody
			if err := decode(inner.Body, &link, "link at "+at(inner.DefRange())); err != nil {
				return 0, err
			}
			decl.Links = append(decl.Links, config.LinkDeclaration{Link: inner.Labels[0], Targets: link.To})
			continue
		}
		el, err := contentElement(inner)
		if err != nil {
			return 0, err
		}
		decl.Content = append(decl.Content, el)
	}

	r.doc.Articles = append(r.doc.Articles, decl)
	return len(r.doc.Articles) - 1, nil
}

func expectLabels(block *hclsyntax.Block, n int) error {
	if len(block.Labels) != n {
		return diag.Errorf(diag.CategoryStructure, diag.CodeInvalidContent,
			"block %q at %s takes %d label(s), found %d", block.Type, at(block.DefRange()), n, len(block.Labels))
	}
	return nil
}
