package compile

import (
	"context"
	"fmt"

	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/key"
	"github.com/vk/notarium/internal/model"
)

// obfuscationAttempts bounds the search for an unused random article key.
const obfuscationAttempts = 1 << 16

// builder runs both phases against one store.
type builder struct {
	model  *model.Model
	store  *classes.Store
	random func() uint16
}

// register is phase 1 for one source.
func (b *builder) register(ctx context.Context, src *source) error {
	src.declared = make([][]classes.ArticleID, len(src.docs))
	src.aliases = make(map[string]classes.ClassID)
	src.originals = make(map[string]struct{})
	for i, doc := range src.docs {
		docCtx := ctxlog.With(ctx, "document", doc.Key)
		ids := make([]classes.ArticleID, len(doc.Articles))
		for j, decl := range doc.Articles {
			id, err := b.registerArticle(docCtx, src, doc, decl)
			if err != nil {
				return err
			}
			ids[j] = id
		}
		src.declared[i] = ids
	}
	ctxlog.FromContext(ctx).Debug("Registered source.", "documents", len(src.docs))
	return nil
}

// registerArticle registers one declaration, creating its class on first
// sight. In an obfuscated source the article key is randomized right away,
// and so is the key of a class created by a `(k)` declaration, since that
// key equals the original article key.
func (b *builder) registerArticle(ctx context.Context, src *source, doc *config.Document, decl *config.ArticleDeclaration) (classes.ArticleID, error) {
	t, ok := b.model.GetType(decl.Type)
	if !ok {
		return 0, diag.Errorf(diag.CategorySchema, diag.CodeUndeclaredType,
			"found non-declared type %s at %s", decl.Type, decl.Pos)
	}
	parsed, err := key.ParseDeclaration(decl.Key)
	if err != nil {
		return 0, diag.Wrap(err, diag.CategoryKeySyntax, diag.CodeInvalidKey, "invalid article key %q at %s", decl.Key, decl.Pos)
	}
	classKey, articleKey := parsed.Keys(doc.Key)

	class, found := b.lookupClass(src, classKey)
	if !found {
		class = b.store.InsertClass(ctx, classKey, t)
	} else if b.store.Class(class).Type != t {
		return 0, diag.Errorf(diag.CategorySchema, diag.CodeTypeMismatch,
			"article %s at %s declared with type %s, but class %s has type %s",
			articleKey, decl.Pos, decl.Type, classKey, b.model.Type(b.store.Class(class).Type).Key)
	}

	id := b.store.InsertArticle(ctx, classes.Article{
		Class:   class,
		Key:     articleKey,
		Names:   decl.Names,
		Content: decl.Content,
	})
	if !src.obfuscated() {
		return id, nil
	}

	// Renamed keys never collide in the store, so duplicates are caught
	// against the original key.
	if _, duplicate := src.originals[articleKey]; duplicate {
		ctxlog.FromContext(ctx).Warn("Article was already registered; keeping the first registration.", "article", articleKey)
	}
	src.originals[articleKey] = struct{}{}

	if parsed.Form == key.FormLocal {
		return id, b.obfuscate(src, id, parsed.Local, !found)
	}
	return id, b.obfuscate(src, id, b.store.Class(class).Key, false)
}

// lookupClass finds a class by key, seeing the obfuscated classes of src
// under their original keys.
func (b *builder) lookupClass(src *source, classKey string) (classes.ClassID, bool) {
	if id, ok := src.aliases[classKey]; ok {
		return id, true
	}
	return b.store.GetClass(classKey)
}

// obfuscate replaces an article's key with `<prefix>#<random hex>@?`. With
// renameClass the owning class takes the same key.
func (b *builder) obfuscate(src *source, id classes.ArticleID, prefix string, renameClass bool) error {
	class := b.store.Article(id).Class
	for range obfuscationAttempts {
		candidate := fmt.Sprintf("%s#%x@?", prefix, b.random())
		if _, taken := b.store.GetArticle(candidate); taken {
			continue
		}
		if renameClass {
			if _, taken := b.store.GetClass(candidate); taken {
				continue
			}
			original := b.store.Class(class).Key
			if err := b.store.RenameClass(class, candidate); err != nil {
				return err
			}
			src.aliases[original] = class
		}
		return b.store.RenameArticle(id, candidate)
	}
	return diag.Errorf(diag.CategoryReference, diag.CodeDuplicateArticle,
		"no unused obfuscated key left for %s", prefix)
}

// link is the link half of phase 2 for one source.
func (b *builder) link(src *source) error {
	for i, doc := range src.docs {
		for j, decl := range doc.Articles {
			from := b.store.Article(src.declared[i][j]).Class
			t := b.store.Class(from).Type
			for _, ld := range decl.Links {
				lt, ok := b.model.GetLink(t, ld.Link)
				if !ok {
					return diag.Errorf(diag.CategorySchema, diag.CodeUndeclaredLink,
						"link type %s:%s at %s does not exist", b.model.Type(t).Key, ld.Link, decl.Pos)
				}
				for _, target := range ld.Targets {
					to, err := b.linkTarget(src, doc, target, decl.Pos)
					if err != nil {
						return err
					}
					if err := b.store.InsertLink(lt, from, to); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// linkTarget resolves a link target: a class key, a key with `@` naming the
// class a `(k)` declaration created, or a local key naming such a class in
// the same document.
func (b *builder) linkTarget(src *source, doc *config.Document, target, pos string) (classes.ClassID, error) {
	ref, err := key.ParseReference(target)
	if err != nil {
		return 0, diag.Wrap(err, diag.CategoryKeySyntax, diag.CodeInvalidKey, "invalid link target %q at %s", target, pos)
	}
	classKey := ref.Resolve(doc.Key)
	id, ok := b.lookupClass(src, classKey)
	if !ok {
		return 0, diag.Errorf(diag.CategoryReference, diag.CodeMissingClass,
			"linked class %s at %s does not exist", classKey, pos)
	}
	return id, nil
}
