package key

import "fmt"

// DeclarationForm tells which of the three declaration key shapes was used.
type DeclarationForm int

const (
	// FormClass is `k`: class k, article k@<doc>.
	FormClass DeclarationForm = iota
	// FormClassAndLocal is `c(l)`: class c, article l@<doc>.
	FormClassAndLocal
	// FormLocal is `(k)`: class k@<doc>, article k@<doc>.
	FormLocal
)

// Declaration is a parsed article declaration key.
type Declaration struct {
	Form  DeclarationForm
	Class string
	Local string
}

// Keys expands the declaration into its class key and article key for the
// document identified by documentKey.
func (d Declaration) Keys(documentKey string) (classKey, articleKey string) {
	switch d.Form {
	case FormClassAndLocal:
		return d.Class, Article(d.Local, documentKey)
	case FormLocal:
		local := Article(d.Local, documentKey)
		return local, local
	default:
		return d.Class, Article(d.Class, documentKey)
	}
}

// Article joins a prefix and a provenance suffix into an article key.
func Article(prefix, suffix string) string {
	return prefix + "@" + suffix
}

// ParseDeclaration parses `k`, `(k)` or `c(l)`.
func ParseDeclaration(s string) (Declaration, error) {
	r := NewReader(s)
	switch {
	case r.IsPlainKey():
		k, article, err := r.ParsePlain()
		if err != nil {
			return Declaration{}, err
		}
		if article {
			return Declaration{}, fmt.Errorf("declaration key %q cannot be an article key", s)
		}
		r.SkipWhitespace()
		if r.IsParenthesized() {
			local, err := r.ParseParenthesized()
			if err != nil {
				return Declaration{}, err
			}
			if !r.IsAtEnd() {
				return Declaration{}, fmt.Errorf("expected end of key %q", s)
			}
			return Declaration{Form: FormClassAndLocal, Class: k, Local: local}, nil
		}
		if !r.IsAtEnd() {
			return Declaration{}, fmt.Errorf("expected end of key %q", s)
		}
		return Declaration{Form: FormClass, Class: k}, nil
	case r.IsParenthesized():
		local, err := r.ParseParenthesized()
		if err != nil {
			return Declaration{}, err
		}
		if !r.IsAtEnd() {
			return Declaration{}, fmt.Errorf("expected end of key %q", s)
		}
		return Declaration{Form: FormLocal, Local: local}, nil
	}
	return Declaration{}, fmt.Errorf("invalid declaration key %q", s)
}

// ReferenceKind tells what a reference key points at.
type ReferenceKind int

const (
	RefClass ReferenceKind = iota
	RefArticle
	RefLocal
)

// Reference is a parsed include key.
type Reference struct {
	Kind ReferenceKind
	Key  string
}

// Resolve returns the class or article key the reference names. Local
// references are expanded against documentKey.
func (ref Reference) Resolve(documentKey string) string {
	if ref.Kind == RefLocal {
		return Article(ref.Key, documentKey)
	}
	return ref.Key
}

// ParseReference parses an include key: a class key, an article key or a
// parenthesized local key.
func ParseReference(s string) (Reference, error) {
	r := NewReader(s)
	switch {
	case r.IsPlainKey():
		k, article, err := r.ParsePlain()
		if err != nil {
			return Reference{}, err
		}
		if !r.IsAtEnd() {
			return Reference{}, fmt.Errorf("expected end of key %q", s)
		}
		if article {
			return Reference{Kind: RefArticle, Key: k}, nil
		}
		return Reference{Kind: RefClass, Key: k}, nil
	case r.IsParenthesized():
		k, err := r.ParseParenthesized()
		if err != nil {
			return Reference{}, err
		}
		if !r.IsAtEnd() {
			return Reference{}, fmt.Errorf("expected end of key %q", s)
		}
		return Reference{Kind: RefLocal, Key: k}, nil
	}
	return Reference{}, fmt.Errorf("invalid reference key %q", s)
}

// Split separates an article key into its class prefix and provenance
// suffix. ok is false for keys without `@`.
func Split(articleKey string) (prefix, suffix string, ok bool) {
	for i := len(articleKey) - 1; i >= 0; i-- {
		if articleKey[i] == '@' {
			return articleKey[:i], articleKey[i+1:], true
		}
	}
	return articleKey, "", false
}
