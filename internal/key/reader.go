// Package key implements the key grammar used to name classes and articles.
//
// A plain key is a run of key characters (ASCII letters and digits plus
// `-`, `'`, `&`, `.` and `#`) with at most one `@` separating a class key
// from an article suffix. A parenthesized key `(k)` is a document-local key.
// The combined form `c(l)` names class `c` with a document-local article `l`.
//
// The Reader never backtracks: callers check a predicate (IsPlainKey,
// IsParenthesized, IsAtEnd) before calling the matching parse operation.
package key

import "fmt"

// IsKeyCharacter reports whether r may appear in a plain key.
func IsKeyCharacter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '\'', r == '&', r == '.', r == '#':
		return true
	}
	return false
}

// Reader is a single-pass recognizer over a key string.
type Reader struct {
	input []rune
	pos   int
}

// NewReader creates a reader positioned at the start of s.
func NewReader(s string) *Reader {
	return &Reader{input: []rune(s)}
}

func (r *Reader) peek() (rune, bool) {
	if r.pos >= len(r.input) {
		return 0, false
	}
	return r.input[r.pos], true
}

// IsPlainKey reports whether the next character starts a plain key.
func (r *Reader) IsPlainKey() bool {
	c, ok := r.peek()
	return ok && IsKeyCharacter(c)
}

// IsParenthesized reports whether the next character opens a parenthesized key.
func (r *Reader) IsParenthesized() bool {
	c, ok := r.peek()
	return ok && c == '('
}

// IsAtEnd reports whether the whole input has been consumed.
func (r *Reader) IsAtEnd() bool {
	return r.pos >= len(r.input)
}

// SkipWhitespace consumes spaces and tabs.
func (r *Reader) SkipWhitespace() {
	for {
		c, ok := r.peek()
		if !ok || (c != ' ' && c != '\t') {
			return
		}
		r.pos++
	}
}

// ParsePlain consumes a plain key. The returned bool is true when the key
// contains an `@` and therefore names an article rather than a class.
func (r *Reader) ParsePlain() (string, bool, error) {
	start := r.pos
	article := false
	for {
		c, ok := r.peek()
		if !ok {
			break
		}
		if IsKeyCharacter(c) {
			r.pos++
			continue
		}
		if c != '@' {
			break
		}
		if article {
			return "", false, fmt.Errorf("cannot have multiple @ characters in key %q", string(r.input))
		}
		article = true
		r.pos++
		if !r.IsPlainKey() {
			return "", false, fmt.Errorf("article key %q is missing the article suffix after @", string(r.input))
		}
	}
	return string(r.input[start:r.pos]), article, nil
}

// ParseParenthesized consumes `(key)` and returns the inner key.
func (r *Reader) ParseParenthesized() (string, error) {
	r.pos++ // (
	if !r.IsPlainKey() {
		return "", fmt.Errorf("expected key in parentheses in %q", string(r.input))
	}
	k, article, err := r.ParsePlain()
	if err != nil {
		return "", err
	}
	if article {
		return "", fmt.Errorf("character '@' is not allowed in local key %q", string(r.input))
	}
	c, ok := r.peek()
	if !ok {
		return "", fmt.Errorf("expected ')' but found end of key %q", string(r.input))
	}
	if c != ')' {
		return "", fmt.Errorf("expected ')' but found %q in key %q", c, string(r.input))
	}
	r.pos++
	return k, nil
}
