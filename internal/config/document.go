package config

import (
	"github.com/vk/notarium/internal/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document is a read document file.
type Document struct {
	Key         string
	Title       string
	Description string
	Preamble    string
	Resolve     []string
	// Source is the file the document was read from, for diagnostics.
	Source string
	// FileName is the base file name, e.g. "groups.d.hcl".
	FileName string
	// Dir holds the directories between the documents root and the file.
	Dir []DirCrumb
	// Elements is the document structure in source order.
	Elements []Element
	// Articles holds every article declared in the document, in source order.
	Articles []*ArticleDeclaration
}

// Validate checks the document's required fields.
func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Key, validation.Required),
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Articles),
	)
}

// DirCrumb is one directory level of a document's location.
type DirCrumb struct {
	Name  string
	Crumb string
}

// Label returns the breadcrumb label, falling back to the directory name.
func (c DirCrumb) Label() string {
	if c.Crumb != "" {
		return c.Crumb
	}
	return c.Name
}

// Element is one element of a document's structure.
type Element interface {
	isDocumentElement()
}

// Heading is a document-level heading.
type Heading struct {
	Level int
	Index string
	Text  string
}

// Paragraph is Markdown text.
type Paragraph struct {
	Text string
}

// Panel groups consecutive inline items.
type Panel struct {
	Items []InlineItem
}

func (Heading) isDocumentElement()   {}
func (Paragraph) isDocumentElement() {}
func (*Panel) isDocumentElement()    {}

// InlineItem is one entry of a panel.
type InlineItem interface {
	isInlineItem()
}

// InlineHeading is a heading placed inside a panel.
type InlineHeading struct {
	Level int
	Text  string
	Index string
}

// IncludeItem references an existing class or article by key.
type IncludeItem struct {
	Key   string
	Index string
}

// Declared refers to Document.Articles[Article].
type Declared struct {
	Article int
	Index   string
}

func (InlineHeading) isInlineItem() {}
func (IncludeItem) isInlineItem()   {}
func (Declared) isInlineItem()      {}

// AppendInline appends item to the trailing panel of elements, opening a new
// panel when the last element is not one.
func AppendInline(elements []Element, item InlineItem) []Element {
	if n := len(elements); n > 0 {
		if panel, ok := elements[n-1].(*Panel); ok {
			panel.Items = append(panel.Items, item)
			return elements
		}
	}
	return append(elements, &Panel{Items: []InlineItem{item}})
}

// ArticleDeclaration is an article declared in a document.
type ArticleDeclaration struct {
	Type string
	// Key is the raw declaration key: `k`, `(k)` or `c(l)`.
	Key     string
	Names   []string
	Content []content.Element
	Links   []LinkDeclaration
	// Pos locates the declaration in its source file.
	Pos string
}

// Validate checks the declaration's required fields.
func (a ArticleDeclaration) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Type, validation.Required),
		validation.Field(&a.Key, validation.Required),
		validation.Field(&a.Names, validation.Required, validation.Each(validation.Required)),
	)
}

// LinkDeclaration lists the classes an article links to under one link type.
type LinkDeclaration struct {
	Link    string
	Targets []string
}
