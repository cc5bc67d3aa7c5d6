// Package content defines the closed set of elements an article body is made of.
package content

// Element is one element of article content. The set of implementations is
// closed; consumers dispatch with a type switch.
type Element interface {
	isElement()
}

// Heading is a section heading inside an article. Level is 2 to 6.
type Heading struct {
	Level int
	Text  string
}

// Paragraph holds Markdown text.
type Paragraph struct {
	Text string
}

// Math is a display formula in TeX notation.
type Math struct {
	TeX string
}

// Code is a preformatted code block.
type Code struct {
	Text string
}

// Anchor is a hyperlink to an external resource.
type Anchor struct {
	Href  string
	Label string
}

// Text is plain, unformatted text.
type Text struct {
	Text string
}

func (Heading) isElement()   {}
func (Paragraph) isElement() {}
func (Math) isElement()      {}
func (Code) isElement()      {}
func (Anchor) isElement()    {}
func (Text) isElement()      {}
