package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/vk/notarium/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown renders paragraph text. Raw HTML is passed through, as in the
// source documents it is authored content.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Markdown renders one paragraph of Markdown text.
func Markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Content renders article content elements to HTML, in order.
func Content(elements []content.Element) (template.HTML, error) {
	var buf bytes.Buffer
	for _, el := range elements {
		switch el := el.(type) {
		case content.Heading:
			fmt.Fprintf(&buf, "<h%d>%s</h%d>", el.Level, template.HTMLEscapeString(el.Text), el.Level)
		case content.Paragraph:
			p, err := Markdown(el.Text)
			if err != nil {
				return "", err
			}
			buf.WriteString(string(p))
		case content.Math:
			fmt.Fprintf(&buf, `<p class="math">\[%s\]</p>`, template.HTMLEscapeString(el.TeX))
		case content.Code:
			fmt.Fprintf(&buf, "<pre><code>%s</code></pre>", template.HTMLEscapeString(el.Text))
		case content.Anchor:
			fmt.Fprintf(&buf, `<p><a href="%s">%s</a></p>`, template.HTMLEscapeString(el.Href), template.HTMLEscapeString(el.Label))
		case content.Text:
			fmt.Fprintf(&buf, "<p>%s</p>", template.HTMLEscapeString(el.Text))
		default:
			return "", fmt.Errorf("unsupported content element %T", el)
		}
	}
	return template.HTML(buf.String()), nil
}
