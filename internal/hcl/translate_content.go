package hcl

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/notarium/internal/content"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/schema"
)

// contentElement translates one block of article content.
func contentElement(block *hclsyntax.Block) (content.Element, error) {
	if err := expectLabels(block, 0); err != nil {
		return nil, err
	}
	pos := at(block.DefRange())

	switch block.Type {
	case "heading":
		var h schema.ContentHeadingBlock
		if err := decode(block.Body, &h, "heading at "+pos); err != nil {
			return nil, err
		}
		if h.Level < 2 || h.Level > 6 {
			return nil, diag.Errorf(diag.CategoryStructure, diag.CodeHeadingLevel,
				"heading level %d in article at %s is not allowed; use 2 to 6", h.Level, pos)
		}
		return content.Heading{Level: h.Level, Text: h.Text}, nil

	case "paragraph", "code", "text":
		var t schema.TextBlock
		if err := decode(block.Body, &t, block.Type+" at "+pos); err != nil {
			return nil, err
		}
		switch block.Type {
		case "paragraph":
			return content.Paragraph{Text: t.Text}, nil
		case "code":
			return content.Code{Text: t.Text}, nil
		}
		return content.Text{Text: t.Text}, nil

	case "math":
		var m schema.MathBlock
		if err := decode(block.Body, &m, "math at "+pos); err != nil {
			return nil, err
		}
		return content.Math{TeX: m.TeX}, nil

	case "anchor":
		var a schema.AnchorBlock
		if err := decode(block.Body, &a, "anchor at "+pos); err != nil {
			return nil, err
		}
		return content.Anchor{Href: a.Href, Label: a.Label}, nil
	}

	return nil, diag.Errorf(diag.CategoryStructure, diag.CodeInvalidContent,
		"element %q of article content at %s must be a heading, paragraph, math, code, anchor or text block", block.Type, pos)
}
