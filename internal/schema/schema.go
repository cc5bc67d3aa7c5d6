// Package schema holds the HCL decode targets for project, model, directory
// and document files. Structs are decoded with gohcl; blocks whose relative
// order matters are read from the hclsyntax body instead.
package schema

import "github.com/hashicorp/hcl/v2"

// --- Project file ---

// ProjectFile is the top level of project.hcl.
type ProjectFile struct {
	Model        string             `hcl:"model"`
	Resolve      []string           `hcl:"resolve,optional"`
	Preamble     *string            `hcl:"preamble,optional"`
	Dependencies []*DependencyBlock `hcl:"dependency,block"`
}

// DependencyBlock is a `dependency "<path>" { include = "..." }` block.
type DependencyBlock struct {
	Path    string `hcl:"path,label"`
	Include string `hcl:"include"`
}

// --- Model file ---

// ModelFile is the top level of a model file.
type ModelFile struct {
	Types []*TypeBlock `hcl:"type,block"`
}

// TypeBlock declares one article type.
type TypeBlock struct {
	Key          string       `hcl:"key,label"`
	Name         string       `hcl:"name"`
	Description  *string      `hcl:"description,optional"`
	Abbreviation *string      `hcl:"abbreviation,optional"`
	Colour       *string      `hcl:"colour,optional"`
	Links        []*LinkBlock `hcl:"link,block"`
}

// LinkBlock declares one link type under an article type. TargetShow is kept
// as an expression: it accepts a bool or the strings "True" and "False".
type LinkBlock struct {
	Key               string         `hcl:"key,label"`
	OriginName        string         `hcl:"origin_name"`
	OriginDescription string         `hcl:"origin_description,optional"`
	TargetName        string         `hcl:"target_name"`
	TargetDescription string         `hcl:"target_description,optional"`
	TargetShow        hcl.Expression `hcl:"target_show,optional"`
}

// --- Directory file ---

// DirFile is the top level of dir.hcl.
type DirFile struct {
	Name string `hcl:"name"`
}

// --- Document file ---

// DocumentHeader holds a document's top-level attributes. Content blocks are
// left in Remain and walked in source order.
type DocumentHeader struct {
	Key         string   `hcl:"key"`
	Title       string   `hcl:"title"`
	Description *string  `hcl:"description,optional"`
	Resolve     []string `hcl:"resolve,optional"`
	Preamble    *string  `hcl:"preamble,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

// Blocks below are decoded body by body while walking a document; their
// labels are read from the syntax block.

// HeadingBlock is a `heading { ... }` block.
type HeadingBlock struct {
	Level  int     `hcl:"level"`
	Text   string  `hcl:"text"`
	Index  *string `hcl:"index,optional"`
	Inline bool    `hcl:"inline,optional"`
}

// ArticleBody is the body of an `article "<type>" "<key>" { ... }`
// declaration. Link and content blocks stay in Remain and are walked in
// source order.
type ArticleBody struct {
	Names  []string `hcl:"names"`
	Remain hcl.Body `hcl:",remain"`
}

// ArticleLinkBody is the body of a `link "<link type>" { to = [...] }` block
// inside an article.
type ArticleLinkBody struct {
	To []string `hcl:"to"`
}

// --- Article content ---

// ContentHeadingBlock is a heading inside article content.
type ContentHeadingBlock struct {
	Level int    `hcl:"level"`
	Text  string `hcl:"text"`
}

// TextBlock is any block carrying a single `text` attribute: paragraph, code
// and text.
type TextBlock struct {
	Text string `hcl:"text"`
}

// MathBlock is a `math { tex = "..." }` block.
type MathBlock struct {
	TeX string `hcl:"tex"`
}

// AnchorBlock is an `anchor { href = "..." label = "..." }` block.
type AnchorBlock struct {
	Href  string `hcl:"href"`
	Label string `hcl:"label"`
}
