// Package hcl provides the HCL implementation of the config.Loader interface.
// It parses project, model, directory and document files, decodes them with
// gohcl into the `schema` structs, and translates them into the
// format-agnostic read records of the `config` package.
//
// Document content is order-sensitive, so document and article bodies are
// walked block by block through hclsyntax rather than decoded in one pass.
package hcl
