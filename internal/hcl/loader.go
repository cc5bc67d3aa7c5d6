package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// parseFile reads and parses one HCL file. The returned body is always a
// *hclsyntax.Body since only native syntax files are accepted.
func (l *Loader) parseFile(ctx context.Context, parser *hclparse.Parser, path string) (*hclsyntax.Body, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to read %s", path)
	}
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, diag.Wrap(diags, diag.CategoryStructure, diag.CodeParse, "failed to parse HCL file %s", path)
	}
	ctxlog.FromContext(ctx).Debug("Parsed HCL file.", "path", path)
	return file.Body.(*hclsyntax.Body), nil
}

// decode decodes body into target, wrapping diagnostics as a structure error.
func decode(body hcl.Body, target any, what string) error {
	if diags := gohcl.DecodeBody(body, nil, target); diags.HasErrors() {
		return diag.Wrap(diags, diag.CategoryStructure, diag.CodeParse, "failed to decode %s", what)
	}
	return nil
}

// at formats the start of a range for diagnostics.
func at(r hcl.Range) string {
	return fmt.Sprintf("%s:%d:%d", r.Filename, r.Start.Line, r.Start.Column)
}

// validate runs a record's validation and maps failures to a structure error.
func validate(v interface{ Validate() error }, what string) error {
	return diag.Invalid(v.Validate(), "invalid %s", what)
}
