package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// LoadModel reads a model file into type definitions, in declaration order.
func (l *Loader) LoadModel(ctx context.Context, path string) ([]config.TypeDefinition, error) {
	logger := ctxlog.FromContext(ctx)

	body, err := l.parseFile(ctx, hclparse.NewParser(), path)
	if err != nil {
		return nil, err
	}
	var file schema.ModelFile
	if err := decode(body, &file, path); err != nil {
		return nil, err
	}

	defs := make([]config.TypeDefinition, 0, len(file.Types))
	for _, block := range file.Types {
		def, err := translateType(block)
		if err != nil {
			return nil, diag.Wrap(err, diag.CategoryStructure, diag.CodeInvalidRecord, "type %s in %s", block.Key, path)
		}
		if err := validate(def, fmt.Sprintf("type %s in %s", block.Key, path)); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	logger.Debug("Model loaded.", "path", path, "types", len(defs))
	return defs, nil
}

func translateType(block *schema.TypeBlock) (config.TypeDefinition, error) {
	def := config.TypeDefinition{
		Key:    block.Key,
		Name:   block.Name,
		Colour: config.DefaultColour,
	}
	if block.Description != nil {
		def.Description = *block.Description
	}
	if block.Abbreviation != nil {
		def.Abbreviation = *block.Abbreviation
	}
	if block.Colour != nil {
		def.Colour = *block.Colour
	}
	for _, link := range block.Links {
		show, err := targetShow(link.TargetShow)
		if err != nil {
			return def, fmt.Errorf("link %s: %w", link.Key, err)
		}
		def.Links = append(def.Links, config.LinkDefinition{
			Key:               link.Key,
			OriginName:        link.OriginName,
			OriginDescription: link.OriginDescription,
			TargetName:        link.TargetName,
			TargetDescription: link.TargetDescription,
			TargetShow:        show,
		})
	}
	return def, nil
}

// targetShow evaluates the target_show attribute. It accepts a bool or the
// strings "True" and "False"; an absent attribute means false.
func targetShow(expr hcl.Expression) (bool, error) {
	if expr == nil {
		return false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() {
		return false, nil
	}
	switch val.Type() {
	case cty.Bool:
		return val.True(), nil
	case cty.String:
		switch val.AsString() {
		case "True":
			return true, nil
		case "False":
			return false, nil
		}
		return false, fmt.Errorf("invalid target_show value %q", val.AsString())
	}
	return false, fmt.Errorf("target_show must be a bool, got %s", val.Type().FriendlyName())
}
