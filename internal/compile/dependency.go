package compile

import (
	"context"
	"path/filepath"

	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/model"
)

// includeDependency loads one dependency of project and verifies that it can
// be folded into a compile against m.
func (c *Compiler) includeDependency(ctx context.Context, m *model.Model, project *config.Project, dep config.Dependency) (*source, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compile: Including dependency.", "path", dep.Path, "include", dep.Include.String())

	depProject, err := c.loader.LoadProject(ctx, dep.Path)
	if err != nil {
		return nil, err
	}
	defs, err := c.loader.LoadModel(ctx, depProject.ModelPath)
	if err != nil {
		return nil, err
	}
	if err := checkModelSubset(m, defs, dep.Path); err != nil {
		return nil, err
	}
	if err := checkDependencySubset(project, depProject); err != nil {
		return nil, err
	}
	docs, err := c.loader.LoadDocuments(ctx, filepath.Join(dep.Path, config.DocumentsDir))
	if err != nil {
		return nil, err
	}

	return &source{
		name:     dep.Path,
		include:  dep.Include,
		resolve:  depProject.Resolve,
		preamble: depProject.Preamble,
		docs:     docs,
	}, nil
}

// checkModelSubset verifies that every type and link declared by a
// dependency model is also declared by the project model.
func checkModelSubset(m *model.Model, defs []config.TypeDefinition, path string) error {
	for _, def := range defs {
		t, ok := m.GetType(def.Key)
		if !ok {
			return diag.Errorf(diag.CategoryCompatibility, diag.CodeMissingDependencyType,
				"dependency %s: article type %s does not exist in the project model", path, def.Key)
		}
		for _, link := range def.Links {
			if _, ok := m.GetLink(t, link.Key); !ok {
				return diag.Errorf(diag.CategoryCompatibility, diag.CodeMissingDependencyLink,
					"dependency %s: link type %s:%s does not exist in the project model", path, def.Key, link.Key)
			}
		}
	}
	return nil
}

// checkDependencySubset verifies that the dependencies of a dependency are
// dependencies of the project as well.
func checkDependencySubset(project, dep *config.Project) error {
	known := make(map[string]bool, len(project.Dependencies))
	for _, d := range project.Dependencies {
		abs, err := filepath.Abs(d.Path)
		if err != nil {
			return diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to resolve dependency path %s", d.Path)
		}
		known[filepath.Clean(abs)] = true
	}
	for _, d := range dep.Dependencies {
		abs, err := filepath.Abs(d.Path)
		if err != nil {
			return diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to resolve dependency path %s", d.Path)
		}
		if !known[filepath.Clean(abs)] {
			return diag.Errorf(diag.CategoryCompatibility, diag.CodeForeignDependency,
				"dependency %s depends on %s, which is not a dependency of the project", dep.Root, d.Path)
		}
	}
	return nil
}
