package hcl

import (
	"context"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/schema"
)

// LoadProject reads <root>/project.hcl. Model and dependency paths are
// joined with root unless absolute.
func (l *Loader) LoadProject(ctx context.Context, root string) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(root, config.ProjectFile)

	body, err := l.parseFile(ctx, hclparse.NewParser(), path)
	if err != nil {
		return nil, err
	}
	var file schema.ProjectFile
	if err := decode(body, &file, path); err != nil {
		return nil, err
	}

	project := &config.Project{
		Root:      root,
		ModelPath: joinRoot(root, file.Model),
		Resolve:   file.Resolve,
	}
	if file.Preamble != nil {
		project.Preamble = *file.Preamble
	}
	for _, dep := range file.Dependencies {
		include, err := config.ParseInclude(dep.Include)
		if err != nil {
			return nil, diag.Wrap(err, diag.CategoryStructure, diag.CodeInvalidInclude, "dependency %s in %s", dep.Path, path)
		}
		project.Dependencies = append(project.Dependencies, config.Dependency{
			Path:    joinRoot(root, dep.Path),
			Include: include,
		})
	}
	if err := validate(project, path); err != nil {
		return nil, err
	}

	logger.Debug("Project loaded.", "root", root, "model", project.ModelPath, "dependencies", len(project.Dependencies))
	return project, nil
}

func joinRoot(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
