package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Well-known names inside a project root.
const (
	ProjectFile   = "project.hcl"
	DocumentsDir  = "documents"
	WebsiteDir    = "website"
	DirFile       = "dir.hcl"
	DocumentExt   = ".d.hcl"
	DefaultColour = "#636363"
)

// Include selects how a dependency's documents are folded into a compile.
type Include int

const (
	// IncludeAll merges articles and renders the dependency's documents as pages.
	IncludeAll Include = iota
	// IncludeArticles merges articles without rendering pages.
	IncludeArticles
	// IncludeObfuscated is IncludeArticles with randomized article keys.
	IncludeObfuscated
)

// ParseInclude maps the textual inclusion mode onto an Include.
func ParseInclude(s string) (Include, error) {
	switch s {
	case "All":
		return IncludeAll, nil
	case "Articles":
		return IncludeArticles, nil
	case "Obfuscated":
		return IncludeObfuscated, nil
	}
	return 0, fmt.Errorf("include method %q is not allowed; use All, Articles or Obfuscated", s)
}

func (i Include) String() string {
	switch i {
	case IncludeAll:
		return "All"
	case IncludeArticles:
		return "Articles"
	case IncludeObfuscated:
		return "Obfuscated"
	}
	return "unknown"
}

// Project is the read project descriptor.
type Project struct {
	// Root is the directory holding the project file.
	Root string
	// ModelPath is the model file path, already joined with Root.
	ModelPath    string
	Resolve      []string
	Preamble     string
	Dependencies []Dependency
}

// Dependency is one external project folded into the compile.
type Dependency struct {
	// Path is the dependency root, already joined with the declaring project's Root.
	Path    string
	Include Include
}

// Validate checks the descriptor's required fields.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Root, validation.Required),
		validation.Field(&p.ModelPath, validation.Required),
		validation.Field(&p.Dependencies, validation.Each(validation.By(func(value any) error {
			dep, _ := value.(Dependency)
			return validation.Validate(dep.Path, validation.Required)
		}))),
	)
}
