package config

import "context"

// Loader reads a project's source files into read records.
type Loader interface {
	// LoadProject reads the project descriptor found in root.
	LoadProject(ctx context.Context, root string) (*Project, error)

	// LoadModel reads the model file at path.
	LoadModel(ctx context.Context, path string) ([]TypeDefinition, error)

	// LoadDocuments reads every document under dir, in lexical walk order.
	LoadDocuments(ctx context.Context, dir string) ([]*Document, error)
}
