package compile

import (
	"context"
	"math/rand/v2"
	"path/filepath"

	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/fsutil"
	"github.com/vk/notarium/internal/model"
	"github.com/vk/notarium/internal/page"
	"github.com/vk/notarium/internal/render"
)

// Compiler runs compiles against projects read by a config.Loader.
type Compiler struct {
	loader config.Loader
	random func() uint16
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRandom replaces the source of obfuscation suffixes.
func WithRandom(random func() uint16) Option {
	return func(c *Compiler) {
		c.random = random
	}
}

// New creates a Compiler.
func New(loader config.Loader, opts ...Option) *Compiler {
	c := &Compiler{
		loader: loader,
		random: func() uint16 { return uint16(rand.IntN(1 << 16)) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a finished class graph together with the pages to render.
type Result struct {
	Model *model.Model
	Store *classes.Store
	Pages []*page.Page
}

// Compile builds the project in root and publishes it to root/website.
func (c *Compiler) Compile(ctx context.Context, root string) error {
	result, err := c.Build(ctx, root)
	if err != nil {
		return err
	}
	return c.publish(ctx, root, result)
}

// Build loads the project in root and its dependencies and runs both
// phases. Nothing is written.
func (c *Compiler) Build(ctx context.Context, root string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compile: Loading project.", "root", root)

	project, err := c.loader.LoadProject(ctx, root)
	if err != nil {
		return nil, err
	}
	defs, err := c.loader.LoadModel(ctx, project.ModelPath)
	if err != nil {
		return nil, err
	}
	m, err := model.Load(ctx, defs)
	if err != nil {
		return nil, err
	}
	docs, err := c.loader.LoadDocuments(ctx, filepath.Join(root, config.DocumentsDir))
	if err != nil {
		return nil, err
	}

	sources := []*source{{
		name:     root,
		local:    true,
		resolve:  project.Resolve,
		preamble: project.Preamble,
		docs:     docs,
	}}
	for _, dep := range project.Dependencies {
		src, err := c.includeDependency(ctx, m, project, dep)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	logger.Debug("Compile: Sources loaded.", "model_types", m.Len(), "sources", len(sources))

	b := &builder{model: m, store: classes.New(m), random: c.random}

	// First pass: register every class and article of every source.
	for _, src := range sources {
		if err := b.register(ctxlog.With(ctx, "source", src.name), src); err != nil {
			return nil, err
		}
	}
	logger.Debug("Compile: Registration complete.", "classes", len(b.store.Classes()))

	// Second pass: wire links, then assemble pages.
	for _, src := range sources {
		if err := b.link(src); err != nil {
			return nil, err
		}
	}
	var pages []*page.Page
	for _, src := range sources {
		if !src.rendered() {
			continue
		}
		built, err := b.pages(src)
		if err != nil {
			return nil, err
		}
		pages = append(pages, built...)
	}
	logger.Debug("Compile: Linking complete.", "pages", len(pages))

	return &Result{Model: m, Store: b.store, Pages: pages}, nil
}

func (c *Compiler) publish(ctx context.Context, root string, result *Result) error {
	logger := ctxlog.FromContext(ctx)
	target := filepath.Join(root, config.WebsiteDir)

	staging, err := fsutil.NewStaging(target)
	if err != nil {
		return diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to prepare output for %s", target)
	}
	defer func() {
		if err := staging.Discard(); err != nil {
			logger.Warn("Failed to remove staging directory.", "dir", staging.Dir, "error", err)
		}
	}()

	site := &render.Site{Model: result.Model, Store: result.Store, Pages: result.Pages}
	if err := render.Write(ctx, site, staging); err != nil {
		return err
	}
	if err := staging.Publish(); err != nil {
		return diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to publish %s", target)
	}

	logger.Info("Compile: Website published.", "dir", target, "classes", len(result.Store.Classes()), "pages", len(result.Pages))
	return nil
}
