package render

import (
	"context"
	"path"

	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/model"
	"github.com/vk/notarium/internal/page"
)

// Site is everything a website is rendered from.
type Site struct {
	Model *model.Model
	Store *classes.Store
	Pages []*page.Page
}

// FileWriter receives rendered files by path relative to the website root.
type FileWriter interface {
	WriteFile(rel string, data []byte) error
}

// Write renders every website file into w.
func Write(ctx context.Context, site *Site, w FileWriter) error {
	logger := ctxlog.FromContext(ctx)

	modelJSON, err := ModelJSON(site.Model)
	if err != nil {
		return err
	}
	if err := write(w, "model.json", modelJSON); err != nil {
		return err
	}
	if err := write(w, "model.css", ModelCSS(site.Model)); err != nil {
		return err
	}

	for _, id := range site.Store.Classes() {
		data, err := ClassJSON(site.Store, id)
		if err != nil {
			return err
		}
		if err := write(w, path.Join("classes", site.Store.Class(id).Key+".json"), data); err != nil {
			return err
		}
	}

	r := newRenderer(site)
	for _, p := range site.Pages {
		data, err := r.document(p)
		if err != nil {
			return err
		}
		if err := write(w, path.Join("documents", p.Path), data); err != nil {
			return err
		}
		logger.Debug("Rendered document.", "document", p.Key, "path", p.Path)
	}
	return nil
}

func write(w FileWriter, rel string, data []byte) error {
	if err := w.WriteFile(rel, data); err != nil {
		return diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to write %s", rel)
	}
	return nil
}
