package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/page"
)

//go:embed templates/document.html.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("document.html.tmpl").
		Funcs(template.FuncMap{"heading": headingHTML}).
		ParseFS(templateFS, "templates/document.html.tmpl"),
)

type documentView struct {
	Title       string
	Description string
	Crumbs      []crumbView
	Paths       template.JS
	Preamble    string
	Overview    []overviewView
	Details     []detailView
}

type crumbView struct {
	Href  string
	Label string
}

// overviewView is one overview element; exactly one field is set.
type overviewView struct {
	Heading   *headingView
	Paragraph template.HTML
	Panel     []entryView
}

type headingView struct {
	Level int
	ID    string
	Index string
	Text  string
}

// entryView is one panel entry; exactly one field is set.
type entryView struct {
	Heading *headingView
	Link    *linkView
}

type linkView struct {
	Type         string
	Class        string
	Article      string
	Abbreviation string
	Name         string
	Index        string
}

type detailView struct {
	Key         string
	Class       string
	Type        string
	PrimaryName string
	OtherNames  []string
	Content     template.HTML
	ClassLink   string
	Links       []linkGroupView
}

type linkGroupView struct {
	Type    string
	Name    string
	Targets []targetView
}

type targetView struct {
	Class   string
	Article string
	Name    string
}

// renderer renders the pages of one site.
type renderer struct {
	site *Site
}

func newRenderer(site *Site) *renderer {
	return &renderer{site: site}
}

// document renders one page.
func (r *renderer) document(p *page.Page) ([]byte, error) {
	paths := p.Paths
	if paths == nil {
		paths = []string{}
	}
	pathsJSON, err := json.Marshal(paths)
	if err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to encode resolution paths of %s", p.Key)
	}

	view := documentView{
		Title:       p.Title,
		Description: p.Description,
		Crumbs:      crumbs(p),
		Paths:       template.JS(pathsJSON),
		Preamble:    p.Preamble,
	}

	ids := newHeadingIDs()
	for _, el := range p.Elements {
		switch el := el.(type) {
		case page.Heading:
			view.Overview = append(view.Overview, overviewView{
				Heading: &headingView{Level: el.Level, ID: ids.next(el.Text), Index: el.Index, Text: el.Text},
			})
		case page.Paragraph:
			html, err := Markdown(el.Text)
			if err != nil {
				return nil, diag.Wrap(err, diag.CategoryStructure, diag.CodeInvalidContent, "failed to render paragraph in %s", p.Key)
			}
			view.Overview = append(view.Overview, overviewView{Paragraph: html})
		case *page.Panel:
			entries := make([]entryView, 0, len(el.Entries))
			for _, entry := range el.Entries {
				switch entry := entry.(type) {
				case page.InlineHeading:
					entries = append(entries, entryView{
						Heading: &headingView{Level: entry.Level, ID: ids.next(entry.Text), Index: entry.Index, Text: entry.Text},
					})
				case page.ArticleLink:
					entries = append(entries, entryView{Link: r.link(entry)})
				}
			}
			view.Overview = append(view.Overview, overviewView{Panel: entries})
		}
	}

	for _, id := range p.Articles() {
		detail, err := r.detail(id, p.Paths)
		if err != nil {
			return nil, err
		}
		view.Details = append(view.Details, detail)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to render document %s", p.Key)
	}
	return buf.Bytes(), nil
}

func crumbs(p *page.Page) []crumbView {
	out := make([]crumbView, 0, len(p.Dir))
	href := "/documents"
	for _, c := range p.Dir {
		href += "/" + c.Name
		out = append(out, crumbView{Href: href, Label: c.Label()})
	}
	return out
}

func (r *renderer) link(entry page.ArticleLink) *linkView {
	store := r.site.Store
	a := store.Article(entry.Article)
	class := store.Class(a.Class)
	t := r.site.Model.Type(class.Type)
	return &linkView{
		Type:         t.Key,
		Class:        class.Key,
		Article:      a.Key,
		Abbreviation: t.Abbreviation,
		Name:         a.PrimaryName(),
		Index:        entry.Index,
	}
}

// detail pre-renders one article together with its links, each linked
// class resolved against paths.
func (r *renderer) detail(id classes.ArticleID, paths []string) (detailView, error) {
	store := r.site.Store
	m := r.site.Model
	a := store.Article(id)
	class := store.Class(a.Class)

	html, err := Content(a.Content)
	if err != nil {
		return detailView{}, diag.Wrap(err, diag.CategoryStructure, diag.CodeInvalidContent, "failed to render article %s", a.Key)
	}
	view := detailView{
		Key:         a.Key,
		Class:       class.Key,
		Type:        m.Type(class.Type).Key,
		PrimaryName: a.PrimaryName(),
		Content:     html,
		ClassLink:   "/classes/" + url.PathEscape(class.Key) + ".html",
	}
	if len(a.Names) > 1 {
		view.OtherNames = a.Names[1:]
	}
	for _, bucket := range class.LinksOut {
		l := m.Link(bucket.Link)
		view.Links = append(view.Links, linkGroupView{
			Type:    l.Key,
			Name:    l.OriginName,
			Targets: r.targets(bucket.Classes, paths),
		})
	}
	for _, bucket := range class.LinksIn {
		l := m.Link(bucket.Link)
		if !l.TargetShow {
			continue
		}
		view.Links = append(view.Links, linkGroupView{
			Type:    m.Type(l.Type).Key + ":" + l.Key,
			Name:    l.TargetName,
			Targets: r.targets(bucket.Classes, paths),
		})
	}
	return view, nil
}

func (r *renderer) targets(ids []classes.ClassID, paths []string) []targetView {
	store := r.site.Store
	out := make([]targetView, len(ids))
	for i, id := range ids {
		a := store.Article(store.Resolve(id, paths))
		out[i] = targetView{Class: store.Class(id).Key, Article: a.Key, Name: a.PrimaryName()}
	}
	return out
}

func headingHTML(h *headingView) template.HTML {
	var b strings.Builder
	fmt.Fprintf(&b, `<h%d id="%s">`, h.Level, template.HTMLEscapeString(h.ID))
	if h.Index != "" {
		fmt.Fprintf(&b, "<span>%s</span> ", template.HTMLEscapeString(h.Index))
	}
	fmt.Fprintf(&b, "<span>%s</span></h%d>", template.HTMLEscapeString(h.Text), h.Level)
	return template.HTML(b.String())
}

// headingIDs hands out unique anchor ids for the headings of one page.
type headingIDs struct {
	seen map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]int)}
}

func (h *headingIDs) next(text string) string {
	id, err := slug.Normalize(text)
	if err != nil || id == "" {
		id = "section"
	}
	h.seen[id]++
	if n := h.seen[id]; n > 1 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}
