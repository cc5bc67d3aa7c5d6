package render

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/content"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/model"
	"github.com/vk/notarium/internal/page"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memoryWriter collects written files.
type memoryWriter map[string][]byte

func (w memoryWriter) WriteFile(rel string, data []byte) error {
	w[rel] = data
	return nil
}

// fixture is a small graph: definition "group" uses "monoid", theorem
// "lagrange" is about "group". Only "uses" shows its target side.
type fixture struct {
	model    *model.Model
	store    *classes.Store
	group    classes.ClassID
	monoid   classes.ClassID
	lagrange classes.ClassID
	groupA   classes.ArticleID
	groupB   classes.ArticleID
	monoidA  classes.ArticleID
	theorem  classes.ArticleID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := testContext()
	m, err := model.Load(ctx, []config.TypeDefinition{
		{
			Key: "Definition", Name: "Definition", Abbreviation: "Def", Colour: "#2a6f97",
			Links: []config.LinkDefinition{{Key: "uses", OriginName: "Uses", TargetName: "Used by", TargetShow: true}},
		},
		{
			Key: "Theorem", Name: "Theorem", Colour: "#636363",
			Links: []config.LinkDefinition{{Key: "about", OriginName: "About", TargetName: "Theorems"}},
		},
	})
	require.NoError(t, err)
	def, _ := m.GetType("Definition")
	thm, _ := m.GetType("Theorem")
	uses, _ := m.GetLink(def, "uses")
	about, _ := m.GetLink(thm, "about")

	f := &fixture{model: m, store: classes.New(m)}
	f.group = f.store.InsertClass(ctx, "group", def)
	f.monoid = f.store.InsertClass(ctx, "monoid", def)
	f.lagrange = f.store.InsertClass(ctx, "lagrange", thm)
	f.groupA = f.store.InsertArticle(ctx, classes.Article{Class: f.group, Key: "group@algebra", Names: []string{"Group", "Groups"},
		Content: []content.Element{content.Paragraph{Text: "A *set*."}}})
	f.groupB = f.store.InsertArticle(ctx, classes.Article{Class: f.group, Key: "group@notes", Names: []string{"Group (notes)"}})
	f.monoidA = f.store.InsertArticle(ctx, classes.Article{Class: f.monoid, Key: "monoid@algebra", Names: []string{"Monoid"}})
	f.theorem = f.store.InsertArticle(ctx, classes.Article{Class: f.lagrange, Key: "lagrange@algebra", Names: []string{"Lagrange"}})
	require.NoError(t, f.store.InsertLink(uses, f.group, f.monoid))
	require.NoError(t, f.store.InsertLink(about, f.lagrange, f.group))
	return f
}

func TestModelJSON(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)

	// --- Act ---
	data, err := ModelJSON(f.model)

	// --- Assert ---
	require.NoError(t, err)
	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	require.Contains(t, got, "Definition")
	assert.Equal(t, "Def", got["Definition"]["abbreviation"])
	assert.Equal(t, "#2a6f97", got["Definition"]["colour"])
	assert.Equal(t, "Definition", got["Definition"]["description"], "description defaults to the name")
	links := got["Definition"]["links"].(map[string]any)
	assert.Equal(t, map[string]any{
		"origin.name":        "Uses",
		"origin.description": "",
		"target.name":        "Used by",
		"target.description": "",
		"target.show":        "true",
	}, links["uses"])

	assert.NotContains(t, got["Theorem"], "abbreviation")
	about := got["Theorem"]["links"].(map[string]any)["about"].(map[string]any)
	assert.Equal(t, "false", about["target.show"])
}

func TestModelCSS(t *testing.T) {
	f := newFixture(t)

	css := ModelCSS(f.model)

	assert.Equal(t, ".Definition-type{--type-colour:#2a6f97;}.Theorem-type{--type-colour:#636363;}", string(css))
}

func TestClassJSON(t *testing.T) {
	testCases := []struct {
		name  string
		class func(f *fixture) classes.ClassID
		want  string
	}{
		{
			name:  "outgoing links and variants",
			class: func(f *fixture) classes.ClassID { return f.group },
			want: `{"type":"Definition","articles":{` +
				`"group@algebra":{"names":["Group","Groups"],"content":"<p>A <em>set</em>.</p>\n"},` +
				`"group@notes":{"names":["Group (notes)"],"content":""}},` +
				`"links":{"uses":["monoid"]}}`,
		},
		{
			name:  "incoming link shown by target_show",
			class: func(f *fixture) classes.ClassID { return f.monoid },
			want: `{"type":"Definition","articles":{"monoid@algebra":{"names":["Monoid"],"content":""}},` +
				`"links":{"Definition:uses":["group"]}}`,
		},
		{
			name:  "incoming link hidden without target_show",
			class: func(f *fixture) classes.ClassID { return f.lagrange },
			want:  `{"type":"Theorem","articles":{"lagrange@algebra":{"names":["Lagrange"],"content":""}},"links":{"about":["group"]}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			data, err := ClassJSON(f.store, tc.class(f))

			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(data))
		})
	}
}

func TestContent(t *testing.T) {
	testCases := []struct {
		name     string
		elements []content.Element
		want     string
	}{
		{name: "heading", elements: []content.Element{content.Heading{Level: 3, Text: "A < B"}}, want: "<h3>A &lt; B</h3>"},
		{name: "paragraph", elements: []content.Element{content.Paragraph{Text: "**bold**"}}, want: "<p><strong>bold</strong></p>\n"},
		{name: "math", elements: []content.Element{content.Math{TeX: `a<b`}}, want: `<p class="math">\[a&lt;b\]</p>`},
		{name: "code", elements: []content.Element{content.Code{Text: "x := <-ch"}}, want: "<pre><code>x := &lt;-ch</code></pre>"},
		{name: "anchor", elements: []content.Element{content.Anchor{Href: "https://example.com/?a=1&b=2", Label: "Ex"}}, want: `<p><a href="https://example.com/?a=1&amp;b=2">Ex</a></p>`},
		{name: "text", elements: []content.Element{content.Text{Text: "*not markdown*"}}, want: "<p>*not markdown*</p>"},
		{
			name:     "order is kept",
			elements: []content.Element{content.Text{Text: "1"}, content.Heading{Level: 2, Text: "2"}},
			want:     "<p>1</p><h2>2</h2>",
		},
		{name: "empty", elements: nil, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			html, err := Content(tc.elements)

			require.NoError(t, err)
			assert.Equal(t, tc.want, string(html))
		})
	}
}

func TestWrite(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	site := &Site{
		Model: f.model,
		Store: f.store,
		Pages: []*page.Page{{
			Key:   "algebra",
			Title: "Algebra",
			Paths: []string{"notes"},
			Dir:   []config.DirCrumb{{Name: "math", Crumb: "Mathematics"}},
			Path:  "math/algebra.html",
			Elements: []page.Element{
				page.Heading{Level: 2, Index: "1", Text: "Basic Groups"},
				page.Paragraph{Text: "Intro _text_."},
				&page.Panel{Entries: []page.Entry{
					page.ArticleLink{Article: f.groupA, Index: "1.1"},
					page.InlineHeading{Level: 3, Text: "Basic Groups"},
					page.ArticleLink{Article: f.theorem},
				}},
			},
		}},
	}
	w := memoryWriter{}

	// --- Act ---
	err := Write(testContext(), site, w)

	// --- Assert ---
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"model.json", "model.css",
		"classes/group.json", "classes/monoid.json", "classes/lagrange.json",
		"documents/math/algebra.html",
	}, keys(w))

	html := string(w["documents/math/algebra.html"])
	assert.Contains(t, html, "<title>Algebra</title>")
	assert.Contains(t, html, `<a href="/documents/math">Mathematics</a>`)
	assert.Contains(t, html, `<script id="resolution-paths" type="application/json">["notes"]</script>`)
	assert.Contains(t, html, `<h2 id="basic-groups"><span>1</span> <span>Basic Groups</span></h2>`)
	assert.Contains(t, html, `<h3 id="basic-groups-2"><span>Basic Groups</span></h3>`)
	assert.Contains(t, html, "<p>Intro <em>text</em>.</p>")
	assert.Contains(t, html, `<span class="abbreviation">Def</span><span class="name">Group</span><span class="index">1.1</span>`)
	assert.Contains(t, html, `data-article="lagrange@algebra"`)
	assert.Contains(t, html, `<a class="class-link" href="/classes/group.html">group</a>`)
	assert.Contains(t, html, `<span class="type" data-type="uses">Uses</span>`)
	// The theorem links to class group, resolved with the page paths.
	assert.Contains(t, html, `<button class="link" data-class="group" data-article="group@notes">Group (notes)</button>`)
	assert.NotContains(t, html, `data-type="Theorem:about"`)
}

func TestWrite_EscapesObfuscatedClassLinks(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	require.NoError(t, f.store.RenameClass(f.monoid, "monoid#2a@?"))
	require.NoError(t, f.store.RenameArticle(f.monoidA, "monoid#2a@?"))
	site := &Site{
		Model: f.model,
		Store: f.store,
		Pages: []*page.Page{{
			Key:      "algebra",
			Title:    "Algebra",
			Path:     "algebra.html",
			Elements: []page.Element{&page.Panel{Entries: []page.Entry{page.ArticleLink{Article: f.monoidA}}}},
		}},
	}
	w := memoryWriter{}

	// --- Act ---
	err := Write(testContext(), site, w)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, keys(w), "classes/monoid#2a@?.json")
	assert.Contains(t, string(w["documents/algebra.html"]), `href="/classes/monoid%232a@%3F.html"`)
}

func keys(w memoryWriter) []string {
	out := make([]string, 0, len(w))
	for k := range w {
		out = append(out, k)
	}
	return out
}
