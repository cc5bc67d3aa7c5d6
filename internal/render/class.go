package render

import (
	"encoding/json"

	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/diag"
)

type classJSON struct {
	Type     string                 `json:"type"`
	Articles map[string]articleJSON `json:"articles"`
	Links    map[string][]string    `json:"links"`
}

type articleJSON struct {
	Names   []string `json:"names"`
	Content string   `json:"content"`
}

// ClassJSON describes one class: its type, every article variant and its
// links. Outgoing links are keyed by link key. Incoming links are keyed by
// `<origin type>:<link key>` and only listed when the link type shows its
// target side.
func ClassJSON(store *classes.Store, id classes.ClassID) ([]byte, error) {
	m := store.Model()
	class := store.Class(id)

	out := classJSON{
		Type:     m.Type(class.Type).Key,
		Articles: make(map[string]articleJSON, len(class.Articles)),
		Links:    make(map[string][]string),
	}
	for _, aid := range class.Articles {
		a := store.Article(aid)
		html, err := Content(a.Content)
		if err != nil {
			return nil, diag.Wrap(err, diag.CategoryStructure, diag.CodeInvalidContent, "failed to render article %s", a.Key)
		}
		names := a.Names
		if names == nil {
			names = []string{}
		}
		out.Articles[a.Key] = articleJSON{Names: names, Content: string(html)}
	}
	for _, bucket := range class.LinksOut {
		out.Links[m.Link(bucket.Link).Key] = classKeys(store, bucket.Classes)
	}
	for _, bucket := range class.LinksIn {
		l := m.Link(bucket.Link)
		if !l.TargetShow {
			continue
		}
		out.Links[m.Type(l.Type).Key+":"+l.Key] = classKeys(store, bucket.Classes)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to encode class %s", class.Key)
	}
	return data, nil
}

func classKeys(store *classes.Store, ids []classes.ClassID) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = store.Class(id).Key
	}
	return keys
}
