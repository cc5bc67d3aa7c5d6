package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/model"
)

type typeJSON struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Abbreviation string              `json:"abbreviation,omitempty"`
	Colour       string              `json:"colour"`
	Links        map[string]linkJSON `json:"links,omitempty"`
}

type linkJSON struct {
	OriginName        string `json:"origin.name"`
	OriginDescription string `json:"origin.description"`
	TargetName        string `json:"target.name"`
	TargetDescription string `json:"target.description"`
	TargetShow        string `json:"target.show"`
}

// ModelJSON describes every article type and its link types, keyed by type key.
func ModelJSON(m *model.Model) ([]byte, error) {
	out := make(map[string]typeJSON, m.Len())
	for _, id := range m.Types() {
		t := m.Type(id)
		tj := typeJSON{
			Name:         t.Name,
			Description:  t.Description,
			Abbreviation: t.Abbreviation,
			Colour:       t.Colour,
		}
		if len(t.Links) > 0 {
			tj.Links = make(map[string]linkJSON, len(t.Links))
			for _, lid := range t.Links {
				l := m.Link(lid)
				tj.Links[l.Key] = linkJSON{
					OriginName:        l.OriginName,
					OriginDescription: l.OriginDescription,
					TargetName:        l.TargetName,
					TargetDescription: l.TargetDescription,
					TargetShow:        strconv.FormatBool(l.TargetShow),
				}
			}
		}
		out[t.Key] = tj
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, diag.Wrap(err, diag.CategoryIO, diag.CodeWrite, "failed to encode model")
	}
	return data, nil
}

// ModelCSS emits one colour variable rule per type, in declaration order.
func ModelCSS(m *model.Model) []byte {
	var buf bytes.Buffer
	for _, id := range m.Types() {
		t := m.Type(id)
		fmt.Fprintf(&buf, ".%s-type{--type-colour:%s;}", t.Key, t.Colour)
	}
	return buf.Bytes()
}
