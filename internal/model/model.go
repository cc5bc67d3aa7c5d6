package model

import (
	"context"

	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
)

// TypeID is a handle to an ArticleType inside a Model.
type TypeID int

// LinkID is a handle to a LinkType inside a Model.
type LinkID int

// ArticleType is a declared kind of article.
type ArticleType struct {
	Key          string
	Name         string
	Description  string
	Colour       string
	Abbreviation string
	// Links are the declared link types, in declaration order.
	Links []LinkID

	linkIndex map[string]LinkID
}

// LinkType is a directed, typed relation declared under one ArticleType.
type LinkType struct {
	// Type is the owning article type.
	Type              TypeID
	Key               string
	OriginName        string
	OriginDescription string
	TargetName        string
	TargetDescription string
	// TargetShow reports whether the reverse direction is rendered.
	TargetShow bool
}

// Model is the registry of article and link types.
type Model struct {
	types     []ArticleType
	links     []LinkType
	typeIndex map[string]TypeID
}

// New creates an empty model.
func New() *Model {
	return &Model{typeIndex: make(map[string]TypeID)}
}

// Load builds a model from type definitions. Type keys, and link keys within
// a type, must be unique.
func Load(ctx context.Context, defs []config.TypeDefinition) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	m := New()
	for _, def := range defs {
		id, err := m.addType(def)
		if err != nil {
			return nil, err
		}
		for _, link := range def.Links {
			if err := m.addLink(id, link); err != nil {
				return nil, err
			}
		}
		logger.Debug("Registered article type.", "type", def.Key, "links", len(def.Links))
	}
	return m, nil
}

func (m *Model) addType(def config.TypeDefinition) (TypeID, error) {
	if _, exists := m.typeIndex[def.Key]; exists {
		return 0, diag.Errorf(diag.CategorySchema, diag.CodeDuplicateType, "article type %s is declared more than once", def.Key)
	}
	description := def.Description
	if description == "" {
		description = def.Name
	}
	id := TypeID(len(m.types))
	m.types = append(m.types, ArticleType{
		Key:          def.Key,
		Name:         def.Name,
		Description:  description,
		Colour:       def.Colour,
		Abbreviation: def.Abbreviation,
		linkIndex:    make(map[string]LinkID),
	})
	m.typeIndex[def.Key] = id
	return id, nil
}

func (m *Model) addLink(owner TypeID, def config.LinkDefinition) error {
	t := &m.types[owner]
	if _, exists := t.linkIndex[def.Key]; exists {
		return diag.Errorf(diag.CategorySchema, diag.CodeDuplicateLink, "link type %s:%s is declared more than once", t.Key, def.Key)
	}
	id := LinkID(len(m.links))
	m.links = append(m.links, LinkType{
		Type:              owner,
		Key:               def.Key,
		OriginName:        def.OriginName,
		OriginDescription: def.OriginDescription,
		TargetName:        def.TargetName,
		TargetDescription: def.TargetDescription,
		TargetShow:        def.TargetShow,
	})
	t.Links = append(t.Links, id)
	t.linkIndex[def.Key] = id
	return nil
}

// GetType looks up an article type by key.
func (m *Model) GetType(key string) (TypeID, bool) {
	id, ok := m.typeIndex[key]
	return id, ok
}

// GetLink looks up a link type by key within an article type.
func (m *Model) GetLink(t TypeID, key string) (LinkID, bool) {
	id, ok := m.types[t].linkIndex[key]
	return id, ok
}

// Type returns the article type behind a handle.
func (m *Model) Type(id TypeID) *ArticleType {
	return &m.types[id]
}

// Link returns the link type behind a handle.
func (m *Model) Link(id LinkID) *LinkType {
	return &m.links[id]
}

// Types returns every type handle in declaration order.
func (m *Model) Types() []TypeID {
	ids := make([]TypeID, len(m.types))
	for i := range m.types {
		ids[i] = TypeID(i)
	}
	return ids
}

// Len returns the number of declared types.
func (m *Model) Len() int {
	return len(m.types)
}
