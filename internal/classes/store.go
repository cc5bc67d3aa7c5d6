package classes

import (
	"context"
	"sync"

	"github.com/vk/notarium/internal/content"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/key"
	"github.com/vk/notarium/internal/model"
)

// ClassID is a handle to a Class inside a Store.
type ClassID int

// ArticleID is a handle to an Article inside a Store.
type ArticleID int

// Bucket holds the classes linked under one link type.
type Bucket struct {
	Link    model.LinkID
	Classes []ClassID
}

// Class aggregates the article variants contributed under one class key.
type Class struct {
	Key string
	// Type is fixed at first registration.
	Type model.TypeID
	// Articles are the variants in registration order.
	Articles []ArticleID
	LinksOut []Bucket
	LinksIn  []Bucket
}

// Article is one variant of a class.
type Article struct {
	Class ClassID
	// Key is `<class>@<suffix>`, or `<class>#<random>@?` once obfuscated.
	Key     string
	Names   []string
	Content []content.Element
}

// PrimaryName returns the first declared name.
func (a Article) PrimaryName() string {
	if len(a.Names) == 0 {
		return "???"
	}
	return a.Names[0]
}

// Store owns every class and article of a compile run.
type Store struct {
	mu           sync.RWMutex
	model        *model.Model
	classes      []Class
	articles     []Article
	order        []ClassID
	classIndex   map[string]ClassID
	articleIndex map[string]ArticleID
}

// New creates an empty store bound to a model.
func New(m *model.Model) *Store {
	return &Store{
		model:        m,
		classIndex:   make(map[string]ClassID),
		articleIndex: make(map[string]ArticleID),
	}
}

// Model returns the model the store was created with.
func (s *Store) Model() *model.Model {
	return s.model
}

// GetClass looks up an indexed class by key.
func (s *Store) GetClass(key string) (ClassID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.classIndex[key]
	return id, ok
}

// GetArticle looks up an indexed article by key.
func (s *Store) GetArticle(key string) (ArticleID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.articleIndex[key]
	return id, ok
}

// Class returns a snapshot of the class behind a handle.
func (s *Store) Class(id ClassID) Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[id]
}

// Article returns a snapshot of the article behind a handle.
func (s *Store) Article(id ArticleID) Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articles[id]
}

// Classes returns the indexed classes in registration order.
func (s *Store) Classes() []ClassID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ClassID, len(s.order))
	copy(out, s.order)
	return out
}

// InsertClass registers a new class. When the key is already indexed it
// logs a warning and the existing class stays authoritative; the returned
// handle then refers to an unindexed node.
func (s *Store) InsertClass(ctx context.Context, key string, t model.TypeID) ClassID {
	s.mu.Lock()
	id := ClassID(len(s.classes))
	s.classes = append(s.classes, Class{Key: key, Type: t})
	_, duplicate := s.classIndex[key]
	if !duplicate {
		s.classIndex[key] = id
		s.order = append(s.order, id)
	}
	s.mu.Unlock()

	if duplicate {
		ctxlog.FromContext(ctx).Warn("Class was already registered; keeping the first registration.", "class", key)
	}
	return id
}

// InsertArticle appends an article to its class's variant list. When the
// article key is already indexed it logs a warning and the first article
// stays the one found by key.
func (s *Store) InsertArticle(ctx context.Context, a Article) ArticleID {
	s.mu.Lock()
	id := ArticleID(len(s.articles))
	s.articles = append(s.articles, a)
	class := &s.classes[a.Class]
	class.Articles = append(class.Articles, id)
	_, duplicate := s.articleIndex[a.Key]
	if !duplicate {
		s.articleIndex[a.Key] = id
	}
	s.mu.Unlock()

	if duplicate {
		ctxlog.FromContext(ctx).Warn("Article was already registered; keeping the first registration.", "article", a.Key)
	}
	return id
}

// RenameArticle rewrites an article's key and moves its index entry. The
// old key stops resolving. The new key must not be indexed yet.
func (s *Store) RenameArticle(id ArticleID, newKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.articleIndex[newKey]; exists {
		return diag.Errorf(diag.CategoryReference, diag.CodeDuplicateArticle, "article %s already exists", newKey)
	}
	old := s.articles[id].Key
	if indexed, ok := s.articleIndex[old]; ok && indexed == id {
		delete(s.articleIndex, old)
	}
	s.articles[id].Key = newKey
	s.articleIndex[newKey] = id
	return nil
}

// RenameClass rewrites a class's key and moves its index entry. The old key
// stops resolving. The new key must not be indexed yet.
func (s *Store) RenameClass(id ClassID, newKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.classIndex[newKey]; exists {
		return diag.Errorf(diag.CategoryReference, diag.CodeDuplicateClass, "class %s already exists", newKey)
	}
	old := s.classes[id].Key
	if indexed, ok := s.classIndex[old]; ok && indexed == id {
		delete(s.classIndex, old)
	}
	s.classes[id].Key = newKey
	s.classIndex[newKey] = id
	return nil
}

// InsertLink records a link of type link from one class to another. The
// link type must be declared by the origin class's article type.
func (s *Store) InsertLink(link model.LinkID, from, to ClassID) error {
	lt := s.model.Link(link)

	s.mu.Lock()
	defer s.mu.Unlock()

	origin := &s.classes[from]
	if lt.Type != origin.Type {
		return diag.Errorf(diag.CategorySchema, diag.CodeTypeMismatch,
			"link type %s:%s cannot originate from class %s of type %s",
			s.model.Type(lt.Type).Key, lt.Key, origin.Key, s.model.Type(origin.Type).Key)
	}
	origin.LinksOut = appendToBucket(origin.LinksOut, link, to)
	target := &s.classes[to]
	target.LinksIn = appendToBucket(target.LinksIn, link, from)
	return nil
}

func appendToBucket(buckets []Bucket, link model.LinkID, class ClassID) []Bucket {
	for i := range buckets {
		if buckets[i].Link == link {
			buckets[i].Classes = append(buckets[i].Classes, class)
			return buckets
		}
	}
	return append(buckets, Bucket{Link: link, Classes: []ClassID{class}})
}

// Resolve picks the canonical variant of a class: for each path in order,
// the first variant (in registration order) whose provenance suffix is path.
// Without a match it returns the first registered variant.
func (s *Store) Resolve(id ClassID, paths []string) ArticleID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	variants := s.classes[id].Articles
	for _, path := range paths {
		for _, a := range variants {
			if _, suffix, ok := key.Split(s.articles[a].Key); ok && suffix == path {
				return a
			}
		}
	}
	return variants[0]
}
