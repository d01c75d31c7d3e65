package memory

import (
	"context"
	"reflect"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/racerready/racerready-manager-go/pkg/store"
)

// MemoryStore mirrors the document store semantics in process memory.
// Used for local development and tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]map[string]any // collection -> id -> doc
}

var _ store.Store = (*MemoryStore)(nil)

func New() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]map[string]any{}}
}

func (s *MemoryStore) Create(
	ctx context.Context, collection string, data map[string]any,
) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	doc, err := normalize(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[id.String()] = doc
	return id.String(), nil
}

func (s *MemoryStore) Query(
	ctx context.Context, collection string, filters []store.Filter,
) ([]store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]store.Document, 0)
	for id, doc := range s.coll(collection) {
		if matches(doc, filters) {
			copied, err := normalize(doc)
			if err != nil {
				return nil, err
			}
			ret = append(ret, store.Document{ID: id, Data: copied})
		}
	}
	return ret, nil
}

func (s *MemoryStore) Update(
	ctx context.Context, collection, id string, partial map[string]any,
) error {
	merged, err := normalize(partial)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range merged {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.coll(collection), id)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (
	store.Document, error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	copied, err := normalize(doc)
	if err != nil {
		return store.Document{}, err
	}
	return store.Document{ID: id, Data: copied}, nil
}

func (s *MemoryStore) Put(
	ctx context.Context, collection, id string, data map[string]any,
) error {
	doc, err := normalize(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[id] = doc
	return nil
}

func (s *MemoryStore) coll(collection string) map[string]map[string]any {
	c, ok := s.data[collection]
	if !ok {
		c = map[string]map[string]any{}
		s.data[collection] = c
	}
	return c
}

// normalize round-trips a document through json so stored values carry
// the same types a real store would return (int vs float64 etc.). It
// also serves as a deep copy, keeping callers isolated from the map.
func normalize(data map[string]any) (map[string]any, error) {
	raw, err := oj.Marshal(data)
	if err != nil {
		return nil, err
	}
	parsed, err := oj.Parse(raw)
	if err != nil {
		return nil, err
	}
	return parsed.(map[string]any), nil
}

func matches(doc map[string]any, filters []store.Filter) bool {
	for _, f := range filters {
		want, err := normalizeValue(f.Value)
		if err != nil {
			return false
		}
		got, ok := doc[f.Field]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func normalizeValue(v any) (any, error) {
	raw, err := oj.Marshal(v)
	if err != nil {
		return nil, err
	}
	return oj.Parse(raw)
}
