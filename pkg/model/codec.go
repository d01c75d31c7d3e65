package model

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"github.com/racerready/racerready-manager-go/pkg/store"
)

// Entity is anything decodable from a store document.
type Entity interface {
	setID(id string)
}

// Encode converts an entity into the generic document form the store
// gateway accepts. The id is never part of the document body.
func Encode(v any) (map[string]any, error) {
	raw, err := oj.Marshal(v)
	if err != nil {
		return nil, err
	}
	parsed, err := oj.Parse(raw)
	if err != nil {
		return nil, err
	}
	data, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("encode %T: not an object", v)
	}
	return data, nil
}

// Decode fills target from a store document and attaches the id.
func Decode(doc store.Document, target Entity) error {
	raw, err := oj.Marshal(doc.Data)
	if err != nil {
		return err
	}
	if err := oj.Unmarshal(raw, target); err != nil {
		return err
	}
	target.setID(doc.ID)
	return nil
}

// DecodeAll decodes a query result. Order is whatever the store returned.
func DecodeAll[T any, PT interface {
	Entity
	*T
}](docs []store.Document) ([]T, error) {
	ret := make([]T, len(docs))
	for i := range docs {
		if err := Decode(docs[i], PT(&ret[i])); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
