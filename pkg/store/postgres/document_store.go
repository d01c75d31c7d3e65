//nolint:whitespace // can't make both editor and linter happy
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/racerready/racerready-manager-go/pkg/store"
)

// DocumentStore keeps every document as one row in the document table,
// (collection, id uuid, data jsonb). Equality filters compile to a jsonb
// containment predicate served by the gin index.
type DocumentStore struct {
	conn Querier
}

var _ store.Store = (*DocumentStore)(nil)

func New(conn Querier) *DocumentStore {
	return &DocumentStore{conn: conn}
}

func (s *DocumentStore) Create(
	ctx context.Context, collection string, data map[string]any,
) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	raw, err := oj.Marshal(data)
	if err != nil {
		return "", err
	}
	_, err = s.conn.Exec(ctx, `
	insert into document (collection, id, data) values ($1,$2,$3)
	`, collection, id.String(), raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *DocumentStore) Query(
	ctx context.Context, collection string, filters []store.Filter,
) ([]store.Document, error) {
	match := map[string]any{}
	for _, f := range filters {
		match[f.Field] = f.Value
	}
	raw, err := oj.Marshal(match)
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(ctx, `
	select id, data from document where collection=$1 and data @> $2::jsonb
	`, collection, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]store.Document, 0)
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		doc, err := decodeDoc(id, data)
		if err != nil {
			return nil, err
		}
		ret = append(ret, doc)
	}
	return ret, rows.Err()
}

func (s *DocumentStore) Update(
	ctx context.Context, collection, id string, partial map[string]any,
) error {
	raw, err := oj.Marshal(partial)
	if err != nil {
		return err
	}
	cmdTag, err := s.conn.Exec(ctx, `
	update document set data = data || $3::jsonb where collection=$1 and id=$2
	`, collection, id, raw)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.conn.Exec(ctx,
		"delete from document where collection=$1 and id=$2", collection, id)
	return err
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (
	store.Document, error,
) {
	row := s.conn.QueryRow(ctx,
		"select data from document where collection=$1 and id=$2", collection, id)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return decodeDoc(id, data)
}

func (s *DocumentStore) Put(
	ctx context.Context, collection, id string, data map[string]any,
) error {
	raw, err := oj.Marshal(data)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(ctx, `
	insert into document (collection, id, data) values ($1,$2,$3)
	on conflict (collection, id) do update set data = excluded.data
	`, collection, id, raw)
	return err
}

func decodeDoc(id string, raw []byte) (store.Document, error) {
	parsed, err := oj.Parse(raw)
	if err != nil {
		return store.Document{}, err
	}
	data, ok := parsed.(map[string]any)
	if !ok {
		return store.Document{}, fmt.Errorf("document %s: not an object", id)
	}
	return store.Document{ID: id, Data: data}, nil
}
