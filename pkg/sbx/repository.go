package sbx

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repository is a typed facade over the data client for one entity type.
// Unlike the raw find functions it follows the usual Go convention of
// returning errors: a failure response comes back as an *APIError.
type Repository[T Entity] struct {
	client DataClient
	model  string
}

// NewRepository builds a repository for T. The model name comes from the
// zero value of T, so EntityModel must use a value receiver.
func NewRepository[T Entity](client DataClient) *Repository[T] {
	var zero T

	return &Repository[T]{client: client, model: zero.EntityModel()}
}

// Query starts a find query for the repository's model.
func (r *Repository[T]) Query() *FindQuery {
	return NewFindQuery(r.model)
}

// FindByKey fetches one row by key. Returns ErrNotFound when no row
// matches.
func (r *Repository[T]) FindByKey(ctx context.Context, key string) (T, error) {
	var zero T

	resp := FindOne[T](ctx, r.client, r.Query().WhereWithKeys([]string{key}))
	if err := resp.Err(); err != nil {
		return zero, err
	}

	if len(resp.Results) == 0 {
		return zero, fmt.Errorf("%w: %s %q", ErrNotFound, r.model, key)
	}

	return resp.Results[0], nil
}

// FindByKeys fetches all rows with the given keys, across pages.
func (r *Repository[T]) FindByKeys(ctx context.Context, keys []string) ([]T, error) {
	resp := FindAll[T](ctx, r.client, r.Query().WhereWithKeys(keys))
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

// FindAll fetches every row of the model, across pages.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	resp := FindAll[T](ctx, r.client, r.Query())
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

// FindPage fetches one page of rows.
func (r *Repository[T]) FindPage(ctx context.Context, page, size int) (*FindResponse[T], error) {
	resp := Find[T](ctx, r.client, r.Query().SetPage(page).SetPageSize(size))
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp, nil
}

// FindWhere fetches every row matching the query built by fn, across
// pages. fn receives a fresh query for the repository's model.
func (r *Repository[T]) FindWhere(ctx context.Context, fn func(q *FindQuery)) ([]T, error) {
	query := r.Query()
	fn(query)

	resp := FindAll[T](ctx, r.client, query)
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

// ExistsByKey reports whether a row with the key exists.
func (r *Repository[T]) ExistsByKey(ctx context.Context, key string) (bool, error) {
	resp := FindOne[T](ctx, r.client, r.Query().WhereWithKeys([]string{key}))
	if err := resp.Err(); err != nil {
		return false, err
	}

	return len(resp.Results) > 0, nil
}

// Count returns the total number of rows of the model.
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	resp := Find[T](ctx, r.client, r.Query().SetPageSize(1))
	if err := resp.Err(); err != nil {
		return 0, err
	}

	return resp.RowCount, nil
}

// Save persists the entity: an insert when its key is empty, an update
// otherwise. The saved entity, re-keyed by the backend on insert, is
// returned.
func (r *Repository[T]) Save(ctx context.Context, entity T) (T, error) {
	var zero T

	row, err := entityToRow(entity)
	if err != nil {
		return zero, err
	}

	var resp *Response
	if entity.EntityKey() == "" {
		resp, err = r.client.Create(ctx, r.model, []map[string]any{row})
	} else {
		resp, err = r.client.Update(ctx, r.model, []map[string]any{row})
	}

	if err != nil {
		return zero, err
	}

	if err := resp.Err(); err != nil {
		return zero, err
	}

	if len(resp.Keys) > 0 {
		return r.FindByKey(ctx, resp.Keys[0])
	}

	return entity, nil
}

// SaveAll persists the entities, splitting them into inserts and updates.
// The keys of all affected rows are returned.
func (r *Repository[T]) SaveAll(ctx context.Context, entities []T) ([]string, error) {
	var inserts, updates []map[string]any

	for _, entity := range entities {
		row, err := entityToRow(entity)
		if err != nil {
			return nil, err
		}

		if entity.EntityKey() == "" {
			inserts = append(inserts, row)
		} else {
			updates = append(updates, row)
		}
	}

	var keys []string

	if len(inserts) > 0 {
		resp, err := r.client.Create(ctx, r.model, inserts)
		if err != nil {
			return nil, err
		}

		if err := resp.Err(); err != nil {
			return nil, err
		}

		keys = append(keys, resp.Keys...)
	}

	if len(updates) > 0 {
		resp, err := r.client.Update(ctx, r.model, updates)
		if err != nil {
			return nil, err
		}

		if err := resp.Err(); err != nil {
			return nil, err
		}

		keys = append(keys, resp.Keys...)
	}

	return keys, nil
}

// Delete removes the entity's row.
func (r *Repository[T]) Delete(ctx context.Context, entity T) error {
	return r.DeleteByKeys(ctx, []string{entity.EntityKey()})
}

// DeleteByKeys removes the rows with the given keys.
func (r *Repository[T]) DeleteByKeys(ctx context.Context, keys []string) error {
	where := Keys(keys)

	resp, err := r.client.Delete(ctx, r.model, &where)
	if err != nil {
		return err
	}

	return resp.Err()
}

// DeleteAll removes every row of the model.
func (r *Repository[T]) DeleteAll(ctx context.Context) error {
	resp, err := r.client.Delete(ctx, r.model, nil)
	if err != nil {
		return err
	}

	return resp.Err()
}

// entityToRow converts an entity to a row map through its JSON form. The
// backend rejects rows carrying metadata, so _META is dropped here and
// again by the data client.
func entityToRow(entity any) (map[string]any, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encoding entity: %w", err)
	}

	var row map[string]any
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decoding entity row: %w", err)
	}

	delete(row, "_META")
	delete(row, "meta")

	return row, nil
}
