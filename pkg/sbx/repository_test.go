package sbx_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// crudRecorder records CRUD calls and serves a fixed find page.
type crudRecorder struct {
	findResponse *sbx.FindResponse[json.RawMessage]
	created      [][]map[string]any
	updated      [][]map[string]any
	deleted      []*sbx.WhereClause
	createKeys   []string
}

func (m *crudRecorder) Find(context.Context, *sbx.FindRequest) *sbx.FindResponse[json.RawMessage] {
	if m.findResponse != nil {
		return m.findResponse
	}

	return &sbx.FindResponse[json.RawMessage]{Success: true}
}

func (m *crudRecorder) Create(_ context.Context, _ string, rows []map[string]any) (*sbx.Response, error) {
	m.created = append(m.created, rows)

	return &sbx.Response{Success: true, Keys: m.createKeys}, nil
}

func (m *crudRecorder) Update(_ context.Context, _ string, rows []map[string]any) (*sbx.Response, error) {
	m.updated = append(m.updated, rows)

	return &sbx.Response{Success: true, Keys: keysOf(rows)}, nil
}

func (m *crudRecorder) Delete(_ context.Context, _ string, where *sbx.WhereClause) (*sbx.Response, error) {
	m.deleted = append(m.deleted, where)

	return &sbx.Response{Success: true}, nil
}

func keysOf(rows []map[string]any) []string {
	out := make([]string, 0, len(rows))

	for _, row := range rows {
		if key, ok := row["_KEY"].(string); ok {
			out = append(out, key)
		}
	}

	return out
}

func TestRepository_FindByKey(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		findResponse: &sbx.FindResponse[json.RawMessage]{
			Success:  true,
			RowCount: 1,
			Results:  []json.RawMessage{json.RawMessage(`{"_KEY":"k1","name":"drill"}`)},
		},
	}
	repo := sbx.NewRepository[testProduct](client)

	product, err := repo.FindByKey(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, "k1", product.EntityKey())
	assert.Equal(t, "drill", product.Name)
}

func TestRepository_FindByKeyNotFound(t *testing.T) {
	t.Parallel()

	repo := sbx.NewRepository[testProduct](&crudRecorder{})

	_, err := repo.FindByKey(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, sbx.IsNotFound(err))
}

func TestRepository_FindByKeyFailure(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		findResponse: &sbx.FindResponse[json.RawMessage]{Error: "denied"},
	}
	repo := sbx.NewRepository[testProduct](client)

	_, err := repo.FindByKey(context.Background(), "k1")
	require.Error(t, err)

	apiErr, ok := sbx.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "denied", apiErr.Detail)
}

func TestRepository_SaveCreatesWhenKeyEmpty(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		createKeys: []string{"new-key"},
		findResponse: &sbx.FindResponse[json.RawMessage]{
			Success: true,
			Results: []json.RawMessage{json.RawMessage(`{"_KEY":"new-key","name":"drill"}`)},
		},
	}
	repo := sbx.NewRepository[testProduct](client)

	saved, err := repo.Save(context.Background(), testProduct{Name: "drill"})
	require.NoError(t, err)
	assert.Equal(t, "new-key", saved.EntityKey())

	require.Len(t, client.created, 1)
	assert.Empty(t, client.updated)
}

func TestRepository_SaveUpdatesWhenKeySet(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		findResponse: &sbx.FindResponse[json.RawMessage]{
			Success: true,
			Results: []json.RawMessage{json.RawMessage(`{"_KEY":"k1","name":"drill"}`)},
		},
	}
	repo := sbx.NewRepository[testProduct](client)

	entity := testProduct{Record: sbx.Record{Key: "k1"}, Name: "drill"}

	_, err := repo.Save(context.Background(), entity)
	require.NoError(t, err)
	require.Len(t, client.updated, 1)
	assert.Empty(t, client.created)
}

func TestRepository_SaveStripsMeta(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		findResponse: &sbx.FindResponse[json.RawMessage]{
			Success: true,
			Results: []json.RawMessage{json.RawMessage(`{"_KEY":"k1"}`)},
		},
	}
	repo := sbx.NewRepository[testProduct](client)

	entity := testProduct{
		Record: sbx.Record{Key: "k1", Meta: &sbx.Meta{ModelName: "product"}},
		Name:   "drill",
	}

	_, err := repo.Save(context.Background(), entity)
	require.NoError(t, err)
	require.Len(t, client.updated, 1)
	require.Len(t, client.updated[0], 1)
	assert.NotContains(t, client.updated[0][0], "_META")
}

func TestRepository_SaveAllSplitsInsertsAndUpdates(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{createKeys: []string{"n1"}}
	repo := sbx.NewRepository[testProduct](client)

	entities := []testProduct{
		{Name: "new"},
		{Record: sbx.Record{Key: "k1"}, Name: "existing"},
	}

	keys, err := repo.SaveAll(context.Background(), entities)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "k1"}, keys)
	require.Len(t, client.created, 1)
	require.Len(t, client.updated, 1)
}

func TestRepository_DeleteByKeys(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{}
	repo := sbx.NewRepository[testProduct](client)

	require.NoError(t, repo.DeleteByKeys(context.Background(), []string{"k1", "k2"}))
	require.Len(t, client.deleted, 1)
	assert.Equal(t, []string{"k1", "k2"}, client.deleted[0].KeyList())
}

func TestRepository_DeleteAll(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{}
	repo := sbx.NewRepository[testProduct](client)

	require.NoError(t, repo.DeleteAll(context.Background()))
	require.Len(t, client.deleted, 1)
	assert.Nil(t, client.deleted[0])
}

func TestRepository_Count(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		findResponse: &sbx.FindResponse[json.RawMessage]{Success: true, RowCount: 42},
	}
	repo := sbx.NewRepository[testProduct](client)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestRepository_FindWhere(t *testing.T) {
	t.Parallel()

	client := &crudRecorder{
		findResponse: &sbx.FindResponse[json.RawMessage]{
			Success: true,
			Results: []json.RawMessage{json.RawMessage(`{"_KEY":"k1","name":"drill"}`)},
		},
	}
	repo := sbx.NewRepository[testProduct](client)

	products, err := repo.FindWhere(context.Background(), func(q *sbx.FindQuery) {
		q.AndWhereIsEqualTo("name", "drill")
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "drill", products[0].Name)
}
