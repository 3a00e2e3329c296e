package sbx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

func TestFindQuery_ImplicitGroup(t *testing.T) {
	t.Parallel()

	req := sbx.NewFindQuery("product").
		AndWhereIsEqualTo("category", "tools").
		Compile()

	require.NotNil(t, req.Where)

	groups := req.Where.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, sbx.And, groups[0].AndOr)
	require.Len(t, groups[0].Group, 1)
	assert.Equal(t, "category", groups[0].Group[0].Field)
	assert.Equal(t, sbx.OpEqual, groups[0].Group[0].Op)
	assert.Equal(t, "tools", groups[0].Group[0].Val)
}

func TestFindQuery_GroupsAndOrder(t *testing.T) {
	t.Parallel()

	req := sbx.NewFindQuery("product").
		AndWhereIsEqualTo("active", true).
		NewGroupWithOr().
		AndWhereIsGreaterThan("price", 10).
		OrWhereIsLessThan("price", 100).
		Compile()

	groups := req.Where.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, sbx.And, groups[0].AndOr)
	assert.Equal(t, sbx.Or, groups[1].AndOr)

	require.Len(t, groups[1].Group, 2)
	assert.Equal(t, sbx.And, groups[1].Group[0].AndOr)
	assert.Equal(t, sbx.OpGreaterThan, groups[1].Group[0].Op)
	assert.Equal(t, sbx.Or, groups[1].Group[1].AndOr)
	assert.Equal(t, sbx.OpLessThan, groups[1].Group[1].Op)
}

//nolint:funlen // table covers every operator
func TestFindQuery_Operators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(q *sbx.FindQuery) *sbx.FindQuery
		op    sbx.Operation
		val   any
	}{
		{
			name:  "equal",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsEqualTo("f", 1) },
			op:    sbx.OpEqual,
			val:   1,
		},
		{
			name:  "not equal",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsNotEqualTo("f", 1) },
			op:    sbx.OpNotEqual,
			val:   1,
		},
		{
			name:  "greater than",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsGreaterThan("f", 1) },
			op:    sbx.OpGreaterThan,
			val:   1,
		},
		{
			name:  "greater or equal",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsGreaterOrEqualTo("f", 1) },
			op:    sbx.OpGreaterOrEqual,
			val:   1,
		},
		{
			name:  "less than",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsLessThan("f", 1) },
			op:    sbx.OpLessThan,
			val:   1,
		},
		{
			name:  "less or equal",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsLessOrEqualTo("f", 1) },
			op:    sbx.OpLessOrEqual,
			val:   1,
		},
		{
			name:  "is null",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsNull("f") },
			op:    sbx.OpIs,
			val:   nil,
		},
		{
			name:  "is not null",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsNotNull("f") },
			op:    sbx.OpIsNot,
			val:   nil,
		},
		{
			name:  "starts with",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereStartsWith("f", "abc") },
			op:    sbx.OpLike,
			val:   "abc%",
		},
		{
			name:  "ends with",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereEndsWith("f", "abc") },
			op:    sbx.OpLike,
			val:   "%abc",
		},
		{
			name:  "contains",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereContains("f", "abc") },
			op:    sbx.OpLike,
			val:   "%abc%",
		},
		{
			name:  "in",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsIn("f", []any{"a", "b"}) },
			op:    sbx.OpIn,
			val:   []any{"a", "b"},
		},
		{
			name:  "not in",
			build: func(q *sbx.FindQuery) *sbx.FindQuery { return q.AndWhereIsNotIn("f", []any{"a", "b"}) },
			op:    sbx.OpNotIn,
			val:   []any{"a", "b"},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			req := testCase.build(sbx.NewFindQuery("m")).Compile()

			groups := req.Where.Groups()
			require.Len(t, groups, 1)
			require.Len(t, groups[0].Group, 1)

			expr := groups[0].Group[0]
			assert.Equal(t, "f", expr.Field)
			assert.Equal(t, testCase.op, expr.Op)
			assert.Equal(t, testCase.val, expr.Val)
		})
	}
}

func TestFindQuery_ContainsStripsWildcards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "drill", expected: "%drill%"},
		{name: "embedded percent", input: "100%", expected: "%100%"},
		{name: "only percents", input: "%%", expected: "%%"},
		{name: "empty", input: "", expected: "%%"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			req := sbx.NewFindQuery("m").AndWhereContains("f", testCase.input).Compile()
			assert.Equal(t, testCase.expected, req.Where.Groups()[0].Group[0].Val)
		})
	}
}

func TestFindQuery_KeysPrecedence(t *testing.T) {
	t.Parallel()

	req := sbx.NewFindQuery("product").
		AndWhereIsEqualTo("active", true).
		WhereWithKeys([]string{"k1", "k2"}).
		Compile()

	require.NotNil(t, req.Where)
	assert.True(t, req.Where.IsKeys())
	assert.Equal(t, []string{"k1", "k2"}, req.Where.KeyList())
	assert.Nil(t, req.Where.Groups())
}

func TestFindQuery_LastWriteWins(t *testing.T) {
	t.Parallel()

	req := sbx.NewFindQuery("product").
		SetPage(1).
		SetPage(7).
		SetPageSize(10).
		SetPageSize(25).
		FetchModels([]string{"a"}).
		FetchModels([]string{"b"}).
		WhereWithKeys([]string{"k1"}).
		WhereWithKeys([]string{"k2"}).
		Compile()

	assert.Equal(t, 7, req.Page)
	assert.Equal(t, 25, req.Size)
	assert.Equal(t, []string{"b"}, req.Fetch)
	assert.Equal(t, []string{"k2"}, req.Where.KeyList())
}

func TestFindQuery_CompileIsRepeatable(t *testing.T) {
	t.Parallel()

	query := sbx.NewFindQuery("product").AndWhereIsEqualTo("active", true)

	first := query.SetPage(1).Compile()
	second := query.SetPage(2).Compile()

	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 2, second.Page)

	// Mutating the builder after compile must not leak into the request.
	query.AndWhereIsEqualTo("extra", 1)
	assert.Len(t, second.Where.Groups()[0].Group, 1)
}

func TestFindRequest_WireFormat(t *testing.T) {
	t.Parallel()

	t.Run("conditions", func(t *testing.T) {
		t.Parallel()

		req := sbx.NewFindQuery("product").
			AndWhereIsEqualTo("category", "tools").
			SetPage(2).
			SetPageSize(50).
			FetchModels([]string{"supplier"}).
			Compile()

		data, err := json.Marshal(req)
		require.NoError(t, err)

		expected := `{
			"row_model": "product",
			"where": [
				{"ANDOR": "AND", "GROUP": [
					{"ANDOR": "AND", "FIELD": "category", "OP": "=", "VAL": "tools"}
				]}
			],
			"page": 2,
			"size": 50,
			"fetch": ["supplier"]
		}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("keys", func(t *testing.T) {
		t.Parallel()

		req := sbx.NewFindQuery("product").WhereWithKeys([]string{"k1", "k2"}).Compile()

		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"row_model": "product", "where": {"keys": ["k1", "k2"]}}`, string(data))
	})

	t.Run("null value survives serialization", func(t *testing.T) {
		t.Parallel()

		req := sbx.NewFindQuery("product").AndWhereIsNull("deleted_at").Compile()

		data, err := json.Marshal(req)
		require.NoError(t, err)

		expected := `{
			"row_model": "product",
			"where": [
				{"ANDOR": "AND", "GROUP": [
					{"ANDOR": "AND", "FIELD": "deleted_at", "OP": "IS", "VAL": null}
				]}
			]
		}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("no optional fields", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(sbx.NewFindQuery("product").Compile())
		require.NoError(t, err)
		assert.JSONEq(t, `{"row_model": "product"}`, string(data))
	})
}

func TestFindRequest_WithDomain(t *testing.T) {
	t.Parallel()

	req := sbx.NewFindQuery("product").Compile()
	stamped := req.WithDomain(96)

	require.NotNil(t, stamped.Domain)
	assert.Equal(t, 96, *stamped.Domain)
	assert.Nil(t, req.Domain)
}

func TestWhereClause_RoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("keys", func(t *testing.T) {
		t.Parallel()

		var clause sbx.WhereClause

		require.NoError(t, json.Unmarshal([]byte(`{"keys":["a","b"]}`), &clause))
		assert.True(t, clause.IsKeys())
		assert.Equal(t, []string{"a", "b"}, clause.KeyList())
	})

	t.Run("groups", func(t *testing.T) {
		t.Parallel()

		var clause sbx.WhereClause

		raw := `[{"ANDOR":"AND","GROUP":[{"ANDOR":"AND","FIELD":"f","OP":"=","VAL":1}]}]`
		require.NoError(t, json.Unmarshal([]byte(raw), &clause))
		assert.False(t, clause.IsKeys())
		require.Len(t, clause.Groups(), 1)
	})
}

type testProduct struct {
	sbx.Record

	Name string `json:"name"`
}

func (testProduct) EntityModel() string { return "product" }

func TestQueryFor(t *testing.T) {
	t.Parallel()

	query := sbx.QueryFor[testProduct]()
	assert.Equal(t, "product", query.RowModel())
}
