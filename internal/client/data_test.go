package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbxcloud/sbx-go/internal/client"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cli, err := client.New(&sbx.Config{
		BaseURL: server.URL,
		Domain:  96,
		AppKey:  "test-app-key",
		Token:   "test-token",
	})
	require.NoError(t, err)

	return cli
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *sbx.Config
		expected error
	}{
		{name: "nil config", config: nil, expected: sbx.ErrConfigRequired},
		{name: "missing base URL", config: &sbx.Config{AppKey: "k"}, expected: sbx.ErrBaseURLRequired},
		{name: "missing app key", config: &sbx.Config{BaseURL: "https://sbxcloud.com"}, expected: sbx.ErrAppKeyRequired},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := client.New(testCase.config)
			require.ErrorIs(t, err, testCase.expected)
		})
	}
}

func TestDataClient_Find(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/data/v1/row/find", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "test-app-key", request.Header.Get("App-Key"))
		assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "product", body["row_model"])
		// The client stamps its configured domain onto the request.
		assert.InDelta(t, 96, body["domain"], 0)

		_, _ = writer.Write([]byte(`{
			"success": true,
			"total_pages": 1,
			"row_count": 1,
			"results": [{"name": "drill"}]
		}`))
	}))

	resp := cli.Data().Find(context.Background(), sbx.NewFindQuery("product").Compile())

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.RowCount)
	require.Len(t, resp.Results, 1)
}

func TestDataClient_FindBackendFailure(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"success": false, "error": "invalid model"}`))
	}))

	resp := cli.Data().Find(context.Background(), sbx.NewFindQuery("nope").Compile())

	assert.False(t, resp.Success)
	assert.Equal(t, "invalid model", resp.ErrorMessage())
}

func TestDataClient_FindTransportFailure(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
	}))

	resp := cli.Data().Find(context.Background(), sbx.NewFindQuery("product").Compile())

	// Transport errors come back as failure responses, not Go errors.
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.ErrorMessage())
}

func TestDataClient_FindEmptyRowModel(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
		writer.WriteHeader(http.StatusInternalServerError)
	}))

	resp := cli.Data().Find(context.Background(), &sbx.FindRequest{})
	assert.False(t, resp.Success)
}

func TestDataClient_CreateChunksLargeBatches(t *testing.T) {
	t.Parallel()

	var (
		calls      int
		chunkSizes []int
	)

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/data/v1/row", request.URL.Path)

		var body struct {
			Rows []map[string]any `json:"rows"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		calls++
		chunkSizes = append(chunkSizes, len(body.Rows))

		keys := make([]string, len(body.Rows))
		for i := range keys {
			keys[i] = fmt.Sprintf("key-%d-%d", calls, i)
		}

		_ = json.NewEncoder(writer).Encode(sbx.Response{Success: true, Keys: keys})
	}))

	rows := make([]map[string]any, 150)
	for i := range rows {
		rows[i] = map[string]any{"n": i}
	}

	resp, err := cli.Data().Create(context.Background(), "product", rows)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{100, 50}, chunkSizes)
	assert.Len(t, resp.Keys, 150)
}

func TestDataClient_CreateStripsMeta(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Rows []map[string]any `json:"rows"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Len(t, body.Rows, 1)
		assert.NotContains(t, body.Rows[0], "_META")
		assert.NotContains(t, body.Rows[0], "meta")
		assert.Contains(t, body.Rows[0], "name")

		_ = json.NewEncoder(writer).Encode(sbx.Response{Success: true, Keys: []string{"k1"}})
	}))

	rows := []map[string]any{{
		"name":  "drill",
		"_META": map[string]any{"model_name": "product"},
		"meta":  "x",
	}}

	resp, err := cli.Data().Create(context.Background(), "product", rows)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestDataClient_CreateFailingChunkShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls++
		_ = json.NewEncoder(writer).Encode(sbx.Response{Error: "quota exceeded"})
	}))

	rows := make([]map[string]any, 250)
	for i := range rows {
		rows[i] = map[string]any{"n": i}
	}

	resp, err := cli.Data().Create(context.Background(), "product", rows)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "quota exceeded", resp.ErrorMessage())
	assert.Equal(t, 1, calls)
}

func TestDataClient_UpdateUsesUpdatePath(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/data/v1/row/update", request.URL.Path)
		_ = json.NewEncoder(writer).Encode(sbx.Response{Success: true, Keys: []string{"k1"}})
	}))

	resp, err := cli.Data().Update(context.Background(), "product", []map[string]any{{"_KEY": "k1"}})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestDataClient_DeleteByKeysChunks(t *testing.T) {
	t.Parallel()

	var keyCounts []int

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/data/v1/row/delete", request.URL.Path)

		var body struct {
			Where struct {
				Keys []string `json:"keys"`
			} `json:"where"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		keyCounts = append(keyCounts, len(body.Where.Keys))

		_ = json.NewEncoder(writer).Encode(sbx.Response{Success: true})
	}))

	keys := make([]string, 120)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}

	where := sbx.Keys(keys)

	resp, err := cli.Data().Delete(context.Background(), "product", &where)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []int{100, 20}, keyCounts)
}

func TestClient_AppConfig(t *testing.T) {
	t.Parallel()

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/domain/v1/app/config", request.URL.Path)
		_, _ = writer.Write([]byte(`{
			"success": true,
			"app": {"domain": 96, "domain_name": "demo", "models": [{"name": "product"}]}
		}`))
	}))

	_, err := cli.Config()
	require.ErrorIs(t, err, sbx.ErrAppConfigNotLoaded)

	loaded, err := cli.LoadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.DomainName)

	cached, err := cli.Config()
	require.NoError(t, err)
	assert.Equal(t, loaded, cached)
}

func TestClient_SetMultidomainCredentials(t *testing.T) {
	t.Parallel()

	var seen struct {
		appKey string
		token  string
		domain float64
	}

	cli := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen.appKey = request.Header.Get("App-Key")
		seen.token = request.Header.Get("Authorization")

		var body map[string]any
		_ = json.NewDecoder(request.Body).Decode(&body)

		if domain, ok := body["domain"].(float64); ok {
			seen.domain = domain
		}

		_, _ = writer.Write([]byte(`{"success": true}`))
	}))

	cli.SetMultidomainCredentials(42, "other-key", "other-token")
	assert.Equal(t, 42, cli.Domain())

	cli.Data().Find(context.Background(), sbx.NewFindQuery("product").Compile())

	assert.Equal(t, "other-key", seen.appKey)
	assert.Equal(t, "Bearer other-token", seen.token)
	assert.InDelta(t, 42, seen.domain, 0)
}
