package sbx

import (
	"context"
	"encoding/json"
	"fmt"
)

// DataClient executes row operations against the backend. It never returns
// a Go error for a find: transport failures and backend rejections are both
// encoded as failure responses.
type DataClient interface {
	// Find executes one find request and returns the raw page.
	Find(ctx context.Context, request *FindRequest) *FindResponse[json.RawMessage]
	// Create inserts rows, chunking large batches, and returns the new keys.
	Create(ctx context.Context, rowModel string, rows []map[string]any) (*Response, error)
	// Update overwrites rows by key, chunking large batches.
	Update(ctx context.Context, rowModel string, rows []map[string]any) (*Response, error)
	// Delete removes the rows selected by the where clause.
	Delete(ctx context.Context, rowModel string, where *WhereClause) (*Response, error)
}

// Find executes the query and decodes each row into T. The response is
// never nil and never accompanied by an error; failures set Success false.
func Find[T any](ctx context.Context, client DataClient, query *FindQuery) *FindResponse[T] {
	return decodePage[T](client.Find(ctx, query.Compile()))
}

// FindOne executes the query with page size 1. At most one row is returned;
// a successful empty response means no match.
func FindOne[T any](ctx context.Context, client DataClient, query *FindQuery) *FindResponse[T] {
	return decodePage[T](client.Find(ctx, query.SetPageSize(1).Compile()))
}

// FindAll fetches every page of the query sequentially, starting at page 1,
// and merges them into one response. The first failing page aborts the loop
// and its failure response is returned as-is: no partial results. Fetched
// results merge per related model with later pages overwriting earlier rows
// under the same key. A page without total_pages ends the loop, so a
// backend that omits the field yields exactly one call.
func FindAll[T any](ctx context.Context, client DataClient, query *FindQuery) *FindResponse[T] {
	var (
		results []T
		fetched map[string]map[string]any
		last    *FindResponse[T]
	)

	for page := 1; ; page++ {
		resp := decodePage[T](client.Find(ctx, query.SetPage(page).Compile()))
		if !resp.Success {
			return resp
		}

		results = append(results, resp.Results...)
		fetched = mergeFetched(fetched, resp.FetchedResults)
		last = resp

		if !resp.HasMorePages(page) {
			break
		}
	}

	return &FindResponse[T]{
		Success:        true,
		TotalPages:     last.TotalPages,
		RowCount:       len(results),
		Results:        results,
		FetchedResults: fetched,
		Model:          last.Model,
	}
}

// decodePage converts a raw page into a typed one. A row that fails to
// decode turns the whole page into a failure response.
func decodePage[T any](raw *FindResponse[json.RawMessage]) *FindResponse[T] {
	out := &FindResponse[T]{
		Success:        raw.Success,
		Error:          raw.Error,
		Message:        raw.Message,
		TotalPages:     raw.TotalPages,
		RowCount:       raw.RowCount,
		FetchedResults: raw.FetchedResults,
		Model:          raw.Model,
	}

	if len(raw.Results) > 0 {
		out.Results = make([]T, len(raw.Results))
		for i, row := range raw.Results {
			if err := json.Unmarshal(row, &out.Results[i]); err != nil {
				return FindFailure[T](fmt.Sprintf("decoding row %d: %v", i, err), "")
			}
		}
	}

	return out
}

func mergeFetched(dst, src map[string]map[string]any) map[string]map[string]any {
	if len(src) == 0 {
		return dst
	}

	if dst == nil {
		dst = make(map[string]map[string]any, len(src))
	}

	for model, rows := range src {
		if dst[model] == nil {
			dst[model] = make(map[string]any, len(rows))
		}

		for key, row := range rows {
			dst[model][key] = row
		}
	}

	return dst
}

// RunScript executes a cloud script and decodes its unwrapped payload
// into T.
func RunScript[T any](ctx context.Context, client CloudScriptsClient, key string, params map[string]any) (T, error) {
	var out T

	payload, err := client.Run(ctx, key, params)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decoding script result: %w", err)
	}

	return out, nil
}
