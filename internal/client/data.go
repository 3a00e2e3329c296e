package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sbxcloud/sbx-go/internal/auth"
	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// DataClient implements sbx.DataClient.
type DataClient struct {
	http        *internalhttp.Client
	credentials *auth.Credentials
}

// Find executes one find request. Transport failures and backend
// rejections both come back as failure responses, never as a Go error.
func (c *DataClient) Find(ctx context.Context, request *sbx.FindRequest) *sbx.FindResponse[json.RawMessage] {
	if request.RowModel == "" {
		return sbx.FindFailure[json.RawMessage](sbx.ErrEmptyRowModel.Error(), "")
	}

	resp, err := c.http.Post(ctx, constants.PathRowFind, request.WithDomain(c.credentials.Domain()))
	if err != nil {
		return sbx.FindFailure[json.RawMessage](err.Error(), "")
	}

	var out sbx.FindResponse[json.RawMessage]
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return sbx.FindFailure[json.RawMessage](fmt.Sprintf("decoding find response: %v", err), "")
	}

	return &out
}

// Create inserts rows, splitting batches larger than the chunk limit. Keys
// accumulate across chunks; the first failing chunk stops the batch and its
// failure is returned.
func (c *DataClient) Create(ctx context.Context, rowModel string, rows []map[string]any) (*sbx.Response, error) {
	return c.upsert(ctx, constants.PathRowUpsert, rowModel, rows)
}

// Update overwrites rows by key, with the same chunking as Create.
func (c *DataClient) Update(ctx context.Context, rowModel string, rows []map[string]any) (*sbx.Response, error) {
	return c.upsert(ctx, constants.PathRowUpdate, rowModel, rows)
}

func (c *DataClient) upsert(ctx context.Context, path, rowModel string, rows []map[string]any) (*sbx.Response, error) {
	if rowModel == "" {
		return nil, sbx.ErrEmptyRowModel
	}

	domain := c.credentials.Domain()
	cleaned := cleanRows(rows)

	merged := &sbx.Response{Success: true}

	for start := 0; start < len(cleaned); start += constants.DefaultChunkSize {
		end := min(start+constants.DefaultChunkSize, len(cleaned))

		request := &sbx.UpsertRequest{
			RowModel: rowModel,
			Domain:   &domain,
			Rows:     cleaned[start:end],
		}

		resp, err := c.http.Post(ctx, path, request)
		if err != nil {
			return nil, fmt.Errorf("upserting %s rows: %w", rowModel, err)
		}

		var out sbx.Response
		if err := unmarshalResponse(resp.Body, &out); err != nil {
			return nil, err
		}

		if !out.Success {
			return &out, nil
		}

		merged.Keys = append(merged.Keys, out.Keys...)
	}

	return merged, nil
}

// Delete removes the rows selected by the where clause. A key-based clause
// is chunked like an upsert; a nil or condition clause goes out in one
// request.
func (c *DataClient) Delete(ctx context.Context, rowModel string, where *sbx.WhereClause) (*sbx.Response, error) {
	if rowModel == "" {
		return nil, sbx.ErrEmptyRowModel
	}

	domain := c.credentials.Domain()

	if where != nil && where.IsKeys() {
		return c.deleteByKeys(ctx, rowModel, domain, where.KeyList())
	}

	request := &sbx.DeleteRequest{RowModel: rowModel, Domain: &domain, Where: where}

	resp, err := c.http.Post(ctx, constants.PathRowDelete, request)
	if err != nil {
		return nil, fmt.Errorf("deleting %s rows: %w", rowModel, err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *DataClient) deleteByKeys(ctx context.Context, rowModel string, domain int, keys []string) (*sbx.Response, error) {
	merged := &sbx.Response{Success: true}

	for start := 0; start < len(keys); start += constants.DefaultChunkSize {
		end := min(start+constants.DefaultChunkSize, len(keys))

		where := sbx.Keys(keys[start:end])
		request := &sbx.DeleteRequest{RowModel: rowModel, Domain: &domain, Where: &where}

		resp, err := c.http.Post(ctx, constants.PathRowDelete, request)
		if err != nil {
			return nil, fmt.Errorf("deleting %s rows: %w", rowModel, err)
		}

		var out sbx.Response
		if err := unmarshalResponse(resp.Body, &out); err != nil {
			return nil, err
		}

		if !out.Success {
			return &out, nil
		}

		merged.Keys = append(merged.Keys, out.Keys...)
	}

	return merged, nil
}

// cleanRows strips backend-managed metadata the upsert endpoints reject.
func cleanRows(rows []map[string]any) []map[string]any {
	cleaned := make([]map[string]any, len(rows))

	for i, row := range rows {
		copied := make(map[string]any, len(row))

		for key, value := range row {
			if key == "_META" || key == "meta" {
				continue
			}

			copied[key] = value
		}

		cleaned[i] = copied
	}

	return cleaned
}

func unmarshalResponse(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
