package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// CloudScriptsClient implements sbx.CloudScriptsClient.
type CloudScriptsClient struct {
	http *internalhttp.Client
}

// Run executes a published cloud script and returns its payload.
func (c *CloudScriptsClient) Run(ctx context.Context, key string, params map[string]any) (json.RawMessage, error) {
	return c.run(ctx, constants.PathRunScript, key, params)
}

// RunTest executes the unpublished test revision of a cloud script.
func (c *CloudScriptsClient) RunTest(ctx context.Context, key string, params map[string]any) (json.RawMessage, error) {
	return c.run(ctx, constants.PathRunScriptTest, key, params)
}

func (c *CloudScriptsClient) run(ctx context.Context, path, key string, params map[string]any) (json.RawMessage, error) {
	resp, err := c.http.Post(ctx, path, &sbx.RunScriptRequest{Key: key, Params: params})
	if err != nil {
		return nil, fmt.Errorf("running cloud script %q: %w", key, err)
	}

	var out struct {
		Success  *bool           `json:"success"`
		Error    string          `json:"error,omitempty"`
		Message  string          `json:"message,omitempty"`
		Response json.RawMessage `json:"response,omitempty"`
	}

	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	// Older scripts reply bare, without a success envelope; only an
	// explicit success=false is a failure.
	if out.Success != nil && !*out.Success {
		return nil, &sbx.APIError{Detail: out.Error, Message: out.Message}
	}

	if len(out.Response) > 0 {
		return out.Response, nil
	}

	return resp.Body, nil
}
