package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// FoldersClient implements sbx.FoldersClient.
type FoldersClient struct {
	http *internalhttp.Client
}

// Create adds a folder under the given parent. An empty parent key
// creates the folder at the domain root.
func (c *FoldersClient) Create(ctx context.Context, parentKey, name string) (*sbx.Response, error) {
	query := url.Values{}
	query.Set("name", name)

	if parentKey != "" {
		query.Set("parent_key", parentKey)
	}

	resp, err := c.http.Get(ctx, constants.PathFolderCreate, query)
	if err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Delete removes a folder.
func (c *FoldersClient) Delete(ctx context.Context, folderKey string) (*sbx.Response, error) {
	query := url.Values{}
	query.Set("key", folderKey)

	resp, err := c.http.Get(ctx, constants.PathFolderDelete, query)
	if err != nil {
		return nil, fmt.Errorf("deleting folder: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// List returns a folder's contents. An empty key lists the domain root.
func (c *FoldersClient) List(ctx context.Context, folderKey string) (*sbx.FolderListResponse, error) {
	query := url.Values{}
	if folderKey != "" {
		query.Set("key", folderKey)
	}

	resp, err := c.http.Get(ctx, constants.PathFolderList, query)
	if err != nil {
		return nil, fmt.Errorf("listing folder: %w", err)
	}

	var out sbx.FolderListResponse
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Rename changes a folder's name.
func (c *FoldersClient) Rename(ctx context.Context, folderKey, name string) (*sbx.Response, error) {
	query := url.Values{}
	query.Set("key", folderKey)
	query.Set("name", name)

	resp, err := c.http.Get(ctx, constants.PathFolderRename, query)
	if err != nil {
		return nil, fmt.Errorf("renaming folder: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
