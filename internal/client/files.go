package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// FilesClient implements sbx.FilesClient.
type FilesClient struct {
	http *internalhttp.Client
}

// Upload stores a file. Content may carry a data URL header
// ("data:<mime>;base64,") which decides the MIME type; otherwise the type
// is guessed from the file name extension.
func (c *FilesClient) Upload(ctx context.Context, request *sbx.UploadRequest) (*sbx.UploadResponse, error) {
	content, mimeType := splitDataURL(request.Content)
	if mimeType == "" {
		mimeType = mimeFromExtension(request.FileName)
	}

	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("decoding file content: %w", err)
	}

	body := map[string]any{
		"file_name": request.FileName,
		"file":      base64.StdEncoding.EncodeToString(data),
		"mimetype":  mimeType,
	}

	if request.FolderKey != "" {
		body["folder"] = request.FolderKey
	}

	resp, err := c.http.Post(ctx, constants.PathUpload, body)
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	var out sbx.UploadResponse
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Download fetches the raw bytes of a stored file.
func (c *FilesClient) Download(ctx context.Context, fileKey string) ([]byte, error) {
	query := url.Values{}
	query.Set("key", fileKey)

	resp, err := c.http.Get(ctx, constants.PathDownload, query)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}

	return resp.Body, nil
}

// Delete removes a stored file.
func (c *FilesClient) Delete(ctx context.Context, fileKey string) (*sbx.Response, error) {
	query := url.Values{}
	query.Set("key", fileKey)

	resp, err := c.http.Get(ctx, constants.PathDeleteFile, query)
	if err != nil {
		return nil, fmt.Errorf("deleting file: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// splitDataURL separates a data URL into its base64 payload and MIME type.
// Plain base64 input is returned unchanged with an empty type.
func splitDataURL(content string) (payload, mimeType string) {
	if !strings.HasPrefix(content, "data:") {
		return content, ""
	}

	header, rest, found := strings.Cut(content, ",")
	if !found {
		return content, ""
	}

	mimeType = strings.TrimPrefix(header, "data:")
	mimeType = strings.TrimSuffix(mimeType, ";base64")

	return rest, mimeType
}

func mimeFromExtension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return "application/octet-stream"
	}

	switch strings.ToLower(fileName[idx+1:]) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "pdf":
		return "application/pdf"
	case "txt":
		return "text/plain"
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	case "zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
