package client

import (
	"context"
	"fmt"

	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// EmailClient implements sbx.EmailClient.
type EmailClient struct {
	http *internalhttp.Client
}

// Send dispatches an email through the v1 endpoint.
func (c *EmailClient) Send(ctx context.Context, params *sbx.EmailParams) (*sbx.Response, error) {
	return c.send(ctx, constants.PathEmailSend, params)
}

// SendV2 dispatches an email through the v2 endpoint, which supports
// template data.
func (c *EmailClient) SendV2(ctx context.Context, params *sbx.EmailParams) (*sbx.Response, error) {
	return c.send(ctx, constants.PathEmailSendV2, params)
}

func (c *EmailClient) send(ctx context.Context, path string, params *sbx.EmailParams) (*sbx.Response, error) {
	resp, err := c.http.Post(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("sending email: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
