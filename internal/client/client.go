// Package client implements the sbx.Client interface against the SBX
// Cloud REST API.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/sbxcloud/sbx-go/internal/auth"
	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// Client implements the sbx.Client interface.
type Client struct {
	credentials *auth.Credentials
	httpClient  *internalhttp.Client

	data         *DataClient
	authClient   *AuthClient
	files        *FilesClient
	folders      *FoldersClient
	email        *EmailClient
	cloudScripts *CloudScriptsClient

	configMu  sync.RWMutex
	appConfig *sbx.AppConfig
}

// New validates the configuration and wires up the client.
func New(config *sbx.Config) (*Client, error) {
	if config == nil {
		return nil, sbx.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, sbx.ErrBaseURLRequired
	}

	if config.AppKey == "" {
		return nil, sbx.ErrAppKeyRequired
	}

	credentials := auth.NewCredentials(config.Domain, config.AppKey, config.Token)

	client := &Client{
		credentials: credentials,
		httpClient:  internalhttp.NewClient(config.BaseURL, credentials, httpOptions(config)...),
	}

	client.data = &DataClient{http: client.httpClient, credentials: credentials}
	client.authClient = &AuthClient{http: client.httpClient, credentials: credentials}
	client.files = &FilesClient{http: client.httpClient}
	client.folders = &FoldersClient{http: client.httpClient}
	client.email = &EmailClient{http: client.httpClient}
	client.cloudScripts = &CloudScriptsClient{http: client.httpClient}

	return client, nil
}

func httpOptions(config *sbx.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	return opts
}

// Data returns the row data client.
func (c *Client) Data() sbx.DataClient {
	return c.data
}

// Auth returns the user and session client.
func (c *Client) Auth() sbx.AuthClient {
	return c.authClient
}

// Files returns the content file client.
func (c *Client) Files() sbx.FilesClient {
	return c.files
}

// Folders returns the content folder client.
func (c *Client) Folders() sbx.FoldersClient {
	return c.folders
}

// Email returns the email client.
func (c *Client) Email() sbx.EmailClient {
	return c.email
}

// CloudScripts returns the cloud script client.
func (c *Client) CloudScripts() sbx.CloudScriptsClient {
	return c.cloudScripts
}

// Domain returns the domain requests are issued against.
func (c *Client) Domain() int {
	return c.credentials.Domain()
}

// SetToken replaces the bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.credentials.SetToken(token)
}

// SetMultidomainCredentials switches the client to another domain. The
// cached app config belongs to the old domain, so it is dropped.
func (c *Client) SetMultidomainCredentials(domain int, appKey, token string) {
	c.credentials.Set(domain, appKey, token)

	c.configMu.Lock()
	c.appConfig = nil
	c.configMu.Unlock()
}

// LoadConfig fetches and caches the domain app configuration.
func (c *Client) LoadConfig(ctx context.Context) (*sbx.AppConfig, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathAppConfig, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching app config: %w", err)
	}

	var out sbx.ConfigResponse
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	if err := out.Err(); err != nil {
		return nil, err
	}

	c.configMu.Lock()
	c.appConfig = out.Config
	c.configMu.Unlock()

	return out.Config, nil
}

// Config returns the cached app configuration.
func (c *Client) Config() (*sbx.AppConfig, error) {
	c.configMu.RLock()
	defer c.configMu.RUnlock()

	if c.appConfig == nil {
		return nil, sbx.ErrAppConfigNotLoaded
	}

	return c.appConfig, nil
}
