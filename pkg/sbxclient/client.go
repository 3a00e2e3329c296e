// Package sbxclient provides the main entry point for creating SBX Cloud API clients
package sbxclient

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sbxcloud/sbx-go/internal/client"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// Environment variables read by NewFromEnv.
const (
	EnvBaseURL = "SBX_BASE_URL"
	EnvDomain  = "SBX_DOMAIN"
	EnvAppKey  = "SBX_APP_KEY"
	EnvToken   = "SBX_TOKEN"
)

// DefaultBaseURL is used when no endpoint is configured.
const DefaultBaseURL = "https://sbxcloud.com"

// New creates a new SBX Cloud API client.
func New(config *sbx.Config) (sbx.Client, error) {
	if config == nil {
		return nil, sbx.ErrConfigRequired
	}

	// Normalize the endpoint
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL != "" && !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithToken creates a client from the endpoint, domain, app key, and an
// existing session token.
func NewWithToken(endpoint string, domain int, appKey, token string) (sbx.Client, error) {
	return New(&sbx.Config{
		BaseURL: endpoint,
		Domain:  domain,
		AppKey:  appKey,
		Token:   token,
	})
}

// NewMultidomain creates a client and a switcher function for working
// against several domains through one credential-carrying client. Calling
// the switcher swaps the domain, app key, and token for all subsequent
// requests and drops the cached app config.
func NewMultidomain(endpoint string, domain int, appKey, token string) (sbx.Client, func(domain int, appKey, token string), error) {
	cli, err := NewWithToken(endpoint, domain, appKey, token)
	if err != nil {
		return nil, nil, err
	}

	return cli, cli.SetMultidomainCredentials, nil
}

// NewFromEnv creates a client from the SBX_BASE_URL, SBX_DOMAIN,
// SBX_APP_KEY, and SBX_TOKEN environment variables. The base URL falls
// back to the public endpoint; the app key is required.
func NewFromEnv() (sbx.Client, error) {
	appKey := os.Getenv(EnvAppKey)
	if appKey == "" {
		return nil, fmt.Errorf("%w: %s", sbx.ErrMissingEnv, EnvAppKey)
	}

	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	domain := 0

	if raw := os.Getenv(EnvDomain); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvDomain, err)
		}

		domain = parsed
	}

	return New(&sbx.Config{
		BaseURL: baseURL,
		Domain:  domain,
		AppKey:  appKey,
		Token:   os.Getenv(EnvToken),
	})
}
