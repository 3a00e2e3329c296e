package sbx

import (
	"context"
	"encoding/json"
	"time"
)

// Client is the entry point to the SBX Cloud API. Obtain one from the
// sbxclient package and reach each API area through its accessor.
type Client interface {
	// Data returns the row data client.
	Data() DataClient
	// Auth returns the user and session client.
	Auth() AuthClient
	// Files returns the content file client.
	Files() FilesClient
	// Folders returns the content folder client.
	Folders() FoldersClient
	// Email returns the email client.
	Email() EmailClient
	// CloudScripts returns the cloud script client.
	CloudScripts() CloudScriptsClient

	// LoadConfig fetches and caches the domain app configuration.
	LoadConfig(ctx context.Context) (*AppConfig, error)
	// Config returns the cached app configuration, or
	// ErrAppConfigNotLoaded before LoadConfig has succeeded.
	Config() (*AppConfig, error)

	// Domain returns the domain requests are issued against.
	Domain() int
	// SetToken replaces the bearer token for subsequent requests.
	SetToken(token string)
	// SetMultidomainCredentials switches the client to another domain with
	// its own app key and token. The cached app config is dropped.
	SetMultidomainCredentials(domain int, appKey, token string)
}

// AuthClient covers the user and session endpoints.
type AuthClient interface {
	// Login authenticates a user and returns the session token.
	Login(ctx context.Context, login, password string) (*UserResponse, error)
	// ValidateSession checks the current bearer token and returns its user.
	ValidateSession(ctx context.Context) (*UserResponse, error)
	// ChangePassword updates a user's password.
	ChangePassword(ctx context.Context, currentPassword, newPassword string, userID int) (*Response, error)
	// SendPasswordResetRequest emails a recovery code to the user.
	SendPasswordResetRequest(ctx context.Context, userEmail, subject, emailTemplate string) (*Response, error)
	// ResetPassword completes a recovery flow with the emailed code.
	ResetPassword(ctx context.Context, userID int, code, newPassword string) (*Response, error)
	// CheckEmailAvailable reports whether no account uses the address yet.
	CheckEmailAvailable(ctx context.Context, email string) (bool, error)
}

// FilesClient covers the content file endpoints.
type FilesClient interface {
	// Upload stores a file and returns its key and URL. The request content
	// is base64, with or without a data URL header.
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	// Download fetches the raw bytes of a stored file.
	Download(ctx context.Context, fileKey string) ([]byte, error)
	// Delete removes a stored file.
	Delete(ctx context.Context, fileKey string) (*Response, error)
}

// FoldersClient covers the content folder endpoints.
type FoldersClient interface {
	// Create adds a folder under the given parent.
	Create(ctx context.Context, parentKey, name string) (*Response, error)
	// Delete removes a folder.
	Delete(ctx context.Context, folderKey string) (*Response, error)
	// List returns a folder's contents. An empty key lists the root.
	List(ctx context.Context, folderKey string) (*FolderListResponse, error)
	// Rename changes a folder's name.
	Rename(ctx context.Context, folderKey, name string) (*Response, error)
}

// EmailClient covers the email endpoints.
type EmailClient interface {
	// Send dispatches an email through the v1 endpoint.
	Send(ctx context.Context, params *EmailParams) (*Response, error)
	// SendV2 dispatches an email through the v2 endpoint.
	SendV2(ctx context.Context, params *EmailParams) (*Response, error)
}

// CloudScriptsClient covers the cloud script endpoints. Both methods return
// the script payload with the backend's response envelope already removed.
type CloudScriptsClient interface {
	// Run executes a published cloud script.
	Run(ctx context.Context, key string, params map[string]any) (json.RawMessage, error)
	// RunTest executes the unpublished test revision of a cloud script.
	RunTest(ctx context.Context, key string, params map[string]any) (json.RawMessage, error)
}

// Config holds the settings needed to construct a client.
type Config struct {
	// BaseURL is the API endpoint, e.g. "https://sbxcloud.com". A URL
	// without a scheme gets "https://" prepended.
	BaseURL string

	// Domain is the SBX domain ID stamped onto data requests.
	Domain int

	// AppKey is sent as the App-Key header on every request.
	AppKey string

	// Token is the bearer token for the Authorization header. Optional at
	// construction; Login or SetToken can supply it later.
	Token string

	// HTTPTimeout bounds each HTTP request. Zero means the default of
	// 150 seconds.
	HTTPTimeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger receives client log output. No logging when nil.
	Logger Logger

	// Debug enables request and response logging through Logger.
	Debug bool
}

// Logger is the minimal logging interface the client writes to. Any
// structured logger adapts to it in a few lines.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
