// Package constants centralizes shared values used across the SBX client.
package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests. It
	// matches the backend's own request ceiling.
	DefaultHTTPTimeout = 150 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the initial wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Request headers.
const (
	// HeaderAppKey carries the application key on every request.
	HeaderAppKey = "App-Key"

	// HeaderAuthorization carries the bearer token.
	HeaderAuthorization = "Authorization"

	// HeaderContentType is the request body content type header.
	HeaderContentType = "Content-Type"

	// HeaderAccept is the response content type header.
	HeaderAccept = "Accept"

	// HeaderUserAgent identifies the client.
	HeaderUserAgent = "User-Agent"

	// ContentTypeJSON is the only content type the API speaks.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent is sent when the configuration does not override it.
	DefaultUserAgent = "sbx-go/1.0"
)

// Row batching.
const (
	// DefaultChunkSize is the maximum number of rows or keys per upsert or
	// delete request; larger batches are split.
	DefaultChunkSize = 100
)

// API paths.
const (
	// PathRowFind is the row query endpoint.
	PathRowFind = "/api/data/v1/row/find"

	// PathRowUpsert is the row insert endpoint.
	PathRowUpsert = "/api/data/v1/row"

	// PathRowUpdate is the row update endpoint.
	PathRowUpdate = "/api/data/v1/row/update"

	// PathRowDelete is the row delete endpoint.
	PathRowDelete = "/api/data/v1/row/delete"

	// PathLogin is the user login endpoint.
	PathLogin = "/api/user/v1/login"

	// PathValidate is the session validation endpoint.
	PathValidate = "/api/user/v1/validate"

	// PathChangePassword is the password change endpoint.
	PathChangePassword = "/api/user/v1/password/change"

	// PathPasswordResetRequest is the password recovery request endpoint.
	PathPasswordResetRequest = "/api/user/v1/password/request"

	// PathPasswordReset is the password recovery completion endpoint.
	PathPasswordReset = "/api/user/v1/password"

	// PathUserExists is the email availability endpoint.
	PathUserExists = "/api/user/v1/user/exist"

	// PathUpload is the file upload endpoint.
	PathUpload = "/api/content/v1/upload"

	// PathDownload is the file download endpoint.
	PathDownload = "/api/content/v1/download"

	// PathDeleteFile is the file delete endpoint.
	PathDeleteFile = "/api/content/v1/delete"

	// PathFolderCreate is the folder creation endpoint.
	PathFolderCreate = "/api/content/v1/folder/create"

	// PathFolderDelete is the folder deletion endpoint.
	PathFolderDelete = "/api/content/v1/folder/delete"

	// PathFolderRename is the folder rename endpoint.
	PathFolderRename = "/api/content/v1/folder/rename"

	// PathFolderList is the folder listing endpoint.
	PathFolderList = "/api/content/v1/folder/list"

	// PathEmailSend is the v1 email endpoint.
	PathEmailSend = "/api/email/v1/send"

	// PathEmailSendV2 is the v2 email endpoint.
	PathEmailSendV2 = "/api/email/v2/send"

	// PathRunScript is the cloud script execution endpoint.
	PathRunScript = "/api/cloudscript/v1/run"

	// PathRunScriptTest is the cloud script test execution endpoint.
	PathRunScriptTest = "/api/cloudscript/v1/run/test"

	// PathAppConfig is the domain app configuration endpoint.
	PathAppConfig = "/api/domain/v1/app/config"
)
