package sbx

// FindResponse is the result of a find call. Success must be explicitly
// true for the call to count as successful; a missing flag means failure.
// Find and FindAll never return a Go error: inspect Success or call Err.
type FindResponse[T any] struct {
	Success        bool                      `json:"success"`
	Error          string                    `json:"error,omitempty"`
	Message        string                    `json:"message,omitempty"`
	TotalPages     int                       `json:"total_pages,omitempty"`
	RowCount       int                       `json:"row_count,omitempty"`
	Results        []T                       `json:"results,omitempty"`
	FetchedResults map[string]map[string]any `json:"fetched_results,omitempty"`
	Model          []Property                `json:"model,omitempty"`
}

// FindFailure builds a failure response from a client-side error.
func FindFailure[T any](detail, message string) *FindResponse[T] {
	return &FindResponse[T]{Error: detail, Message: message}
}

// ErrorMessage returns the most specific failure text, preferring the error
// field over the message. Empty for a successful response.
func (r *FindResponse[T]) ErrorMessage() string {
	if r.Error != "" {
		return r.Error
	}

	return r.Message
}

// Err converts a failure response into an error. Returns nil when the
// response is successful.
func (r *FindResponse[T]) Err() error {
	if r.Success {
		return nil
	}

	return &APIError{Detail: r.Error, Message: r.Message}
}

// HasMorePages reports whether pages beyond the given 1-based page exist.
// A response without total_pages reports false for every page.
func (r *FindResponse[T]) HasMorePages(page int) bool {
	return r.TotalPages > page
}

// Response is the generic result envelope of non-find calls. Keys is set by
// the row create, update, and delete endpoints.
type Response struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
	Keys    []string `json:"keys,omitempty"`
}

// ErrorMessage returns the most specific failure text.
func (r *Response) ErrorMessage() string {
	if r.Error != "" {
		return r.Error
	}

	return r.Message
}

// Err converts a failure response into an error. Returns nil on success.
func (r *Response) Err() error {
	if r.Success {
		return nil
	}

	return &APIError{Detail: r.Error, Message: r.Message}
}

// UserResponse is the result of the login and session validation calls.
type UserResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ErrorMessage returns the most specific failure text.
func (r *UserResponse) ErrorMessage() string {
	if r.Error != "" {
		return r.Error
	}

	return r.Message
}

// Err converts a failure response into an error. Returns nil on success.
func (r *UserResponse) Err() error {
	if r.Success {
		return nil
	}

	return &APIError{Detail: r.Error, Message: r.Message}
}

// FolderListResponse is the result of a folder listing call.
type FolderListResponse struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error,omitempty"`
	Message  string          `json:"message,omitempty"`
	Folder   *Folder         `json:"folder,omitempty"`
	Contents []FolderContent `json:"items,omitempty"`
}

// Err converts a failure response into an error. Returns nil on success.
func (r *FolderListResponse) Err() error {
	if r.Success {
		return nil
	}

	return &APIError{Detail: r.Error, Message: r.Message}
}

// UploadResponse is the result of a file upload.
type UploadResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Key     string `json:"item_key,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Err converts a failure response into an error. Returns nil on success.
func (r *UploadResponse) Err() error {
	if r.Success {
		return nil
	}

	return &APIError{Detail: r.Error, Message: r.Message}
}

// ConfigResponse wraps the domain app config endpoint result.
type ConfigResponse struct {
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
	Config  *AppConfig `json:"app,omitempty"`
}

// Err converts a failure response into an error. Returns nil on success.
func (r *ConfigResponse) Err() error {
	if r.Success {
		return nil
	}

	return &APIError{Detail: r.Error, Message: r.Message}
}
