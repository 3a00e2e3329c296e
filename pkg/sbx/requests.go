package sbx

// FindRequest is the wire body of a row find call. Absent optional fields
// are omitted from the JSON entirely rather than sent as null; the backend
// treats a missing page as page 1 and a missing size as its default.
type FindRequest struct {
	RowModel string       `json:"row_model"`
	Domain   *int         `json:"domain,omitempty"`
	Where    *WhereClause `json:"where,omitempty"`
	Page     int          `json:"page,omitempty"`
	Size     int          `json:"size,omitempty"`
	Fetch    []string     `json:"fetch,omitempty"`
	RFetch   []string     `json:"rfetch,omitempty"`
	Autowire []string     `json:"autowire,omitempty"`
}

// WithDomain returns a copy of the request with the domain attached. The
// receiver is not modified; the data client uses this to stamp its
// configured domain onto each outgoing request.
func (r *FindRequest) WithDomain(domain int) *FindRequest {
	req := *r
	req.Domain = &domain

	return &req
}

// UpsertRequest is the wire body of a row create or update call.
type UpsertRequest struct {
	RowModel string           `json:"row_model"`
	Domain   *int             `json:"domain,omitempty"`
	Rows     []map[string]any `json:"rows"`
}

// DeleteRequest is the wire body of a row delete call.
type DeleteRequest struct {
	RowModel string       `json:"row_model"`
	Domain   *int         `json:"domain,omitempty"`
	Where    *WhereClause `json:"where,omitempty"`
}

// LoginRequest carries user credentials for the login endpoint.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RunScriptRequest is the wire body of a cloud script execution call.
type RunScriptRequest struct {
	Key    string         `json:"key"`
	Params map[string]any `json:"params,omitempty"`
}

// UploadRequest describes a file upload. Content is base64, optionally
// prefixed with a data URL header ("data:<mime>;base64,").
type UploadRequest struct {
	FolderKey string `json:"folder,omitempty"`
	FileName  string `json:"file_name"`
	Content   string `json:"-"`
}
