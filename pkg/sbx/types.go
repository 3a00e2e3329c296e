package sbx

// Entity is implemented by row types that map to an SBX data model. Both
// methods should use value receivers so the zero value of the type can
// report its model name.
type Entity interface {
	// EntityModel returns the backend model name the type maps to.
	EntityModel() string
	// EntityKey returns the row key, or "" for a row not yet persisted.
	EntityKey() string
}

// Meta carries the backend-managed metadata attached to every stored row.
type Meta struct {
	CreatedTime int64  `json:"created_time,omitempty"`
	UpdateTime  int64  `json:"update_time,omitempty"`
	ModelID     int    `json:"model_id,omitempty"`
	ModelName   string `json:"model_name,omitempty"`
	Domain      int    `json:"domain,omitempty"`
}

// Record is the common base for entity structs. Embed it to get the key and
// metadata fields plus the EntityKey half of the Entity interface:
//
//	type Product struct {
//		sbx.Record
//		Name  string  `json:"name"`
//		Price float64 `json:"price"`
//	}
//
//	func (Product) EntityModel() string { return "product" }
type Record struct {
	Key  string `json:"_KEY,omitempty"`
	Meta *Meta  `json:"_META,omitempty"`
}

// EntityKey returns the row key.
func (r Record) EntityKey() string {
	return r.Key
}

// FieldType is the declared type of a model property.
type FieldType string

// Model property types.
const (
	FieldTypeString    FieldType = "STRING"
	FieldTypeReference FieldType = "REFERENCE"
	FieldTypeBoolean   FieldType = "BOOLEAN"
	FieldTypeDate      FieldType = "DATE"
	FieldTypeText      FieldType = "TEXT"
	FieldTypeFloat     FieldType = "FLOAT"
	FieldTypeInt       FieldType = "INT"
	FieldTypeJSON      FieldType = "JSON"
	FieldTypeStatic    FieldType = "STATIC"
)

// Property describes one field of a model, as reported in the model section
// of a find response.
type Property struct {
	ID            int       `json:"id,omitempty"`
	Name          string    `json:"name"`
	Type          FieldType `json:"type"`
	ReferenceType string    `json:"reference_type,omitempty"`
	Required      bool      `json:"required,omitempty"`
}

// User is an SBX account as returned by the auth endpoints.
type User struct {
	ID       int          `json:"id,omitempty"`
	Name     string       `json:"name,omitempty"`
	Email    string       `json:"email,omitempty"`
	Login    string       `json:"login,omitempty"`
	Code     string       `json:"code,omitempty"`
	Role     string       `json:"role,omitempty"`
	Member   []Membership `json:"member_of,omitempty"`
}

// Membership is a user's role within one domain.
type Membership struct {
	Domain     int    `json:"domain,omitempty"`
	DomainName string `json:"display_name,omitempty"`
	Role       string `json:"role,omitempty"`
}

// Folder is a content folder.
type Folder struct {
	Key       string `json:"key,omitempty"`
	KeyParent string `json:"key_parent,omitempty"`
	Name      string `json:"name,omitempty"`
	Path      string `json:"path,omitempty"`
}

// FolderContent is one entry (file or subfolder) inside a folder listing.
type FolderContent struct {
	Key       string `json:"key,omitempty"`
	KeyParent string `json:"key_parent,omitempty"`
	Name      string `json:"name,omitempty"`
	Path      string `json:"path,omitempty"`
	Type      string `json:"item_type,omitempty"`
	Size      int64  `json:"size,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ModelInfo is a model summary from the domain app config.
type ModelInfo struct {
	ID         int        `json:"id,omitempty"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties,omitempty"`
}

// AppConfig is the domain application configuration.
type AppConfig struct {
	Domain     int            `json:"domain,omitempty"`
	DomainName string         `json:"domain_name,omitempty"`
	Models     []ModelInfo    `json:"models,omitempty"`
	Values     map[string]any `json:"config,omitempty"`
}

// EmailParams describes an outgoing email for the email endpoints. Either
// Template or Body should be set, not both.
type EmailParams struct {
	From     string         `json:"from,omitempty"`
	To       string         `json:"to,omitempty"`
	CC       string         `json:"cc,omitempty"`
	BCC      string         `json:"bcc,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Template string         `json:"template,omitempty"`
	Body     string         `json:"body,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
