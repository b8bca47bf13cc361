package contract

// Document is the parameter-bearing subset of an OpenAPI document. Exactly
// one of OpenAPI (3.x) or Swagger (2.0) is set in a well-formed document.
type Document struct {
	OpenAPI    string      `yaml:"openapi,omitempty" json:"openapi,omitempty"`
	Swagger    string      `yaml:"swagger,omitempty" json:"swagger,omitempty"`
	Info       *Info       `yaml:"info,omitempty" json:"info,omitempty"`
	Paths      Paths       `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components *Components `yaml:"components,omitempty" json:"components,omitempty"` // OAS 3.0+
	// ParameterDefs holds the OAS 2.0 top-level parameters section.
	ParameterDefs map[string]*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"` // OAS 2.0
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info carries the identifying metadata of the document.
type Info struct {
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Paths holds the relative paths to the individual endpoints
type Paths map[string]*PathItem

// PathItem describes the operations available on a single path
type PathItem struct {
	Ref         string       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation   `yaml:"get,omitempty" json:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty" json:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty" json:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty" json:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty" json:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty" json:"trace,omitempty"` // OAS 3.0+
	// Parameters apply to every operation under this path unless an
	// operation redefines the same name and location.
	Parameters []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Operation describes a single API operation on a path
type Operation struct {
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string       `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Deprecated  bool         `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Parameter describes a single operation parameter
type Parameter struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	// Name and In use omitempty because parameters can be defined via $ref,
	// in which case the referenced definition carries the actual values.
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	In          string `yaml:"in,omitempty" json:"in,omitempty"` // "query", "header", "path", "cookie" (OAS 3.0+), "formData", "body" (OAS 2.0)
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"` // OAS 3.0+

	// OAS 3.0+ fields
	Schema *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`

	// OAS 2.0 fields
	Type   string  `yaml:"type,omitempty" json:"type,omitempty"`     // OAS 2.0
	Format string  `yaml:"format,omitempty" json:"format,omitempty"` // OAS 2.0
	Items  *Schema `yaml:"items,omitempty" json:"items,omitempty"`   // OAS 2.0

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Schema is the type-identifying subset of a schema object.
type Schema struct {
	Ref    string  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type   string  `yaml:"type,omitempty" json:"type,omitempty"`
	Format string  `yaml:"format,omitempty" json:"format,omitempty"`
	Items  *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	// Extra captures the remaining schema keywords without modeling them.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Components holds the reusable objects the document defines (OAS 3.0+).
type Components struct {
	Parameters map[string]*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	// Extra captures the component sections drift checking does not read.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ParameterComponents returns the reusable parameter table regardless of the
// document's OAS version: the components/parameters section for 3.x or the
// top-level parameters section for 2.0. Returns nil when the document
// defines none.
func (d *Document) ParameterComponents() map[string]*Parameter {
	if d == nil {
		return nil
	}
	if d.Components != nil && len(d.Components.Parameters) > 0 {
		return d.Components.Parameters
	}
	if len(d.ParameterDefs) > 0 {
		return d.ParameterDefs
	}
	return nil
}

// Version returns the declared OAS version string, preferring the 3.x field.
func (d *Document) Version() string {
	if d == nil {
		return ""
	}
	if d.OpenAPI != "" {
		return d.OpenAPI
	}
	return d.Swagger
}
