// Package discovery models REST API discovery documents: the JSON service
// descriptions that list an API's schemas, resources, and methods.
package discovery

import "fmt"

// Document represents a single API discovery document
type Document struct {
	Kind              string `json:"kind,omitempty"`
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	Version           string `json:"version,omitempty"`
	Title             string `json:"title,omitempty"`
	Description       string `json:"description,omitempty"`
	DiscoveryVersion  string `json:"discoveryVersion,omitempty"`
	DocumentationLink string `json:"documentationLink,omitempty"`
	Protocol          string `json:"protocol,omitempty"`
	RootURL           string `json:"rootUrl,omitempty"`
	ServicePath       string `json:"servicePath,omitempty"`
	BasePath          string `json:"basePath,omitempty"`
	BaseURL           string `json:"baseUrl,omitempty"`
	Revision          string `json:"revision,omitempty"`

	// Parameters holds parameters shared by every method (api keys, field
	// masks). Generated bindings only surface per-method parameters.
	Parameters map[string]*Parameter `json:"parameters,omitempty"`

	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Resources map[string]*Resource `json:"resources,omitempty"`
	// Methods holds top-level methods declared outside any resource (rare)
	Methods map[string]*Method `json:"methods,omitempty"`
}

// ResolvedBaseURL returns the base URL every method path is relative to.
// Older documents carry baseUrl directly; newer ones split it into
// rootUrl + servicePath.
func (d *Document) ResolvedBaseURL() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	return d.RootURL + d.ServicePath
}

// Resource represents a REST resource with methods and nested resources
type Resource struct {
	Methods   map[string]*Method   `json:"methods,omitempty"`
	Resources map[string]*Resource `json:"resources,omitempty"`
}

// Method represents a single API method
type Method struct {
	ID             string                `json:"id,omitempty"`
	Path           string                `json:"path"`
	FlatPath       string                `json:"flatPath,omitempty"`
	HTTPMethod     string                `json:"httpMethod"`
	Description    string                `json:"description,omitempty"`
	Parameters     map[string]*Parameter `json:"parameters,omitempty"`
	ParameterOrder []string              `json:"parameterOrder,omitempty"`
	Request        *SchemaRef            `json:"request,omitempty"`
	Response       *SchemaRef            `json:"response,omitempty"`
	Scopes         []string              `json:"scopes,omitempty"`
}

// SchemaRef represents a reference to a named top-level schema
type SchemaRef struct {
	Ref string `json:"$ref,omitempty"`
}

// Parameter represents a method parameter: a scalar (or repeated scalar)
// schema plus the request location it binds to.
type Parameter struct {
	Type             string     `json:"type,omitempty"`
	Description      string     `json:"description,omitempty"`
	Location         string     `json:"location,omitempty"`
	Required         bool       `json:"required,omitempty"`
	Repeated         bool       `json:"repeated,omitempty"`
	Default          string     `json:"default,omitempty"`
	Format           string     `json:"format,omitempty"`
	Pattern          string     `json:"pattern,omitempty"`
	Enum             []string   `json:"enum,omitempty"`
	EnumDescriptions []string   `json:"enumDescriptions,omitempty"`
	Items            *Parameter `json:"items,omitempty"`
}

// Parameter locations. An empty location means query, matching how
// discovery documents in the wild omit it.
const (
	LocationQuery = "query"
	LocationPath  = "path"
)

// InPath reports whether the parameter binds into the URL path template.
func (p *Parameter) InPath() bool {
	return p.Location == LocationPath
}

// AsSchema converts the parameter to its schema form so the type resolver
// can treat parameters and properties uniformly. Repeated parameters become
// arrays of their element type.
func (p *Parameter) AsSchema() *Schema {
	s := &Schema{Type: p.Type, Description: p.Description, Format: p.Format}
	if p.Items != nil {
		s.Items = p.Items.AsSchema()
	}
	if p.Repeated && s.Type != "array" {
		return &Schema{Type: "array", Description: p.Description, Items: s}
	}
	return s
}

// Schema represents a data type definition in the discovery format
type Schema struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`

	Enum             []string `json:"enum,omitempty"`
	EnumDescriptions []string `json:"enumDescriptions,omitempty"`

	// Object shapes
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// Array items
	Items *Schema `json:"items,omitempty"`
}

// SchemaKind classifies a schema node into exactly one structural shape.
type SchemaKind int

const (
	// KindReference is a $ref to a named top-level schema.
	KindReference SchemaKind = iota
	// KindMap is an object typed through additionalProperties.
	KindMap
	// KindStruct is an object with named properties.
	KindStruct
	// KindOpaque is an object with neither properties nor additionalProperties.
	KindOpaque
	// KindArray is an array of items.
	KindArray
	// KindPrimitive is one of string, integer, number, boolean.
	KindPrimitive
	// KindAny is the discovery "any" type: an arbitrary JSON value.
	KindAny
)

// Kind classifies the schema. The checks are ordered: a $ref wins over
// everything, additionalProperties over properties, and properties over a
// bare "object" type. A node that matches none of the shapes is an error.
func (s *Schema) Kind() (SchemaKind, error) {
	switch {
	case s.Ref != "":
		return KindReference, nil
	case s.AdditionalProperties != nil:
		return KindMap, nil
	case len(s.Properties) > 0:
		return KindStruct, nil
	case s.Type == "object":
		return KindOpaque, nil
	case s.Type == "array":
		return KindArray, nil
	case s.Type == "string" || s.Type == "integer" || s.Type == "number" || s.Type == "boolean":
		return KindPrimitive, nil
	case s.Type == "any":
		return KindAny, nil
	default:
		return 0, fmt.Errorf("schema has no type or $ref (type %q)", s.Type)
	}
}
