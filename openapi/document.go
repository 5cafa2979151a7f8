package openapi

// Document is the subset of a dereferenced OpenAPI v3 description that the
// generator consumes. Anything outside this shape (servers, security, tags,
// vendor extensions) is ignored on decode.
type Document struct {
	OpenAPI    string               `json:"openapi" validate:"required"`
	Info       Info                 `json:"info"`
	Paths      map[string]*PathItem `json:"paths" validate:"required"`
	Components *Components          `json:"components,omitempty"`
}

// Info carries the description's identity, used in provenance reporting.
type Info struct {
	Title       string `json:"title" validate:"required"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Components holds the named schemas that references resolve against.
type Components struct {
	Schemas map[string]*SchemaNode `json:"schemas,omitempty"`
}

// PathItem is one entry of the paths map. Path-level parameters apply to
// every operation under the item.
type PathItem struct {
	Get     *Operation `json:"get,omitempty"`
	Put     *Operation `json:"put,omitempty"`
	Post    *Operation `json:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty"`
	Options *Operation `json:"options,omitempty"`
	Head    *Operation `json:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty"`

	Parameters []*Parameter `json:"parameters,omitempty"`
}

// Verbs is the fixed set of recognized HTTP methods, in emission order.
var Verbs = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Operation looks up the operation for a verb, or nil.
func (p *PathItem) Operation(verb string) *Operation {
	switch verb {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// Operation is one verb of one path.
type Operation struct {
	OperationID string               `json:"operationId,omitempty"`
	Summary     string               `json:"summary,omitempty"`
	Deprecated  bool                 `json:"deprecated,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty"`
}

// Parameter declares a single path, query, header, or cookie parameter.
type Parameter struct {
	Name       string      `json:"name"`
	In         string      `json:"in"`
	Required   bool        `json:"required,omitempty"`
	Deprecated bool        `json:"deprecated,omitempty"`
	Schema     *SchemaNode `json:"schema,omitempty"`
}

// RequestBody declares the body payload of an operation.
type RequestBody struct {
	Required bool                  `json:"required,omitempty"`
	Content  map[string]*MediaType `json:"content,omitempty"`
}

// MediaType pairs a media type key with its schema.
type MediaType struct {
	Schema *SchemaNode `json:"schema,omitempty"`
}

// Response is one entry of an operation's responses map.
type Response struct {
	Description string                `json:"description,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// JSONSchema returns the schema declared under the application/json media
// type, or nil. Other media types are intentionally not considered.
func JSONSchema(content map[string]*MediaType) *SchemaNode {
	mt, ok := content["application/json"]
	if !ok || mt == nil {
		return nil
	}
	return mt.Schema
}
