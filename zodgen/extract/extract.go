// Package extract walks a description's path map into structured operation
// records, translating every schema it encounters along the way so later
// stages never re-derive fragments.
package extract

import (
	"sort"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/zodgen/zodgen/openapi"
	"github.com/zodgen/zodgen/zodgen/translate"
)

// Param is one extracted parameter of a single location group.
type Param struct {
	Name     string
	Required bool
	Schema   *openapi.SchemaNode
	Fragment translate.Fragment
}

// Response is one entry of an operation's response map. Void marks responses
// declared without a JSON schema.
type Response struct {
	Schema   *openapi.SchemaNode
	Fragment translate.Fragment
	Void     bool
}

// Operation is the structured record of one endpoint.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Deprecated bool

	PathParams   []Param
	QueryParams  []Param
	HeaderParams []Param

	RequestBody  *openapi.SchemaNode
	BodyFragment translate.Fragment
	BodyRequired bool
	HasBody      bool

	// Responses is keyed by status code string, including "default".
	Responses map[string]Response
}

// Operations extracts every recognized verb of every path, in sorted path
// order and fixed verb order for deterministic output.
func Operations(doc *openapi.Document) ([]Operation, []translate.Warning) {
	var ops []Operation
	var warnings []translate.Warning

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, verb := range openapi.Verbs {
			op := item.Operation(verb)
			if op == nil {
				continue
			}
			extracted, warns := extractOne(verb, path, item, op)
			ops = append(ops, extracted)
			warnings = append(warnings, warns...)
		}
	}
	return ops, warnings
}

func extractOne(verb, path string, item *openapi.PathItem, op *openapi.Operation) (Operation, []translate.Warning) {
	var warnings []translate.Warning

	out := Operation{
		ID:         op.OperationID,
		Method:     strings.ToUpper(verb),
		Path:       path,
		Deprecated: op.Deprecated,
		Responses:  make(map[string]Response, len(op.Responses)),
	}
	if out.ID == "" {
		out.ID = SynthesizeID(verb, path)
	}

	// Path-level parameters apply first, then operation-level ones.
	params := make([]*openapi.Parameter, 0, len(item.Parameters)+len(op.Parameters))
	params = append(params, item.Parameters...)
	params = append(params, op.Parameters...)

	for _, p := range params {
		if p == nil || p.Schema == nil {
			// Unresolvable parameters are skipped, never fatal.
			continue
		}
		frag, warns := translate.Translate(p.Schema, out.ID+".param."+p.Name)
		warnings = append(warnings, warns...)
		param := Param{Name: p.Name, Required: p.Required, Schema: p.Schema, Fragment: frag}
		switch p.In {
		case "path":
			out.PathParams = append(out.PathParams, param)
		case "query":
			out.QueryParams = append(out.QueryParams, param)
		case "header":
			out.HeaderParams = append(out.HeaderParams, param)
		}
	}

	if op.RequestBody != nil {
		// Only the JSON media type is considered.
		if schema := openapi.JSONSchema(op.RequestBody.Content); schema != nil {
			frag, warns := translate.Translate(schema, out.ID+".requestBody")
			warnings = append(warnings, warns...)
			out.RequestBody = schema
			out.BodyFragment = frag
			out.BodyRequired = op.RequestBody.Required
			out.HasBody = true
		}
	}

	for status, resp := range op.Responses {
		if resp == nil {
			out.Responses[status] = Response{Void: true}
			continue
		}
		schema := openapi.JSONSchema(resp.Content)
		if schema == nil {
			out.Responses[status] = Response{Void: true}
			continue
		}
		frag, warns := translate.Translate(schema, out.ID+".responses."+status)
		warnings = append(warnings, warns...)
		out.Responses[status] = Response{Schema: schema, Fragment: frag}
	}

	return out, warnings
}

// SynthesizeID builds an operation id from the method and path when the
// description declares none: non-alphanumerics are stripped and segments are
// camel-cased, so "get /pets/{petId}" becomes "getPetsPetId".
func SynthesizeID(verb, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(verb))
	for _, segment := range strings.Split(path, "/") {
		cleaned := stripNonAlphanumeric(segment)
		if cleaned == "" {
			continue
		}
		b.WriteString(strcase.UpperCamelCase(cleaned))
	}
	return b.String()
}

func stripNonAlphanumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SortedStatuses returns an operation's response statuses in deterministic
// order, with "default" last.
func (o Operation) SortedStatuses() []string {
	statuses := make([]string, 0, len(o.Responses))
	hasDefault := false
	for s := range o.Responses {
		if s == "default" {
			hasDefault = true
			continue
		}
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	if hasDefault {
		statuses = append(statuses, "default")
	}
	return statuses
}
