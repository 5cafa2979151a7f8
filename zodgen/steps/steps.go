// Package steps implements the concrete generation stages run by the
// pipeline: parsing the description, emitting zod schemas, extracting
// operations, and emitting the client, cache-key, and hook artifacts.
package steps

import (
	"fmt"

	"github.com/zodgen/zodgen/openapi"
	"github.com/zodgen/zodgen/zodgen/extract"
	"github.com/zodgen/zodgen/zodgen/pipeline"
	"github.com/zodgen/zodgen/zodgen/translate"
)

// Step names, also the context keys their outputs live under.
const (
	NameParse      = "parse"
	NameSchemas    = "schemas"
	NameOperations = "operations"
	NameClient     = "client"
	NameCacheKeys  = "cachekeys"
	NameHooks      = "hooks"
)

// document fetches the parsed description from the parse step's output.
func document(pc *pipeline.Context) (*openapi.Document, error) {
	out, err := pc.Output(NameParse)
	if err != nil {
		return nil, err
	}
	doc, ok := out.Structured.(*openapi.Document)
	if !ok {
		return nil, fmt.Errorf("step %q produced %T, want *openapi.Document", NameParse, out.Structured)
	}
	return doc, nil
}

// operations fetches the extracted operation records from the operations
// step's output.
func operations(pc *pipeline.Context) ([]extract.Operation, error) {
	out, err := pc.Output(NameOperations)
	if err != nil {
		return nil, err
	}
	ops, ok := out.Structured.([]extract.Operation)
	if !ok {
		return nil, fmt.Errorf("step %q produced %T, want []extract.Operation", NameOperations, out.Structured)
	}
	return ops, nil
}

// warningMeta formats translation warnings into a Meta entry.
func warningMeta(warnings []translate.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		if w.Path != "" {
			msgs[i] = w.Path + ": " + w.Message
		} else {
			msgs[i] = w.Message
		}
	}
	return msgs
}

// strictErr converts warnings into a run-failing error under strict mode.
func strictErr(warnings []translate.Warning) error {
	if len(warnings) == 0 {
		return nil
	}
	w := warnings[0]
	return fmt.Errorf("strict mode: %s: %s (%d warning(s) total)", w.Path, w.Message, len(warnings))
}

// memberAccess renders property access on the operations table, bracketed
// when the operation id is not a plain identifier.
func memberAccess(id string) string {
	if translate.PropertyKey(id) == id {
		return "." + id
	}
	return fmt.Sprintf("[%q]", id)
}

// tsType renders the TypeScript parameter type for a schema node. Cache-key
// builders only need the primitive surface; anything richer degrades to
// unknown.
func tsType(n *openapi.SchemaNode) string {
	if n == nil {
		return "unknown"
	}
	switch n.Type {
	case "string":
		return "string"
	case "number", "integer":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		return tsType(n.Items) + "[]"
	}
	return "unknown"
}
