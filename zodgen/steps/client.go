package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zodgen/zodgen/zodgen/extract"
	"github.com/zodgen/zodgen/zodgen/pipeline"
	"github.com/zodgen/zodgen/zodgen/translate"
)

// Client emits the typed client artifact: a stable operations table keyed by
// operationId plus a createClient factory that takes an explicit
// configuration value. The table shape
// (method/path/params/queries/headers/requestBody/responses) is the contract
// consumed by the runtime library.
type Client struct {
	File        string
	SchemasFile string
}

func (c Client) Name() string        { return NameClient }
func (c Client) DependsOn() []string { return []string{NameSchemas, NameOperations} }
func (c Client) OutputFile() string  { return c.File }

func (c Client) Process(pc *pipeline.Context) (pipeline.Output, error) {
	ops, err := operations(pc)
	if err != nil {
		return pipeline.Output{}, err
	}

	var b strings.Builder
	b.WriteString("import { z } from \"zod\";\n")
	b.WriteString("import { makeClient, type ClientConfig } from \"@zodgen/runtime\";\n")
	if refs := collectRefs(ops); len(refs) > 0 {
		fmt.Fprintf(&b, "import { %s } from \"./%s\";\n",
			strings.Join(refs, ", "), moduleName(c.SchemasFile))
	}

	b.WriteString("\nexport const operations = {\n")
	for _, op := range ops {
		fmt.Fprintf(&b, "  %s: {\n", translate.PropertyKey(op.ID))
		fmt.Fprintf(&b, "    method: %q,\n", op.Method)
		fmt.Fprintf(&b, "    path: %q,\n", op.Path)
		writeParamGroup(&b, "params", op.PathParams)
		writeParamGroup(&b, "queries", op.QueryParams)
		writeParamGroup(&b, "headers", op.HeaderParams)
		if op.HasBody {
			fmt.Fprintf(&b, "    requestBody: { schema: %s, required: %t },\n",
				op.BodyFragment.Code, op.BodyRequired)
		} else {
			b.WriteString("    requestBody: undefined,\n")
		}
		b.WriteString("    responses: {\n")
		for _, status := range op.SortedStatuses() {
			resp := op.Responses[status]
			code := resp.Fragment.Code
			if resp.Void {
				code = "z.void()"
			}
			fmt.Fprintf(&b, "      %q: %s,\n", status, code)
		}
		b.WriteString("    },\n")
		b.WriteString("  },\n")
	}
	b.WriteString("} as const;\n")

	b.WriteString("\nexport type OperationId = keyof typeof operations;\n")
	b.WriteString("\nexport function createClient(config: ClientConfig) {\n")
	b.WriteString("  return makeClient(operations, config);\n")
	b.WriteString("}\n")

	return pipeline.Output{Content: b.String()}, nil
}

func writeParamGroup(b *strings.Builder, group string, params []extract.Param) {
	if len(params) == 0 {
		fmt.Fprintf(b, "    %s: {},\n", group)
		return
	}
	fmt.Fprintf(b, "    %s: {\n", group)
	for _, p := range params {
		code := p.Fragment.Code
		if !p.Required {
			code += ".optional()"
		}
		fmt.Fprintf(b, "      %s: %s,\n", translate.PropertyKey(p.Name), code)
	}
	fmt.Fprintf(b, "    },\n")
}

// collectRefs gathers every schema identifier referenced by any fragment of
// any operation, sorted for a stable import line.
func collectRefs(ops []extract.Operation) []string {
	seen := make(map[string]bool)
	var refs []string
	add := func(frag translate.Fragment) {
		for _, r := range frag.Refs {
			if !seen[r] {
				seen[r] = true
				refs = append(refs, r)
			}
		}
	}
	for _, op := range ops {
		for _, p := range op.PathParams {
			add(p.Fragment)
		}
		for _, p := range op.QueryParams {
			add(p.Fragment)
		}
		for _, p := range op.HeaderParams {
			add(p.Fragment)
		}
		add(op.BodyFragment)
		for _, resp := range op.Responses {
			add(resp.Fragment)
		}
	}
	sort.Strings(refs)
	return refs
}

// moduleName strips the extension for a relative TypeScript import.
func moduleName(file string) string {
	if i := strings.LastIndex(file, "."); i > 0 {
		return file[:i]
	}
	return file
}
