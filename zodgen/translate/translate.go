package translate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zodgen/zodgen/openapi"
)

// Node translates a single schema node into a zod fragment, discarding
// warnings. Use Translate when fallback reporting matters.
func Node(n *openapi.SchemaNode) Fragment {
	f, _ := Translate(n, "")
	return f
}

// Translate translates a schema node rooted at the given path (used only in
// warning messages). Unclassifiable shapes degrade to z.unknown() and are
// reported as warnings rather than errors.
func Translate(n *openapi.SchemaNode, path string) (Fragment, []Warning) {
	t := &translator{}
	f := t.node(n, path)
	return f, t.warnings
}

type translator struct {
	warnings []Warning
}

func (t *translator) warnf(path, format string, args ...any) {
	t.warnings = append(t.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// node implements the fixed dispatch order: reference, composition, nullable,
// base type. References are never inline-expanded; cycles are broken by
// resolving to the component's exported identifier.
func (t *translator) node(n *openapi.SchemaNode, path string) Fragment {
	if n == nil {
		t.warnf(path, "missing schema, emitting permissive z.unknown()")
		return Fragment{Code: "z.unknown()"}
	}
	if n.IsRef() {
		ident := SchemaIdent(n.RefName())
		return Fragment{Code: ident, Refs: []string{ident}}
	}

	f, composed := t.composition(n, path)
	if !composed {
		f = t.base(n, path)
	}
	if n.Nullable {
		f.Code += ".nullable()"
	}
	return f
}

func (t *translator) composition(n *openapi.SchemaNode, path string) (Fragment, bool) {
	switch {
	case len(n.AllOf) > 0:
		members := t.members(n.AllOf, path+".allOf")
		// A single-member allOf is the member itself; an intersection of one
		// would be redundant.
		f := members[0]
		for _, m := range members[1:] {
			f = Fragment{
				Code: fmt.Sprintf("z.intersection(%s, %s)", f.Code, m.Code),
				Refs: mergeRefs(f, m),
			}
		}
		return f, true

	case len(n.AnyOf) > 0:
		return t.union(t.members(n.AnyOf, path+".anyOf")), true

	case len(n.OneOf) > 0:
		members := t.members(n.OneOf, path+".oneOf")
		if n.Discriminator != nil && n.Discriminator.PropertyName != "" {
			codes := make([]string, len(members))
			for i, m := range members {
				codes[i] = m.Code
			}
			return Fragment{
				Code: fmt.Sprintf("z.discriminatedUnion(%q, [%s])",
					n.Discriminator.PropertyName, strings.Join(codes, ", ")),
				Refs: mergeRefs(members...),
			}, true
		}
		return t.union(members), true
	}
	return Fragment{}, false
}

func (t *translator) members(nodes []*openapi.SchemaNode, path string) []Fragment {
	frags := make([]Fragment, len(nodes))
	for i, m := range nodes {
		frags[i] = t.node(m, fmt.Sprintf("%s[%d]", path, i))
	}
	return frags
}

func (t *translator) union(members []Fragment) Fragment {
	codes := make([]string, len(members))
	for i, m := range members {
		codes[i] = m.Code
	}
	return Fragment{
		Code: fmt.Sprintf("z.union([%s])", strings.Join(codes, ", ")),
		Refs: mergeRefs(members...),
	}
}

func (t *translator) base(n *openapi.SchemaNode, path string) Fragment {
	switch n.Type {
	case "string":
		return t.str(n)
	case "number", "integer":
		return t.num(n)
	case "boolean":
		return Fragment{Code: "z.boolean()"}
	case "array":
		return t.arr(n, path)
	case "object":
		return t.obj(n, path)
	case "":
		// Untyped nodes that still look like objects or arrays are treated
		// as such; descriptions in the wild omit "type" constantly.
		if len(n.Properties) > 0 || len(n.AdditionalProperties) > 0 {
			return t.obj(n, path)
		}
		if n.Items != nil {
			return t.arr(n, path)
		}
	}
	t.warnf(path, "unrecognized schema shape (type %q), emitting permissive z.unknown()", n.Type)
	return Fragment{Code: "z.unknown()"}
}

func (t *translator) str(n *openapi.SchemaNode) Fragment {
	// An enum short-circuits every other string constraint.
	if len(n.Enum) > 0 {
		return enumFragment(n.Enum)
	}

	code := "z.string()"
	switch n.Format {
	case "date-time":
		code += ".datetime()"
	case "date":
		code += ".date()"
	case "time":
		code += ".time()"
	case "email":
		code += ".email()"
	case "uri", "url":
		code += ".url()"
	case "uuid":
		code += ".uuid()"
	case "ipv4":
		code += `.ip({ version: "v4" })`
	case "ipv6":
		code += `.ip({ version: "v6" })`
	}
	if n.MinLength != nil {
		code += fmt.Sprintf(".min(%d)", *n.MinLength)
	}
	if n.MaxLength != nil {
		code += fmt.Sprintf(".max(%d)", *n.MaxLength)
	}
	if n.Pattern != "" {
		code += fmt.Sprintf(".regex(/%s/)", escapeRegex(n.Pattern))
	}
	return Fragment{Code: code}
}

func enumFragment(values []any) Fragment {
	allStrings := true
	for _, v := range values {
		if _, ok := v.(string); !ok {
			allStrings = false
			break
		}
	}
	if allStrings {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("%q", v.(string))
		}
		return Fragment{Code: fmt.Sprintf("z.enum([%s])", strings.Join(quoted, ", "))}
	}
	literals := make([]string, len(values))
	for i, v := range values {
		literals[i] = fmt.Sprintf("z.literal(%s)", jsLiteral(v))
	}
	if len(literals) == 1 {
		return Fragment{Code: literals[0]}
	}
	return Fragment{Code: fmt.Sprintf("z.union([%s])", strings.Join(literals, ", "))}
}

func (t *translator) num(n *openapi.SchemaNode) Fragment {
	code := "z.number()"
	if n.Type == "integer" {
		code += ".int()"
	}
	if v, exclusive, ok := n.LowerBound(); ok {
		if exclusive {
			code += fmt.Sprintf(".gt(%s)", formatNumber(v))
		} else {
			code += fmt.Sprintf(".gte(%s)", formatNumber(v))
		}
	}
	if v, exclusive, ok := n.UpperBound(); ok {
		if exclusive {
			code += fmt.Sprintf(".lt(%s)", formatNumber(v))
		} else {
			code += fmt.Sprintf(".lte(%s)", formatNumber(v))
		}
	}
	if n.MultipleOf != nil {
		code += fmt.Sprintf(".multipleOf(%s)", formatNumber(*n.MultipleOf))
	}
	return Fragment{Code: code}
}

func (t *translator) arr(n *openapi.SchemaNode, path string) Fragment {
	item := t.node(n.Items, path+".items")
	code := fmt.Sprintf("z.array(%s)", item.Code)
	if n.MinItems != nil {
		code += fmt.Sprintf(".min(%d)", *n.MinItems)
	}
	if n.MaxItems != nil {
		code += fmt.Sprintf(".max(%d)", *n.MaxItems)
	}
	if n.UniqueItems {
		code += `.refine((items) => new Set(items).size === items.length, { message: "Array items must be unique" })`
	}
	return Fragment{Code: code, Refs: item.Refs}
}

func (t *translator) obj(n *openapi.SchemaNode, path string) Fragment {
	mode, valueSchema := n.AdditionalPolicy()

	// Without declared properties the object degrades to map semantics.
	if len(n.Properties) == 0 {
		switch mode {
		case openapi.AdditionalClosed:
			return Fragment{Code: "z.object({}).strict()"}
		case openapi.AdditionalTyped:
			value := t.node(valueSchema, path+".additionalProperties")
			return Fragment{
				Code: fmt.Sprintf("z.record(z.string(), %s)", value.Code),
				Refs: value.Refs,
			}
		default:
			return Fragment{Code: "z.record(z.string(), z.unknown())"}
		}
	}

	required := make(map[string]bool, len(n.Required))
	for _, name := range n.Required {
		required[name] = true
	}

	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	var props []Fragment
	for _, name := range names {
		prop := t.node(n.Properties[name], path+"."+name)
		props = append(props, prop)
		code := prop.Code
		if !required[name] {
			code += ".optional()"
		}
		entry := fmt.Sprintf("%s: %s", PropertyKey(name), code)
		if p := n.Properties[name]; p != nil && p.Deprecated {
			// Identical validation; the marker is informational only.
			entry = "/** @deprecated */ " + entry
		}
		entries = append(entries, entry)
	}

	code := fmt.Sprintf("z.object({ %s })", strings.Join(entries, ", "))
	switch mode {
	case openapi.AdditionalClosed:
		code += ".strict()"
	case openapi.AdditionalOpen:
		code += ".passthrough()"
	case openapi.AdditionalTyped:
		value := t.node(valueSchema, path+".additionalProperties")
		code += fmt.Sprintf(".catchall(%s)", value.Code)
		props = append(props, value)
	}
	if n.MinProperties != nil {
		code += fmt.Sprintf(".refine((obj) => Object.keys(obj).length >= %d, { message: \"Object must have at least %d properties\" })",
			*n.MinProperties, *n.MinProperties)
	}
	if n.MaxProperties != nil {
		code += fmt.Sprintf(".refine((obj) => Object.keys(obj).length <= %d, { message: \"Object must have at most %d properties\" })",
			*n.MaxProperties, *n.MaxProperties)
	}
	return Fragment{Code: code, Refs: mergeRefs(props...)}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// jsLiteral renders an enum value as a JavaScript literal.
func jsLiteral(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case json.Number:
		return val.String()
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "null"
		}
		return string(b)
	}
}

// escapeRegex makes a pattern safe to embed in a /.../ literal.
func escapeRegex(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "/", `\/`)
	pattern = strings.ReplaceAll(pattern, "\n", `\n`)
	return pattern
}
