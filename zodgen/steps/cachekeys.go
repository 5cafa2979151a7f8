package steps

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/zodgen/zodgen/zodgen/extract"
	"github.com/zodgen/zodgen/zodgen/pipeline"
	"github.com/zodgen/zodgen/zodgen/translate"
)

// CacheKeys emits one key-builder function per operation. Keys are tuples of
// the operation id, the path parameter values in declaration order, and the
// query object when one is supplied; they feed the data-fetching hooks and
// any cache keyed by request identity.
type CacheKeys struct {
	File string
}

func (c CacheKeys) Name() string        { return NameCacheKeys }
func (c CacheKeys) DependsOn() []string { return []string{NameOperations} }
func (c CacheKeys) OutputFile() string  { return c.File }

func (c CacheKeys) Process(pc *pipeline.Context) (pipeline.Output, error) {
	ops, err := operations(pc)
	if err != nil {
		return pipeline.Output{}, err
	}

	var b strings.Builder
	for i, op := range ops {
		if i > 0 {
			b.WriteString("\n")
		}
		writeKeyBuilder(&b, op)
	}
	return pipeline.Output{Content: b.String()}, nil
}

// KeyBuilderName is the exported name of an operation's key builder.
func KeyBuilderName(operationID string) string {
	return strcase.LowerCamelCase(operationID) + "Key"
}

func writeKeyBuilder(b *strings.Builder, op extract.Operation) {
	args := make([]string, 0, len(op.PathParams)+1)
	tuple := []string{fmt.Sprintf("%q", op.ID)}
	for _, p := range op.PathParams {
		args = append(args, fmt.Sprintf("%s: %s", safeArg(p.Name), tsType(p.Schema)))
		tuple = append(tuple, safeArg(p.Name))
	}

	if len(op.QueryParams) > 0 {
		fields := make([]string, len(op.QueryParams))
		for i, p := range op.QueryParams {
			opt := "?"
			if p.Required {
				opt = ""
			}
			fields[i] = fmt.Sprintf("%s%s: %s", translate.PropertyKey(p.Name), opt, tsType(p.Schema))
		}
		args = append(args, fmt.Sprintf("query?: { %s }", strings.Join(fields, "; ")))

		fmt.Fprintf(b, "export function %s(%s): readonly unknown[] {\n",
			KeyBuilderName(op.ID), strings.Join(args, ", "))
		base := strings.Join(tuple, ", ")
		fmt.Fprintf(b, "  return query === undefined ? [%s] : [%s, query];\n", base, base)
		b.WriteString("}\n")
		return
	}

	fmt.Fprintf(b, "export function %s(%s): readonly unknown[] {\n",
		KeyBuilderName(op.ID), strings.Join(args, ", "))
	fmt.Fprintf(b, "  return [%s];\n", strings.Join(tuple, ", "))
	b.WriteString("}\n")
}

// safeArg turns a parameter name into a legal TypeScript argument name.
func safeArg(name string) string {
	arg := strcase.LowerCamelCase(name)
	if arg == "" {
		return "value"
	}
	if arg[0] >= '0' && arg[0] <= '9' {
		return "p" + arg
	}
	return arg
}
