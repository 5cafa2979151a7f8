package steps

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/zodgen/zodgen/zodgen/pipeline"
)

// Hooks emits data-fetching hook bindings on top of the external hook
// factory: query hooks (with cache keys) for GET operations, mutation hooks
// for everything else.
type Hooks struct {
	File       string
	ClientFile string
	KeysFile   string
}

func (h Hooks) Name() string { return NameHooks }

func (h Hooks) DependsOn() []string {
	return []string{NameOperations, NameClient, NameCacheKeys}
}

func (h Hooks) OutputFile() string { return h.File }

func (h Hooks) Process(pc *pipeline.Context) (pipeline.Output, error) {
	ops, err := operations(pc)
	if err != nil {
		return pipeline.Output{}, err
	}

	var keyImports []string
	for _, op := range ops {
		if op.Method == "GET" {
			keyImports = append(keyImports, KeyBuilderName(op.ID))
		}
	}

	var b strings.Builder
	b.WriteString("import { createQueryHook, createMutationHook } from \"@zodgen/runtime/hooks\";\n")
	fmt.Fprintf(&b, "import { operations } from \"./%s\";\n", moduleName(h.ClientFile))
	if len(keyImports) > 0 {
		fmt.Fprintf(&b, "import { %s } from \"./%s\";\n",
			strings.Join(keyImports, ", "), moduleName(h.KeysFile))
	}
	b.WriteString("\n")

	for _, op := range ops {
		hookName := "use" + strcase.UpperCamelCase(op.ID)
		if op.Deprecated {
			b.WriteString("/** @deprecated */\n")
		}
		if op.Method == "GET" {
			fmt.Fprintf(&b, "export const %s = createQueryHook(operations%s, %s);\n",
				hookName, memberAccess(op.ID), KeyBuilderName(op.ID))
		} else {
			fmt.Fprintf(&b, "export const %s = createMutationHook(operations%s);\n",
				hookName, memberAccess(op.ID))
		}
	}

	return pipeline.Output{Content: b.String()}, nil
}
