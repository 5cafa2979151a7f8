package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zodgen/zodgen/zodgen/pipeline"
	"github.com/zodgen/zodgen/zodgen/translate"
)

// Schemas emits the zod schema declarations for every named component.
// Components are declared in dependency order derived from fragment refs so
// that references resolve to already-declared identifiers; cycles fall back
// to name order with a warning.
type Schemas struct {
	File   string
	Strict bool
}

func (s Schemas) Name() string        { return NameSchemas }
func (s Schemas) DependsOn() []string { return []string{NameParse} }
func (s Schemas) OutputFile() string  { return s.File }

func (s Schemas) Process(pc *pipeline.Context) (pipeline.Output, error) {
	doc, err := document(pc)
	if err != nil {
		return pipeline.Output{}, err
	}

	var names []string
	components := map[string]bool{}
	if doc.Components != nil {
		for name := range doc.Components.Schemas {
			names = append(names, name)
			components[name] = true
		}
	}
	sort.Strings(names)

	var warnings []translate.Warning
	frags := make(map[string]translate.Fragment, len(names))
	for _, name := range names {
		frag, warns := translate.Translate(doc.Components.Schemas[name], "components."+name)
		warnings = append(warnings, warns...)
		frags[name] = frag

		// References must point at declared components; a dangling reference
		// still emits its identifier but the file will not compile.
		for _, ref := range frag.Refs {
			target := strings.TrimSuffix(ref, "Schema")
			if !knownComponent(components, target) {
				warnings = append(warnings, translate.Warning{
					Path:    "components." + name,
					Message: fmt.Sprintf("reference to undeclared component %q", target),
				})
			}
		}
	}

	ordered, cyclic := declarationOrder(names, frags)
	for _, name := range cyclic {
		warnings = append(warnings, translate.Warning{
			Path:    "components." + name,
			Message: "reference cycle; declaration may forward-reference an identifier still being defined",
		})
	}

	if s.Strict {
		if err := strictErr(warnings); err != nil {
			return pipeline.Output{}, err
		}
	}

	var b strings.Builder
	b.WriteString("import { z } from \"zod\";\n")
	for _, name := range ordered {
		ident := translate.SchemaIdent(name)
		fmt.Fprintf(&b, "\nexport const %s = %s;\n", ident, frags[name].Code)
		fmt.Fprintf(&b, "export type %s = z.infer<typeof %s>;\n", translate.TypeIdent(name), ident)
	}

	return pipeline.Output{
		Content: b.String(),
		Meta: map[string]any{
			"components": ordered,
			"warnings":   warningMeta(warnings),
		},
	}, nil
}

func knownComponent(components map[string]bool, target string) bool {
	if components[target] {
		return true
	}
	// Ref idents are camel-cased; match declared names case-insensitively on
	// their own camel-cased form.
	for name := range components {
		if translate.TypeIdent(name) == target {
			return true
		}
	}
	return false
}

// declarationOrder topologically sorts component names so dependencies are
// declared first. Members of reference cycles are appended in name order and
// reported to the caller.
func declarationOrder(names []string, frags map[string]translate.Fragment) (ordered, cyclic []string) {
	identToName := make(map[string]string, len(names))
	for _, name := range names {
		identToName[translate.SchemaIdent(name)] = name
	}

	const (
		white = iota // unvisited
		gray         // on stack
		black        // done
	)
	state := make(map[string]int, len(names))
	inCycle := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		switch state[name] {
		case gray:
			inCycle[name] = true
			return
		case black:
			return
		}
		state[name] = gray
		for _, ref := range frags[name].Refs {
			dep, ok := identToName[ref]
			if !ok {
				continue
			}
			if dep == name {
				inCycle[name] = true
				continue
			}
			visit(dep)
		}
		state[name] = black
		ordered = append(ordered, name)
	}

	for _, name := range names {
		visit(name)
	}
	for _, name := range names {
		if inCycle[name] {
			cyclic = append(cyclic, name)
		}
	}
	return ordered, cyclic
}
