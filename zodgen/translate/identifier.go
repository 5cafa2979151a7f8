package translate

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"
)

// TypeIdent converts a component name into an exported TypeScript type
// identifier (e.g. "pet-store" -> "PetStore").
func TypeIdent(name string) string {
	return strcase.UpperCamelCase(sanitize(name))
}

// SchemaIdent is the exported identifier of a component's zod schema
// declaration (e.g. "Pet" -> "PetSchema").
func SchemaIdent(name string) string {
	return TypeIdent(name) + "Schema"
}

// PropertyKey renders an object property name for use inside a TypeScript
// object literal, quoting it when it is not a plain identifier.
func PropertyKey(name string) string {
	if isIdentifier(name) {
		return name
	}
	return fmt.Sprintf("%q", name)
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		alpha := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 && !alpha {
			return false
		}
		if !alpha && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// sanitize strips characters that cannot appear in an identifier so that
// names like "pet.v2" or "foo[bar]" still camel-case cleanly.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
