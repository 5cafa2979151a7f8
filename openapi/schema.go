package openapi

import (
	"bytes"
	"encoding/json"
)

// SchemaNode is one unit of the description's type grammar. Documents are
// expected to be dereferenced before loading; the only references that remain
// are named pointers into #/components/schemas, carried in Ref.
//
// A node is never mutated after decoding. Translation depends only on the
// node's structure, so two structurally equal nodes always produce the same
// output.
type SchemaNode struct {
	Ref string `json:"$ref,omitempty"`

	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Composition. A discriminator only affects oneOf handling.
	AllOf         []*SchemaNode  `json:"allOf,omitempty"`
	AnyOf         []*SchemaNode  `json:"anyOf,omitempty"`
	OneOf         []*SchemaNode  `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`

	// Numeric constraints. The exclusive bounds are RawMessage because both
	// the OpenAPI 3.0 boolean convention and the 3.1/JSON-Schema numeric
	// convention must be accepted.
	Minimum          *float64        `json:"minimum,omitempty"`
	Maximum          *float64        `json:"maximum,omitempty"`
	ExclusiveMinimum json.RawMessage `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum json.RawMessage `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64        `json:"multipleOf,omitempty"`

	// String constraints.
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Array constraints.
	Items       *SchemaNode `json:"items,omitempty"`
	MinItems    *int        `json:"minItems,omitempty"`
	MaxItems    *int        `json:"maxItems,omitempty"`
	UniqueItems bool        `json:"uniqueItems,omitempty"`

	// Object constraints. AdditionalProperties is RawMessage because the
	// grammar allows false, true, or a schema value.
	Properties           map[string]*SchemaNode `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties json.RawMessage        `json:"additionalProperties,omitempty"`
	MinProperties        *int                   `json:"minProperties,omitempty"`
	MaxProperties        *int                   `json:"maxProperties,omitempty"`
}

// Discriminator names the property that selects a oneOf branch.
type Discriminator struct {
	PropertyName string `json:"propertyName"`
}

// AdditionalMode classifies the additionalProperties policy of an object node.
type AdditionalMode int

const (
	// AdditionalUnset means additionalProperties was absent.
	AdditionalUnset AdditionalMode = iota
	// AdditionalOpen means additionalProperties: true.
	AdditionalOpen
	// AdditionalClosed means additionalProperties: false.
	AdditionalClosed
	// AdditionalTyped means additionalProperties carried a schema.
	AdditionalTyped
)

// AdditionalPolicy decodes the additionalProperties field into a mode and,
// for AdditionalTyped, the value schema. Malformed values degrade to
// AdditionalUnset rather than failing; the translator treats that the same as
// an absent field.
func (s *SchemaNode) AdditionalPolicy() (AdditionalMode, *SchemaNode) {
	raw := bytes.TrimSpace(s.AdditionalProperties)
	if len(raw) == 0 {
		return AdditionalUnset, nil
	}
	switch {
	case bytes.Equal(raw, []byte("true")):
		return AdditionalOpen, nil
	case bytes.Equal(raw, []byte("false")):
		return AdditionalClosed, nil
	case raw[0] == '{':
		var node SchemaNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return AdditionalUnset, nil
		}
		return AdditionalTyped, &node
	}
	return AdditionalUnset, nil
}

// LowerBound resolves the minimum constraint across both exclusive-bound
// conventions. It returns the bound value, whether it is exclusive, and
// whether any lower bound is present. A bound is never applied twice: when
// the boolean convention marks minimum as exclusive, the inclusive minimum is
// consumed by the exclusive bound.
func (s *SchemaNode) LowerBound() (value float64, exclusive, ok bool) {
	return resolveBound(s.Minimum, s.ExclusiveMinimum)
}

// UpperBound is the maximum-side counterpart of LowerBound.
func (s *SchemaNode) UpperBound() (value float64, exclusive, ok bool) {
	return resolveBound(s.Maximum, s.ExclusiveMaximum)
}

func resolveBound(inclusive *float64, exclusiveRaw json.RawMessage) (float64, bool, bool) {
	raw := bytes.TrimSpace(exclusiveRaw)
	if len(raw) > 0 {
		if bytes.Equal(raw, []byte("true")) {
			if inclusive != nil {
				return *inclusive, true, true
			}
			// exclusive:true without a paired bound constrains nothing
			return 0, false, false
		}
		if !bytes.Equal(raw, []byte("false")) {
			var v float64
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, true, true
			}
		}
	}
	if inclusive != nil {
		return *inclusive, false, true
	}
	return 0, false, false
}

// IsRef reports whether the node is a named component reference.
func (s *SchemaNode) IsRef() bool { return s.Ref != "" }

// RefName extracts the component name from a #/components/schemas pointer.
// Unrecognized pointer shapes return the last path segment so that malformed
// but named references still resolve to an identifier.
func (s *SchemaNode) RefName() string {
	ref := s.Ref
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}
