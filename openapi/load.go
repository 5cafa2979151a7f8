package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var validate = validator.New()

// Load reads and parses a description from a local path. The file is read
// exactly once per run.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a JSON or YAML description and validates its structure.
// YAML input is converted to JSON first so both formats share one decode
// path.
func Parse(data []byte) (*Document, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("not valid JSON or YAML: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("decode description: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the decoded document for the structural requirements the
// generator depends on. It does not attempt full specification conformance.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid description: field %s failed %q", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("invalid description: %w", err)
	}
	if !strings.HasPrefix(d.OpenAPI, "3.") {
		return fmt.Errorf("unsupported openapi version %q", d.OpenAPI)
	}
	for path, item := range d.Paths {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("invalid path %q: must begin with /", path)
		}
		if item == nil {
			return fmt.Errorf("invalid path %q: empty path item", path)
		}
		for _, verb := range Verbs {
			op := item.Operation(verb)
			if op == nil {
				continue
			}
			for _, p := range append(item.Parameters, op.Parameters...) {
				if p == nil {
					continue
				}
				switch p.In {
				case "path", "query", "header", "cookie":
				default:
					return fmt.Errorf("%s %s: parameter %q has unknown location %q", verb, path, p.Name, p.In)
				}
				if p.In == "path" && !p.Required {
					return fmt.Errorf("%s %s: path parameter %q must be required", verb, path, p.Name)
				}
			}
		}
	}
	return nil
}
