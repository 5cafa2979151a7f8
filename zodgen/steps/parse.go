package steps

import (
	"github.com/zodgen/zodgen/openapi"
	"github.com/zodgen/zodgen/zodgen/pipeline"
)

// Parse decodes and validates the raw description loaded into the context.
// It is context-only: every later step reads the parsed document from it
// instead of re-parsing.
type Parse struct{}

func (Parse) Name() string        { return NameParse }
func (Parse) DependsOn() []string { return nil }
func (Parse) OutputFile() string  { return "" }

func (Parse) Process(pc *pipeline.Context) (pipeline.Output, error) {
	doc, err := openapi.Parse(pc.Raw)
	if err != nil {
		return pipeline.Output{}, err
	}
	return pipeline.Output{
		Structured: doc,
		Meta: map[string]any{
			"title":   doc.Info.Title,
			"version": doc.Info.Version,
		},
	}, nil
}
