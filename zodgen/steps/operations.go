package steps

import (
	"github.com/zodgen/zodgen/zodgen/extract"
	"github.com/zodgen/zodgen/zodgen/pipeline"
)

// Operations extracts the structured operation records. It writes no file;
// its output exists purely so later stages read one extraction instead of
// walking the document again.
type Operations struct {
	Strict bool
}

func (o Operations) Name() string        { return NameOperations }
func (o Operations) DependsOn() []string { return []string{NameParse} }
func (o Operations) OutputFile() string  { return "" }

func (o Operations) Process(pc *pipeline.Context) (pipeline.Output, error) {
	doc, err := document(pc)
	if err != nil {
		return pipeline.Output{}, err
	}

	ops, warnings := extract.Operations(doc)
	if o.Strict {
		if err := strictErr(warnings); err != nil {
			return pipeline.Output{}, err
		}
	}

	ids := make([]string, len(ops))
	for i, op := range ops {
		ids[i] = op.ID
	}

	return pipeline.Output{
		Structured: ops,
		Meta: map[string]any{
			"operationIds": ids,
			"warnings":     warningMeta(warnings),
		},
	}, nil
}
