// Package pipeline sequences generation steps over a shared, append-only
// context and materializes their outputs as artifacts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zodgen/zodgen/zodgen/sink"
)

// Step is one named stage of a run. Steps declare the earlier steps whose
// outputs they read; the dependency list is validated before anything
// executes.
type Step interface {
	// Name is the unique key of the step within a run.
	Name() string

	// DependsOn names the steps whose outputs this step reads from the
	// context. Every name must refer to a step earlier in the run list.
	DependsOn() []string

	// OutputFile is the artifact file name relative to the output directory,
	// or "" for context-only steps.
	OutputFile() string

	// Process produces the step's output from the shared context.
	Process(pc *Context) (Output, error)
}

// Output is the result of one step. Content holds artifact text; Structured
// carries intermediate values (a parsed document, extracted operations) for
// later steps; Meta is free-form bookkeeping such as warnings.
type Output struct {
	Name       string
	Content    string
	Structured any
	Meta       map[string]any
}

// Context is the shared state of a run: the raw description bytes loaded
// once at start, the output directory, and the cumulative map of completed
// step outputs. The map only grows; outputs are never overwritten.
type Context struct {
	Raw    []byte
	OutDir string

	outputs map[string]Output
}

// NewContext creates a run context over raw input bytes.
func NewContext(raw []byte, outDir string) *Context {
	return &Context{Raw: raw, OutDir: outDir, outputs: make(map[string]Output)}
}

// Output returns a completed step's output. Reading a name that has not been
// produced is a descriptive error, the caller's responsibility to surface.
func (c *Context) Output(name string) (Output, error) {
	out, ok := c.outputs[name]
	if !ok {
		return Output{}, fmt.Errorf("no output from step %q", name)
	}
	return out, nil
}

// Lookup is the non-failing variant of Output.
func (c *Context) Lookup(name string) (Output, bool) {
	out, ok := c.outputs[name]
	return out, ok
}

// Names returns the names of all completed steps, unordered.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.outputs))
	for n := range c.outputs {
		names = append(names, n)
	}
	return names
}

func (c *Context) add(out Output) {
	c.outputs[out.Name] = out
}

// RunOptions configures a run.
type RunOptions struct {
	// Sink receives written artifacts. Defaults to a filesystem sink rooted
	// at the context's output directory.
	Sink sink.Sink

	// Now supplies provenance timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Run executes steps in list order. Validation happens up front: duplicate
// step names and dependencies on unknown or later steps fail before any step
// runs. The first step error aborts the run, wrapped with the step's name;
// artifacts written by earlier steps are not rolled back.
func Run(ctx context.Context, steps []Step, pc *Context, opts RunOptions) error {
	if err := validateSteps(steps); err != nil {
		return err
	}

	out := opts.Sink
	if out == nil {
		out = sink.NewFilesystem(pc.OutDir)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	for _, step := range steps {
		result, err := step.Process(pc)
		if err != nil {
			return fmt.Errorf("step %q: %w", step.Name(), err)
		}
		result.Name = step.Name()

		if file := step.OutputFile(); file != "" {
			content, err := render(result)
			if err != nil {
				return fmt.Errorf("step %q: %w", step.Name(), err)
			}
			data := append([]byte(Header(file, now())), content...)
			if err := out.WriteFile(ctx, file, data); err != nil {
				return fmt.Errorf("step %q: write %s: %w", step.Name(), file, err)
			}
		}

		// Context-only steps land in the map too; that is their whole point.
		pc.add(result)
	}
	return nil
}

func validateSteps(steps []Step) error {
	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		name := step.Name()
		if name == "" {
			return fmt.Errorf("step with empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate step name %q", name)
		}
		for _, dep := range step.DependsOn() {
			if !seen[dep] {
				return fmt.Errorf("step %q depends on %q, which is not an earlier step", name, dep)
			}
		}
		seen[name] = true
	}
	return nil
}

// render serializes an output for writing: strings pass through, structured
// values are pretty-printed JSON.
func render(out Output) ([]byte, error) {
	if out.Content != "" {
		return []byte(out.Content), nil
	}
	if out.Structured == nil {
		return nil, nil
	}
	data, err := json.MarshalIndent(out.Structured, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize structured output: %w", err)
	}
	return append(data, '\n'), nil
}
