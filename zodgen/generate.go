package zodgen

import (
	"context"
	"fmt"
	"os"

	"github.com/zodgen/zodgen/zodgen/pipeline"
	"github.com/zodgen/zodgen/zodgen/steps"
)

// Generate runs the full pipeline for a configuration: load the description
// once, execute every configured stage in order, and write the declared
// artifacts. It returns the run context so callers (tests, the preview
// server) can inspect step outputs.
func Generate(ctx context.Context, cfg *Config) (*pipeline.Context, error) {
	if cfg.Input == "" {
		return nil, fmt.Errorf("Input is required")
	}
	if cfg.OutDir == "" && cfg.Sink == nil {
		return nil, fmt.Errorf("OutDir is required")
	}
	cfg = applyConfigDefaults(cfg)

	raw, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}

	pc := pipeline.NewContext(raw, cfg.OutDir)
	err = pipeline.Run(ctx, Steps(cfg), pc, pipeline.RunOptions{
		Sink: cfg.Sink,
		Now:  cfg.Now,
	})
	reportWarnings(pc)
	if err != nil {
		return pc, err
	}
	return pc, nil
}

// Steps assembles the step list for a configuration. Exposed so the preview
// server can rerun the pipeline with per-request options.
func Steps(cfg *Config) []pipeline.Step {
	cfg = applyConfigDefaults(cfg)
	list := []pipeline.Step{
		steps.Parse{},
		steps.Schemas{File: cfg.SchemasFile, Strict: cfg.Strict},
		steps.Operations{Strict: cfg.Strict},
		steps.Client{File: cfg.ClientFile, SchemasFile: cfg.SchemasFile},
	}
	if !cfg.NoCacheKeys {
		list = append(list, steps.CacheKeys{File: cfg.KeysFile})
	}
	if !cfg.NoHooks {
		list = append(list, steps.Hooks{
			File:       cfg.HooksFile,
			ClientFile: cfg.ClientFile,
			KeysFile:   cfg.KeysFile,
		})
	}
	return list
}

// reportWarnings prints accumulated step warnings to stderr, once, after the
// run.
func reportWarnings(pc *pipeline.Context) {
	for _, name := range pc.Names() {
		out, _ := pc.Lookup(name)
		warnings, ok := out.Meta["warnings"].([]string)
		if !ok {
			continue
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", name, w)
		}
	}
}
