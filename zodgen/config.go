// Package zodgen generates TypeScript validation schemas, a typed client,
// cache-key helpers, and data-fetching hooks from a dereferenced OpenAPI
// description.
package zodgen

import (
	"time"

	"github.com/zodgen/zodgen/zodgen/sink"
)

// Config holds the configuration for a generation run.
type Config struct {
	// Input is the path of the API description (JSON or YAML). The file is
	// read exactly once per run.
	Input string

	// OutDir is the directory where artifacts are written.
	// e.g. "./client/src/api"
	OutDir string

	// SchemasFile is the zod schema artifact name. Default "schemas.ts".
	SchemasFile string

	// ClientFile is the typed client artifact name. Default "client.ts".
	ClientFile string

	// KeysFile is the cache-key artifact name. Default "keys.ts".
	KeysFile string

	// HooksFile is the hooks artifact name. Default "hooks.ts".
	HooksFile string

	// NoCacheKeys skips the cache-key stage (and therefore the hooks stage,
	// which depends on it).
	NoCacheKeys bool

	// NoHooks skips the hooks stage.
	NoHooks bool

	// Strict turns permissive-fallback warnings into run-failing errors.
	Strict bool

	// Sink overrides the artifact destination. Defaults to a filesystem sink
	// rooted at OutDir; the preview server passes a memory sink.
	Sink sink.Sink

	// Now supplies provenance timestamps. Defaults to time.Now.
	Now func() time.Time
}

// applyConfigDefaults fills zero-valued fields with defaults without
// mutating the input.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg

	if result.SchemasFile == "" {
		result.SchemasFile = "schemas.ts"
	}
	if result.ClientFile == "" {
		result.ClientFile = "client.ts"
	}
	if result.KeysFile == "" {
		result.KeysFile = "keys.ts"
	}
	if result.HooksFile == "" {
		result.HooksFile = "hooks.ts"
	}
	if result.NoCacheKeys {
		result.NoHooks = true
	}
	return &result
}
