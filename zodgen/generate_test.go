package zodgen_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	"github.com/zodgen/zodgen/zodgen"
	"github.com/zodgen/zodgen/zodgen/sink"
)

func TestGenerate(t *testing.T) {
	archive, err := txtar.ParseFile(filepath.Join("testdata", "generate.txtar"))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	var input txtar.File
	expectations := map[string][]string{}
	for _, f := range archive.Files {
		if f.Name == "petstore.yaml" {
			input = f
			continue
		}
		var lines []string
		for _, line := range strings.Split(string(f.Data), "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		expectations[f.Name] = lines
	}
	if input.Name == "" {
		t.Fatal("fixture has no petstore.yaml")
	}

	dir := t.TempDir()
	inputPath := filepath.Join(dir, input.Name)
	if err := os.WriteFile(inputPath, input.Data, 0644); err != nil {
		t.Fatal(err)
	}

	mem := sink.NewMemory()
	_, err = zodgen.Generate(context.Background(), &zodgen.Config{
		Input: inputPath,
		Sink:  mem,
		Now:   func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	files := mem.Files()
	if len(files) != len(expectations) {
		t.Errorf("expected %d artifacts, got %d: %v", len(expectations), len(files), names(files))
	}

	for artifact, lines := range expectations {
		content := mem.Get(artifact)
		if content == nil {
			t.Errorf("artifact %s not generated", artifact)
			continue
		}
		got := string(content)
		if !strings.HasPrefix(got, "// Generated by zodgen at 2024-06-01T12:00:00Z. Do not edit.\n\n") {
			t.Errorf("%s: missing provenance header", artifact)
		}
		for _, line := range lines {
			if !strings.Contains(got, line) {
				t.Errorf("%s: missing line %q\ngot:\n%s", artifact, line, got)
			}
		}
	}
}

func TestGenerate_MissingInput(t *testing.T) {
	_, err := zodgen.Generate(context.Background(), &zodgen.Config{
		Input: filepath.Join(t.TempDir(), "nope.yaml"),
		Sink:  sink.NewMemory(),
	})
	if err == nil || !strings.Contains(err.Error(), "read description") {
		t.Errorf("got %v", err)
	}
}

func TestGenerate_RequiresConfig(t *testing.T) {
	if _, err := zodgen.Generate(context.Background(), &zodgen.Config{}); err == nil {
		t.Error("empty config must fail")
	}
	if _, err := zodgen.Generate(context.Background(), &zodgen.Config{Input: "x.yaml"}); err == nil {
		t.Error("missing output destination must fail")
	}
}

func TestGenerate_WritesToFilesystem(t *testing.T) {
	archive, err := txtar.ParseFile(filepath.Join("testdata", "generate.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "petstore.yaml")
	for _, f := range archive.Files {
		if f.Name == "petstore.yaml" {
			if err := os.WriteFile(inputPath, f.Data, 0644); err != nil {
				t.Fatal(err)
			}
		}
	}

	outDir := filepath.Join(dir, "out")
	if _, err := zodgen.Generate(context.Background(), &zodgen.Config{
		Input:  inputPath,
		OutDir: outDir,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, artifact := range []string{"schemas.ts", "client.ts", "keys.ts", "hooks.ts"} {
		if _, err := os.Stat(filepath.Join(outDir, artifact)); err != nil {
			t.Errorf("%s: %v", artifact, err)
		}
	}
}

func names(files map[string][]byte) []string {
	var out []string
	for name := range files {
		out = append(out, name)
	}
	return out
}
