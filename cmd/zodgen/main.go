package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/zodgen/zodgen/internal/preview"
	"github.com/zodgen/zodgen/openapi"
	"github.com/zodgen/zodgen/zodgen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate TypeScript artifacts from an API description."`
	Check   CheckCmd   `cmd:"" help:"Parse and validate a description without generating files."`
	Preview PreviewCmd `cmd:"" help:"Serve generated artifacts from memory for inspection."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Input  string `arg:"" help:"Path of the API description (JSON or YAML)."`
	Out    string `help:"Output directory for generated files." short:"o" default:"."`
	Strict bool   `help:"Fail on permissive-fallback warnings."`

	SchemasFile string `help:"Schema artifact file name." default:"schemas.ts"`
	ClientFile  string `help:"Client artifact file name." default:"client.ts"`
	KeysFile    string `help:"Cache-key artifact file name." default:"keys.ts"`
	HooksFile   string `help:"Hooks artifact file name." default:"hooks.ts"`
	NoKeys      bool   `help:"Skip the cache-key stage (implies --no-hooks)."`
	NoHooks     bool   `help:"Skip the hooks stage."`
}

func (c *GenCmd) Run() error {
	_, err := zodgen.Generate(context.Background(), &zodgen.Config{
		Input:       c.Input,
		OutDir:      c.Out,
		SchemasFile: c.SchemasFile,
		ClientFile:  c.ClientFile,
		KeysFile:    c.KeysFile,
		HooksFile:   c.HooksFile,
		NoCacheKeys: c.NoKeys,
		NoHooks:     c.NoHooks,
		Strict:      c.Strict,
	})
	return err
}

type CheckCmd struct {
	Input string `arg:"" help:"Path of the API description (JSON or YAML)."`
}

func (c *CheckCmd) Run() error {
	doc, err := openapi.Load(c.Input)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s %s: ok (%d paths)\n", doc.Info.Title, doc.Info.Version, len(doc.Paths))
	return nil
}

type PreviewCmd struct {
	Input string `arg:"" help:"Path of the API description (JSON or YAML)."`
	Port  int    `help:"Port to listen on." default:"9190" short:"p"`
}

func (c *PreviewCmd) Run() error {
	return preview.New(c.Input).ListenAndServe(c.Port)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("zodgen"),
		kong.Description("Generate zod schemas, a typed client, cache keys, and hooks from an OpenAPI description."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
