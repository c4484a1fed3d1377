package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docfoundry/internal/config"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/refgen"
)

// GenRefCmd implements the 'gen-ref' command.
type GenRefCmd struct {
	ConfigDir string `name:"config-dir" help:"MkDocs config directory whose src/ is documented (default: $MKDOCS_CONFIG_DIR, then the project root)"`
	DocsDir   string `name:"docs-dir" help:"Documentation directory the pages are written below (default: docs)"`
	APIDir    string `name:"api-dir" help:"Output directory below the docs directory (default: $MKDOCS_API_DIR, then reference)"`
	NavFormat string `name:"nav-format" help:"Navigation manifest format (literate, yaml or both)"`
}

// Run executes the gen-ref command.
func (c *GenRefCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	format := cfg.Reference.NavFormat
	if c.NavFormat != "" {
		if format, err = config.ParseNavFormat(c.NavFormat); err != nil {
			return invalidOption("nav-format", err)
		}
	}

	configDir := firstNonEmpty(c.ConfigDir, os.Getenv(config.EnvConfigDir), cfg.Reference.ConfigDir, ".")
	srcRoot, ok := refgen.ResolveSourceRoot(cfg.Path(configDir))
	if !ok {
		slog.Warn("No source directory found, skipping reference generation", logfields.Dir(cfg.Path(configDir)))
		return nil
	}

	sink := newMetricsSink(cfg)
	defer sink.flush()

	gen := refgen.NewGenerator(cfg.Path(firstNonEmpty(c.DocsDir, cfg.Reference.DocsDir)),
		refgen.WithAPIDir(firstNonEmpty(c.APIDir, os.Getenv(config.EnvAPIDir), cfg.Reference.APIDir)),
		refgen.WithNavYAML(format.WantsYAML()),
		refgen.WithRecorder(sink.recorder))

	res, err := gen.Generate(context.Background(), srcRoot)
	if err != nil {
		return err
	}

	out := g.stdout()
	fmt.Fprintf(out, "✅ Generated %d reference pages (%d updated) in %s\n", len(res.Pages), res.Written, gen.OutputDir())
	fmt.Fprintf(out, "📚 Navigation: %s\n", res.Summary)
	if res.NavYAML != "" {
		fmt.Fprintf(out, "📚 Navigation: %s\n", res.NavYAML)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
