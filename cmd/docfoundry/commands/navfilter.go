package commands

import (
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/config"
	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/mkdocs"
	"git.home.luguber.info/inful/docfoundry/internal/navfilter"
)

// NavFilterCmd implements the 'nav-filter' command.
type NavFilterCmd struct {
	MkDocsFile string   `name:"mkdocs-file" short:"f" help:"Path to mkdocs.yml (default: from config)"`
	Hide       []string `name:"hide" sep:"," help:"URL prefixes to hide (default: $MKDOCS_HIDDEN_NAV_PATHS, then config)"`
	Write      bool     `name:"write" short:"w" help:"Rewrite mkdocs.yml in place instead of printing it"`
}

// Run executes the nav-filter command.
func (n *NavFilterCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	mcfg, err := mkdocs.Load(cfg.Path(firstNonEmpty(n.MkDocsFile, cfg.Nav.MkDocsFile)))
	if err != nil {
		return err
	}

	hidden := n.hidden(cfg)
	removed := navfilter.ApplyToConfig(mcfg, hidden)
	slog.Debug("Navigation filtered", logfields.Count(len(removed)), slog.Any("hidden", hidden))

	if n.Write {
		if len(removed) == 0 {
			return nil
		}
		return mcfg.Save()
	}

	data, err := mcfg.Bytes()
	if err != nil {
		return err
	}
	if _, err := g.stdout().Write(data); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write filtered config").Build()
	}
	return nil
}

// hidden picks the first configured source of hidden prefixes.
func (n *NavFilterCmd) hidden(cfg *config.Config) []string {
	if len(n.Hide) > 0 {
		return navfilter.ParseHidden(strings.Join(n.Hide, ","))
	}
	if env, ok := os.LookupEnv(navfilter.EnvHiddenPaths); ok {
		return navfilter.ParseHidden(env)
	}
	return navfilter.ParseHidden(strings.Join(cfg.Nav.HiddenPaths, ","))
}
