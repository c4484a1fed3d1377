package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/mkdocs"
	"git.home.luguber.info/inful/docfoundry/internal/versionstatus"
)

// VersionStatusCmd implements the 'version-status' command.
type VersionStatusCmd struct {
	MkDocsFile string `name:"mkdocs-file" short:"f" help:"Path to mkdocs.yml (default: from config)"`
	Write      bool   `name:"write" short:"w" help:"Store the values under extra: in mkdocs.yml"`
}

// Run executes the version-status command.
func (v *VersionStatusCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	mcfg, err := mkdocs.Load(cfg.Path(firstNonEmpty(v.MkDocsFile, cfg.Nav.MkDocsFile)))
	if err != nil {
		return err
	}

	path := versionstatus.FileFor(mcfg)
	info, err := versionstatus.ReadFile(path)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			slog.Warn("VERSION file not found, version status not set", logfields.Path(path))
			return nil
		}
		return err
	}

	out := g.stdout()
	fmt.Fprintf(out, "%s: %s\n", versionstatus.ExtraStatusKey, info.Status)
	fmt.Fprintf(out, "%s: %s\n", versionstatus.ExtraVersionKey, info.Version)

	if !v.Write {
		return nil
	}
	versionstatus.Apply(mcfg, info)
	if err := mcfg.Save(); err != nil {
		return err
	}
	slog.Info("Version status stored", logfields.Path(mcfg.Path()), slog.String("status", string(info.Status)))
	return nil
}
