package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docfoundry/internal/config"
	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/inject"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/partials"
)

// RenderCmd renders one page the way the site build sees it.
type RenderCmd struct {
	File             string `arg:"" optional:"" help:"Markdown file to render (default: stdin)"`
	Scheme           string `name:"scheme" help:"Injection marker scheme (partial or hook); overrides the config"`
	OnMissingHeading string `name:"on-missing-heading" help:"What to do when the page has no top-level heading (skip or prepend); overrides the config"`
}

// Run executes the render command.
func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	var content []byte
	if r.File == "" {
		content, err = io.ReadAll(g.stdin())
	} else {
		content, err = os.ReadFile(r.File)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "read page").
			WithContext("path", r.File).
			Build()
	}

	pipeline, err := r.pipeline(cfg)
	if err != nil {
		return err
	}
	res := pipeline.Apply(content)
	if _, err := g.stdout().Write(res.Content); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write rendered page").Build()
	}
	if res.Changed {
		slog.Debug("Page rendered", logfields.Path(r.File), logfields.Changes(res.Changes))
	}
	return nil
}

func (r *RenderCmd) pipeline(cfg *config.Config) (inject.Pipeline, error) {
	schemeName := cfg.Inject.Scheme
	if r.Scheme != "" {
		schemeName = r.Scheme
	}
	scheme, err := inject.SchemeNamed(schemeName)
	if err != nil {
		return inject.Pipeline{}, invalidOption("scheme", err)
	}

	policyName := cfg.Render.OnMissingHeading
	if r.OnMissingHeading != "" {
		policyName = r.OnMissingHeading
	}
	policy, err := inject.ParseMissingHeading(policyName)
	if err != nil {
		return inject.Pipeline{}, invalidOption("on-missing-heading", err)
	}

	p := inject.Pipeline{
		Scheme:           scheme.WithLegacySentinels(cfg.Inject.LegacySentinels...),
		OnMissingHeading: policy,
		Warn: func(w partials.Warning) {
			if w.Err != nil {
				slog.Warn("Global partial not readable", logfields.Partial(w.Name), logfields.Path(w.Path), logfields.Error(w.Err))
				return
			}
			slog.Warn("Global partial not found", logfields.Partial(w.Name), logfields.Path(w.Path))
		},
	}

	dir, ok := renderPartialsDir(cfg)
	if !ok {
		slog.Warn("No partials directory found; page is only cleaned", slog.Any("searched", cfg.Render.PartialDirs))
		return p, nil
	}
	resolver := partials.NewResolver(dir, "", partials.WithCacheSize(cfg.Partials.CacheSize))
	p.Resolver = resolver
	p.Partials = partials.LoadSet(resolver)
	return p, nil
}

// renderPartialsDir returns the first existing render partials directory.
func renderPartialsDir(cfg *config.Config) (string, bool) {
	for _, dir := range cfg.Render.PartialDirs {
		path := cfg.Path(dir)
		if isDir(path) {
			return path, true
		}
	}
	return "", false
}
