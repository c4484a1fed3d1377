package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/config"
	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/inject"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/metrics"
	"git.home.luguber.info/inful/docfoundry/internal/partials"
	"git.home.luguber.info/inful/docfoundry/internal/rewrite"
)

const setupHint = "Run 'we run docs.setup' first."

// InjectCmd implements the 'inject' command.
type InjectCmd struct {
	Guides           bool   `name:"guides" aliases:"provider-guides" help:"Process provider guides (the default when no set is selected)"`
	Components       bool   `name:"components" help:"Process component documentation"`
	DryRun           bool   `name:"dry-run" help:"Show which files would change without writing them"`
	Scheme           string `name:"scheme" help:"Injection marker scheme (partial or hook); overrides the config"`
	OnMissingHeading string `name:"on-missing-heading" help:"What to do when a document has no top-level heading (skip or prepend); overrides the config"`
}

// Run executes the inject command.
func (i *InjectCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	job, err := i.job(cfg, g.stdout())
	if err != nil {
		return err
	}

	sink := newMetricsSink(cfg)
	defer sink.flush()
	job.recorder = sink.recorder

	_, err = job.run(context.Background())
	return err
}

func (i *InjectCmd) job(cfg *config.Config, out io.Writer) (*injectJob, error) {
	schemeName := cfg.Inject.Scheme
	if i.Scheme != "" {
		schemeName = i.Scheme
	}
	scheme, err := inject.SchemeNamed(schemeName)
	if err != nil {
		return nil, invalidOption("scheme", err)
	}

	policyName := cfg.Inject.OnMissingHeading
	if i.OnMissingHeading != "" {
		policyName = i.OnMissingHeading
	}
	policy, err := inject.ParseMissingHeading(policyName)
	if err != nil {
		return nil, invalidOption("on-missing-heading", err)
	}

	var sets []config.DocSet
	if i.Guides || !i.Components {
		sets = append(sets, cfg.Inject.Guides)
	}
	if i.Components {
		sets = append(sets, cfg.Inject.Components)
	}

	return &injectJob{
		cfg:      cfg,
		sets:     sets,
		dryRun:   i.DryRun,
		scheme:   scheme.WithLegacySentinels(cfg.Inject.LegacySentinels...),
		policy:   policy,
		recorder: metrics.NoopRecorder{},
		out:      out,
	}, nil
}

// injectJob is one batch rewrite over the selected document sets. Partials
// are resolved afresh on every run so watch mode picks up edits.
type injectJob struct {
	cfg      *config.Config
	sets     []config.DocSet
	dryRun   bool
	scheme   inject.Scheme
	policy   inject.MissingHeading
	recorder metrics.Recorder
	out      io.Writer
}

var setTitles = map[string]string{
	"guides":     "Provider Guides",
	"components": "Component Documentation",
}

func (j *injectJob) run(ctx context.Context) (int, error) {
	primary := j.cfg.Path(j.cfg.Partials.Primary)
	fallback := j.cfg.Path(j.cfg.Partials.Fallback)

	resolver := partials.NewResolver(primary, fallback, partials.WithCacheSize(j.cfg.Partials.CacheSize))
	pipeline := inject.Pipeline{
		Partials:         partials.LoadSet(resolver),
		Scheme:           j.scheme,
		OnMissingHeading: j.policy,
		Resolver:         resolver,
	}
	driver := rewrite.NewDriver(pipeline,
		rewrite.WithDryRun(j.dryRun),
		rewrite.WithOutput(j.out),
		rewrite.WithRecorder(j.recorder))

	total := 0
	for _, set := range j.sets {
		dir := j.cfg.Path(set.Dir)
		if !isDir(dir) {
			slog.Debug("Document set directory not found, skipping", logfields.DocSet(set.Name), logfields.Dir(dir))
			continue
		}

		j.banner(set, dir, primary, fallback)
		if !isDir(fallback) {
			fmt.Fprintf(j.out, "⚠️  Foundry partials not found. %s\n", setupHint)
			return total, errors.ConfigError("foundry partials not found").
				WithContext("dir", fallback).
				WithContext("hint", setupHint).
				Build()
		}

		report, err := driver.Run(ctx, rewrite.Target{
			Name:     set.Name,
			Dir:      dir,
			Pattern:  set.Pattern,
			SkipDirs: []string{primary, fallback},
		})
		total += report.Changed
		if err != nil {
			return total, err
		}
		fmt.Fprintln(j.out)
	}

	switch {
	case j.dryRun:
		fmt.Fprintf(j.out, "📋 Dry run: %d files would be updated\n", total)
	case total == 0:
		fmt.Fprintln(j.out, "✅ Complete: No files needed updating")
	default:
		fmt.Fprintf(j.out, "✅ Complete: %d files updated\n", total)
	}
	return total, nil
}

func (j *injectJob) banner(set config.DocSet, dir, primary, fallback string) {
	title, ok := setTitles[set.Name]
	if !ok {
		title = set.Name
	}
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(j.out, rule)
	fmt.Fprintf(j.out, "🔧 Processing %s\n", title)
	fmt.Fprintln(j.out, rule)
	fmt.Fprintf(j.out, "🔍 Scanning for %s in: %s\n", set.Name, dir)
	fmt.Fprintf(j.out, "📚 Project overrides: %s\n", primary)
	fmt.Fprintf(j.out, "📚 Foundry defaults: %s\n", fallback)
	fmt.Fprintln(j.out)
}

// watchDirs are the directories whose changes affect the job's output.
func (j *injectJob) watchDirs() []string {
	dirs := make([]string, 0, len(j.sets)+2)
	for _, set := range j.sets {
		dirs = append(dirs, j.cfg.Path(set.Dir))
	}
	dirs = append(dirs, j.cfg.Path(j.cfg.Partials.Primary), j.cfg.Path(j.cfg.Partials.Fallback))
	return dedupeNested(dirs)
}

// dedupeNested drops directories contained in another listed directory,
// since watches are recursive.
func dedupeNested(dirs []string) []string {
	var out []string
	for i, d := range dirs {
		nested := false
		for k, other := range dirs {
			if i == k {
				continue
			}
			rel, err := filepath.Rel(other, d)
			if err != nil {
				continue
			}
			if (rel == "." && k < i) || (rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, d)
		}
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
