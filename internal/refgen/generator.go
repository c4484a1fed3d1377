package refgen

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/metrics"
)

const (
	// DefaultAPIDir is the output directory name under the docs directory.
	DefaultAPIDir = "reference"
	SummaryFile   = "SUMMARY.md"
	NavYAMLFile   = "nav.yml"
)

// Generator writes reference pages for a source tree.
type Generator struct {
	docsDir  string
	apiDir   string
	navYAML  bool
	recorder metrics.Recorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithAPIDir sets the output directory name (relative to the docs dir).
func WithAPIDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.apiDir = dir
		}
	}
}

// WithNavYAML also emits nav.yml next to SUMMARY.md.
func WithNavYAML(enabled bool) Option {
	return func(g *Generator) { g.navYAML = enabled }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// NewGenerator creates a generator writing below docsDir.
func NewGenerator(docsDir string, opts ...Option) *Generator {
	g := &Generator{docsDir: docsDir, apiDir: DefaultAPIDir, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OutputDir is where pages are written.
func (g *Generator) OutputDir() string {
	return filepath.Join(g.docsDir, filepath.FromSlash(g.apiDir))
}

// Result describes a generation run.
type Result struct {
	Pages []Page
	// Written counts pages whose content changed on disk.
	Written int
	Summary string
	NavYAML string
}

// Generate discovers the modules under srcRoot and writes one page per
// module plus the navigation manifests. Files are only rewritten when their
// content differs; nothing else in the output directory is touched.
func (g *Generator) Generate(ctx context.Context, srcRoot string) (Result, error) {
	pages, err := Discover(srcRoot)
	if err != nil {
		return Result{}, err
	}

	res := Result{Pages: pages}
	out := g.OutputDir()
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		changed, err := writeIfChanged(filepath.Join(out, filepath.FromSlash(p.DocPath)), []byte(p.Directive()))
		if err != nil {
			return res, err
		}
		if changed {
			res.Written++
		}
		slog.Debug("Reference page", logfields.Module(p.Module()), logfields.Path(p.DocPath))
	}

	nav := BuildNav(pages)
	res.Summary = filepath.Join(out, SummaryFile)
	if _, err := writeIfChanged(res.Summary, []byte(nav.Literate())); err != nil {
		return res, err
	}

	if g.navYAML {
		data, err := nav.YAML(g.apiDir)
		if err != nil {
			return res, errors.WrapError(err, errors.CategoryInternal, "render nav.yml").Build()
		}
		res.NavYAML = filepath.Join(out, NavYAMLFile)
		if _, err := writeIfChanged(res.NavYAML, data); err != nil {
			return res, err
		}
	}

	g.recorder.AddGeneratedPages(res.Written)
	slog.Info("Reference pages generated",
		logfields.Count(len(pages)),
		slog.Int("written", res.Written),
		logfields.Dir(out))
	return res, nil
}

func writeIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "write generated file").
			WithContext("path", path).
			Build()
	}
	return true, nil
}

// ResolveSourceRoot returns the first existing directory of
// <configDir>/src and ./src.
func ResolveSourceRoot(configDir string) (string, bool) {
	if configDir == "" {
		configDir = "."
	}
	for _, candidate := range []string{filepath.Join(configDir, "src"), "src"} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
