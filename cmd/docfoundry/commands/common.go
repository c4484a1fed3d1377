package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docfoundry/internal/config"
	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/metrics"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Stdout and Stdin default to the process streams when nil.
	Stdout io.Writer
	Stdin  io.Reader
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) stdin() io.Reader {
	if g == nil || g.Stdin == nil {
		return os.Stdin
	}
	return g.Stdin
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: docfoundry.yaml in the project root)"`
	ProjectRoot string           `name:"project-root" help:"Project root (default: top of the enclosing git work tree)"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" default:"text" enum:"text,json" help:"Log output format (text or json)"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this textfile when the command finishes"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Inject        InjectCmd        `cmd:"" default:"withargs" help:"Inject global header/footer partials into Markdown documents"`
	Render        RenderCmd        `cmd:"" help:"Render a single page with global partials to stdout"`
	GenRef        GenRefCmd        `cmd:"" name:"gen-ref" help:"Generate API reference pages and navigation"`
	NavFilter     NavFilterCmd     `cmd:"" name:"nav-filter" help:"Remove hidden sections from the mkdocs.yml navigation"`
	VersionStatus VersionStatusCmd `cmd:"" name:"version-status" help:"Derive the version badge from the VERSION file"`
	Watch         WatchCmd         `cmd:"" help:"Re-run partial injection whenever documents or partials change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if config.NormalizeLogFormat(c.LogFormat) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig resolves the project root and loads its configuration.
func loadConfig(root *CLI) (*config.Config, error) {
	projectRoot := root.ProjectRoot
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot determine working directory").Build()
		}
		projectRoot = config.DetectProjectRoot(wd)
	}

	cfg, err := config.Load(projectRoot, root.Config)
	if err != nil {
		return nil, err
	}
	if root.MetricsFile != "" {
		cfg.Metrics.File = root.MetricsFile
	}
	slog.Debug("Configuration loaded", logfields.Dir(cfg.ProjectRoot))
	return cfg, nil
}

// metricsSink is the recorder for one command plus the textfile flush.
type metricsSink struct {
	recorder metrics.Recorder
	prom     *metrics.PrometheusRecorder
	path     string
}

func newMetricsSink(cfg *config.Config) *metricsSink {
	if cfg.Metrics.File == "" {
		return &metricsSink{recorder: metrics.NoopRecorder{}}
	}
	pr := metrics.NewPrometheusRecorder(nil)
	return &metricsSink{recorder: pr, prom: pr, path: cfg.Path(cfg.Metrics.File)}
}

// flush writes the textfile when metrics are enabled. A failed write is
// logged and never changes the command outcome.
func (m *metricsSink) flush() {
	if m.prom == nil {
		return
	}
	if err := m.prom.WriteTextfile(m.path); err != nil {
		slog.Warn("Failed to write metrics textfile", logfields.Path(m.path), logfields.Error(err))
		return
	}
	slog.Debug("Metrics written", logfields.Path(m.path))
}

// invalidOption classifies a rejected option value as a usage error.
func invalidOption(name string, err error) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid --"+name).
		WithContext("hint", err.Error()).
		Build()
}
