package rewrite

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/inject"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/metrics"
	"git.home.luguber.info/inful/docfoundry/internal/partials"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// DefaultPattern matches Markdown files at any depth.
const DefaultPattern = "**/*.md"

// Target is one document set to process.
type Target struct {
	// Name labels the set in logs and metrics ("guides", "components").
	Name string
	Dir  string
	// Pattern is a doublestar glob matched against slash-separated paths
	// relative to Dir. Empty means DefaultPattern.
	Pattern string
	// SkipDirs are directories below Dir that are never descended into.
	SkipDirs []string
}

// FileChange records a document that was (or would be) rewritten.
type FileChange struct {
	Path    string
	Changes []string
}

// Report summarizes one run over a target.
type Report struct {
	RunID    string
	DocSet   string
	Scanned  int
	Changed  int
	Failed   int
	Files    []FileChange
	Duration time.Duration
}

// Driver applies an inject.Pipeline to every file of a target.
type Driver struct {
	pipeline inject.Pipeline
	dryRun   bool
	out      io.Writer
	recorder metrics.Recorder
	runID    string
}

// Option configures a Driver.
type Option func(*Driver)

// WithDryRun reports changes without writing them.
func WithDryRun(dryRun bool) Option {
	return func(d *Driver) { d.dryRun = dryRun }
}

// WithOutput sets where progress lines are printed (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(d *Driver) {
		if w != nil {
			d.out = w
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(d *Driver) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(d *Driver) {
		if id != "" {
			d.runID = id
		}
	}
}

// NewDriver creates a driver for the given pipeline.
func NewDriver(p inject.Pipeline, opts ...Option) *Driver {
	d := &Driver{
		pipeline: p,
		out:      os.Stdout,
		recorder: metrics.NoopRecorder{},
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(d)
	}

	next := p.Warn
	d.pipeline.Warn = func(w partials.Warning) {
		d.warnPartial(w)
		if next != nil {
			next(w)
		}
	}
	return d
}

// RunID returns the identifier attached to this driver's logs and reports.
func (d *Driver) RunID() string { return d.runID }

// DryRun reports whether the driver only previews changes.
func (d *Driver) DryRun() bool { return d.dryRun }

// Run processes every file of the target in lexical order. Read and write
// failures are reported and skipped; they never abort the batch. A canceled
// context stops the run before the next file.
func (d *Driver) Run(ctx context.Context, t Target) (Report, error) {
	start := time.Now()
	report := Report{RunID: d.runID, DocSet: t.Name}
	log := slog.With(logfields.RunID(d.runID), logfields.DocSet(t.Name))

	files, err := d.collect(t)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		fmt.Fprintf(d.out, "⚠️  No documentation files found in %s\n", t.Dir)
		return report, nil
	}
	log.Debug("Processing document set", logfields.Dir(t.Dir), logfields.Count(len(files)))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}
		report.Scanned++
		d.processFile(log, t.Name, path, &report)
	}

	report.Duration = time.Since(start)
	d.recorder.ObserveRunDuration(t.Name, report.Duration)
	log.Info("Document set processed",
		logfields.Count(report.Changed),
		slog.Int("scanned", report.Scanned),
		slog.Int("failed", report.Failed),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, nil
}

func (d *Driver) processFile(log *slog.Logger, docSet, path string, report *Report) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(d.out, "❌ Error reading %s: %v\n", path, err)
		log.Warn("Failed to read document", logfields.Path(path), logfields.Error(err))
		d.recorder.IncDocument(docSet, metrics.DocumentReadError)
		report.Failed++
		return
	}

	res := d.pipeline.Apply(content)
	if !res.Changed {
		d.recorder.IncDocument(docSet, metrics.DocumentUnchanged)
		return
	}

	if d.dryRun {
		fmt.Fprintf(d.out, "Would update: %s\n", path)
		if len(res.Changes) > 0 {
			fmt.Fprintf(d.out, "  Changes: %s\n", strings.Join(res.Changes, ", "))
		}
		d.recorder.IncDocument(docSet, metrics.DocumentWouldUpdate)
	} else {
		if err := writeFile(path, res.Content); err != nil {
			fmt.Fprintf(d.out, "❌ Error writing %s: %v\n", path, err)
			log.Warn("Failed to write document", logfields.Path(path), logfields.Error(err))
			d.recorder.IncDocument(docSet, metrics.DocumentWriteError)
			report.Failed++
			return
		}
		fmt.Fprintf(d.out, "✅ Updated: %s\n", path)
		d.recorder.IncDocument(docSet, metrics.DocumentUpdated)
	}

	log.Debug("Document rewritten", logfields.Path(path), logfields.Changes(res.Changes))
	report.Changed++
	report.Files = append(report.Files, FileChange{Path: path, Changes: res.Changes})
}

func (d *Driver) warnPartial(w partials.Warning) {
	if w.Err != nil {
		fmt.Fprintf(d.out, "❌ Error reading partial %s: %v\n", w.Path, w.Err)
	} else {
		fmt.Fprintf(d.out, "⚠️  Warning: Global partial '%s' not found at %s\n", w.Name, w.Path)
	}
	d.recorder.IncPartialMiss(w.Name)
}

// collect lists the files of t matching its pattern, in lexical order.
func (d *Driver) collect(t Target) ([]string, error) {
	pattern := t.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.ValidationError("invalid document pattern").
			WithContext("pattern", pattern).
			Build()
	}
	info, err := os.Stat(t.Dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "document directory not found").
			WithContext("dir", t.Dir).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.FileSystemError("document path is not a directory").
			WithContext("dir", t.Dir).
			Build()
	}

	skip := make(map[string]bool, len(t.SkipDirs))
	for _, dir := range t.SkipDirs {
		skip[filepath.Clean(dir)] = true
	}

	var (
		files    []string
		matchErr error
	)
	err = filepath.WalkDir(t.Dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", logfields.Path(path), logfields.Error(err))
			if entry != nil && entry.IsDir() && path != t.Dir {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if path != t.Dir && (skip[filepath.Clean(path)] || strings.HasPrefix(entry.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(t.Dir, path)
		if err != nil {
			return nil
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			matchErr = err
			return fs.SkipAll
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if matchErr != nil {
		return nil, errors.WrapError(matchErr, errors.CategoryValidation, "invalid document pattern").
			WithContext("pattern", pattern).
			Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "walk document directory").
			WithContext("dir", t.Dir).
			Build()
	}
	return files, nil
}

// writeFile replaces path keeping its permission bits.
func writeFile(path string, content []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}
