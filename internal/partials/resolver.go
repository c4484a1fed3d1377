package partials

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// HeaderName and FooterName are the placeholder names of the
	// auto-injected partials.
	HeaderName = "global_header"
	FooterName = "global_footer"

	// HeaderFile is the auto-injected header partial.
	HeaderFile = "_" + HeaderName + ".md"
	// FooterFile is the auto-injected footer partial.
	FooterFile = "_" + FooterName + ".md"

	defaultCacheSize = 128
)

// Partial is the outcome of a lookup.
type Partial struct {
	Filename string
	// Path is where the content was read from; for a missing partial it is
	// the primary location that was checked.
	Path    string
	Content string
	Found   bool
}

// Resolver locates partial files via a two-tier search path.
type Resolver struct {
	primary  string
	fallback string
	cache    *lru.Cache[string, Partial]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCacheSize bounds the per-run lookup cache. A size <= 0 disables caching.
func WithCacheSize(size int) Option {
	return func(r *Resolver) {
		if size <= 0 {
			r.cache = nil
			return
		}
		c, err := lru.New[string, Partial](size)
		if err == nil {
			r.cache = c
		}
	}
}

// NewResolver creates a resolver checking primary first, then fallback.
// fallback may be empty.
func NewResolver(primary, fallback string, opts ...Option) *Resolver {
	r := &Resolver{primary: primary, fallback: fallback}
	WithCacheSize(defaultCacheSize)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Primary returns the project override directory.
func (r *Resolver) Primary() string { return r.primary }

// Fallback returns the package default directory (possibly empty).
func (r *Resolver) Fallback() string { return r.fallback }

// Lookup returns the trimmed content of filename from the first directory
// that has it. A missing file is not an error: the result has Found=false.
// An existing but unreadable file returns a partial-category error.
func (r *Resolver) Lookup(filename string) (Partial, error) {
	if r.cache != nil {
		if p, ok := r.cache.Get(filename); ok {
			return p, nil
		}
	}

	p, err := r.lookup(filename)
	if err != nil {
		return p, err
	}
	if r.cache != nil {
		r.cache.Add(filename, p)
	}
	return p, nil
}

// Read returns the trimmed content of filename or "" when it is missing or
// unreadable. Read failures are logged.
func (r *Resolver) Read(filename string) string {
	p, err := r.Lookup(filename)
	if err != nil {
		slog.Warn("Failed to read partial", logfields.Partial(filename), logfields.Error(err))
		return ""
	}
	return p.Content
}

func (r *Resolver) lookup(filename string) (Partial, error) {
	if !validFilename(filename) {
		return Partial{Filename: filename}, nil
	}

	dirs := []string{r.primary}
	if r.fallback != "" {
		dirs = append(dirs, r.fallback)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		data, err := os.ReadFile(path)
		if err == nil {
			return Partial{Filename: filename, Path: path, Content: strings.TrimSpace(string(data)), Found: true}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Partial{Filename: filename, Path: path}, ferrors.WrapError(err, ferrors.CategoryPartial, "read partial").
			Warning().
			WithContext("path", path).
			Build()
	}

	return Partial{Filename: filename, Path: filepath.Join(r.primary, filename)}, nil
}

// validFilename rejects names that would escape the partial directories.
func validFilename(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	return name != "." && name != ".." && !strings.Contains(name, "..")
}

// FilenameFor maps a placeholder name to its partial filename (`_name.md`).
func FilenameFor(name string) string {
	return "_" + name + ".md"
}
