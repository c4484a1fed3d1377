package config

import "time"

const defaultDebounce = 300 * time.Millisecond

// Default locations, relative to the project root.
const (
	DefaultPrimaryPartials  = "docs/_partials"
	DefaultFallbackPartials = ".provide/foundry/docs/_partials"
	DefaultGuidesDir        = "plating/guides"
	DefaultComponentsDir    = "docs"
	DefaultPattern          = "**/*.md"
	DefaultMkDocsFile       = "mkdocs.yml"
	DefaultAPIDir           = "reference"
	DefaultCacheSize        = 128
)

// DefaultRenderPartialDirs is the search order for single-page rendering.
var DefaultRenderPartialDirs = []string{
	"docs/_partials",
	"src/provide/foundry/docs/_partials",
	".provide/foundry/docs/_partials",
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PartialsDefaultApplier handles partial directory defaults.
type PartialsDefaultApplier struct{}

func (PartialsDefaultApplier) Domain() string { return "partials" }

func (PartialsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Partials.Primary == "" {
		cfg.Partials.Primary = DefaultPrimaryPartials
	}
	if cfg.Partials.Fallback == "" {
		cfg.Partials.Fallback = DefaultFallbackPartials
	}
	if cfg.Partials.CacheSize == 0 {
		cfg.Partials.CacheSize = DefaultCacheSize
	}
	return nil
}

// InjectDefaultApplier handles batch rewrite defaults.
type InjectDefaultApplier struct{}

func (InjectDefaultApplier) Domain() string { return "inject" }

func (InjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	in := &cfg.Inject
	in.Scheme = defaultString(in.Scheme, "partial")
	in.OnMissingHeading = defaultString(in.OnMissingHeading, "skip")

	fillDocSet(&in.Guides, "guides", DefaultGuidesDir)
	fillDocSet(&in.Components, "components", DefaultComponentsDir)
	return nil
}

func fillDocSet(s *DocSet, name, dir string) {
	s.Name = defaultString(s.Name, name)
	s.Dir = defaultString(s.Dir, dir)
	s.Pattern = defaultString(s.Pattern, DefaultPattern)
}

// RenderDefaultApplier handles single-page rendering defaults.
type RenderDefaultApplier struct{}

func (RenderDefaultApplier) Domain() string { return "render" }

func (RenderDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Render.OnMissingHeading = defaultString(cfg.Render.OnMissingHeading, "prepend")
	if len(cfg.Render.PartialDirs) == 0 {
		cfg.Render.PartialDirs = append([]string(nil), DefaultRenderPartialDirs...)
	}
	return nil
}

// ReferenceDefaultApplier handles reference generator defaults.
type ReferenceDefaultApplier struct{}

func (ReferenceDefaultApplier) Domain() string { return "reference" }

func (ReferenceDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Reference.DocsDir = defaultString(cfg.Reference.DocsDir, "docs")
	cfg.Reference.APIDir = defaultString(cfg.Reference.APIDir, DefaultAPIDir)
	if cfg.Reference.NavFormat == "" {
		cfg.Reference.NavFormat = NavFormatLiterate
	}
	return nil
}

// MiscDefaultApplier handles nav, watch and metrics defaults.
type MiscDefaultApplier struct{}

func (MiscDefaultApplier) Domain() string { return "misc" }

func (MiscDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Nav.MkDocsFile = defaultString(cfg.Nav.MkDocsFile, DefaultMkDocsFile)
	cfg.Watch.Debounce = defaultString(cfg.Watch.Debounce, defaultDebounce.String())
	return nil
}

func applyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		PartialsDefaultApplier{},
		InjectDefaultApplier{},
		RenderDefaultApplier{},
		ReferenceDefaultApplier{},
		MiscDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
