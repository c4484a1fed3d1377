package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file looked up in the project root.
const FileName = "docfoundry.yaml"

// Config represents the application configuration.
type Config struct {
	// ProjectRoot is the directory relative paths resolve against. It is
	// not read from the file.
	ProjectRoot string `yaml:"-"`

	Partials  PartialsConfig  `yaml:"partials"`
	Inject    InjectConfig    `yaml:"inject"`
	Render    RenderConfig    `yaml:"render"`
	Reference ReferenceConfig `yaml:"reference"`
	Nav       NavConfig       `yaml:"nav"`
	Watch     WatchConfig     `yaml:"watch"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// PartialsConfig locates the partial directories for the batch rewrite.
type PartialsConfig struct {
	// Primary holds project overrides.
	Primary string `yaml:"primary"`
	// Fallback holds the shared foundry defaults.
	Fallback  string `yaml:"fallback"`
	CacheSize int    `yaml:"cache_size"`
}

// DocSet is a directory of Markdown documents processed together.
type DocSet struct {
	Name    string `yaml:"name"`
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// InjectConfig controls the batch rewrite.
type InjectConfig struct {
	Scheme           string   `yaml:"scheme"`
	OnMissingHeading string   `yaml:"on_missing_heading"`
	LegacySentinels  []string `yaml:"legacy_header_sentinels"`
	Guides           DocSet   `yaml:"guides"`
	Components       DocSet   `yaml:"components"`
}

// RenderConfig controls single-page rendering.
type RenderConfig struct {
	OnMissingHeading string `yaml:"on_missing_heading"`
	// PartialDirs are searched in order; the first existing one is used.
	PartialDirs []string `yaml:"partial_dirs"`
}

// ReferenceConfig controls reference page generation.
type ReferenceConfig struct {
	// ConfigDir is the MkDocs config directory; its src/ is tried first.
	ConfigDir string `yaml:"config_dir"`
	DocsDir   string `yaml:"docs_dir"`
	// APIDir is the output directory name below DocsDir.
	APIDir    string    `yaml:"api_dir"`
	NavFormat NavFormat `yaml:"nav_format"`
}

// NavConfig controls the nav filter and the version badge.
type NavConfig struct {
	MkDocsFile  string   `yaml:"mkdocs_file"`
	HiddenPaths []string `yaml:"hidden_paths"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// MetricsConfig controls the Prometheus textfile output.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// Load reads the configuration for projectRoot.
//
// .env.local and .env in the project root are loaded first without
// overriding the process environment. path may name an explicit config file;
// when empty, docfoundry.yaml in the project root is used if present. The
// file content is ${VAR}-expanded before parsing. Defaults are applied and
// the result validated.
func Load(projectRoot, path string) (*Config, error) {
	LoadEnvFiles(projectRoot)

	cfg := &Config{ProjectRoot: projectRoot}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectRoot, FileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				WithContext("path", path).
				Fatal().
				Build()
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "configuration file not readable").
			WithContext("path", path).
			Fatal().
			Build()
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default(projectRoot string) (*Config, error) {
	cfg := &Config{ProjectRoot: projectRoot}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Path resolves p against the project root unless it is absolute.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}

// DebounceDuration returns the parsed watch debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}
