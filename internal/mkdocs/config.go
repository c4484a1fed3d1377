// Package mkdocs reads and edits mkdocs.yml while keeping everything it does
// not touch (comments, ordering, custom tags) intact.
package mkdocs

import (
	"bytes"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the conventional config file name.
	DefaultFile = "mkdocs.yml"
	// DefaultDocsDir is MkDocs' default docs_dir.
	DefaultDocsDir = "docs"
)

// Config is a parsed mkdocs.yml document.
type Config struct {
	path string
	doc  yaml.Node
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("mkdocs config not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read mkdocs config").
			WithContext("path", path).
			Build()
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse parses mkdocs.yml content.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, &cfg.doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse mkdocs config").Build()
	}
	if cfg.doc.Kind == 0 {
		cfg.doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if root := cfg.root(); root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.ConfigError("mkdocs config must be a mapping").Build()
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string { return c.path }

func (c *Config) root() *yaml.Node {
	if c.doc.Kind != yaml.DocumentNode || len(c.doc.Content) == 0 {
		return nil
	}
	return c.doc.Content[0]
}

// DocsDir returns docs_dir resolved against the config file's directory.
func (c *Config) DocsDir() string {
	dir := DefaultDocsDir
	if v := lookup(c.root(), "docs_dir"); v != nil && v.Kind == yaml.ScalarNode && v.Value != "" {
		dir = v.Value
	}
	if filepath.IsAbs(dir) || c.path == "" {
		return dir
	}
	return filepath.Join(filepath.Dir(c.path), dir)
}

// Nav returns the nav sequence node, or nil when there is none.
func (c *Config) Nav() *yaml.Node {
	v := lookup(c.root(), "nav")
	if v == nil || v.Kind != yaml.SequenceNode {
		return nil
	}
	return v
}

// SetNav replaces the nav entries with items, keeping the node's position
// and style.
func (c *Config) SetNav(items []*yaml.Node) {
	nav := c.Nav()
	if nav == nil {
		nav = &yaml.Node{Kind: yaml.SequenceNode}
		set(c.root(), "nav", nav)
	}
	nav.Content = items
}

// Extra returns the scalar value of extra.<key>.
func (c *Config) Extra(key string) (string, bool) {
	v := lookup(lookup(c.root(), "extra"), key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// SetExtra sets extra.<key> to a string value, creating the extra mapping
// when needed.
func (c *Config) SetExtra(key, value string) {
	extra := lookup(c.root(), "extra")
	if extra == nil || extra.Kind != yaml.MappingNode {
		extra = &yaml.Node{Kind: yaml.MappingNode}
		set(c.root(), "extra", extra)
	}
	set(extra, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

// Bytes renders the document.
func (c *Config) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&c.doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "encode mkdocs config").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "encode mkdocs config").Build()
	}
	return buf.Bytes(), nil
}

// Save writes the document back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.InternalError("mkdocs config has no path").Build()
	}
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(c.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(c.path, data, mode); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write mkdocs config").
			WithContext("path", c.path).
			Build()
	}
	return nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func set(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}
