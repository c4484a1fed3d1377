package mkdocs

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sample = `# Site settings
site_name: Example
docs_dir: content
markdown_extensions:
  - pymdownx.emoji:
      emoji_index: !!python/name:material.extensions.emoji.twemoji
nav:
  - Home: index.md
  - Guides:
      - guides/a.md
extra:
  analytics: x
`

func TestLoad_RoundTripsUntouchedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "content"), cfg.DocsDir())

	require.NotNil(t, cfg.Nav())
	assert.Len(t, cfg.Nav().Content, 2)

	v, ok := cfg.Extra("analytics")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	cfg.SetExtra("version_status", "beta")
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# Site settings")
	assert.Contains(t, out, "!!python/name:material.extensions.emoji.twemoji")
	assert.Contains(t, out, "version_status: beta")

	reloaded, err := Load(path)
	require.NoError(t, err)
	v, ok = reloaded.Extra("version_status")
	assert.True(t, ok)
	assert.Equal(t, "beta", v)
}

func TestSetExtra_CreatesMapping(t *testing.T) {
	cfg, err := Parse([]byte("site_name: x\n"))
	require.NoError(t, err)

	cfg.SetExtra("version_string", "1.0")
	cfg.SetExtra("version_string", "1.1")

	data, err := cfg.Bytes()
	require.NoError(t, err)

	var parsed struct {
		Extra map[string]string `yaml:"extra"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, map[string]string{"version_string": "1.1"}, parsed.Extra)
}

func TestSetExtra_KeepsNumericLookingStrings(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	cfg.SetExtra("version_string", "1.0")

	data, err := cfg.Bytes()
	require.NoError(t, err)

	var parsed map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "1.0", parsed["extra"]["version_string"])
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("site_name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDocsDir, cfg.DocsDir())
	assert.Nil(t, cfg.Nav())

	cfg.SetNav([]*yaml.Node{{Kind: yaml.ScalarNode, Value: "index.md"}})
	require.NotNil(t, cfg.Nav())
	assert.Len(t, cfg.Nav().Content, 1)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Parse([]byte("key: [unclosed\n"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}
