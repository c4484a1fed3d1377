package refgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func tree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# python\n"), 0o644))
	}
	return root
}

func modules(pages []Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Module()+" -> "+p.DocPath)
	}
	return out
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "package with module",
			files: []string{"pkg/__init__.py", "pkg/mod.py"},
			want:  []string{"pkg -> pkg/index.md", "pkg.mod -> pkg/mod.md"},
		},
		{
			name:  "missing __init__ ancestor excludes the file",
			files: []string{"pkg/__init__.py", "pkg/sub/mod.py", "pkg/ok.py"},
			want:  []string{"pkg -> pkg/index.md", "pkg.ok -> pkg/ok.md"},
		},
		{
			name:  "private modules and packages are skipped",
			files: []string{"pkg/__init__.py", "pkg/_internal.py", "pkg/_priv/__init__.py", "pkg/_priv/x.py"},
			want:  []string{"pkg -> pkg/index.md"},
		},
		{
			name:  "pycache and non-python files are ignored",
			files: []string{"pkg/__init__.py", "pkg/__pycache__/mod.py", "pkg/data.json"},
			want:  []string{"pkg -> pkg/index.md"},
		},
		{
			name:  "top-level module and bare root __init__",
			files: []string{"__init__.py", "tool.py"},
			want:  []string{"tool -> tool.md"},
		},
		{
			name:  "nested packages",
			files: []string{"a/__init__.py", "a/b/__init__.py", "a/b/c.py"},
			want:  []string{"a -> a/index.md", "a.b -> a/b/index.md", "a.b.c -> a/b/c.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := Discover(tree(t, tt.files...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, modules(pages))
		})
	}
}

func TestDiscover_RelativeRoot(t *testing.T) {
	t.Chdir(tree(t, "a/__init__.py", "a/m.py", "b/x.py"))

	pages, err := Discover(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"a -> a/index.md", "a.m -> a/m.md"}, modules(pages))
}

func TestIsPackageModule(t *testing.T) {
	root := tree(t, "a/__init__.py", "a/m.py", "b/x.py")

	assert.True(t, isPackageModule(root, filepath.Join(root, "a", "m.py")))
	assert.True(t, isPackageModule(root, filepath.Join(root, "top.py")))
	assert.False(t, isPackageModule(root, filepath.Join(root, "b", "x.py")))
	assert.False(t, isPackageModule(filepath.Join(root, "a"), filepath.Join(root, "b", "x.py")))
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestNav_Literate(t *testing.T) {
	nav := BuildNav([]Page{
		{Parts: []string{"pkg"}, DocPath: "pkg/index.md"},
		{Parts: []string{"pkg", "mod"}, DocPath: "pkg/mod.md"},
		{Parts: []string{"other", "deep", "leaf"}, DocPath: "other/deep/leaf.md"},
	})

	assert.Equal(t,
		"* [pkg](pkg/index.md)\n"+
			"    * [mod](pkg/mod.md)\n"+
			"* other\n"+
			"    * deep\n"+
			"        * [leaf](other/deep/leaf.md)\n",
		nav.Literate())
}

func TestNav_YAML(t *testing.T) {
	nav := BuildNav([]Page{
		{Parts: []string{"pkg"}, DocPath: "pkg/index.md"},
		{Parts: []string{"pkg", "mod"}, DocPath: "pkg/mod.md"},
	})

	data, err := nav.YAML("reference")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, []map[string]any{
		{"pkg": []any{
			"reference/pkg/index.md",
			map[string]any{"mod": "reference/pkg/mod.md"},
		}},
	}, got)
}

func TestGenerator_Generate(t *testing.T) {
	src := tree(t, "pkg/__init__.py", "pkg/mod.py", "lonely/mod.py")
	docs := t.TempDir()
	rec := metrics.NewPrometheusRecorder(nil)

	g := NewGenerator(docs, WithNavYAML(true), WithRecorder(rec))
	res, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, res.Pages, 2)
	assert.Equal(t, 2, res.Written)

	out := filepath.Join(docs, DefaultAPIDir)
	index, err := os.ReadFile(filepath.Join(out, "pkg", "index.md"))
	require.NoError(t, err)
	assert.Equal(t, "::: pkg\n", string(index))

	mod, err := os.ReadFile(filepath.Join(out, "pkg", "mod.md"))
	require.NoError(t, err)
	assert.Equal(t, "::: pkg.mod\n", string(mod))

	summary, err := os.ReadFile(res.Summary)
	require.NoError(t, err)
	assert.Equal(t, "* [pkg](pkg/index.md)\n    * [mod](pkg/mod.md)\n", string(summary))

	assert.FileExists(t, filepath.Join(out, NavYAMLFile))
	assert.NoDirExists(t, filepath.Join(out, "lonely"))
	expected := `
# HELP docfoundry_reference_pages_total Reference pages written by the generator
# TYPE docfoundry_reference_pages_total counter
docfoundry_reference_pages_total 2
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "docfoundry_reference_pages_total"))
}

func TestGenerator_SecondRunWritesNothing(t *testing.T) {
	src := tree(t, "pkg/__init__.py", "pkg/mod.py")
	docs := t.TempDir()
	g := NewGenerator(docs, WithAPIDir("api"))

	_, err := g.Generate(context.Background(), src)
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Zero(t, res.Written)
	assert.Equal(t, filepath.Join(docs, "api"), g.OutputDir())
	assert.NoFileExists(t, filepath.Join(docs, "api", NavYAMLFile))
}

func TestGenerator_LeavesHandWrittenFiles(t *testing.T) {
	src := tree(t, "pkg/__init__.py")
	docs := t.TempDir()
	manual := filepath.Join(docs, DefaultAPIDir, "guide.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(manual), 0o755))
	require.NoError(t, os.WriteFile(manual, []byte("hand written"), 0o644))

	_, err := NewGenerator(docs).Generate(context.Background(), src)
	require.NoError(t, err)

	data, err := os.ReadFile(manual)
	require.NoError(t, err)
	assert.Equal(t, "hand written", string(data))
}

func TestResolveSourceRoot(t *testing.T) {
	cfg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cfg, "src"), 0o755))

	got, ok := ResolveSourceRoot(cfg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cfg, "src"), got)

	_, ok = ResolveSourceRoot(filepath.Join(cfg, "missing"))
	if _, err := os.Stat("src"); err != nil {
		assert.False(t, ok)
	}
}
