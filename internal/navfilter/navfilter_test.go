package navfilter

import (
	"testing"

	"git.home.luguber.info/inful/docfoundry/internal/mkdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stubItem struct {
	url      string
	title    string
	children []Item
}

func (s stubItem) URL() string      { return s.url }
func (s stubItem) Title() string    { return s.title }
func (s stubItem) Children() []Item { return s.children }

func TestParseHidden(t *testing.T) {
	assert.Equal(t, []string{"internal/", "/drafts"}, ParseHidden(" internal/ ,, /drafts ,"))
	assert.Nil(t, ParseHidden(""))
	assert.Nil(t, ParseHidden(" , "))
}

func TestShouldHide(t *testing.T) {
	hidden := []string{"/internal/"}

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"prefix match", stubItem{url: "/internal/notes/"}, true},
		{"prefix match without slash", stubItem{url: "internal/a/"}, true},
		{"other page", stubItem{url: "guides/"}, false},
		{"no url no children", stubItem{title: "Empty"}, false},
		{
			"section with all children hidden",
			stubItem{title: "S", children: []Item{stubItem{url: "internal/a/"}, stubItem{url: "internal/b/"}}},
			true,
		},
		{
			"section with a visible child",
			stubItem{title: "S", children: []Item{stubItem{url: "internal/a/"}, stubItem{url: "guides/"}}},
			false,
		},
		{
			"nested sections",
			stubItem{title: "S", children: []Item{stubItem{title: "T", children: []Item{stubItem{url: "internal/x/"}}}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldHide(tt.item, hidden))
		})
	}
}

func TestFilter_TopLevelOnly(t *testing.T) {
	items := []Item{
		stubItem{title: "Home", url: ""},
		stubItem{title: "Internal", url: "internal/"},
		stubItem{title: "Mixed", children: []Item{stubItem{url: "internal/a/"}, stubItem{url: "guides/"}}},
	}

	kept, removed := Filter(items, []string{"internal"})
	require.Len(t, removed, 1)
	assert.Equal(t, "Internal", removed[0].Title())
	require.Len(t, kept, 2)
	assert.Len(t, kept[1].Children(), 2, "nested entries stay when the section survives")

	kept, removed = Filter(items, nil)
	assert.Equal(t, items, kept)
	assert.Nil(t, removed)
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "T", DisplayTitle(stubItem{title: "T", url: "u/"}))
	assert.Equal(t, "u/", DisplayTitle(stubItem{url: "u/"}))
}

func TestFromNav(t *testing.T) {
	var seq yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
- index.md
- Guides:
    - guides/index.md
    - Setup: guides/setup.md
- GitHub: https://github.com/example
`), &seq))

	items := FromNav(seq.Content[0])
	require.Len(t, items, 3)
	assert.Equal(t, "", items[0].URL())
	assert.Equal(t, "Guides", items[1].Title())
	require.Len(t, items[1].Children(), 2)
	assert.Equal(t, "guides/", items[1].Children()[0].URL())
	assert.Equal(t, "guides/setup/", items[1].Children()[1].URL())
	assert.Equal(t, "https://github.com/example", items[2].URL())
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := mkdocs.Parse([]byte(`site_name: x
nav:
  - Home: index.md
  - Internal:
      - internal/a.md
      - internal/b.md
  - Guides: guides/index.md
`))
	require.NoError(t, err)

	removed := ApplyToConfig(cfg, []string{"internal/"})
	require.Len(t, removed, 1)
	assert.Equal(t, "Internal", removed[0].Title())

	data, err := cfg.Bytes()
	require.NoError(t, err)
	var parsed struct {
		Nav []map[string]string `yaml:"nav"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, []map[string]string{{"Home": "index.md"}, {"Guides": "guides/index.md"}}, parsed.Nav)
}

func TestApplyToConfig_NothingHidden(t *testing.T) {
	cfg, err := mkdocs.Parse([]byte("nav:\n  - index.md\n"))
	require.NoError(t, err)
	assert.Nil(t, ApplyToConfig(cfg, []string{"internal/"}))
	assert.Nil(t, ApplyToConfig(cfg, nil))
	assert.Len(t, cfg.Nav().Content, 1)
}
