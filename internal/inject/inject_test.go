package inject

import (
	"strings"
	"testing"

	"git.home.luguber.info/inful/docfoundry/internal/partials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerBlock(content string) string {
	return PartialScheme.HeaderBlock(content)
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		opts    HeaderOptions
		want    string
		changed bool
	}{
		{
			name:    "after description line",
			body:    "# Title\nSome desc\n\nBody text",
			opts:    HeaderOptions{Scheme: PartialScheme},
			want:    "# Title\nSome desc\n\n\n" + headerBlock("H") + "\n\nBody text",
			changed: true,
		},
		{
			name:    "directly after heading when a subheading follows",
			body:    "# Title\n\n## Usage\ntext\n",
			opts:    HeaderOptions{Scheme: PartialScheme},
			want:    "# Title\n\n" + headerBlock("H") + "\n\n\n## Usage\ntext\n",
			changed: true,
		},
		{
			name:    "heading is last line",
			body:    "# Title",
			opts:    HeaderOptions{Scheme: PartialScheme},
			want:    "# Title\n\n" + headerBlock("H") + "\n",
			changed: true,
		},
		{
			name:    "description is last line",
			body:    "# Title\ndesc",
			opts:    HeaderOptions{Scheme: PartialScheme},
			want:    "# Title\ndesc\n\n" + headerBlock("H") + "\n",
			changed: true,
		},
		{
			name:    "heading inside fenced code is ignored",
			body:    "```\n# not a heading\n```\n\n# Real\n",
			opts:    HeaderOptions{Scheme: PartialScheme},
			want:    "```\n# not a heading\n```\n\n# Real\n\n" + headerBlock("H") + "\n\n",
			changed: true,
		},
		{
			name: "no heading skips",
			body: "plain text\n",
			opts: HeaderOptions{Scheme: PartialScheme},
			want: "plain text\n",
		},
		{
			name:    "no heading prepends when asked",
			body:    "plain text\n",
			opts:    HeaderOptions{Scheme: PartialScheme, OnMissingHeading: PrependMissingHeading},
			want:    headerBlock("H") + "\n\nplain text\n",
			changed: true,
		},
		{
			name: "opt out",
			body: "# Title\n",
			opts: HeaderOptions{Scheme: PartialScheme, Skip: true},
			want: "# Title\n",
		},
		{
			name: "existing marker",
			body: "# Title\n\n" + headerBlock("old") + "\n",
			opts: HeaderOptions{Scheme: PartialScheme},
			want: "# Title\n\n" + headerBlock("old") + "\n",
		},
		{
			name: "manual header placeholder",
			body: "# Title\n\n{{ global('global_header') }}\n\ntext\n",
			opts: HeaderOptions{Scheme: PartialScheme},
			want: "# Title\n\n{{ global('global_header') }}\n\ntext\n",
		},
		{
			name: "expanded manual header",
			body: "# Title\n\n" + partials.Wrap(partials.HeaderFile, "H") + "\n\ntext\n",
			opts: HeaderOptions{Scheme: HookScheme},
			want: "# Title\n\n" + partials.Wrap(partials.HeaderFile, "H") + "\n\ntext\n",
		},
		{
			name: "legacy sentinel",
			body: "# Title\n\n> AI-Generated Content\n",
			opts: HeaderOptions{Scheme: HookScheme},
			want: "# Title\n\n> AI-Generated Content\n",
		},
		{
			name: "configured sentinel",
			body: "# Title\n\nDraft banner\n",
			opts: HeaderOptions{Scheme: PartialScheme.WithLegacySentinels("Draft banner", " ")},
			want: "# Title\n\nDraft banner\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Header(tt.body, "H", tt.opts)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestHeader_EmptyContentIsNoop(t *testing.T) {
	got, changed := Header("# Title\n", "", HeaderOptions{Scheme: PartialScheme, OnMissingHeading: PrependMissingHeading})
	assert.Equal(t, "# Title\n", got)
	assert.False(t, changed)
}

func TestFooter(t *testing.T) {
	got, changed := Footer("# Title\n\ntext  \n\n\n", "F", FooterOptions{Scheme: PartialScheme})
	assert.True(t, changed)
	assert.Equal(t, "# Title\n\ntext\n\n"+PartialScheme.FooterBlock("F"), got)

	again, changed := Footer(got, "F", FooterOptions{Scheme: PartialScheme})
	assert.False(t, changed)
	assert.Equal(t, got, again)

	skipped, changed := Footer("text\n", "F", FooterOptions{Scheme: PartialScheme, Skip: true})
	assert.False(t, changed)
	assert.Equal(t, "text\n", skipped)

	empty, changed := Footer("text\n", "", FooterOptions{Scheme: PartialScheme})
	assert.False(t, changed)
	assert.Equal(t, "text\n", empty)

	manual, changed := Footer("text\n\n{{ global(\"global_footer\") }}\n", "F", FooterOptions{Scheme: PartialScheme})
	assert.False(t, changed)
	assert.Equal(t, "text\n\n{{ global(\"global_footer\") }}\n", manual)
}

func TestStrip_KeepsManualHeaderAndFooterBlocks(t *testing.T) {
	body := "# A\n\n" + partials.Wrap(partials.HeaderFile, "H") + "\n\ntext\n\n" + partials.Wrap(partials.FooterFile, "F")
	for _, scheme := range []Scheme{PartialScheme, HookScheme} {
		assert.Equal(t, body, Strip(body, scheme), scheme.Name)
	}
}

func TestStrip_RestoresBodyBeforeHeader(t *testing.T) {
	bodies := []string{
		"# Title\nSome desc\n\nBody text",
		"# Title\n\n## Usage\n",
		"# Title",
		"# Title\ndesc",
		"\n\nplain text\n",
		"",
	}

	for _, scheme := range []Scheme{PartialScheme, HookScheme} {
		for _, body := range bodies {
			withHeader, _ := Header(body, "Shared header\n\nwith paragraphs", HeaderOptions{
				Scheme:           scheme,
				OnMissingHeading: PrependMissingHeading,
			})
			assert.Equal(t, body, Strip(withHeader, scheme), "scheme %s body %q", scheme.Name, body)
		}
	}
}

func TestStrip_FooterAndMultipleBlocks(t *testing.T) {
	body := "# A\n\n" + headerBlock("one") + "\n\ntext\n\n" + headerBlock("two") + "\n\nmore\n\n" +
		PartialScheme.FooterBlock("F")
	assert.Equal(t, "# A\ntext\nmore", Strip(body, PartialScheme))
}

func TestStrip_SkipsNestedManualBlocks(t *testing.T) {
	nested := "Header text " + "<!-- Injected from global partial: _badge.md -->\nbadge\n<!-- End global partial -->"
	body := "# A\n\n" + headerBlock(nested) + "\n\nrest\n"
	assert.Equal(t, "# A\nrest\n", Strip(body, PartialScheme))
}

func TestStrip_LeavesUnterminatedBlock(t *testing.T) {
	body := "# A\n\n" + PartialScheme.HeaderStart + "\ndangling\n"
	assert.Equal(t, body, Strip(body, PartialScheme))
}

func TestStrip_OtherSchemeUntouched(t *testing.T) {
	body := "# A\n\n" + HookScheme.HeaderBlock("H") + "\n\ntext\n"
	assert.Equal(t, body, Strip(body, PartialScheme))
}

func TestSchemeNamed(t *testing.T) {
	s, err := SchemeNamed("")
	require.NoError(t, err)
	assert.Equal(t, SchemePartialName, s.Name)

	s, err = SchemeNamed(" HOOK ")
	require.NoError(t, err)
	assert.Equal(t, SchemeHookName, s.Name)

	_, err = SchemeNamed("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook, partial")
}

func TestParseMissingHeading(t *testing.T) {
	m, err := ParseMissingHeading("prepend")
	require.NoError(t, err)
	assert.Equal(t, PrependMissingHeading, m)
	assert.Equal(t, "prepend", m.String())

	m, err = ParseMissingHeading("")
	require.NoError(t, err)
	assert.Equal(t, SkipMissingHeading, m)

	_, err = ParseMissingHeading("append")
	assert.Error(t, err)
}

func TestWithLegacySentinels_DoesNotAliasBase(t *testing.T) {
	extended := HookScheme.WithLegacySentinels("x")
	assert.Len(t, extended.LegacyHeaderSentinels, 2)
	assert.Len(t, HookScheme.LegacyHeaderSentinels, 1)
	assert.False(t, strings.Contains(strings.Join(PartialScheme.LegacyHeaderSentinels, ""), "x"))
}
