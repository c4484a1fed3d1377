package inject

import (
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/normalization"
	"git.home.luguber.info/inful/docfoundry/internal/partials"
)

// Scheme names the sentinel comments that delimit injected blocks.
type Scheme struct {
	Name        string
	HeaderStart string
	HeaderEnd   string
	FooterStart string
	FooterEnd   string
	// NestedOpen is the prefix shared by every start marker that closes with
	// the same end marker. Blocks opened by it inside a header or footer
	// block are skipped when looking for that block's end.
	NestedOpen string
	// LegacyHeaderSentinels are extra strings whose presence means the body
	// already carries a header.
	LegacyHeaderSentinels []string
}

const (
	SchemePartialName = "partial"
	SchemeHookName    = "hook"
)

const (
	autoStartPrefix = "<!-- Auto-injected global partial: "
	autoEnd         = "<!-- End auto-injected global partial -->"
)

// PartialScheme marks blocks with the partial file they came from. Its
// markers differ from the ones manual placeholders expand to, so stripping
// never touches a block the author placed.
var PartialScheme = Scheme{
	Name:        SchemePartialName,
	HeaderStart: autoStartPrefix + partials.HeaderFile + " -->",
	HeaderEnd:   autoEnd,
	FooterStart: autoStartPrefix + partials.FooterFile + " -->",
	FooterEnd:   autoEnd,
	NestedOpen:  autoStartPrefix,
}

// HookScheme is the convention used by pages rendered through the older
// build hook.
var HookScheme = Scheme{
	Name:                  SchemeHookName,
	HeaderStart:           "<!-- global-header -->",
	HeaderEnd:             "<!-- /global-header -->",
	FooterStart:           "<!-- global-footer -->",
	FooterEnd:             "<!-- /global-footer -->",
	LegacyHeaderSentinels: []string{"AI-Generated Content"},
}

var schemeNormalizer = normalization.NewNormalizer("marker scheme", map[string]string{
	SchemePartialName: SchemePartialName,
	SchemeHookName:    SchemeHookName,
}, SchemePartialName)

// SchemeNames lists the accepted scheme names.
func SchemeNames() []string { return schemeNormalizer.ValidKeys() }

// SchemeNamed returns the scheme called name. An empty name selects the
// partial scheme.
func SchemeNamed(name string) (Scheme, error) {
	n, err := schemeNormalizer.NormalizeWithError(name)
	if err != nil {
		return Scheme{}, err
	}
	if n == SchemeHookName {
		return HookScheme, nil
	}
	return PartialScheme, nil
}

// WithLegacySentinels returns a copy of s that also treats each non-empty
// sentinel as an existing header.
func (s Scheme) WithLegacySentinels(sentinels ...string) Scheme {
	merged := make([]string, 0, len(s.LegacyHeaderSentinels)+len(sentinels))
	merged = append(merged, s.LegacyHeaderSentinels...)
	for _, v := range sentinels {
		if strings.TrimSpace(v) != "" {
			merged = append(merged, v)
		}
	}
	s.LegacyHeaderSentinels = merged
	return s
}

// HasHeader reports whether body already contains a header block, places
// the header partial by hand, or carries one of the legacy sentinels.
func (s Scheme) HasHeader(body string) bool {
	if strings.Contains(body, s.HeaderStart) || partials.Places(body, partials.HeaderName) {
		return true
	}
	for _, v := range s.LegacyHeaderSentinels {
		if strings.Contains(body, v) {
			return true
		}
	}
	return false
}

// HasFooter reports whether body already contains a footer block or places
// the footer partial by hand.
func (s Scheme) HasFooter(body string) bool {
	return strings.Contains(body, s.FooterStart) || partials.Places(body, partials.FooterName)
}

// HeaderBlock wraps content in the header markers.
func (s Scheme) HeaderBlock(content string) string {
	return s.HeaderStart + "\n" + content + "\n" + s.HeaderEnd
}

// FooterBlock wraps content in the footer markers.
func (s Scheme) FooterBlock(content string) string {
	return s.FooterStart + "\n" + content + "\n" + s.FooterEnd
}

// Strip removes every header and footer block together with the blank-line
// separators the injectors put around them.
func Strip(body string, s Scheme) string {
	body = stripBlocks(body, s.HeaderStart, s.HeaderEnd, s.NestedOpen)
	return stripBlocks(body, s.FooterStart, s.FooterEnd, s.NestedOpen)
}

func stripBlocks(body, start, end, nestedOpen string) string {
	if start == "" || end == "" {
		return body
	}
	for {
		s := strings.Index(body, start)
		if s < 0 {
			return body
		}
		e := blockEnd(body, s+len(start), end, nestedOpen)
		if e < 0 {
			return body
		}

		from, to := s, e
		if s == 0 {
			to += countLeading(body[e:], '\n', 2)
		} else {
			from -= countTrailing(body[:s], '\n', 2)
			to += countLeading(body[e:], '\n', 1)
		}
		body = body[:from] + body[to:]
	}
}

// blockEnd returns the offset just past the end marker closing a block whose
// content starts at from, or -1 when the block is unterminated.
func blockEnd(body string, from int, end, nestedOpen string) int {
	depth := 1
	i := from
	for {
		e := strings.Index(body[i:], end)
		if e < 0 {
			return -1
		}
		if nestedOpen != "" {
			if o := strings.Index(body[i:], nestedOpen); o >= 0 && o < e {
				depth++
				i += o + len(nestedOpen)
				continue
			}
		}
		depth--
		i += e + len(end)
		if depth == 0 {
			return i
		}
	}
}

func countLeading(s string, c byte, limit int) int {
	n := 0
	for n < limit && n < len(s) && s[n] == c {
		n++
	}
	return n
}

func countTrailing(s string, c byte, limit int) int {
	n := 0
	for n < limit && n < len(s) && s[len(s)-1-n] == c {
		n++
	}
	return n
}
