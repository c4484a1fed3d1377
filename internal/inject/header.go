package inject

import (
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/normalization"
	"git.home.luguber.info/inful/docfoundry/internal/markdown"
)

// MissingHeading decides what Header does with a body that has no top-level
// heading.
type MissingHeading int

const (
	// SkipMissingHeading leaves headingless bodies untouched.
	SkipMissingHeading MissingHeading = iota
	// PrependMissingHeading puts the header at the very top.
	PrependMissingHeading
)

var missingHeadingNormalizer = normalization.NewNormalizer("missing-heading policy", map[string]MissingHeading{
	"skip":    SkipMissingHeading,
	"prepend": PrependMissingHeading,
}, SkipMissingHeading)

// ParseMissingHeading converts "skip" or "prepend". Empty input is skip.
func ParseMissingHeading(raw string) (MissingHeading, error) {
	return missingHeadingNormalizer.NormalizeWithError(raw)
}

func (m MissingHeading) String() string {
	if m == PrependMissingHeading {
		return "prepend"
	}
	return "skip"
}

// HeaderOptions control a single header injection.
type HeaderOptions struct {
	Scheme           Scheme
	Skip             bool
	OnMissingHeading MissingHeading
}

// Header inserts the header block after the first top-level heading and its
// description line, if any. It reports whether the body was modified.
func Header(body, content string, opts HeaderOptions) (string, bool) {
	if content == "" || opts.Skip || opts.Scheme.HasHeader(body) {
		return body, false
	}
	block := opts.Scheme.HeaderBlock(content)

	h, ok := markdown.FirstTopHeading([]byte(body))
	if !ok {
		if opts.OnMissingHeading == PrependMissingHeading {
			return block + "\n\n" + body, true
		}
		return body, false
	}

	pos := insertionPoint(body, h.LineEnd)
	return body[:pos] + "\n\n" + block + "\n" + body[pos:], true
}

// insertionPoint moves past the line following the heading when it is a
// plain description line rather than another heading.
func insertionPoint(body string, headingEnd int) int {
	pos := headingEnd
	lines := strings.Split(body[headingEnd:], "\n")
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			pos += len(strings.Join(lines[:i+1], "\n")) + 1
			if pos > len(body) {
				pos = len(body)
			}
		}
		break
	}
	return pos
}
