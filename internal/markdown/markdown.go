// Package markdown provides small structural queries over Markdown bodies
// backed by the goldmark CommonMark parser.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading describes an ATX heading line located in a Markdown body.
type Heading struct {
	Level int
	// LineStart and LineEnd are byte offsets of the heading line; LineEnd
	// excludes the line terminator.
	LineStart int
	LineEnd   int
	Text      string
}

// ParseBody parses a Markdown body (frontmatter already removed) into a goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// FirstTopHeading returns the first level-one heading written as a line that
// starts with "# " followed by text.
//
// Headings inside fenced or indented code, block quotes and lists are not
// considered, and neither are setext (`===` underlined) headings.
func FirstTopHeading(body []byte) (Heading, bool) {
	root := ParseBody(body)

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 || h.Lines().Len() == 0 {
			continue
		}

		seg := h.Lines().At(0)
		lineStart := bytes.LastIndexByte(body[:seg.Start], '\n') + 1
		if !bytes.HasPrefix(body[lineStart:], []byte("# ")) {
			continue
		}

		lineEnd := len(body)
		if i := bytes.IndexByte(body[seg.Start:], '\n'); i >= 0 {
			lineEnd = seg.Start + i
		}
		if lineEnd > lineStart && body[lineEnd-1] == '\r' {
			lineEnd--
		}

		return Heading{
			Level:     1,
			LineStart: lineStart,
			LineEnd:   lineEnd,
			Text:      string(seg.Value(body)),
		}, true
	}

	return Heading{}, false
}
