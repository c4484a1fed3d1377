// Package frontmatter separates YAML frontmatter from Markdown bodies.
//
// Splitting is lenient and byte-preserving: the frontmatter block is kept
// verbatim so a document that is not otherwise modified rejoins to exactly
// the input bytes, and malformed metadata never blocks processing.
package frontmatter

import (
	"bytes"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is a Markdown document split into its frontmatter block and body.
type Document struct {
	// Head is the verbatim frontmatter block, from the opening delimiter line
	// through the closing delimiter line (including its line ending). It is
	// nil when the document has no frontmatter.
	Head []byte
	// Body is everything after Head.
	Body []byte
	// Fields holds the parsed metadata. It is never nil; unparsable YAML
	// yields an empty map.
	Fields map[string]any
}

// Split separates the frontmatter block from the Markdown body.
//
// The document has frontmatter when its first line is a `---` delimiter and
// a later line is also a `---` delimiter (surrounding whitespace ignored).
// Without an opening or closing delimiter the whole input is the body.
func Split(content []byte) Document {
	doc := Document{Body: content, Fields: map[string]any{}}

	firstEnd := bytes.IndexByte(content, '\n')
	if firstEnd < 0 || !isDelimiterLine(content[:firstEnd]) {
		return doc
	}

	pos := firstEnd + 1
	for pos <= len(content) {
		lineEnd := bytes.IndexByte(content[pos:], '\n')
		next := len(content)
		line := content[pos:]
		if lineEnd >= 0 {
			line = content[pos : pos+lineEnd]
			next = pos + lineEnd + 1
		}

		if isDelimiterLine(line) {
			fields, err := ParseYAML(content[firstEnd+1 : pos])
			if err != nil {
				fields = map[string]any{}
			}
			return Document{Head: content[:next], Body: content[next:], Fields: fields}
		}

		if lineEnd < 0 {
			break
		}
		pos = next
	}

	return doc
}

// HasFrontmatter reports whether the document carried a frontmatter block.
func (d Document) HasFrontmatter() bool {
	return d.Head != nil
}

// Join reassembles a document from its verbatim head and a (possibly
// rewritten) body.
func Join(head, body []byte) []byte {
	if len(head) == 0 {
		return body
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head...)
	out = append(out, body...)
	return out
}

// Bytes rejoins the document.
func (d Document) Bytes() []byte {
	return Join(d.Head, d.Body)
}

// Flag reports whether a frontmatter field is set to a truthy value.
//
// Booleans are used as-is, strings are parsed leniently ("true", "yes", "on",
// "1"), numbers are truthy when non-zero. Missing keys are false.
func (d Document) Flag(key string) bool {
	switch v := d.Fields[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "on", "y":
			return true
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func isDelimiterLine(line []byte) bool {
	return string(bytes.TrimSpace(line)) == delimiter
}
