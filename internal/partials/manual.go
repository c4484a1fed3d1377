package partials

import (
	"regexp"
	"strings"
)

// placeholderPattern matches `{{ global('name') }}` with either quote style.
var placeholderPattern = regexp.MustCompile(`\{\{\s*global\(['"]([^'"]+)['"]\)\s*\}\}`)

// EndMarker closes every block produced from a named partial.
const EndMarker = "<!-- End global partial -->"

// StartMarker is the comment line that opens a block injected from filename.
func StartMarker(filename string) string {
	return "<!-- Injected from global partial: " + filename + " -->"
}

// Wrap surrounds content with the start/end markers for filename.
func Wrap(filename, content string) string {
	return StartMarker(filename) + "\n" + content + "\n" + EndMarker
}

// Places reports whether body places the partial called name by hand, as a
// placeholder or as a block an earlier run expanded.
func Places(body, name string) bool {
	if strings.Contains(body, StartMarker(FilenameFor(name))) {
		return true
	}
	for _, m := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		if m[1] == name {
			return true
		}
	}
	return false
}

// Warning describes a placeholder that could not be expanded.
type Warning struct {
	Name string
	Path string
	// Err is set when the partial exists but could not be read.
	Err error
}

// WarnFunc receives one call per unexpanded placeholder occurrence.
type WarnFunc func(Warning)

// Expand replaces every placeholder in body with the wrapped content of the
// named partial and returns the names that were expanded, in order.
//
// Placeholders whose partial is missing or unreadable are left verbatim and
// reported through warn. Partial content is inserted literally.
func Expand(body string, r *Resolver, warn WarnFunc) (string, []string) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body, nil
	}

	var (
		b        strings.Builder
		expanded []string
		last     int
	)
	b.Grow(len(body))

	for _, m := range matches {
		start, end := m[0], m[1]
		name := body[m[2]:m[3]]
		filename := FilenameFor(name)

		b.WriteString(body[last:start])
		last = end

		p, err := r.Lookup(filename)
		if err != nil || !p.Found {
			if warn != nil {
				warn(Warning{Name: name, Path: p.Path, Err: err})
			}
			b.WriteString(body[start:end])
			continue
		}

		b.WriteString(Wrap(filename, p.Content))
		expanded = append(expanded, name)
	}
	b.WriteString(body[last:])

	return b.String(), expanded
}
