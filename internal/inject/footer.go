package inject

import "strings"

// FooterOptions control a single footer injection.
type FooterOptions struct {
	Scheme Scheme
	Skip   bool
}

// Footer appends the footer block after trimming trailing whitespace. It
// reports whether the body was modified.
func Footer(body, content string, opts FooterOptions) (string, bool) {
	if content == "" || opts.Skip || opts.Scheme.HasFooter(body) {
		return body, false
	}
	return strings.TrimRight(body, " \t\r\n") + "\n\n" + opts.Scheme.FooterBlock(content), true
}
