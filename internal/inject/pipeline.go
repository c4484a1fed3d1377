package inject

import (
	"bytes"
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/frontmatter"
	"git.home.luguber.info/inful/docfoundry/internal/partials"
)

// Frontmatter flags that opt a document out of auto-injection.
const (
	SkipHeaderKey = "skip_global_header"
	SkipFooterKey = "skip_global_footer"
)

// Change labels reported for a rewritten document.
const (
	ChangeHeader       = "auto-inject header"
	ChangeFooter       = "auto-inject footer"
	changeManualPrefix = "manual inject: "
)

// Pipeline applies strip, header, footer and manual substitution to whole
// documents. The zero value only strips.
type Pipeline struct {
	Partials         partials.Set
	Scheme           Scheme
	OnMissingHeading MissingHeading
	// Resolver serves manual placeholders; nil disables them.
	Resolver *partials.Resolver
	Warn     partials.WarnFunc
}

// Result is the outcome of processing one document.
type Result struct {
	Content []byte
	Changes []string
	Changed bool
}

// Apply processes a complete document. The frontmatter block is carried over
// byte for byte.
func (p Pipeline) Apply(content []byte) Result {
	doc := frontmatter.Split(content)
	original := string(doc.Body)
	scheme := p.scheme()

	body := Strip(original, scheme)
	var changes []string

	body, injected := Header(body, p.Partials.Header, HeaderOptions{
		Scheme:           scheme,
		Skip:             doc.Flag(SkipHeaderKey),
		OnMissingHeading: p.OnMissingHeading,
	})
	if injected && !strings.Contains(original, scheme.HeaderBlock(p.Partials.Header)) {
		changes = append(changes, ChangeHeader)
	}

	body, injected = Footer(body, p.Partials.Footer, FooterOptions{
		Scheme: scheme,
		Skip:   doc.Flag(SkipFooterKey),
	})
	if injected && !strings.Contains(original, scheme.FooterBlock(p.Partials.Footer)) {
		changes = append(changes, ChangeFooter)
	}

	if p.Resolver != nil {
		var names []string
		body, names = partials.Expand(body, p.Resolver, p.Warn)
		if len(names) > 0 {
			changes = append(changes, ManualChange(names))
		}
	}

	out := frontmatter.Join(doc.Head, []byte(body))
	return Result{
		Content: out,
		Changes: changes,
		Changed: !bytes.Equal(out, content),
	}
}

func (p Pipeline) scheme() Scheme {
	if p.Scheme.HeaderStart == "" {
		return PartialScheme
	}
	return p.Scheme
}

// ManualChange formats the change label for expanded placeholders.
func ManualChange(names []string) string {
	return changeManualPrefix + strings.Join(names, ", ")
}
