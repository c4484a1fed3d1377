package navfilter

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/mkdocs"
	"gopkg.in/yaml.v3"
)

// EnvHiddenPaths names the environment variable holding hidden prefixes.
const EnvHiddenPaths = "MKDOCS_HIDDEN_NAV_PATHS"

// ParseHidden splits a comma-separated prefix list, trimming entries and
// dropping empty ones.
func ParseHidden(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ShouldHide reports whether item's URL starts with one of the hidden
// prefixes, or whether it is a section whose children are all hidden.
func ShouldHide(item Item, hidden []string) bool {
	if item.URL() != "" {
		url := strings.TrimLeft(item.URL(), "/")
		for _, prefix := range hidden {
			if strings.HasPrefix(url, strings.TrimLeft(prefix, "/")) {
				return true
			}
		}
	}

	children := item.Children()
	if len(children) == 0 {
		return false
	}
	for _, c := range children {
		if !ShouldHide(c, hidden) {
			return false
		}
	}
	return true
}

// Filter removes hidden top-level items. Nested entries are only removed
// together with their section.
func Filter(items []Item, hidden []string) (kept, removed []Item) {
	if len(hidden) == 0 {
		return items, nil
	}
	kept = make([]Item, 0, len(items))
	for _, item := range items {
		if ShouldHide(item, hidden) {
			removed = append(removed, item)
			slog.Info("Hiding navigation item", logfields.Title(DisplayTitle(item)))
			continue
		}
		kept = append(kept, item)
	}
	if len(removed) > 0 {
		slog.Info("Filtered navigation items from sidebar", logfields.Count(len(removed)))
	}
	return kept, removed
}

// DisplayTitle returns the item title, falling back to its URL.
func DisplayTitle(item Item) string {
	if t := item.Title(); t != "" {
		return t
	}
	return item.URL()
}

// ApplyToConfig filters the nav list of cfg in place and returns the removed
// items.
func ApplyToConfig(cfg *mkdocs.Config, hidden []string) []Item {
	items := FromNav(cfg.Nav())
	kept, removed := Filter(items, hidden)
	if len(removed) == 0 {
		return nil
	}

	nodes := make([]*yaml.Node, 0, len(kept))
	for _, item := range kept {
		if n, ok := item.(*NodeItem); ok {
			nodes = append(nodes, n.Node())
		}
	}
	cfg.SetNav(nodes)
	return removed
}
