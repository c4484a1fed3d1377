// Package navfilter hides navigation entries by URL prefix.
package navfilter

import (
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is a navigation entry: a page, a link or a section.
type Item interface {
	URL() string
	Title() string
	Children() []Item
}

// NodeItem is an Item backed by an entry of the mkdocs.yml nav list.
type NodeItem struct {
	node     *yaml.Node
	title    string
	url      string
	children []Item
}

func (n *NodeItem) URL() string      { return n.url }
func (n *NodeItem) Title() string    { return n.title }
func (n *NodeItem) Children() []Item { return n.children }

// Node returns the YAML node the item was read from.
func (n *NodeItem) Node() *yaml.Node { return n.node }

// FromNav converts a nav sequence into items. Entries of unknown shape are
// kept as items with no URL and no children.
func FromNav(seq *yaml.Node) []Item {
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]Item, 0, len(seq.Content))
	for _, entry := range seq.Content {
		items = append(items, newNodeItem(entry))
	}
	return items
}

func newNodeItem(entry *yaml.Node) *NodeItem {
	item := &NodeItem{node: entry}
	switch entry.Kind {
	case yaml.ScalarNode:
		item.url = pageURL(entry.Value)
	case yaml.MappingNode:
		if len(entry.Content) < 2 {
			break
		}
		item.title = entry.Content[0].Value
		value := entry.Content[1]
		switch value.Kind {
		case yaml.ScalarNode:
			item.url = pageURL(value.Value)
		case yaml.SequenceNode:
			item.children = FromNav(value)
		}
	}
	return item
}

// pageURL maps a docs-relative Markdown path to the URL MkDocs serves it at
// with directory URLs enabled. Links are returned unchanged.
func pageURL(p string) string {
	if strings.Contains(p, "://") || !strings.HasSuffix(p, ".md") {
		return p
	}
	p = strings.TrimSuffix(p, ".md")
	base := path.Base(p)
	if strings.EqualFold(base, "index") || strings.EqualFold(base, "README") {
		dir := path.Dir(p)
		if dir == "." {
			return ""
		}
		return dir + "/"
	}
	return p + "/"
}
