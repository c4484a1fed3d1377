package refgen

import (
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Nav is a tree of reference pages keyed by module path segments. Children
// keep insertion order.
type Nav struct {
	root navNode
}

type navNode struct {
	title    string
	page     string
	children []*navNode
	byTitle  map[string]*navNode
}

// BuildNav builds the navigation tree for pages.
func BuildNav(pages []Page) *Nav {
	n := &Nav{}
	for _, p := range pages {
		n.Add(p.Parts, p.DocPath)
	}
	return n
}

// Add registers page under the given segments, creating intermediate
// sections as needed.
func (n *Nav) Add(parts []string, page string) {
	cur := &n.root
	for _, part := range parts {
		cur = cur.child(part)
	}
	cur.page = page
}

func (n *navNode) child(title string) *navNode {
	if c, ok := n.byTitle[title]; ok {
		return c
	}
	if n.byTitle == nil {
		n.byTitle = map[string]*navNode{}
	}
	c := &navNode{title: title}
	n.byTitle[title] = c
	n.children = append(n.children, c)
	return c
}

// Literate renders the tree as a literate-nav bullet list. Sections without
// their own page are plain titles.
func (n *Nav) Literate() string {
	var b strings.Builder
	var walk func(nodes []*navNode, depth int)
	walk = func(nodes []*navNode, depth int) {
		for _, c := range nodes {
			b.WriteString(strings.Repeat("    ", depth))
			b.WriteString("* ")
			if c.page != "" {
				b.WriteString("[" + c.title + "](" + c.page + ")")
			} else {
				b.WriteString(c.title)
			}
			b.WriteString("\n")
			walk(c.children, depth+1)
		}
	}
	walk(n.root.children, 0)
	return b.String()
}

// YAML renders the tree as an MkDocs `nav:` fragment. Page paths are
// prefixed with base, the output directory relative to the docs directory.
func (n *Nav) YAML(base string) ([]byte, error) {
	return yaml.Marshal(yamlSeq(n.root.children, base))
}

func yamlSeq(nodes []*navNode, base string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range nodes {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: c.title}
		var value *yaml.Node
		if len(c.children) == 0 {
			value = &yaml.Node{Kind: yaml.ScalarNode, Value: path.Join(base, c.page)}
		} else {
			value = yamlSeq(c.children, base)
			if c.page != "" {
				index := &yaml.Node{Kind: yaml.ScalarNode, Value: path.Join(base, c.page)}
				value.Content = append([]*yaml.Node{index}, value.Content...)
			}
		}
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{key, value},
		})
	}
	return seq
}
