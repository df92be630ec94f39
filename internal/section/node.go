// Package section splits a marked-up document into a nested tree of named
// regions.
//
// A document is tagged with marker kinds such as SECTION and LIST:
//
//	{SECTION:intro}Hello {LIST:items}- {NAME}{/LIST}{/SECTION}
//
// Marker kinds are applied in priority order. The first kind splits the text
// into alternating plain and tagged spans, and every span is then split again
// with the kinds that remain.
package section

import "strings"

// Node is one entry of the section tree. A node is either a leaf holding
// Content or a container holding Subsections, never both.
type Node struct {
	// Qualifier is the lower-cased marker kind that produced the node, empty
	// for plain nodes.
	Qualifier string `yaml:"qualifier,omitempty"`
	// Name is the region name captured from the opening token.
	Name        string  `yaml:"name,omitempty"`
	Content     string  `yaml:"content,omitempty"`
	Subsections []*Node `yaml:"subsections,omitempty"`
}

// NewLeaf returns a plain leaf holding text.
func NewLeaf(text string) *Node {
	return &Node{Content: text}
}

// IsLeaf reports whether the node has no subsections.
func (n *Node) IsLeaf() bool {
	return len(n.Subsections) == 0
}

// IsPlain reports whether the node was not produced by a marker.
func (n *Node) IsPlain() bool {
	return n.Qualifier == ""
}

// FullName joins qualifier and name the way they appear in the document,
// e.g. "section:intro". Plain nodes have an empty full name.
func (n *Node) FullName() string {
	if n.Qualifier == "" {
		return n.Name
	}
	return n.Qualifier + ":" + n.Name
}

// Type returns the first colon segment of the full name.
func (n *Node) Type() string {
	full := n.FullName()
	if i := strings.Index(full, ":"); i >= 0 {
		return full[:i]
	}
	return full
}

// ShortName returns the last colon segment of the full name. For names
// without a namespace it equals Type.
func (n *Node) ShortName() string {
	full := n.FullName()
	return full[strings.LastIndex(full, ":")+1:]
}

// Walk traverses the tree in depth-first pre-order, calling fn for each node.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Subsections {
		child.Walk(fn)
	}
}

// Leaves returns all leaf nodes in document order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Count returns the number of nodes in the tree, including n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// Regions returns the number of tagged nodes in the tree.
func (n *Node) Regions() int {
	count := 0
	n.Walk(func(node *Node) {
		if !node.IsPlain() {
			count++
		}
	})
	return count
}

// Text concatenates the content of every leaf in document order. For a tree
// built from a document this is the document with all delimiters removed.
func (n *Node) Text() string {
	var sb strings.Builder
	for _, leaf := range n.Leaves() {
		sb.WriteString(leaf.Content)
	}
	return sb.String()
}
