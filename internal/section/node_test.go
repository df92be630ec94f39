package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTree() *Node {
	return &Node{Subsections: []*Node{
		leaf("a"),
		tagged("section", "s",
			leaf("b"),
			tagged("list", "l", leaf("c")),
			leaf("d"),
		),
		leaf("e"),
	}}
}

func TestNodeNames(t *testing.T) {
	tests := []struct {
		name      string
		node      *Node
		full      string
		typ       string
		shortName string
	}{
		{"plain", leaf("x"), "", "", ""},
		{"tagged", tagged("section", "intro"), "section:intro", "section", "intro"},
		{"namespaced", tagged("list", "outer:inner"), "list:outer:inner", "list", "inner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.full, tt.node.FullName())
			assert.Equal(t, tt.typ, tt.node.Type())
			assert.Equal(t, tt.shortName, tt.node.ShortName())
		})
	}
}

func TestNodeWalkOrder(t *testing.T) {
	var seen []string
	sampleTree().Walk(func(n *Node) {
		if n.IsLeaf() {
			seen = append(seen, n.Content)
		} else {
			seen = append(seen, "["+n.FullName()+"]")
		}
	})
	assert.Equal(t, []string{"[]", "a", "[section:s]", "b", "[list:l]", "c", "d", "e"}, seen)
}

func TestNodeCounts(t *testing.T) {
	root := sampleTree()
	assert.Equal(t, 8, root.Count())
	assert.Equal(t, 2, root.Regions())
	assert.Len(t, root.Leaves(), 5)
	assert.Equal(t, "abcde", root.Text())
}

func TestNilNodeWalk(t *testing.T) {
	var n *Node
	assert.Equal(t, 0, n.Count())
}
