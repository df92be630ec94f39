// Package output renders terminal output for pagegen commands.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"

	"github.com/itsmostafa/pagegen/internal/generate"
	"github.com/itsmostafa/pagegen/internal/section"
)

// maxLabel is how many characters of leaf content a tree label shows.
const maxLabel = 40

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for written files
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// boxStyle for the summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	// qualifierStyle for tagged nodes in the tree dump
	qualifierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// leafStyle for leaf content in the tree dump
	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// enumeratorStyle for tree branches
	enumeratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginRight(1)
)

// FormatSummary renders the box shown after a build.
func FormatSummary(w io.Writer, res *generate.Result) {
	root := res.Root

	line1 := fmt.Sprintf("%s %s  %s %s bytes",
		dimStyle.Render("Input:"), res.Input,
		dimStyle.Render("Size:"), humanize.Comma(int64(res.InputBytes)),
	)
	line2 := fmt.Sprintf("%s %d  %s %d  %s %d",
		dimStyle.Render("Nodes:"), root.Count(),
		dimStyle.Render("Regions:"), root.Regions(),
		dimStyle.Render("Leaves:"), len(root.Leaves()),
	)
	line3 := fmt.Sprintf("%s %s %s",
		dimStyle.Render("Wrote:"),
		successStyle.Render(res.HeaderPath),
		successStyle.Render(res.SourcePath),
	)

	content := titleStyle.Render("Page Generated") + "\n" + line1 + "\n" + line2 + "\n" + line3
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatTree renders the section tree with one line per node.
func FormatTree(w io.Writer, name string, root *section.Node) {
	t := tree.Root(titleStyle.Render(name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	for _, child := range root.Subsections {
		t.Child(subtree(child))
	}
	fmt.Fprintln(w, t.String())
}

func subtree(n *section.Node) any {
	if n.IsLeaf() && n.IsPlain() {
		return leafStyle.Render(Label(n))
	}
	t := tree.Root(Label(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	for _, child := range n.Subsections {
		t.Child(subtree(child))
	}
	return t
}

// Label describes a node in a single line: the full name of tagged nodes,
// a quoted excerpt of leaves and a dot for plain containers.
func Label(n *section.Node) string {
	switch {
	case !n.IsPlain():
		return qualifierStyle.Render(n.FullName())
	case n.IsLeaf():
		return excerpt(n.Content)
	default:
		return dimStyle.Render("·")
	}
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) > maxLabel {
		return strconv.Quote(string(r[:maxLabel])) + "…"
	}
	return strconv.Quote(s)
}
