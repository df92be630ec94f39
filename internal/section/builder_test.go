package section

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(text string) *Node { return NewLeaf(text) }

func tagged(qualifier, name string, subs ...*Node) *Node {
	return &Node{Qualifier: qualifier, Name: name, Subsections: subs}
}

func TestBuildNoMarkers(t *testing.T) {
	docs := []string{
		"",
		"plain text",
		"  leading and trailing whitespace \n\n",
		"{SECTION:open} but never closed",
		"{UNKNOWN:x}y{/UNKNOWN}",
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			nodes, err := Build(DefaultKinds, doc)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.True(t, nodes[0].IsLeaf())
			assert.Equal(t, doc, nodes[0].Content)
		})
	}
}

func TestBuildSingleSection(t *testing.T) {
	root, err := NewBuilder(DefaultKinds).Parse("{SECTION:intro}Hello{/SECTION}World")
	require.NoError(t, err)

	want := &Node{Subsections: []*Node{
		leaf(""),
		tagged("section", "intro", leaf("Hello")),
		leaf("World"),
	}}
	assert.Equal(t, want, root)
}

func TestBuildNestedKinds(t *testing.T) {
	nodes, err := Build(DefaultKinds, "{SECTION:a}{LIST:b}x{/LIST}{/SECTION}")
	require.NoError(t, err)

	want := []*Node{
		leaf(""),
		tagged("section", "a",
			leaf(""),
			tagged("list", "b", leaf("x")),
			leaf(""),
		),
		leaf(""),
	}
	assert.Equal(t, want, nodes)
}

func TestBuildPlainSpanWithLowerKind(t *testing.T) {
	doc := "<ul>{LIST:rows}<li>{NAME}</li>{/LIST}</ul>{SECTION:s}body{/SECTION}"
	nodes, err := Build(DefaultKinds, doc)
	require.NoError(t, err)

	want := []*Node{
		{Subsections: []*Node{
			leaf("<ul>"),
			tagged("list", "rows", leaf("<li>{NAME}</li>")),
			leaf("</ul>"),
		}},
		tagged("section", "s", leaf("body")),
		leaf(""),
	}
	assert.Equal(t, want, nodes)
}

func TestBuildAlternatesPlainAndTagged(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		regions int
	}{
		{"one", "a{LIST:x}1{/LIST}b", 1},
		{"two", "{LIST:x}1{/LIST}{LIST:y}2{/LIST}", 2},
		{"three with text", "p{LIST:x}1{/LIST}q{LIST:y}2{/LIST}r{LIST:z}3{/LIST}s", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Build([]string{"LIST"}, tt.doc)
			require.NoError(t, err)
			require.Len(t, nodes, 2*tt.regions+1)
			for i, n := range nodes {
				if i%2 == 0 {
					assert.True(t, n.IsPlain(), "node %d should be plain", i)
				} else {
					assert.Equal(t, "list", n.Qualifier, "node %d should be tagged", i)
				}
			}
		})
	}
}

func TestBuildPreservesText(t *testing.T) {
	docs := map[string]string{
		"html page": `<html>
<body>
{SECTION:status}<h1>Status</h1>
<table>{LIST:device_status}<tr><td>{PLUG_NAME}</td></tr>
{/LIST}</table>{/SECTION}
{SECTION:schedule}<select>{LIST:dev_list_picker}<option value="{PLUG_ID}">{PLUG_NAME}</option>{/LIST}</select>{/SECTION}
</body>
</html>`,
		"unicode": "héllo {SECTION:ü}wörld{/SECTION} ✓",
		"unbalanced": "{SECTION:a}x{/SECTION}{/SECTION}{LIST:b}",
		"latin-1":    "caf\xe9 {SECTION:a}na\xefve {LIST:l}\xe0{/LIST}{/SECTION} \xff",
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			root, err := NewBuilder(DefaultKinds).Parse(doc)
			require.NoError(t, err)
			assert.Equal(t, stripRegions(DefaultKinds, doc), root.Text())
		})
	}
}

func TestBuildKeepsInvalidUTF8(t *testing.T) {
	root, err := NewBuilder(DefaultKinds).Parse("caf\xe9 {SECTION:a}na\xefve{/SECTION} \xff")
	require.NoError(t, err)

	assert.Equal(t, "caf\xe9 na\xefve \xff", root.Text())
	require.Len(t, root.Subsections, 3)
	assert.Equal(t, "caf\xe9 ", root.Subsections[0].Content)
	assert.Equal(t, "na\xefve", root.Subsections[1].Subsections[0].Content)
	assert.Equal(t, " \xff", root.Subsections[2].Content)
}

func TestBuildWrapPlain(t *testing.T) {
	b := NewBuilder(DefaultKinds)
	b.WrapPlain = true

	root, err := b.Parse("{SECTION:intro}Hello{/SECTION}World")
	require.NoError(t, err)

	want := &Node{Subsections: []*Node{
		{Subsections: []*Node{leaf("")}},
		tagged("section", "intro", leaf("Hello")),
		{Subsections: []*Node{leaf("World")}},
	}}
	assert.Equal(t, want, root)
	assert.Equal(t, "HelloWorld", root.Text())
}

func TestBuildPriorityFallback(t *testing.T) {
	doc := "before {LIST:a}1{/LIST} middle {LIST:b}{LIST:c}2{/LIST} after"

	withBoth, err := Build([]string{"SECTION", "LIST"}, doc)
	require.NoError(t, err)
	onlyLists, err := Build([]string{"LIST"}, doc)
	require.NoError(t, err)

	assert.Equal(t, onlyLists, withBoth)
}

func TestBuildSameKindNesting(t *testing.T) {
	nodes, err := Build([]string{"S"}, "{S:a}x{S:b}y{/S}z{/S}")
	require.NoError(t, err)

	want := []*Node{
		leaf(""),
		tagged("s", "a", leaf("x{S:b}y")),
		leaf("z{/S}"),
	}
	assert.Equal(t, want, nodes)
}

func TestBuildNamespacedName(t *testing.T) {
	nodes, err := Build(DefaultKinds, "{SECTION:outer:inner}x{/SECTION}")
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	n := nodes[1]
	assert.Equal(t, "outer:inner", n.Name)
	assert.Equal(t, "section", n.Type())
	assert.Equal(t, "inner", n.ShortName())
}

func TestBuildDepthLimit(t *testing.T) {
	b := NewBuilder(DefaultKinds)
	b.MaxDepth = 1

	_, err := b.Build("{SECTION:a}{LIST:b}x{/LIST}{/SECTION}")
	assert.ErrorIs(t, err, ErrDepthExceeded)

	b = NewBuilder(DefaultKinds)
	b.MaxDepth = 2
	_, err = b.Build("{SECTION:a}{LIST:b}x{/LIST}{/SECTION}")
	assert.NoError(t, err)
}

func TestBuildEmptyKinds(t *testing.T) {
	nodes, err := Build(nil, "{SECTION:a}x{/SECTION}")
	require.NoError(t, err)
	assert.Equal(t, []*Node{leaf("{SECTION:a}x{/SECTION}")}, nodes)
}

func TestGapRanges(t *testing.T) {
	tests := []struct {
		name    string
		regions []Region
		length  int
		want    []span
	}{
		{"no regions", nil, 5, []span{{0, 5}}},
		{"whole fragment", []Region{{Start: 0, End: 5}}, 5, []span{{0, 0}, {5, 5}}},
		{
			"interior",
			[]Region{{Start: 2, End: 4}, {Start: 6, End: 9}},
			12,
			[]span{{0, 2}, {4, 6}, {9, 12}},
		},
		{"adjacent", []Region{{Start: 0, End: 3}, {Start: 3, End: 6}}, 6, []span{{0, 0}, {3, 3}, {6, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gapRanges(tt.regions, tt.length))
		})
	}
}

func TestBuildLargeDocument(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("<p>{SECTION:s}{LIST:l}row{/LIST}{/SECTION}</p>\n")
	}
	nodes, err := Build(DefaultKinds, sb.String())
	require.NoError(t, err)
	assert.Len(t, nodes, 401)
}

// stripRegions removes the delimiters of every complete region, leaving
// unmatched tokens in place.
func stripRegions(kinds []string, s string) string {
	for _, kind := range kinds {
		k := regexp.QuoteMeta(kind)
		re := regexp.MustCompile(`(?s)\{` + k + `:[^}]+\}(.*?)\{/` + k + `\}`)
		for re.MatchString(s) {
			s = re.ReplaceAllString(s, "$1")
		}
	}
	return s
}
